package storage

import (
	"context"
	"reflect"
	"testing"

	"invoicetl/internal/engine"
)

// fakeStore demonstrates that New dispatches on the registered kind.
type fakeStore struct{}

func (fakeStore) EnsureSchema(context.Context) error { return nil }
func (fakeStore) InsertRows(context.Context, string, []engine.Row) (int64, error) {
	return 0, nil
}
func (fakeStore) Close() {}

func TestNewDispatchesOnKind(t *testing.T) {
	t.Parallel()

	Register("fake-kind", func(ctx context.Context, cfg Config) (Store, error) {
		return fakeStore{}, nil
	})

	s, err := New(context.Background(), Config{Kind: "fake-kind"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := s.(fakeStore); !ok {
		t.Fatalf("New returned %T, want fakeStore", s)
	}
}

func TestNewRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	if _, err := New(context.Background(), Config{Kind: "no-such-backend"}); err == nil {
		t.Fatal("expected error for unregistered kind")
	}
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty kind")
	}
}

func TestRegisterPanicsOnDuplicate(t *testing.T) {
	t.Parallel()

	f := func(ctx context.Context, cfg Config) (Store, error) { return fakeStore{}, nil }
	Register("dup-kind", f)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	Register("dup-kind", f)
}

func TestRowArgsAlignsWithColumnNames(t *testing.T) {
	t.Parallel()

	row := engine.Row{
		"source_file":  "inv.pdf",
		"description":  "USB Cable",
		"quantity":     2.0,
		"total_amount": "2 sets", // retained text after failed coercion
	}
	args := RowArgs("batch-1", row)

	if len(args) != len(ColumnNames) {
		t.Fatalf("got %d args, want %d", len(args), len(ColumnNames))
	}
	want := map[string]any{
		"batch_id":     "batch-1",
		"source_file":  "inv.pdf",
		"description":  "USB Cable",
		"quantity":     "2",
		"total_amount": "2 sets",
	}
	for i, col := range ColumnNames {
		w, present := want[col]
		if !present {
			w = nil
		}
		if !reflect.DeepEqual(args[i], w) {
			t.Errorf("column %s: got %#v, want %#v", col, args[i], w)
		}
	}
}

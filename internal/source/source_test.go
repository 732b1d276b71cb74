package source

import (
	"context"
	"strings"
	"testing"

	"invoicetl/internal/engine"
)

// The registry tests register throwaway extensions so they stay
// independent of which real readers are linked into the test binary.

func TestRegisterAndLoad(t *testing.T) {
	Register(".fakea", func(_ context.Context, path string) (engine.Document, error) {
		return engine.Document{ID: path, Lines: []string{"x"}}, nil
	})

	if !Supported("dir/Invoice.FAKEA") {
		t.Fatal("Supported must match case-insensitively on extension")
	}

	doc, err := Load(context.Background(), "dir/invoice.fakea")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.ID != "dir/invoice.fakea" {
		t.Fatalf("loader not dispatched: %#v", doc)
	}
}

func TestLoad_UnknownExtension(t *testing.T) {
	_, err := Load(context.Background(), "invoice.docx")
	if err == nil || !strings.Contains(err.Error(), ".docx") {
		t.Fatalf("expected no-reader error naming the extension, got %v", err)
	}
}

// TestRegister_PanicsOnDuplicate: ambiguity between readers is a
// programming error and must fail fast, same as the storage factory.
func TestRegister_PanicsOnDuplicate(t *testing.T) {
	Register(".fakeb", func(_ context.Context, _ string) (engine.Document, error) {
		return engine.Document{}, nil
	})

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	Register(".fakeb", func(_ context.Context, _ string) (engine.Document, error) {
		return engine.Document{}, nil
	})
}

func TestRegister_PanicsOnBadExtension(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for extension without a dot")
		}
	}()
	Register("pdf", func(_ context.Context, _ string) (engine.Document, error) {
		return engine.Document{}, nil
	})
}

package engine

import "fmt"

// UnrecognizedFormatError reports a document whose text matched no known
// vendor signal. It is the engine's only hard failure; callers processing
// a batch are expected to skip the document and continue.
type UnrecognizedFormatError struct {
	DocID string
}

func (e *UnrecognizedFormatError) Error() string {
	return fmt.Sprintf("unrecognized invoice format: %s", e.DocID)
}

// numericColumns are the semantically numeric output columns that get a
// coercion pass during assembly.
var numericColumns = []string{"quantity", "unit_price", "total_price", "total_amount"}

// Assemble parses one document into flat output rows.
//
// Header fields are broadcast onto every line-item row; a document with
// no extractable items yields exactly one header-only row. After the
// join, semantically numeric columns are coerced: currency symbols and
// thousands separators are stripped and the value becomes a number where
// possible, with the normalized text retained otherwise. Partial or
// unparseable values are a normal outcome, not a failure.
func Assemble(doc Document) ([]Row, error) {
	format := Detect(doc.Text())
	if format == FormatUnknown {
		return nil, &UnrecognizedFormatError{DocID: doc.ID}
	}

	rs := RulesFor(format)
	fields := ExtractFields(rs, doc.Lines)
	items := ExtractItems(rs, doc.Tables)

	var rows []Row
	if len(items) == 0 {
		row := make(Row, len(fields))
		for k, v := range fields {
			row[k] = v
		}
		rows = append(rows, row)
	} else {
		for _, item := range items {
			row := make(Row, len(item)+len(fields))
			for role, v := range item {
				row[string(role)] = v
			}
			for k, v := range fields {
				row[k] = v
			}
			rows = append(rows, row)
		}
	}

	for _, row := range rows {
		for _, col := range numericColumns {
			if v, ok := row[col].(string); ok {
				row[col] = ParseNumeric(v).Value()
			}
		}
	}
	return rows, nil
}

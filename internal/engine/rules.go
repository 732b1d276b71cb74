package engine

import "regexp"

// FieldRule locates a single-line header field. Pattern must contain
// exactly one capture group; group 1, whitespace-normalized, becomes the
// field value. The whole document text is scanned once per rule and the
// first match wins.
type FieldRule struct {
	Field   string
	Pattern *regexp.Regexp
}

// BlockRule describes a bounded-window block field: when a line matches
// Trigger, up to Window subsequent lines are accumulated until a blank
// line or a Stop match, whichever comes first. Stop may be nil (blank
// line and window exhaustion still terminate).
type BlockRule struct {
	Field   string
	Trigger *regexp.Regexp
	Stop    *regexp.Regexp
	Window  int
}

// RuleSet is the closed set of per-vendor extraction rules. The assembler
// selects a variant once per document from the detector's tag instead of
// re-branching on the vendor name in every component.
type RuleSet interface {
	Format() Format

	// FieldRules returns the single-line pattern rules, including the
	// vendor's total-amount rule.
	FieldRules() []FieldRule

	// BlockFields extracts the vendor's block fields (seller details,
	// billing/shipping addresses) from the line sequence, applying any
	// vendor-specific precedence between extraction strategies. Fields
	// that produce no text are absent from the result.
	BlockFields(lines []string) map[string]string

	// DescriptionSignals returns the header-cell substrings that mark a
	// table column as the item description. A table is only treated as an
	// item table if one of these matches alongside a quantity cell.
	DescriptionSignals() []string
}

// RulesFor returns the rule set for a detected format. FormatUnknown has
// no rules and yields nil.
func RulesFor(f Format) RuleSet {
	switch f {
	case FormatAmazon:
		return amazonRules{}
	case FormatFlipkart:
		return flipkartRules{}
	default:
		return nil
	}
}

// datePattern matches the day-first numeric dates both vendors print,
// e.g. 05-06-2023, 5.6.2023, 05/06/2023.
const datePattern = `([0-3]?\d[.\-/][0-1]?\d[.\-/][0-9]{4})`

package engine

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// CollapseWhitespace folds the string to NFKC and collapses every run of
// whitespace to a single space, trimming the ends.
//
// The NFKC fold matters for PDF-extracted text: extractors routinely emit
// compatibility forms (full-width digits, ligatures, no-break spaces) that
// would otherwise defeat the substring triggers and regex patterns.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

// StripCurrency removes currency decoration from a value so it can be fed
// to numeric coercion: the rupee sign, any other unicode currency symbol,
// a leading "Rs."/"Rs" marker, and thousands separators.
func StripCurrency(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"Rs.", "Rs", "rs.", "rs"} {
		if strings.HasPrefix(s, prefix) {
			s = s[len(prefix):]
			break
		}
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == ',' || unicode.Is(unicode.Sc, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Numeric is the result of best-effort numeric coercion. Exactly one arm
// is meaningful: Number when OK is true, Text otherwise.
type Numeric struct {
	OK     bool
	Number decimal.Decimal
	Text   string
}

// ParseNumeric coerces a currency-decorated value to a decimal. Coercion
// failure is not an error: the normalized input is retained as text, which
// is the documented outcome for unparseable amounts.
func ParseNumeric(s string) Numeric {
	cleaned := StripCurrency(CollapseWhitespace(s))
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Numeric{Text: CollapseWhitespace(s)}
	}
	return Numeric{OK: true, Number: d}
}

// Value returns the coerced value in output-row form: a float64 when
// coercion succeeded, the retained text otherwise.
func (n Numeric) Value() any {
	if n.OK {
		return n.Number.InexactFloat64()
	}
	return n.Text
}

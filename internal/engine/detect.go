package engine

import "regexp"

// Format identifies which vendor layout a document follows. It is a
// closed set; FormatUnknown is a valid terminal classification that the
// assembler turns into an error.
type Format string

const (
	FormatAmazon   Format = "amazon"
	FormatFlipkart Format = "flipkart"
	FormatUnknown  Format = "unknown"
)

var (
	amazonSignal   = regexp.MustCompile(`(?i)Amazon\.in|Sold By|Invoice Date`)
	flipkartSignal = regexp.MustCompile(`(?i)Flipkart`)
)

// Detect classifies document text into a vendor Format.
//
// The decision order is significant and non-commutative. Amazon's signal
// set is deliberately broad because its layouts vary more, and it is
// tested first so an Amazon document containing a coincidental "Flipkart"
// substring is not misclassified. The flip side is that any document
// merely containing "Invoice Date" is claimed as Amazon. That imprecision
// is documented, accepted behavior; do not tighten it without new
// requirements.
func Detect(text string) Format {
	if amazonSignal.MatchString(text) {
		return FormatAmazon
	}
	if flipkartSignal.MatchString(text) {
		return FormatFlipkart
	}
	return FormatUnknown
}

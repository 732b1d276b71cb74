package engine

import "regexp"

var flipkartFieldRules = []FieldRule{
	{Field: "order_id", Pattern: regexp.MustCompile(`(?i)Order ID[:\s]*([A-Za-z0-9-]+)`)},
	{Field: "invoice_number", Pattern: regexp.MustCompile(`(?i)Invoice Number[:\s]*([A-Za-z0-9-]+)`)},
	{Field: "invoice_date", Pattern: regexp.MustCompile(`(?i)Invoice Date[:\s]*` + datePattern)},
	{Field: "issue_date", Pattern: regexp.MustCompile(`(?i)Issue Date[:\s]*` + datePattern)},
	{Field: "total_amount", Pattern: regexp.MustCompile(`(?i)Total[:\s]*[₹Rs.]*\s*([0-9,]+\.?[0-9]*)`)},
}

var (
	flipkartBillingBlock = BlockRule{
		Field:   "billing_address",
		Trigger: reBillingAddr,
		Stop:    reShippingAddr,
		Window:  8,
	}
	flipkartShippingBlock = BlockRule{
		Field:   "shipping_address",
		Trigger: reShippingAddr,
		Stop:    regexp.MustCompile(`(?i)Order ID|Invoice Date`),
		Window:  8,
	}
	// Flipkart seller blocks end only at a blank line or the window.
	flipkartSellerBlock = BlockRule{
		Field:   "seller_details",
		Trigger: reSoldBy,
		Window:  5,
	}
)

// flipkartRules implements RuleSet for Flipkart invoices. Flipkart has no
// combined-line artifact; every block field is an independent scan.
type flipkartRules struct{}

func (flipkartRules) Format() Format               { return FormatFlipkart }
func (flipkartRules) FieldRules() []FieldRule      { return flipkartFieldRules }
func (flipkartRules) DescriptionSignals() []string { return []string{"description", "item"} }

func (flipkartRules) BlockFields(lines []string) map[string]string {
	out := make(map[string]string)
	for _, rule := range []BlockRule{flipkartBillingBlock, flipkartShippingBlock, flipkartSellerBlock} {
		if v := scanBlock(lines, rule); v != "" {
			out[rule.Field] = v
		}
	}
	return out
}

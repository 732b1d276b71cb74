package engine

import (
	"regexp"
	"strings"
)

var (
	reSoldBy       = regexp.MustCompile(`(?i)Sold By`)
	reSoldBySplit  = regexp.MustCompile(`(?i)Sold By\s*:\s*`)
	reBillingAddr  = regexp.MustCompile(`(?i)Billing Address`)
	reBillingSplit = regexp.MustCompile(`(?i)Billing Address\s*:\s*`)
	reShippingAddr = regexp.MustCompile(`(?i)Shipping Address`)
)

var amazonFieldRules = []FieldRule{
	{Field: "order_number", Pattern: regexp.MustCompile(`(?i)Order Number[:\s]*([A-Za-z0-9-]+)`)},
	{Field: "invoice_number", Pattern: regexp.MustCompile(`(?i)Invoice Number\s*[:\s]*([A-Za-z0-9-]+)`)},
	{Field: "order_date", Pattern: regexp.MustCompile(`(?i)Order Date[:\s]*` + datePattern)},
	{Field: "invoice_date", Pattern: regexp.MustCompile(`(?i)Invoice Date\s*[:\s]*` + datePattern)},
	{Field: "total_amount", Pattern: regexp.MustCompile(`(?i)Total\s*Amount\s*[:\s]*[₹Rs.]*\s*([0-9,]+\.?[0-9]*)`)},
}

var (
	amazonSoldByBlock = BlockRule{
		Field:   "seller_details",
		Trigger: reSoldBy,
		Stop:    reBillingAddr,
		Window:  5,
	}
	amazonBillingBlock = BlockRule{
		Field:   "billing_address",
		Trigger: reBillingAddr,
		Stop:    reShippingAddr,
		Window:  8,
	}
	amazonShippingBlock = BlockRule{
		Field:   "shipping_address",
		Trigger: reShippingAddr,
		Stop:    regexp.MustCompile(`(?i)Order Number|Invoice Date`),
		Window:  8,
	}
)

// amazonRules implements RuleSet for Amazon.in invoices.
type amazonRules struct{}

func (amazonRules) Format() Format               { return FormatAmazon }
func (amazonRules) FieldRules() []FieldRule      { return amazonFieldRules }
func (amazonRules) DescriptionSignals() []string { return []string{"description"} }

// BlockFields applies Amazon's strategy precedence. Some Amazon layouts
// print "Sold By : <seller> Billing Address : <addr>" as one table-header
// artifact line; splitting that combined line claims both fields, and the
// independent Sold By scan never runs on a document the combined branch
// claimed, even when the seller segment turned out empty. The independent
// billing scan runs only while both fields are still unknown, so a weaker
// billing block is never derived after a stronger match.
func (amazonRules) BlockFields(lines []string) map[string]string {
	out := make(map[string]string)

	seller, billing, combined := splitCombinedSellerBilling(lines)
	if combined {
		if seller != "" {
			out["seller_details"] = seller
		}
		if billing != "" {
			out["billing_address"] = billing
		}
	} else if v := scanBlock(lines, amazonSoldByBlock); v != "" {
		out["seller_details"] = v
	}

	if out["seller_details"] == "" && out["billing_address"] == "" {
		if v := scanBlock(lines, amazonBillingBlock); v != "" {
			out["billing_address"] = v
		}
	}
	if v := scanBlock(lines, amazonShippingBlock); v != "" {
		out["shipping_address"] = v
	}
	return out
}

// splitCombinedSellerBilling finds the first line carrying both the
// "Sold By" and "Billing Address" markers and splits it into the seller
// prefix and the billing suffix in one operation. The billing block
// continues over at most 5 following lines, ending early at a blank line
// or a shipping trigger.
//
// A combined line without the "Sold By :" colon form cannot be split and
// is left to the independent scans.
func splitCombinedSellerBilling(lines []string) (seller, billing string, ok bool) {
	for i, line := range lines {
		if !reSoldBy.MatchString(line) || !reBillingAddr.MatchString(line) {
			continue
		}
		parts := reSoldBySplit.Split(line, 2)
		if len(parts) < 2 {
			continue
		}

		sub := reBillingSplit.Split(parts[1], 2)
		seller = CollapseWhitespace(sub[0])
		if len(sub) > 1 {
			addr := []string{strings.TrimSpace(sub[1])}
			for j := i + 1; j < len(lines) && j <= i+5; j++ {
				t := strings.TrimSpace(lines[j])
				if t == "" || reShippingAddr.MatchString(lines[j]) {
					break
				}
				addr = append(addr, t)
			}
			billing = CollapseWhitespace(strings.Join(addr, " "))
		}
		return seller, billing, true
	}
	return "", "", false
}

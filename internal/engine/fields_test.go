package engine

import (
	"reflect"
	"testing"
)

// TestExtractFields_AmazonPatternFields verifies the single-line rules:
// first match wins, values are whitespace-normalized, and fields absent
// from the text are omitted rather than erroring.
func TestExtractFields_AmazonPatternFields(t *testing.T) {
	t.Parallel()

	lines := []string{
		"Tax Invoice",
		"Order Number: 123-4567890-1234567",
		"Order Number: 999-0000000-0000000",
		"Invoice Date 05-06-2023",
	}

	got := ExtractFields(RulesFor(FormatAmazon), lines)

	if got["order_number"] != "123-4567890-1234567" {
		t.Fatalf("order_number=%q, first match must win", got["order_number"])
	}
	if got["invoice_date"] != "05-06-2023" {
		t.Fatalf("invoice_date=%q", got["invoice_date"])
	}
	if _, ok := got["invoice_number"]; ok {
		t.Fatalf("invoice_number must be omitted when absent, got %q", got["invoice_number"])
	}
}

// TestExtractFields_Idempotent: re-running extraction on identical text
// yields identical output, omitted fields included.
func TestExtractFields_Idempotent(t *testing.T) {
	t.Parallel()

	lines := []string{
		"Flipkart",
		"Order ID: OD1234",
		"Billing Address",
		"12 High Street",
		"Pune 411001",
	}

	first := ExtractFields(RulesFor(FormatFlipkart), lines)
	second := ExtractFields(RulesFor(FormatFlipkart), lines)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("extraction not idempotent:\nfirst:  %#v\nsecond: %#v", first, second)
	}
}

// TestScanBlock_StopsAtBlankLine: a blank line terminates accumulation
// even well inside the window.
func TestScanBlock_StopsAtBlankLine(t *testing.T) {
	t.Parallel()

	lines := []string{
		"Billing Address",
		"12 High Street",
		"Pune 411001",
		"",
		"NOT part of the address",
	}

	got := scanBlock(lines, flipkartBillingBlock)
	if got != "12 High Street Pune 411001" {
		t.Fatalf("scanBlock=%q", got)
	}
}

// TestScanBlock_NeverReadsPastWindow: with no blank line and no stop
// match, accumulation ends after exactly Window lines.
func TestScanBlock_NeverReadsPastWindow(t *testing.T) {
	t.Parallel()

	lines := []string{"Sold By"}
	for _, l := range []string{"l1", "l2", "l3", "l4", "l5", "l6", "l7"} {
		lines = append(lines, l)
	}

	got := scanBlock(lines, flipkartSellerBlock) // window of 5
	if got != "l1 l2 l3 l4 l5" {
		t.Fatalf("scanBlock=%q, window must cap at 5 lines", got)
	}
}

// TestScanBlock_StopPattern: a terminator line ends the block and is not
// included in it.
func TestScanBlock_StopPattern(t *testing.T) {
	t.Parallel()

	lines := []string{
		"Shipping Address",
		"34 Lake Road",
		"Order Number: 1-2-3",
		"trailing",
	}

	got := scanBlock(lines, amazonShippingBlock)
	if got != "34 Lake Road" {
		t.Fatalf("scanBlock=%q", got)
	}
}

// TestScanBlock_FirstSuccessfulEmissionWins: once a block is emitted,
// later triggers for the same field are ignored. A trigger whose window
// collects nothing does not count as an emission; the scan resumes so a
// later trigger can still win.
func TestScanBlock_FirstSuccessfulEmissionWins(t *testing.T) {
	t.Parallel()

	lines := []string{
		"Sold By",
		"", // empty window: no emission
		"Sold By",
		"First Seller Ltd",
		"",
		"Sold By",
		"Second Seller Ltd",
	}

	got := scanBlock(lines, flipkartSellerBlock)
	if got != "First Seller Ltd" {
		t.Fatalf("scanBlock=%q, first successful extraction must win", got)
	}
}

// TestScanBlock_WindowOpenAtEndOfInput: input ending mid-accumulation
// still emits what was collected.
func TestScanBlock_WindowOpenAtEndOfInput(t *testing.T) {
	t.Parallel()

	got := scanBlock([]string{"Sold By", "Acme Traders"}, flipkartSellerBlock)
	if got != "Acme Traders" {
		t.Fatalf("scanBlock=%q", got)
	}
}

// TestAmazonBlockFields_CombinedLine: the combined "Sold By … Billing
// Address …" artifact line is split in one operation and takes priority
// over the independent scans for both fields.
func TestAmazonBlockFields_CombinedLine(t *testing.T) {
	t.Parallel()

	lines := []string{
		"Sold By : Acme Retail Pvt Ltd Billing Address : 9 Market Road",
		"Mumbai 400001",
		"",
		"Sold By",
		"Wrong Seller",
	}

	got := amazonRules{}.BlockFields(lines)
	if got["seller_details"] != "Acme Retail Pvt Ltd" {
		t.Fatalf("seller_details=%q", got["seller_details"])
	}
	if got["billing_address"] != "9 Market Road Mumbai 400001" {
		t.Fatalf("billing_address=%q", got["billing_address"])
	}
}

// TestAmazonBlockFields_CombinedLineEmptySeller: a combined line with
// nothing between the two markers still claims both fields. The seller
// stays empty and the independent Sold By scan must not run on the same
// line, or it would absorb the billing continuation into seller_details.
func TestAmazonBlockFields_CombinedLineEmptySeller(t *testing.T) {
	t.Parallel()

	lines := []string{
		"Sold By : Billing Address : 9 Market Road",
		"Mumbai 400001",
		"",
	}

	got := amazonRules{}.BlockFields(lines)
	if _, ok := got["seller_details"]; ok {
		t.Fatalf("seller_details=%q, must stay absent when the combined line has no seller segment", got["seller_details"])
	}
	if got["billing_address"] != "9 Market Road Mumbai 400001" {
		t.Fatalf("billing_address=%q", got["billing_address"])
	}
}

// TestAmazonBlockFields_IndependentFallback: without the combined line,
// seller details and billing address come from their own scans, except
// that the independent billing scan is suppressed once seller details
// were found, so a weaker billing block is never derived.
func TestAmazonBlockFields_IndependentFallback(t *testing.T) {
	t.Parallel()

	withSeller := []string{
		"Sold By",
		"Acme Retail Pvt Ltd",
		"",
		"Billing Address",
		"9 Market Road",
	}
	got := amazonRules{}.BlockFields(withSeller)
	if got["seller_details"] != "Acme Retail Pvt Ltd" {
		t.Fatalf("seller_details=%q", got["seller_details"])
	}
	if got["billing_address"] != "" {
		t.Fatalf("billing_address=%q, must not run once seller is known", got["billing_address"])
	}

	withoutSeller := []string{
		"Billing Address",
		"9 Market Road",
		"Mumbai 400001",
		"",
		"Shipping Address",
		"34 Lake Road",
	}
	got = amazonRules{}.BlockFields(withoutSeller)
	if got["billing_address"] != "9 Market Road Mumbai 400001" {
		t.Fatalf("billing_address=%q", got["billing_address"])
	}
	if got["shipping_address"] != "34 Lake Road" {
		t.Fatalf("shipping_address=%q", got["shipping_address"])
	}
}

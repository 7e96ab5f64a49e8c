package parser

import "testing"

func extractPriceFromText(text string) string {
	seg := Segment(text)
	return ExtractPrice(seg.Full, seg.Relevant)
}

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"standard", "Gorgeous home listed at $310,000 today", "310000"},
		{"millions", "$1.2M stunning waterfront estate", "1200000"},
		{"floor rejected", "priced at $49,999 firm", ""},
		{"floor accepted", "priced at $50,000 firm", "50000"},
		{"ceiling accepted", "asking $50,000,000 for the compound", "50000000"},
		{"above ceiling rejected", "asking $50,000,001 for the compound", ""},
		{"partial number skipped", "$310 is not a house price", ""},
		{"qualified figure is not the price", "$310,000 Zestimate", ""},
		{"monthly figure is not the price", "$2,500/mo estimated", ""},
		{"first plausible wins", "$310,000 then $450,000 nearby", "310000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractPriceFromText(tt.text); got != tt.want {
				t.Errorf("ExtractPrice(%q) = %q; want %q", tt.text, got, tt.want)
			}
		})
	}
}

// Listing prices live near the top of a page; figures past the top window
// are only found by the broader fallback scan.
func TestExtractPrice_FallbackBeyondTopWindow(t *testing.T) {
	padding := make([]byte, priceTopWindow)
	for i := range padding {
		padding[i] = 'x'
	}
	text := string(padding) + "\nasking $310,000 for this one"

	if got := extractPriceFromText(text); got != "310000" {
		t.Errorf("fallback price = %q; want %q", got, "310000")
	}
}

func TestExtractSecondaryEstimate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"zestimate", "$301,000 Zestimate®", "301000"},
		{"valuation", "$415,000 Automated Valuation", "415000"},
		{"generic estimate", "$275,000 Estimate", "275000"},
		{"avm", "$320,000 AVM", "320000"},
		{"unqualified figure ignored", "$301,000 asking", ""},
		{"out of band rejected", "$49,000 Zestimate", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractSecondaryEstimate(tt.text); got != tt.want {
				t.Errorf("ExtractSecondaryEstimate(%q) = %q; want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractPriceAndEstimateStayDistinct(t *testing.T) {
	text := "$310,000\ngreat bones\n$301,000 Zestimate"

	price := extractPriceFromText(text)
	estimate := ExtractSecondaryEstimate(text)

	if price != "310000" {
		t.Errorf("price = %q; want %q", price, "310000")
	}
	if estimate != "301000" {
		t.Errorf("estimate = %q; want %q", estimate, "301000")
	}
	if price == estimate {
		t.Error("price and estimate must not be conflated")
	}
}

package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Plausibility band for a listing price or valuation estimate, inclusive
// on both ends.
const (
	minPlausiblePrice = 50_000
	maxPlausiblePrice = 50_000_000
)

// priceTopWindow bounds the primary price search: listing prices appear
// near the top of a page, while nearby-home prices appear further down.
const priceTopWindow = 1000

// priceStrategy is one entry in the ordered price-matching table.
type priceStrategy struct {
	re *regexp.Regexp
	// disqualify rejects a match when the text immediately after it
	// starts with an estimate/payment qualifier, so the same figure is
	// not claimed as both price and estimate.
	disqualify *regexp.Regexp
	// filter vets the raw match text; nil accepts all.
	filter func(match string) bool
}

var primaryPriceStrategies = []priceStrategy{
	// Standard: $310,000.
	{
		re:         regexp.MustCompile(`\$[\d,]+`),
		disqualify: regexp.MustCompile(`(?i)^\s*(?:Zestimate|RentBerry|Estimate|AVG|Per Month|/mo)`),
	},
	// Abbreviated: $8500k.
	{
		re:         regexp.MustCompile(`(?i)\$\d{3,}k`),
		disqualify: regexp.MustCompile(`(?i)^\s*(?:Zestimate|RentBerry|Estimate)`),
	},
	// Millions: $1.2M.
	{
		re:         regexp.MustCompile(`(?i)\$\d+(?:\.\d)?m`),
		disqualify: regexp.MustCompile(`(?i)^\s*(?:Zestimate|RentBerry|Estimate)`),
	},
}

var fallbackPriceStrategies = []priceStrategy{
	{re: regexp.MustCompile(`\$[\d,]{3,}(?:\.\d{2})?`)},
	{re: regexp.MustCompile(`(?i)\$\d{3,}k`)},
	{re: regexp.MustCompile(`(?i)\$\d+(?:\.\d)?m`)},
	{re: regexp.MustCompile(`\$\d{6,}`)},
	// Exactly five digits; longer runs were claimed by the previous
	// strategy.
	{re: regexp.MustCompile(`\$\d+`), filter: func(m string) bool { return len(m) == 6 }},
}

// ExtractPrice finds the listing price in text. The top window is scanned
// first with qualifier-aware patterns; if nothing validates there, the
// relevant prefix is rescanned with broader patterns. Matches outside the
// plausibility band are skipped, never coerced. Returns a digits-only
// string, or "" when no candidate validates.
func ExtractPrice(full, relevant string) string {
	top := full
	if len(top) > priceTopWindow {
		top = top[:priceTopWindow]
	}

	for _, strat := range primaryPriceStrategies {
		for _, loc := range strat.re.FindAllStringIndex(top, -1) {
			match := top[loc[0]:loc[1]]
			if strat.disqualify != nil && strat.disqualify.MatchString(top[loc[1]:]) {
				continue
			}
			// Require at least five digits so partial numbers such as a
			// truncated "$310" are never taken for a price.
			if len(stripPriceChars(match)) < 5 {
				continue
			}
			if n, ok := expandPriceValue(match); ok && n >= minPlausiblePrice && n <= maxPlausiblePrice {
				return strconv.Itoa(n)
			}
		}
	}

	for _, strat := range fallbackPriceStrategies {
		for _, match := range strat.re.FindAllString(relevant, -1) {
			if strat.filter != nil && !strat.filter(match) {
				continue
			}
			// Skip figures the source labels as an estimate.
			if strings.Contains(relevant, match+" Zestimate") {
				continue
			}
			if n, ok := expandPriceValue(match); ok && n >= minPlausiblePrice && n <= maxPlausiblePrice {
				return strconv.Itoa(n)
			}
		}
	}

	return ""
}

var estimateStrategies = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$[\d,]+\s*Zestimate`),
	regexp.MustCompile(`(?i)\$[\d,]+\s*RentBerry`),
	regexp.MustCompile(`(?i)\$[\d,]+\s*(?:Automated\s*)?(?:Valuation|Estimate)`),
	regexp.MustCompile(`(?i)\$[\d,]+\s*(?:AVM|AVG)`),
}

var estimateQualifierRe = regexp.MustCompile(`(?i)\s*(?:Zestimate|RentBerry|Automated\s*Valuation|Valuation|Estimate|AVM|AVG)`)

// ExtractSecondaryEstimate finds an automated valuation figure: a dollar
// amount immediately followed by a valuation qualifier word. The qualifier
// is stripped and the amount validated against the same band as the
// listing price. Returns "" when absent; the assembler substitutes the
// sentinel.
func ExtractSecondaryEstimate(relevant string) string {
	for _, re := range estimateStrategies {
		match := re.FindString(relevant)
		if match == "" {
			continue
		}
		amount := stripPriceChars(estimateQualifierRe.ReplaceAllString(match, ""))
		if n, err := strconv.Atoi(amount); err == nil && n >= minPlausiblePrice && n <= maxPlausiblePrice {
			return amount
		}
	}
	return ""
}

func stripPriceChars(s string) string {
	return strings.NewReplacer("$", "", ",", "").Replace(s)
}

// expandPriceValue converts a matched price string to its numeric value,
// expanding k/m suffixes (x1,000 / x1,000,000).
func expandPriceValue(match string) (int, bool) {
	cleaned := strings.ToLower(stripPriceChars(match))
	mult := 1
	switch {
	case strings.HasSuffix(cleaned, "k"):
		mult = 1_000
		cleaned = strings.TrimSuffix(cleaned, "k")
	case strings.HasSuffix(cleaned, "m"):
		mult = 1_000_000
		cleaned = strings.TrimSuffix(cleaned, "m")
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return int(f * float64(mult)), true
}

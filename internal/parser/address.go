package parser

import (
	"regexp"
	"strings"
)

const streetTypes = `Street|St\.?|Avenue|Ave\.?|Road|Rd\.?|Drive|Dr\.?|Lane|Ln\.?|Boulevard|Blvd\.?|Way|Circle|Cir\.?|Court|Ct\.?|Place|Pl\.?|Parkway|Pkwy\.?|Trail|Tr\.?`

// addressStrategy is one entry in the ordered address-matching table. The
// first strategy whose match passes its accept check wins, and the first
// match within that strategy is used.
type addressStrategy struct {
	re *regexp.Regexp
	// accept vets a candidate match against its surrounding text; nil
	// accepts unconditionally.
	accept func(text string, loc []int) bool
}

var addressStrategies = []addressStrategy{
	// Full format with ZIP: 123 Main Street, City, ST 12345.
	{re: regexp.MustCompile(`(?i)\d+\s+[A-Za-z0-9\s\-'.]+(?:` + streetTypes + `)\s*,\s*[A-Za-z\s]+,\s*[A-Z]{2}\s*\d{5}`)},
	// With apartment/unit: 123 Main St Unit 4A, City, ST 12345.
	{re: regexp.MustCompile(`(?i)\d+\s+[A-Za-z0-9\s\-'.]+(?:` + streetTypes + `)(?:\s+(?:Unit|Apt|#)\s*[A-Za-z0-9]+)?\s*,\s*[A-Za-z\s]+,\s*[A-Z]{2}\s*\d{5}`)},
	// Without ZIP: 123 Main Street, City, ST.
	{re: regexp.MustCompile(`(?i)\d+\s+[A-Za-z0-9\s\-'.]+(?:` + streetTypes + `)\s*,\s*[A-Za-z\s]+,\s*[A-Z]{2}`)},
	// Bare street address: 123 Main Street. Rejected when the preceding
	// text ends with a bed/bath/sqft token, which marks a property-fact
	// line rather than an address.
	{
		re:     regexp.MustCompile(`(?i)\d+\s+[A-Za-z0-9\s\-'.]+\s+(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Boulevard|Blvd|Way|Circle|Cir|Court|Ct|Place|Pl|Parkway|Pkwy|Trail|Tr)\b`),
		accept: notAfterFactToken,
	},
}

var (
	factTokenBeforeRe = regexp.MustCompile(`(?i)(?:beds|baths?|sqft|sq\s*ft)\s*$`)

	// Leading artifacts stripped from a matched address: a price merged
	// onto the same line, a partial price fragment, and OCR noise tokens.
	leadingPriceRe         = regexp.MustCompile(`^\$[\d,]+\s*`)
	leadingFragmentRe      = regexp.MustCompile(`^\d{3}\s*`)
	leadingNoiseRe         = regexp.MustCompile(`(?i)^(?:sqft|sq ft|beds|baths|bath)\s*`)
	leadingNumberedNoiseRe = regexp.MustCompile(`(?i)^\d+\s*(?:sqft|sq ft|beds|baths|bath)\s*`)

	addressWordRe = regexp.MustCompile(`\w+`)
	stateTokenRe  = regexp.MustCompile(`^[A-Z]{2}$`)
	zipTokenRe    = regexp.MustCompile(`^\d{5}$`)
)

func notAfterFactToken(text string, loc []int) bool {
	start := loc[0] - 12
	if start < 0 {
		start = 0
	}
	return !factTokenBeforeRe.MatchString(text[start:loc[0]])
}

// ExtractAddress finds a street address in text, trying patterns from most
// to least specific, and normalizes the result. It returns "" when no
// pattern matches.
func ExtractAddress(text string) string {
	for _, strat := range addressStrategies {
		for _, loc := range strat.re.FindAllStringIndex(text, -1) {
			if strat.accept != nil && !strat.accept(text, loc) {
				continue
			}
			return normalizeAddress(strings.TrimSpace(text[loc[0]:loc[1]]))
		}
	}
	return ""
}

// normalizeAddress strips leading price/ZIP/OCR artifacts and re-cases
// each word, preserving 2-letter state codes and 5-digit ZIPs verbatim.
// Words are never reordered.
func normalizeAddress(address string) string {
	address = leadingPriceRe.ReplaceAllString(address, "")
	address = leadingFragmentRe.ReplaceAllString(address, "")
	address = leadingNoiseRe.ReplaceAllString(address, "")
	address = leadingNumberedNoiseRe.ReplaceAllString(address, "")

	return addressWordRe.ReplaceAllStringFunc(address, func(word string) string {
		if stateTokenRe.MatchString(word) || zipTokenRe.MatchString(word) {
			return word
		}
		return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	})
}

// Package parser infers structured listing fields from unstructured
// real-estate text, whether copy-pasted from a property site or produced
// by OCR on a screenshot. Every extractor is an ordered table of
// heuristics with plausibility bounds; a match outside its band is treated
// as not found, never coerced. Parsing is a pure function of its input:
// no I/O, no shared state, safe to call concurrently.
package parser

import (
	"regexp"
	"strings"

	"openhouse/internal/domain"
)

// Raw source text is kept as last-resort notes only for known listing
// domains, where it is at least plausibly about one property.
var listingDomains = []string{"zillow.com", "realtor.com", "redfin.com"}

var urlRe = regexp.MustCompile(`(?i)https?://[^\s]+`)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}

// ParseListingText extracts a structured listing record from free-form
// text. The record is valid when at least one of address or price was
// found; callers decide how to report the failure otherwise.
func ParseListingText(text string) *domain.ParsedListing {
	result := &domain.ParsedListing{}

	result.Address = ExtractAddress(text)

	seg := Segment(text)

	result.Price = ExtractPrice(seg.Full, seg.Relevant)
	result.Zestimate = ExtractSecondaryEstimate(seg.Relevant)

	result.MonthlyPayment = ExtractMonthlyPayment(seg.Full)
	result.MonthlyPayment = ValidateAndCorrectPayment(result.MonthlyPayment, result.Price)

	result.Date, result.Time = ExtractDateTime(seg)

	if facts := ExtractFacts(seg.Relevant); len(facts) > 0 {
		result.Notes = strings.Join(facts, NotesSeparator)
	}

	if result.Notes == "" && fromListingDomain(text) {
		result.Notes = text
	}

	if result.Zestimate == "" {
		result.Zestimate = domain.EstimateNotAvailable
	}

	return result
}

func fromListingDomain(text string) bool {
	for _, d := range listingDomains {
		if strings.Contains(text, d) {
			return true
		}
	}
	return false
}

// DetectImageURL returns the first direct image URL in text, or "".
func DetectImageURL(text string) string {
	for _, u := range urlRe.FindAllString(text, -1) {
		lower := strings.ToLower(u)
		for _, ext := range imageExtensions {
			if strings.Contains(lower, ext) {
				return u
			}
		}
	}
	return ""
}

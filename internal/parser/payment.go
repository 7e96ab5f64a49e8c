package parser

import (
	"math"
	"regexp"
	"strconv"
)

// Plausibility band for a monthly mortgage payment, inclusive.
const (
	minPlausiblePayment = 500
	maxPlausiblePayment = 15_000
)

// Typical monthly-payment-to-price ratio band. A believable payment falls
// between 0.4% and 0.8% of the listing price, with 0.6% typical.
const (
	paymentRatioMin = 0.004
	paymentRatioMid = 0.006
	paymentRatioMax = 0.008
)

// Payment phrasings vary by site; these are tried in order against the
// full text, since payment estimates can appear below the boilerplate cut.
var paymentStrategies = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Est\.\s*\$[\d,]+/mo`),
	regexp.MustCompile(`(?i)\$[\d,]+/mo(?:nth)?\s*(?:Get pre-qualified|Est\.?)?`),
	regexp.MustCompile(`(?i)\$[\d,]+\s*per month`),
	regexp.MustCompile(`(?i)\$[\d,]+\s*/\s*mo`),
	regexp.MustCompile(`(?i)\$[\d,]+\s*monthly`),
	regexp.MustCompile(`(?i)Estimated.*?\$[\d,]+/mo`),
}

var dollarAmountRe = regexp.MustCompile(`\$[\d,]+`)

// ExtractMonthlyPayment finds an estimated monthly payment in text,
// returning the first in-band dollar amount as a digits-only string, or ""
// when none validates.
func ExtractMonthlyPayment(full string) string {
	for _, re := range paymentStrategies {
		for _, match := range re.FindAllString(full, -1) {
			dollar := dollarAmountRe.FindString(match)
			if dollar == "" {
				continue
			}
			amount := stripPriceChars(dollar)
			if n, err := strconv.Atoi(amount); err == nil && n >= minPlausiblePayment && n <= maxPlausiblePayment {
				return amount
			}
		}
	}
	return ""
}

// PaymentCorrection is one OCR error-repair rule. It receives the matched
// payment (digits-only) and the numeric listing price, and returns a
// replacement payment plus whether it applied. Corrections run in order;
// the first that applies wins.
type PaymentCorrection func(payment string, price int) (string, bool)

var paymentCorrections = []PaymentCorrection{
	correctLeadingDigitMisread,
}

// correctLeadingDigitMisread repairs a recurring OCR failure where a
// leading "2" is read as "1". The substitution is accepted only when the
// corrected value is strictly closer to the price-implied typical payment
// and does not exceed the band ceiling.
func correctLeadingDigitMisread(payment string, price int) (string, bool) {
	if payment == "" || payment[0] != '1' {
		return payment, false
	}
	original, err := strconv.Atoi(payment)
	if err != nil {
		return payment, false
	}

	corrected := "2" + payment[1:]
	correctedNum, err := strconv.Atoi(corrected)
	if err != nil {
		return payment, false
	}

	expectedMid := int(math.Floor(float64(price) * paymentRatioMid))
	expectedMax := int(math.Ceil(float64(price) * paymentRatioMax))

	originalDist := abs(original - expectedMid)
	correctedDist := abs(correctedNum - expectedMid)

	if correctedDist < originalDist && correctedNum <= expectedMax {
		return corrected, true
	}
	return payment, false
}

// ValidateAndCorrectPayment cross-checks a matched payment against the
// listing price and applies the correction rules. Both inputs are
// digits-only strings; the payment is returned unchanged when either is
// missing, malformed, or no correction is a strictly better fit.
func ValidateAndCorrectPayment(payment, price string) string {
	if payment == "" || price == "" {
		return payment
	}
	priceNum, err := strconv.Atoi(price)
	if err != nil {
		return payment
	}

	for _, correct := range paymentCorrections {
		if fixed, ok := correct(payment, priceNum); ok {
			return fixed
		}
	}
	return payment
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

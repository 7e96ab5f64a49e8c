package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// Plausibility bands for property facts, inclusive.
const (
	minPlausibleBeds = 1
	maxPlausibleBeds = 20
	minPlausibleSqft = 200
	maxPlausibleSqft = 50_000
)

// NotesSeparator joins property-fact fragments into the notes string.
const NotesSeparator = " • "

var (
	// Compact fact line: "(optional $price) beds baths sqft" as three
	// adjacent numbers, e.g. "$468,000 3 2 2,086".
	compactFactsRe = regexp.MustCompile(`(?:\$[\d,]+\s+)?(\d+)\s+(\d+(?:\.\d+)?)\s+([\d,]+)`)

	standaloneNumberRe = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	fragmentedNumberRe = regexp.MustCompile(`^\d{1,2}[\s,]*\d{3,4}$`)
	blankLineSplitRe   = regexp.MustCompile(`[\n\r]+`)

	labeledBedsRe  = regexp.MustCompile(`(?i)(\d+)\s+(?:bed|bd|bedroom)s?`)
	labeledBathsRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s+(?:bath|ba|bathroom)s?`)
	labeledSqftRe  = regexp.MustCompile(`(?i)([\d,]+)\s+(?:sqft|sq\s*ft)`)
	stateBeforeRe  = regexp.MustCompile(`\b[A-Z]{2}\s*$`)

	garageRe       = regexp.MustCompile(`(?i)(\d+)[-\s]*(?:car\s+)?garage`)
	daysOnMarketRe = regexp.MustCompile(`(?i)(\d+)\s+days?\s+on\s+(?:market|zillow)`)

	bedLabelRe  = regexp.MustCompile(`(?i)bed`)
	bathLabelRe = regexp.MustCompile(`(?i)bath`)
	sqftLabelRe = regexp.MustCompile(`(?i)sqft|sq\s*ft`)
)

// poolRules classify a pool mention; the first matching rule wins, so the
// order encodes precedence (community over private variants over generic).
type poolRule struct {
	match func(text string) bool
	label func(text string) string
}

var (
	communityPoolRe     = regexp.MustCompile(`(?i)community\s+pool`)
	privateOasisRe      = regexp.MustCompile(`(?i)private\s+oasis`)
	privateOasisPoolRe  = regexp.MustCompile(`(?i)private\s+oasis.*?pool`)
	poolRe              = regexp.MustCompile(`(?i)pool`)
	privatePoolRe       = regexp.MustCompile(`(?i)private\s+.*pool|private\s+backyard\s+pool`)
	privateIngroundRe   = regexp.MustCompile(`(?i)private\s+inground\s+pool`)
	privateAboveRe      = regexp.MustCompile(`(?i)private\s+above\s+ground\s+pool`)
	ingroundPoolRe    = regexp.MustCompile(`(?i)inground\s+pool`)
	aboveGroundPoolRe = regexp.MustCompile(`(?i)above\s+ground\s+pool`)
	abovePoolRe       = regexp.MustCompile(`(?i)above\s+pool`)
)

var poolRules = []poolRule{
	{
		match: func(t string) bool { return communityPoolRe.MatchString(t) },
		label: func(string) string { return "Community Pool" },
	},
	{
		match: func(t string) bool {
			return (privateOasisRe.MatchString(t) && poolRe.MatchString(t)) || privateOasisPoolRe.MatchString(t)
		},
		label: func(t string) string {
			if aboveGroundPoolRe.MatchString(t) {
				return "Private Above Ground Pool"
			}
			return "Private Pool"
		},
	},
	{
		match: func(t string) bool { return privatePoolRe.MatchString(t) },
		label: func(t string) string {
			switch {
			case privateIngroundRe.MatchString(t):
				return "Private Inground Pool"
			case privateAboveRe.MatchString(t):
				return "Private Above Ground Pool"
			default:
				return "Private Pool"
			}
		},
	},
	{
		match: func(t string) bool { return ingroundPoolRe.MatchString(t) },
		label: func(string) string { return "Inground Pool" },
	},
	{
		match: func(t string) bool { return aboveGroundPoolRe.MatchString(t) },
		label: func(string) string { return "Above Ground Pool" },
	},
	{
		match: func(t string) bool { return abovePoolRe.MatchString(t) },
		label: func(string) string { return "Above Ground Pool" },
	},
	{
		match: func(t string) bool { return poolRe.MatchString(t) },
		label: func(string) string { return "Pool" },
	},
}

var paymentRestatementStrategies = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Est\.?\s*:?\s*\$[\d,]+/mo`),
	regexp.MustCompile(`(?i)Estimated\s+payment\s*:?\s*\$[\d,]+/mo`),
	regexp.MustCompile(`(?i)\$[\d,]+/month`),
	regexp.MustCompile(`(?i)Monthly\s+payment\s*:?\s*\$[\d,]+`),
}

var paymentRestatementLabelRe = regexp.MustCompile(`(?i)Est\.?\s*:?\s*|Estimated\s+payment\s*:?\s*|Monthly\s+payment\s*:?\s*`)

var (
	hoaStrategies = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\$[\d,]+\s+HOA`),
		regexp.MustCompile(`(?i)HOA\s*:?\s*\$[\d,]+`),
		regexp.MustCompile(`(?i)HOA\s+fee\s*:?\s*\$[\d,]+`),
	}
	hoaPlaceholderRe = regexp.MustCompile(`(?i)\$(?:--|0+)\s+HOA|HOA\s*:?\s*\$(?:--|0+)`)
	hoaFeeLabelRe    = regexp.MustCompile(`(?i)HOA\s+fee\s*:?\s*`)
	hoaSuffixRe      = regexp.MustCompile(`(?i)\s+HOA`)

	cddStrategies = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\$[\d,]+\s+CDD`),
		regexp.MustCompile(`(?i)CDD\s*:?\s*\$[\d,]+`),
		regexp.MustCompile(`(?i)CDD\s+fee\s*:?\s*\$[\d,]+`),
	}
	cddFeeLabelRe = regexp.MustCompile(`(?i)CDD\s+fee\s*:?\s*`)
	cddSuffixRe   = regexp.MustCompile(`(?i)\s+CDD`)
)

// factProducer yields zero or more notes fragments from the relevant text.
// Producers run once each, in order; the order of the returned fragments
// is the order they appear in the notes string.
type factProducer func(relevant string) []string

var factProducers = []factProducer{
	bedsBathsSqftFacts,
	garageFact,
	daysOnMarketFact,
	poolFact,
	paymentRestatementFact,
	hoaFact,
	cddFact,
}

// ExtractFacts collects human-readable property-fact fragments from the
// relevant text, in a fixed order.
func ExtractFacts(relevant string) []string {
	var fragments []string
	for _, produce := range factProducers {
		fragments = append(fragments, produce(relevant)...)
	}
	return fragments
}

// bedsBathsSqftFacts tries the compact three-number line first, then the
// OCR-fragmented variant where numbers and labels land on separate lines,
// then independent labeled-number searches.
func bedsBathsSqftFacts(relevant string) []string {
	if facts := compactFacts(relevant); len(facts) > 0 {
		return facts
	}
	if facts := fragmentedFacts(relevant); len(facts) > 0 {
		return facts
	}
	return labeledFacts(relevant)
}

func compactFacts(relevant string) []string {
	m := compactFactsRe.FindStringSubmatch(relevant)
	if m == nil {
		return nil
	}

	beds, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	baths, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return nil
	}
	sqft, err := strconv.Atoi(strings.ReplaceAll(m[3], ",", ""))
	if err != nil {
		return nil
	}

	// Three adjacent numbers can just as easily be a price or a ZIP code;
	// only in-band triples are believed.
	if beds < minPlausibleBeds || beds > maxPlausibleBeds ||
		baths < minPlausibleBeds || baths > maxPlausibleBeds ||
		sqft < minPlausibleSqft || sqft > maxPlausibleSqft {
		return nil
	}

	return []string{m[1] + " beds", m[2] + " baths", m[3] + " sqft"}
}

// fragmentedFacts handles OCR output such as "3\n2\n2,086\nbeds\nbaths\n
// sqft": each standalone number is associated with the nearest label word
// within the next three lines.
func fragmentedFacts(relevant string) []string {
	var lines []string
	for _, l := range blankLineSplitRe.Split(relevant, -1) {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	var beds, sqft int
	var baths float64

	for i, line := range lines {
		if !standaloneNumberRe.MatchString(line) && !fragmentedNumberRe.MatchString(line) {
			continue
		}

		end := i + 4
		if end > len(lines) {
			end = len(lines)
		}
		following := strings.ToLower(strings.Join(lines[i+1:end], " "))

		switch {
		case beds == 0 && bedLabelRe.MatchString(following):
			if n, err := strconv.Atoi(strings.ReplaceAll(line, ",", "")); err == nil && n >= minPlausibleBeds && n <= maxPlausibleBeds {
				beds = n
			}
		case baths == 0 && bathLabelRe.MatchString(following):
			if f, err := strconv.ParseFloat(line, 64); err == nil && f >= minPlausibleBeds && f <= maxPlausibleBeds {
				baths = f
			}
		case sqft == 0 && sqftLabelRe.MatchString(following):
			if n, err := strconv.Atoi(strings.ReplaceAll(line, ",", "")); err == nil && n >= minPlausibleSqft && n <= maxPlausibleSqft {
				sqft = n
			}
		}
	}

	var facts []string
	if beds > 0 {
		facts = append(facts, strconv.Itoa(beds)+" beds")
	}
	if baths > 0 {
		facts = append(facts, strconv.FormatFloat(baths, 'f', -1, 64)+" baths")
	}
	if sqft > 0 {
		facts = append(facts, groupDigits(sqft)+" sqft")
	}
	return facts
}

// labeledFacts runs three independent labeled-number searches, each
// guarded against misreading a ZIP code (five digits right after a state
// abbreviation) as a count.
func labeledFacts(relevant string) []string {
	var facts []string

	for _, loc := range labeledBedsRe.FindAllStringSubmatchIndex(relevant, -1) {
		digits := relevant[loc[2]:loc[3]]
		beds, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		if isZipCandidate(relevant, loc[0], float64(beds)) {
			continue
		}
		if beds >= minPlausibleBeds && beds <= maxPlausibleBeds {
			facts = append(facts, digits+" beds")
			break
		}
	}

	for _, loc := range labeledBathsRe.FindAllStringSubmatchIndex(relevant, -1) {
		digits := relevant[loc[2]:loc[3]]
		baths, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			continue
		}
		if isZipCandidate(relevant, loc[0], baths) {
			continue
		}
		if baths >= minPlausibleBeds && baths <= maxPlausibleBeds {
			facts = append(facts, digits+" baths")
			break
		}
	}

	for _, loc := range labeledSqftRe.FindAllStringSubmatchIndex(relevant, -1) {
		digits := relevant[loc[2]:loc[3]]
		sqft, err := strconv.Atoi(strings.ReplaceAll(digits, ",", ""))
		if err != nil {
			continue
		}
		if sqft >= minPlausibleSqft && sqft <= maxPlausibleSqft {
			facts = append(facts, digits+" sqft")
			break
		}
	}

	return facts
}

func isZipCandidate(text string, matchStart int, value float64) bool {
	if value <= 10_000 {
		return false
	}
	start := matchStart - 10
	if start < 0 {
		start = 0
	}
	return stateBeforeRe.MatchString(text[start:matchStart])
}

func garageFact(relevant string) []string {
	if m := garageRe.FindStringSubmatch(relevant); m != nil {
		return []string{m[1] + "-car garage"}
	}
	return nil
}

func daysOnMarketFact(relevant string) []string {
	m := daysOnMarketRe.FindStringSubmatch(relevant)
	if m == nil {
		return nil
	}
	days, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	label := "days"
	if days == 1 {
		label = "day"
	}
	return []string{strconv.Itoa(days) + " " + label + " on market"}
}

func poolFact(relevant string) []string {
	for _, rule := range poolRules {
		if rule.match(relevant) {
			return []string{rule.label(relevant)}
		}
	}
	return nil
}

func paymentRestatementFact(relevant string) []string {
	for _, re := range paymentRestatementStrategies {
		if m := re.FindString(relevant); m != "" {
			return []string{"Est. Payment: " + paymentRestatementLabelRe.ReplaceAllString(m, "")}
		}
	}
	return nil
}

func hoaFact(relevant string) []string {
	for _, re := range hoaStrategies {
		m := re.FindString(relevant)
		if m == "" {
			continue
		}
		// $-- and $0 are placeholders, not fees.
		if hoaPlaceholderRe.MatchString(m) {
			continue
		}
		m = hoaFeeLabelRe.ReplaceAllString(m, "HOA: ")
		m = hoaSuffixRe.ReplaceAllString(m, " HOA")
		return []string{m}
	}
	return nil
}

func cddFact(relevant string) []string {
	for _, re := range cddStrategies {
		m := re.FindString(relevant)
		if m == "" {
			continue
		}
		m = cddFeeLabelRe.ReplaceAllString(m, "CDD: ")
		m = cddSuffixRe.ReplaceAllString(m, " CDD")
		return []string{m}
	}
	return nil
}

// groupDigits renders n with thousands separators ("1343" -> "1,343").
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString(",")
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

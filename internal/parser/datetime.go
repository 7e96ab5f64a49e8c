package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Acceptance windows for candidate open-house dates. The weekday fallback
// only trusts dates between today and this many years out, so text like
// "built in 1991" is never taken for a schedule. The numeric fallback uses
// a fixed year band instead. Both are approximations, not guarantees, for
// past listings or far-future schedules.
const (
	openHouseHorizonYears = 2
	fallbackYearMin       = 2020
	fallbackYearMax       = 2030
)

const (
	weekdayNames = `Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday|Mon|Tue|Wed|Thu|Fri|Sat|Sun`
	monthNames   = `January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec`
)

// Ordered attempts for a "weekday, month day[, year]" phrase adjacent to
// an "h:mm AM - h:mm PM" range: a labeled "Open house" block, a labeled
// "Open House:" block, then a bare date+time pair.
var openHouseBlockStrategies = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Open house\s*([A-Za-z]+,\s*[A-Za-z]+\s*\d+)\s*(\d{1,2}:\d{2}\s*[AP]M\s*-\s*\d{1,2}:\d{2}\s*[AP]M)`),
	regexp.MustCompile(`(?i)Open House:\s*([A-Za-z]+,\s*[A-Za-z]+\s*\d+(?:,?\s*\d{4})?)\s*(\d{1,2}:\d{2}\s*[AP]M\s*-\s*\d{1,2}:\d{2}\s*[AP]M)`),
	regexp.MustCompile(`(?i)([A-Za-z]+,\s*[A-Za-z]+\s*\d+(?:,?\s*\d{4})?)\s*(\d{1,2}:\d{2}\s*[AP]M\s*-\s*\d{1,2}:\d{2}\s*[AP]M)`),
}

var fallbackTimeStrategies = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:open\s*house[:\s]*)?\d{1,2}:\d{2}\s*(?:AM|PM)?\s*[-–to\s]+\s*\d{1,2}:\d{2}\s*(?:AM|PM)?`),
	regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(?:AM|PM)?\s*[-–to\s]+\s*\d{1,2}:\d{2}\s*(?:AM|PM)?`),
	regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(?:AM|PM)`),
}

var (
	weekdayDateRe = regexp.MustCompile(`(?i)(?:` + weekdayNames + `)[a-z]*,?\s*(?:` + monthNames + `)[a-z]*\s*\d{1,2}(?:st|nd|rd|th)?`)

	monthDayYearRe = regexp.MustCompile(`(?i)(?:` + monthNames + `)[a-z]*\s*\d{1,2}(?:st|nd|rd|th)?,?\s*\d{4}`)
	slashDateRe    = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`)
	isoDateRe      = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

	openHouseLabelRe = regexp.MustCompile(`(?i)^open\s*house[:\s]*`)
	weekdayTokenRe   = regexp.MustCompile(`(?i)\b(?:Mon|Tue|Wed|Thu|Fri|Sat|Sun)`)

	// Captures month name, day, and optional year from a date phrase with
	// an optional leading weekday.
	datePhraseRe = regexp.MustCompile(`(?i)^(?:[A-Za-z]+,\s*)?([A-Za-z]+)\.?\s*(\d{1,2})(?:st|nd|rd|th)?(?:,?\s*(\d{4}))?`)

	fourDigitYearRe = regexp.MustCompile(`\d{4}`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ExtractDateTime finds the open-house date and time in a segmented
// listing. The time range is preserved verbatim; the date is returned as
// ISO YYYY-MM-DD built from explicit calendar fields.
func ExtractDateTime(seg Segments) (string, string) {
	return extractDateTime(seg, time.Now())
}

func extractDateTime(seg Segments, now time.Time) (date, timeRange string) {
	for _, re := range openHouseBlockStrategies {
		m := re.FindStringSubmatch(seg.Full)
		if m == nil {
			continue
		}
		timeRange = m[2]
		if t, ok := parseDatePhrase(m[1], now.Year()); ok {
			date = LocalISODate(t)
		}
		break
	}

	if timeRange == "" {
		for _, re := range fallbackTimeStrategies {
			if m := re.FindString(seg.Relevant); m != "" {
				timeRange = openHouseLabelRe.ReplaceAllString(strings.TrimSpace(m), "")
				break
			}
		}
	}

	if date == "" {
		date = dateFromWeekdayLines(seg.Lines, now)
	}
	if date == "" {
		date = dateFromNumericLines(seg.Lines, now)
	}

	return date, timeRange
}

// dateFromWeekdayLines scans lines for a weekday+month+day phrase,
// accepting only dates between today and the horizon so unrelated dates
// in the body text are not mistaken for a schedule.
func dateFromWeekdayLines(lines []string, now time.Time) string {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	horizon := startOfToday.AddDate(openHouseHorizonYears, 0, 0)

	for _, line := range lines {
		m := weekdayDateRe.FindString(line)
		if m == "" {
			continue
		}
		t, ok := parseDatePhrase(m, now.Year())
		if !ok {
			continue
		}
		if t.Before(startOfToday) || t.After(horizon) {
			continue
		}
		return LocalISODate(t)
	}
	return ""
}

// dateFromNumericLines is the last-resort scan for generic date formats,
// constrained to a fixed year band.
func dateFromNumericLines(lines []string, now time.Time) string {
	for _, line := range lines {
		// Price-only lines are full of digit runs that look like dates.
		if strings.Contains(line, "$") && !weekdayTokenRe.MatchString(line) {
			continue
		}

		for _, re := range []*regexp.Regexp{monthDayYearRe, slashDateRe, isoDateRe} {
			m := re.FindString(line)
			if m == "" {
				continue
			}
			m = openHouseLabelRe.ReplaceAllString(m, "")
			t, ok := parseAnyDate(m, now.Year())
			if !ok {
				continue
			}
			if t.Year() < fallbackYearMin || t.Year() > fallbackYearMax {
				continue
			}
			return LocalISODate(t)
		}
	}
	return ""
}

// parseDatePhrase parses a "[weekday,] month day[, year]" phrase into a
// local-midnight time, defaulting the year when the phrase has none.
// Out-of-range days roll over to the following month, mirroring how
// lenient date constructors treat them.
func parseDatePhrase(phrase string, defaultYear int) (time.Time, bool) {
	m := datePhraseRe.FindStringSubmatch(strings.TrimSpace(phrase))
	if m == nil {
		return time.Time{}, false
	}
	month, ok := monthsByPrefix[monthKey(m[1])]
	if !ok {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(m[2])
	if err != nil || day < 1 {
		return time.Time{}, false
	}
	year := defaultYear
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local), true
}

// parseAnyDate handles the numeric-fallback formats in addition to month
// phrases: M/D/YY[YY] and YYYY-MM-DD.
func parseAnyDate(s string, defaultYear int) (time.Time, bool) {
	if m := slashDateRe.FindString(s); m == s {
		parts := strings.Split(m, "/")
		month, _ := strconv.Atoi(parts[0])
		day, _ := strconv.Atoi(parts[1])
		year, _ := strconv.Atoi(parts[2])
		if year < 100 {
			year += 2000
		}
		if month < 1 || month > 12 || day < 1 {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
	}
	if m := isoDateRe.FindString(s); m == s {
		year, _ := strconv.Atoi(s[0:4])
		month, _ := strconv.Atoi(s[5:7])
		day, _ := strconv.Atoi(s[8:10])
		if month < 1 || month > 12 || day < 1 {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local), true
	}
	if !fourDigitYearRe.MatchString(s) {
		s = s + ", " + strconv.Itoa(defaultYear)
	}
	return parseDatePhrase(s, defaultYear)
}

// LocalISODate formats a time as YYYY-MM-DD from its local calendar
// fields. Serializing through a generic timestamp conversion can shift
// midnight into the adjacent day depending on host timezone; deriving the
// string from explicit (year, month, day) integers cannot.
func LocalISODate(t time.Time) string {
	year, month, day := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// NormalizeOpenHouseDate converts a scraped display date such as
// "Saturday, June 21" to ISO form using the current year and the same
// local-date construction as text extraction. The second return reports
// whether the string was recognized.
func NormalizeOpenHouseDate(display string) (string, bool) {
	m := scrapedDateRe.FindStringSubmatch(display)
	if m == nil {
		return "", false
	}
	month, ok := monthsByPrefix[monthKey(m[2])]
	if !ok {
		return "", false
	}
	day, err := strconv.Atoi(m[3])
	if err != nil {
		return "", false
	}
	t := time.Date(time.Now().Year(), month, day, 0, 0, 0, 0, time.Local)
	return LocalISODate(t), true
}

var scrapedDateRe = regexp.MustCompile(`(?i)(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)[^,]*,\s*(\w+)\s+(\d+)`)

func monthKey(name string) string {
	name = strings.ToLower(name)
	if len(name) > 3 {
		name = name[:3]
	}
	return name
}

package scraper

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"openhouse/internal/domain"
)

var (
	priceFigureRe  = regexp.MustCompile(`\$[\d,]+(?:\.\d{2})?`)
	simplePriceRe  = regexp.MustCompile(`\$[\d,]+`)
	nonDigitRe     = regexp.MustCompile(`[^0-9]`)
	openHouseDayRe = regexp.MustCompile(`(?i)((?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)[^,]*,\s*\w+\s+\d+)`)
	timeRangeRe    = regexp.MustCompile(`(?i)(\d{1,2}:\d{2}\s*(?:AM|PM).*?\d{1,2}:\d{2}\s*(?:AM|PM))`)
	dayAndTimeRe   = regexp.MustCompile(`(?i)((?:Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday)[^,]*,\s*\w+\s+\d+).*?(\d{1,2}:\d{2}\s*(?:AM|PM).*?\d{1,2}:\d{2}\s*(?:AM|PM))`)
)

// siteRule binds a hostname predicate to an extraction routine. Rules are
// tried in order and the first matching host wins; the last rule is the
// generic fallback and matches everything.
type siteRule struct {
	match func(host string) bool
	apply func(doc *goquery.Document, p *domain.ScrapedProperty)
}

var siteRules = []siteRule{
	{
		match: func(h string) bool { return strings.Contains(h, "zillow.com") },
		apply: extractZillow,
	},
	{
		match: func(h string) bool { return strings.Contains(h, "realtor.com") },
		apply: extractRealtor,
	},
	{
		match: func(string) bool { return true },
		apply: extractGeneric,
	},
}

// ExtractProperty parses rendered listing HTML with the rule set for the
// page's host. An anti-bot interstitial is reported through Notes rather
// than as an error so callers can surface it to the user.
func ExtractProperty(pageURL, htmlContent string) (*domain.ScrapedProperty, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	property := &domain.ScrapedProperty{}

	title := strings.ToLower(doc.Find("title").First().Text())
	if strings.Contains(title, "access") && strings.Contains(title, "denied") {
		property.Notes = "Access denied by website"
		return property, nil
	}

	host := ""
	if u, err := url.Parse(pageURL); err == nil {
		host = u.Hostname()
	}

	for _, rule := range siteRules {
		if rule.match(host) {
			rule.apply(doc, property)
			break
		}
	}

	return property, nil
}

// bodyText returns the page's visible text with script and style content
// removed.
func bodyText(doc *goquery.Document) string {
	doc.Find("script, style").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})
	return strings.TrimSpace(doc.Find("body").Text())
}

// extractZillow works off the page text: Zillow's markup changes often,
// but the largest plausible dollar figure is reliably the asking price.
func extractZillow(doc *goquery.Document, p *domain.ScrapedProperty) {
	text := bodyText(doc)

	maxPrice := 0
	for _, figure := range priceFigureRe.FindAllString(text, -1) {
		n, err := strconv.Atoi(nonDigitRe.ReplaceAllString(figure, ""))
		if err != nil {
			continue
		}
		if n > maxPrice {
			maxPrice = n
		}
	}
	if maxPrice > 50_000 {
		p.Price = strconv.Itoa(maxPrice)
	}

	// The title leads with the address: "123 Main St, City, ST | Zillow".
	title := doc.Find("title").First().Text()
	for _, sep := range []string{" | ", " - "} {
		if head, _, found := strings.Cut(title, sep); found {
			title = head
			break
		}
	}
	if title = strings.TrimSpace(title); len(title) > 10 {
		p.Address = title
	}
	if p.Address == "" {
		doc.Find("h1").EachWithBreak(func(i int, s *goquery.Selection) bool {
			t := strings.TrimSpace(s.Text())
			if len(t) > 10 && strings.ContainsAny(t, "0123456789") {
				p.Address = t
				return false
			}
			return true
		})
	}

	if m := dayAndTimeRe.FindStringSubmatch(text); m != nil {
		p.Date = m[1]
		p.Time = m[2]
	}

	p.ImageURL = zillowPhoto(doc)
}

// zillowPhoto picks the first image hosted on the listing-photo CDN,
// skipping logos, icons, and chrome. Returns "" when nothing qualifies;
// no image is better than a site logo.
func zillowPhoto(doc *goquery.Document) string {
	var photo string
	excluded := []string{"z-logo", "logo", "icon", ".svg", "/static/", "brand", "header"}

	doc.Find("img").EachWithBreak(func(i int, s *goquery.Selection) bool {
		src, ok := s.Attr("src")
		if !ok || !strings.Contains(src, "photos.zillowstatic.com") {
			return true
		}
		for _, fragment := range excluded {
			if strings.Contains(src, fragment) {
				return true
			}
		}
		if !dimensionAtLeast(s, "width", 300) || !dimensionAtLeast(s, "height", 200) {
			return true
		}
		photo = src
		return false
	})
	return photo
}

// dimensionAtLeast rejects an image whose declared dimension marks it as
// a thumbnail. Static HTML carries no rendered size, so a missing
// attribute passes.
func dimensionAtLeast(s *goquery.Selection, attr string, min int) bool {
	v, ok := s.Attr(attr)
	if !ok {
		return true
	}
	n, err := strconv.Atoi(strings.TrimSuffix(v, "px"))
	if err != nil {
		return true
	}
	return n > min
}

func extractRealtor(doc *goquery.Document, p *domain.ScrapedProperty) {
	if el := firstMatch(doc, `[data-testid="price-display"]`, ".price-display", `span[data-testid="price"]`); el != nil {
		p.Price = nonDigitRe.ReplaceAllString(el.Text(), "")
	}

	if el := firstMatch(doc, `[data-testid="address-display"]`, `h1[data-testid="property-street"]`, ".address-display"); el != nil {
		p.Address = strings.TrimSpace(el.Text())
	}

	if el := firstMatch(doc, `[data-testid="open-house"]`, ".open-house-card", `[class*="open-house"]`); el != nil {
		text := el.Text()
		if m := openHouseDayRe.FindString(text); m != "" {
			p.Date = m
		}
		if m := timeRangeRe.FindString(text); m != "" {
			p.Time = m
		}
	}

	if el := firstMatch(doc, `img[data-testid="hero-image"]`, ".hero-image img", `img[src*="rdcpix.com"]`); el != nil {
		p.ImageURL, _ = el.Attr("src")
	}
}

// extractGeneric tries common price/address markup. Image extraction is
// deliberately skipped for unknown sites; it mostly finds logos.
func extractGeneric(doc *goquery.Document, p *domain.ScrapedProperty) {
	for _, sel := range []string{"[data-price]", ".price", `[class*="price"]`, `[id*="price"]`} {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		if m := simplePriceRe.FindString(el.Text()); m != "" {
			p.Price = nonDigitRe.ReplaceAllString(m, "")
			break
		}
	}

	for _, sel := range []string{"[data-address]", ".address", "h1", `[class*="address"]`} {
		el := doc.Find(sel).First()
		if el.Length() == 0 {
			continue
		}
		if t := strings.TrimSpace(el.Text()); len(t) > 10 {
			p.Address = t
			break
		}
	}
}

// firstMatch returns the first non-empty selection among the selectors,
// or nil.
func firstMatch(doc *goquery.Document, selectors ...string) *goquery.Selection {
	for _, sel := range selectors {
		if el := doc.Find(sel).First(); el.Length() > 0 {
			return el
		}
	}
	return nil
}

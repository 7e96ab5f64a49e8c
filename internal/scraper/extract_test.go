package scraper

import "testing"

const zillowPage = `<html>
<head><title>14 Ballard Lane, Palm Coast, FL 32137 | Zillow</title></head>
<body>
<img src="https://www.zillowstatic.com/s3/pfs/static/z-logo-default.svg" width="100" height="40">
<h1>14 Ballard Lane, Palm Coast, FL 32137</h1>
<span>$310,000</span>
<span>Est. $2,139/mo</span>
<p>Open house: Saturday, June 21 from 12:00 PM - 2:00 PM</p>
<img src="https://photos.zillowstatic.com/fp/abc123-cc_ft_960.jpg" width="960" height="720">
<script>var tracking = "$99,999,999";</script>
</body>
</html>`

func TestExtractProperty_Zillow(t *testing.T) {
	p, err := ExtractProperty("https://www.zillow.com/homedetails/14-ballard-ln/123_zpid/", zillowPage)
	if err != nil {
		t.Fatalf("ExtractProperty: %v", err)
	}

	if p.Price != "310000" {
		t.Errorf("price = %q; want %q", p.Price, "310000")
	}
	if p.Address != "14 Ballard Lane, Palm Coast, FL 32137" {
		t.Errorf("address = %q; want title prefix", p.Address)
	}
	if p.Date != "Saturday, June 21" {
		t.Errorf("date = %q; want %q", p.Date, "Saturday, June 21")
	}
	if p.Time != "12:00 PM - 2:00 PM" {
		t.Errorf("time = %q; want %q", p.Time, "12:00 PM - 2:00 PM")
	}
	if p.ImageURL != "https://photos.zillowstatic.com/fp/abc123-cc_ft_960.jpg" {
		t.Errorf("imageUrl = %q; want listing photo", p.ImageURL)
	}
}

func TestExtractProperty_ZillowSkipsLogosAndThumbnails(t *testing.T) {
	page := `<html><head><title>14 Ballard Lane, Palm Coast, FL 32137 | Zillow</title></head>
<body>
<img src="https://photos.zillowstatic.com/fp/brand-banner.jpg" width="960" height="720">
<img src="https://photos.zillowstatic.com/fp/thumb.jpg" width="120" height="90">
</body></html>`

	p, err := ExtractProperty("https://www.zillow.com/homedetails/123", page)
	if err != nil {
		t.Fatalf("ExtractProperty: %v", err)
	}
	if p.ImageURL != "" {
		t.Errorf("imageUrl = %q; want none when only logos and thumbnails exist", p.ImageURL)
	}
}

func TestExtractProperty_AccessDenied(t *testing.T) {
	page := `<html><head><title>Access to this page has been denied</title></head><body></body></html>`

	p, err := ExtractProperty("https://www.zillow.com/homedetails/123", page)
	if err != nil {
		t.Fatalf("ExtractProperty: %v", err)
	}

	if p.Notes != "Access denied by website" {
		t.Errorf("notes = %q; want access-denied marker", p.Notes)
	}
	if p.Address != "" || p.Price != "" {
		t.Errorf("denied page must not yield details, got address=%q price=%q", p.Address, p.Price)
	}
}

func TestExtractProperty_Realtor(t *testing.T) {
	page := `<html><head><title>Listing</title></head>
<body>
<div data-testid="price-display">$425,000</div>
<h1 data-testid="property-street">45 Oak Avenue, Springfield, IL 62704</h1>
<div class="open-house-card">Open House Sunday, July 6 1:00 PM - 3:00 PM</div>
<img data-testid="hero-image" src="https://ap.rdcpix.com/abc123l-m0od.jpg">
</body></html>`

	p, err := ExtractProperty("https://www.realtor.com/realestateandhomes-detail/45-Oak-Ave", page)
	if err != nil {
		t.Fatalf("ExtractProperty: %v", err)
	}

	if p.Price != "425000" {
		t.Errorf("price = %q; want %q", p.Price, "425000")
	}
	if p.Address != "45 Oak Avenue, Springfield, IL 62704" {
		t.Errorf("address = %q", p.Address)
	}
	if p.Date != "Sunday, July 6" {
		t.Errorf("date = %q; want %q", p.Date, "Sunday, July 6")
	}
	if p.Time != "1:00 PM - 3:00 PM" {
		t.Errorf("time = %q; want %q", p.Time, "1:00 PM - 3:00 PM")
	}
	if p.ImageURL != "https://ap.rdcpix.com/abc123l-m0od.jpg" {
		t.Errorf("imageUrl = %q", p.ImageURL)
	}
}

func TestExtractProperty_GenericSite(t *testing.T) {
	page := `<html><head><title>Home for sale</title></head>
<body>
<div class="price">Listed at $250,000</div>
<h1>45 Oak Avenue, Springfield</h1>
<img src="https://cdn.example.com/logo.png">
</body></html>`

	p, err := ExtractProperty("https://www.example.com/listing/45-oak", page)
	if err != nil {
		t.Fatalf("ExtractProperty: %v", err)
	}

	if p.Price != "250000" {
		t.Errorf("price = %q; want %q", p.Price, "250000")
	}
	if p.Address != "45 Oak Avenue, Springfield" {
		t.Errorf("address = %q", p.Address)
	}
	if p.ImageURL != "" {
		t.Errorf("imageUrl = %q; generic sites must not yield images", p.ImageURL)
	}
}

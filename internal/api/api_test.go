package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"openhouse/internal/auth"
	"openhouse/internal/config"
	"openhouse/internal/domain"
	"openhouse/internal/monitoring"
)

// One shared server for the package: prometheus collectors register on
// the default registry, so metrics must only be constructed once.
var testServer = NewServer(
	&config.Config{ServerPort: "0", SessionTTLHours: 1, ScrapeCacheDays: 1, ScrapeTimeout: 1},
	nil, nil, nil, nil,
	auth.NewService(4),
	monitoring.NewMetrics(),
	zap.NewNop(),
)

type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) ExtractText(context.Context, string) (string, error) {
	return s.text, s.err
}

func (s *stubExtractor) Enabled() bool { return true }

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestHandleParseListing(t *testing.T) {
	body := `{"text": "$310,000\n14 Ballard Lane, Palm Coast, FL 32137\n3 beds 2 baths 1,343 sqft"}`
	w := postJSON(t, testServer.handleParseListing, body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var parsed domain.ParsedListing
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.Price != "310000" {
		t.Errorf("price = %q; want %q", parsed.Price, "310000")
	}
	if parsed.Address == "" {
		t.Error("address missing")
	}
	if parsed.Zestimate != domain.EstimateNotAvailable {
		t.Errorf("zestimate = %q; want sentinel", parsed.Zestimate)
	}
}

func TestHandleParseListing_ImageURLDetected(t *testing.T) {
	body := `{"text": "$310,000 at 14 Ballard Lane, Palm Coast, FL 32137 https://photos.example.com/house.jpg"}`
	w := postJSON(t, testServer.handleParseListing, body)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var parsed domain.ParsedListing
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.ImageURL != "https://photos.example.com/house.jpg" {
		t.Errorf("imageUrl = %q", parsed.ImageURL)
	}
}

func TestHandleParseListing_NoDetails(t *testing.T) {
	w := postJSON(t, testServer.handleParseListing, `{"text": "nothing useful here"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Could not extract property details") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestHandleParseListing_MissingText(t *testing.T) {
	w := postJSON(t, testServer.handleParseListing, `{}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Text is required") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestHandleOCRParse(t *testing.T) {
	testServer.ocr = &stubExtractor{text: "$310,000\n14 Ballard Lane, Palm Coast, FL 32137"}

	w := postJSON(t, testServer.handleOCRParse, `{"imageData": "aGVsbG8="}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var parsed domain.ParsedListing
	if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.Price != "310000" {
		t.Errorf("price = %q; want %q", parsed.Price, "310000")
	}
}

func TestHandleOCRParse_ExtractionFailure(t *testing.T) {
	testServer.ocr = &stubExtractor{err: errors.New("api unreachable")}

	w := postJSON(t, testServer.handleOCRParse, `{"imageData": "aGVsbG8="}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d; want 500", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Failed to extract text from image") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestScrapeResponse(t *testing.T) {
	scraped := &domain.ScrapedProperty{
		Address: "14 Ballard Lane, Palm Coast, FL 32137",
		Price:   "310000",
		Date:    "Saturday, June 21",
		Time:    "12:00 PM - 2:00 PM",
	}

	result := scrapeResponse("https://www.zillow.com/homedetails/123", scraped)

	if result.Date == "" || strings.Contains(result.Date, "Saturday") {
		t.Errorf("date = %q; want ISO form", result.Date)
	}
	if result.Notes != "Source: https://www.zillow.com/homedetails/123" {
		t.Errorf("notes = %q", result.Notes)
	}
}

func TestScrapeResponse_UnparseableDate(t *testing.T) {
	scraped := &domain.ScrapedProperty{
		Address: "14 Ballard Lane",
		Date:    "sometime next weekend",
		Notes:   "Access denied by website",
	}

	result := scrapeResponse("https://example.com/listing", scraped)

	if result.Date != "" {
		t.Errorf("date = %q; want empty for unparseable display date", result.Date)
	}
	want := "Open house: sometime next weekend\n\nSource: https://example.com/listing\n\nAccess denied by website"
	if result.Notes != want {
		t.Errorf("notes = %q; want %q", result.Notes, want)
	}
}

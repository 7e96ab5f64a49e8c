package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"openhouse/internal/domain"
	"openhouse/internal/parser"
	"openhouse/internal/storage"
)

func (s *Server) handleParseListing(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		s.respondWithError(w, http.StatusBadRequest, "Text is required")
		return
	}

	parsed := parser.ParseListingText(req.Text)
	if img := parser.DetectImageURL(req.Text); img != "" {
		parsed.ImageURL = img
	}

	if !parsed.HasDetails() {
		s.metrics.IncErrorsTotal("parse_failed")
		s.respondWithError(w, http.StatusBadRequest,
			"Could not extract property details from the provided text. Please ensure you're copying from a property listing page.")
		return
	}

	s.metrics.IncParsedTotal("text")
	s.respondWithJSON(w, http.StatusOK, parsed)
}

func (s *Server) handleOCRParse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageData string `json:"imageData"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageData == "" {
		s.respondWithError(w, http.StatusBadRequest, "Image data is required")
		return
	}

	text, err := s.ocr.ExtractText(r.Context(), req.ImageData)
	if err != nil {
		s.logger.Error("ocr extraction failed", zap.Error(err))
		s.metrics.IncErrorsTotal("ocr_failed")
		s.respondWithError(w, http.StatusInternalServerError, "Failed to extract text from image")
		return
	}

	parsed := parser.ParseListingText(text)
	if !parsed.HasDetails() {
		s.metrics.IncErrorsTotal("parse_failed")
		s.respondWithError(w, http.StatusBadRequest,
			"Could not extract property details from the image. Please ensure the image contains a clear property listing.")
		return
	}

	s.metrics.IncParsedTotal("ocr")
	s.respondWithJSON(w, http.StatusOK, parsed)
}

func (s *Server) handleScrapeURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		s.respondWithError(w, http.StatusBadRequest, "URL is required")
		return
	}
	if u, err := url.Parse(req.URL); err != nil || u.Scheme == "" || u.Host == "" {
		s.respondWithError(w, http.StatusBadRequest, "Invalid URL format")
		return
	}

	scraped, err := s.redisStore.GetCachedScrape(r.Context(), req.URL)
	switch {
	case err == nil:
		s.metrics.IncScrapedTotal("hit")
	case errors.Is(err, storage.ErrNotFound):
		s.metrics.IncScrapedTotal("miss")
		scraped, err = s.scraper.Scrape(r.Context(), req.URL)
		if err != nil {
			s.metrics.IncScrapedTotal("failed")
			s.respondWithError(w, http.StatusInternalServerError, "Failed to scrape property details")
			return
		}
		ttl := time.Duration(s.config.ScrapeCacheDays) * 24 * time.Hour
		if err := s.redisStore.CacheScrape(r.Context(), req.URL, scraped, ttl); err != nil {
			s.logger.Warn("failed to cache scrape result", zap.String("url", req.URL), zap.Error(err))
		}
	default:
		s.logger.Warn("scrape cache lookup failed", zap.String("url", req.URL), zap.Error(err))
		s.metrics.IncScrapedTotal("miss")
		scraped, err = s.scraper.Scrape(r.Context(), req.URL)
		if err != nil {
			s.metrics.IncScrapedTotal("failed")
			s.respondWithError(w, http.StatusInternalServerError, "Failed to scrape property details")
			return
		}
	}

	s.metrics.IncParsedTotal("scrape")
	s.respondWithJSON(w, http.StatusOK, scrapeResponse(req.URL, scraped))
}

// scrapeResponse shapes a scrape result for the listing form: the site's
// display date becomes an ISO date when it can be read, and everything
// that could not be normalized lands in the notes together with the
// source URL.
func scrapeResponse(pageURL string, scraped *domain.ScrapedProperty) *domain.ScrapedProperty {
	result := &domain.ScrapedProperty{
		Address:  scraped.Address,
		Price:    scraped.Price,
		Time:     scraped.Time,
		ImageURL: scraped.ImageURL,
	}

	if scraped.Date != "" {
		if iso, ok := parser.NormalizeOpenHouseDate(scraped.Date); ok {
			result.Date = iso
		} else {
			result.Notes = "Open house: " + scraped.Date
		}
	}

	if result.Notes != "" {
		result.Notes += "\n\n"
	}
	result.Notes += "Source: " + pageURL
	if scraped.Notes != "" {
		result.Notes += "\n\n" + scraped.Notes
	}

	return result
}

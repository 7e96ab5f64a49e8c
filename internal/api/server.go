package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"openhouse/internal/auth"
	"openhouse/internal/config"
	"openhouse/internal/domain"
	"openhouse/internal/monitoring"
	"openhouse/internal/storage"
)

// TextExtractor runs OCR on a base64-encoded listing screenshot.
type TextExtractor interface {
	ExtractText(ctx context.Context, base64Image string) (string, error)
	Enabled() bool
}

// PropertyScraper loads a listing URL and extracts property details.
type PropertyScraper interface {
	Scrape(ctx context.Context, pageURL string) (*domain.ScrapedProperty, error)
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	config     *config.Config
	router     http.Handler
	httpServer *http.Server
	pgStore    *storage.PostgresStore
	redisStore *storage.RedisStore
	ocr        TextExtractor
	scraper    PropertyScraper
	auth       *auth.Service
	metrics    *monitoring.Metrics
	logger     *zap.Logger
}

func NewServer(cfg *config.Config, ps *storage.PostgresStore, rs *storage.RedisStore,
	ocr TextExtractor, sc PropertyScraper, as *auth.Service, m *monitoring.Metrics, l *zap.Logger) *Server {
	s := &Server{
		config:     cfg,
		pgStore:    ps,
		redisStore: rs,
		ocr:        ocr,
		scraper:    sc,
		auth:       as,
		metrics:    m,
		logger:     l,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.config.ServerPort),
		Handler: s.router,
		// Scraping a listing page can take tens of seconds; the write
		// timeout has to cover it.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: time.Duration(s.config.ScrapeTimeout+15) * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

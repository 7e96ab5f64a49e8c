package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ParsedTotal  *prometheus.CounterVec
	ScrapedTotal *prometheus.CounterVec
	ErrorsTotal  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		ParsedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "openhouse_listings_parsed_total",
			Help: "The total number of listing texts parsed",
		}, []string{"source"}), // 'text', 'ocr', 'scrape'
		ScrapedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "openhouse_pages_scraped_total",
			Help: "The total number of listing pages scraped",
		}, []string{"result"}), // 'hit', 'miss', 'failed'
		ErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "openhouse_errors_total",
			Help: "The total number of errors encountered",
		}, []string{"type"}), // e.g., 'parse_failed', 'ocr_failed', 'db_save_failed'
	}
}

func (m *Metrics) IncParsedTotal(source string) {
	m.ParsedTotal.WithLabelValues(source).Inc()
}

func (m *Metrics) IncScrapedTotal(result string) {
	m.ScrapedTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) IncErrorsTotal(errorType string) {
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}

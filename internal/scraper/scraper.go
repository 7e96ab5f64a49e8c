// Package scraper loads a listing page in headless Chrome and extracts
// property details with per-site rules.
package scraper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"openhouse/internal/config"
	"openhouse/internal/domain"
)

// desktopUserAgent avoids the instant bot-walls some listing sites put up
// for the default headless UA.
const desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Scraper fetches listing pages through a pool of Chrome allocators.
type Scraper struct {
	config  *config.Config
	logger  *zap.Logger
	ctxPool sync.Pool
}

func New(cfg *config.Config, l *zap.Logger) *Scraper {
	s := &Scraper{
		config: cfg,
		logger: l,
	}
	s.ctxPool.New = func() interface{} {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", ""),
			chromedp.Flag("disable-dev-shm-usage", ""),
			chromedp.UserAgent(desktopUserAgent),
		)
		allocCtx, _ := chromedp.NewExecAllocator(context.Background(), opts...)
		return allocCtx
	}
	return s
}

// Scrape renders the page and runs the extraction rules for its host.
func (s *Scraper) Scrape(ctx context.Context, pageURL string) (*domain.ScrapedProperty, error) {
	allocCtx := s.ctxPool.Get().(context.Context)
	defer s.ctxPool.Put(allocCtx)

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()
	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, time.Duration(s.config.ScrapeTimeout)*time.Second)
	defer cancelTimeout()

	var htmlContent string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		// Listing sites fill in open-house cards after the initial render.
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &htmlContent),
	)
	if err != nil {
		s.logger.Warn("failed to render listing page", zap.String("url", pageURL), zap.Error(err))
		return nil, fmt.Errorf("failed to load %s: %w", pageURL, err)
	}

	property, err := ExtractProperty(pageURL, htmlContent)
	if err != nil {
		return nil, err
	}

	s.logger.Info("scraped listing page",
		zap.String("url", pageURL),
		zap.Bool("got_address", property.Address != ""),
		zap.Bool("got_price", property.Price != ""))
	return property, nil
}

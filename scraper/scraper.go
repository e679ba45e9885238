// Package scraper collects travel advisory levels from the DFA website.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/jonboulle/clockwork"

	"github.com/jamesh1234567/irish-travel-advisory-map/config"
	"github.com/jamesh1234567/irish-travel-advisory-map/countries"
	"github.com/jamesh1234567/irish-travel-advisory-map/models"
	"github.com/jamesh1234567/irish-travel-advisory-map/parser"
	"github.com/jamesh1234567/irish-travel-advisory-map/pipeline"
)

// linkCacheSize bounds the dedupe cache used during index discovery. The
// index links each country once or twice; 512 is generous.
const linkCacheSize = 512

// Target is one advisory page to fetch.
type Target struct {
	Name string
	URL  string
}

// Scraper wraps the colly collector for the DFA advisory site. Collection
// is strictly sequential: one request at a time with a fixed delay between
// requests, so handlers run on a single goroutine.
type Scraper struct {
	cfg       *config.Config
	collector *colly.Collector
	clock     clockwork.Clock
	Metrics   *Metrics

	indexURL string

	mu           sync.Mutex
	queue        []Target
	seenLinks    *lru.Cache[string, struct{}]
	rows         map[string]*models.CountryAdvisory
	failedURLs   []string
	errorsByType map[string]int
	requestCount int
	errorCount   int
	scraped      int
	unrecognized int
	blocked      *ErrBlocked

	handlersOnce sync.Once
}

// NewScraper builds a scraper instance configured from cfg.
func NewScraper(cfg *config.Config, clock clockwork.Clock) (*Scraper, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("base url must include a host")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	collector := colly.NewCollector(
		colly.AllowedDomains(parsed.Host),
		colly.UserAgent(cfg.UserAgent),
	)

	collector.IgnoreRobotsTxt = true
	collector.SetRequestTimeout(cfg.Timeout)
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	})

	// One request at a time, fixed delay. The delay is a rate-limiting
	// courtesy to the DFA servers, not a correctness requirement.
	if err := collector.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       cfg.Delay,
	}); err != nil {
		return nil, fmt.Errorf("configure rate limits: %w", err)
	}

	seenLinks, err := lru.New[string, struct{}](linkCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create link cache: %w", err)
	}

	return &Scraper{
		cfg:          cfg,
		collector:    collector,
		clock:        clock,
		Metrics:      NewMetrics(),
		indexURL:     cfg.BaseURL,
		seenLinks:    seenLinks,
		rows:         make(map[string]*models.CountryAdvisory),
		errorsByType: make(map[string]int),
	}, nil
}

// Run collects an advisory snapshot and streams rows through the pipeline.
// A blocked index fetch (or a forbidden response before any page has
// succeeded) halts the batch with ErrBlocked; any later per-country failure
// records the unknown marker and collection continues.
func (s *Scraper) Run(ctx context.Context, p *pipeline.Pipeline) (*models.CollectResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s.configureHandlers(p)

	start := s.clock.Now()

	if s.cfg.Discover {
		if err := s.collector.Visit(s.indexURL); err != nil {
			if b := s.blockedErr(); b != nil {
				return nil, *b
			}
			return nil, ErrBlocked{URL: s.indexURL, Err: err}
		}
	} else {
		for _, c := range countries.List() {
			s.queue = append(s.queue, Target{Name: c.Name, URL: s.countryURL(c.Slug)})
		}
	}

	queue := s.snapshotQueue()
	if len(queue) == 0 {
		return nil, fmt.Errorf("no country pages to fetch from %s; the page structure may have changed", s.indexURL)
	}

	slog.Info("collecting advisories",
		slog.Int("countries", len(queue)),
		slog.Duration("delay", s.cfg.Delay),
	)

	for i, target := range queue {
		if ctx.Err() != nil {
			slog.Warn("collection interrupted", slog.Int("completed", i), slog.Int("total", len(queue)))
			break
		}

		row := &models.CountryAdvisory{
			Country:   target.Name,
			Level:     models.LevelUnknown,
			SourceURL: target.URL,
		}
		s.mu.Lock()
		s.rows[target.URL] = row
		s.mu.Unlock()

		if err := s.collector.Visit(target.URL); err != nil {
			if b := s.blockedErr(); b != nil {
				return nil, *b
			}
			// Failure already classified in OnError; the row keeps the
			// unknown marker and collection moves on.
			s.finalize(row, p)
			continue
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return &models.CollectResult{
		StartTime:    start,
		EndTime:      s.clock.Now(),
		Scraped:      s.scraped,
		Unrecognized: s.unrecognized,
		RequestCount: s.requestCount,
		ErrorCount:   s.errorCount,
		FailedURLs:   append([]string(nil), s.failedURLs...),
		ErrorsByType: copyCounts(s.errorsByType),
	}, ctx.Err()
}

func (s *Scraper) configureHandlers(p *pipeline.Pipeline) {
	s.handlersOnce.Do(func() {
		s.collector.OnRequest(func(r *colly.Request) {
			r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
			r.Headers.Set("Accept-Language", "en-US,en;q=0.5")
			r.Ctx.Put("start", s.clock.Now())

			s.mu.Lock()
			s.requestCount++
			current := s.requestCount
			s.mu.Unlock()

			s.Metrics.IncRequest("started")
			slog.Debug("fetching", slog.Int("request", current), slog.String("url", r.URL.String()))
		})

		s.collector.OnResponse(func(r *colly.Response) {
			if start, ok := r.Request.Ctx.GetAny("start").(time.Time); ok {
				s.Metrics.ObserveDuration(s.clock.Since(start))
			}
		})

		s.collector.OnError(func(r *colly.Response, err error) {
			s.handleError(r, err)
		})

		s.collector.OnHTML("a[href]", func(e *colly.HTMLElement) {
			s.maybeQueueLink(e)
		})

		// The DFA site tags the advisory accordion with the level slug.
		s.collector.OnHTML("div.accordion_travel", func(e *colly.HTMLElement) {
			row := s.row(e.Request.URL.String())
			if row == nil || row.Level.Valid() {
				return
			}
			if level, ok := parser.LevelFromClasses(e.Attr("class")); ok {
				row.Level = level
			}
		})

		// Fallback: match the accordion heading text.
		s.collector.OnHTML("h3.accordion__title", func(e *colly.HTMLElement) {
			row := s.row(e.Request.URL.String())
			if row == nil || row.Level.Valid() {
				return
			}
			if level, ok := parser.LevelFromTitle(e.Text); ok {
				row.Level = level
			}
		})

		s.collector.OnScraped(func(r *colly.Response) {
			row := s.row(r.Request.URL.String())
			if row == nil {
				return
			}
			s.finalize(row, p)
		})
	})
}

// maybeQueueLink records country advisory links found on the index page.
func (s *Scraper) maybeQueueLink(e *colly.HTMLElement) {
	if !s.cfg.Discover || !s.isIndex(e.Request.URL.String()) {
		return
	}

	href := e.Attr("href")
	if !strings.Contains(href, "/advice/") {
		return
	}
	abs := e.Request.AbsoluteURL(href)
	if abs == "" || s.isIndex(abs) {
		return
	}

	parsed, err := url.Parse(abs)
	if err != nil {
		return
	}
	indexPath := indexPathOf(s.indexURL)
	if !strings.HasPrefix(parsed.Path, indexPath) || strings.TrimSuffix(parsed.Path, "/") == strings.TrimSuffix(indexPath, "/") {
		return
	}

	slug := path.Base(strings.TrimSuffix(parsed.Path, "/"))
	lower := strings.ToLower(slug)
	for _, skip := range []string{"covid", "index", "search", "about"} {
		if strings.Contains(lower, skip) {
			return
		}
	}

	if existed, _ := s.seenLinks.ContainsOrAdd(abs, struct{}{}); existed {
		return
	}

	s.mu.Lock()
	s.queue = append(s.queue, Target{Name: parser.CountryNameFromSlug(slug), URL: abs})
	s.mu.Unlock()
}

func (s *Scraper) handleError(r *colly.Response, err error) {
	statusCode := 0
	urlStr := ""
	if r != nil {
		statusCode = r.StatusCode
		if r.Request != nil && r.Request.URL != nil {
			urlStr = r.Request.URL.String()
		}
	}

	classified := classifyError(err, statusCode)
	category := errorTypeLabel(classified)
	s.Metrics.IncError(category)

	slog.Error("request error",
		slog.String("url", urlStr),
		slog.String("category", category),
		slog.Any("error", err),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.errorCount++
	s.errorsByType[category]++
	s.failedURLs = append(s.failedURLs, urlStr)

	var forbidden ErrForbidden
	noSuccessYet := s.scraped == 0 && s.unrecognized == 0
	if s.isIndex(urlStr) || (noSuccessYet && errors.As(classified, &forbidden)) {
		if s.blocked == nil {
			s.blocked = &ErrBlocked{URL: urlStr, Err: classified}
		}
	}
}

// finalize stamps a row, counts it, and hands it to the pipeline.
func (s *Scraper) finalize(row *models.CountryAdvisory, p *pipeline.Pipeline) {
	row.ScrapedAt = s.clock.Now()

	s.mu.Lock()
	if row.Level.Valid() {
		row.Label = row.Level.Label()
		s.scraped++
	} else {
		s.unrecognized++
	}
	s.mu.Unlock()

	if row.Level.Valid() {
		s.Metrics.IncScraped()
		slog.Info("scraped advisory",
			slog.String("country", row.Country),
			slog.String("level", row.Level.String()),
		)
	} else {
		s.Metrics.IncUnrecognized()
		slog.Warn("no advisory marker found, recording unknown",
			slog.String("country", row.Country),
			slog.String("url", row.SourceURL),
		)
	}

	if err := p.Process(row); err != nil && err != pipeline.ErrPipelineClosed {
		slog.Error("pipeline process error", slog.Any("error", err))
	}
}

func (s *Scraper) row(urlStr string) *models.CountryAdvisory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[urlStr]
}

func (s *Scraper) blockedErr() *ErrBlocked {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blocked
}

func (s *Scraper) snapshotQueue() []Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Target, len(s.queue))
	copy(out, s.queue)
	return out
}

func (s *Scraper) countryURL(slug string) string {
	return strings.TrimSuffix(s.cfg.BaseURL, "/") + "/" + slug + "/"
}

func (s *Scraper) isIndex(urlStr string) bool {
	return strings.TrimSuffix(urlStr, "/") == strings.TrimSuffix(s.indexURL, "/")
}

func indexPathOf(indexURL string) string {
	parsed, err := url.Parse(indexURL)
	if err != nil {
		return ""
	}
	return parsed.Path
}

func copyCounts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func classifyError(err error, statusCode int) error {
	if err == nil && statusCode == 0 {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout{Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrConnection{Err: err}
	}

	if statusCode != 0 {
		wrapped := err
		if wrapped == nil {
			wrapped = fmt.Errorf("http status %d", statusCode)
		}
		switch statusCode {
		case http.StatusForbidden:
			return ErrForbidden{Err: wrapped}
		case http.StatusNotFound:
			return ErrNotFound{Err: wrapped}
		case http.StatusTooManyRequests:
			return ErrRateLimited{Err: wrapped}
		}
	}

	if err == nil {
		return nil
	}
	return err
}

package scraper

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the advisory scraper.
type Metrics struct {
	Registry           *prometheus.Registry
	RequestsTotal      *prometheus.CounterVec
	RequestDuration    prometheus.Histogram
	CountriesScraped   prometheus.Counter
	CountriesUnrecognized prometheus.Counter
	ErrorsTotal        *prometheus.CounterVec
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisory_scraper_requests_total",
			Help: "Total HTTP requests issued by the scraper.",
		},
		[]string{"phase"},
	)
	requestDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "advisory_scraper_request_duration_seconds",
			Help:    "HTTP request latency for scraper requests.",
			Buckets: prometheus.DefBuckets,
		},
	)
	scraped := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "advisory_scraper_countries_scraped_total",
			Help: "Countries with a successfully extracted advisory level.",
		},
	)
	unrecognized := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "advisory_scraper_countries_unrecognized_total",
			Help: "Countries recorded with the unknown marker.",
		},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advisory_scraper_errors_total",
			Help: "Total number of scraper errors by type.",
		},
		[]string{"error_type"},
	)

	registry.MustRegister(requests, requestDuration, scraped, unrecognized, errorsTotal)

	return &Metrics{
		Registry:              registry,
		RequestsTotal:         requests,
		RequestDuration:       requestDuration,
		CountriesScraped:      scraped,
		CountriesUnrecognized: unrecognized,
		ErrorsTotal:           errorsTotal,
	}
}

// IncRequest increments the requests total counter.
func (m *Metrics) IncRequest(phase string) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(phase).Inc()
}

// ObserveDuration records an HTTP request duration.
func (m *Metrics) ObserveDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.Observe(d.Seconds())
}

// IncScraped increments the successfully scraped countries counter.
func (m *Metrics) IncScraped() {
	if m == nil {
		return
	}
	m.CountriesScraped.Inc()
}

// IncUnrecognized increments the unknown-marker countries counter.
func (m *Metrics) IncUnrecognized() {
	if m == nil {
		return
	}
	m.CountriesUnrecognized.Inc()
}

// IncError increments the errors counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}

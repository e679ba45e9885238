package pipeline

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jamesh1234567/irish-travel-advisory-map/countries"
	"github.com/jamesh1234567/irish-travel-advisory-map/models"
	"github.com/jamesh1234567/irish-travel-advisory-map/parser"
)

// ErrPipelineClosed is returned when Process is called after shutdown.
var ErrPipelineClosed = errors.New("pipeline: closed")

// OutputWriter defines the interface for data output.
type OutputWriter interface {
	Write(advisories []*models.CountryAdvisory) error
	Close() error
	Validate() error
}

// Pipeline coordinates validation, name canonicalization, de-duplication,
// and output writing. Collection is one request per second, so processing
// is synchronous: each advisory is validated and written as it arrives.
type Pipeline struct {
	writer OutputWriter

	mu      sync.Mutex
	seen    map[string]struct{}
	metrics metrics
	closed  bool
}

// NewPipeline builds a pipeline around the given writer.
func NewPipeline(writer OutputWriter) *Pipeline {
	return &Pipeline{
		writer:  writer,
		seen:    make(map[string]struct{}),
		metrics: newMetrics(),
	}
}

// Process validates, canonicalizes, and writes a single advisory row.
func (p *Pipeline) Process(a *models.CountryAdvisory) error {
	if a == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPipelineClosed
	}

	if err := parser.ValidateAdvisory(a); err != nil {
		p.metrics.addValidation("invalid_record")
		return nil
	}
	if _, dup := p.seen[a.SourceURL]; dup {
		p.metrics.addValidation("duplicate_url")
		return nil
	}
	p.seen[a.SourceURL] = struct{}{}

	a.CanonicalName = countries.Canonical(a.Country)
	if !a.Level.Valid() {
		p.metrics.incrementUnknown()
	}

	if err := p.writer.Write([]*models.CountryAdvisory{a}); err != nil {
		return fmt.Errorf("write advisory: %w", err)
	}
	p.metrics.incrementProcessed()
	return nil
}

// Close prevents further submissions. The writer is closed by its owner.
func (p *Pipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// GetMetrics returns a snapshot of the internal counters.
func (p *Pipeline) GetMetrics() map[string]interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.metrics.snapshot()
}

type metrics struct {
	processed  int64
	unknown    int64
	validation map[string]int
}

func newMetrics() metrics {
	return metrics{
		validation: make(map[string]int),
	}
}

func (m *metrics) incrementProcessed() {
	m.processed++
}

func (m *metrics) incrementUnknown() {
	m.unknown++
}

func (m *metrics) addValidation(kind string) {
	m.validation[kind]++
}

func (m *metrics) snapshot() map[string]interface{} {
	copyValidation := make(map[string]int, len(m.validation))
	for k, v := range m.validation {
		copyValidation[k] = v
	}

	return map[string]interface{}{
		"processed_rows":    m.processed,
		"unknown_rows":      m.unknown,
		"validation_errors": copyValidation,
	}
}

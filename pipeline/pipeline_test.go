package pipeline

import (
	"sync"
	"testing"
	"time"

	"github.com/jamesh1234567/irish-travel-advisory-map/models"
)

type mockWriter struct {
	mu          sync.Mutex
	rows        []*models.CountryAdvisory
	closed      bool
	validateErr error
}

func (mw *mockWriter) Write(advisories []*models.CountryAdvisory) error {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	mw.rows = append(mw.rows, advisories...)
	return nil
}

func (mw *mockWriter) Close() error {
	mw.mu.Lock()
	mw.closed = true
	mw.mu.Unlock()
	return nil
}

func (mw *mockWriter) Validate() error {
	return mw.validateErr
}

func (mw *mockWriter) all() []*models.CountryAdvisory {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	out := make([]*models.CountryAdvisory, len(mw.rows))
	copy(out, mw.rows)
	return out
}

func TestPipelineProcessValidationAndDedup(t *testing.T) {
	writer := &mockWriter{}
	p := NewPipeline(writer)

	valid := &models.CountryAdvisory{
		Country:   "Germany",
		Level:     models.Level1,
		Label:     "Normal Precautions",
		SourceURL: "https://example.test/advice/germany/",
		ScrapedAt: time.Now(),
	}
	invalid := &models.CountryAdvisory{
		Country:   "",
		Level:     models.Level2,
		Label:     "High Degree of Caution",
		SourceURL: "https://example.test/advice/nameless/",
	}
	duplicate := &models.CountryAdvisory{
		Country:   "Germany",
		Level:     models.Level1,
		Label:     "Normal Precautions",
		SourceURL: "https://example.test/advice/germany/",
		ScrapedAt: time.Now(),
	}

	for _, a := range []*models.CountryAdvisory{valid, invalid, duplicate} {
		if err := p.Process(a); err != nil {
			t.Fatalf("process: %v", err)
		}
	}

	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if got := len(writer.all()); got != 1 {
		t.Fatalf("written rows = %d, want 1", got)
	}

	metrics := p.GetMetrics()
	validation, ok := metrics["validation_errors"].(map[string]int)
	if !ok {
		t.Fatalf("expected validation errors map")
	}
	if validation["invalid_record"] == 0 {
		t.Fatalf("expected invalid_record validation error")
	}
	if validation["duplicate_url"] == 0 {
		t.Fatalf("expected duplicate_url validation error")
	}
}

func TestPipelineCanonicalizesNames(t *testing.T) {
	writer := &mockWriter{}
	p := NewPipeline(writer)

	if err := p.Process(&models.CountryAdvisory{
		Country:   "Usa",
		Level:     models.Level2,
		Label:     "High Degree of Caution",
		SourceURL: "https://example.test/advice/usa/",
		ScrapedAt: time.Now(),
	}); err != nil {
		t.Fatalf("process: %v", err)
	}

	rows := writer.all()
	if len(rows) != 1 || rows[0].CanonicalName != "United States" {
		t.Fatalf("expected canonical name United States, got %+v", rows)
	}
}

func TestPipelineCountsUnknownRows(t *testing.T) {
	writer := &mockWriter{}
	p := NewPipeline(writer)

	if err := p.Process(&models.CountryAdvisory{
		Country:   "Atlantis",
		Level:     models.LevelUnknown,
		SourceURL: "https://example.test/advice/atlantis/",
		ScrapedAt: time.Now(),
	}); err != nil {
		t.Fatalf("process: %v", err)
	}

	metrics := p.GetMetrics()
	if metrics["unknown_rows"].(int64) != 1 {
		t.Fatalf("unknown_rows = %v, want 1", metrics["unknown_rows"])
	}
	if got := len(writer.all()); got != 1 {
		t.Fatalf("unknown rows must still be written, got %d rows", got)
	}
}

func TestPipelineRejectsAfterClose(t *testing.T) {
	writer := &mockWriter{}
	p := NewPipeline(writer)

	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	err := p.Process(&models.CountryAdvisory{
		Country:   "Germany",
		Level:     models.Level1,
		Label:     "Normal Precautions",
		SourceURL: "https://example.test/advice/germany/",
	})
	if err != ErrPipelineClosed {
		t.Fatalf("expected ErrPipelineClosed, got %v", err)
	}
}

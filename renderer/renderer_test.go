package renderer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jamesh1234567/irish-travel-advisory-map/config"
	"github.com/jamesh1234567/irish-travel-advisory-map/models"
	"github.com/jamesh1234567/irish-travel-advisory-map/pipeline"
)

func row(country string, level models.Level) *models.CountryAdvisory {
	return &models.CountryAdvisory{
		Country:   country,
		Level:     level,
		Label:     level.Label(),
		SourceURL: "https://example.test/advice/" + strings.ToLower(country) + "/",
		ScrapedAt: time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC),
	}
}

func TestBuildEntriesLegendLevels(t *testing.T) {
	table := []*models.CountryAdvisory{
		row("Germany", models.Level1),
		row("France", models.Level1),
		row("Ukraine", models.Level4),
	}

	_, summary := BuildEntries(table)

	want := []models.Level{models.Level1, models.Level4}
	if len(summary.Levels) != len(want) {
		t.Fatalf("legend levels = %v, want %v", summary.Levels, want)
	}
	for i, level := range want {
		if summary.Levels[i] != level {
			t.Fatalf("legend levels = %v, want %v (ascending, only levels present)", summary.Levels, want)
		}
	}
	if summary.Matched != 3 || summary.NoData != 0 {
		t.Fatalf("matched=%d nodata=%d, want 3/0", summary.Matched, summary.NoData)
	}
}

func TestBuildEntriesCanonicalizesAndSorts(t *testing.T) {
	table := []*models.CountryAdvisory{
		row("Usa", models.Level2),
		row("Germany", models.Level1),
	}

	entries, _ := BuildEntries(table)

	if len(entries) != 2 {
		t.Fatalf("entries=%d, want 2", len(entries))
	}
	if entries[0].Country != "Germany" || entries[1].Country != "Usa" {
		t.Fatalf("entries not sorted by country: %+v", entries)
	}
	if entries[1].Name != "United States" {
		t.Fatalf("Usa should canonicalize to United States, got %q", entries[1].Name)
	}
}

func TestBuildEntriesFlagsNoData(t *testing.T) {
	unknown := row("Germany", models.LevelUnknown)
	unknown.Label = ""
	offMap := row("Atlantis", models.Level2)

	entries, summary := BuildEntries([]*models.CountryAdvisory{unknown, offMap})

	if summary.NoData != 2 || summary.Matched != 0 {
		t.Fatalf("nodata=%d matched=%d, want 2/0", summary.NoData, summary.Matched)
	}
	if len(summary.Levels) != 0 {
		t.Fatalf("no matched rows means an empty legend, got %v", summary.Levels)
	}
	for _, e := range entries {
		if !e.NoData {
			t.Fatalf("entry should be flagged no data: %+v", e)
		}
	}
	if len(entries) != 2 {
		t.Fatalf("no-data rows must stay in the output, got %d entries", len(entries))
	}
}

func TestBuildDocumentGermanyScenario(t *testing.T) {
	entries, summary := BuildEntries([]*models.CountryAdvisory{row("Germany", models.Level1)})

	doc, err := BuildDocument(entries, summary)
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	html := string(doc)

	if !strings.Contains(html, `"1":"green"`) {
		t.Fatalf("document missing green level-1 color mapping")
	}
	if !strings.Contains(html, `"country":"Germany"`) || !strings.Contains(html, `"label":"Normal Precautions"`) {
		t.Fatalf("document missing Germany tooltip data")
	}
	if !strings.Contains(html, "Level 1: Normal Precautions") {
		t.Fatalf("document missing legend entry for level 1")
	}
	if strings.Contains(html, "Level 4: Do Not Travel") {
		t.Fatalf("legend must only show levels present")
	}
}

func TestBuildDocumentNoDataLegend(t *testing.T) {
	entries, summary := BuildEntries([]*models.CountryAdvisory{
		row("Germany", models.Level1),
		row("Atlantis", models.Level3),
	})

	doc, err := BuildDocument(entries, summary)
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	if !strings.Contains(string(doc), "No data") {
		t.Fatalf("document missing no-data legend entry")
	}
	if !strings.Contains(string(doc), noDataColor) {
		t.Fatalf("document missing no-data color")
	}
}

func TestBuildDocumentDeterministic(t *testing.T) {
	table := []*models.CountryAdvisory{
		row("Ukraine", models.Level4),
		row("Germany", models.Level1),
		row("France", models.Level2),
	}

	entries, summary := BuildEntries(table)
	first, err := BuildDocument(entries, summary)
	if err != nil {
		t.Fatalf("build document: %v", err)
	}
	entries, summary = BuildEntries(table)
	second, err := BuildDocument(entries, summary)
	if err != nil {
		t.Fatalf("build document: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Fatalf("document is not reproducible for identical input")
	}
}

func TestRenderWritesHTML(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "advisories.csv")

	writer, err := pipeline.NewCSVWriter(csvPath)
	if err != nil {
		t.Fatalf("create csv: %v", err)
	}
	if err := writer.Write([]*models.CountryAdvisory{row("Germany", models.Level1)}); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close csv: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.InputFile = csvPath
	cfg.HTMLFile = filepath.Join(dir, "map.html")
	cfg.SkipPNG = true

	summary, err := Render(context.Background(), cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if summary.Matched != 1 {
		t.Fatalf("matched=%d, want 1", summary.Matched)
	}

	if info, err := os.Stat(cfg.HTMLFile); err != nil || info.Size() == 0 {
		t.Fatalf("html map missing or empty")
	}
}

func TestRenderRejectsMalformedCSV(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(csvPath, []byte("country,level\nGermany,1\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.InputFile = csvPath
	cfg.HTMLFile = filepath.Join(dir, "map.html")
	cfg.SkipPNG = true

	if _, err := Render(context.Background(), cfg); !errors.Is(err, pipeline.ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
	if _, err := os.Stat(cfg.HTMLFile); !os.IsNotExist(err) {
		t.Fatalf("no partial render from malformed input")
	}
}

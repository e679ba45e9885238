package pipeline

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jamesh1234567/irish-travel-advisory-map/models"
)

func sampleTable() []*models.CountryAdvisory {
	scrapedAt := time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC)
	return []*models.CountryAdvisory{
		{
			Country:       "Germany",
			CanonicalName: "Germany",
			Level:         models.Level1,
			Label:         "Normal Precautions",
			SourceURL:     "https://example.test/advice/germany/",
			ScrapedAt:     scrapedAt,
		},
		{
			Country:       "Usa",
			CanonicalName: "United States",
			Level:         models.Level2,
			Label:         "High Degree of Caution",
			SourceURL:     "https://example.test/advice/usa/",
			ScrapedAt:     scrapedAt,
		},
		{
			Country:       "Atlantis",
			CanonicalName: "Atlantis",
			Level:         models.LevelUnknown,
			Label:         "",
			SourceURL:     "https://example.test/advice/atlantis/",
			ScrapedAt:     scrapedAt,
		},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "advisories.csv")

	writer, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("create csv writer: %v", err)
	}

	table := sampleTable()
	if err := writer.Write(table); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close csv: %v", err)
	}

	got, err := ReadTable(path)
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	if len(got) != len(table) {
		t.Fatalf("rows=%d, want %d", len(got), len(table))
	}
	for i, want := range table {
		row := got[i]
		if row.Country != want.Country || row.CanonicalName != want.CanonicalName {
			t.Fatalf("row %d name mismatch: %+v", i, row)
		}
		if row.Level != want.Level || row.Label != want.Label {
			t.Fatalf("row %d level mismatch: got (%v, %q), want (%v, %q)", i, row.Level, row.Label, want.Level, want.Label)
		}
		if row.SourceURL != want.SourceURL || !row.ScrapedAt.Equal(want.ScrapedAt) {
			t.Fatalf("row %d provenance mismatch: %+v", i, row)
		}
	}
}

func TestCSVOverwritesPriorSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "advisories.csv")

	for run := 0; run < 2; run++ {
		writer, err := NewCSVWriter(path)
		if err != nil {
			t.Fatalf("create csv writer: %v", err)
		}
		if err := writer.Write(sampleTable()[:1]); err != nil {
			t.Fatalf("write csv: %v", err)
		}
		if err := writer.Close(); err != nil {
			t.Fatalf("close csv: %v", err)
		}
	}

	got, err := ReadTable(path)
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("rows=%d after rewrite, want 1 (file must be overwritten, not appended)", len(got))
	}
}

func TestReadTableRejectsWrongHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	content := "country,advisory_level\nGermany,1\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := ReadTable(path); !errors.Is(err, ErrMissingColumns) {
		t.Fatalf("expected ErrMissingColumns, got %v", err)
	}
}

func TestReadTableKeepsBadLevelAsUnknown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "levels.csv")
	content := "country,country_standardized,advisory_level,advisory_label,source_url,scraped_at\n" +
		"Germany,Germany,7,Mystery,https://example.test/germany/,2026-08-25T09:30:00Z\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := ReadTable(path)
	if err != nil {
		t.Fatalf("read table: %v", err)
	}
	if len(got) != 1 || got[0].Level != models.LevelUnknown {
		t.Fatalf("bad level cell must parse to unknown, got %+v", got)
	}
}

func TestJSONWriterWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "advisories.jsonl")

	writer, err := NewJSONWriter(path)
	if err != nil {
		t.Fatalf("create json writer: %v", err)
	}

	if err := writer.Write(sampleTable()); err != nil {
		t.Fatalf("write json: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close json: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open json: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	count := 0
	for scanner.Scan() {
		var decoded models.CountryAdvisory
		if err := json.Unmarshal(scanner.Bytes(), &decoded); err != nil {
			t.Fatalf("invalid json line: %v", err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan json: %v", err)
	}
	if count != 3 {
		t.Fatalf("json lines=%d, want 3", count)
	}
}

func TestDualWriterWrite(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "advisories.csv")
	jsonPath := filepath.Join(dir, "advisories.jsonl")

	writer, err := NewDualWriter(csvPath, jsonPath)
	if err != nil {
		t.Fatalf("create dual writer: %v", err)
	}

	if err := writer.Write(sampleTable()); err != nil {
		t.Fatalf("write dual: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close dual: %v", err)
	}

	if info, err := os.Stat(csvPath); err != nil || info.Size() == 0 {
		t.Fatalf("csv file missing or empty")
	}
	if info, err := os.Stat(jsonPath); err != nil || info.Size() == 0 {
		t.Fatalf("json file missing or empty")
	}
}

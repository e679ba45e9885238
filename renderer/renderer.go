// Package renderer turns an advisory snapshot into a choropleth world map,
// exported as an interactive HTML page and a static PNG.
package renderer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/jamesh1234567/irish-travel-advisory-map/config"
	"github.com/jamesh1234567/irish-travel-advisory-map/countries"
	"github.com/jamesh1234567/irish-travel-advisory-map/models"
	"github.com/jamesh1234567/irish-travel-advisory-map/pipeline"
)

// Entry is one country as embedded in the map page.
type Entry struct {
	Country string `json:"country"`
	Name    string `json:"name"`
	Level   string `json:"level"`
	Label   string `json:"label"`
	NoData  bool   `json:"noData"`
}

// Summary reports what ended up on the map.
type Summary struct {
	Rows    int
	Matched int
	NoData  int
	Levels  []models.Level
}

// BuildEntries canonicalizes names, flags rows the map dataset cannot
// place, and returns entries sorted by country name so the generated page
// is reproducible run-to-run. Unmatched rows are logged and kept: they
// render as "no data", never vanish silently.
func BuildEntries(table []*models.CountryAdvisory) ([]Entry, *Summary) {
	entries := make([]Entry, 0, len(table))
	summary := &Summary{Rows: len(table)}
	levelsPresent := make(map[models.Level]struct{})

	for _, row := range table {
		name := row.CanonicalName
		if name == "" {
			name = row.Country
		}
		canonical := countries.Canonical(name)

		noData := !row.Level.Valid() || !countries.IsRecognized(canonical)
		if noData {
			summary.NoData++
			if !row.Level.Valid() {
				slog.Warn("row has no advisory level, rendering as no data",
					slog.String("country", row.Country),
				)
			} else {
				slog.Warn("country not present in map dataset, rendering as no data",
					slog.String("country", row.Country),
					slog.String("canonical", canonical),
				)
			}
		} else {
			summary.Matched++
			levelsPresent[row.Level] = struct{}{}
		}

		entries = append(entries, Entry{
			Country: row.Country,
			Name:    canonical,
			Level:   row.Level.String(),
			Label:   row.Label,
			NoData:  noData,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Country < entries[j].Country })

	for _, level := range []models.Level{models.Level1, models.Level2, models.Level3, models.Level4} {
		if _, ok := levelsPresent[level]; ok {
			summary.Levels = append(summary.Levels, level)
		}
	}

	return entries, summary
}

// Render reads the CSV snapshot and writes the HTML map, then the PNG
// unless cfg.SkipPNG is set. A malformed CSV is fatal; per-country mismatch
// is not.
func Render(ctx context.Context, cfg *config.Config) (*Summary, error) {
	table, err := pipeline.ReadTable(cfg.InputFile)
	if err != nil {
		return nil, fmt.Errorf("read advisory table: %w", err)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("advisory table %s has no rows; run collect first", cfg.InputFile)
	}

	entries, summary := BuildEntries(table)

	doc, err := BuildDocument(entries, summary)
	if err != nil {
		return nil, fmt.Errorf("build map document: %w", err)
	}
	if err := os.WriteFile(cfg.HTMLFile, doc, 0o644); err != nil {
		return nil, fmt.Errorf("write html map: %w", err)
	}
	slog.Info("interactive map written", slog.String("path", cfg.HTMLFile))

	if !cfg.SkipPNG {
		if err := ExportPNG(ctx, cfg.HTMLFile, cfg.PNGFile, cfg.Width, cfg.Height); err != nil {
			return summary, fmt.Errorf("export png: %w", err)
		}
		slog.Info("static map written",
			slog.String("path", cfg.PNGFile),
			slog.Int("width", cfg.Width),
			slog.Int("height", cfg.Height),
		)
	}

	return summary, nil
}

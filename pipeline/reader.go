package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jamesh1234567/irish-travel-advisory-map/models"
)

// ErrMissingColumns is returned when the CSV header does not match the
// collector's schema. This is fatal to the renderer: no partial render from
// malformed input.
var ErrMissingColumns = errors.New("csv header does not match expected schema")

// ReadTable reads a complete advisory snapshot back from CSV, preserving
// row order. Rows with an unparseable level cell are kept with the unknown
// marker and logged, never promoted to a valid level.
func ReadTable(path string) ([]*models.CountryAdvisory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var table []*models.CountryAdvisory
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		line++

		level, err := models.ParseLevel(record[2])
		if err != nil {
			slog.Warn("invalid advisory level in csv, keeping row as unknown",
				slog.Int("line", line),
				slog.String("country", record[0]),
				slog.String("cell", record[2]),
			)
			level = models.LevelUnknown
		}

		scrapedAt, err := time.Parse(time.RFC3339, record[5])
		if err != nil {
			scrapedAt = time.Time{}
		}

		table = append(table, &models.CountryAdvisory{
			Country:       record[0],
			CanonicalName: record[1],
			Level:         level,
			Label:         record[3],
			SourceURL:     record[4],
			ScrapedAt:     scrapedAt,
		})
	}

	return table, nil
}

func checkHeader(header []string) error {
	if len(header) != len(Header) {
		return fmt.Errorf("%w: got %d columns, want %d", ErrMissingColumns, len(header), len(Header))
	}
	for i, want := range Header {
		if header[i] != want {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrMissingColumns, i, header[i], want)
		}
	}
	return nil
}

// Package models defines data structures shared by the collector and renderer.
package models

import (
	"fmt"
	"time"
)

// Level is a travel advisory level as published by the Irish DFA.
// LevelUnknown marks rows where extraction failed; it is never coerced
// into a valid 1-4 level.
type Level int

const (
	LevelUnknown Level = 0
	Level1       Level = 1 // Normal Precautions
	Level2       Level = 2 // High Degree of Caution
	Level3       Level = 3 // Avoid Non-Essential Travel
	Level4       Level = 4 // Do Not Travel
)

// String returns the CSV representation of the level.
func (l Level) String() string {
	switch l {
	case Level1, Level2, Level3, Level4:
		return fmt.Sprintf("%d", int(l))
	default:
		return "unknown"
	}
}

// Valid reports whether the level is one of the four published categories.
func (l Level) Valid() bool {
	return l >= Level1 && l <= Level4
}

// Label returns the official advisory phrase for the level, or "" for
// unknown.
func (l Level) Label() string {
	switch l {
	case Level1:
		return "Normal Precautions"
	case Level2:
		return "High Degree of Caution"
	case Level3:
		return "Avoid Non-Essential Travel"
	case Level4:
		return "Do Not Travel"
	default:
		return ""
	}
}

// ParseLevel converts the CSV cell back into a Level. "unknown" (and "")
// parse to LevelUnknown; anything else outside 1-4 is an error.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "1":
		return Level1, nil
	case "2":
		return Level2, nil
	case "3":
		return Level3, nil
	case "4":
		return Level4, nil
	case "unknown", "":
		return LevelUnknown, nil
	default:
		return LevelUnknown, fmt.Errorf("invalid advisory level %q", s)
	}
}

// CountryAdvisory is one scraped advisory row. Rows are created once per
// collection run and are immutable afterwards.
type CountryAdvisory struct {
	Country       string    `csv:"country" json:"country"`
	CanonicalName string    `csv:"country_standardized" json:"country_standardized"`
	Level         Level     `csv:"advisory_level" json:"advisory_level"`
	Label         string    `csv:"advisory_label" json:"advisory_label"`
	SourceURL     string    `csv:"source_url" json:"source_url"`
	ScrapedAt     time.Time `csv:"scraped_at" json:"scraped_at"`
}

// CollectResult holds the overall outcome of a collection run.
type CollectResult struct {
	StartTime    time.Time
	EndTime      time.Time
	Scraped      int
	Unrecognized int
	RequestCount int
	ErrorCount   int
	FailedURLs   []string
	ErrorsByType map[string]int
}

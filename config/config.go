// Package config holds the explicit configuration for both stages. There is
// no module-level mutable state: the collector and renderer receive a Config.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config holds collector and renderer configuration. The CSV path is the
// only contract shared between the two stages.
type Config struct {
	// Collector.
	BaseURL     string
	Delay       time.Duration
	Timeout     time.Duration
	UserAgent   string
	Discover    bool
	OutputFile  string
	OutputFormat string // csv, json, or dual
	MetricsAddr string

	// Renderer.
	InputFile string
	HTMLFile  string
	PNGFile   string
	Width     int
	Height    int
	SkipPNG   bool

	Verbose bool
}

// DefaultConfig returns the defaults documented for the DFA advisory site.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:      "https://www.ireland.ie/en/dfa/overseas-travel/advice/",
		Delay:        time.Second,
		Timeout:      10 * time.Second,
		UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
		Discover:     false,
		OutputFile:   "irish_travel_advisories.csv",
		OutputFormat: "csv",
		MetricsAddr:  "",
		InputFile:    "irish_travel_advisories.csv",
		HTMLFile:     "irish_travel_advisory_map.html",
		PNGFile:      "irish_travel_advisory_map.png",
		Width:        1920,
		Height:       1080,
		SkipPNG:      false,
		Verbose:      false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}

	if c.Delay < 0 {
		return fmt.Errorf("delay cannot be negative")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if c.OutputFormat != "csv" && c.OutputFormat != "json" && c.OutputFormat != "dual" {
		return fmt.Errorf("output format must be csv, json, or dual")
	}
	if c.InputFile == "" {
		return fmt.Errorf("input file cannot be empty")
	}
	if c.HTMLFile == "" {
		return fmt.Errorf("html output file cannot be empty")
	}
	if !c.SkipPNG && c.PNGFile == "" {
		return fmt.Errorf("png output file cannot be empty")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image dimensions must be positive")
	}

	return nil
}

// EnvString reads a string environment override.
func EnvString(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// EnvInt reads an integer environment override.
func EnvInt(key string) (int, bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return 0, false, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, true, nil
}

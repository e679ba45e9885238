package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/jamesh1234567/irish-travel-advisory-map/config"
	"github.com/jamesh1234567/irish-travel-advisory-map/models"
	"github.com/jamesh1234567/irish-travel-advisory-map/pipeline"
	"github.com/jamesh1234567/irish-travel-advisory-map/scraper"
)

var collectFlags struct {
	baseURL     string
	delayMs     int
	timeoutSec  int
	output      string
	format      string
	discover    bool
	metricsAddr string
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Scrape advisory levels for every country into a CSV snapshot",
	RunE:  runCollect,
}

func init() {
	defaults := config.DefaultConfig()

	outputDefault := defaults.OutputFile
	if value, ok := config.EnvString("ADVISORIES_OUTPUT"); ok {
		outputDefault = value
	}
	baseURLDefault := defaults.BaseURL
	if value, ok := config.EnvString("ADVISORIES_BASE_URL"); ok {
		baseURLDefault = value
	}
	metricsDefault := defaults.MetricsAddr
	if value, ok := config.EnvString("ADVISORIES_METRICS_ADDR"); ok {
		metricsDefault = value
	}
	delayDefault := int(defaults.Delay / time.Millisecond)
	if value, ok, err := config.EnvInt("ADVISORIES_DELAY_MS"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid ADVISORIES_DELAY_MS: %v\n", err)
		os.Exit(1)
	} else if ok {
		delayDefault = value
	}

	collectCmd.Flags().StringVar(&collectFlags.baseURL, "base-url", baseURLDefault, "Advisory index URL to scrape")
	collectCmd.Flags().IntVar(&collectFlags.delayMs, "delay", delayDefault, "Delay between requests (milliseconds)")
	collectCmd.Flags().IntVar(&collectFlags.timeoutSec, "timeout", int(defaults.Timeout/time.Second), "Per-request timeout (seconds)")
	collectCmd.Flags().StringVar(&collectFlags.output, "output", outputDefault, "Output file path")
	collectCmd.Flags().StringVar(&collectFlags.format, "format", defaults.OutputFormat, "Output format: csv, json, or dual")
	collectCmd.Flags().BoolVar(&collectFlags.discover, "discover", defaults.Discover, "Discover country pages from the live index instead of the built-in list")
	collectCmd.Flags().StringVar(&collectFlags.metricsAddr, "metrics-addr", metricsDefault, "Prometheus metrics listen address (e.g. :9090)")

	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.BaseURL = collectFlags.baseURL
	cfg.Delay = time.Duration(collectFlags.delayMs) * time.Millisecond
	cfg.Timeout = time.Duration(collectFlags.timeoutSec) * time.Second
	cfg.OutputFile = collectFlags.output
	cfg.OutputFormat = strings.ToLower(collectFlags.format)
	cfg.Discover = collectFlags.discover
	cfg.MetricsAddr = collectFlags.metricsAddr
	cfg.Verbose = verbose

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	slog.Info("starting collection",
		slog.String("base_url", cfg.BaseURL),
		slog.Duration("delay", cfg.Delay),
		slog.Bool("discover", cfg.Discover),
	)

	s, err := scraper.NewScraper(cfg, clockwork.NewRealClock())
	if err != nil {
		return fmt.Errorf("initialising scraper: %w", err)
	}

	writer, err := createWriter(cfg.OutputFormat, cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if err := writer.Close(); err != nil {
			slog.Error("close writer", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" && s.Metrics != nil {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(s.Metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	p := pipeline.NewPipeline(writer)

	result, err := s.Run(ctx, p)
	if err != nil {
		var blocked scraper.ErrBlocked
		if errors.As(err, &blocked) {
			slog.Error("collection blocked", slog.String("url", blocked.URL), slog.Any("error", blocked.Err))
			fmt.Fprintln(os.Stderr, scraper.ManualInstructions(cfg.BaseURL))
			os.Exit(2)
		}
		return fmt.Errorf("collection failed: %w", err)
	}

	if err := p.Close(); err != nil {
		return fmt.Errorf("pipeline shutdown failed: %w", err)
	}
	if err := writer.Validate(); err != nil {
		return fmt.Errorf("output validation failed: %w", err)
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	printCollectSummary(result, cfg.OutputFile, p.GetMetrics())
	return nil
}

func createWriter(format, filename string) (pipeline.OutputWriter, error) {
	switch format {
	case "json":
		return pipeline.NewJSONWriter(filename)
	case "csv":
		return pipeline.NewCSVWriter(filename)
	case "dual":
		jsonFilename := strings.TrimSuffix(filename, ".csv") + ".json"
		return pipeline.NewDualWriter(filename, jsonFilename)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func printCollectSummary(result *models.CollectResult, outputFile string, metrics map[string]interface{}) {
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	fmt.Println("Collection complete")

	total := result.Scraped + result.Unrecognized
	fmt.Printf("  Countries:     %d\n", total)
	fmt.Printf("  With level:    %d\n", result.Scraped)
	fmt.Printf("  Unknown:       %d\n", result.Unrecognized)
	successRate := 0.0
	if result.RequestCount > 0 {
		successRate = float64(result.RequestCount-result.ErrorCount) / float64(result.RequestCount) * 100
	}
	fmt.Printf("  Success rate:  %.2f%%\n", successRate)
	fmt.Printf("  Errors:        %d\n", result.ErrorCount)
	fmt.Printf("  Failed URLs:   %d\n", len(result.FailedURLs))
	if len(result.ErrorsByType) > 0 {
		fmt.Printf("  Error types:   %v\n", result.ErrorsByType)
	}
	if valErrors, ok := metrics["validation_errors"].(map[string]int); ok && len(valErrors) > 0 {
		fmt.Printf("  Validation:    %v\n", valErrors)
	}
	fmt.Printf("  Duration:      %v\n", result.EndTime.Sub(result.StartTime))
	fmt.Printf("  Output file:   %s\n", outputFile)
	fmt.Println(separator)
}

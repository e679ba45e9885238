package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jamesh1234567/irish-travel-advisory-map/config"
	"github.com/jamesh1234567/irish-travel-advisory-map/renderer"
)

var renderFlags struct {
	input   string
	html    string
	png     string
	width   int
	height  int
	skipPNG bool
}

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the CSV snapshot as a choropleth world map",
	RunE:  runRender,
}

func init() {
	defaults := config.DefaultConfig()

	inputDefault := defaults.InputFile
	if value, ok := config.EnvString("ADVISORIES_INPUT"); ok {
		inputDefault = value
	}
	htmlDefault := defaults.HTMLFile
	if value, ok := config.EnvString("ADVISORIES_HTML"); ok {
		htmlDefault = value
	}
	pngDefault := defaults.PNGFile
	if value, ok := config.EnvString("ADVISORIES_PNG"); ok {
		pngDefault = value
	}

	renderCmd.Flags().StringVar(&renderFlags.input, "input", inputDefault, "Advisory CSV snapshot to render")
	renderCmd.Flags().StringVar(&renderFlags.html, "html", htmlDefault, "Interactive HTML map output path")
	renderCmd.Flags().StringVar(&renderFlags.png, "png", pngDefault, "Static PNG map output path")
	renderCmd.Flags().IntVar(&renderFlags.width, "width", defaults.Width, "PNG viewport width (pixels)")
	renderCmd.Flags().IntVar(&renderFlags.height, "height", defaults.Height, "PNG viewport height (pixels)")
	renderCmd.Flags().BoolVar(&renderFlags.skipPNG, "skip-png", false, "Write the HTML map only, skip the headless-browser PNG export")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.InputFile = renderFlags.input
	cfg.HTMLFile = renderFlags.html
	cfg.PNGFile = renderFlags.png
	cfg.Width = renderFlags.width
	cfg.Height = renderFlags.height
	cfg.SkipPNG = renderFlags.skipPNG
	cfg.Verbose = verbose

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := renderer.Render(ctx, cfg)
	if err != nil {
		return err
	}

	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	fmt.Println("Render complete")
	fmt.Printf("  Rows:          %d\n", summary.Rows)
	fmt.Printf("  On the map:    %d\n", summary.Matched)
	fmt.Printf("  No data:       %d\n", summary.NoData)
	fmt.Printf("  HTML map:      %s\n", cfg.HTMLFile)
	if !cfg.SkipPNG {
		fmt.Printf("  PNG map:       %s (%dx%d)\n", cfg.PNGFile, cfg.Width, cfg.Height)
	}
	fmt.Println(separator)
	return nil
}

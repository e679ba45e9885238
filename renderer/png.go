package renderer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// pngTimeout bounds the whole load-and-screenshot sequence. The page fetches
// Leaflet and the world polygons from CDNs, so the budget is generous.
const pngTimeout = 60 * time.Second

// ExportPNG opens the generated HTML in headless Chrome, waits for the map
// polygons to finish loading, and captures the viewport at the requested
// resolution.
func ExportPNG(ctx context.Context, htmlPath, pngPath string, width, height int) error {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("resolve html path: %w", err)
	}

	controlURL, err := launcher.New().Headless(true).Launch()
	if err != nil {
		return fmt.Errorf("launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect to chrome: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + abs})
	if err != nil {
		return fmt.Errorf("open map page: %w", err)
	}

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page); err != nil {
		return fmt.Errorf("set viewport: %w", err)
	}

	page = page.Timeout(pngTimeout)
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("load map page: %w", err)
	}

	// The page sets __mapReady once the polygons are styled, or __mapError
	// when the geometry fetch fails.
	if err := page.Wait(rod.Eval(`() => window.__mapReady === true || window.__mapError !== undefined`)); err != nil {
		return fmt.Errorf("wait for map: %w", err)
	}
	mapErr, err := page.Eval(`() => window.__mapError || ""`)
	if err != nil {
		return fmt.Errorf("check map state: %w", err)
	}
	if msg := mapErr.Value.Str(); msg != "" {
		return fmt.Errorf("map failed to load geometry: %s", msg)
	}

	shot, err := page.Screenshot(false, nil)
	if err != nil {
		return fmt.Errorf("capture screenshot: %w", err)
	}

	if err := os.WriteFile(pngPath, shot, 0o644); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

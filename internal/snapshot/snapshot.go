package snapshot

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/williampepple1/page-snapshotter/internal/config"
	"github.com/williampepple1/page-snapshotter/internal/inspect"
	"github.com/williampepple1/page-snapshotter/pkg/models"
)

// Options controls a single capture
type Options struct {
	FullPage          bool
	Wait              time.Duration
	Selectors         []string
	Readiness         Readiness
	NavigationTimeout time.Duration
}

// Snapshotter loads local documents in a headless browser and screenshots them
type Snapshotter struct {
	Browser   config.BrowserConfig
	Inspector *inspect.Inspector
	Logger    *zap.Logger
}

// New creates a new snapshotter
func New(browser config.BrowserConfig, logger *zap.Logger) *Snapshotter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Snapshotter{
		Browser:   browser,
		Inspector: inspect.NewInspector(logger),
		Logger:    logger,
	}
}

// TargetURL converts a file system path to an absolute file:// URL
func TargetURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String(), nil
}

// Capture opens targetPath in a fresh headless browser and writes a PNG
// screenshot to outputPath. Navigation, readiness and inspection problems
// are recorded on the result and logged; only a browser launch failure or a
// failure to produce the screenshot is returned as an error.
func (s *Snapshotter) Capture(ctx context.Context, targetPath, outputPath string, opts Options) (models.Result, error) {
	start := time.Now()
	result := models.Result{FullPage: opts.FullPage}
	finish := func(err error) (models.Result, error) {
		if err != nil {
			result.Err = err.Error()
		}
		result.Duration = time.Since(start)
		result.Timestamp = time.Now()
		return result, err
	}

	target, err := TargetURL(targetPath)
	if err != nil {
		return finish(fmt.Errorf("resolve target: %w", err))
	}
	result.TargetURL = target

	// Configure browser options
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.Browser.Headless),
	)
	if s.Browser.NoSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}
	if s.Browser.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(s.Browser.UserAgent))
	}
	if s.Browser.ViewportWidth > 0 && s.Browser.ViewportHeight > 0 {
		allocOpts = append(allocOpts, chromedp.WindowSize(s.Browser.ViewportWidth, s.Browser.ViewportHeight))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	// An empty run starts the browser and opens the first tab
	if err := chromedp.Run(browserCtx); err != nil {
		return finish(fmt.Errorf("launch browser: %w", err))
	}

	s.Logger.Info("Navigating to " + target)
	if err := s.navigate(browserCtx, target, opts.NavigationTimeout); err != nil {
		navErr := &NavigationError{URL: target, Stage: "navigate", Err: err}
		result.NavigationErr = navErr.Error()
		s.Logger.Warn("Error loading page", zap.Error(navErr))
	}

	ready := opts.Readiness
	if ready == nil && opts.Wait > 0 {
		ready = Delay(opts.Wait)
	}
	if ready != nil {
		if err := ready.Ready(browserCtx); err != nil {
			navErr := &NavigationError{URL: target, Stage: "wait for", Err: err}
			if result.NavigationErr == "" {
				result.NavigationErr = navErr.Error()
			}
			s.Logger.Warn("Page did not become ready", zap.Error(navErr))
		}
	}

	if len(opts.Selectors) > 0 {
		result.Inspections = s.inspect(browserCtx, opts.Selectors)
	}

	buf, err := s.screenshot(browserCtx, opts.FullPage)
	if err != nil {
		return finish(fmt.Errorf("capture screenshot: %w", err))
	}
	if err := writeFile(outputPath, buf); err != nil {
		return finish(fmt.Errorf("save screenshot: %w", err))
	}
	result.Screenshot = outputPath
	result.Bytes = len(buf)
	s.Logger.Info("Screenshot saved to "+outputPath, zap.Int("bytes", len(buf)), zap.Bool("full_page", opts.FullPage))

	return finish(nil)
}

func (s *Snapshotter) navigate(ctx context.Context, target string, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return chromedp.Run(ctx, chromedp.Navigate(target))
}

// inspect reads the rendered DOM once and evaluates every selector against
// it. If the DOM cannot be read, each selector reports that failure.
func (s *Snapshotter) inspect(ctx context.Context, selectors []string) []models.Inspection {
	var html string
	err := chromedp.Run(ctx, chromedp.Evaluate(`document.documentElement ? document.documentElement.outerHTML : ""`, &html))
	if err == nil {
		var inspections []models.Inspection
		inspections, err = s.Inspector.InspectHTML(html, selectors)
		if err == nil {
			return inspections
		}
	}

	inspections := make([]models.Inspection, 0, len(selectors))
	for _, selector := range selectors {
		inErr := &InspectionError{Selector: selector, Err: err}
		s.Logger.Warn("Error inspecting elements", zap.Error(inErr))
		inspections = append(inspections, models.Inspection{Selector: selector, Err: inErr.Error()})
	}
	return inspections
}

func (s *Snapshotter) screenshot(ctx context.Context, fullPage bool) ([]byte, error) {
	var buf []byte
	var action chromedp.Action = chromedp.CaptureScreenshot(&buf)
	if fullPage {
		// quality 100 keeps the capture in PNG format
		action = chromedp.FullScreenshot(&buf, 100)
	}
	if err := chromedp.Run(ctx, action); err != nil {
		return nil, err
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("browser returned an empty image")
	}
	return buf, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

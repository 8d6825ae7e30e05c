package runner

import (
	"context"

	"go.uber.org/zap"

	"github.com/williampepple1/page-snapshotter/internal/config"
	"github.com/williampepple1/page-snapshotter/internal/snapshot"
	"github.com/williampepple1/page-snapshotter/pkg/models"
)

// Capturer takes one screenshot of a local document
type Capturer interface {
	Capture(ctx context.Context, targetPath, outputPath string, opts snapshot.Options) (models.Result, error)
}

// Runner executes the configured captures one after another
type Runner struct {
	Config   *config.AppConfig
	Capturer Capturer
	Logger   *zap.Logger
}

// New creates a runner backed by a headless browser snapshotter
func New(cfg *config.AppConfig, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		Config:   cfg,
		Capturer: snapshot.New(cfg.Browser, logger),
		Logger:   logger,
	}
}

// Run executes every capture in order. A capture that fails fatally is
// recorded and the remaining captures still run.
func (r *Runner) Run(ctx context.Context) []models.Result {
	results := make([]models.Result, 0, len(r.Config.Captures))
	for _, c := range r.Config.Captures {
		if ctx.Err() != nil {
			break
		}
		r.Logger.Debug("starting capture", zap.String("name", c.Name), zap.String("target", c.Target))

		result, err := r.Capturer.Capture(ctx, c.Target, c.Output, r.Options(c))
		result.Name = c.Name
		if err != nil {
			r.Logger.Error("capture failed", zap.String("name", c.Name), zap.Error(err))
		}
		results = append(results, result)
	}
	return results
}

// Options builds snapshot options for one capture
func (r *Runner) Options(c config.CaptureConfig) snapshot.Options {
	opts := snapshot.Options{
		FullPage:          c.FullPage,
		Wait:              c.Wait,
		Selectors:         c.Selectors,
		NavigationTimeout: r.Config.Browser.NavigationTimeout,
	}
	if c.ReadySelector != "" {
		opts.Readiness = snapshot.Sequence(
			snapshot.ElementReady(c.ReadySelector, r.Config.Browser.NavigationTimeout),
			snapshot.Delay(c.Wait),
		)
	}
	return opts
}

// Summary counts results by outcome
type Summary struct {
	Captured int
	Degraded int
	Failed   int
}

// Summarize classifies results
func Summarize(results []models.Result) Summary {
	var s Summary
	for _, r := range results {
		switch {
		case r.Err != "":
			s.Failed++
		case r.Degraded():
			s.Captured++
			s.Degraded++
		default:
			s.Captured++
		}
	}
	return s
}

// ExitCode maps a summary to a process exit status. Failed captures always
// exit 1; degraded captures exit 1 only in strict mode.
func ExitCode(s Summary, strict bool) int {
	if s.Failed > 0 {
		return 1
	}
	if strict && s.Degraded > 0 {
		return 1
	}
	return 0
}

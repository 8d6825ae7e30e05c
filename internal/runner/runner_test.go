package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/williampepple1/page-snapshotter/internal/config"
	"github.com/williampepple1/page-snapshotter/internal/snapshot"
	"github.com/williampepple1/page-snapshotter/pkg/models"
)

type call struct {
	target, output string
	opts           snapshot.Options
}

type fakeCapturer struct {
	calls   []call
	results map[string]models.Result
	errs    map[string]error
}

func (f *fakeCapturer) Capture(_ context.Context, target, output string, opts snapshot.Options) (models.Result, error) {
	f.calls = append(f.calls, call{target, output, opts})
	r := f.results[output]
	err := f.errs[output]
	if err != nil {
		r.Err = err.Error()
	}
	return r, err
}

func newRunner(t *testing.T, captures ...config.CaptureConfig) (*Runner, *fakeCapturer) {
	cfg := config.CreateDefault(captures[0], "", "", false)
	cfg.Captures = captures
	fake := &fakeCapturer{results: map[string]models.Result{}, errs: map[string]error{}}
	r := New(cfg, zaptest.NewLogger(t))
	r.Capturer = fake
	return r, fake
}

func TestRunSequentialAndContinuesAfterFailure(t *testing.T) {
	r, fake := newRunner(t,
		config.CaptureConfig{Name: "a", Target: "a.html", Output: "a.png"},
		config.CaptureConfig{Name: "b", Target: "b.html", Output: "b.png"},
		config.CaptureConfig{Name: "c", Target: "c.html", Output: "c.png"},
	)
	fake.errs["b.png"] = errors.New("launch browser: exec: not found")

	results := r.Run(context.Background())

	require.Len(t, results, 3)
	require.Len(t, fake.calls, 3)
	for i, name := range []string{"a", "b", "c"} {
		assert.Equal(t, name, results[i].Name)
		assert.Equal(t, name+".html", fake.calls[i].target)
	}
	assert.Contains(t, results[1].Err, "launch browser")

	s := Summarize(results)
	assert.Equal(t, Summary{Captured: 2, Failed: 1}, s)
	assert.Equal(t, 1, ExitCode(s, false))
}

func TestRunStopsWhenCancelled(t *testing.T) {
	r, fake := newRunner(t, config.CaptureConfig{Name: "a", Target: "a.html", Output: "a.png"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Empty(t, r.Run(ctx))
	assert.Empty(t, fake.calls)
}

func TestOptions(t *testing.T) {
	r, _ := newRunner(t, config.CaptureConfig{Name: "a", Target: "a.html", Output: "a.png"})
	r.Config.Browser.NavigationTimeout = 3 * time.Second

	plain := r.Options(config.CaptureConfig{FullPage: true, Wait: time.Second, Selectors: []string{"#x"}})
	assert.True(t, plain.FullPage)
	assert.Equal(t, time.Second, plain.Wait)
	assert.Equal(t, []string{"#x"}, plain.Selectors)
	assert.Equal(t, 3*time.Second, plain.NavigationTimeout)
	assert.Nil(t, plain.Readiness, "a plain wait uses the snapshotter's fixed delay")

	withReady := r.Options(config.CaptureConfig{ReadySelector: "#app"})
	assert.NotNil(t, withReady.Readiness)
}

func TestOptionsWaitSurvivesMissedElement(t *testing.T) {
	r, _ := newRunner(t, config.CaptureConfig{Name: "a", Target: "a.html", Output: "a.png"})
	opts := r.Options(config.CaptureConfig{ReadySelector: "#app", Wait: 50 * time.Millisecond})

	// a plain context has no browser tab, so the element wait fails at once
	start := time.Now()
	err := opts.Readiness.Ready(context.Background())

	assert.Error(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond, "settle delay must still run")
}

func TestExitCode(t *testing.T) {
	clean := Summarize([]models.Result{{Screenshot: "a.png"}})
	degraded := Summarize([]models.Result{
		{Screenshot: "a.png", NavigationErr: "navigate file:///a.html: page load error"},
		{Screenshot: "b.png", Inspections: []models.Inspection{{Selector: "#map-canvas"}}},
	})

	assert.Equal(t, Summary{Captured: 1}, clean)
	assert.Equal(t, Summary{Captured: 2, Degraded: 2}, degraded)

	assert.Equal(t, 0, ExitCode(clean, true))
	assert.Equal(t, 0, ExitCode(degraded, false), "best effort mode never fails on diagnostics")
	assert.Equal(t, 1, ExitCode(degraded, true))
}

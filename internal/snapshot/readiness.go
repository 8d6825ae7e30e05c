package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultElementTimeout bounds ElementReady when no timeout is given.
const DefaultElementTimeout = 10 * time.Second

// Readiness decides when a loaded page is settled enough to inspect and capture.
type Readiness interface {
	Ready(ctx context.Context) error
}

// ReadinessFunc adapts a function to Readiness.
type ReadinessFunc func(ctx context.Context) error

func (f ReadinessFunc) Ready(ctx context.Context) error { return f(ctx) }

// Delay waits a fixed duration.
func Delay(d time.Duration) Readiness {
	return ReadinessFunc(func(ctx context.Context) error {
		if d <= 0 {
			return nil
		}
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// ElementReady waits until selector matches an element in the page.
// ctx must be a chromedp tab context.
func ElementReady(selector string, timeout time.Duration) Readiness {
	if timeout <= 0 {
		timeout = DefaultElementTimeout
	}
	return ReadinessFunc(func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return chromedp.Run(ctx, chromedp.WaitReady(selector, chromedp.ByQuery))
	})
}

// Sequence runs every predicate in order even when an earlier one fails, so a
// settle delay still applies after a missed element. Failures are joined.
func Sequence(preds ...Readiness) Readiness {
	return ReadinessFunc(func(ctx context.Context) error {
		var errs []error
		for _, p := range preds {
			if p == nil {
				continue
			}
			if err := p.Ready(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

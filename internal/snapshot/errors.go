package snapshot

import (
	"fmt"

	"github.com/williampepple1/page-snapshotter/internal/inspect"
)

// NavigationError reports that the target document could not be loaded or
// did not become ready.
type NavigationError struct {
	URL   string
	Stage string
	Err   error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// InspectionError reports a selector lookup that failed.
type InspectionError = inspect.Error

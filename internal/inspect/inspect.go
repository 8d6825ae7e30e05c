package inspect

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"go.uber.org/zap"

	"github.com/williampepple1/page-snapshotter/pkg/models"
)

// Error reports a selector that could not be evaluated
type Error struct {
	Selector string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("inspect %q: %v", e.Selector, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Inspector queries rendered HTML for diagnostic selectors
type Inspector struct {
	Logger *zap.Logger
}

// NewInspector creates a new inspector
func NewInspector(logger *zap.Logger) *Inspector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inspector{Logger: logger}
}

// InspectHTML parses html and inspects each selector in order
func (i *Inspector) InspectHTML(html string, selectors []string) ([]models.Inspection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse rendered document: %w", err)
	}
	return i.Inspect(doc, selectors), nil
}

// Inspect evaluates each selector against doc. A failure on one selector
// never affects the others.
func (i *Inspector) Inspect(doc *goquery.Document, selectors []string) []models.Inspection {
	inspections := make([]models.Inspection, 0, len(selectors))
	for _, selector := range selectors {
		in, err := i.one(doc, selector)
		if err != nil {
			in.Err = err.Error()
			i.Logger.Warn("inspection failed", zap.String("selector", selector), zap.Error(err))
		}
		inspections = append(inspections, in)
	}
	return inspections
}

func (i *Inspector) one(doc *goquery.Document, selector string) (models.Inspection, error) {
	in := models.Inspection{Selector: selector}

	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return in, &Error{Selector: selector, Err: err}
	}

	sel := doc.FindMatcher(matcher)
	in.Count = sel.Length()
	if in.Count == 0 {
		i.Logger.Info(selector + " NOT found")
		return in, nil
	}

	in.Found = true
	in.Text = strings.TrimSpace(sel.First().Text())
	if in.Text != "" {
		i.Logger.Info(fmt.Sprintf("%s: %s", selector, in.Text), zap.Int("matches", in.Count))
	} else {
		i.Logger.Info(selector+" found", zap.Int("matches", in.Count))
	}
	return in, nil
}

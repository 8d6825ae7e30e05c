package io

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/williampepple1/page-snapshotter/internal/config"
	"github.com/williampepple1/page-snapshotter/pkg/models"
)

// ResultWriter writes capture results as a report
type ResultWriter struct {
	Config *config.ReportConfig
}

// NewResultWriter creates a new result writer
func NewResultWriter(config *config.ReportConfig) *ResultWriter {
	return &ResultWriter{
		Config: config,
	}
}

// Encode renders the results in the configured format
func (w *ResultWriter) Encode(results []models.Result) ([]byte, error) {
	switch w.Config.OutputFormat {
	case "", "json":
		return json.MarshalIndent(results, "", "  ")

	case "yaml":
		return yaml.Marshal(results)

	default:
		return nil, fmt.Errorf("unsupported output format: %s", w.Config.OutputFormat)
	}
}

// SaveToFile saves the results to the configured file
func (w *ResultWriter) SaveToFile(results []models.Result) error {
	data, err := w.Encode(results)
	if err != nil {
		return err
	}
	return os.WriteFile(w.Config.OutputFile, data, 0644)
}

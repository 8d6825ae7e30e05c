package io

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/williampepple1/page-snapshotter/internal/config"
	"github.com/williampepple1/page-snapshotter/pkg/models"
)

var sample = []models.Result{{
	Name:       "ui",
	TargetURL:  "file:///work/src/renderer/index.html",
	Screenshot: "verification/ui_screenshot.png",
	Bytes:      2048,
	Inspections: []models.Inspection{
		{Selector: "#threat-level", Found: true, Count: 1, Text: "ELEVATED"},
		{Selector: "#map-canvas"},
	},
	Duration:  1500 * time.Millisecond,
	Timestamp: time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC),
}}

func TestSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	w := NewResultWriter(&config.ReportConfig{OutputFile: path, OutputFormat: "json"})
	require.NoError(t, w.SaveToFile(sample))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "ui", raw[0]["name"])
	assert.NotContains(t, raw[0], "navigation_error")

	inspections := raw[0]["inspections"].([]any)
	assert.Equal(t, "ELEVATED", inspections[0].(map[string]any)["text"])
	assert.Equal(t, false, inspections[1].(map[string]any)["found"])
}

func TestSaveYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	w := NewResultWriter(&config.ReportConfig{OutputFile: path, OutputFormat: "yaml"})
	require.NoError(t, w.SaveToFile(sample))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "file:///work/src/renderer/index.html")

	var got []models.Result
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, sample[0].Inspections, got[0].Inspections)
	assert.Equal(t, sample[0].Duration, got[0].Duration)
}

func TestUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	w := NewResultWriter(&config.ReportConfig{OutputFile: path, OutputFormat: "csv"})

	assert.Error(t, w.SaveToFile(sample))
	assert.NoFileExists(t, path)
}

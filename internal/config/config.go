package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig holds the complete application configuration
type AppConfig struct {
	Browser  BrowserConfig   `yaml:"browser"`
	Captures []CaptureConfig `yaml:"captures"`
	Report   ReportConfig    `yaml:"report"`
	Strict   bool            `yaml:"strict"`
}

// BrowserConfig holds the headless browser settings shared by every capture
type BrowserConfig struct {
	Headless          bool          `yaml:"headless"`
	NoSandbox         bool          `yaml:"no_sandbox"`
	UserAgent         string        `yaml:"user_agent"`
	ViewportWidth     int           `yaml:"viewport_width"`
	ViewportHeight    int           `yaml:"viewport_height"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
}

// CaptureConfig describes one target document and where its screenshot goes
type CaptureConfig struct {
	Name          string        `yaml:"name"`
	Target        string        `yaml:"target"`
	Output        string        `yaml:"output"`
	FullPage      bool          `yaml:"full_page"`
	Wait          time.Duration `yaml:"wait"`
	ReadySelector string        `yaml:"ready_selector,omitempty"`
	Selectors     []string      `yaml:"selectors,omitempty"`
}

// ReportConfig holds the optional run report settings
type ReportConfig struct {
	OutputFile   string `yaml:"output_file"`
	OutputFormat string `yaml:"output_format"`
}

// Load loads the configuration from a YAML file
func Load(filename string) (*AppConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := AppConfig{Browser: DefaultBrowser()}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	if config.Report.OutputFormat == "" {
		config.Report.OutputFormat = "json"
	}

	return &config, nil
}

// CreateDefault creates a configuration holding a single capture
func CreateDefault(capture CaptureConfig, reportFile, reportFormat string, strict bool) *AppConfig {
	if capture.Name == "" {
		capture.Name = "default"
	}
	if reportFormat == "" {
		reportFormat = "json"
	}
	return &AppConfig{
		Browser:  DefaultBrowser(),
		Captures: []CaptureConfig{capture},
		Report: ReportConfig{
			OutputFile:   reportFile,
			OutputFormat: reportFormat,
		},
		Strict: strict,
	}
}

// Validate checks that every capture can be run
func (c *AppConfig) Validate() error {
	if len(c.Captures) == 0 {
		return fmt.Errorf("no captures configured")
	}
	for i, capture := range c.Captures {
		if capture.Target == "" {
			return fmt.Errorf("capture %d (%s): target is required", i, capture.Name)
		}
		if capture.Output == "" {
			return fmt.Errorf("capture %d (%s): output is required", i, capture.Name)
		}
		if capture.Wait < 0 {
			return fmt.Errorf("capture %d (%s): wait must not be negative", i, capture.Name)
		}
	}
	if c.Browser.NavigationTimeout < 0 {
		return fmt.Errorf("browser: navigation_timeout must not be negative")
	}
	switch c.Report.OutputFormat {
	case "", "json", "yaml":
	default:
		return fmt.Errorf("unsupported report format: %s", c.Report.OutputFormat)
	}
	return nil
}

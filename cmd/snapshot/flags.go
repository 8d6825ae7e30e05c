package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/williampepple1/page-snapshotter/internal/config"
)

type selectorList []string

func (s *selectorList) String() string { return strings.Join(*s, ",") }

func (s *selectorList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// captureFlags only describe an ad-hoc capture and have no effect with
// -config or -preset.
var captureFlags = []string{"target", "output", "full-page", "wait", "ready-selector", "selector"}

// cliOptions holds the parsed command line
type cliOptions struct {
	ConfigFile    string
	Preset        string
	Target        string
	Output        string
	FullPage      bool
	Wait          time.Duration
	ReadySelector string
	Selectors     selectorList
	NavTimeout    time.Duration
	ReportFile    string
	ReportFormat  string
	NoSandbox     bool
	Strict        bool
	Verbose       bool

	// set records the flags given explicitly on the command line
	set map[string]bool
}

func parseFlags(name string, args []string, output io.Writer) (*cliOptions, error) {
	o := &cliOptions{set: map[string]bool{}}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	// Define command-line flags
	fs.StringVar(&o.ConfigFile, "config", "", "Path to configuration file (YAML)")
	fs.StringVar(&o.Preset, "preset", "", fmt.Sprintf("Built-in capture to run (%s)", strings.Join(config.PresetNames(), ", ")))
	fs.StringVar(&o.Target, "target", "", "Local HTML file to load")
	fs.StringVar(&o.Output, "output", "screenshot.png", "Where to write the PNG screenshot")
	fs.BoolVar(&o.FullPage, "full-page", false, "Capture the entire scrollable page instead of the viewport")
	fs.DurationVar(&o.Wait, "wait", 0, "Fixed delay after navigation before inspecting and capturing")
	fs.StringVar(&o.ReadySelector, "ready-selector", "", "Wait for this CSS selector to exist before capturing")
	fs.Var(&o.Selectors, "selector", "CSS selector to inspect (repeatable)")
	fs.DurationVar(&o.NavTimeout, "nav-timeout", 0, "Upper bound for page navigation (0 = none)")
	fs.StringVar(&o.ReportFile, "report", "", "Write a report of all captures to this file")
	fs.StringVar(&o.ReportFormat, "report-format", "json", "Report format (json or yaml)")
	fs.BoolVar(&o.NoSandbox, "no-sandbox", false, "Launch the browser without its sandbox (needed when running as root)")
	fs.BoolVar(&o.Strict, "strict", false, "Exit non-zero when navigation or inspection problems were recorded")
	fs.BoolVar(&o.Verbose, "verbose", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// buildConfig resolves the run configuration. Precedence is -config, then
// -preset, then -target, then the built-in presets. Run-wide flags override
// the chosen source when given explicitly.
func buildConfig(o *cliOptions, logger *zap.Logger) (*config.AppConfig, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var appConfig *config.AppConfig
	switch {
	case o.ConfigFile != "":
		var err error
		appConfig, err = config.Load(o.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("load configuration: %w", err)
		}
		logger.Info("Loaded configuration from " + o.ConfigFile)
		o.warnIgnored(logger, "-config", captureFlags)

	case o.Preset != "":
		capture, err := config.Preset(o.Preset)
		if err != nil {
			return nil, err
		}
		appConfig = config.CreateDefault(capture, "", "", false)
		o.warnIgnored(logger, "-preset", captureFlags)

	case o.Target != "":
		appConfig = config.CreateDefault(config.CaptureConfig{
			Target:        o.Target,
			Output:        o.Output,
			FullPage:      o.FullPage,
			Wait:          o.Wait,
			ReadySelector: o.ReadySelector,
			Selectors:     append([]string(nil), o.Selectors...),
		}, "", "", false)

	default:
		appConfig = config.CreateDefault(config.CaptureConfig{}, "", "", false)
		appConfig.Captures = appConfig.Captures[:0]
		for _, name := range config.PresetNames() {
			capture, err := config.Preset(name)
			if err != nil {
				return nil, err
			}
			appConfig.Captures = append(appConfig.Captures, capture)
		}
		logger.Info("Running built-in captures (no config, preset or target provided)")
		o.warnIgnored(logger, "no -target", captureFlags)
	}

	if o.set["report"] {
		appConfig.Report.OutputFile = o.ReportFile
	}
	if o.set["report-format"] {
		appConfig.Report.OutputFormat = o.ReportFormat
	}
	if o.set["strict"] {
		appConfig.Strict = o.Strict
	}
	if o.set["no-sandbox"] {
		appConfig.Browser.NoSandbox = o.NoSandbox
	}
	if o.set["nav-timeout"] {
		appConfig.Browser.NavigationTimeout = o.NavTimeout
	}

	if err := appConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return appConfig, nil
}

func (o *cliOptions) warnIgnored(logger *zap.Logger, reason string, names []string) {
	var ignored []string
	for _, name := range names {
		if o.set[name] {
			ignored = append(ignored, "-"+name)
		}
	}
	if len(ignored) > 0 {
		logger.Warn("Ignoring capture flags", zap.Strings("flags", ignored), zap.String("because", reason))
	}
}

package config

import (
	"fmt"
	"sort"
	"time"
)

// DefaultTarget is the renderer entry point the presets load
const DefaultTarget = "src/renderer/index.html"

// DefaultBrowser returns the browser settings used when none are configured
func DefaultBrowser() BrowserConfig {
	return BrowserConfig{
		Headless:       true,
		ViewportWidth:  1280,
		ViewportHeight: 720,
	}
}

// Presets holds the built-in capture jobs, keyed by name
var Presets = map[string]CaptureConfig{
	"layout": {
		Name:     "layout",
		Target:   DefaultTarget,
		Output:   "verification/layout.png",
		FullPage: true,
	},
	"ui": {
		Name:      "ui",
		Target:    DefaultTarget,
		Output:    "verification/ui_screenshot.png",
		Wait:      2 * time.Second,
		Selectors: []string{"#threat-level", "#map-canvas"},
	},
}

// Preset returns a copy of the named preset
func Preset(name string) (CaptureConfig, error) {
	p, ok := Presets[name]
	if !ok {
		return CaptureConfig{}, fmt.Errorf("unknown preset %q (available: %v)", name, PresetNames())
	}
	p.Selectors = append([]string(nil), p.Selectors...)
	return p, nil
}

// PresetNames lists the preset names in sorted order
func PresetNames() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

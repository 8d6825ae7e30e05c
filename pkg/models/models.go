package models

import (
	"time"
)

// Inspection is the outcome of querying one selector
type Inspection struct {
	Selector string `json:"selector" yaml:"selector"`
	Found    bool   `json:"found" yaml:"found"`
	Count    int    `json:"count" yaml:"count"`
	Text     string `json:"text,omitempty" yaml:"text,omitempty"`
	Err      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Result represents the outcome of one capture
type Result struct {
	Name          string        `json:"name" yaml:"name"`
	TargetURL     string        `json:"target_url" yaml:"target_url"`
	Screenshot    string        `json:"screenshot,omitempty" yaml:"screenshot,omitempty"`
	Bytes         int           `json:"bytes" yaml:"bytes"`
	FullPage      bool          `json:"full_page" yaml:"full_page"`
	NavigationErr string        `json:"navigation_error,omitempty" yaml:"navigation_error,omitempty"`
	Inspections   []Inspection  `json:"inspections,omitempty" yaml:"inspections,omitempty"`
	Err           string        `json:"error,omitempty" yaml:"error,omitempty"`
	Duration      time.Duration `json:"duration" yaml:"duration"`
	Timestamp     time.Time     `json:"timestamp" yaml:"timestamp"`
}

// Degraded reports whether the run recorded a navigation or inspection problem
func (r Result) Degraded() bool {
	if r.NavigationErr != "" {
		return true
	}
	for _, in := range r.Inspections {
		if in.Err != "" || !in.Found {
			return true
		}
	}
	return false
}

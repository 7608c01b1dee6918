package config

import (
	"fmt"
	"time"
)

// Options holds all configuration for a portsweep scan. It is populated
// once by the CLI layer, validated, and treated as read-only afterwards.
type Options struct {
	// Target
	Host  string
	Ports string // port spec: "443", "22,80,443", "1-1024", or mixed

	// Probing
	Threads    int
	Timeout    time.Duration
	BannerGrab bool
	BannerLen  int

	// Output
	Verbose      bool
	ShowClosed   bool
	Debug        bool
	Quiet        bool
	NoColor      bool
	OutputFile   string // path for JSON export; empty = stdout for json format
	OutputFormat string // "text", "json"
}

// Validate checks option combinations that the flag layer cannot.
func (o *Options) Validate() error {
	if o.Host == "" {
		return fmt.Errorf("target host required")
	}
	if o.Threads < 0 {
		return fmt.Errorf("threads must not be negative, got %d", o.Threads)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", o.Timeout)
	}
	if o.BannerGrab && o.BannerLen <= 0 {
		return fmt.Errorf("banner-len must be positive, got %d", o.BannerLen)
	}
	switch o.OutputFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("format must be one of: text, json")
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Formats lists the supported output formats.
var Formats = []string{"text", "json", "yaml", "xlsx", "sources"}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Inspect.Path) == "" {
		errs = append(errs, errors.New("inspect.path is required"))
	}
	if !slices.Contains(Formats, c.Inspect.Format) {
		errs = append(errs, fmt.Errorf("inspect.format %q must be one of %s", c.Inspect.Format, strings.Join(Formats, ", ")))
	}
	if c.Inspect.Mode != "source" && c.Inspect.Mode != "verbose" {
		errs = append(errs, fmt.Errorf("inspect.mode %q must be source or verbose", c.Inspect.Mode))
	}
	if c.Inspect.WordWrap < 0 {
		errs = append(errs, fmt.Errorf("inspect.word_wrap must not be negative, got %d", c.Inspect.WordWrap))
	}
	if c.Inspect.WatchDebounce < 0 {
		errs = append(errs, fmt.Errorf("inspect.watch_debounce must not be negative, got %s", c.Inspect.WatchDebounce))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q must be debug, info, warn or error", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Encoding) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.encoding %q must be console or json", c.Log.Encoding))
	}

	return errors.Join(errs...)
}

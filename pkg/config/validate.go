package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

var markerPattern = regexp.MustCompile(`^[A-Za-z_]\w*$`)

// Validate checks that the configuration can drive the engine.
func (c Config) Validate() error {
	if !markerPattern.MatchString(c.Marker) {
		return invalid("marker %q must be an identifier", c.Marker)
	}
	if len(c.CommentPrefixes) == 0 {
		return invalid("comment_prefixes must not be empty")
	}
	for _, p := range c.CommentPrefixes {
		if strings.TrimSpace(p) == "" {
			return invalid("comment_prefixes must not contain blank entries")
		}
	}
	if c.DefaultRange.Step == 0 {
		return invalid("default_range step must not be zero")
	}
	if c.MaxSamples <= 0 {
		return invalid("max_samples must be positive, got %d", c.MaxSamples)
	}
	if c.Table.Padding < 0 {
		return invalid("table padding must not be negative, got %d", c.Table.Padding)
	}
	if c.Scan.MaxFileSize < 0 {
		return invalid("scan max_file_size must not be negative, got %d", c.Scan.MaxFileSize)
	}
	if _, err := c.Mode(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

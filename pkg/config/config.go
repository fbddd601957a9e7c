// Package config loads formulaview settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/praetorian-inc/formulaview/pkg/table"
	"github.com/praetorian-inc/formulaview/pkg/types"
	"github.com/praetorian-inc/formulaview/pkg/variables"
)

// Config holds every setting of the preview engine and CLI.
type Config struct {
	Marker                  string        `yaml:"marker" json:"marker"`
	CommentPrefixes         []string      `yaml:"comment_prefixes" json:"comment_prefixes"`
	ReservedFunctions       []string      `yaml:"reserved_functions" json:"reserved_functions"`
	DefaultRange            Range         `yaml:"default_range" json:"default_range"`
	MaxSamples              int           `yaml:"max_samples" json:"max_samples"`
	Placeholder             string        `yaml:"placeholder" json:"placeholder"`
	TooManyVariablesMessage string        `yaml:"too_many_variables_message" json:"too_many_variables_message"`
	RewriteMode             string        `yaml:"rewrite_mode" json:"rewrite_mode"`
	Table                   table.Options `yaml:"table" json:"table"`
	Scan                    Scan          `yaml:"scan" json:"scan"`
}

// Range is a range(start, end, step) triple.
type Range struct {
	Start int64 `yaml:"start" json:"start"`
	End   int64 `yaml:"end" json:"end"`
	Step  int64 `yaml:"step" json:"step"`
}

// Scan configures batch scanning of files.
type Scan struct {
	// Extensions limits scanning to files with these extensions. Empty means
	// every file.
	Extensions    []string `yaml:"extensions" json:"extensions"`
	IncludeHidden bool     `yaml:"include_hidden" json:"include_hidden"`
	// MaxFileSize skips larger files. Zero means no limit.
	MaxFileSize int64 `yaml:"max_file_size" json:"max_file_size"`
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	if err := decode(builtinDefaults, &cfg); err != nil {
		panic(fmt.Sprintf("config: invalid built-in defaults: %v", err))
	}
	return cfg
}

// Parse overlays the YAML in data on the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads path and overlays it on the defaults. An empty path returns the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DefaultDirective returns DefaultRange as a directive.
func (c Config) DefaultDirective() types.RangeDirective {
	return types.RangeDirective{
		Start: c.DefaultRange.Start,
		End:   c.DefaultRange.End,
		Step:  c.DefaultRange.Step,
	}
}

// Mode returns the parsed rewrite mode.
func (c Config) Mode() (variables.Mode, error) {
	return variables.ParseMode(c.RewriteMode)
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Package config provides shared configuration types for tably.
// This package is decoupled from CLI concerns so that tools embedding
// the engine can load settings without pulling in cobra.
package config

import (
	"fmt"

	"github.com/tably-labs/tably/pkg/frame"
)

// Default configuration values.
const (
	DefaultDataDir  = "data"
	DefaultOutput   = "table"
	DefaultHow      = "inner"
	DefaultNullText = "<NA>"
)

// DefaultSuffixes disambiguate clashing column names on merge output.
var DefaultSuffixes = []string{"_x", "_y"}

// Config holds all tably configuration options.
type Config struct {
	// DataDir is the directory scanned for datasets, resolved relative
	// to the project root when not absolute.
	DataDir string `koanf:"data_dir"`

	// Output selects the default render format: table, json, csv, md.
	Output string `koanf:"output"`

	// How is the default merge policy: left, right, inner, outer.
	How string `koanf:"how"`

	// Suffixes is the [left, right] pair appended to clashing non-key
	// column names in merge output.
	Suffixes []string `koanf:"suffixes"`

	// NullText is the placeholder rendered for missing cells.
	NullText string `koanf:"null_text"`

	Verbose bool `koanf:"verbose"`
}

// ApplyDefaults fills unset fields with default values.
func ApplyDefaults(c *Config) {
	if c == nil {
		return
	}
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.How == "" {
		c.How = DefaultHow
	}
	if len(c.Suffixes) == 0 {
		c.Suffixes = append([]string(nil), DefaultSuffixes...)
	}
	if c.NullText == "" {
		c.NullText = DefaultNullText
	}
}

// Validate checks field values after defaults have been applied.
func (c *Config) Validate() error {
	if _, err := frame.ParseHow(c.How); err != nil {
		return fmt.Errorf("invalid how: %w", err)
	}
	switch c.Output {
	case "table", "json", "csv", "md", "markdown":
	default:
		return fmt.Errorf("invalid output format %q (want table, json, csv or md)", c.Output)
	}
	if len(c.Suffixes) != 2 {
		return fmt.Errorf("suffixes must have exactly two entries, got %d", len(c.Suffixes))
	}
	if c.Suffixes[0] == c.Suffixes[1] {
		return fmt.Errorf("suffixes must differ, got %q twice", c.Suffixes[0])
	}
	return nil
}

// SuffixPair returns the suffixes as the fixed-size pair the merge
// executor expects.
func (c *Config) SuffixPair() [2]string {
	if len(c.Suffixes) != 2 {
		return [2]string{DefaultSuffixes[0], DefaultSuffixes[1]}
	}
	return [2]string{c.Suffixes[0], c.Suffixes[1]}
}

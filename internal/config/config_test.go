package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, "inner", cfg.How)
	assert.Equal(t, []string{"_x", "_y"}, cfg.Suffixes)
	assert.Equal(t, "<NA>", cfg.NullText)
	assert.False(t, cfg.Verbose)
}

func TestApplyDefaultsKeepsSetValues(t *testing.T) {
	cfg := &Config{DataDir: "fixtures", How: "outer"}
	ApplyDefaults(cfg)

	assert.Equal(t, "fixtures", cfg.DataDir)
	assert.Equal(t, "outer", cfg.How)
	assert.Equal(t, "table", cfg.Output)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults pass", mutate: func(*Config) {}},
		{
			name:    "bad how",
			mutate:  func(c *Config) { c.How = "sideways" },
			wantErr: "invalid how",
		},
		{
			name:    "bad output",
			mutate:  func(c *Config) { c.Output = "xml" },
			wantErr: "invalid output format",
		},
		{
			name:    "wrong suffix count",
			mutate:  func(c *Config) { c.Suffixes = []string{"_a"} },
			wantErr: "exactly two",
		},
		{
			name:    "identical suffixes",
			mutate:  func(c *Config) { c.Suffixes = []string{"_a", "_a"} },
			wantErr: "must differ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			ApplyDefaults(cfg)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSuffixPair(t *testing.T) {
	cfg := &Config{Suffixes: []string{"_l", "_r"}}
	assert.Equal(t, [2]string{"_l", "_r"}, cfg.SuffixPair())

	// Malformed slice falls back to the defaults rather than panicking.
	cfg = &Config{Suffixes: []string{"_only"}}
	assert.Equal(t, [2]string{"_x", "_y"}, cfg.SuffixPair())
}

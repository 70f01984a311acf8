// Package source loads labeled tables from external dataset locations:
// CSV files and SQL databases (SQLite, DuckDB, Postgres). Sources are
// registered by name; the right source for a locator is detected from
// its URL scheme or file extension.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tably-labs/tably/pkg/frame"
)

// Source loads a dataset locator into a frame.
type Source interface {
	// Name returns the registry name of the source (e.g. "csv").
	Name() string

	// Load reads the dataset at locator into a frame.
	Load(ctx context.Context, locator string, opts LoadOptions) (*frame.Frame, error)
}

// LoadOptions tune how a dataset is read.
type LoadOptions struct {
	// Table names the table to read from a SQL source. Ignored by the
	// CSV source.
	Table string

	// Query overrides Table with a full SELECT statement for SQL sources.
	Query string

	// IndexColumn moves the named column into the frame's index after
	// loading.
	IndexColumn string

	// Schema pins column kinds (and optionally the index column) instead
	// of relying on inference. The CSV source also picks up a sidecar
	// schema file automatically when Schema is nil.
	Schema *Schema
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func(*slog.Logger) Source)
)

// Register adds a source factory to the registry. Called by source
// implementations in their init() functions.
func Register(name string, factory func(*slog.Logger) Source) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// New creates a source instance by registry name. A nil logger discards.
func New(name string, logger *slog.Logger) (Source, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown source type %q (available: %v)", name, List())
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return factory(logger), nil
}

// List returns all registered source names, sorted.
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Detect maps a locator to a registered source name by URL scheme or
// file extension.
func Detect(locator string) (string, error) {
	switch {
	case strings.HasPrefix(locator, "postgres://"), strings.HasPrefix(locator, "postgresql://"):
		return "postgres", nil
	}
	switch strings.ToLower(filepath.Ext(locator)) {
	case ".csv":
		return "csv", nil
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite", nil
	case ".duckdb", ".ddb":
		return "duckdb", nil
	default:
		return "", fmt.Errorf("cannot detect source type for %q", locator)
	}
}

// Load detects the source for locator, instantiates it, and loads the
// dataset.
func Load(ctx context.Context, locator string, opts LoadOptions, logger *slog.Logger) (*frame.Frame, error) {
	name, err := Detect(locator)
	if err != nil {
		return nil, err
	}
	src, err := New(name, logger)
	if err != nil {
		return nil, err
	}
	return src.Load(ctx, locator, opts)
}

// applyIndex moves the configured index column into the frame's index.
func applyIndex(f *frame.Frame, opts LoadOptions) (*frame.Frame, error) {
	name := opts.IndexColumn
	if name == "" && opts.Schema != nil {
		name = opts.Schema.Index
	}
	if name == "" {
		return f, nil
	}
	out, err := f.SetIndex(name)
	if err != nil {
		return nil, fmt.Errorf("setting index column %q: %w", name, err)
	}
	return out, nil
}

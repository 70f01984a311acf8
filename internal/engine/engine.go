// Package engine provides the dataset workspace: it loads named datasets
// from a data directory (or explicit locators) and runs combination
// operations over them.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tably-labs/tably/internal/source"
	"github.com/tably-labs/tably/pkg/frame"
)

// Engine holds named frames loaded from dataset sources.
type Engine struct {
	logger  *slog.Logger
	dataDir string

	mu       sync.RWMutex
	datasets map[string]*frame.Frame
}

// Config holds engine configuration.
type Config struct {
	// DataDir is the directory scanned for CSV datasets.
	DataDir string
	// Logger is the structured logger (optional, uses discard if nil).
	Logger *slog.Logger
}

// New creates a workspace engine. Datasets are loaded lazily via
// LoadDatasets or Load.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		logger:   logger,
		dataDir:  cfg.DataDir,
		datasets: make(map[string]*frame.Frame),
	}
}

// DataDir returns the configured dataset directory.
func (e *Engine) DataDir() string { return e.dataDir }

// LoadDatasets loads every CSV file in the data directory, concurrently.
// The dataset name is the file name without its extension. A missing
// data directory is not an error.
func (e *Engine) LoadDatasets(ctx context.Context) error {
	if e.dataDir == "" {
		return nil
	}

	entries, err := os.ReadDir(e.dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading data directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".csv")
		path := filepath.Join(e.dataDir, entry.Name())
		g.Go(func() error {
			f, err := source.Load(ctx, path, source.LoadOptions{}, e.logger)
			if err != nil {
				return fmt.Errorf("loading dataset %s: %w", name, err)
			}
			e.put(name, f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	e.logger.Debug("datasets loaded", "dir", e.dataDir, "count", len(e.List()))
	return nil
}

// Load loads a single dataset from a locator under the given name.
func (e *Engine) Load(ctx context.Context, name, locator string, opts source.LoadOptions) error {
	f, err := source.Load(ctx, locator, opts, e.logger)
	if err != nil {
		return fmt.Errorf("loading dataset %s: %w", name, err)
	}
	e.put(name, f)
	e.logger.Debug("dataset loaded", "name", name, "locator", locator,
		"rows", f.RowCount(), "columns", f.NumColumns())
	return nil
}

// Get returns a dataset by name.
func (e *Engine) Get(name string) (*frame.Frame, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	f, ok := e.datasets[name]
	if !ok {
		return nil, fmt.Errorf("unknown dataset %q (have: %s)", name, strings.Join(e.listLocked(), ", "))
	}
	return f, nil
}

// List returns the loaded dataset names, sorted.
func (e *Engine) List() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.listLocked()
}

// Drop removes a dataset from the workspace.
func (e *Engine) Drop(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.datasets, name)
}

// Put stores a frame under a dataset name, replacing any previous one.
func (e *Engine) Put(name string, f *frame.Frame) {
	e.put(name, f)
}

func (e *Engine) put(name string, f *frame.Frame) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.datasets[name] = f
}

func (e *Engine) listLocked() []string {
	names := make([]string, 0, len(e.datasets))
	for name := range e.datasets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge joins two datasets by name.
func (e *Engine) Merge(left, right string, opts frame.MergeOptions) (*frame.Frame, error) {
	l, err := e.Get(left)
	if err != nil {
		return nil, err
	}
	r, err := e.Get(right)
	if err != nil {
		return nil, err
	}

	opID := uuid.NewString()
	e.logger.Debug("merge", "op", opID, "left", left, "right", right, "how", string(opts.How))

	out, err := frame.Merge(l, r, opts)
	if err != nil {
		return nil, fmt.Errorf("merging %s with %s: %w", left, right, err)
	}
	e.logger.Debug("merge done", "op", opID, "rows", out.RowCount(), "columns", out.NumColumns())
	return out, nil
}

// Concat stacks datasets by name along an axis.
func (e *Engine) Concat(axis frame.Axis, names ...string) (*frame.Frame, error) {
	frames := make([]*frame.Frame, len(names))
	for i, name := range names {
		f, err := e.Get(name)
		if err != nil {
			return nil, err
		}
		frames[i] = f
	}

	opID := uuid.NewString()
	e.logger.Debug("concat", "op", opID, "axis", int(axis), "datasets", strings.Join(names, ","))

	out, err := frame.Concat(axis, frames...)
	if err != nil {
		return nil, fmt.Errorf("concatenating %s: %w", strings.Join(names, ", "), err)
	}
	e.logger.Debug("concat done", "op", opID, "rows", out.RowCount(), "columns", out.NumColumns())
	return out, nil
}

// Join merges right into left using right's row labels as its key.
func (e *Engine) Join(left, right string, how frame.How, on ...string) (*frame.Frame, error) {
	l, err := e.Get(left)
	if err != nil {
		return nil, err
	}
	r, err := e.Get(right)
	if err != nil {
		return nil, err
	}

	out, err := l.JoinHow(r, how, on...)
	if err != nil {
		return nil, fmt.Errorf("joining %s with %s: %w", left, right, err)
	}
	return out, nil
}

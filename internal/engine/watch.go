package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/tably-labs/tably/internal/source"
)

// Watch reloads datasets whose CSV file changes in the data directory,
// and drops datasets whose file is removed. It blocks until the context
// is cancelled. The REPL runs it in the background so edited files are
// picked up between statements.
func (e *Engine) Watch(ctx context.Context) error {
	if e.dataDir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(e.dataDir); err != nil {
		return fmt.Errorf("watching %s: %w", e.dataDir, err)
	}
	e.logger.Debug("watching data directory", "dir", e.dataDir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			e.handleEvent(ctx, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			e.logger.Warn("watch error", "error", err)
		}
	}
}

func (e *Engine) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !strings.HasSuffix(event.Name, ".csv") {
		return
	}
	name := strings.TrimSuffix(filepath.Base(event.Name), ".csv")

	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		e.Drop(name)
		e.logger.Debug("dataset dropped after file removal", "name", name)
	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		if err := e.Load(ctx, name, event.Name, source.LoadOptions{}); err != nil {
			// The file may be mid-write; keep the previous frame.
			e.logger.Warn("dataset reload failed", "name", name, "error", err)
		}
	}
}

package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// watchDebounce collapses the burst of events an editor save produces.
var watchDebounce = 100 * time.Millisecond

// watchFile calls run once and again after every change to path until ctx
// is done. The parent directory is watched so that editors which replace
// the file on save are still followed. Errors from run are logged, not
// returned, so a bad edit does not end the session.
func watchFile(ctx context.Context, path string, logger *log.Logger, run func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	rerun := func() {
		prog := newProgress(logger)
		if err := run(); err != nil {
			logger.Error("format failed", "path", path, "err", err)
			return
		}
		prog.done(fmt.Sprintf("Formatted %s", path))
	}

	rerun()
	logger.Info("watching for changes", "path", path)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("input changed", "path", path, "op", ev.Op.String())
			pending = time.After(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		case <-pending:
			pending = nil
			rerun()
		}
	}
}

// Package watch re-runs notebook inspection when the notebook file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is used when a non-positive debounce is given.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a single notebook file.
// The parent directory is watched rather than the file, so editors that
// save by writing a new file and renaming it over the old one are seen.
type Watcher struct {
	path     string
	dir      string
	debounce time.Duration
	logger   *zap.Logger

	fw *fsnotify.Watcher
}

// New creates a Watcher for path.
func New(path string, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		path:     abs,
		dir:      filepath.Dir(abs),
		debounce: debounce,
		logger:   logger,
	}, nil
}

// Start registers the notebook's directory with the OS. Changes made
// after Start returns are delivered by the next Run, even if they happen
// before Run is called. Start is optional; Run calls it when needed.
func (w *Watcher) Start() error {
	if w.fw != nil {
		return nil
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.fw = fw
	w.logger.Debug("watching notebook", zap.String("path", w.path), zap.Duration("debounce", w.debounce))
	return nil
}

// Close releases the OS watch. It is safe to call more than once.
func (w *Watcher) Close() error {
	if w.fw == nil {
		return nil
	}
	err := w.fw.Close()
	w.fw = nil
	return err
}

// Run blocks until ctx is done, calling onChange once for every burst of
// changes to the notebook. Bursts closer together than the debounce
// window are coalesced. onChange runs on the caller's goroutine.
// The watch is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Close()
	fw := w.fw

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watch stopped", zap.String("path", w.path))
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("notebook changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.String("path", w.path), zap.Error(err))

		case <-timer.C:
			onChange()
		}
	}
}

// relevant reports whether the event touches the notebook contents.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) || event.Has(fsnotify.Rename)
}

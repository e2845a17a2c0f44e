// Package watch reloads lexicons when their files change on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher calls OnChange once a burst of writes to any of its files has
// settled. The containing directories are watched, not the files, so
// editors that save by renaming a temp file over the original are seen.
type Watcher struct {
	files    map[string]bool
	debounce time.Duration
	onChange func(ctx context.Context, path string)
	logger   *slog.Logger
}

// New creates a watcher for files. URLs and empty names must be filtered
// out by the caller.
func New(files []string, debounce time.Duration, onChange func(ctx context.Context, path string), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("watch: no files given")
	}
	set := make(map[string]bool, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		set[abs] = true
	}
	return &Watcher{files: set, debounce: debounce, onChange: onChange, logger: logger}, nil
}

// Run watches until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()

	dirs := make(map[string]bool)
	for f := range w.files {
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}

	var mu sync.Mutex
	timers := make(map[string]*time.Timer)
	defer func() {
		mu.Lock()
		for _, t := range timers {
			t.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(event.Name)
			if !w.files[path] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Trailing edge: the callback fires debounce after the last event.
			mu.Lock()
			if t, ok := timers[path]; ok {
				t.Reset(w.debounce)
			} else {
				timers[path] = time.AfterFunc(w.debounce, func() {
					mu.Lock()
					delete(timers, path)
					mu.Unlock()
					if ctx.Err() != nil {
						return
					}
					w.logger.Info("lexicon changed", "path", path)
					w.onChange(ctx, path)
				})
			}
			mu.Unlock()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

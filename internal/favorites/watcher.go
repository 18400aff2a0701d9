package favorites

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/nicobailon/deskmux/internal/logger"
)

// Watcher reloads the workspace when another process writes the
// favorites database. Change bursts collapse through a rate limiter so
// a bulk import triggers one rebind, not one per row.
type Watcher struct {
	fw       *fsnotify.Watcher
	limiter  *rate.Limiter
	onChange func()
	done     chan struct{}
}

// NewWatcher watches the directory holding dbPath. onChange runs on
// the watcher goroutine; keep it to a notification.
func NewWatcher(dbPath string, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	// Watch the directory, not the file: SQLite swaps journal files
	// around the database itself.
	if err := fw.Add(filepath.Dir(dbPath)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(dbPath), err)
	}

	w := &Watcher{
		fw:       fw,
		limiter:  rate.NewLimiter(rate.Every(2*time.Second), 1),
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.loop(filepath.Base(dbPath))
	return w, nil
}

func (w *Watcher) loop(base string) {
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !strings.HasPrefix(filepath.Base(ev.Name), base) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) == 0 {
				continue
			}
			if !w.limiter.Allow() {
				continue
			}
			logger.Debug("favorites: change detected (%s), reloading", ev.Op)
			w.onChange()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			logger.Warn("favorites: watch error: %v", err)
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.fw.Close()
}

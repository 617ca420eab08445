// Package watch reloads run configuration documents when they change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/abdul-hamid-achik/karmarun/packages/core/workspace"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// DebounceDelay is the debounce delay for file watch events
const DebounceDelay = 300 * time.Millisecond

// WarnFunc is a function type for handling warnings
type WarnFunc func(format string, args ...any)

// ReloadFunc receives the configurations of a changed file
type ReloadFunc func(path string, configs []workspace.Configuration)

// Watcher watches run configuration files
type Watcher struct {
	files    []string
	onReload ReloadFunc
	warn     WarnFunc
	delay    time.Duration
	warnRate rate.Sometimes
}

// Option configures a Watcher
type Option func(*Watcher)

// WithWarnFunc sets the warning sink. Repeated watcher errors are throttled.
func WithWarnFunc(fn WarnFunc) Option {
	return func(w *Watcher) {
		w.warn = fn
	}
}

// WithDelay overrides DebounceDelay
func WithDelay(d time.Duration) Option {
	return func(w *Watcher) {
		w.delay = d
	}
}

// New creates a watcher for files
func New(files []string, onReload ReloadFunc, opts ...Option) *Watcher {
	w := &Watcher{
		files:    files,
		onReload: onReload,
		warn:     func(string, ...any) {},
		delay:    DebounceDelay,
		warnRate: rate.Sometimes{First: 3, Interval: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run blocks until ctx is cancelled, calling the reload callback after each
// debounced change to a watched file.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files, so watch the directories.
	watched := make(map[string]bool)
	targets := make(map[string]bool)
	for _, f := range w.files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", f, err)
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if !watched[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			watched[dir] = true
		}
	}

	// Reloads run on this goroutine, one at a time, and never after Run returns.
	reloads := make(chan string)
	done := make(chan struct{})
	timers := make(map[string]*time.Timer)
	defer func() {
		close(done)
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case path := <-reloads:
			w.reload(path)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path, err := filepath.Abs(event.Name)
			if err != nil || !targets[path] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if t, ok := timers[path]; ok {
				t.Stop()
			}
			timers[path] = time.AfterFunc(w.delay, func() {
				select {
				case reloads <- path:
				case <-done:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.warnRate.Do(func() {
				w.warn("watcher error: %v", err)
			})
		}
	}
}

func (w *Watcher) reload(path string) {
	doc, err := workspace.Load(path)
	if err != nil {
		w.warn("reloading %s: %v", path, err)
		return
	}
	w.onReload(path, doc.Configurations())
}

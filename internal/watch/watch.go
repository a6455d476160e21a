// Package watch re-runs a callback when the .graphql files under a set of
// paths change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/covesa/s2dm/errors"
	"github.com/covesa/s2dm/log"
)

// DefaultDebounce is the quiet period used when Config.Debounce is zero.
const DefaultDebounce = 200 * time.Millisecond

type Config struct {
	// Paths are schema files or directories. Directories are watched
	// recursively.
	Paths []string

	// Debounce is how long the watcher waits for more changes before it
	// calls back.
	Debounce time.Duration

	Logger *slog.Logger
}

// Func is called with the sorted set of files that changed since the last
// call. An error is logged and watching goes on.
type Func func(ctx context.Context, changed []string) error

type Watcher struct {
	config  Config
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	// files holds the watched plain files; events on their siblings are
	// ignored.
	files   map[string]bool
	dirs    map[string]bool
	pending map[string]bool
}

func New(config Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if config.Debounce <= 0 {
		config.Debounce = DefaultDebounce
	}
	logger := config.Logger
	if logger == nil {
		logger = log.Discard()
	}

	w := &Watcher{
		config:  config,
		watcher: fsw,
		logger:  logger,
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		pending: make(map[string]bool),
	}
	for _, p := range config.Paths {
		if err := w.add(p); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return &errors.IOError{Op: "watch", Path: path, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return &errors.IOError{Op: "watch", Path: path, Err: err}
	}
	if !info.IsDir() {
		w.files[abs] = true
		return w.watchDir(filepath.Dir(abs), false)
	}
	return filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != abs && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watchDir(p, true)
	})
}

// watchDir adds a watch on dir. Events in a recursive directory all count;
// in other directories only the watched files do.
func (w *Watcher) watchDir(dir string, recursive bool) error {
	if recursive {
		w.dirs[dir] = true
	}
	if err := w.watcher.Add(dir); err != nil {
		return &errors.IOError{Op: "watch", Path: dir, Err: err}
	}
	w.logger.Debug("watching directory", slog.String("path", dir))
	return nil
}

// Relevant reports whether an event on path should trigger a run.
func (w *Watcher) Relevant(path string) bool {
	if w.files[path] {
		return true
	}
	if filepath.Ext(path) != ".graphql" {
		return false
	}
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		if w.dirs[dir] {
			return true
		}
		if parent := filepath.Dir(dir); parent == dir {
			return false
		}
	}
}

// Run blocks until ctx is done, calling fn once the changes settle.
func (w *Watcher) Run(ctx context.Context, fn Func) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.config.Debounce)
	if !timer.Stop() {
		<-timer.C
	}

	w.logger.Info("watching for schema changes", slog.Int("paths", len(w.config.Paths)), slog.Duration("debounce", w.config.Debounce))
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)
			if len(w.pending) > 0 {
				timer.Reset(w.config.Debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watcher error", slog.Any("error", err))

		case <-timer.C:
			changed := make([]string, 0, len(w.pending))
			for p := range w.pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			w.pending = make(map[string]bool)

			w.logger.Info("schema files changed", slog.Int("files", len(changed)))
			if err := fn(ctx, changed); err != nil {
				w.logger.Error("rebuild failed", slog.Any("error", err))
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() && w.Relevant(filepath.Join(event.Name, "x.graphql")) {
			if err := w.watchDir(event.Name, true); err != nil {
				w.logger.Warn("failed to watch new directory", slog.String("path", event.Name), slog.Any("error", err))
			}
			return
		}
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}
	if !w.Relevant(event.Name) {
		return
	}
	w.pending[event.Name] = true
	w.logger.Debug("file change detected", slog.String("path", event.Name), slog.String("op", event.Op.String()))
}

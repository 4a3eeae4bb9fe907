// Package watcher delivers debounced file-change notifications for the
// paths the viewer currently displays. Changes are batched: one
// notification may carry several underlying file events.
package watcher

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce matches the settle window used for reload-on-save.
const DefaultDebounce = 400 * time.Millisecond

// Watcher wraps fsnotify with recursive directory registration and
// debounced, batched delivery.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	events   chan []string
	done     chan struct{}

	mu      sync.Mutex
	watched map[string]bool
	once    sync.Once
}

// New creates a watcher. A non-positive debounce falls back to
// DefaultDebounce.
func New(debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		events:   make(chan []string, 8),
		done:     make(chan struct{}),
		watched:  map[string]bool{},
	}
	go w.loop()
	return w, nil
}

// Events returns the channel delivering batched changed-path slices.
func (w *Watcher) Events() <-chan []string {
	return w.events
}

// Watch replaces the watched set with the given paths. Directories are
// registered recursively. Paths that do not exist are skipped rather than
// failing the whole registration.
func (w *Watcher) Watch(paths []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for path := range w.watched {
		_ = w.fsw.Remove(path)
		delete(w.watched, path)
	}

	var firstErr error
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			if err := w.add(path); err != nil && firstErr == nil {
				firstErr = err
			}
			continue
		}
		if err := w.addRecursive(path); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close stops the watcher and closes the events channel.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) add(path string) error {
	if err := w.fsw.Add(path); err != nil {
		return err
	}
	w.watched[path] = true
	return nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, keep watching the rest
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && d.Name() != "." && d.Name()[0] == '.' {
			return filepath.SkipDir
		}
		return w.add(path)
	})
}

func (w *Watcher) loop() {
	pending := map[string]bool{}
	var timer *time.Timer
	var fire <-chan time.Time

	flush := func() {
		if len(pending) == 0 {
			return
		}
		batch := make([]string, 0, len(pending))
		for path := range pending {
			batch = append(batch, path)
		}
		sort.Strings(batch)
		pending = map[string]bool{}

		select {
		case w.events <- batch:
		case <-w.done:
		}
	}

	for {
		select {
		case <-w.done:
			close(w.events)
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				close(w.events)
				return
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.mu.Lock()
					_ = w.addRecursive(event.Name)
					w.mu.Unlock()
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending[event.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			flush()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				close(w.events)
				return
			}
		}
	}
}

package watcher

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when New is given zero.
const DefaultDebounce = 250 * time.Millisecond

// Watcher invokes a callback after any of a set of files or directories
// changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	files    map[string]bool // watched files, by absolute path
	dirs     map[string]bool // watched directories; any child counts
	debounce time.Duration
	fn       func()
	logger   *slog.Logger

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New creates a Watcher over paths. Each path may be a file or a
// directory and must exist.
func New(paths []string, debounce time.Duration, fn func(), logger *slog.Logger) (*Watcher, error) {
	if fn == nil {
		return nil, fmt.Errorf("callback cannot be nil")
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		debounce: debounce,
		fn:       fn,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}

	subscribed := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("cannot watch %s: %w", p, err)
		}

		dir := abs
		if info.IsDir() {
			w.dirs[abs] = true
		} else {
			w.files[abs] = true
			dir = filepath.Dir(abs)
		}
		if subscribed[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		subscribed[dir] = true
	}

	return w, nil
}

// Start begins delivering change notifications in the background.
func (w *Watcher) Start() error {
	w.wg.Add(1)
	go w.run()
	return nil
}

// Stop halts the watcher and waits for any running callback to return.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	w.wg.Wait()
	return w.fsw.Close()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("change detected", "path", ev.Name, "op", ev.Op.String())
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

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err)

		case <-fire:
			fire = nil
			w.fn()

		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// relevant reports whether an event touches a watched path.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(ev.Name)
	if w.files[name] {
		return true
	}
	return w.dirs[filepath.Dir(name)]
}

// Package watch rescans a video folder when its contents change on disk.
package watch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"vidpick/internal/domain/consts"
	"vidpick/internal/utils/logging"
	"vidpick/internal/validation"
)

// Watcher monitors a folder tree and invokes a callback once changes
// settle. Bursts of filesystem events (a download finishing, a batch
// move) collapse into a single callback after the debounce window.
type Watcher struct {
	folder   string
	exts     map[string]struct{}
	debounce time.Duration
	onChange func()

	fsw *fsnotify.Watcher

	mu     sync.Mutex
	timer  *time.Timer
	dirs   map[string]struct{} // every directory ever added to fsw
	closed bool
}

// New starts watching folder and every subdirectory beneath it. Events on
// files whose extension is not in exts are ignored. onChange runs on a
// timer goroutine once events go quiet, callers rescan from it.
func New(folder string, exts []string, onChange func()) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("watch: onChange callback is required")
	}
	if len(exts) == 0 {
		exts = consts.DefaultVideoExts
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create folder watcher: %w", err)
	}

	w := &Watcher{
		folder:   folder,
		exts:     validation.NormalizeExts(exts),
		debounce: consts.WatchDebounce,
		onChange: onChange,
		fsw:      fsw,
		dirs:     make(map[string]struct{}),
	}

	// The root must watch, subdirectories are best-effort.
	if err := fsw.Add(folder); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", folder, err)
	}
	w.rememberDir(folder)
	w.addTree(folder)

	go w.run()

	logging.I("Watching %s for changes", folder)
	return w, nil
}

// Close stops the watcher. Pending debounced callbacks are canceled, a
// callback already running is left to finish.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.W("Folder watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	// A new directory gets watched immediately; anything moved in with it
	// is picked up by the rescan.
	if ev.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			w.addTree(ev.Name)
			w.bump()
			return
		}
	}

	// Directories vanish without an extension to match on, recognize them
	// by the watch we added earlier.
	if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 && w.knownDir(ev.Name) {
		w.bump()
		return
	}

	if !validation.HasExt(ev.Name, w.exts) {
		return
	}
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
		logging.D(2, "Folder event %s on %q", ev.Op, ev.Name)
		w.bump()
	}
}

// bump arms or extends the debounce timer.
func (w *Watcher) bump() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer == nil {
		w.timer = time.AfterFunc(w.debounce, w.fire)
		return
	}
	w.timer.Reset(w.debounce)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}
	logging.D(1, "Watched folder settled, rescanning")
	w.onChange()
}

func (w *Watcher) addTree(root string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logging.W("Cannot watch %q: %v", path, walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			logging.W("Cannot watch %q: %v", path, err)
			return nil
		}
		w.rememberDir(path)
		return nil
	})
	if err != nil {
		logging.W("Watch setup failed under %q: %v", root, err)
	}
}

func (w *Watcher) rememberDir(path string) {
	w.mu.Lock()
	w.dirs[path] = struct{}{}
	w.mu.Unlock()
}

func (w *Watcher) knownDir(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.dirs[path]
	return ok
}

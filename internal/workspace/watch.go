package workspace

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"pkt.systems/pslog"

	"github.com/vidyasagar/tpane/internal/logx"
)

// Watcher reports changes to the files of open editor views. It watches
// parent directories so files replaced by rename are still seen.
type Watcher struct {
	fs     *fsnotify.Watcher
	events chan string
	log    pslog.Logger

	mu    sync.Mutex
	files map[string]int // path -> open views
	dirs  map[string]int // dir -> watched files
}

// NewWatcher starts a watcher that runs until ctx is done or Close is called.
func NewWatcher(ctx context.Context, log pslog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	w := &Watcher{
		fs:     fw,
		events: make(chan string, 64),
		log:    logx.WithComponent(log, "watch"),
		files:  make(map[string]int),
		dirs:   make(map[string]int),
	}
	go w.run(ctx)
	return w, nil
}

// Events delivers the paths of changed files. It is closed when the
// watcher stops.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Add starts reporting changes to path.
func (w *Watcher) Add(path string) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path]++
	if w.files[path] > 1 {
		return nil
	}
	if w.dirs[dir] == 0 {
		if err := w.fs.Add(dir); err != nil {
			delete(w.files, path)
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	return nil
}

// Remove stops reporting changes to path once every Add has been undone.
func (w *Watcher) Remove(path string) error {
	path = filepath.Clean(path)
	dir := filepath.Dir(path)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files[path] == 0 {
		return nil
	}
	w.files[path]--
	if w.files[path] > 0 {
		return nil
	}
	delete(w.files, path)
	w.dirs[dir]--
	if w.dirs[dir] > 0 {
		return nil
	}
	delete(w.dirs, dir)
	return w.fs.Remove(dir)
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.events)
	for {
		select {
		case <-ctx.Done():
			_ = w.fs.Close()
			return
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "err", err)
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			path := filepath.Clean(ev.Name)
			w.mu.Lock()
			watched := w.files[path] > 0
			w.mu.Unlock()
			if !watched {
				continue
			}
			select {
			case w.events <- path:
			default:
				// Consumer is behind; it rereads the whole file anyway.
			}
		}
	}
}

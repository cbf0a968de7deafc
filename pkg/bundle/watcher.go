package bundle

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/playforge/assetloader/internal/logger"
)

// Watcher emits the keys of assets that change under a directory bundle
// root. It backs the development reload flow: the serve command subscribes
// and invalidates cached entries so the next request reloads from disk.
//
// fsnotify watches are not recursive, so every directory under the root is
// added at construction and newly created directories are added as they
// appear. Files created in a brand-new directory before its watch lands can
// be missed; acceptable for a dev-reload aid.
type Watcher struct {
	root   string
	fsw    *fsnotify.Watcher
	events chan string

	stopCh    chan struct{}
	doneCh    chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	started   atomic.Bool
}

// NewWatcher creates a watcher over the directory bundle at root. Call
// Start to begin emitting events and Close to tear down.
func NewWatcher(root string) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve watch root: %w", err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open watch root: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("watch root %q is not a directory", root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{
		root:   abs,
		fsw:    fsw,
		events: make(chan string, 64),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	err = filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && p != abs {
			return filepath.SkipDir
		}
		return w.fsw.Add(p)
	})
	if err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch bundle directories: %w", err)
	}

	return w, nil
}

// Events returns the channel of changed asset keys. The channel is closed
// by Close after the watch loop has drained.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Start begins the watch loop. Idempotent.
func (w *Watcher) Start() {
	w.startOnce.Do(func() {
		w.started.Store(true)
		go w.run()
	})
}

func (w *Watcher) run() {
	defer close(w.doneCh)

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("bundle watcher error", logger.Err(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
			if err := w.fsw.Add(event.Name); err != nil {
				logger.Warn("failed to watch new directory",
					logger.Path(event.Name), logger.Err(err))
			}
			return
		}
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return
	}
	key := filepath.ToSlash(rel)

	select {
	case w.events <- key:
	default:
		// Consumer is behind; dropping is fine for a reload hint.
		logger.Warn("bundle watch event dropped", logger.Asset(key))
	}
}

// Close stops the watch loop and closes the events channel. Idempotent.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.fsw.Close()
		if w.started.Load() {
			<-w.doneCh
		}
		close(w.events)
	})
	return err
}

// Package itemswatch reports changes to an items file.
package itemswatch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mark3labs/pickr/internal/logger"
)

const debounceInterval = 100 * time.Millisecond

// Watcher watches one file. It watches the parent directory so the file can
// be replaced by rename, as most editors do on save. Bursts of events are
// coalesced into one notification per debounce interval.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan struct{}

	mu    sync.Mutex
	timer *time.Timer

	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// New creates a watcher for path. Call Start to begin watching.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	return &Watcher{
		watcher: w,
		path:    abs,
		events:  make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events delivers one value per settled burst of changes. Notifications are
// dropped while a previous one is still unread.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Start adds the watch and runs the event loop.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.watcher.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(w.path), err)
	}

	go w.eventLoop()
	logger.Debug("Watching items file %s", w.path)
	return nil
}

// Stop ends the event loop and releases the watch. It is safe to call more
// than once.
func (w *Watcher) Stop() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		<-w.stopped

		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
	})
	return err
}

func (w *Watcher) eventLoop() {
	defer close(w.stopped)

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Items watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceInterval, w.notify)
}

func (w *Watcher) notify() {
	select {
	case <-w.done:
		return
	default:
	}
	select {
	case w.events <- struct{}{}:
	default:
	}
}

// Package watch re-runs a callback whenever a watched input file changes.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDelay is how long a burst of events must settle before the
// callback runs.
const DefaultDelay = 100 * time.Millisecond

// FileWatcher calls onChange after writes to a single file. The parent
// directory is watched so that editors which replace the file on save are
// still noticed.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	path      string
	onChange  func(path string) error
	logger    *zap.Logger
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// NewFileWatcher creates a watcher for path. Errors returned by onChange are
// logged and do not stop the watcher.
func NewFileWatcher(path string, delay time.Duration, logger *zap.Logger, onChange func(string) error) (*FileWatcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("watch: nil change callback")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher:   watcher,
		debouncer: NewDebouncer(delay),
		path:      abs,
		onChange:  onChange,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
	fw.debouncer.SetCallback(func() {
		if err := fw.onChange(fw.path); err != nil {
			fw.logger.Warn("change handler failed", zap.String("path", fw.path), zap.Error(err))
		}
	})
	return fw, nil
}

// Path returns the absolute path being watched.
func (fw *FileWatcher) Path() string { return fw.path }

// Start begins watching in the background.
func (fw *FileWatcher) Start() error {
	dir := filepath.Dir(fw.path)
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	fw.logger.Debug("watching", zap.String("path", fw.path))

	fw.wg.Add(1)
	go fw.watch()
	return nil
}

// Stop stops the watcher and waits for the event loop to exit. Stop may be
// called more than once.
func (fw *FileWatcher) Stop() error {
	select {
	case <-fw.stopChan:
		return nil
	default:
		close(fw.stopChan)
	}

	fw.wg.Wait()
	fw.debouncer.Stop()
	return fw.watcher.Close()
}

func (fw *FileWatcher) watch() {
	defer fw.wg.Done()

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				fw.logger.Debug("file changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))
				fw.debouncer.Trigger()
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("watch error", zap.Error(err))

		case <-fw.stopChan:
			return
		}
	}
}

// Debouncer collapses a burst of triggers into one callback that runs once
// the triggers have been quiet for the configured duration.
type Debouncer struct {
	duration time.Duration
	timer    *time.Timer
	pending  bool
	stopped  bool
	mutex    sync.Mutex
	callback func()
}

// NewDebouncer creates a debouncer. A non-positive duration uses
// DefaultDelay.
func NewDebouncer(duration time.Duration) *Debouncer {
	if duration <= 0 {
		duration = DefaultDelay
	}
	return &Debouncer{duration: duration}
}

// Trigger records a change and restarts the quiet period.
func (d *Debouncer) Trigger() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.stopped {
		return
	}
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.duration, d.flush)
}

func (d *Debouncer) flush() {
	d.mutex.Lock()
	if !d.pending || d.stopped {
		d.mutex.Unlock()
		return
	}
	d.pending = false
	callback := d.callback
	d.mutex.Unlock()

	if callback != nil {
		callback()
	}
}

// SetCallback sets the function run after each quiet period.
func (d *Debouncer) SetCallback(callback func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.callback = callback
}

// Stop cancels any pending callback. Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.stopped = true
	d.pending = false
}

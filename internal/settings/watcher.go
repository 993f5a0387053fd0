package settings

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const watchDebounce = 150 * time.Millisecond

// Watcher replays external edits of the settings file through the editor.
// It can be started again after Close.
type Watcher struct {
	file    *File
	editor  *Editor
	session *watchSession
	mu      sync.Mutex
	logger  *zap.Logger
}

type watchSession struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher creates a watcher for file
func NewWatcher(file *File, editor *Editor, logger *zap.Logger) *Watcher {
	return &Watcher{
		file:   file,
		editor: editor,
		logger: logger,
	}
}

// Start begins watching. The settings directory is watched rather than the
// file itself so atomic replaces are observed. Starting a running watcher
// is a no-op.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.session != nil {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	dir := filepath.Dir(w.file.Path())
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	s := &watchSession{watcher: fw, done: make(chan struct{})}
	w.session = s

	s.wg.Add(1)
	go w.loop(s)

	w.logger.Info("Watching settings file", zap.String("file", w.file.Path()))
	return nil
}

// Close stops watching and waits for the event loop to exit
func (w *Watcher) Close() {
	w.mu.Lock()
	s := w.session
	w.session = nil
	w.mu.Unlock()

	if s == nil {
		return
	}
	close(s.done)
	s.watcher.Close()
	s.wg.Wait()
}

func (w *Watcher) loop(s *watchSession) {
	defer s.wg.Done()

	name := filepath.Clean(w.file.Path())
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-s.done:
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() { w.reload(s.done) })

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Settings watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) reload(done <-chan struct{}) {
	select {
	case <-done:
		return
	default:
	}

	data, err := w.file.Load()
	if err != nil {
		w.logger.Warn("Failed to reload settings file", zap.Error(err))
		return
	}

	if changed := w.editor.Sync(data); changed > 0 {
		w.logger.Info("Applied external settings changes", zap.Int("changed", changed))
	}
}

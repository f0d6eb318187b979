// Package watcher hot-reloads the preset definition file.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ritzau/taskboard/pkg/logging"
)

// ChangeType represents the type of file change detected
type ChangeType int

const (
	ChangeTypeWrite  ChangeType = iota // created, written or renamed into place
	ChangeTypeRemove                   // removed or renamed away
)

// batchWindow groups the burst of events an editor produces for one save
const batchWindow = 100 * time.Millisecond

// ChangeEvent represents a batch of file system changes
type ChangeEvent struct {
	Type      ChangeType
	Paths     []string
	Timestamp time.Time
}

// FileWatcher watches a single file. The parent directory is watched so that editors
// which save by replacing the file are still observed.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	events  chan ChangeEvent
}

// NewFileWatcher creates a new file system watcher for path
func NewFileWatcher(path string) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	fw := &FileWatcher{
		watcher: watcher,
		path:    abs,
		events:  make(chan ChangeEvent, 100),
	}

	return fw, nil
}

// Start begins watching for file changes. The events channel is closed when ctx is done.
func (fw *FileWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(fw.path)
	if err := fw.watcher.Add(dir); err != nil {
		fw.watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	logging.Info("started watching file", "path", fw.path)

	// Process events
	go fw.processEvents(ctx)

	return nil
}

// processEvents filters events for the watched file and batches them by type
func (fw *FileWatcher) processEvents(ctx context.Context) {
	var written, removed []string

	flushTimer := time.NewTimer(batchWindow)
	flushTimer.Stop()

	flush := func() {
		if len(removed) > 0 {
			fw.events <- ChangeEvent{Type: ChangeTypeRemove, Paths: removed, Timestamp: time.Now()}
			removed = nil
		}
		if len(written) > 0 {
			fw.events <- ChangeEvent{Type: ChangeTypeWrite, Paths: written, Timestamp: time.Now()}
			written = nil
		}
	}

	defer func() {
		fw.watcher.Close()
		close(fw.events)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}

			switch {
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				removed = append(removed, event.Name)
			case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
				written = append(written, event.Name)
			default:
				continue
			}
			logging.Trace("file event", "path", event.Name, "op", event.Op.String())
			flushTimer.Reset(batchWindow)

		case <-flushTimer.C:
			flush()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("watcher error", "error", err)
		}
	}
}

// Events returns the channel of change events
func (fw *FileWatcher) Events() <-chan ChangeEvent {
	return fw.events
}

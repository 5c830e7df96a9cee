// Package watcher implements a polling (not native-OS-event) recursive
// scan rooted at a base directory. Some platforms, notably Windows,
// fail to emit native filesystem events for a file another process is
// still actively writing, which is exactly the case of a recording in
// progress.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/oszuidwest/zwfm-streamcast/internal/apperrors"
)

// EventType identifies what kind of change was observed on a path.
type EventType int

const (
	Created EventType = iota
	Modified
	Removed
)

func (e EventType) String() string {
	switch e {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is one detected filesystem change. Directories are never
// reported; only files.
type Event struct {
	Type EventType
	Path string
}

type fileState struct {
	modTime time.Time
	size    int64
}

// Watcher recursively polls BaseDir for file create/modify/delete
// events.
type Watcher struct {
	BaseDir      string
	PollInterval time.Duration

	known map[string]fileState
}

// New builds a Watcher rooted at baseDir, polling every pollInterval
// (a zero or negative value falls back to a 1-second default).
func New(baseDir string, pollInterval time.Duration) *Watcher {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &Watcher{
		BaseDir:      baseDir,
		PollInterval: pollInterval,
		known:        make(map[string]fileState),
	}
}

// Run polls until ctx is canceled, sending detected events to out. Run
// blocks; call it from its own goroutine and cancel ctx to stop it,
// then wait for Run to return (it closes out before returning).
func (w *Watcher) Run(ctx context.Context, out chan<- Event) {
	defer close(out)

	// Seed known state from the current tree without emitting events
	// for pre-existing files: only changes observed after the watcher
	// starts are reported.
	w.scan(ctx, nil)

	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.scan(ctx, func(e Event) {
				select {
				case out <- e:
				case <-ctx.Done():
				}
			})
		}
	}
}

// scan walks BaseDir, diffing against known state. emit is called for
// each detected change; pass nil to seed known without emitting. Walk
// errors are logged and the entry skipped; the next poll retries.
func (w *Watcher) scan(ctx context.Context, emit func(Event)) {
	seen := make(map[string]fileState)

	_ = filepath.WalkDir(w.BaseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			apperrors.LogErrorContinue(ctx, "poll directory tree", &apperrors.FilesystemEventError{Path: path, Err: err})
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		state := fileState{modTime: info.ModTime(), size: info.Size()}
		seen[path] = state

		prev, known := w.known[path]
		if emit != nil {
			switch {
			case !known:
				emit(Event{Type: Created, Path: path})
			case prev != state:
				emit(Event{Type: Modified, Path: path})
			}
		}
		return nil
	})

	if emit != nil {
		for path := range w.known {
			if _, stillExists := seen[path]; !stillExists {
				if _, err := os.Stat(path); os.IsNotExist(err) {
					emit(Event{Type: Removed, Path: path})
				}
			}
		}
	}

	w.known = seen
}

// Package debounce coalesces a burst of per-path filesystem events into
// a single "podcast updated" callback once the path has been idle for
// a quiet period.
package debounce

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/oszuidwest/zwfm-streamcast/internal/clock"
	"github.com/oszuidwest/zwfm-streamcast/internal/constants"
	"github.com/oszuidwest/zwfm-streamcast/internal/watcher"
)

// Event is delivered to a Debouncer's callback once a path has been
// quiet for DebounceTime.
type Event struct {
	EpisodePath string
}

// Callback is invoked at most once per debounce cycle for a given
// path. It may be called concurrently for distinct paths and must be
// safe under that concurrency.
type Callback func(Event)

// Debouncer coalesces watcher.Events per path, waiting DebounceTime
// after the last observed event for a path before firing Callback.
type Debouncer struct {
	clock        clock.Clock
	DebounceTime time.Duration
	OnUpdated    Callback

	mu      sync.Mutex
	pending map[string]time.Time
}

// New builds a Debouncer reading the current time from c (a zero or
// negative debounceTime falls back to the default 5-minute quiet
// period) invoking onUpdated once per path per cycle.
func New(c clock.Clock, debounceTime time.Duration, onUpdated Callback) *Debouncer {
	if debounceTime <= 0 {
		debounceTime = constants.DefaultDebounceTime
	}
	return &Debouncer{
		clock:        c,
		DebounceTime: debounceTime,
		OnUpdated:    onUpdated,
		pending:      make(map[string]time.Time),
	}
}

// Handle processes one watcher event, ignoring directory events (the
// watcher never emits those) and any file named feed.rss so that
// writing the regenerated feed doesn't re-trigger itself forever.
func (d *Debouncer) Handle(ev watcher.Event) {
	if filepath.Base(ev.Path) == constants.FeedFileName {
		return
	}
	d.observe(ev.Path, d.clock.Now())
}

func (d *Debouncer) observe(path string, t time.Time) {
	d.mu.Lock()
	_, alreadyPending := d.pending[path]
	d.pending[path] = t
	d.mu.Unlock()

	if !alreadyPending {
		time.AfterFunc(d.DebounceTime, func() {
			d.check(path)
		})
	}
}

// check runs the delayed check for path: if the last observed event is
// at least DebounceTime old, fire the callback and forget the path;
// otherwise reschedule against the newer last event.
func (d *Debouncer) check(path string) {
	d.mu.Lock()
	last, ok := d.pending[path]
	if !ok {
		d.mu.Unlock()
		return
	}
	now := d.clock.Now()
	if now.Sub(last) >= d.DebounceTime {
		delete(d.pending, path)
		d.mu.Unlock()
		d.OnUpdated(Event{EpisodePath: path})
		return
	}
	d.mu.Unlock()

	wait := last.Add(d.DebounceTime).Sub(now)
	time.AfterFunc(wait, func() {
		d.check(path)
	})
}

package recorder

import (
	"context"
	"fmt"
	"time"

	"github.com/oszuidwest/zwfm-streamcast/internal/audiosink"
	"github.com/oszuidwest/zwfm-streamcast/internal/clock"
	"github.com/oszuidwest/zwfm-streamcast/internal/schedule"
	"github.com/oszuidwest/zwfm-streamcast/internal/stream"
)

// Outcome is the result of running one task firing.
type Outcome struct {
	TaskID       string
	BytesWritten int64
	Duration     time.Duration
	Err          error
}

// RunTask executes one job body firing for sched: resolves a fresh
// task from the current clock reading, sleeps until its window
// starts, then streams and stores it until the window's remaining
// duration expires. A failure is returned, never panics; the caller
// (the Scheduler) is responsible for logging it and moving on.
func RunTask(ctx context.Context, c clock.Clock, sched *schedule.Schedule, sourceURL schedule.ValidURL, fetcherFor func(sourceURL string) stream.Fetcher, sink *audiosink.Sink) Outcome {
	started := c.Now()
	task := sched.CurrentOrNextTask(sourceURL, started)

	untilStart := task.Window.TimeUntilStart(started)
	if untilStart > 0 {
		if err := sleepCtx(ctx, untilStart); err != nil {
			return Outcome{TaskID: task.ID.String(), Duration: c.Now().Sub(started), Err: err}
		}
	}

	now := c.Now()
	remaining := task.Window.TimeRemaining(now)
	if remaining <= 0 {
		err := fmt.Errorf("recorder: task %s start later than now (window %s-%s, now %s)",
			task.ID, task.Window.Start, task.Window.End, now)
		return Outcome{TaskID: task.ID.String(), Duration: now.Sub(started), Err: err}
	}

	timer := NewCountdownTimer(c, remaining)
	fetcher := fetcherFor(string(task.SourceURL))
	chunks := fetcher.Fetch(ctx, string(task.SourceURL), timer)

	written, err := sink.Store(chunks, task.FilePath, sched.Metadata)
	return Outcome{TaskID: task.ID.String(), BytesWritten: written, Duration: c.Now().Sub(started), Err: err}
}

// sleepCtx sleeps for d or returns ctx.Err() if ctx is canceled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

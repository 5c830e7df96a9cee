// Package recorder implements the recording task and scheduler: a
// CountdownTimer-bounded job body, and a registry of RecordingSchedules
// arming cron-driven firings via flc1125/go-cron/v4 and its recovery
// middleware for panic-safe job execution.
package recorder

import (
	"context"
	"sync"
	"time"

	"github.com/flc1125/go-cron/middleware/recovery/v4"
	cron "github.com/flc1125/go-cron/v4"

	"github.com/oszuidwest/zwfm-streamcast/internal/audiosink"
	"github.com/oszuidwest/zwfm-streamcast/internal/clock"
	"github.com/oszuidwest/zwfm-streamcast/internal/constants"
	"github.com/oszuidwest/zwfm-streamcast/internal/logger"
	"github.com/oszuidwest/zwfm-streamcast/internal/schedule"
	"github.com/oszuidwest/zwfm-streamcast/internal/stream"
)

// FetcherFactory builds the appropriate Fetcher for a source URL,
// chosen by URL shape (internal/stream.ForURL).
type FetcherFactory func(sourceURL string) stream.Fetcher

// Scheduler owns a registry of schedules and arms cron-driven job
// firings for each, skipping a firing if the previous one for the
// same schedule is still running.
type Scheduler struct {
	clock      clock.Clock
	log        *logger.Logger
	fetcherFor FetcherFactory
	sink       *audiosink.Sink
	cron       *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	running map[string]bool // schedule ID -> firing in progress
}

// New builds a Scheduler. fetcherFor selects ICY vs HLS fetchers per
// task by source URL shape.
func New(c clock.Clock, log *logger.Logger, fetcherFor FetcherFactory) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	cr := cron.New(
		cron.WithContext(ctx),
		cron.WithMiddleware(recovery.New()),
	)
	return &Scheduler{
		clock:      c,
		log:        log,
		fetcherFor: fetcherFor,
		sink:       audiosink.New(),
		cron:       cr,
		ctx:        ctx,
		cancel:     cancel,
		running:    make(map[string]bool),
	}
}

// Add registers sched: if its current-or-next window is already
// active, the first firing is a one-shot override StartupGrace from
// now; the recurring trigger is always armed from the schedule's own
// cron expression.
func (s *Scheduler) Add(sched *schedule.Schedule, sourceURL schedule.ValidURL) error {
	now := s.clock.Now()
	window := sched.ResolveWindow(now)

	if window.IsActive(now) {
		time.AfterFunc(constants.StartupGrace, func() {
			s.fire(sched, sourceURL)
		})
	}

	id := sched.ID.String()
	if _, err := s.cron.AddFunc(sched.CronExpression, func(ctx context.Context) error {
		s.fire(sched, sourceURL)
		return nil
	}); err != nil {
		return err
	}
	s.log.Info("armed recording schedule", "schedule", sched.Title, "id", id, "cron", sched.CronExpression)
	return nil
}

// fire runs one job body firing for sched, skipping it entirely if the
// previous firing for the same schedule ID is still in progress.
func (s *Scheduler) fire(sched *schedule.Schedule, sourceURL schedule.ValidURL) {
	id := sched.ID.String()

	s.mu.Lock()
	if s.running[id] {
		s.mu.Unlock()
		s.log.Warn("skipping overlapping firing", "schedule", sched.Title, "id", id)
		return
	}
	s.running[id] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.running, id)
		s.mu.Unlock()
	}()

	outcome := RunTask(s.ctx, s.clock, sched, sourceURL, s.fetcherFor, s.sink)
	s.log.RecordingOutcome(sched.Title, outcome.TaskID, outcome.BytesWritten, outcome.Duration, outcome.Err)
}

// Run starts the scheduler. It is non-blocking; the caller is
// responsible for keeping the process alive (e.g. by waiting on a
// signal channel) and calling Stop on shutdown.
func (s *Scheduler) Run() {
	s.cron.Start()
}

// Stop halts the scheduler: no new firings are armed, and running jobs
// are left to exit at their next suspension point (they observe
// ctx.Done() cooperatively, never forcibly killed).
func (s *Scheduler) Stop() {
	s.cancel()
	s.cron.Stop()
}

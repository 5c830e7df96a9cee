package recorder

import (
	"fmt"
	"sync"
	"time"

	"github.com/oszuidwest/zwfm-streamcast/internal/clock"
)

// CountdownTimer tracks how much of a target duration remains, reading
// the current instant from an injected Clock so tests never depend on
// real wall time.
type CountdownTimer struct {
	clock    clock.Clock
	duration time.Duration

	mu      sync.Mutex
	started bool
	startAt time.Time
}

// NewCountdownTimer constructs a CountdownTimer for duration, reading
// instants from c.
func NewCountdownTimer(c clock.Clock, duration time.Duration) *CountdownTimer {
	return &CountdownTimer{clock: c, duration: duration}
}

// Start records the current instant as the countdown's origin. Calling
// Start twice is a programming error.
func (c *CountdownTimer) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		panic(fmt.Sprintf("recorder: CountdownTimer started twice (duration=%s)", c.duration))
	}
	c.started = true
	c.startAt = c.clock.Now()
}

// Remaining returns max(0, duration - elapsed).
func (c *CountdownTimer) Remaining() time.Duration {
	c.mu.Lock()
	started, startAt := c.started, c.startAt
	c.mu.Unlock()
	if !started {
		return c.duration
	}
	elapsed := c.clock.Now().Sub(startAt)
	remaining := c.duration - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Expired reports whether Remaining() has reached zero.
func (c *CountdownTimer) Expired() bool {
	return c.Remaining() <= 0
}

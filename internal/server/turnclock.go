package server

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

// TurnClock arms a single pending deadline at a time. Every Arm or Stop
// bumps a generation counter, so a timer that fires after the action it was
// guarding has resolved identifies itself as stale and does nothing.
//
// The quartz clock is mockable; tests drive expiry explicitly instead of
// sleeping.
type TurnClock struct {
	clock   quartz.Clock
	timeout time.Duration

	mu    sync.Mutex
	gen   int
	timer *quartz.Timer
}

// NewTurnClock creates a clock that fires timeout after each Arm.
func NewTurnClock(clock quartz.Clock, timeout time.Duration) *TurnClock {
	return &TurnClock{clock: clock, timeout: timeout}
}

// Arm schedules fire to run after the timeout, replacing any pending
// deadline. The generation passed to fire must be checked with Valid before
// acting on it.
func (tc *TurnClock) Arm(fire func(gen int)) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.gen++
	gen := tc.gen
	if tc.timer != nil {
		tc.timer.Stop()
	}
	tc.timer = tc.clock.AfterFunc(tc.timeout, func() { fire(gen) })
}

// Stop cancels the pending deadline and invalidates its generation.
func (tc *TurnClock) Stop() {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.gen++
	if tc.timer != nil {
		tc.timer.Stop()
		tc.timer = nil
	}
}

// Valid reports whether gen is still the live generation.
func (tc *TurnClock) Valid(gen int) bool {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return gen == tc.gen
}

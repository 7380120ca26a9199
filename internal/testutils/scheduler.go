// Package testutils provides shared helpers for package tests.
package testutils

import (
	"sync"
	"time"

	"github.com/formaniuktaras/Price20/pkg/ports"
)

// ManualScheduler implements ports.Scheduler with explicitly fired timers,
// so debounce behavior can be tested without real sleeps.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []*ManualTimer
}

// NewManualScheduler creates an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc registers fn without running it. Use Fire or FireAll to trigger.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) ports.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer := &ManualTimer{fn: fn, delay: d}
	s.pending = append(s.pending, timer)
	return timer
}

// Pending returns the number of timers that are registered and not yet
// fired or stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.pending {
		if t.active() {
			n++
		}
	}
	return n
}

// LastDelay reports the delay of the most recently scheduled timer, or zero
// when nothing was scheduled.
func (s *ManualScheduler) LastDelay() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		return 0
	}
	return s.pending[len(s.pending)-1].delay
}

// FireAll runs every active timer (simulating the quiescence window
// elapsing) and clears the pending list.
func (s *ManualScheduler) FireAll() {
	s.mu.Lock()
	timers := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, t := range timers {
		t.fire()
	}
}

// ManualTimer is a timer controlled by its ManualScheduler.
type ManualTimer struct {
	mu    sync.Mutex
	fn    func()
	delay time.Duration
	done  bool
}

// Stop cancels the timer, reporting whether it was still pending.
func (t *ManualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	return true
}

// Delay reports the duration the timer was scheduled with.
func (t *ManualTimer) Delay() time.Duration {
	return t.delay
}

func (t *ManualTimer) active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.done
}

func (t *ManualTimer) fire() {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return
	}
	t.done = true
	fn := t.fn
	t.mu.Unlock()

	fn()
}

package ports

import "time"

// Timer is a pending single-shot callback created by a Scheduler.
type Timer interface {
	// Stop cancels the callback. It reports whether the timer was still
	// pending; false means the callback already ran or was stopped.
	Stop() bool
}

// Scheduler creates single-shot timers for debounced effects (history
// capture, autosave pulses). Abstracting the timer source keeps the
// debounce logic deterministic under test.
type Scheduler interface {
	// AfterFunc runs fn after d elapses, on an unspecified goroutine.
	AfterFunc(d time.Duration, fn func()) Timer
}

// SystemScheduler is the production Scheduler backed by time.AfterFunc.
type SystemScheduler struct{}

func (SystemScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return systemTimer{t: time.AfterFunc(d, fn)}
}

type systemTimer struct {
	t *time.Timer
}

func (s systemTimer) Stop() bool {
	return s.t.Stop()
}

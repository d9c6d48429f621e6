package engine

import "time"

// Timer accumulates running time across pauses.
type Timer struct {
	now         func() time.Time
	accumulated time.Duration
	running     bool
	anchor      time.Time
}

// NewTimer returns a stopped timer reading from now, or time.Now when nil.
func NewTimer(now func() time.Time) *Timer {
	if now == nil {
		now = time.Now
	}
	return &Timer{now: now}
}

// Start begins counting. It does nothing if the timer is already running.
func (t *Timer) Start() {
	if t.running {
		return
	}
	t.running = true
	t.anchor = t.now()
}

// Pause stops counting and keeps the time so far.
func (t *Timer) Pause() {
	if !t.running {
		return
	}
	t.accumulated += t.now().Sub(t.anchor)
	t.running = false
}

// Running reports whether the timer is counting.
func (t *Timer) Running() bool {
	return t.running
}

// Elapsed returns the accumulated running time.
func (t *Timer) Elapsed() time.Duration {
	if !t.running {
		return t.accumulated
	}
	return t.accumulated + t.now().Sub(t.anchor)
}

package pool

// Timer is a pending auto-return. It fires from Registry.Update once its
// delay has elapsed unless cancelled first.
type Timer struct {
	res       Resource
	remaining float64
	stopped   bool
	fired     bool
}

// Cancel stops the timer. Cancelling a fired or already cancelled timer is a
// no-op.
func (t *Timer) Cancel() {
	if t == nil {
		return
	}
	t.stopped = true
}

// Stopped reports whether the timer fired or was cancelled.
func (t *Timer) Stopped() bool { return t == nil || t.stopped }

// Fired reports whether the timer ran to completion.
func (t *Timer) Fired() bool { return t != nil && t.fired }

// Remaining is the delay left in seconds.
func (t *Timer) Remaining() float64 {
	if t == nil {
		return 0
	}
	return t.remaining
}

// advance counts down and reports whether the timer is due this tick.
func (t *Timer) advance(dt float64) bool {
	if t.stopped {
		return false
	}
	t.remaining -= dt
	if t.remaining > 0 {
		return false
	}
	t.stopped = true
	t.fired = true
	return true
}

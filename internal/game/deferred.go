package game

import "time"

// Deferred is a one-shot timer polled from the tick loop.
// Nothing runs in the background, so cancelling is just clearing it.
type Deferred struct {
	at     time.Time
	armed  bool
	fired  bool
	cancel bool
}

// Schedule arms the timer to fire at the given instant.
// It does nothing once the timer has fired or was cancelled.
func (d *Deferred) Schedule(at time.Time) {
	if d.fired || d.cancel {
		return
	}
	d.at = at
	d.armed = true
}

// Poll reports true exactly once, on the first call at or after the due time.
func (d *Deferred) Poll(now time.Time) bool {
	if !d.armed || d.fired || d.cancel {
		return false
	}
	if now.Before(d.at) {
		return false
	}
	d.fired = true
	d.armed = false
	return true
}

// Cancel disarms the timer permanently.
func (d *Deferred) Cancel() {
	d.cancel = true
	d.armed = false
}

// Pending reports whether the timer is armed and has not fired.
func (d *Deferred) Pending() bool {
	return d.armed
}

// Fired reports whether the timer has fired.
func (d *Deferred) Fired() bool {
	return d.fired
}

package game

import "time"

// Timekeeper turns wall-clock frame timestamps into a time scale where 1.0
// means one nominal frame elapsed.
type Timekeeper struct {
	nominal  time.Duration
	maxDelta time.Duration
	prev     time.Time
	seeded   bool
}

// NewTimekeeper creates a timekeeper for the given nominal frame and delta cap.
func NewTimekeeper(nominal, maxDelta time.Duration) *Timekeeper {
	if nominal <= 0 {
		nominal = time.Second / 60
	}
	return &Timekeeper{nominal: nominal, maxDelta: maxDelta}
}

// Seed makes now the previous timestamp, so the next Scale only measures
// time passed from here.
func (t *Timekeeper) Seed(now time.Time) {
	t.prev = now
	t.seeded = true
}

// Reset forgets the previous timestamp.
func (t *Timekeeper) Reset() {
	t.prev = time.Time{}
	t.seeded = false
}

// Scale returns the clamped time scale since the previous call.
// The first call after Reset only seeds and returns 0.
func (t *Timekeeper) Scale(now time.Time) float64 {
	if !t.seeded {
		t.Seed(now)
		return 0
	}

	dt := now.Sub(t.prev)
	t.prev = now

	if dt < 0 {
		dt = 0
	}
	if t.maxDelta > 0 && dt > t.maxDelta {
		dt = t.maxDelta
	}
	return float64(dt) / float64(t.nominal)
}

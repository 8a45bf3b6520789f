package game

import (
	"math"
	"testing"
	"time"
)

func TestTimekeeperScale(t *testing.T) {
	nominal := time.Second / 60
	base := time.Unix(1700000000, 0)

	tests := []struct {
		name     string
		delta    time.Duration
		expected float64
	}{
		{"one frame", nominal, 1},
		{"half frame", nominal / 2, 0.5},
		{"120Hz", time.Second / 120, float64(time.Second/120) / float64(nominal)},
		{"stall clamps to max delta", 5 * time.Second, float64(50*time.Millisecond) / float64(nominal)},
		{"negative clamps to zero", -time.Second, 0},
		{"zero", 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tk := NewTimekeeper(nominal, 50*time.Millisecond)
			if got := tk.Scale(base); got != 0 {
				t.Fatalf("first Scale() = %v, expected 0", got)
			}
			got := tk.Scale(base.Add(tc.delta))
			if math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Scale() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestTimekeeperSeed(t *testing.T) {
	nominal := time.Second / 60
	base := time.Unix(1700000000, 0)
	tk := NewTimekeeper(nominal, 50*time.Millisecond)

	tk.Scale(base)
	tk.Seed(base.Add(time.Hour))

	got := tk.Scale(base.Add(time.Hour + nominal))
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("Scale() after Seed = %v, expected 1", got)
	}
}

func TestTimekeeperReset(t *testing.T) {
	base := time.Unix(1700000000, 0)
	tk := NewTimekeeper(time.Second/60, 50*time.Millisecond)

	tk.Scale(base)
	tk.Reset()

	if got := tk.Scale(base.Add(10 * time.Millisecond)); got != 0 {
		t.Errorf("Scale() after Reset = %v, expected 0", got)
	}
}

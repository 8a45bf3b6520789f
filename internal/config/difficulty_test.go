package config

import (
	"math"
	"testing"
)

func TestDifficultySpeed(t *testing.T) {
	d := NewDifficulty(Default().Difficulty)

	tests := []struct {
		score    int
		expected float64
	}{
		{0, 3.0},
		{10, 3.7},
		{50, 6.5},
		{57, 6.99},
		{58, 7.0}, // capped
		{1000, 7.0},
	}

	for _, tc := range tests {
		if got := d.Speed(tc.score); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Speed(%d) = %v, expected %v", tc.score, got, tc.expected)
		}
	}
}

func TestDifficultySpawnDistance(t *testing.T) {
	d := NewDifficulty(Default().Difficulty)

	tests := []struct {
		score    int
		expected float64
	}{
		{0, 270},
		{10, 300},
		{40, 390},
		{41, 390}, // capped
		{100000, 390},
	}

	for _, tc := range tests {
		if got := d.SpawnDistance(tc.score); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("SpawnDistance(%d) = %v, expected %v", tc.score, got, tc.expected)
		}
	}
}

func TestDifficultyBoundedForLargeScores(t *testing.T) {
	cfg := Default().Difficulty
	d := NewDifficulty(cfg)

	for _, score := range []int{0, 1, 99, 12345, math.MaxInt32} {
		if s := d.Speed(score); s > cfg.SpeedCap {
			t.Errorf("Speed(%d) = %v exceeds cap %v", score, s, cfg.SpeedCap)
		}
		if s := d.SpawnDistance(score); s > d.MaxSpawnDistance() {
			t.Errorf("SpawnDistance(%d) = %v exceeds %v", score, s, d.MaxSpawnDistance())
		}
	}
}

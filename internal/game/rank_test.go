package game

import (
	"math"
	"reflect"
	"testing"
)

func TestTierFor(t *testing.T) {
	th := Thresholds{Best: 30, Second: 15, Third: 5}

	tests := []struct {
		score    int
		expected Tier
	}{
		{0, TierBase},
		{5, TierBase},
		{6, TierA},
		{15, TierA},
		{16, TierB},
		{30, TierB},
		{31, TierC},
		{500, TierC},
	}

	for _, tc := range tests {
		if got := TierFor(tc.score, th); got != tc.expected {
			t.Errorf("TierFor(%d) = %s, expected %s", tc.score, got, tc.expected)
		}
	}
}

func TestTierForMalformedThresholds(t *testing.T) {
	tests := []struct {
		name     string
		th       Thresholds
		score    int
		expected Tier
	}{
		{"all NaN", Thresholds{math.NaN(), math.NaN(), math.NaN()}, 100, TierBase},
		{"all +Inf", Thresholds{math.Inf(1), math.Inf(1), math.Inf(1)}, 100, TierBase},
		{"all -Inf", Thresholds{math.Inf(-1), math.Inf(-1), math.Inf(-1)}, 100, TierBase},
		{"negative", Thresholds{-1, -2, -3}, 100, TierBase},
		{"best broken", Thresholds{math.NaN(), 15, 5}, 100, TierB},
		{"third broken", Thresholds{30, 15, -1}, 10, TierBase},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TierFor(tc.score, tc.th); got != tc.expected {
				t.Errorf("TierFor(%d) = %s, expected %s", tc.score, got, tc.expected)
			}
		})
	}
}

func TestTierForMonotonic(t *testing.T) {
	th := Thresholds{Best: 40, Second: 12, Third: 3}
	prev := TierBase
	for score := 0; score < 100; score++ {
		got := TierFor(score, th)
		if got < prev {
			t.Fatalf("tier dropped from %s to %s at score %d", prev, got, score)
		}
		prev = got
	}
}

func TestRankAnnouncesEachTierOnce(t *testing.T) {
	r := NewRank(Thresholds{Best: 30, Second: 15, Third: 5})

	var reached []Tier
	at := make(map[Tier]int)
	for score := 0; score <= 40; score++ {
		for _, tier := range r.Update(score) {
			reached = append(reached, tier)
			at[tier] = score
		}
		// Updating again with the same score is idempotent
		if again := r.Update(score); len(again) != 0 {
			t.Fatalf("repeated Update(%d) announced %v", score, again)
		}
	}

	expected := []Tier{TierA, TierB, TierC}
	if !reflect.DeepEqual(reached, expected) {
		t.Fatalf("announced %v, expected %v", reached, expected)
	}
	if at[TierA] != 6 || at[TierB] != 16 || at[TierC] != 31 {
		t.Errorf("tiers reached at %v, expected A@6 B@16 C@31", at)
	}
}

func TestRankJumpAnnouncesSkippedTiers(t *testing.T) {
	r := NewRank(Thresholds{Best: 2, Second: 1, Third: 0})

	got := r.Update(3)
	expected := []Tier{TierA, TierB, TierC}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Update(3) = %v, expected %v", got, expected)
	}
	if r.Current() != TierC {
		t.Errorf("Current() = %s, expected %s", r.Current(), TierC)
	}
}

func TestThresholdsFromScores(t *testing.T) {
	tests := []struct {
		scores   []int
		expected Thresholds
	}{
		{nil, Thresholds{0, 0, 0}},
		{[]int{12}, Thresholds{12, 0, 0}},
		{[]int{40, 22, 9}, Thresholds{40, 22, 9}},
		{[]int{40, 22, 9, 3}, Thresholds{40, 22, 9}},
	}

	for _, tc := range tests {
		if got := ThresholdsFromScores(tc.scores); got != tc.expected {
			t.Errorf("ThresholdsFromScores(%v) = %+v, expected %+v", tc.scores, got, tc.expected)
		}
	}
}

func TestTierString(t *testing.T) {
	tests := []struct {
		tier     Tier
		expected string
	}{
		{TierBase, "Rookie"},
		{TierA, "Bronze"},
		{TierB, "Silver"},
		{TierC, "Gold"},
		{Tier(9), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.tier.String(); got != tc.expected {
			t.Errorf("Tier(%d).String() = %q, expected %q", tc.tier, got, tc.expected)
		}
	}
}

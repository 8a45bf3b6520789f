package game

import "math"

// Tier is a cosmetic rank earned by beating leaderboard scores during a run.
type Tier int

const (
	TierBase Tier = iota
	TierA
	TierB
	TierC
)

// String returns the skin name for the tier.
func (t Tier) String() string {
	switch t {
	case TierBase:
		return "Rookie"
	case TierA:
		return "Bronze"
	case TierB:
		return "Silver"
	case TierC:
		return "Gold"
	default:
		return "Unknown"
	}
}

// Thresholds are the three reference scores for tiers, hardest first.
// They are fixed for the whole session.
type Thresholds struct {
	Best   float64 // Beat for TierC
	Second float64 // Beat for TierB
	Third  float64 // Beat for TierA
}

// ThresholdsFromScores builds thresholds from leaderboard scores sorted
// descending. Missing entries count as zero.
func ThresholdsFromScores(scores []int) Thresholds {
	var ref [3]float64
	for i := 0; i < len(ref) && i < len(scores); i++ {
		ref[i] = float64(scores[i])
	}
	return Thresholds{Best: ref[0], Second: ref[1], Third: ref[2]}
}

// TierFor maps a score to its tier. Malformed thresholds never match.
func TierFor(score int, th Thresholds) Tier {
	s := float64(score)
	switch {
	case beats(s, th.Best):
		return TierC
	case beats(s, th.Second):
		return TierB
	case beats(s, th.Third):
		return TierA
	default:
		return TierBase
	}
}

func beats(score, ref float64) bool {
	if math.IsNaN(ref) || math.IsInf(ref, 0) || ref < 0 {
		return false
	}
	return score > ref
}

// Rank tracks the current tier and announces each tier at most once.
type Rank struct {
	th        Thresholds
	current   Tier
	announced [TierC + 1]bool
}

// NewRank creates a rank tracker at TierBase.
func NewRank(th Thresholds) *Rank {
	return &Rank{th: th}
}

// Current returns the current tier.
func (r *Rank) Current() Tier {
	return r.current
}

// Thresholds returns the reference scores in use.
func (r *Rank) Thresholds() Thresholds {
	return r.th
}

// Update recomputes the tier for score and returns the tiers newly reached,
// in ascending order. Tiers skipped in one jump are all reported.
func (r *Rank) Update(score int) []Tier {
	next := TierFor(score, r.th)
	if next <= r.current {
		return nil
	}

	var reached []Tier
	for t := r.current + 1; t <= next; t++ {
		if !r.announced[t] {
			r.announced[t] = true
			reached = append(reached, t)
		}
	}
	r.current = next
	return reached
}

package config

import "math"

// Difficulty derives obstacle speed and spacing from the current score.
// Both values are capped so that long runs stay playable.
type Difficulty struct {
	cfg DifficultyConfig
}

// NewDifficulty creates a difficulty controller.
func NewDifficulty(cfg DifficultyConfig) *Difficulty {
	return &Difficulty{cfg: cfg}
}

// Speed returns how far gates move per nominal tick at the given score.
func (d *Difficulty) Speed(score int) float64 {
	return math.Min(d.cfg.BaseSpeed+float64(score)*d.cfg.SpeedGain, d.cfg.SpeedCap)
}

// SpawnDistance returns the distance travelled between two gate spawns.
func (d *Difficulty) SpawnDistance(score int) float64 {
	return d.cfg.BaseSpawnDistance + math.Min(float64(score)*d.cfg.SpacingGain, d.cfg.SpacingCap)
}

// MaxSpawnDistance is the upper bound SpawnDistance can ever reach.
func (d *Difficulty) MaxSpawnDistance() float64 {
	return d.cfg.BaseSpawnDistance + d.cfg.SpacingCap
}

// Package config provides YAML-based game configuration loading and the
// score-driven difficulty controller for flapgate.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Config contains every tunable of the game.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Timing     TimingConfig     `yaml:"timing"`
	Milestones MilestoneConfig  `yaml:"milestones"`
	Rewards    []RewardTier     `yaml:"rewards"`
}

// WorldConfig defines the logical playfield, in world units.
// The renderer scales it to whatever terminal it is drawn on.
type WorldConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	BirdXRatio     float64 `yaml:"bird_x_ratio"` // Fixed bird x as a fraction of Width
	BirdHalfWidth  float64 `yaml:"bird_half_width"`
	BirdHalfHeight float64 `yaml:"bird_half_height"`
}

// PhysicsConfig defines per-nominal-tick physics constants.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	JumpImpulse    float64 `yaml:"jump_impulse"` // Negative = up
	TiltGain       float64 `yaml:"tilt_gain"`
	MaxTilt        float64 `yaml:"max_tilt"` // Radians
	HoverAmplitude float64 `yaml:"hover_amplitude"`
	HoverPeriodMs  float64 `yaml:"hover_period_ms"`
}

// ObstacleConfig defines gate geometry.
type ObstacleConfig struct {
	Width       float64 `yaml:"width"`
	GapSize     float64 `yaml:"gap_size"`
	MinMargin   float64 `yaml:"min_margin"`   // Minimum distance of the gap from top and bottom
	EvictMargin float64 `yaml:"evict_margin"` // How far behind the left edge a gate must be before removal
}

// DifficultyConfig defines how speed and spacing grow with score.
type DifficultyConfig struct {
	BaseSpeed         float64 `yaml:"base_speed"`
	SpeedGain         float64 `yaml:"speed_gain"` // Added per point
	SpeedCap          float64 `yaml:"speed_cap"`
	BaseSpawnDistance float64 `yaml:"base_spawn_distance"`
	SpacingGain       float64 `yaml:"spacing_gain"` // Added per point
	SpacingCap        float64 `yaml:"spacing_cap"`
}

// TimingConfig defines wall-clock timing.
type TimingConfig struct {
	NominalFPS   int           `yaml:"nominal_fps"` // Reference rate at which timeScale == 1
	MaxDelta     time.Duration `yaml:"max_delta"`
	FlapCooldown time.Duration `yaml:"flap_cooldown"`
	GraceDelay   time.Duration `yaml:"grace_delay"`
}

// Milestone labels a count.
type Milestone struct {
	At    int    `yaml:"at"`
	Label string `yaml:"label"`
}

// MilestoneConfig holds the two independent milestone sources: gates tagged by
// spawn count, and events fired when the score reaches a value.
type MilestoneConfig struct {
	Obstacles []Milestone `yaml:"obstacles"`
	Scores    []Milestone `yaml:"scores"`
}

// RewardTier maps a final score range to a coupon pool.
type RewardTier struct {
	Label    string   `yaml:"label"`
	MinScore int      `yaml:"min_score"`
	MaxScore int      `yaml:"max_score"` // 0 = unbounded
	Codes    []string `yaml:"codes"`
}

// Contains reports whether score falls inside the tier.
func (r RewardTier) Contains(score int) bool {
	if score < r.MinScore {
		return false
	}
	return r.MaxScore == 0 || score <= r.MaxScore
}

// NominalFrame returns the duration of one reference frame.
func (t TimingConfig) NominalFrame() time.Duration {
	if t.NominalFPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(t.NominalFPS)
}

// Validate checks the configuration and reports every problem found.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !isFinite(v) || v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be a positive number, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if !isFinite(v) || v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}

	positive("world.width", c.World.Width)
	positive("world.height", c.World.Height)
	positive("world.bird_half_width", c.World.BirdHalfWidth)
	positive("world.bird_half_height", c.World.BirdHalfHeight)
	if !isFinite(c.World.BirdXRatio) || c.World.BirdXRatio <= 0 || c.World.BirdXRatio >= 1 {
		errs = append(errs, fmt.Errorf("world.bird_x_ratio must be in (0, 1), got %v", c.World.BirdXRatio))
	}

	nonNegative("physics.gravity", c.Physics.Gravity)
	if !isFinite(c.Physics.JumpImpulse) || c.Physics.JumpImpulse >= 0 {
		errs = append(errs, fmt.Errorf("physics.jump_impulse must be negative (up), got %v", c.Physics.JumpImpulse))
	}
	nonNegative("physics.tilt_gain", c.Physics.TiltGain)
	nonNegative("physics.max_tilt", c.Physics.MaxTilt)
	nonNegative("physics.hover_amplitude", c.Physics.HoverAmplitude)
	positive("physics.hover_period_ms", c.Physics.HoverPeriodMs)

	positive("obstacles.width", c.Obstacles.Width)
	positive("obstacles.gap_size", c.Obstacles.GapSize)
	nonNegative("obstacles.min_margin", c.Obstacles.MinMargin)
	nonNegative("obstacles.evict_margin", c.Obstacles.EvictMargin)

	positive("difficulty.base_speed", c.Difficulty.BaseSpeed)
	nonNegative("difficulty.speed_gain", c.Difficulty.SpeedGain)
	positive("difficulty.speed_cap", c.Difficulty.SpeedCap)
	positive("difficulty.base_spawn_distance", c.Difficulty.BaseSpawnDistance)
	nonNegative("difficulty.spacing_gain", c.Difficulty.SpacingGain)
	nonNegative("difficulty.spacing_cap", c.Difficulty.SpacingCap)

	if c.Timing.NominalFPS <= 0 {
		errs = append(errs, fmt.Errorf("timing.nominal_fps must be positive, got %d", c.Timing.NominalFPS))
	}
	if c.Timing.MaxDelta <= 0 {
		errs = append(errs, fmt.Errorf("timing.max_delta must be positive, got %s", c.Timing.MaxDelta))
	}
	if c.Timing.FlapCooldown < 0 {
		errs = append(errs, fmt.Errorf("timing.flap_cooldown must not be negative, got %s", c.Timing.FlapCooldown))
	}
	if c.Timing.GraceDelay < 0 {
		errs = append(errs, fmt.Errorf("timing.grace_delay must not be negative, got %s", c.Timing.GraceDelay))
	}

	for i, r := range c.Rewards {
		if r.Label == "" {
			errs = append(errs, fmt.Errorf("rewards[%d].label must not be empty", i))
		}
		if r.MaxScore != 0 && r.MaxScore < r.MinScore {
			errs = append(errs, fmt.Errorf("rewards[%d] (%s): max_score %d below min_score %d", i, r.Label, r.MaxScore, r.MinScore))
		}
		if len(r.Codes) == 0 {
			errs = append(errs, fmt.Errorf("rewards[%d] (%s): no codes configured", i, r.Label))
		}
	}

	return errors.Join(errs...)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ApplyPreset adjusts the difficulty section for a named preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) error {
	switch preset {
	case "", DifficultyNormal:
	case DifficultyEasy:
		cfg.Difficulty.BaseSpeed *= 0.8
		cfg.Difficulty.SpeedGain *= 0.7
	case DifficultyHard:
		cfg.Difficulty.BaseSpeed *= 1.25
		cfg.Difficulty.SpeedGain *= 1.3
	case DifficultyFixed:
		cfg.Difficulty.SpeedGain = 0
		cfg.Difficulty.SpacingGain = 0
	default:
		return fmt.Errorf("config: unknown difficulty preset %q (want easy, normal, hard or fixed)", preset)
	}
	return nil
}

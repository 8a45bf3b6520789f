package config

import (
	_ "embed"
	"math"
	"time"
)

//go:embed defaults/flapgate.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
// It mirrors defaults/flapgate.yaml and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		World: WorldConfig{
			Width:          450,
			Height:         800,
			BirdXRatio:     0.35,
			BirdHalfWidth:  20,
			BirdHalfHeight: 20,
		},
		Physics: PhysicsConfig{
			Gravity:        0.6,
			JumpImpulse:    -9.6,
			TiltGain:       0.1,
			MaxTilt:        math.Pi / 4,
			HoverAmplitude: 10,
			HoverPeriodMs:  300,
		},
		Obstacles: ObstacleConfig{
			Width:       60,
			GapSize:     180,
			MinMargin:   100,
			EvictMargin: 0,
		},
		Difficulty: DifficultyConfig{
			BaseSpeed:         3.0,
			SpeedGain:         0.07,
			SpeedCap:          7.0,
			BaseSpawnDistance: 270,
			SpacingGain:       3.0,
			SpacingCap:        120,
		},
		Timing: TimingConfig{
			NominalFPS:   60,
			MaxDelta:     50 * time.Millisecond,
			FlapCooldown: 150 * time.Millisecond,
			GraceDelay:   time.Second,
		},
		Milestones: MilestoneConfig{
			Obstacles: []Milestone{
				{At: 5, Label: "%5"},
				{At: 10, Label: "%10"},
				{At: 26, Label: "%13"},
			},
			Scores: []Milestone{
				{At: 5, Label: "%5"},
				{At: 10, Label: "%10"},
				{At: 26, Label: "%13"},
			},
		},
		Rewards: []RewardTier{
			{
				Label:    "%5",
				MinScore: 5,
				MaxScore: 9,
				Codes:    []string{"FLAP5-QX2M", "FLAP5-LT8C", "FLAP5-ZW3K", "FLAP5-HN6V", "FLAP5-RB9D"},
			},
			{
				Label:    "%10",
				MinScore: 10,
				MaxScore: 25,
				Codes:    []string{"FLAP10-VK4P", "FLAP10-MC7S", "FLAP10-YD2F", "FLAP10-GU5T", "FLAP10-EJ8W"},
			},
			{
				Label:    "%13",
				MinScore: 26,
				MaxScore: 0,
				Codes:    []string{"FLAP13-PA3N", "FLAP13-XH6Q", "FLAP13-KS9B", "FLAP13-TF4R", "FLAP13-WL7G"},
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Display ticks per second (default 60)
	Seed     int64 // RNG seed for gap placement, 0 = time based
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// GameState is the coarse status the platform needs after each tick.
type GameState struct {
	Score    int    // Current score
	Tier     string // Current cosmetic tier name
	Started  bool   // The first flap has been accepted
	Crashed  bool   // The bird hit something; simulation is frozen
	Reported bool   // The final score has been handed off
}

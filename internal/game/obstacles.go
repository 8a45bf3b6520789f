package game

import "github.com/vovakirdan/flapgate/internal/config"

// RandSource supplies uniform numbers in [0, 1).
// *rand.Rand satisfies it; tests can plug in fixed sequences.
type RandSource interface {
	Float64() float64
}

// Obstacle is a gate: a top and a bottom barrier with one passage between them.
type Obstacle struct {
	X           float64 // Left edge
	GapTop      float64 // Top edge of the passage
	GapSize     float64 // Height of the passage, constant per session
	Passed      bool    // Bird has fully cleared the gate
	RewardLabel string  // Milestone label, empty when none
}

// GapBottom returns the bottom edge of the passage.
func (o Obstacle) GapBottom() float64 {
	return o.GapTop + o.GapSize
}

// Generator spawns, moves and evicts obstacles.
type Generator struct {
	cfg        config.ObstacleConfig
	worldW     float64
	worldH     float64
	milestones []config.Milestone
	rng        RandSource

	obstacles   []Obstacle
	accumulator float64 // Distance travelled since the last spawn
	spawned     int     // Obstacles spawned this session
}

// NewGenerator creates a generator for the given world.
func NewGenerator(cfg config.Config, rng RandSource) *Generator {
	return &Generator{
		cfg:        cfg.Obstacles,
		worldW:     cfg.World.Width,
		worldH:     cfg.World.Height,
		milestones: cfg.Milestones.Obstacles,
		rng:        rng,
		obstacles:  make([]Obstacle, 0, 8),
	}
}

// Reset clears all obstacles and counters. The random source keeps its state.
func (g *Generator) Reset() {
	g.obstacles = g.obstacles[:0]
	g.accumulator = 0
	g.spawned = 0
}

// Advance moves every obstacle left by speed*ts, spawns a new one when the
// accumulated distance reaches spawnDistance, and evicts gates that left the
// world. It reports whether an obstacle was spawned.
func (g *Generator) Advance(speed, spawnDistance, ts float64) bool {
	step := speed * ts
	for i := range g.obstacles {
		g.obstacles[i].X -= step
	}

	g.evict()

	g.accumulator += step
	if g.accumulator < spawnDistance {
		return false
	}
	g.accumulator = 0
	g.spawn()
	return true
}

// MarkPassed flags every gate whose right edge the bird's left edge has
// passed, and returns how many flipped on this call.
func (g *Generator) MarkPassed(birdLeft float64) int {
	n := 0
	for i := range g.obstacles {
		o := &g.obstacles[i]
		if !o.Passed && birdLeft > o.X+g.cfg.Width {
			o.Passed = true
			n++
		}
	}
	return n
}

// Obstacles returns the active gates in spawn order. Callers must not modify it.
func (g *Generator) Obstacles() []Obstacle {
	return g.obstacles
}

// Width returns the gate width.
func (g *Generator) Width() float64 {
	return g.cfg.Width
}

// Spawned returns how many gates were spawned this session.
func (g *Generator) Spawned() int {
	return g.spawned
}

// Accumulator returns the distance travelled since the last spawn.
func (g *Generator) Accumulator() float64 {
	return g.accumulator
}

func (g *Generator) spawn() {
	g.spawned++
	g.obstacles = append(g.obstacles, Obstacle{
		X:           g.worldW,
		GapTop:      g.gapTop(),
		GapSize:     g.cfg.GapSize,
		RewardLabel: g.labelFor(g.spawned),
	})
}

// gapTop picks the passage position uniformly in
// [MinMargin, worldH - MinMargin - GapSize].
// A world too short for the margins gets a centred gap.
func (g *Generator) gapTop() float64 {
	lo := g.cfg.MinMargin
	hi := g.worldH - g.cfg.MinMargin - g.cfg.GapSize
	if hi < lo {
		return (g.worldH - g.cfg.GapSize) / 2
	}
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *Generator) labelFor(count int) string {
	for _, m := range g.milestones {
		if m.At == count {
			return m.Label
		}
	}
	return ""
}

// evict drops gates from the front once their right edge is EvictMargin
// behind the left boundary. Spawn order equals position order, so only the
// head ever qualifies.
func (g *Generator) evict() {
	n := 0
	for n < len(g.obstacles) && g.obstacles[n].X+g.cfg.Width < -g.cfg.EvictMargin {
		n++
	}
	if n > 0 {
		g.obstacles = append(g.obstacles[:0], g.obstacles[n:]...)
	}
}

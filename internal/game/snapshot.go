package game

// Snapshot is a read-only copy of everything needed to draw a frame.
type Snapshot struct {
	Status    Status
	Y         float64
	Velocity  float64
	Tilt      float64
	Score     int
	Tier      Tier
	Obstacles []Obstacle

	Spawned          int
	SpawnAccumulator float64
	AnimClock        float64
	Speed            float64 // Current gate speed, for scrolling scenery
	Collision        Collision

	WorldWidth     float64
	WorldHeight    float64
	ObstacleWidth  float64
	BirdX          float64
	BirdHalfWidth  float64
	BirdHalfHeight float64
}

// Snapshot returns a copy of the current state. Mutating it does not affect
// the session.
func (s *Session) Snapshot() Snapshot {
	obstacles := make([]Obstacle, len(s.gen.Obstacles()))
	copy(obstacles, s.gen.Obstacles())

	return Snapshot{
		Status:           s.status,
		Y:                s.body.Y,
		Velocity:         s.body.Velocity,
		Tilt:             s.body.Tilt,
		Score:            s.score,
		Tier:             s.rank.Current(),
		Obstacles:        obstacles,
		Spawned:          s.gen.Spawned(),
		SpawnAccumulator: s.gen.Accumulator(),
		AnimClock:        s.anim,
		Speed:            s.diff.Speed(s.score),
		Collision:        s.collision,
		WorldWidth:       s.cfg.World.Width,
		WorldHeight:      s.cfg.World.Height,
		ObstacleWidth:    s.gen.Width(),
		BirdX:            s.birdX(),
		BirdHalfWidth:    s.cfg.World.BirdHalfWidth,
		BirdHalfHeight:   s.cfg.World.BirdHalfHeight,
	}
}

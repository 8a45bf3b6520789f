package game

import "github.com/vovakirdan/flapgate/internal/core"

// CollisionKind tells what the bird hit.
type CollisionKind int

const (
	CollisionNone CollisionKind = iota
	CollisionBoundary
	CollisionObstacle
)

// String returns a human-readable name for the collision kind.
func (k CollisionKind) String() string {
	switch k {
	case CollisionNone:
		return "none"
	case CollisionBoundary:
		return "boundary"
	case CollisionObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Collision is the verdict of one detection pass.
type Collision struct {
	Kind  CollisionKind
	Index int // Obstacle index for CollisionObstacle, -1 otherwise
}

// Hit reports whether anything was hit.
func (c Collision) Hit() bool {
	return c.Kind != CollisionNone
}

// Detect tests the bird against the world bounds and then each gate in order.
// The first hit wins; later gates are not examined.
func Detect(bird core.Box, y, worldH float64, obstacles []Obstacle, width float64) Collision {
	if y < 0 || y > worldH {
		return Collision{Kind: CollisionBoundary, Index: -1}
	}

	for i, o := range obstacles {
		if !bird.OverlapsX(o.X, o.X+width) {
			continue
		}
		if !bird.WithinY(o.GapTop, o.GapBottom()) {
			return Collision{Kind: CollisionObstacle, Index: i}
		}
	}

	return Collision{Kind: CollisionNone, Index: -1}
}

package game

import (
	"math"
	"time"

	"github.com/vovakirdan/flapgate/internal/config"
	"github.com/vovakirdan/flapgate/internal/core"
)

// Body is the bird's vertical state. Units are world units and nominal ticks.
type Body struct {
	Y        float64 // Centre of the bird, y grows downward
	Velocity float64 // Positive = falling
	Tilt     float64 // Radians, derived from Velocity
}

// Integrate advances the body by ts nominal ticks under constant gravity.
// The step is exact for constant acceleration, so splitting a span into
// smaller steps yields the same trajectory.
func (b *Body) Integrate(ts float64, p config.PhysicsConfig) {
	if ts <= 0 {
		return
	}
	b.Y += b.Velocity*ts + 0.5*p.Gravity*ts*ts
	b.Velocity += p.Gravity * ts
	b.updateTilt(p)
}

// Impulse replaces the current velocity with the jump impulse.
func (b *Body) Impulse(p config.PhysicsConfig) {
	b.Velocity = p.JumpImpulse
	b.updateTilt(p)
}

// Hover places the body on the idle bobbing curve. Velocity is left alone.
func (b *Body) Hover(elapsed time.Duration, worldH float64, p config.PhysicsConfig) {
	ms := float64(elapsed) / float64(time.Millisecond)
	b.Y = worldH/2 + math.Sin(ms/p.HoverPeriodMs)*p.HoverAmplitude
}

func (b *Body) updateTilt(p config.PhysicsConfig) {
	b.Tilt = core.ClampF(b.Velocity*p.TiltGain, -p.MaxTilt, p.MaxTilt)
}

// Package game implements the flapgate simulation: a bird flying through a
// stream of gated obstacles. A Session owns all state and is driven by a
// single goroutine through Tick and Flap.
package game

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/flapgate/internal/config"
	"github.com/vovakirdan/flapgate/internal/core"
)

// StepResult is the outcome of one tick.
// It contains the coarse game state and any events produced since the previous tick.
type StepResult struct {
	State  core.GameState
	Events []Event
}

// Has reports whether the result contains an event of the given kind.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Session is one run of the game, from hovering to game over.
type Session struct {
	cfg   config.Config
	diff  *config.Difficulty
	clock *Timekeeper
	gen   *Generator
	rank  *Rank

	body      Body
	status    Status
	score     int
	anim      float64 // Cosmetic animation phase, in nominal ticks
	collision Collision

	origin     time.Time // First timestamp seen, drives the idle hover
	lastFlap   time.Time
	hasFlapped bool

	gameOver Deferred
	reported bool
	closed   bool

	pending []Event // Produced by Flap, delivered with the next tick
}

// NewSession creates a session in Idle. A nil rng uses a time-seeded source.
func NewSession(cfg config.Config, th Thresholds, rng RandSource) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s := &Session{
		cfg:   cfg,
		diff:  config.NewDifficulty(cfg.Difficulty),
		clock: NewTimekeeper(cfg.Timing.NominalFrame(), cfg.Timing.MaxDelta),
		gen:   NewGenerator(cfg, rng),
	}
	s.Reset(th)
	return s
}

// Reset starts a fresh run with new thresholds, including after Close.
func (s *Session) Reset(th Thresholds) {
	s.rank = NewRank(th)
	s.gen.Reset()
	s.clock.Reset()
	s.body = Body{Y: s.cfg.World.Height / 2}
	s.status = StatusIdle
	s.score = 0
	s.anim = 0
	s.collision = Collision{Kind: CollisionNone, Index: -1}
	s.origin = time.Time{}
	s.lastFlap = time.Time{}
	s.hasFlapped = false
	s.gameOver = Deferred{}
	s.reported = false
	s.closed = false
	s.pending = nil
}

// Close tears the session down: the pending game-over report is cancelled
// and further Tick and Flap calls do nothing.
func (s *Session) Close() {
	s.closed = true
	s.gameOver.Cancel()
	s.pending = nil
}

// Flap applies an upward impulse immediately. The first accepted flap starts
// the run. It returns false when the flap was ignored: during the cooldown,
// after a crash, or after Close.
func (s *Session) Flap(now time.Time) bool {
	if s.closed || s.status == StatusCrashed {
		return false
	}
	if s.hasFlapped && now.Sub(s.lastFlap) < s.cfg.Timing.FlapCooldown {
		return false
	}
	s.hasFlapped = true
	s.lastFlap = now

	if s.status == StatusIdle {
		s.transition(StatusPlaying)
		// Idle time must not be integrated on the first playing tick
		s.clock.Seed(now)
		s.pending = append(s.pending, Event{Kind: EventStarted})
	}
	s.body.Impulse(s.cfg.Physics)
	return true
}

// Tick advances the simulation to now.
func (s *Session) Tick(now time.Time) StepResult {
	if s.closed {
		return StepResult{State: s.State()}
	}
	if s.origin.IsZero() {
		s.origin = now
	}

	events := s.pending
	s.pending = nil

	switch s.status {
	case StatusIdle:
		s.anim += s.clock.Scale(now)
		s.body.Hover(now.Sub(s.origin), s.cfg.World.Height, s.cfg.Physics)
	case StatusPlaying:
		events = s.step(now, events)
	case StatusCrashed:
		events = s.pollGameOver(now, events)
	}

	return StepResult{State: s.State(), Events: events}
}

// step runs one Playing tick: physics, difficulty, generation, scoring,
// rank and collision, in that order.
func (s *Session) step(now time.Time, events []Event) []Event {
	ts := s.clock.Scale(now)

	s.body.Integrate(ts, s.cfg.Physics)

	speed := s.diff.Speed(s.score)
	s.gen.Advance(speed, s.diff.SpawnDistance(s.score), ts)

	bird := s.birdBox()
	for n := s.gen.MarkPassed(bird.Left); n > 0; n-- {
		s.score++
		events = append(events, Event{Kind: EventScored, Score: s.score})
		if label := s.scoreMilestone(s.score); label != "" {
			events = append(events, Event{Kind: EventMilestone, Score: s.score, Label: label})
		}
	}

	for _, t := range s.rank.Update(s.score) {
		events = append(events, Event{Kind: EventTierAchieved, Score: s.score, Tier: t})
	}

	if c := Detect(bird, s.body.Y, s.cfg.World.Height, s.gen.Obstacles(), s.gen.Width()); c.Hit() {
		s.collision = c
		s.transition(StatusCrashed)
		s.gameOver.Schedule(now.Add(s.cfg.Timing.GraceDelay))
		events = append(events, Event{Kind: EventCrashed, Score: s.score, Cause: c.Kind})
		events = s.pollGameOver(now, events)
	}

	s.anim += ts
	return events
}

func (s *Session) pollGameOver(now time.Time, events []Event) []Event {
	if s.gameOver.Poll(now) {
		s.reported = true
		events = append(events, Event{Kind: EventGameOver, Score: s.score})
	}
	return events
}

// transition moves the lifecycle forward. Backward or skipping moves are
// refused and reported as false.
func (s *Session) transition(next Status) bool {
	if !s.status.canMoveTo(next) {
		return false
	}
	s.status = next
	return true
}

func (s *Session) scoreMilestone(score int) string {
	for _, m := range s.cfg.Milestones.Scores {
		if m.At == score {
			return m.Label
		}
	}
	return ""
}

// birdX returns the fixed horizontal centre of the bird.
func (s *Session) birdX() float64 {
	return s.cfg.World.Width * s.cfg.World.BirdXRatio
}

func (s *Session) birdBox() core.Box {
	return core.BoxAround(s.birdX(), s.body.Y, s.cfg.World.BirdHalfWidth, s.cfg.World.BirdHalfHeight)
}

// Status returns the lifecycle phase.
func (s *Session) Status() Status {
	return s.status
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool {
	return s.closed
}

// State returns the coarse game state.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:    s.score,
		Tier:     s.rank.Current().String(),
		Started:  s.status != StatusIdle,
		Crashed:  s.status == StatusCrashed,
		Reported: s.reported,
	}
}

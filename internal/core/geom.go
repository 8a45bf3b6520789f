// Package core provides fundamental types and utilities for the flapgate game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned cell rectangle on a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned bounding box in world units.
// Edges are Left/Right on the x axis and Top/Bottom on the y axis (y grows downward).
type Box struct {
	Left, Top     float64
	Right, Bottom float64
}

// BoxAround returns the box centred on (cx, cy) with the given half extents.
func BoxAround(cx, cy, halfW, halfH float64) Box {
	return Box{
		Left:   cx - halfW,
		Top:    cy - halfH,
		Right:  cx + halfW,
		Bottom: cy + halfH,
	}
}

// OverlapsX reports whether the horizontal spans of both boxes overlap.
// Touching edges do not count as overlap.
func (b Box) OverlapsX(left, right float64) bool {
	return b.Right > left && b.Left < right
}

// WithinY reports whether the vertical span of b lies inside [top, bottom].
func (b Box) WithinY(top, bottom float64) bool {
	return b.Top >= top && b.Bottom <= bottom
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

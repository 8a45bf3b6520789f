package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/flapgate/internal/core"
)

// Visual characters for rendering
const (
	GateChar      = '█'
	GateCapTop    = '▄'
	GateCapBottom = '▀'
	GroundChar    = '═'
	CloudChar     = 'o'
	BodyChar      = '●'
	BirdUp        = '▲'
	BirdLevel     = '▶'
	BirdDown      = '▼'
)

// tiltDeadZone is how far from level the bird must lean before the glyph changes.
const tiltDeadZone = 0.2

const cloudPeriod = 6

// Renderer draws snapshots onto a cell screen. The top row holds the HUD,
// the bottom row the ground, and the world is scaled into the rows between.
type Renderer struct{}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// viewport maps world units to screen cells.
type viewport struct {
	cols, rows int // Playfield size in cells
	sx, sy     float64
}

func newViewport(dst *core.Screen, snap Snapshot) viewport {
	cols := dst.Width()
	rows := core.Max(dst.Height()-2, 1)
	v := viewport{cols: cols, rows: rows}
	if snap.WorldWidth > 0 {
		v.sx = float64(cols) / snap.WorldWidth
	}
	if snap.WorldHeight > 0 {
		v.sy = float64(rows) / snap.WorldHeight
	}
	return v
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

// row returns the screen row for world y, offset by the HUD line.
func (v viewport) row(y float64) int {
	return 1 + int(math.Floor(y*v.sy))
}

// Render draws the whole frame.
func (r *Renderer) Render(dst *core.Screen, snap Snapshot) {
	dst.Clear()
	vp := newViewport(dst, snap)

	r.drawGround(dst, vp, snap)
	for _, o := range snap.Obstacles {
		r.drawGate(dst, vp, snap, o)
	}
	r.drawBird(dst, vp, snap)
	r.drawHUD(dst, snap)

	switch snap.Status {
	case StatusIdle:
		dst.DrawTextCentered(dst.Height()/3, "Press SPACE to flap", core.ColorBrightWhite)
	case StatusCrashed:
		drawCenteredMessage(dst, "CRASHED", fmt.Sprintf("Score: %d", snap.Score))
	}
}

func (r *Renderer) drawGround(dst *core.Screen, vp viewport, snap Snapshot) {
	y := dst.Height() - 1
	offset := int(snap.AnimClock*snap.Speed*vp.sx) % cloudPeriod
	dst.DrawHLine(0, y, dst.Width(), GroundChar, core.ColorGray)
	for x := 0; x < dst.Width(); x++ {
		if (x+offset)%cloudPeriod == 0 {
			dst.SetColor(x, y, CloudChar, core.ColorWhite)
		}
	}
}

// drawGate renders one obstacle with caps facing the passage.
func (r *Renderer) drawGate(dst *core.Screen, vp viewport, snap Snapshot, o Obstacle) {
	left := vp.col(o.X)
	right := core.Max(vp.col(o.X+snap.ObstacleWidth)-1, left)
	if right < 0 || left >= vp.cols {
		return
	}
	left = core.Clamp(left, 0, vp.cols-1)
	right = core.Clamp(right, 0, vp.cols-1)

	top := 1
	bottom := vp.rows // Last playfield row
	gapTop := core.Clamp(vp.row(o.GapTop), top, bottom+1)
	gapBottom := core.Clamp(vp.row(o.GapBottom()), top-1, bottom)

	for x := left; x <= right; x++ {
		for y := top; y < gapTop; y++ {
			dst.SetColor(x, y, GateChar, core.ColorWhite)
		}
		if gapTop > top {
			dst.SetColor(x, gapTop-1, GateCapTop, core.ColorCyan)
		}
		for y := gapBottom + 1; y <= bottom; y++ {
			dst.SetColor(x, y, GateChar, core.ColorWhite)
		}
		if gapBottom < bottom {
			dst.SetColor(x, gapBottom+1, GateCapBottom, core.ColorCyan)
		}
	}

	if o.RewardLabel != "" {
		mid := (gapTop + gapBottom) / 2
		x := left + (right-left+1-len(o.RewardLabel))/2
		dst.DrawTextColor(x, mid, o.RewardLabel, core.ColorBrightYellow)
	}
}

func (r *Renderer) drawBird(dst *core.Screen, vp viewport, snap Snapshot) {
	x := vp.col(snap.BirdX)
	y := core.Clamp(vp.row(snap.Y), 1, vp.rows)
	c := TierColor(snap.Tier)
	if snap.Status == StatusCrashed {
		c = core.ColorRed
	}
	dst.SetColor(x-1, y, BodyChar, c)
	dst.SetColor(x, y, TiltGlyph(snap.Tilt), c)
}

func (r *Renderer) drawHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawTextColor(2, 0, fmt.Sprintf(" Score: %d ", snap.Score), core.ColorBrightWhite)
	tier := fmt.Sprintf(" %s ", snap.Tier)
	dst.DrawTextColor(dst.Width()-len(tier)-2, 0, tier, TierColor(snap.Tier))
}

// TiltGlyph returns the bird glyph for a tilt angle: nose up, level or down.
func TiltGlyph(tilt float64) rune {
	switch {
	case tilt < -tiltDeadZone:
		return BirdUp
	case tilt > tiltDeadZone:
		return BirdDown
	default:
		return BirdLevel
	}
}

// TierColor returns the skin colour for a tier.
func TierColor(t Tier) core.Color {
	switch t {
	case TierA:
		return core.ColorOrange
	case TierB:
		return core.ColorSilver
	case TierC:
		return core.ColorGold
	default:
		return core.ColorBrightGreen
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightWhite)

	dst.DrawTextColor(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorRed)
	dst.DrawTextColor(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle, core.ColorBrightWhite)
}

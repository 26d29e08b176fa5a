package lumen

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultSmoothing is the per-frame exponential smoothing factor applied to
// the pointer.
const DefaultSmoothing = 0.1

// Pointer holds the latest raw pointer position and its frame-paced smoothed
// trail, both in normalized device coordinates ([-1, 1] on each axis, +Y up).
type Pointer struct {
	// Raw is the last observed position. Input events overwrite it; there is
	// no event queue.
	Raw Vec2
	// Smoothed trails Raw by an exponential moving average advanced once per
	// frame by Step.
	Smoothed Vec2
	// Alpha is the smoothing factor. Zero means DefaultSmoothing.
	Alpha float64
}

// SetRaw records a pointer observation. The last value wins.
func (p *Pointer) SetRaw(x, y float64) {
	p.Raw = Vec2{X: x, Y: y}
}

// Step moves Smoothed toward Raw by the smoothing factor. Call exactly once
// per rendered frame so the trail is paced by frames, not by input events.
func (p *Pointer) Step() {
	a := p.Alpha
	if a == 0 {
		a = DefaultSmoothing
	}
	p.Smoothed = p.Smoothed.Lerp(p.Raw, a)
}

// ScreenToNDC converts a screen-space point to normalized device coordinates
// for a viewport of the given size. Y is flipped so +Y points up.
func ScreenToNDC(sx, sy, width, height float64) Vec2 {
	if width <= 0 || height <= 0 {
		return Vec2{}
	}
	return Vec2{
		X: sx/width*2 - 1,
		Y: -(sy/height)*2 + 1,
	}
}

// pointerSource tracks the last cursor and touch positions seen by ebiten so
// that only actual movement overwrites the raw pointer.
type pointerSource struct {
	lastX, lastY int
	seen         bool
	touchBuf     []ebiten.TouchID
}

// poll reads the cursor and the first active touch. Touch wins when present,
// matching touchmove on mobile. It reports whether the pointer moved.
func (ps *pointerSource) poll(p *Pointer, width, height float64) bool {
	ps.touchBuf = ebiten.AppendTouchIDs(ps.touchBuf[:0])

	var x, y int
	if len(ps.touchBuf) > 0 {
		x, y = ebiten.TouchPosition(ps.touchBuf[0])
	} else {
		x, y = ebiten.CursorPosition()
	}

	// The first sample is a baseline, not a move; the pointer rests at the
	// center until the user actually moves it.
	if !ps.seen {
		ps.seen = true
		ps.lastX, ps.lastY = x, y
		return false
	}
	if x == ps.lastX && y == ps.lastY {
		return false
	}
	ps.lastX, ps.lastY = x, y

	ndc := ScreenToNDC(float64(x), float64(y), width, height)
	p.SetRaw(ndc.X, ndc.Y)
	return true
}

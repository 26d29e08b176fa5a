package lumen

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultFadeDuration is the card fade length in seconds. It is shorter than
// DefaultTransitionDelay so the card is fully hidden before content swaps.
const DefaultFadeDuration float32 = 0.5

// Fade animates a single float64 (typically an alpha) toward a target with a
// gween tween. Retargeting mid-flight starts the new tween from the current
// value, so reversing a fade never jumps.
//
// There is no global animation manager: owners call Update themselves.
type Fade struct {
	// Value is the current animated value.
	Value float64
	// Duration is the length of each fade in seconds. Zero means
	// DefaultFadeDuration.
	Duration float32
	// Ease is the easing function. Nil means ease.OutQuad.
	Ease ease.TweenFunc

	tween  *gween.Tween
	target float64
}

// To starts a fade from the current value to target.
func (f *Fade) To(target float64) {
	d := f.Duration
	if d <= 0 {
		d = DefaultFadeDuration
	}
	fn := f.Ease
	if fn == nil {
		fn = ease.OutQuad
	}
	f.target = target
	f.tween = gween.New(float32(f.Value), float32(target), d, fn)
}

// Update advances the fade by dt seconds.
func (f *Fade) Update(dt float32) {
	if f.tween == nil {
		return
	}
	val, done := f.tween.Update(dt)
	f.Value = float64(val)
	if done {
		f.Value = f.target
		f.tween = nil
	}
}

// Active reports whether a fade is in progress.
func (f *Fade) Active() bool {
	return f.tween != nil
}

package lumen

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestFadeTo(t *testing.T) {
	var f Fade
	f.To(1)
	if !f.Active() {
		t.Fatal("fade not active after To")
	}
	f.Update(0.25)
	if f.Value <= 0 || f.Value >= 1 {
		t.Errorf("mid-fade Value = %v, want in (0, 1)", f.Value)
	}
	f.Update(0.5)
	if f.Value != 1 || f.Active() {
		t.Errorf("Value = %v active = %v, want 1 and done", f.Value, f.Active())
	}
}

func TestFadeRetargetFromCurrent(t *testing.T) {
	f := Fade{Duration: 1, Ease: ease.Linear}
	f.To(1)
	f.Update(0.5)
	mid := f.Value
	assertNear(t, "mid", mid, 0.5)

	f.To(0)
	f.Update(0)
	if !approxEqual(f.Value, mid, 1e-6) {
		t.Errorf("retarget jumped from %v to %v", mid, f.Value)
	}
	f.Update(1)
	if f.Value != 0 {
		t.Errorf("Value = %v, want 0", f.Value)
	}
}

func TestFadeIdleUpdate(t *testing.T) {
	f := Fade{Value: 0.3}
	f.Update(1)
	if f.Value != 0.3 || f.Active() {
		t.Errorf("idle fade changed: %+v", f)
	}
}

func TestFadeShorterThanTransitionDelay(t *testing.T) {
	if float64(DefaultFadeDuration) >= DefaultTransitionDelay.Seconds() {
		t.Errorf("fade %vs must finish before the %v content swap", DefaultFadeDuration, DefaultTransitionDelay)
	}
}

package lumen

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var allModes = []Mode{ModeDrift, ModeVortex, ModeAttract, ModeExplode}

func TestDisplaceDeterministic(t *testing.T) {
	origins := []mgl32.Vec3{{0, 0, 0}, {10, -20, 30}, {-59, 59, 0.5}, {1e-3, 2e-3, -4}}
	times := []float32{0, 0.016, 1, 16.0 / 15.0, 123.456}
	pointer := mgl32.Vec2{0.3, -0.7}
	for _, mode := range allModes {
		for _, o := range origins {
			for _, tt := range times {
				a := Displace(o, tt, pointer, mode)
				b := Displace(o, tt, pointer, mode)
				if a != b {
					t.Errorf("%s: Displace(%v, %v) not deterministic: %v vs %v", mode, o, tt, a, b)
				}
			}
		}
	}
}

func TestDriftAmplitudeBounded(t *testing.T) {
	o := mgl32.Vec3{12, -7, 33}
	for i := 0; i < 500; i++ {
		p := Displace(o, float32(i)*0.1, mgl32.Vec2{}, ModeDrift)
		d := p.Sub(o)
		for axis := 0; axis < 3; axis++ {
			if math.Abs(float64(d[axis])) > driftAmplitude+eps32 {
				t.Fatalf("t=%v axis %d offset %v exceeds amplitude", float32(i)*0.1, axis, d[axis])
			}
		}
	}
}

func TestDriftClosedForm(t *testing.T) {
	o := mgl32.Vec3{10, 20, 30}
	var tt float32 = 2
	want := mgl32.Vec3{
		10 + float32(math.Sin(1+2))*3,
		20 + float32(math.Cos(1+1))*3,
		30 + float32(math.Sin(0.6+3))*3,
	}
	assertVec3(t, "drift", Displace(o, tt, mgl32.Vec2{}, ModeDrift), want)
}

func TestDriftIsNotRigid(t *testing.T) {
	a := Displace(mgl32.Vec3{0, 0, 0}, 1, mgl32.Vec2{}, ModeDrift).Sub(mgl32.Vec3{0, 0, 0})
	b := Displace(mgl32.Vec3{0, 10, 0}, 1, mgl32.Vec2{}, ModeDrift).Sub(mgl32.Vec3{0, 10, 0})
	if a.ApproxEqual(b) {
		t.Errorf("particles at different origins moved identically: %v", a)
	}
}

func TestVortexAtTimeZero(t *testing.T) {
	got := Displace(mgl32.Vec3{10, 0, 0}, 0, mgl32.Vec2{}, ModeVortex)
	// angle = 0.15 * |(10, 0)| = 1.5 rad; y bob is sin(0 + 1) * 2.
	want := mgl32.Vec3{
		float32(10 * math.Cos(1.5)),
		float32(math.Sin(1) * 2),
		float32(10 * math.Sin(1.5)),
	}
	assertVec3(t, "vortex", got, want)
}

func TestVortexMatchesRotationMatrix(t *testing.T) {
	o := mgl32.Vec3{-6, 4, 8}
	var tt float32 = 3
	a := tt*vortexSpin + float32(math.Hypot(-6, 8))*vortexTwist
	// The law rotates (x, z) by +a, which is a rotation about y by -a in
	// the right-handed convention mgl32 uses.
	rot := mgl32.Rotate3DY(-a)
	r := rot.Mul3x1(o)
	got := Displace(o, tt, mgl32.Vec2{}, ModeVortex)
	if math.Abs(float64(got[0]-r[0])) > eps32 || math.Abs(float64(got[2]-r[2])) > eps32 {
		t.Errorf("vortex xz = (%v, %v), want (%v, %v)", got[0], got[2], r[0], r[2])
	}
}

func TestVortexPreservesRadius(t *testing.T) {
	o := mgl32.Vec3{30, 5, -40}
	for _, tt := range []float32{0, 0.5, 7, 100} {
		p := Displace(o, tt, mgl32.Vec2{}, ModeVortex)
		r0 := math.Hypot(float64(o[0]), float64(o[2]))
		r1 := math.Hypot(float64(p[0]), float64(p[2]))
		if math.Abs(r0-r1) > 1e-3 {
			t.Errorf("t=%v: xz radius %v, want %v", tt, r1, r0)
		}
	}
}

func TestAttractAtTarget(t *testing.T) {
	m := mgl32.Vec2{0.2, -0.1}
	o := mgl32.Vec3{10, -5, 7} // o.xy == m*50
	got := Displace(o, 0, m, ModeAttract)
	want := mix(o, mgl32.Vec3{10, -5, 7}, 0.8)
	assertVec3(t, "attract", got, want)
	if f := smoothstep(attractRadius, 0, 0); f != 1 {
		t.Errorf("smoothstep at zero distance = %v, want 1", f)
	}
}

func TestAttractPullsHalfway(t *testing.T) {
	// Distance 20 from the target: smoothstep(40, 0, 20) = 0.5, factor 0.4.
	m := mgl32.Vec2{0, 0}
	o := mgl32.Vec3{20, 0, 3}
	got := Displace(o, 0, m, ModeAttract)
	assertVec3(t, "attract", got, mgl32.Vec3{12, 0, 3})
}

func TestAttractIgnoresDistantParticles(t *testing.T) {
	m := mgl32.Vec2{1, 1}
	o := mgl32.Vec3{-50, -50, 10}
	got := Displace(o, 5, m, ModeAttract)
	assertVec3(t, "attract", got, o)
}

func TestAttractPreservesZ(t *testing.T) {
	m := mgl32.Vec2{0.1, 0.1}
	o := mgl32.Vec3{4, 6, -33}
	if got := Displace(o, 0, m, ModeAttract); got[2] != o[2] {
		t.Errorf("z = %v, want %v", got[2], o[2])
	}
}

// circDist is the distance between a and b on a circle of the given period.
func circDist(a, b, period float64) float64 {
	d := math.Mod(math.Abs(a-b), period)
	return math.Min(d, period-d)
}

func explodeRadialOffset(o mgl32.Vec3, tt float32) float64 {
	p := Displace(o, tt, mgl32.Vec2{}, ModeExplode)
	return float64(p.Len() - o.Len())
}

func TestExplodeOffsetAtZero(t *testing.T) {
	o := mgl32.Vec3{3, 4, 0}
	assertVec3(t, "explode", Displace(o, 0, mgl32.Vec2{}, ModeExplode), o)
}

func TestExplodeOffsetSixteen(t *testing.T) {
	o := mgl32.Vec3{3, 4, 0}
	tt := float32(16.0 / 15.0)
	if off := explodeRadialOffset(o, tt); math.Abs(off-16) > 1e-3 {
		t.Errorf("offset = %v, want 16", off)
	}
	// Direction is the normalized origin.
	assertVec3(t, "explode", Displace(o, tt, mgl32.Vec2{}, ModeExplode), mgl32.Vec3{3 * 4.2, 4 * 4.2, 0})
}

func TestExplodeWrapsEveryPeriod(t *testing.T) {
	o := mgl32.Vec3{-10, 20, 5}
	for k := 1; k <= 5; k++ {
		tt := float32(80.0 / 15.0 * float64(k))
		off := explodeRadialOffset(o, tt)
		if circDist(off, 0, explodePeriod) > 2e-3 {
			t.Errorf("k=%d: offset = %v, want 0 (mod 80)", k, off)
		}
	}
}

func TestExplodeOffsetSawtooth(t *testing.T) {
	for _, tt := range []float32{0.5, 2, 5, 7.25, 40} {
		want := math.Mod(float64(tt)*15, 80)
		got := float64(explodeOffset(tt))
		if circDist(got, want, explodePeriod) > 1e-3 {
			t.Errorf("explodeOffset(%v) = %v, want %v", tt, got, want)
		}
		if got < 0 || got >= explodePeriod {
			t.Errorf("explodeOffset(%v) = %v outside [0, 80)", tt, got)
		}
	}
}

func TestExplodeZeroOriginStays(t *testing.T) {
	got := Displace(mgl32.Vec3{}, 3, mgl32.Vec2{}, ModeExplode)
	if got != (mgl32.Vec3{}) {
		t.Errorf("zero origin moved to %v", got)
	}
}

func TestGLSLModNegative(t *testing.T) {
	if got := glslMod(-10, 80); math.Abs(float64(got-70)) > eps32 {
		t.Errorf("glslMod(-10, 80) = %v, want 70", got)
	}
}

func TestSmoothstepReversedEdges(t *testing.T) {
	tests := []struct {
		x, want float32
	}{
		{0, 1},
		{40, 0},
		{60, 0},
		{20, 0.5},
		{10, 0.84375},
	}
	for _, tt := range tests {
		if got := smoothstep(40, 0, tt.x); math.Abs(float64(got-tt.want)) > eps32 {
			t.Errorf("smoothstep(40, 0, %v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestModeFromIndex(t *testing.T) {
	tests := []struct {
		in   int
		want Mode
		ok   bool
	}{
		{0, ModeDrift, true},
		{1, ModeVortex, true},
		{2, ModeAttract, true},
		{3, ModeExplode, true},
		{4, ModeExplode, false},
		{-1, ModeExplode, false},
	}
	for _, tt := range tests {
		got, ok := ModeFromIndex(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ModeFromIndex(%d) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestModeString(t *testing.T) {
	if ModeAttract.String() != "attract" || ModeDrift.String() != "drift" {
		t.Errorf("names = %q, %q", ModeAttract, ModeDrift)
	}
}

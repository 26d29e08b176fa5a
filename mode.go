package lumen

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects the displacement law applied to every particle in the field.
type Mode uint8

const (
	ModeDrift   Mode = iota // per-axis sinusoidal wander
	ModeVortex              // differential rotation about the y-axis
	ModeAttract             // pull toward the scaled pointer
	ModeExplode             // radial sawtooth burst
)

// modeNames maps each Mode to its display name.
var modeNames = [...]string{
	ModeDrift:   "drift",
	ModeVortex:  "vortex",
	ModeAttract: "attract",
	ModeExplode: "explode",
}

// String returns the lowercase name of the mode.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "explode"
}

// ModeFromIndex maps a chapter mode integer onto a Mode by exact equality.
// Values outside [0, 3] fall through to ModeExplode (the last branch of the
// displacement ladder) and ok is false.
func ModeFromIndex(i int) (m Mode, ok bool) {
	switch i {
	case 0:
		return ModeDrift, true
	case 1:
		return ModeVortex, true
	case 2:
		return ModeAttract, true
	case 3:
		return ModeExplode, true
	default:
		return ModeExplode, false
	}
}

// Displacement law constants.
const (
	driftAmplitude  = 3.0
	vortexSpin      = 0.6
	vortexTwist     = 0.15
	vortexBob       = 2.0
	attractScale    = 50.0
	attractRadius   = 40.0
	attractStrength = 0.8
	explodeSpeed    = 15.0
	explodePeriod   = 80.0
)

// Displace returns the rendered position of a particle whose origin is o, at
// simulation time t, with smoothed pointer m in normalized device coordinates.
// It is a closed-form function with no state: equal inputs give equal output.
func Displace(o mgl32.Vec3, t float32, m mgl32.Vec2, mode Mode) mgl32.Vec3 {
	switch mode {
	case ModeDrift:
		return drift(o, t)
	case ModeVortex:
		return vortex(o, t)
	case ModeAttract:
		return attract(o, m)
	default:
		return explode(o, t)
	}
}

func drift(o mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		o[0] + sin32(t*0.5+o[1]*0.1)*driftAmplitude,
		o[1] + cos32(t*0.5+o[0]*0.1)*driftAmplitude,
		o[2] + sin32(t*0.3+o[2]*0.1)*driftAmplitude,
	}
}

func vortex(o mgl32.Vec3, t float32) mgl32.Vec3 {
	a := t*vortexSpin + mgl32.Vec2{o[0], o[2]}.Len()*vortexTwist
	s, c := sin32(a), cos32(a)
	return mgl32.Vec3{
		o[0]*c - o[2]*s,
		o[1] + sin32(t+o[0]*0.1)*vortexBob,
		o[0]*s + o[2]*c,
	}
}

func attract(o mgl32.Vec3, m mgl32.Vec2) mgl32.Vec3 {
	target := m.Mul(attractScale)
	d := mgl32.Vec2{o[0], o[1]}.Sub(target).Len()
	f := smoothstep(attractRadius, 0, d)
	return mix(o, mgl32.Vec3{target[0], target[1], o[2]}, f*attractStrength)
}

func explode(o mgl32.Vec3, t float32) mgl32.Vec3 {
	l := o.Len()
	if l == 0 {
		return o
	}
	return o.Add(o.Mul(explodeOffset(t) / l))
}

// explodeOffset is the radial distance travelled in explode mode at time t:
// a sawtooth that rises at explodeSpeed and wraps every explodePeriod units.
func explodeOffset(t float32) float32 {
	return glslMod(t*explodeSpeed, explodePeriod)
}

// smoothstep is the GLSL smoothstep, including the reversed-edge form where
// edge0 > edge1 yields a falling curve.
func smoothstep(edge0, edge1, x float32) float32 {
	t := mgl32.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// mix linearly interpolates between a and b by t.
func mix(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// glslMod is the floored modulo x - y*floor(x/y).
func glslMod(x, y float32) float32 {
	return x - y*float32(math.Floor(float64(x/y)))
}

func sin32(x float32) float32 { return float32(math.Sin(float64(x))) }
func cos32(x float32) float32 { return float32(math.Cos(float64(x))) }

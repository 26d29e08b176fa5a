package lumen

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultParticleCount is the field size used when FieldConfig.Count is zero.
	DefaultParticleCount = 20000
	defaultExtent        = 120.0
	defaultSizeMin       = 1.0
	defaultSizeMax       = 3.0
	minChunk             = 1024
)

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// random returns a float64 in [Min, Max) drawn from rng.
func (r Range) random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// FieldConfig controls how a particle field is seeded and evaluated.
type FieldConfig struct {
	// Count is the fixed number of particles. Defaults to DefaultParticleCount.
	Count int
	// Extent is the side of the cube origins are drawn from, centered on the
	// world origin. Defaults to 120.
	Extent float64
	// Size is the range of per-particle point sizes. Defaults to [1, 3).
	Size Range
	// Seed feeds the PCG generator. Two fields with the same config are equal.
	Seed uint64
	// Workers > 1 splits Evaluate across goroutines. The output is identical
	// to the serial path since particles never read each other.
	Workers int
}

// Field owns the immutable per-particle origin and size data and the
// per-frame position buffer derived from it.
type Field struct {
	origins   []mgl32.Vec3
	sizes     []float32
	positions []mgl32.Vec3
	workers   int
}

// NewField creates a field with origins uniformly distributed in a cube and
// sizes uniformly distributed in cfg.Size. Positions start at the origins.
func NewField(cfg FieldConfig) *Field {
	n := cfg.Count
	if n <= 0 {
		n = DefaultParticleCount
	}
	extent := cfg.Extent
	if extent <= 0 {
		extent = defaultExtent
	}
	size := cfg.Size
	if size.Min == 0 && size.Max == 0 {
		size = Range{Min: defaultSizeMin, Max: defaultSizeMax}
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	f := &Field{
		origins:   make([]mgl32.Vec3, n),
		sizes:     make([]float32, n),
		positions: make([]mgl32.Vec3, n),
		workers:   cfg.Workers,
	}
	for i := range f.origins {
		f.origins[i] = mgl32.Vec3{
			float32((rng.Float64() - 0.5) * extent),
			float32((rng.Float64() - 0.5) * extent),
			float32((rng.Float64() - 0.5) * extent),
		}
		f.sizes[i] = float32(size.random(rng))
	}
	copy(f.positions, f.origins)
	return f
}

// Len returns the particle count.
func (f *Field) Len() int {
	return len(f.origins)
}

// Origin returns the immutable base position of particle i.
func (f *Field) Origin(i int) mgl32.Vec3 {
	return f.origins[i]
}

// Size returns the point size of particle i.
func (f *Field) Size(i int) float32 {
	return f.sizes[i]
}

// Positions returns the position buffer written by the last Evaluate.
// The returned slice MUST NOT be mutated.
func (f *Field) Positions() []mgl32.Vec3 {
	return f.positions
}

// Evaluate recomputes every position from its origin for time t, the given
// mode and the smoothed pointer m. Nothing accumulates between calls.
func (f *Field) Evaluate(t float64, mode Mode, m Vec2) {
	tt := float32(t)
	mm := m.vec32()

	n := len(f.origins)
	if f.workers <= 1 || n < 2*minChunk {
		f.evaluateRange(0, n, tt, mode, mm)
		return
	}

	chunk := (n + f.workers - 1) / f.workers
	if chunk < minChunk {
		chunk = minChunk
	}
	var g errgroup.Group
	g.SetLimit(f.workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			f.evaluateRange(lo, hi, tt, mode, mm)
			return nil
		})
	}
	_ = g.Wait() // workers never fail
}

func (f *Field) evaluateRange(lo, hi int, t float32, mode Mode, m mgl32.Vec2) {
	for i := lo; i < hi; i++ {
		f.positions[i] = Displace(f.origins[i], t, m, mode)
	}
}

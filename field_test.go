package lumen

import (
	"testing"
)

func TestFieldDefaultCount(t *testing.T) {
	f := NewField(FieldConfig{})
	if f.Len() != DefaultParticleCount {
		t.Errorf("Len() = %d, want %d", f.Len(), DefaultParticleCount)
	}
	if len(f.Positions()) != DefaultParticleCount {
		t.Errorf("positions = %d, want %d", len(f.Positions()), DefaultParticleCount)
	}
}

func TestFieldOriginsInCube(t *testing.T) {
	f := NewField(FieldConfig{Count: 5000, Seed: 42})
	for i := 0; i < f.Len(); i++ {
		o := f.Origin(i)
		for axis := 0; axis < 3; axis++ {
			if o[axis] < -60 || o[axis] > 60 {
				t.Fatalf("origin %d = %v outside cube of side 120", i, o)
			}
		}
	}
}

func TestFieldSizesInRange(t *testing.T) {
	f := NewField(FieldConfig{Count: 5000, Seed: 42})
	for i := 0; i < f.Len(); i++ {
		s := f.Size(i)
		if s < 1 || s >= 3 {
			t.Fatalf("size %d = %v outside [1, 3)", i, s)
		}
	}
}

func TestFieldSeedReproducible(t *testing.T) {
	a := NewField(FieldConfig{Count: 100, Seed: 9})
	b := NewField(FieldConfig{Count: 100, Seed: 9})
	c := NewField(FieldConfig{Count: 100, Seed: 10})
	same := true
	for i := 0; i < a.Len(); i++ {
		if a.Origin(i) != b.Origin(i) || a.Size(i) != b.Size(i) {
			t.Fatalf("particle %d differs between equal seeds", i)
		}
		if a.Origin(i) != c.Origin(i) {
			same = false
		}
	}
	if same {
		t.Error("different seeds produced identical origins")
	}
}

func TestFieldPositionsStartAtOrigins(t *testing.T) {
	f := NewField(FieldConfig{Count: 10, Seed: 1})
	for i, p := range f.Positions() {
		if p != f.Origin(i) {
			t.Errorf("position %d = %v, want origin %v", i, p, f.Origin(i))
		}
	}
}

func TestFieldEvaluateLeavesOriginsUntouched(t *testing.T) {
	f := NewField(FieldConfig{Count: 200, Seed: 3})
	before := make([]float32, 0, 600)
	for i := 0; i < f.Len(); i++ {
		o := f.Origin(i)
		before = append(before, o[0], o[1], o[2])
	}
	for _, mode := range allModes {
		f.Evaluate(12.5, mode, Vec2{0.4, 0.4})
	}
	for i := 0; i < f.Len(); i++ {
		o := f.Origin(i)
		if o[0] != before[3*i] || o[1] != before[3*i+1] || o[2] != before[3*i+2] {
			t.Fatalf("origin %d changed to %v", i, o)
		}
	}
}

func TestFieldEvaluateDoesNotAccumulate(t *testing.T) {
	f := NewField(FieldConfig{Count: 50, Seed: 5})
	f.Evaluate(3, ModeVortex, Vec2{})
	first := append(f.Positions()[:0:0], f.Positions()...)

	// Evaluating other times in between must not leave a trace.
	f.Evaluate(7, ModeExplode, Vec2{})
	f.Evaluate(3, ModeVortex, Vec2{})
	for i, p := range f.Positions() {
		if p != first[i] {
			t.Fatalf("position %d = %v after re-evaluation, want %v", i, p, first[i])
		}
	}
}

func TestFieldEvaluateMatchesDisplace(t *testing.T) {
	f := NewField(FieldConfig{Count: 64, Seed: 11})
	m := Vec2{-0.25, 0.5}
	f.Evaluate(1.5, ModeAttract, m)
	for i, p := range f.Positions() {
		want := Displace(f.Origin(i), 1.5, m.vec32(), ModeAttract)
		if p != want {
			t.Fatalf("position %d = %v, want %v", i, p, want)
		}
	}
}

func TestFieldParallelMatchesSerial(t *testing.T) {
	serial := NewField(FieldConfig{Count: 10000, Seed: 21})
	parallel := NewField(FieldConfig{Count: 10000, Seed: 21, Workers: 4})

	for _, mode := range allModes {
		serial.Evaluate(4.2, mode, Vec2{0.1, -0.3})
		parallel.Evaluate(4.2, mode, Vec2{0.1, -0.3})
		sp, pp := serial.Positions(), parallel.Positions()
		for i := range sp {
			if sp[i] != pp[i] {
				t.Fatalf("%s: particle %d serial %v != parallel %v", mode, i, sp[i], pp[i])
			}
		}
	}
}

func TestFieldCustomExtentAndSize(t *testing.T) {
	f := NewField(FieldConfig{Count: 1000, Extent: 10, Size: Range{Min: 2, Max: 2}, Seed: 1})
	for i := 0; i < f.Len(); i++ {
		o := f.Origin(i)
		if o.Len() > 10 {
			t.Fatalf("origin %d = %v outside extent 10", i, o)
		}
		if f.Size(i) != 2 {
			t.Fatalf("size %d = %v, want 2", i, f.Size(i))
		}
	}
}

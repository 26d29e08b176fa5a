package lumen

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// discSize is the side of the soft-disc texture every particle samples.
	discSize = 32
	// pointScale converts particle size to pixels at unit view depth.
	pointScale = 300.0
	// discAlpha is the peak opacity at the disc center.
	discAlpha = 0.7
)

// renderer turns the field's positions into one batched DrawTriangles32 call.
// Buffers are reused across frames.
type renderer struct {
	disc  *ebiten.Image
	verts []ebiten.Vertex
	inds  []uint32
	blend BlendMode
}

// ensureDisc lazily builds the particle texture: a radial falloff
// alpha = (1 - 2d) * 0.7 where d is the distance from the center in texture
// units, zero outside the inscribed circle.
func (r *renderer) ensureDisc() *ebiten.Image {
	if r.disc != nil {
		return r.disc
	}
	pix := make([]byte, 4*discSize*discSize)
	for y := 0; y < discSize; y++ {
		for x := 0; x < discSize; x++ {
			u := (float64(x)+0.5)/discSize - 0.5
			v := (float64(y)+0.5)/discSize - 0.5
			d := math.Hypot(u, v)
			var a float64
			if d <= 0.5 {
				a = (1 - d*2) * discAlpha
			}
			b := byte(math.Round(a * 255))
			i := 4 * (y*discSize + x)
			// Premultiplied white.
			pix[i], pix[i+1], pix[i+2], pix[i+3] = b, b, b, b
		}
	}
	img := ebiten.NewImage(discSize, discSize)
	img.WritePixels(pix)
	r.disc = img
	return img
}

// modelMatrix returns the rigid-body orientation of the field: rotation about
// x applied after rotation about y.
func modelMatrix(rotX, rotY float64) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(float32(rotX)).Mul4(mgl32.HomogRotate3DY(float32(rotY)))
}

// pointSize returns the on-screen diameter of a particle of the given size at
// view-space depth z (negative in front of the camera).
func pointSize(size, z float32) float32 {
	return size * (pointScale / -z)
}

// build projects every particle into screen space and fills the vertex and
// index buffers with one textured quad per visible particle. It returns the
// number of visible particles.
func (r *renderer) build(f *Field, cam *Camera, model mgl32.Mat4, col Color) int {
	mv := cam.View().Mul4(model)
	positions := f.Positions()

	r.verts = r.verts[:0]
	r.inds = r.inds[:0]

	cr, cg, cb, ca := float32(col.R), float32(col.G), float32(col.B), float32(col.A)
	if ca == 0 {
		ca = 1
	}

	visible := 0
	for i, p := range positions {
		vp := mv.Mul4x1(p.Vec4(1)).Vec3()
		if vp[2] >= 0 {
			continue
		}
		sx, sy, ok := cam.ProjectView(vp)
		if !ok {
			continue
		}
		half := pointSize(f.Size(i), vp[2]) / 2
		x0, y0 := float32(sx)-half, float32(sy)-half
		x1, y1 := float32(sx)+half, float32(sy)+half

		base := uint32(len(r.verts))
		r.verts = append(r.verts,
			ebiten.Vertex{DstX: x0, DstY: y0, SrcX: 0, SrcY: 0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
			ebiten.Vertex{DstX: x1, DstY: y0, SrcX: discSize, SrcY: 0, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
			ebiten.Vertex{DstX: x0, DstY: y1, SrcX: 0, SrcY: discSize, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
			ebiten.Vertex{DstX: x1, DstY: y1, SrcX: discSize, SrcY: discSize, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		)
		r.inds = append(r.inds, base, base+1, base+2, base+1, base+3, base+2)
		visible++
	}
	return visible
}

// submit issues the frame's single draw call.
func (r *renderer) submit(target *ebiten.Image) {
	if len(r.inds) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.Blend = r.blend.EbitenBlend()
	target.DrawTriangles32(r.verts, r.inds, r.ensureDisc(), &op)
}

// draw builds and submits the particle batch and records timings in stats.
func (r *renderer) draw(target *ebiten.Image, f *Field, cam *Camera, model mgl32.Mat4, col Color, stats *debugStats) {
	t0 := time.Now()
	stats.visible = r.build(f, cam, model, col)
	stats.projectTime = time.Since(t0)

	t0 = time.Now()
	r.submit(target)
	stats.submitTime = time.Since(t0)
}

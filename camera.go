package lumen

import (
	"github.com/go-gl/mathgl/mgl32"
)

// CameraConfig describes the perspective projection. Zero fields take the
// defaults noted on each field.
type CameraConfig struct {
	// FOV is the vertical field of view in degrees. Defaults to 75.
	FOV float32
	// Near and Far are the clip planes. Default to 0.1 and 1000.
	Near, Far float32
	// Distance is the camera's starting z. Defaults to 60.
	Distance float32
	// FollowScale multiplies the raw pointer to get the camera target.
	// Defaults to 2.
	FollowScale float32
	// FollowLerp is the per-frame easing factor toward the target.
	// Defaults to 0.02.
	FollowLerp float32
}

func (cfg CameraConfig) withDefaults() CameraConfig {
	if cfg.FOV <= 0 {
		cfg.FOV = 75
	}
	if cfg.Near <= 0 {
		cfg.Near = 0.1
	}
	if cfg.Far <= 0 {
		cfg.Far = 1000
	}
	if cfg.Distance == 0 {
		cfg.Distance = 60
	}
	if cfg.FollowScale == 0 {
		cfg.FollowScale = 2
	}
	if cfg.FollowLerp == 0 {
		cfg.FollowLerp = 0.02
	}
	return cfg
}

// Camera is a perspective camera that eases toward the pointer and always
// looks at the world origin.
type Camera struct {
	// Position is the eye position in world space.
	Position mgl32.Vec3
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect

	cfg    CameraConfig
	aspect float32

	view     mgl32.Mat4
	proj     mgl32.Mat4
	viewProj mgl32.Mat4
	dirty    bool
}

// NewCamera creates a camera at (0, 0, Distance) for a viewport of the given
// size.
func NewCamera(cfg CameraConfig, width, height float64) *Camera {
	cfg = cfg.withDefaults()
	c := &Camera{
		Position: mgl32.Vec3{0, 0, cfg.Distance},
		cfg:      cfg,
	}
	c.Resize(width, height)
	return c
}

// Config returns the effective camera configuration.
func (c *Camera) Config() CameraConfig {
	return c.cfg
}

// Aspect returns the current projection aspect ratio.
func (c *Camera) Aspect() float32 {
	return c.aspect
}

// Resize updates the viewport and recomputes the projection aspect ratio.
// Non-positive sizes keep the previous aspect.
func (c *Camera) Resize(width, height float64) {
	c.Viewport = Rect{Width: width, Height: height}
	if width > 0 && height > 0 {
		c.aspect = float32(width / height)
	} else if c.aspect == 0 {
		c.aspect = 1
	}
	c.proj = mgl32.Perspective(mgl32.DegToRad(c.cfg.FOV), c.aspect, c.cfg.Near, c.cfg.Far)
	c.dirty = true
}

// Follow eases the camera's x and y toward FollowScale times the raw pointer
// by FollowLerp. The camera's z never changes.
func (c *Camera) Follow(raw Vec2) {
	tx := float32(raw.X) * c.cfg.FollowScale
	ty := float32(raw.Y) * c.cfg.FollowScale
	c.Position[0] += (tx - c.Position[0]) * c.cfg.FollowLerp
	c.Position[1] += (ty - c.Position[1]) * c.cfg.FollowLerp
	c.dirty = true
}

// View returns the look-at-origin view matrix.
func (c *Camera) View() mgl32.Mat4 {
	c.update()
	return c.view
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return c.proj
}

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	c.update()
	return c.viewProj
}

func (c *Camera) update() {
	if !c.dirty {
		return
	}
	c.dirty = false
	c.view = mgl32.LookAtV(c.Position, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	c.viewProj = c.proj.Mul4(c.view)
}

// ProjectView maps a view-space point to screen coordinates. ok is false for
// points behind the eye or outside the clip volume.
func (c *Camera) ProjectView(p mgl32.Vec3) (sx, sy float64, ok bool) {
	clip := c.proj.Mul4x1(p.Vec4(1))
	w := clip[3]
	if w <= 0 {
		return 0, 0, false
	}
	nx, ny, nz := clip[0]/w, clip[1]/w, clip[2]/w
	if nx < -1 || nx > 1 || ny < -1 || ny > 1 || nz < -1 || nz > 1 {
		return 0, 0, false
	}
	sx = c.Viewport.X + float64(nx+1)/2*c.Viewport.Width
	sy = c.Viewport.Y + float64(1-ny)/2*c.Viewport.Height
	return sx, sy, true
}

// WorldToScreen projects a world-space point to screen coordinates.
func (c *Camera) WorldToScreen(p mgl32.Vec3) (sx, sy float64, ok bool) {
	return c.ProjectView(c.View().Mul4x1(p.Vec4(1)).Vec3())
}

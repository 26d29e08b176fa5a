package lumen

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// FPSOverlay displays the current FPS and TPS in the top-left corner.
// The text is refreshed every ~0.5 seconds.
type FPSOverlay struct {
	img        *ebiten.Image
	lastUpdate float64
}

// NewFPSOverlay creates an FPS overlay. It uses a small internal image and
// ebitenutil.DebugPrint for rendering.
func NewFPSOverlay() *FPSOverlay {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &FPSOverlay{img: ebiten.NewImage(100, 32), lastUpdate: 0.5}
}

// Update implements Overlay.
func (o *FPSOverlay) Update(dt float64) {
	o.lastUpdate += dt
	if o.lastUpdate < 0.5 {
		return
	}
	o.lastUpdate = 0

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

// Draw implements Overlay.
func (o *FPSOverlay) Draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}

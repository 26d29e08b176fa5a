package lumen

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pollControls applies the built-in bindings: a click or tap, space or the
// right arrow advances the chapter; C requests a caption.
func (e *Engine) pollControls() {
	next := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowRight)
	if !next {
		e.touchBuf = inpututil.AppendJustPressedTouchIDs(e.touchBuf[:0])
		next = len(e.touchBuf) > 0
	}
	if next {
		e.Next()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		e.RequestCaption()
	}
}

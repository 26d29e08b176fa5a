package lumen

import (
	"fmt"
	"io"

	"github.com/hajimehoshi/ebiten/v2"
)

// ChapterView is what a Display receives when a chapter is applied.
type ChapterView struct {
	ID       string
	Title    string
	Content  string
	ColorHex string
	Mode     Mode
}

// Display is the text-card collaborator. Hide starts a fade-out, Present
// swaps the content while hidden, and Show starts the fade-in. The controller
// leaves ControllerConfig.TransitionDelay between Hide and Present.
type Display interface {
	Hide()
	Present(view ChapterView)
	Show()
}

// Loader is implemented by displays that own a loading screen. Ready is
// called once, when the startup delay elapses, before chapter 0 is applied.
type Loader interface {
	Ready()
}

// CaptionDisplay is implemented by displays that can show generated captions.
// Captions are delivered on the frame loop, never from a background goroutine.
type CaptionDisplay interface {
	ShowCaption(text string)
}

// LogDisplay is a Display that writes every transition as a line of text.
// Useful for headless runs and scripted tests.
type LogDisplay struct {
	W io.Writer
}

// Hide implements Display.
func (d LogDisplay) Hide() {
	_, _ = fmt.Fprintln(d.W, "[card] hide")
}

// Present implements Display.
func (d LogDisplay) Present(v ChapterView) {
	_, _ = fmt.Fprintf(d.W, "[card] %s %s (%s, %s)\n", v.ID, v.Title, v.Mode, v.ColorHex)
}

// Show implements Display.
func (d LogDisplay) Show() {
	_, _ = fmt.Fprintln(d.W, "[card] show")
}

// Ready implements Loader.
func (d LogDisplay) Ready() {
	_, _ = fmt.Fprintln(d.W, "[loader] ready")
}

// ShowCaption implements CaptionDisplay.
func (d LogDisplay) ShowCaption(text string) {
	_, _ = fmt.Fprintf(d.W, "[caption] %s\n", text)
}

// Overlay is a 2D layer drawn over the particles each frame. A Display that
// also implements Overlay is registered automatically by NewEngine.
type Overlay interface {
	Update(dt float64)
	Draw(screen *ebiten.Image)
}

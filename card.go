package lumen

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

const (
	cardMargin    = 32.0
	cardWrapRunes = 24
	loaderLabel   = "LOADING"
)

// CardDisplay is an on-screen chapter card drawn over the particles. It
// implements Display, Loader, CaptionDisplay and Overlay. Visibility changes
// are gween fades, so Hide followed by Present after the transition delay
// swaps content while the card is invisible.
//
// With a nil Face, text is drawn with ebitenutil.DebugPrintAt, which only
// covers ASCII and ignores alpha (text shows once a fade is past halfway).
type CardDisplay struct {
	// Face renders all card text. Optional.
	Face text.Face
	// LineHeight is the text line advance in pixels. Defaults to 1.5x the
	// face size, or 16 for the debug font.
	LineHeight float64

	view    ChapterView
	accent  Color
	caption string

	card    Fade
	loader  Fade
	header  Fade
	subtext Fade

	screenW, screenH float64
}

// NewCardDisplay creates a hidden card with the loading screen up.
func NewCardDisplay(face text.Face) *CardDisplay {
	d := &CardDisplay{Face: face, accent: ColorWhite}
	d.loader.Value = 1
	return d
}

// Hide implements Display.
func (d *CardDisplay) Hide() { d.card.To(0) }

// Show implements Display.
func (d *CardDisplay) Show() { d.card.To(1) }

// Present implements Display.
func (d *CardDisplay) Present(v ChapterView) {
	d.view = v
	if c, err := ParseHexColor(v.ColorHex); err == nil {
		d.accent = c
	}
}

// Ready implements Loader: the loading screen fades out and the header in.
func (d *CardDisplay) Ready() {
	d.loader.To(0)
	d.header.To(1)
}

// ShowCaption implements CaptionDisplay.
func (d *CardDisplay) ShowCaption(s string) {
	d.caption = s
	if d.subtext.Value < 1 && !d.subtext.Active() {
		d.subtext.To(1)
	}
}

// View returns the chapter currently on the card.
func (d *CardDisplay) View() ChapterView { return d.view }

// Caption returns the caption currently on the card.
func (d *CardDisplay) Caption() string { return d.caption }

// Alpha returns the card's current opacity.
func (d *CardDisplay) Alpha() float64 { return d.card.Value }

// Update implements Overlay.
func (d *CardDisplay) Update(dt float64) {
	d.card.Update(float32(dt))
	d.loader.Update(float32(dt))
	d.header.Update(float32(dt))
	d.subtext.Update(float32(dt))
}

// Draw implements Overlay.
func (d *CardDisplay) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	d.screenW, d.screenH = float64(b.Dx()), float64(b.Dy())
	lh := d.lineHeight()

	if a := d.loader.Value; a > 0 {
		d.drawText(screen, loaderLabel, d.screenW/2-float64(len(loaderLabel))*lh/4, d.screenH/2, ColorWhite, a)
	}
	if a := d.header.Value; a > 0 {
		d.drawText(screen, "lumen", cardMargin, cardMargin, ColorWhite, a*0.6)
	}

	if a := d.card.Value; a > 0 && d.view.ID != "" {
		lines := wrapRunes(d.view.Content, cardWrapRunes)
		y := d.screenH - cardMargin - float64(len(lines)+2)*lh
		d.drawText(screen, d.view.ID, cardMargin, y, d.accent, a)
		y += lh
		d.drawText(screen, d.view.Title, cardMargin, y, ColorWhite, a)
		y += lh
		for _, line := range lines {
			d.drawText(screen, line, cardMargin, y, ColorWhite, a*0.8)
			y += lh
		}
	}

	if a := d.subtext.Value; a > 0 && d.caption != "" {
		d.drawText(screen, d.caption, cardMargin, d.screenH/3, d.accent, a)
	}
}

func (d *CardDisplay) lineHeight() float64 {
	if d.LineHeight > 0 {
		return d.LineHeight
	}
	if d.Face != nil {
		return d.Face.Metrics().HLineGap + d.Face.Metrics().HAscent + d.Face.Metrics().HDescent
	}
	return 16
}

func (d *CardDisplay) drawText(screen *ebiten.Image, s string, x, y float64, c Color, alpha float64) {
	if d.Face == nil {
		if alpha >= 0.5 {
			ebitenutil.DebugPrintAt(screen, s, int(x), int(y))
		}
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), 1)
	op.ColorScale.ScaleAlpha(float32(alpha))
	text.Draw(screen, s, d.Face, op)
}

// wrapRunes breaks s into lines of at most n runes. Existing newlines are
// kept. Text without spaces (CJK) wraps anywhere.
func wrapRunes(s string, n int) []string {
	if n <= 0 {
		return []string{s}
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		runes := []rune(para)
		if len(runes) == 0 {
			lines = append(lines, "")
			continue
		}
		for len(runes) > n {
			lines = append(lines, string(runes[:n]))
			runes = runes[n:]
		}
		lines = append(lines, string(runes))
	}
	return lines
}

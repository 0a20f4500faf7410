package view

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/threatscope"
)

// hoverDarken is how much a hovered button darkens, in percent.
const hoverDarken = 20

var (
	colorDisabled = threatscope.MustHex("#95a5a6")
	colorText     = threatscope.MustHex("#ffffff")
	colorTooltip  = threatscope.MustHex("#2c3e50")
)

// Button is a clickable rectangle with a caption. Buttons carry the id of
// what they act on so handlers never capture loop variables.
type Button struct {
	ID       string
	Bounds   threatscope.Rect
	Label    string
	Tooltip  string
	Color    threatscope.Color
	Disabled bool
	TextSize float64
}

// Contains reports whether (x, y) is inside the button.
func (b *Button) Contains(x, y float64) bool {
	return b.Bounds.Contains(x, y)
}

// Fill returns the button background for the given hover state.
func (b *Button) Fill(hover bool) threatscope.Color {
	switch {
	case b.Disabled:
		return colorDisabled
	case hover:
		return b.Color.Darken(hoverDarken)
	default:
		return b.Color
	}
}

// Draw renders the button. hover darkens enabled buttons.
func (b *Button) Draw(dst *ebiten.Image, fonts *Fonts, hover bool) {
	r := b.Bounds
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height),
		b.Fill(hover && !b.Disabled).RGBA(), true)
	size := b.TextSize
	if size == 0 {
		size = 16
	}
	c := r.Center()
	drawCenteredText(dst, b.Label, fonts.BoldFace(size), c.X, c.Y, colorText)
}

// DrawTooltip draws the button tooltip just below the cursor.
func (b *Button) DrawTooltip(dst *ebiten.Image, fonts *Fonts, x, y float64) {
	if b.Tooltip == "" {
		return
	}
	face := fonts.Face(13)
	lines := Wrap(b.Tooltip, face, 260)
	h := float64(len(lines))*face.Size*1.2 + 10
	vector.DrawFilledRect(dst, float32(x+12), float32(y+16), 280, float32(h), colorTooltip.RGBA(), true)
	for i, line := range lines {
		drawText(dst, line, face, x+22, y+21+float64(i)*face.Size*1.2, colorText)
	}
}

// ButtonAt returns the first button containing (x, y), or nil.
func ButtonAt(buttons []*Button, x, y float64) *Button {
	for _, b := range buttons {
		if b.Contains(x, y) {
			return b
		}
	}
	return nil
}

// CursorPosition returns the mouse position as float64.
func CursorPosition() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

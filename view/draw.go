package view

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/threatscope"
)

const (
	dashOn      = 8.0
	dashOff     = 4.0
	arrowLength = 15.0
	arrowAngle  = 25 * math.Pi / 180
)

// Viewport maps diagram coordinates to screen coordinates.
type Viewport struct {
	X, Y  float64 // screen position of the diagram origin
	Scale float64
}

// ToScreen converts a diagram point.
func (v Viewport) ToScreen(p threatscope.Vec2) (float32, float32) {
	s := v.scale()
	return float32(v.X + p.X*s), float32(v.Y + p.Y*s)
}

// FitViewport returns the viewport that fits a diagram of size (w, h) into
// area, preserving aspect ratio.
func FitViewport(area threatscope.Rect, w, h float64) Viewport {
	if w <= 0 || h <= 0 {
		return Viewport{X: area.X, Y: area.Y, Scale: 1}
	}
	s := math.Min(area.Width/w, area.Height/h)
	return Viewport{
		X:     area.X + (area.Width-w*s)/2,
		Y:     area.Y + (area.Height-h*s)/2,
		Scale: s,
	}
}

func (v Viewport) scale() float64 {
	if v.Scale == 0 {
		return 1
	}
	return v.Scale
}

// DrawElements draws canvas elements in order onto dst.
func DrawElements(dst *ebiten.Image, elems []*threatscope.Element, fonts *Fonts, vp Viewport) {
	for _, e := range elems {
		drawElement(dst, e, fonts, vp)
	}
}

func drawElement(dst *ebiten.Image, e *threatscope.Element, fonts *Fonts, vp Viewport) {
	s := float32(vp.scale())
	fill := e.Fill.WithAlpha(e.Fill.A * e.Alpha).RGBA()
	stroke := e.Outline.WithAlpha(e.Outline.A * e.Alpha).RGBA()
	width := float32(e.OutlineWidth) * s

	switch e.Shape {
	case threatscope.ShapeOval:
		// Diagram ovals are circles; the smaller extent wins otherwise.
		cx, cy := vp.ToScreen(e.Bounds.Center())
		r := float32(math.Min(e.Bounds.Width, e.Bounds.Height)/2) * s
		if e.Fill.A > 0 {
			vector.DrawFilledCircle(dst, cx, cy, r, fill, true)
		}
		if width > 0 && e.Outline.A > 0 {
			vector.StrokeCircle(dst, cx, cy, r, width, stroke, true)
		}
	case threatscope.ShapeRect:
		x, y := vp.ToScreen(threatscope.Vec2{X: e.Bounds.X, Y: e.Bounds.Y})
		w, h := float32(e.Bounds.Width)*s, float32(e.Bounds.Height)*s
		if e.Fill.A > 0 {
			vector.DrawFilledRect(dst, x, y, w, h, fill, true)
		}
		if width > 0 && e.Outline.A > 0 {
			if e.Dashed {
				for _, seg := range rectEdges(x, y, w, h) {
					drawDashed(dst, seg, width, stroke)
				}
			} else {
				vector.StrokeRect(dst, x, y, w, h, width, stroke, true)
			}
		}
	case threatscope.ShapeLine:
		x0, y0 := vp.ToScreen(e.From)
		x1, y1 := vp.ToScreen(e.To)
		seg := segment{x0, y0, x1, y1}
		if e.Dashed {
			drawDashed(dst, seg, width, stroke)
		} else {
			vector.StrokeLine(dst, x0, y0, x1, y1, width, stroke, true)
		}
		if e.Arrow {
			for _, head := range arrowHead(seg, arrowLength*s) {
				vector.StrokeLine(dst, head.x0, head.y0, head.x1, head.y1, width, stroke, true)
			}
		}
	}

	if e.Text != "" && fonts != nil {
		cx, cy := vp.ToScreen(e.Center())
		size := e.TextSize
		if size == 0 {
			size = 12
		}
		drawCenteredText(dst, e.Text, fonts.BoldFace(size*float64(s)), float64(cx), float64(cy),
			e.TextColor.WithAlpha(e.TextColor.A*e.Alpha))
	}
}

func drawCenteredText(dst *ebiten.Image, s string, face *text.GoTextFace, cx, cy float64, c threatscope.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(c.RGBA())
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	op.LayoutOptions.LineSpacing = face.Size * 1.2
	text.Draw(dst, s, face, op)
}

func drawText(dst *ebiten.Image, s string, face *text.GoTextFace, x, y float64, c threatscope.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c.RGBA())
	op.LayoutOptions.LineSpacing = face.Size * 1.2
	text.Draw(dst, s, face, op)
}

type segment struct {
	x0, y0, x1, y1 float32
}

func rectEdges(x, y, w, h float32) [4]segment {
	return [4]segment{
		{x, y, x + w, y},
		{x + w, y, x + w, y + h},
		{x + w, y + h, x, y + h},
		{x, y + h, x, y},
	}
}

// dashes splits seg into visible dash segments.
func dashes(seg segment, on, off float64) []segment {
	dx := float64(seg.x1 - seg.x0)
	dy := float64(seg.y1 - seg.y0)
	length := math.Hypot(dx, dy)
	if length == 0 || on <= 0 {
		return nil
	}
	ux, uy := dx/length, dy/length
	var out []segment
	for t := 0.0; t < length; t += on + off {
		end := math.Min(t+on, length)
		out = append(out, segment{
			x0: seg.x0 + float32(ux*t), y0: seg.y0 + float32(uy*t),
			x1: seg.x0 + float32(ux*end), y1: seg.y0 + float32(uy*end),
		})
	}
	return out
}

func drawDashed(dst *ebiten.Image, seg segment, width float32, clr color.Color) {
	for _, d := range dashes(seg, dashOn, dashOff) {
		vector.StrokeLine(dst, d.x0, d.y0, d.x1, d.y1, width, clr, true)
	}
}

// arrowHead returns the two barbs of an arrow pointing at the end of seg.
func arrowHead(seg segment, length float32) [2]segment {
	angle := math.Atan2(float64(seg.y1-seg.y0), float64(seg.x1-seg.x0))
	var out [2]segment
	for i, sign := range [2]float64{-1, 1} {
		a := angle + math.Pi + sign*arrowAngle
		out[i] = segment{
			x0: seg.x1, y0: seg.y1,
			x1: seg.x1 + length*float32(math.Cos(a)),
			y1: seg.y1 + length*float32(math.Sin(a)),
		}
	}
	return out
}

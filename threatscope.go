package threatscope

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default text color.
var ColorWhite = Color{1, 1, 1, 1}

// ParseHex parses a "#rrggbb" or "#rrggbbaa" color string.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("parse color %q: want 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// MustHex is like ParseHex but panics on malformed input. Intended for
// package-level color tables.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic("threatscope: " + err.Error())
	}
	return c
}

// Hex returns the "#rrggbb" form of c. Alpha is dropped.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B))
}

// Darken lowers the HLS lightness of c by percent (0-100), keeping hue and
// saturation. Used for hover states on buttons.
func (c Color) Darken(percent float64) Color {
	h, l, s := rgbToHLS(c.R, c.G, c.B)
	l *= 1 - clamp01(percent/100)
	r, g, b := hlsToRGB(h, l, s)
	return Color{R: r, G: g, B: b, A: c.A}
}

func rgbToHLS(r, g, b float64) (h, l, s float64) {
	hi := max(r, g, b)
	lo := min(r, g, b)
	l = (hi + lo) / 2
	if hi == lo {
		return 0, l, 0
	}
	d := hi - lo
	if l <= 0.5 {
		s = d / (hi + lo)
	} else {
		s = d / (2 - hi - lo)
	}
	rc := (hi - r) / d
	gc := (hi - g) / d
	bc := (hi - b) / d
	switch hi {
	case r:
		h = bc - gc
	case g:
		h = 2 + rc - bc
	default:
		h = 4 + gc - rc
	}
	h = math.Mod(h/6, 1)
	if h < 0 {
		h++
	}
	return h, l, s
}

func hlsToRGB(h, l, s float64) (r, g, b float64) {
	if s == 0 {
		return l, l, l
	}
	var m2 float64
	if l <= 0.5 {
		m2 = l * (1 + s)
	} else {
		m2 = l + s - l*s
	}
	m1 := 2*l - m2
	return hueToRGB(m1, m2, h+1.0/3), hueToRGB(m1, m2, h), hueToRGB(m1, m2, h-1.0/3)
}

func hueToRGB(m1, m2, h float64) float64 {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	switch {
	case h < 1.0/6:
		return m1 + (m2-m1)*h*6
	case h < 0.5:
		return m2
	case h < 2.0/3:
		return m1 + (m2-m1)*(2.0/3-h)*6
	}
	return m1
}

// WithAlpha returns c with its alpha component replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// RGBA converts c to a premultiplied color.RGBA for image/ebiten consumers.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: to8(c.R * a),
		G: to8(c.G * a),
		B: to8(c.B * a),
		A: to8(a),
	}
}

func to8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions and sizes on the diagram.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// RectAround returns the rectangle of the given half extents centered on p.
func RectAround(p Vec2, halfW, halfH float64) Rect {
	return Rect{X: p.X - halfW, Y: p.Y - halfH, Width: 2 * halfW, Height: 2 * halfH}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of r.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Phase is the step a scenario has reached.
type Phase uint8

const (
	PhaseIdle             Phase = iota // nothing on the diagram
	PhaseThreatShown                   // threat source drawn, attacks queued
	PhaseAttacking                     // at least one attack line has landed
	PhaseProtectionActive              // shield drawn, blocking queued
	PhaseBlocked                       // attack lines removed, waiting for auto-reset
)

var phaseNames = [...]string{"idle", "threat-shown", "attacking", "protection-active", "blocked"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "phase(" + strconv.Itoa(int(p)) + ")"
}

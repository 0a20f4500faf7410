package threatscope

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on an Element simultaneously.
// Create one via the convenience constructors (TweenAlpha,
// TweenBounds) and call Update(dt) each frame. If the target element is
// removed, the group stops immediately.
//
// A Canvas advances the tweens it starts itself; standalone groups are
// updated by the caller.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Element
	Done   bool
}

// Update advances all tweens by dt seconds and writes values to the target
// fields. If the target element has been removed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsRemoved() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenAlpha creates a TweenGroup that animates e.Alpha from its current
// value to the target over duration seconds.
func TweenAlpha(e *Element, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: e}
	g.tweens[0] = gween.New(float32(e.Alpha), float32(to), duration, fn)
	g.fields[0] = &e.Alpha
	return g
}

// TweenBounds creates a TweenGroup that animates e.Bounds to the target
// rectangle. Used to grow blocking perimeters outward from the shield.
func TweenBounds(e *Element, to Rect, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: e}
	g.tweens[0] = gween.New(float32(e.Bounds.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(e.Bounds.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(e.Bounds.Width), float32(to.Width), duration, fn)
	g.tweens[3] = gween.New(float32(e.Bounds.Height), float32(to.Height), duration, fn)
	g.fields[0] = &e.Bounds.X
	g.fields[1] = &e.Bounds.Y
	g.fields[2] = &e.Bounds.Width
	g.fields[3] = &e.Bounds.Height
	return g
}

package threatscope

import (
	"time"

	"github.com/tanema/gween/ease"
)

const defaultElementCap = 64

// expandStart is the fraction of its final size an Expand element starts at.
const expandStart = 0.6

// Canvas is the retained in-memory Surface. It keeps drawn elements in draw
// order, animates FadeIn/Expand elements with tweens, and hands the element
// list to a renderer each frame.
type Canvas struct {
	elements []*Element
	byID     map[ElementID]*Element
	nextID   ElementID
	tweens   []*TweenGroup
	fadeIn   float32 // seconds
}

// NewCanvas creates an empty canvas. fadeIn is the duration of FadeIn and
// Expand animations; zero disables them.
func NewCanvas(fadeIn time.Duration) *Canvas {
	return &Canvas{
		elements: make([]*Element, 0, defaultElementCap),
		byID:     make(map[ElementID]*Element),
		fadeIn:   float32(fadeIn.Seconds()),
	}
}

// Draw implements Surface.
func (c *Canvas) Draw(e Element) (ElementID, error) {
	c.nextID++
	el := new(Element)
	*el = e
	el.ID = c.nextID
	el.disposed = false
	c.elements = append(c.elements, el)
	c.byID[el.ID] = el

	if c.fadeIn > 0 {
		if el.FadeIn {
			to := el.Alpha
			el.Alpha = 0
			c.tweens = append(c.tweens, TweenAlpha(el, to, c.fadeIn, ease.OutQuad))
		}
		if el.Expand {
			to := el.Bounds
			ctr := to.Center()
			el.Bounds = RectAround(ctr, to.Width/2*expandStart, to.Height/2*expandStart)
			c.tweens = append(c.tweens, TweenBounds(el, to, c.fadeIn, ease.OutCubic))
		}
	}
	return el.ID, nil
}

// SetFill implements Surface.
func (c *Canvas) SetFill(id ElementID, col Color) error {
	el, ok := c.byID[id]
	if !ok {
		return ErrNoElement
	}
	el.Fill = col
	return nil
}

// Remove implements Surface.
func (c *Canvas) Remove(id ElementID) error {
	el, ok := c.byID[id]
	if !ok {
		return ErrNoElement
	}
	c.dispose(el)
	c.compact()
	return nil
}

// RemoveTagged implements Surface.
func (c *Canvas) RemoveTagged(tag Tag) int {
	n := 0
	for _, el := range c.elements {
		if el.Tag == tag {
			c.dispose(el)
			n++
		}
	}
	if n > 0 {
		c.compact()
	}
	return n
}

// Clear removes every element.
func (c *Canvas) Clear() {
	for _, el := range c.elements {
		c.dispose(el)
	}
	c.compact()
}

func (c *Canvas) dispose(el *Element) {
	el.disposed = true
	delete(c.byID, el.ID)
}

// compact drops disposed elements, keeping draw order. Uses copy+nil to
// avoid retaining removed elements in the backing array.
func (c *Canvas) compact() {
	kept := c.elements[:0]
	for _, el := range c.elements {
		if !el.disposed {
			kept = append(kept, el)
		}
	}
	for i := len(kept); i < len(c.elements); i++ {
		c.elements[i] = nil
	}
	c.elements = kept
}

// Update advances running tweens by dt. Finished tweens, and tweens whose
// element was removed, are dropped.
func (c *Canvas) Update(dt time.Duration) {
	if len(c.tweens) == 0 {
		return
	}
	secs := float32(dt.Seconds())
	running := c.tweens[:0]
	for _, g := range c.tweens {
		g.Update(secs)
		if !g.Done {
			running = append(running, g)
		}
	}
	for i := len(running); i < len(c.tweens); i++ {
		c.tweens[i] = nil
	}
	c.tweens = running
}

// Elements returns the live elements in draw order. The returned slice MUST
// NOT be mutated by the caller.
func (c *Canvas) Elements() []*Element {
	return c.elements
}

// Element returns the element with the given ID, or nil.
func (c *Canvas) Element(id ElementID) *Element {
	return c.byID[id]
}

// Len returns the number of live elements.
func (c *Canvas) Len() int {
	return len(c.elements)
}

// CountTagged returns how many live elements carry tag.
func (c *Canvas) CountTagged(tag Tag) int {
	n := 0
	for _, el := range c.elements {
		if el.Tag == tag {
			n++
		}
	}
	return n
}

// Animating reports whether any tween is still running.
func (c *Canvas) Animating() bool {
	return len(c.tweens) > 0
}

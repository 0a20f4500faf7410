package threatscope

// Shape selects how a rendering surface draws an Element.
type Shape uint8

const (
	ShapeOval Shape = iota // ellipse filling Bounds
	ShapeRect              // rectangle filling Bounds
	ShapeLine              // segment From→To
	ShapeText              // text centered in Bounds
)

// Tag classifies drawn elements so that groups of them can be removed
// together (for example every attack line once protection engages).
type Tag uint8

const (
	TagSource     Tag = iota // threat origin with its label
	TagAttackLine            // arrow from source to a target
	TagTarget                // impacted component with its label
	TagShield                // protection box at the threat origin
	TagPerimeter             // concentric blocking outlines
	TagMessage               // success banner
)

var tagNames = [...]string{"source", "attack-line", "target", "shield", "perimeter", "message"}

func (t Tag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "tag?"
}

// ElementID identifies an element drawn on a Surface. Zero is never issued.
type ElementID uint32

// Element is a single draw instruction: shape, position, colors and optional
// text. One flat struct is used for every shape.
type Element struct {
	ID    ElementID
	Shape Shape
	Tag   Tag

	// Geometry. Bounds is used by ovals, rects and text; From/To by lines.
	Bounds   Rect
	From, To Vec2

	// Style
	Fill         Color
	Outline      Color
	OutlineWidth float64
	Dashed       bool
	Arrow        bool

	// Text drawn centered in Bounds (or at the line midpoint). May contain
	// newlines.
	Text      string
	TextColor Color
	TextSize  float64

	// Alpha multiplies every color at draw time. FadeIn asks the surface to
	// animate Alpha from 0 when the element is first drawn; Expand asks it to
	// grow Bounds outward from the center.
	Alpha  float64
	FadeIn bool
	Expand bool

	disposed bool
}

// Oval returns a filled ellipse element of the given radius centered on p.
func Oval(tag Tag, p Vec2, radius float64, fill, outline Color) Element {
	return Element{
		Shape:        ShapeOval,
		Tag:          tag,
		Bounds:       RectAround(p, radius, radius),
		Fill:         fill,
		Outline:      outline,
		OutlineWidth: 3,
		TextColor:    ColorWhite,
		Alpha:        1,
	}
}

// Box returns a rectangle element with the given half extents centered on p.
func Box(tag Tag, p Vec2, halfW, halfH float64, fill, outline Color) Element {
	return Element{
		Shape:        ShapeRect,
		Tag:          tag,
		Bounds:       RectAround(p, halfW, halfH),
		Fill:         fill,
		Outline:      outline,
		OutlineWidth: 3,
		TextColor:    ColorWhite,
		Alpha:        1,
	}
}

// Line returns a line element from a to b.
func Line(tag Tag, a, b Vec2, stroke Color, width float64) Element {
	return Element{
		Shape:        ShapeLine,
		Tag:          tag,
		From:         a,
		To:           b,
		Outline:      stroke,
		OutlineWidth: width,
		Alpha:        1,
	}
}

// Label returns a free-standing text element centered on p.
func Label(tag Tag, p Vec2, text string, c Color, size float64) Element {
	return Element{
		Shape:     ShapeText,
		Tag:       tag,
		Bounds:    Rect{X: p.X, Y: p.Y},
		Text:      text,
		TextColor: c,
		TextSize:  size,
		Alpha:     1,
	}
}

// WithText returns e with centered text set.
func (e Element) WithText(text string, size float64) Element {
	e.Text = text
	e.TextSize = size
	return e
}

// Center returns the anchor point of the element.
func (e *Element) Center() Vec2 {
	if e.Shape == ShapeLine {
		return Vec2{X: (e.From.X + e.To.X) / 2, Y: (e.From.Y + e.To.Y) / 2}
	}
	return e.Bounds.Center()
}

// IsRemoved reports whether the element has been removed from its surface.
func (e *Element) IsRemoved() bool {
	return e.disposed
}

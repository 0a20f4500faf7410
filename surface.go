package threatscope

import "errors"

// ErrNoElement is returned by a Surface when an instruction targets an
// element that does not exist (never drawn, or already removed).
var ErrNoElement = errors.New("threatscope: no such element")

// Surface consumes draw instructions. The engine never inspects pixels; it
// only issues commands and remembers the IDs it was given.
type Surface interface {
	// Draw adds e and returns the ID assigned to it.
	Draw(e Element) (ElementID, error)
	// SetFill changes the fill color of a drawn element.
	SetFill(id ElementID, c Color) error
	// Remove deletes a drawn element.
	Remove(id ElementID) error
	// RemoveTagged deletes every element carrying tag and returns the count.
	RemoveTagged(tag Tag) int
}

// discardSurface accepts every instruction and keeps nothing. Used when an
// Engine is created without a surface.
type discardSurface struct {
	next ElementID
}

func (d *discardSurface) Draw(Element) (ElementID, error) {
	d.next++
	return d.next, nil
}

func (d *discardSurface) SetFill(ElementID, Color) error { return nil }
func (d *discardSurface) Remove(ElementID) error         { return nil }
func (d *discardSurface) RemoveTagged(Tag) int           { return 0 }

package threatscope

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateCard is returned when a card ID is registered twice in the
// same category.
var ErrDuplicateCard = errors.New("threatscope: duplicate card")

// Category is a content tab holding expandable cards. Card IDs are unique
// only within a category.
type Category uint8

const (
	CategoryMeasures     Category = iota // organizational and technical measures
	CategoryTechnical                    // technical means (products)
	CategoryRequirements                 // software and hardware requirements
	CategoryThreats                      // threat catalog
	numCategories
)

var categoryNames = [...]string{"measures", "technical", "requirements", "threats"}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "category?"
}

// ParseCategory maps a category name ("measures", "technical",
// "requirements", "threats") back to its Category.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if name == s {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("parse category %q: unknown", s)
}

// Categories returns every category in tab order.
func Categories() []Category {
	return []Category{CategoryMeasures, CategoryTechnical, CategoryRequirements, CategoryThreats}
}

// Card is the static content of one expandable card.
type Card struct {
	ID      string
	Title   string
	Badge   string // priority or group label, optional
	Accent  Color
	Summary []string
	Details []string
}

// LineKind classifies a detail line for rendering.
type LineKind uint8

const (
	LineSpacer    LineKind = iota // blank line
	LineHeading                   // section heading (contains a colon)
	LineBullet                    // "  •" item
	LineSubBullet                 // "  -" or "    -" item
	LineText                      // anything else
)

// DetailLine is one rendered line of an expanded card.
type DetailLine struct {
	Kind LineKind
	Text string
}

// ClassifyLine returns how a raw detail string is rendered. Bullet markers
// take precedence over the heading colon rule.
func ClassifyLine(s string) LineKind {
	switch {
	case strings.TrimSpace(s) == "":
		return LineSpacer
	case strings.HasPrefix(s, "  •"):
		return LineBullet
	case strings.HasPrefix(s, "    -"), strings.HasPrefix(s, "  -"):
		return LineSubBullet
	case strings.Contains(s, ":"):
		return LineHeading
	default:
		return LineText
	}
}

// BuildDetail builds the expanded content of card. It is a pure function of
// the card data, so rebuilding always yields identical output.
func BuildDetail(card Card) []DetailLine {
	lines := make([]DetailLine, len(card.Details))
	for i, s := range card.Details {
		kind := ClassifyLine(s)
		text := strings.TrimSpace(s)
		if kind == LineSpacer {
			text = ""
		}
		lines[i] = DetailLine{Kind: kind, Text: text}
	}
	return lines
}

// DetailView is the rendering collaborator of one card. Show inserts the
// detail content directly below the card's summary, replacing previous
// content; Hide takes it out of the layout without destroying the card.
type DetailView interface {
	Show(lines []DetailLine)
	Hide()
}

// PanelEvent reports a card toggle.
type PanelEvent struct {
	Category Category
	CardID   string
	Expanded bool
}

type panelState struct {
	card     Card
	expanded bool
	view     DetailView
}

// Registry tracks the expanded state of the cards of one category.
type Registry struct {
	category Category
	panels   map[string]*panelState
	order    []string
	sink     EventSink
}

// NewRegistry creates an empty registry for category.
func NewRegistry(category Category) *Registry {
	return &Registry{
		category: category,
		panels:   make(map[string]*panelState),
	}
}

// Category returns the category this registry serves.
func (r *Registry) Category() Category {
	return r.category
}

// Add registers card collapsed. view may be nil when nothing renders the
// card (tests, headless use).
func (r *Registry) Add(card Card, view DetailView) error {
	if card.ID == "" {
		return fmt.Errorf("add %s card %q: empty id", r.category, card.Title)
	}
	if _, ok := r.panels[card.ID]; ok {
		return fmt.Errorf("add %s card %q: %w", r.category, card.ID, ErrDuplicateCard)
	}
	r.panels[card.ID] = &panelState{card: card, view: view}
	r.order = append(r.order, card.ID)
	return nil
}

// SetView attaches or replaces the rendering collaborator of a card.
func (r *Registry) SetView(id string, view DetailView) bool {
	p, ok := r.panels[id]
	if !ok {
		return false
	}
	p.view = view
	return true
}

// Toggle flips the card between collapsed and expanded and returns the new
// state. Expanding rebuilds the detail content from the card data. Unknown
// ids are ignored and report false.
func (r *Registry) Toggle(id string) bool {
	p, ok := r.panels[id]
	if !ok {
		debugf("toggle: unknown %s card %q ignored", r.category, id)
		return false
	}
	if p.expanded {
		if p.view != nil {
			p.view.Hide()
		}
		p.expanded = false
	} else {
		if p.view != nil {
			p.view.Show(BuildDetail(p.card))
		}
		p.expanded = true
	}
	if r.sink != nil {
		r.sink.EmitPanel(PanelEvent{Category: r.category, CardID: id, Expanded: p.expanded})
	}
	return p.expanded
}

// Expanded reports whether the card is expanded. Unknown ids report false.
func (r *Registry) Expanded(id string) bool {
	p, ok := r.panels[id]
	return ok && p.expanded
}

// Card returns the static content of a card.
func (r *Registry) Card(id string) (Card, bool) {
	p, ok := r.panels[id]
	if !ok {
		return Card{}, false
	}
	return p.card, true
}

// IDs returns the card IDs in registration order. The returned slice MUST
// NOT be mutated.
func (r *Registry) IDs() []string {
	return r.order
}

// Len returns the number of registered cards.
func (r *Registry) Len() int {
	return len(r.order)
}

// Panels holds the four independent registries, one per Category.
type Panels struct {
	registries [numCategories]*Registry
}

// NewPanels creates empty registries for every category.
func NewPanels() *Panels {
	p := &Panels{}
	for i := range p.registries {
		p.registries[i] = NewRegistry(Category(i))
	}
	return p
}

// Registry returns the registry for c. Panics on an out-of-range category.
func (p *Panels) Registry(c Category) *Registry {
	if c >= numCategories {
		panic("threatscope: category out of range")
	}
	return p.registries[c]
}

// Toggle flips a card in category c. See Registry.Toggle.
func (p *Panels) Toggle(c Category, id string) bool {
	return p.Registry(c).Toggle(id)
}

// Expanded reports whether a card in category c is expanded.
func (p *Panels) Expanded(c Category, id string) bool {
	return p.Registry(c).Expanded(id)
}

// SetEventSink forwards toggles of every registry to sink.
func (p *Panels) SetEventSink(sink EventSink) {
	for _, r := range p.registries {
		r.sink = sink
	}
}

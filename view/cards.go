package view

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/threatscope"
)

// Card list metrics, in screen pixels.
const (
	cardPad       = 16.0
	cardGap       = 14.0
	headerH       = 44.0
	summaryLineH  = 22.0
	toggleW       = 64.0
	toggleH       = 28.0
	closeW        = 120.0
	detailIndent  = 30.0
	subIndent     = 50.0
	spacerH       = 10.0
	detailLineH   = 20.0
	headingLineH  = 26.0
	titleSize     = 18.0
	summarySize   = 15.0
	detailSize    = 14.0
	scrollStep    = 40.0
	collapseLabel = "Свернуть"
)

var (
	colorCardBg    = threatscope.MustHex("#34495e")
	colorDetailBg  = threatscope.MustHex("#2c3e50")
	colorBody      = threatscope.MustHex("#ecf0f1")
	colorBullet    = threatscope.MustHex("#bdc3c7")
	colorSubBullet = threatscope.MustHex("#95a5a6")
	colorHeading   = threatscope.MustHex("#2ecc71")
	colorCollapse  = threatscope.MustHex("#e74c3c")
)

// CardView is the DetailView of one card: it stores the lines handed to
// Show and whether they are part of the layout.
type CardView struct {
	lines   []threatscope.DetailLine
	visible bool
}

// Show replaces the detail content and inserts it into the layout.
func (v *CardView) Show(lines []threatscope.DetailLine) {
	v.lines = lines
	v.visible = true
}

// Hide takes the detail content out of the layout. The lines are kept until
// the next Show replaces them.
func (v *CardView) Hide() {
	v.visible = false
}

// Visible reports whether the detail content is laid out.
func (v *CardView) Visible() bool {
	return v.visible
}

// Lines returns the last content passed to Show.
func (v *CardView) Lines() []threatscope.DetailLine {
	return v.lines
}

// ListItem is the summary part of a card.
type ListItem struct {
	ID      string
	Title   string
	Badge   string
	Accent  threatscope.Color
	Summary []string
}

type blockKind uint8

const (
	blockCard blockKind = iota
	blockTitle
	blockSummary
	blockToggle
	blockDetailBg
	blockDetail
	blockCollapse
)

type block struct {
	kind     blockKind
	itemID   string
	rect     threatscope.Rect // list coordinates, before scrolling
	text     string
	badge    string
	lineKind threatscope.LineKind
	accent   threatscope.Color
}

// CardList lays out and draws a vertical list of cards. Lists backed by a
// Registry get toggle buttons that call Registry.Toggle with the card id;
// static lists (regulations, tasks) have none.
type CardList struct {
	registry *threatscope.Registry
	items    []ListItem
	views    map[string]*CardView

	scroll  float64
	content float64
	hits    []hit
}

type hit struct {
	rect threatscope.Rect // screen coordinates
	id   string
}

// NewCardList creates an expandable list over reg. Cards are added with
// AddCard.
func NewCardList(reg *threatscope.Registry) *CardList {
	return &CardList{registry: reg, views: make(map[string]*CardView)}
}

// NewStaticList creates a list without toggles.
func NewStaticList(items []ListItem) *CardList {
	return &CardList{items: items, views: make(map[string]*CardView)}
}

// AddCard appends the summary of card and returns the view that renders its
// details. Suitable as the viewFor callback of content.Register.
func (l *CardList) AddCard(card threatscope.Card) threatscope.DetailView {
	l.items = append(l.items, ListItem{
		ID:      card.ID,
		Title:   card.Title,
		Badge:   card.Badge,
		Accent:  card.Accent,
		Summary: card.Summary,
	})
	v := &CardView{}
	l.views[card.ID] = v
	return v
}

// View returns the detail view of a card, or nil.
func (l *CardList) View(id string) *CardView {
	return l.views[id]
}

// layout positions every block for a list of the given width.
func (l *CardList) layout(fonts *Fonts, width float64) ([]block, float64) {
	var blocks []block
	inner := width - 2*cardPad
	summaryFace := fonts.Face(summarySize)
	detailFace := fonts.Face(detailSize)
	y := 0.0

	for _, it := range l.items {
		top := y
		cardIndex := len(blocks)
		blocks = append(blocks, block{kind: blockCard, itemID: it.ID})
		blocks = append(blocks, block{kind: blockTitle, itemID: it.ID, text: it.Title, badge: it.Badge, accent: it.Accent,
			rect: threatscope.Rect{X: 0, Y: y, Width: width, Height: headerH}})
		y += headerH + cardPad/2

		for _, s := range it.Summary {
			for _, line := range Wrap(s, summaryFace, inner) {
				blocks = append(blocks, block{kind: blockSummary, itemID: it.ID, text: line,
					rect: threatscope.Rect{X: cardPad, Y: y, Width: inner, Height: summaryLineH}})
				y += summaryLineH
			}
		}

		if l.registry != nil {
			label := "▼"
			if l.registry.Expanded(it.ID) {
				label = "▲"
			}
			y += cardPad / 2
			blocks = append(blocks, block{kind: blockToggle, itemID: it.ID, text: label, accent: it.Accent,
				rect: threatscope.Rect{X: width - cardPad - toggleW, Y: y, Width: toggleW, Height: toggleH}})
			y += toggleH
		}
		y += cardPad
		blocks[cardIndex].rect = threatscope.Rect{X: 0, Y: top, Width: width, Height: y - top}

		if v := l.views[it.ID]; v != nil && v.Visible() {
			detailTop := y
			bgIndex := len(blocks)
			blocks = append(blocks, block{kind: blockDetailBg, itemID: it.ID})
			y += cardPad
			for _, dl := range v.Lines() {
				indent, lineH := detailMetrics(dl.Kind)
				if dl.Kind == threatscope.LineSpacer {
					y += spacerH
					continue
				}
				for _, line := range Wrap(dl.Text, detailFace, inner-indent) {
					blocks = append(blocks, block{kind: blockDetail, itemID: it.ID, text: line, lineKind: dl.Kind,
						rect: threatscope.Rect{X: cardPad + indent, Y: y, Width: inner - indent, Height: lineH}})
					y += lineH
				}
			}
			y += cardPad / 2
			blocks = append(blocks, block{kind: blockCollapse, itemID: it.ID, text: collapseLabel,
				rect: threatscope.Rect{X: width - cardPad - closeW, Y: y, Width: closeW, Height: toggleH}})
			y += toggleH + cardPad
			blocks[bgIndex].rect = threatscope.Rect{X: 0, Y: detailTop, Width: width, Height: y - detailTop}
		}
		y += cardGap
	}
	return blocks, y
}

func detailMetrics(k threatscope.LineKind) (indent, lineH float64) {
	switch k {
	case threatscope.LineHeading:
		return 0, headingLineH
	case threatscope.LineBullet:
		return detailIndent, detailLineH
	case threatscope.LineSubBullet:
		return subIndent, detailLineH
	default:
		return 0, detailLineH
	}
}

func detailStyle(k threatscope.LineKind) threatscope.Color {
	switch k {
	case threatscope.LineHeading:
		return colorHeading
	case threatscope.LineBullet:
		return colorBullet
	case threatscope.LineSubBullet:
		return colorSubBullet
	default:
		return colorBody
	}
}

// Draw lays the list out in area and draws the visible part. Toggle hit
// areas are recorded for Click.
func (l *CardList) Draw(dst *ebiten.Image, fonts *Fonts, area threatscope.Rect) {
	blocks, total := l.layout(fonts, area.Width)
	l.content = total
	l.clampScroll(area.Height)
	l.hits = l.hits[:0]

	clip := dst.SubImage(rectImage(area)).(*ebiten.Image)
	offY := area.Y - l.scroll
	for _, b := range blocks {
		r := b.rect
		r.X += area.X
		r.Y += offY
		if r.Y > area.Y+area.Height || r.Y+r.Height < area.Y {
			continue
		}
		switch b.kind {
		case blockCard:
			fillRect(clip, r, colorCardBg)
		case blockTitle:
			fillRect(clip, r, b.accent)
			drawText(clip, b.text, fonts.BoldFace(titleSize), r.X+cardPad, r.Y+(headerH-titleSize)/2, colorText)
			if b.badge != "" {
				face := fonts.Face(12)
				w, _ := text.Measure(b.badge, face, 0)
				drawText(clip, b.badge, face, r.X+r.Width-cardPad-w, r.Y+4, colorText)
			}
		case blockSummary:
			drawText(clip, b.text, fonts.Face(summarySize), r.X, r.Y, colorBody)
		case blockToggle:
			fillRect(clip, r, b.accent)
			c := r.Center()
			drawCenteredText(clip, b.text, fonts.BoldFace(14), c.X, c.Y, colorText)
			l.hits = append(l.hits, hit{rect: r, id: b.itemID})
		case blockDetailBg:
			fillRect(clip, r, colorDetailBg)
		case blockDetail:
			face := fonts.Face(detailSize)
			if b.lineKind == threatscope.LineHeading {
				face = fonts.BoldFace(detailSize + 1)
			}
			drawText(clip, b.text, face, r.X, r.Y, detailStyle(b.lineKind))
		case blockCollapse:
			fillRect(clip, r, colorCollapse)
			c := r.Center()
			drawCenteredText(clip, b.text, fonts.BoldFace(13), c.X, c.Y, colorText)
			l.hits = append(l.hits, hit{rect: r, id: b.itemID})
		}
	}
}

// Click toggles the card whose toggle or collapse button contains (x, y),
// using the hit areas from the last Draw. It reports whether a card was hit.
func (l *CardList) Click(x, y float64) bool {
	if l.registry == nil {
		return false
	}
	for _, h := range l.hits {
		if h.rect.Contains(x, y) {
			l.registry.Toggle(h.id)
			return true
		}
	}
	return false
}

// ScrollBy scrolls by wheel notches (positive scrolls up, like ebiten.Wheel).
func (l *CardList) ScrollBy(notches float64) {
	l.scroll -= notches * scrollStep
	if l.scroll < 0 {
		l.scroll = 0
	}
}

// Scroll returns the current scroll offset in pixels.
func (l *CardList) Scroll() float64 {
	return l.scroll
}

func (l *CardList) clampScroll(viewH float64) {
	maxScroll := l.content - viewH
	if maxScroll < 0 {
		maxScroll = 0
	}
	if l.scroll > maxScroll {
		l.scroll = maxScroll
	}
}

func fillRect(dst *ebiten.Image, r threatscope.Rect, c threatscope.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), c.RGBA(), true)
}

func rectImage(r threatscope.Rect) image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X+r.Width), int(r.Y+r.Height))
}

// Package content holds the static reference material shown by the viewer:
// the card decks of the four expandable tabs, the regulation listing and the
// case tasks. The data is embedded JSON and is only ever read.
package content

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/phanxgames/threatscope"
)

//go:embed data/*.json
var data embed.FS

var deckFiles = map[threatscope.Category]string{
	threatscope.CategoryMeasures:     "data/measures.json",
	threatscope.CategoryTechnical:    "data/technical.json",
	threatscope.CategoryRequirements: "data/requirements.json",
	threatscope.CategoryThreats:      "data/threats.json",
}

type cardJSON struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Badge   string   `json:"badge"`
	Accent  string   `json:"accent"`
	Summary []string `json:"summary"`
	Details []string `json:"details"`
}

// Regulation is one entry of the regulations tab.
type Regulation struct {
	Title     string `json:"title"`
	Kind      string `json:"kind"`
	KindColor string `json:"kind_color"`
	AdoptedBy string `json:"adopted_by"`
	Date      string `json:"date"`
	Summary   string `json:"summary"`
}

// Task is one case assignment.
type Task struct {
	Number int      `json:"number"`
	Title  string   `json:"title"`
	Lines  []string `json:"lines"`
}

// Cards returns the deck of category c in display order.
func Cards(c threatscope.Category) ([]threatscope.Card, error) {
	name, ok := deckFiles[c]
	if !ok {
		return nil, fmt.Errorf("load %s cards: no deck", c)
	}
	raw, err := data.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("load %s cards: %w", c, err)
	}
	var deck struct {
		Cards []cardJSON `json:"cards"`
	}
	if err := json.Unmarshal(raw, &deck); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	cards := make([]threatscope.Card, len(deck.Cards))
	for i, cj := range deck.Cards {
		accent, err := threatscope.ParseHex(cj.Accent)
		if err != nil {
			return nil, fmt.Errorf("parse %s card %q: %w", name, cj.ID, err)
		}
		cards[i] = threatscope.Card{
			ID:      cj.ID,
			Title:   cj.Title,
			Badge:   cj.Badge,
			Accent:  accent,
			Summary: cj.Summary,
			Details: cj.Details,
		}
	}
	return cards, nil
}

// Register loads every deck into panels. viewFor is called once per card to
// obtain its rendering collaborator and may return nil.
func Register(panels *threatscope.Panels, viewFor func(threatscope.Category, threatscope.Card) threatscope.DetailView) error {
	for _, c := range threatscope.Categories() {
		cards, err := Cards(c)
		if err != nil {
			return err
		}
		reg := panels.Registry(c)
		for _, card := range cards {
			var view threatscope.DetailView
			if viewFor != nil {
				view = viewFor(c, card)
			}
			if err := reg.Add(card, view); err != nil {
				return err
			}
		}
	}
	return nil
}

// Regulations returns the regulation listing.
func Regulations() ([]Regulation, error) {
	raw, err := data.ReadFile("data/regulations.json")
	if err != nil {
		return nil, fmt.Errorf("load regulations: %w", err)
	}
	var doc struct {
		Regulations []Regulation `json:"regulations"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse regulations: %w", err)
	}
	return doc.Regulations, nil
}

// Tasks returns the case assignments.
func Tasks() ([]Task, error) {
	raw, err := data.ReadFile("data/tasks.json")
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	var doc struct {
		Tasks []Task `json:"tasks"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	return doc.Tasks, nil
}

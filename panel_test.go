package threatscope

import (
	"errors"
	"reflect"
	"testing"
)

type stubView struct {
	shown  int
	hidden int
	lines  []DetailLine
}

func (v *stubView) Show(lines []DetailLine) { v.shown++; v.lines = lines }
func (v *stubView) Hide()                   { v.hidden++ }

func sampleCard(id string) Card {
	return Card{
		ID:      id,
		Title:   "Card " + id,
		Summary: []string{"summary"},
		Details: []string{
			"Назначение:",
			"  • first item",
			"    - nested item",
			"",
			"plain text",
		},
	}
}

func TestRegistryToggleInvolution(t *testing.T) {
	r := NewRegistry(CategoryMeasures)
	v := &stubView{}
	if err := r.Add(sampleCard("org_1"), v); err != nil {
		t.Fatal(err)
	}

	if r.Expanded("org_1") {
		t.Fatal("card should start collapsed")
	}
	if !r.Toggle("org_1") {
		t.Error("first Toggle = false, want expanded")
	}
	if r.Toggle("org_1") {
		t.Error("second Toggle = true, want collapsed")
	}
	if r.Expanded("org_1") {
		t.Error("two toggles should restore the collapsed state")
	}
	if v.shown != 1 || v.hidden != 1 {
		t.Errorf("view shown=%d hidden=%d, want 1/1", v.shown, v.hidden)
	}
}

func TestRegistryRebuildIsIdentical(t *testing.T) {
	r := NewRegistry(CategoryThreats)
	v := &stubView{}
	r.Add(sampleCard("threat_1"), v)

	r.Toggle("threat_1")
	first := v.lines
	r.Toggle("threat_1")
	r.Toggle("threat_1")

	if v.shown != 2 {
		t.Fatalf("shown = %d, want 2", v.shown)
	}
	if !reflect.DeepEqual(first, v.lines) {
		t.Errorf("rebuilt detail differs:\n%v\n%v", first, v.lines)
	}
}

func TestRegistryUnknownToggle(t *testing.T) {
	r := NewRegistry(CategoryTechnical)
	sink := &recordingSink{}
	r.sink = sink
	if r.Toggle("missing") {
		t.Error("Toggle(unknown) = true")
	}
	if len(sink.panel) != 0 {
		t.Errorf("events = %d, want 0", len(sink.panel))
	}
}

func TestRegistryAddErrors(t *testing.T) {
	r := NewRegistry(CategoryRequirements)
	if err := r.Add(Card{Title: "no id"}, nil); err == nil {
		t.Error("expected error for empty id")
	}
	if err := r.Add(sampleCard("req_1"), nil); err != nil {
		t.Fatal(err)
	}
	err := r.Add(sampleCard("req_1"), nil)
	if !errors.Is(err, ErrDuplicateCard) {
		t.Errorf("duplicate Add err = %v, want ErrDuplicateCard", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestRegistryNilViewToggles(t *testing.T) {
	r := NewRegistry(CategoryMeasures)
	r.Add(sampleCard("a"), nil)
	if !r.Toggle("a") {
		t.Error("Toggle without a view should still expand")
	}
	v := &stubView{}
	if !r.SetView("a", v) {
		t.Fatal("SetView = false")
	}
	r.Toggle("a")
	if v.hidden != 1 {
		t.Errorf("hidden = %d, want 1", v.hidden)
	}
	if r.SetView("b", v) {
		t.Error("SetView(unknown) = true")
	}
}

func TestPanelsCategoriesIndependent(t *testing.T) {
	p := NewPanels()
	for _, c := range Categories() {
		if err := p.Registry(c).Add(sampleCard("shared"), nil); err != nil {
			t.Fatalf("%s: %v", c, err)
		}
	}

	p.Toggle(CategoryThreats, "shared")

	for _, c := range Categories() {
		want := c == CategoryThreats
		if got := p.Expanded(c, "shared"); got != want {
			t.Errorf("%s expanded = %t, want %t", c, got, want)
		}
	}
}

func TestPanelsEventSink(t *testing.T) {
	p := NewPanels()
	sink := &recordingSink{}
	p.SetEventSink(sink)
	p.Registry(CategoryMeasures).Add(sampleCard("m"), nil)

	p.Toggle(CategoryMeasures, "m")
	p.Toggle(CategoryMeasures, "m")

	want := []PanelEvent{
		{Category: CategoryMeasures, CardID: "m", Expanded: true},
		{Category: CategoryMeasures, CardID: "m", Expanded: false},
	}
	if !reflect.DeepEqual(sink.panel, want) {
		t.Errorf("events = %+v, want %+v", sink.panel, want)
	}
}

func TestPanelsRegistryOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid category")
		}
	}()
	NewPanels().Registry(Category(42))
}

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		in   string
		want LineKind
	}{
		{"", LineSpacer},
		{"   ", LineSpacer},
		{"  • Межсетевой экран", LineBullet},
		{"  • Порты: 5060", LineBullet},
		{"    - SIP-транк", LineSubBullet},
		{"Основные компоненты:", LineHeading},
		{"Обычная строка", LineText},
	}
	for _, tt := range tests {
		if got := ClassifyLine(tt.in); got != tt.want {
			t.Errorf("ClassifyLine(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestBuildDetailTrims(t *testing.T) {
	lines := BuildDetail(sampleCard("x"))
	want := []DetailLine{
		{LineHeading, "Назначение:"},
		{LineBullet, "• first item"},
		{LineSubBullet, "- nested item"},
		{LineSpacer, ""},
		{LineText, "plain text"},
	}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("BuildDetail = %+v, want %+v", lines, want)
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(c.String())
		if err != nil || got != c {
			t.Errorf("ParseCategory(%q) = %v, %v", c.String(), got, err)
		}
	}
	if _, err := ParseCategory("weather"); err == nil {
		t.Error("expected error for unknown category")
	}
}

// VoIPGuide is the VoIP security reference viewer: an attack scenario panel
// over the network diagram, four expandable card decks, the regulation list
// and the case tasks.
//
// Flags:
//
//	-diagram voip_scheme.png   background diagram image (optional)
//	-script walkthrough.json   play a scripted walkthrough with screenshots
//	-ecs                       log scenario and panel events through a Donburi world
//
// F11 toggles fullscreen, Escape leaves it.
package main

import (
	"flag"
	"fmt"
	_ "image/png"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/threatscope"
	"github.com/phanxgames/threatscope/content"
	"github.com/phanxgames/threatscope/ecs"
	"github.com/phanxgames/threatscope/view"
)

const (
	windowTitle = "Информационная безопасность VoIP-телефонии"
	screenW     = 1400
	screenH     = 900
	tps         = 60
	tabH        = 44.0
	buttonBarH  = 56.0
	diagramW    = 1280
	diagramH    = 720
)

var (
	colorBackground = threatscope.MustHex("#2c3e50")
	colorTabBar     = threatscope.MustHex("#1a252f")
	colorTab        = threatscope.MustHex("#34495e")
	colorTabActive  = threatscope.MustHex("#3498db")
	colorProtect    = threatscope.MustHex("#27ae60")
	colorReset      = threatscope.MustHex("#7f8c8d")
	colorDiagramBg  = threatscope.MustHex("#ecf0f1")
)

type tab struct {
	title string
	list  *view.CardList // nil for the architecture tab
}

type game struct {
	fonts   *view.Fonts
	canvas  *threatscope.Canvas
	engine  *threatscope.Engine
	panels  *threatscope.Panels
	diagram *ebiten.Image
	world   donburi.World
	runner  *threatscope.Runner
	shooter *view.Shooter
	tick    time.Duration

	tabs    []tab
	tabBtns []*view.Button
	current int
	threats []*view.Button
	protect *view.Button
	reset   *view.Button

	w, h   int
	hover  *view.Button
	mx, my float64
}

func main() {
	diagramPath := flag.String("diagram", "voip_scheme.png", "background diagram image")
	scriptPath := flag.String("script", "", "JSON walkthrough script")
	useECS := flag.Bool("ecs", false, "log events through a Donburi world")
	flag.Parse()

	cfg, err := threatscope.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	threatscope.SetDebugMode(cfg.Debug)

	g, err := newGame(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if img, _, err := ebitenutil.NewImageFromFile(*diagramPath); err == nil {
		g.diagram = img
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[threatscope] diagram %s not loaded: %v\n", *diagramPath, err)
	}

	if *useECS {
		g.attachWorld()
	}

	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			log.Fatalf("read script: %v", err)
		}
		g.runner, err = threatscope.LoadScript(data)
		if err != nil {
			log.Fatal(err)
		}
		g.runner.Attach(g.engine, g.panels, g.shooter)
	}

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func newGame(cfg threatscope.Config) (*game, error) {
	fonts, err := view.LoadFonts()
	if err != nil {
		return nil, err
	}
	canvas := threatscope.NewCanvas(cfg.FadeIn)
	g := &game{
		fonts:   fonts,
		canvas:  canvas,
		engine:  threatscope.NewEngine(canvas, cfg.Timing),
		panels:  threatscope.NewPanels(),
		shooter: view.NewShooter(cfg.ScreenshotDir),
		tick:    time.Second / tps,
		w:       screenW,
		h:       screenH,
	}

	lists := make(map[threatscope.Category]*view.CardList)
	for _, c := range threatscope.Categories() {
		lists[c] = view.NewCardList(g.panels.Registry(c))
	}
	err = content.Register(g.panels, func(c threatscope.Category, card threatscope.Card) threatscope.DetailView {
		return lists[c].AddCard(card)
	})
	if err != nil {
		return nil, err
	}
	tasks, err := taskList()
	if err != nil {
		return nil, err
	}
	regs, err := regulationList()
	if err != nil {
		return nil, err
	}

	g.tabs = []tab{
		{title: "Архитектура"},
		{title: "Задания", list: tasks},
		{title: "Угрозы", list: lists[threatscope.CategoryThreats]},
		{title: "Меры", list: lists[threatscope.CategoryMeasures]},
		{title: "Технические средства", list: lists[threatscope.CategoryTechnical]},
		{title: "Требования", list: lists[threatscope.CategoryRequirements]},
		{title: "НПА", list: regs},
	}
	for i, t := range g.tabs {
		g.tabBtns = append(g.tabBtns, &view.Button{ID: fmt.Sprint(i), Label: t.title, Color: colorTab, TextSize: 14})
	}
	for _, def := range threatscope.Scenarios() {
		g.threats = append(g.threats, &view.Button{
			ID:       string(def.ID),
			Label:    def.Label,
			Tooltip:  def.Tooltip,
			Color:    def.ButtonColor,
			TextSize: 13,
		})
	}
	g.protect = &view.Button{ID: "protect", Label: "Активировать защиту", Color: colorProtect, TextSize: 13}
	g.reset = &view.Button{ID: "reset", Label: "Сброс", Color: colorReset, TextSize: 13}
	g.layoutButtons()
	return g, nil
}

func taskList() (*view.CardList, error) {
	tasks, err := content.Tasks()
	if err != nil {
		return nil, err
	}
	items := make([]view.ListItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, view.ListItem{
			ID:      fmt.Sprintf("task_%d", t.Number),
			Title:   fmt.Sprintf("Задание %d. %s", t.Number, t.Title),
			Accent:  colorTabActive,
			Summary: t.Lines,
		})
	}
	return view.NewStaticList(items), nil
}

func regulationList() (*view.CardList, error) {
	regs, err := content.Regulations()
	if err != nil {
		return nil, err
	}
	items := make([]view.ListItem, 0, len(regs))
	for i, r := range regs {
		accent, err := threatscope.ParseHex(r.KindColor)
		if err != nil {
			return nil, fmt.Errorf("regulation %d: %w", i, err)
		}
		items = append(items, view.ListItem{
			ID:     fmt.Sprintf("reg_%d", i),
			Title:  r.Title,
			Badge:  r.Kind,
			Accent: accent,
			Summary: []string{
				fmt.Sprintf("Принят: %s, %s", r.AdoptedBy, r.Date),
				r.Summary,
			},
		})
	}
	return view.NewStaticList(items), nil
}

// attachWorld routes engine and panel events into a Donburi world and logs
// them when the world processes its queue.
func (g *game) attachWorld() {
	g.world = donburi.NewWorld()
	sink := ecs.NewDonburiSink(g.world)
	g.engine.SetEventSink(sink)
	g.panels.SetEventSink(sink)

	ecs.ScenarioEventType.Subscribe(g.world, func(_ donburi.World, ev threatscope.ScenarioEvent) {
		log.Printf("scenario %s: %s -> %s at %s", ev.Threat, ev.From, ev.To, ev.At)
	})
	ecs.PanelEventType.Subscribe(g.world, func(_ donburi.World, ev threatscope.PanelEvent) {
		log.Printf("panel %s/%s expanded=%t", ev.Category, ev.CardID, ev.Expanded)
	})
}

func (g *game) layoutButtons() {
	tabW := float64(g.w) / float64(len(g.tabBtns))
	for i, b := range g.tabBtns {
		b.Bounds = threatscope.Rect{X: float64(i) * tabW, Y: 0, Width: tabW - 2, Height: tabH}
	}
	x := 10.0
	y := tabH + 8
	for _, b := range g.threats {
		b.Bounds = threatscope.Rect{X: x, Y: y, Width: 150, Height: buttonBarH - 16}
		x += 158
	}
	g.protect.Bounds = threatscope.Rect{X: x + 20, Y: y, Width: 190, Height: buttonBarH - 16}
	g.reset.Bounds = threatscope.Rect{X: x + 218, Y: y, Width: 90, Height: buttonBarH - 16}
}

func (g *game) contentArea() threatscope.Rect {
	top := tabH
	if g.current == 0 {
		top += buttonBarH
	}
	return threatscope.Rect{X: 10, Y: top + 6, Width: float64(g.w) - 20, Height: float64(g.h) - top - 16}
}

func (g *game) buttons() []*view.Button {
	out := append([]*view.Button{}, g.tabBtns...)
	if g.current == 0 {
		out = append(out, g.threats...)
		out = append(out, g.protect, g.reset)
	}
	return out
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
	}

	g.protect.Disabled = !g.engine.CanProtect()
	g.mx, g.my = view.CursorPosition()
	g.hover = view.ButtonAt(g.buttons(), g.mx, g.my)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.click(g.mx, g.my)
	}
	if list := g.tabs[g.current].list; list != nil {
		if _, dy := ebiten.Wheel(); dy != 0 {
			list.ScrollBy(dy)
		}
	}

	if g.runner != nil {
		g.runner.Step(g.tick)
	}
	g.engine.Update(g.tick)
	g.canvas.Update(g.tick)
	if g.world != nil {
		ecs.ScenarioEventType.ProcessEvents(g.world)
		ecs.PanelEventType.ProcessEvents(g.world)
	}
	return nil
}

func (g *game) click(x, y float64) {
	if b := view.ButtonAt(g.buttons(), x, y); b != nil {
		switch {
		case b == g.protect:
			g.engine.ActivateProtection()
		case b == g.reset:
			g.engine.Reset()
		case b.Bounds.Y < tabH:
			for i, tb := range g.tabBtns {
				if tb == b {
					g.current = i
				}
			}
		default:
			g.engine.SelectThreat(threatscope.ScenarioID(b.ID))
		}
		return
	}
	if list := g.tabs[g.current].list; list != nil && g.contentArea().Contains(x, y) {
		list.Click(x, y)
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground.RGBA())
	vector.DrawFilledRect(screen, 0, 0, float32(g.w), tabH, colorTabBar.RGBA(), false)
	for i, b := range g.tabBtns {
		if i == g.current {
			b.Color = colorTabActive
		} else {
			b.Color = colorTab
		}
	}

	area := g.contentArea()
	if list := g.tabs[g.current].list; list != nil {
		list.Draw(screen, g.fonts, area)
	} else {
		g.drawArchitecture(screen, area)
	}

	for _, b := range g.buttons() {
		b.Draw(screen, g.fonts, b == g.hover)
	}
	if g.hover != nil {
		g.hover.DrawTooltip(screen, g.fonts, g.mx, g.my)
	}
	g.shooter.Flush(screen)
}

func (g *game) drawArchitecture(screen *ebiten.Image, area threatscope.Rect) {
	vp := view.FitViewport(area, diagramW, diagramH)
	x, y := vp.ToScreen(threatscope.Vec2{})
	w, h := float32(diagramW*vp.Scale), float32(diagramH*vp.Scale)
	if g.diagram != nil {
		b := g.diagram.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
		op.GeoM.Translate(float64(x), float64(y))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(g.diagram, op)
	} else {
		vector.DrawFilledRect(screen, x, y, w, h, colorDiagramBg.RGBA(), false)
	}
	view.DrawElements(screen, g.canvas.Elements(), g.fonts, vp)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	if outsideW != g.w || outsideH != g.h {
		g.w, g.h = outsideW, outsideH
		g.layoutButtons()
	}
	return outsideW, outsideH
}

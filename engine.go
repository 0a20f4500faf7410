package threatscope

import "time"

// engineOwner tags every effect an Engine schedules.
const engineOwner = "scenario"

// Diagram geometry, in diagram pixels.
const (
	sourceRadius      = 40
	targetRadius      = 30
	shieldHalfW       = 60
	shieldHalfH       = 35
	perimeterHalfW    = 80
	perimeterHalfH    = 60
	perimeterSpacing  = 8
	perimeterRings    = 3
	attackLineWidth   = 4
	sourceTextSize    = 12
	targetTextSize    = 10
	shieldTextSize    = 12
	messageTextSize   = 16
	successMessage    = "Атака отражена! Защита сработала успешно"
	shieldOutlineSize = 4
)

// SuccessMessagePos is where the blocked-attack banner is drawn.
var SuccessMessagePos = Vec2{X: 400, Y: 50}

// ScenarioEvent reports a phase change of an Engine.
type ScenarioEvent struct {
	Threat ScenarioID
	From   Phase
	To     Phase
	At     time.Duration // scheduler time of the change
}

// EventSink receives scenario and panel events. Set one on an Engine or on
// Panels to forward state changes elsewhere (see package ecs).
type EventSink interface {
	EmitScenario(event ScenarioEvent)
	EmitPanel(event PanelEvent)
}

type drawnElement struct {
	id  ElementID
	tag Tag
}

// Engine is the scenario state machine. It owns the single active scenario,
// its pending effects and every element it drew. All methods must be called
// from the host's update goroutine.
type Engine struct {
	timing  Timing
	sched   *Scheduler
	surface Surface
	sink    EventSink

	active ScenarioID
	def    *ScenarioDefinition
	phase  Phase
	drawn  []drawnElement
}

// NewEngine creates an idle engine drawing onto surface. A nil surface
// discards every instruction.
func NewEngine(surface Surface, timing Timing) *Engine {
	if surface == nil {
		surface = &discardSurface{}
	}
	return &Engine{
		timing:  timing,
		sched:   NewScheduler(),
		surface: surface,
	}
}

// SetEventSink sets the optional phase-change listener.
func (e *Engine) SetEventSink(sink EventSink) {
	e.sink = sink
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// ActiveThreat returns the scenario being shown, or "" when idle.
func (e *Engine) ActiveThreat() ScenarioID {
	return e.active
}

// CanProtect reports whether ActivateProtection would do anything. The
// viewer uses it to enable the protection button.
func (e *Engine) CanProtect() bool {
	return e.phase == PhaseThreatShown || e.phase == PhaseAttacking
}

// Now returns the engine's virtual time.
func (e *Engine) Now() time.Duration {
	return e.sched.Now()
}

// Pending returns the number of effects still scheduled for the scenario.
func (e *Engine) Pending() int {
	return e.sched.Pending(engineOwner)
}

// PendingDelays returns the remaining delay of each scheduled effect in
// firing order.
func (e *Engine) PendingDelays() []time.Duration {
	return e.sched.PendingDelays(engineOwner)
}

// Drawn returns the IDs of the elements currently drawn by the engine, in
// draw order.
func (e *Engine) Drawn() []ElementID {
	ids := make([]ElementID, len(e.drawn))
	for i, d := range e.drawn {
		ids[i] = d.id
	}
	return ids
}

// Update advances the engine clock by dt and fires due effects. Call it once
// per tick.
func (e *Engine) Update(dt time.Duration) {
	e.sched.Advance(dt)
}

// SelectThreat starts the scenario for id, replacing whatever was shown
// before. The threat source is drawn immediately; one attack per target is
// scheduled, staggered by Timing.AttackStagger. Unknown ids are ignored and
// reported as false.
func (e *Engine) SelectThreat(id ScenarioID) bool {
	def, ok := Lookup(id)
	if !ok {
		debugf("select: unknown threat %q ignored", id)
		return false
	}

	e.Reset()
	e.active = id
	e.def = def
	e.setPhase(PhaseThreatShown)

	src := Oval(TagSource, def.Source, sourceRadius, colorAttack, colorAttackOutline).
		WithText(def.SourceText, sourceTextSize)
	if _, err := e.draw(src); err != nil {
		debugf("select %s: draw source: %v", id, err)
	}

	for i, target := range def.Targets {
		e.sched.Schedule(engineOwner, time.Duration(i)*e.timing.AttackStagger, e.attackEffect(def, target))
	}
	return true
}

// attackEffect draws the attack line to target and the pulsating target.
// Attacks that land after protection engaged are blocked and draw nothing.
func (e *Engine) attackEffect(def *ScenarioDefinition, target Vec2) EffectFunc {
	return func() error {
		if e.phase >= PhaseProtectionActive {
			debugf("attack %s → (%.0f,%.0f) blocked", def.ID, target.X, target.Y)
			return nil
		}
		e.setPhase(PhaseAttacking)

		line := Line(TagAttackLine, def.Source, target, colorAttack, attackLineWidth)
		line.Dashed = true
		line.Arrow = true
		if _, err := e.draw(line); err != nil {
			return err
		}

		tgt := Oval(TagTarget, target, targetRadius, colorAttack, colorAttackOutline).
			WithText(def.TargetText, targetTextSize)
		id, err := e.draw(tgt)
		if err != nil {
			return err
		}
		if e.timing.BlinkCount > 0 {
			return e.blinkStep(id, 0)
		}
		return nil
	}
}

// blinkStep toggles the fill of target between attack red and warning
// orange, then schedules the next toggle until BlinkCount toggles happened.
// The sequence stops early if the element disappears.
func (e *Engine) blinkStep(target ElementID, step int) error {
	fill := colorWarning
	if step%2 == 1 {
		fill = colorAttack
	}
	if err := e.surface.SetFill(target, fill); err != nil {
		return err
	}
	if next := step + 1; next < e.timing.BlinkCount {
		e.sched.Schedule(engineOwner, e.timing.BlinkInterval, func() error {
			return e.blinkStep(target, next)
		})
	}
	return nil
}

// ActivateProtection engages the countermeasure for the active threat: the
// shield is drawn at the threat origin, then the blocking perimeter, removal
// of attack lines and the success message follow, and the scenario resets
// itself after Timing.AutoReset. Ignored (false) when idle or when
// protection is already engaged.
func (e *Engine) ActivateProtection() bool {
	if e.phase == PhaseIdle {
		debugf("protect: no active threat")
		return false
	}
	if e.phase >= PhaseProtectionActive {
		debugf("protect: %s already protected", e.active)
		return false
	}

	def := e.def
	e.setPhase(PhaseProtectionActive)

	style := StyleFor(def.Protection)
	shield := Box(TagShield, def.Anchor(), shieldHalfW, shieldHalfH, style.Color, colorShieldOutline).
		WithText(style.Text, shieldTextSize)
	shield.OutlineWidth = shieldOutlineSize
	shield.FadeIn = true
	if _, err := e.draw(shield); err != nil {
		debugf("protect %s: draw shield: %v", def.ID, err)
	}

	anchor := def.Anchor()
	e.sched.Schedule(engineOwner, 0, func() error { return e.drawPerimeter(anchor) })
	e.sched.Schedule(engineOwner, 0, e.removeAttackLines)
	e.sched.Schedule(engineOwner, 0, e.showSuccess)
	e.sched.Schedule(engineOwner, e.timing.AutoReset, e.autoReset)
	return true
}

func (e *Engine) drawPerimeter(anchor Vec2) error {
	for i := 0; i < perimeterRings; i++ {
		grow := float64(i * perimeterSpacing)
		ring := Box(TagPerimeter, anchor, perimeterHalfW+grow, perimeterHalfH+grow, Color{}, colorPerimeter)
		ring.Dashed = true
		ring.Expand = true
		if _, err := e.draw(ring); err != nil {
			return err
		}
	}
	return nil
}

// removeAttackLines deletes attack-line elements only; shield, targets and
// source stay on the diagram.
func (e *Engine) removeAttackLines() error {
	n := e.surface.RemoveTagged(TagAttackLine)
	kept := e.drawn[:0]
	for _, d := range e.drawn {
		if d.tag != TagAttackLine {
			kept = append(kept, d)
		}
	}
	clear(e.drawn[len(kept):])
	e.drawn = kept
	debugf("%s: removed %d attack lines", e.active, n)
	return nil
}

func (e *Engine) showSuccess() error {
	e.setPhase(PhaseBlocked)
	msg := Label(TagMessage, SuccessMessagePos, successMessage, colorSuccess, messageTextSize)
	msg.FadeIn = true
	_, err := e.draw(msg)
	return err
}

func (e *Engine) autoReset() error {
	debugf("auto-reset %s after %v", e.active, e.timing.AutoReset)
	e.Reset()
	return nil
}

// Reset cancels every pending effect, removes everything the engine drew and
// returns to idle. Calling it while idle is a no-op.
func (e *Engine) Reset() {
	if n := e.sched.CancelAll(engineOwner); n > 0 {
		debugf("reset: cancelled %d pending effects", n)
	}
	for _, d := range e.drawn {
		if err := e.surface.Remove(d.id); err != nil {
			debugf("reset: remove element %d: %v", d.id, err)
		}
	}
	clear(e.drawn)
	e.drawn = e.drawn[:0]
	e.setPhase(PhaseIdle)
	e.active = ""
	e.def = nil
}

func (e *Engine) draw(el Element) (ElementID, error) {
	id, err := e.surface.Draw(el)
	if err != nil {
		return 0, err
	}
	e.drawn = append(e.drawn, drawnElement{id: id, tag: el.Tag})
	return id, nil
}

func (e *Engine) setPhase(p Phase) {
	if e.phase == p {
		return
	}
	from := e.phase
	e.phase = p
	debugf("%s: %s → %s", e.active, from, p)
	if e.sink != nil {
		e.sink.EmitScenario(ScenarioEvent{Threat: e.active, From: from, To: p, At: e.sched.Now()})
	}
}

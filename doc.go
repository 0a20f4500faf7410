// Package threatscope is the interactive core of a VoIP security reference
// viewer: a scenario animation engine that plays a threat against a network
// diagram, and the expandable-panel registries behind the content tabs.
//
// Everything runs on the host's single update goroutine. Nothing blocks:
// timing is a virtual clock that the host advances once per tick.
//
// # Scenario engine
//
// An [Engine] draws onto a [Surface] (usually a [Canvas]) and moves through
// the phases idle → threat shown → attacking → protection active → blocked
// → idle:
//
//	canvas := threatscope.NewCanvas(timing.FadeIn)
//	engine := threatscope.NewEngine(canvas, timing)
//	engine.SelectThreat(threatscope.ThreatDDoS)
//	// each tick:
//	engine.Update(dt)
//	canvas.Update(dt)
//
// [Engine.SelectThreat] always resets first, so rapid reselection never
// leaves stale animations. [Engine.ActivateProtection] draws the shield and
// schedules the blocking effects plus an auto-reset. [Engine.Reset] cancels
// every pending effect and removes every drawn element.
//
// Effects are scheduled on a [Scheduler]: a cancellable, virtual-time queue
// that fires effects in due-time order and swallows effect errors.
//
// # Panels
//
// [Panels] holds four independent [Registry] values, one per [Category].
// [Registry.Toggle] expands a card (rebuilding its detail lines with
// [BuildDetail] and handing them to the card's [DetailView]) or collapses it.
//
// # Configuration and debugging
//
// [LoadConfig] reads THREATSCOPE_* environment variables. [SetDebugMode]
// prints ignored actions and phase changes to stderr.
//
// # Scripts
//
// [LoadScript] parses a JSON walkthrough (select, protect, reset, toggle,
// wait, screenshot) that a [Runner] plays tick by tick.
package threatscope

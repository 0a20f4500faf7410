package threatscope

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep represents a single action in a walkthrough script.
type scriptStep struct {
	Action   string `json:"action"`
	Threat   string `json:"threat,omitempty"`
	Category string `json:"category,omitempty"`
	Card     string `json:"card,omitempty"`
	Label    string `json:"label,omitempty"`
	Millis   int    `json:"ms,omitempty"`

	category Category
}

// script is the top-level JSON structure for a walkthrough script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// Screenshotter captures the current frame under a label.
type Screenshotter interface {
	Screenshot(label string)
}

// Runner plays a scripted walkthrough against an Engine and Panels: threat
// selection, protection, resets, card toggles, waits and screenshots. Call
// Step once per tick before Engine.Update.
type Runner struct {
	steps  []scriptStep
	cursor int
	wait   time.Duration
	done   bool

	engine *Engine
	panels *Panels
	shots  Screenshotter
}

// LoadScript parses a JSON walkthrough script and returns a Runner ready to
// be attached with Attach.
func LoadScript(jsonData []byte) (*Runner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i := range s.Steps {
		st := &s.Steps[i]
		switch st.Action {
		case "select":
			if st.Threat == "" {
				return nil, fmt.Errorf("parse script: step %d: select needs a threat", i)
			}
		case "toggle":
			c, err := ParseCategory(st.Category)
			if err != nil {
				return nil, fmt.Errorf("parse script: step %d: %w", i, err)
			}
			st.category = c
		case "wait":
			if st.Millis < 0 {
				return nil, fmt.Errorf("parse script: step %d: negative wait", i)
			}
		case "protect", "reset", "screenshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Runner{steps: s.Steps}, nil
}

// Attach binds the runner to the objects it drives. panels and shots may be
// nil; steps that need them are skipped.
func (r *Runner) Attach(engine *Engine, panels *Panels, shots Screenshotter) {
	r.engine = engine
	r.panels = panels
	r.shots = shots
}

// Done reports whether all steps have been executed.
func (r *Runner) Done() bool {
	return r.done
}

// Step advances the runner by one tick of length dt. Pending waits count
// down first; then steps execute until the next wait or the end of the
// script. The tick that starts a wait counts toward it.
func (r *Runner) Step(dt time.Duration) {
	if r.done {
		return
	}
	if r.wait > 0 {
		r.wait -= dt
		if r.wait > 0 {
			return
		}
		r.wait = 0
	}
	for r.cursor < len(r.steps) {
		st := r.steps[r.cursor]
		r.cursor++
		r.exec(st, dt)
		if r.wait > 0 {
			return
		}
	}
	r.done = true
}

func (r *Runner) exec(st scriptStep, dt time.Duration) {
	switch st.Action {
	case "select":
		if r.engine != nil {
			r.engine.SelectThreat(ScenarioID(st.Threat))
		}
	case "protect":
		if r.engine != nil {
			r.engine.ActivateProtection()
		}
	case "reset":
		if r.engine != nil {
			r.engine.Reset()
		}
	case "toggle":
		if r.panels != nil {
			r.panels.Toggle(st.category, st.Card)
		}
	case "screenshot":
		if r.shots != nil {
			r.shots.Screenshot(st.Label)
		}
	case "wait":
		r.wait = time.Duration(st.Millis)*time.Millisecond - dt
	}
}

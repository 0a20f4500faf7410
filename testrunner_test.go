package threatscope

import (
	"slices"
	"testing"
	"time"
)

type stubShooter struct {
	labels []string
}

func (s *stubShooter) Screenshot(label string) { s.labels = append(s.labels, label) }

func TestLoadScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "select", "threat": "ddos"},
			{"action": "wait", "ms": 600},
			{"action": "toggle", "category": "threats", "card": "threat_integrity"},
			{"action": "screenshot", "label": "after"}
		]
	}`)

	runner, err := LoadScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Threat != "ddos" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Millis != 600 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].category != CategoryThreats || runner.steps[2].Card != "threat_integrity" {
		t.Error("step 2 mismatch")
	}
}

func TestLoadScript_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `not json`},
		{"empty", `{"steps": []}`},
		{"select without threat", `{"steps": [{"action": "select"}]}`},
		{"unknown category", `{"steps": [{"action": "toggle", "category": "weather", "card": "x"}]}`},
		{"negative wait", `{"steps": [{"action": "wait", "ms": -5}]}`},
		{"unknown action", `{"steps": [{"action": "click"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScript([]byte(tt.data)); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestRunnerDrivesEngine(t *testing.T) {
	data := []byte(`{"steps": [
		{"action": "select", "threat": "hack"},
		{"action": "wait", "ms": 100},
		{"action": "screenshot", "label": "attack"},
		{"action": "protect"},
		{"action": "wait", "ms": 100},
		{"action": "screenshot", "label": "blocked"}
	]}`)
	runner, err := LoadScript(data)
	if err != nil {
		t.Fatal(err)
	}
	engine := NewEngine(NewCanvas(0), DefaultTiming())
	shots := &stubShooter{}
	runner.Attach(engine, nil, shots)

	tick := 50 * time.Millisecond
	for i := 0; i < 20 && !runner.Done(); i++ {
		runner.Step(tick)
		engine.Update(tick)
	}

	if !runner.Done() {
		t.Fatal("runner did not finish")
	}
	if !slices.Equal(shots.labels, []string{"attack", "blocked"}) {
		t.Errorf("screenshots = %v", shots.labels)
	}
	if engine.Phase() != PhaseBlocked {
		t.Errorf("Phase = %s, want blocked", engine.Phase())
	}
}

func TestRunnerWaitsBeforeNextStep(t *testing.T) {
	data := []byte(`{"steps": [
		{"action": "wait", "ms": 200},
		{"action": "select", "threat": "spoofing"}
	]}`)
	runner, _ := LoadScript(data)
	engine := NewEngine(nil, DefaultTiming())
	runner.Attach(engine, nil, nil)

	runner.Step(100 * time.Millisecond)
	runner.Step(50 * time.Millisecond)
	if engine.Phase() != PhaseIdle {
		t.Fatal("select ran before the wait elapsed")
	}
	runner.Step(50 * time.Millisecond)
	if engine.ActiveThreat() != ThreatSpoofing {
		t.Errorf("ActiveThreat = %q, want spoofing", engine.ActiveThreat())
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
}

func TestRunnerTogglesPanels(t *testing.T) {
	panels := NewPanels()
	panels.Registry(CategoryMeasures).Add(Card{ID: "org_1", Title: "t"}, nil)
	runner, _ := LoadScript([]byte(`{"steps": [{"action": "toggle", "category": "measures", "card": "org_1"}]}`))
	runner.Attach(nil, panels, nil)

	runner.Step(0)
	if !panels.Expanded(CategoryMeasures, "org_1") {
		t.Error("card should be expanded by the script")
	}
}

func TestRunnerWaitEqualToTick(t *testing.T) {
	data := []byte(`{"steps": [
		{"action": "select", "threat": "ddos"},
		{"action": "wait", "ms": 100},
		{"action": "reset"}
	]}`)
	runner, _ := LoadScript(data)
	engine := NewEngine(nil, DefaultTiming())
	runner.Attach(engine, nil, nil)

	runner.Step(100 * time.Millisecond)
	if !runner.Done() {
		t.Fatal("a wait no longer than the tick should elapse within it")
	}
	if engine.Phase() != PhaseIdle {
		t.Errorf("Phase = %s, want idle after reset", engine.Phase())
	}
}

package threatscope

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

// captureStderr runs fn with os.Stderr redirected and returns what it wrote.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = oldStderr

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestDebugMode_LogsIgnoredActions(t *testing.T) {
	SetDebugMode(true)
	defer SetDebugMode(false)

	output := captureStderr(t, func() {
		e := NewEngine(nil, DefaultTiming())
		e.SelectThreat("phishing")
		e.ActivateProtection()
	})

	if !strings.Contains(output, `[threatscope] select: unknown threat "phishing" ignored`) {
		t.Errorf("missing unknown threat line, got: %q", output)
	}
	if !strings.Contains(output, "protect: no active threat") {
		t.Errorf("missing protect line, got: %q", output)
	}
}

func TestDebugMode_LogsPhaseChanges(t *testing.T) {
	SetDebugMode(true)
	defer SetDebugMode(false)

	output := captureStderr(t, func() {
		e := NewEngine(nil, DefaultTiming())
		e.SelectThreat(ThreatDDoS)
	})

	if !strings.Contains(output, "ddos: idle → threat-shown") {
		t.Errorf("missing phase change line, got: %q", output)
	}
}

func TestDebugMode_OffIsSilent(t *testing.T) {
	SetDebugMode(false)
	output := captureStderr(t, func() {
		NewEngine(nil, DefaultTiming()).SelectThreat("phishing")
		NewRegistry(CategoryMeasures).Toggle("missing")
	})
	if output != "" {
		t.Errorf("expected no output with debug off, got: %q", output)
	}
	if DebugMode() {
		t.Error("DebugMode() = true")
	}
}

package threatscope

import (
	"fmt"
	"os"
)

// debugMode mirrors the most recent SetDebugMode call. Engines, registries and
// schedulers consult it before writing diagnostics; threatscope is
// single-threaded so no synchronization is needed.
var debugMode bool

// SetDebugMode enables or disables debug mode. When enabled, ignored actions
// (unknown threats, protection while idle, effects whose element vanished)
// and scenario phase changes are printed to stderr.
func SetDebugMode(enabled bool) {
	debugMode = enabled
}

// DebugMode reports whether debug output is enabled.
func DebugMode() bool {
	return debugMode
}

// debugf prints a single "[threatscope]" line to stderr in debug mode.
func debugf(format string, args ...any) {
	if !debugMode {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[threatscope] "+format+"\n", args...)
}

// Package obslog is a small leveled writer for the pipeline's coarse
// progress messages ("stage started", "N functions emitted"). Grounded on
// the ambient logging style of this repo's reference pack: no external logging library appears
// anywhere in the retrieved example pack, which all hand-roll
// fmt.Fprintf-to-stderr logging gated by process-wide mode flags
// (internal/config.IsTestMode/IsLSPMode) — this package generalizes that
// same pattern with an explicit verbosity flag instead of a single bool.
package obslog

import (
	"fmt"
	"io"
	"os"
)

// Logger writes leveled progress lines to Out, suppressing Debug lines
// unless Verbose is set (the CLI takes it from vane.yaml's `verbose: true`).
type Logger struct {
	Out     io.Writer
	Verbose bool
}

// Default writes to os.Stderr with Verbose off.
func Default() *Logger { return &Logger{Out: os.Stderr} }

// Stage logs a pipeline stage transition unconditionally (spec §5's fixed
// stage sequence is always worth a line, verbose or not).
func (l *Logger) Stage(format string, args ...interface{}) {
	if l == nil || l.Out == nil {
		return
	}
	fmt.Fprintf(l.Out, "vane: "+format+"\n", args...)
}

// Debug logs a line only when Verbose is set.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l == nil || l.Out == nil || !l.Verbose {
		return
	}
	fmt.Fprintf(l.Out, "vane[debug]: "+format+"\n", args...)
}

package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Formatter renders an Error with two lines of source context before and
// after the offending span and a caret underneath it (spec §7).
type Formatter struct {
	// Lines holds the source text, split into lines by NewFormatter.
	Lines []string
	// Color forces ANSI coloring on/off; when nil, Formatter auto-detects
	// by checking whether out is a terminal (github.com/mattn/go-isatty).
	Color *bool
}

// NewFormatter splits source into lines for context rendering.
func NewFormatter(source string) *Formatter {
	return &Formatter{Lines: strings.Split(source, "\n")}
}

func (f *Formatter) colorEnabled(out io.Writer) bool {
	if f.Color != nil {
		return *f.Color
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if file, ok := out.(*os.File); ok {
		return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
	}
	return false
}

// Format renders err with surrounding context into a multi-line string.
func (f *Formatter) Format(err *Error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "error[%s]: %s\n", err.Kind, err.Message)

	line := err.Span.Start.Line
	col := err.Span.Start.Column
	if line <= 0 || len(f.Lines) == 0 {
		return b.String()
	}

	color := f.colorEnabled(os.Stderr)
	const (
		red   = "\x1b[31m"
		reset = "\x1b[0m"
	)

	start := line - 2
	if start < 1 {
		start = 1
	}
	end := line + 2
	if end > len(f.Lines) {
		end = len(f.Lines)
	}

	for l := start; l <= end; l++ {
		text := ""
		if l-1 < len(f.Lines) {
			text = f.Lines[l-1]
		}
		fmt.Fprintf(&b, "%4d | %s\n", l, text)
		if l == line {
			caretCol := col
			if caretCol < 1 {
				caretCol = 1
			}
			caret := strings.Repeat(" ", caretCol-1) + "^"
			if color {
				fmt.Fprintf(&b, "     | %s%s%s\n", red, caret, reset)
			} else {
				fmt.Fprintf(&b, "     | %s\n", caret)
			}
		}
	}
	return b.String()
}

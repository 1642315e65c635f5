package main

import "github.com/vane-lang/vane/internal/diag"

func asDiagError(err error) (*diag.Error, bool) {
	return diag.As(err)
}

// newFormatter builds a diag.Formatter over source, honoring vane.yaml's
// `color` override when set and auto-detecting otherwise (diag.Formatter's
// own isatty check).
func newFormatter(source string, color *bool) *diag.Formatter {
	f := diag.NewFormatter(source)
	f.Color = color
	return f
}

// Package diag implements the stable error kinds and the single-error,
// no-recovery diagnostic model described in spec §7: the semantic core
// surfaces the first failure with a message and source span and stops.
package diag

import (
	"fmt"

	"github.com/vane-lang/vane/internal/token"
)

// Kind is one of the stable error tags from spec §7.
type Kind string

const (
	SyntaxError         Kind = "SyntaxError"
	UndefinedSymbol     Kind = "UndefinedSymbol"
	DuplicateDefinition Kind = "DuplicateDefinition"
	TypeMismatch        Kind = "TypeMismatch"
	TypeConflict        Kind = "TypeConflict"
	ConstraintViolation Kind = "ConstraintViolation"
	UnresolvedAttribute Kind = "UnresolvedAttribute"
	AmbiguousCall       Kind = "AmbiguousCall"
	ArityMismatch       Kind = "ArityMismatch"
	ReturnOutsideFunc   Kind = "ReturnOutsideFunction"
	BreakOutsideLoop    Kind = "BreakOutsideLoop"
	ContinueOutsideLoop Kind = "ContinueOutsideLoop"
	MissingReturn       Kind = "MissingReturn"
	Internal            Kind = "Internal"
)

// Phase names the stage that raised the error. Neither Error() nor the
// Formatter prints it.
type Phase string

const (
	PhaseDeclaration Phase = "declaration"
	PhaseTypeCheck   Phase = "typecheck"
	PhaseEmit        Phase = "emit"
	PhaseRuntime     Phase = "runtime"
)

// Error is the single diagnostic a compilation run can produce. There is no
// local recovery (spec §7): every stage raises eagerly and the driver maps
// the first one it sees to a formatted message.
type Error struct {
	Kind    Kind
	Phase   Phase
	Message string
	Span    token.Span
}

func (e *Error) Error() string {
	tok := e.Span.Start
	if tok.Line > 0 {
		return fmt.Sprintf("%d:%d: [%s] %s", tok.Line, tok.Column, e.Kind, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// New builds an Error of the given kind at span with a formatted message.
func New(kind Kind, phase Phase, span token.Span, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Phase: phase, Message: fmt.Sprintf(format, args...), Span: span}
}

// InternalError wraps an invariant violation ("should never happen") as an Internal error.
func InternalError(phase Phase, span token.Span, message string) *Error {
	return &Error{Kind: Internal, Phase: phase, Message: "internal error: " + message, Span: span}
}

// As reports whether err is a *Error and returns it.
func As(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}

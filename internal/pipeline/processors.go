package pipeline

import (
	"github.com/vane-lang/vane/internal/ast"
	"github.com/vane-lang/vane/internal/check"
	"github.com/vane-lang/vane/internal/diag"
	"github.com/vane-lang/vane/internal/emit"
	"github.com/vane-lang/vane/internal/runtime"
	"github.com/vane-lang/vane/internal/scope"
)

func asDiagErr(err error, phase diag.Phase) *diag.Error {
	if err == nil {
		return nil
	}
	if de, ok := diag.As(err); ok {
		return de
	}
	return &diag.Error{Kind: diag.Internal, Phase: phase, Message: err.Error()}
}

// DeclarationProcessor runs stage 1 (spec §4.4) over ctx.Program, using
// ctx.Manager's scope stack and trait registry (already prelude-seeded by
// the caller before the pipeline runs).
type DeclarationProcessor struct{}

func (DeclarationProcessor) Process(ctx *Context) *Context {
	v := check.NewDeclarationVisitor(ctx.Manager)
	if err := v.Run(ctx.Program); err != nil {
		ctx.Err = asDiagErr(err, diag.PhaseDeclaration)
	}
	return ctx
}

// TypeCheckProcessor runs stage 2 (spec §4.5), wiring ctx.Emit (an
// *emit.EmitVisitor satisfying check.Emitter) so specialization and
// dynamic-wrap emission happen inline, exactly when stage 2 finalizes each
// annotation (spec §5: "triggered from within type checking").
type TypeCheckProcessor struct{}

func (TypeCheckProcessor) Process(ctx *Context) *Context {
	v := check.NewTypeCheckVisitor(ctx.Manager)
	v.Emit = ctx.Emit
	if err := v.Run(ctx.Program); err != nil {
		ctx.Err = asDiagErr(err, diag.PhaseTypeCheck)
	}
	return ctx
}

// EmitProcessor performs the root-level emission pass (spec §5: "again at
// the root for the program body") once stage 2 has finished annotating
// every call site.
type EmitProcessor struct{}

func (EmitProcessor) Process(ctx *Context) *Context {
	ctx.Emit.EmitProgram(ctx.Program)
	return ctx
}

// Compile runs the full front-end+core pipeline over prog: stage 1, stage
// 2 (with inline stage-3 specialization emission), then the root emission
// pass. impls and meta are expected to already carry the prelude's
// registrations (see internal/prelude). Returns the finished emit.Program,
// or the first diagnostic raised.
func Compile(ctx *Context) (*emit.Program, *diag.Error) {
	pipe := New(DeclarationProcessor{}, TypeCheckProcessor{}, EmitProcessor{})
	out := pipe.Run(ctx)
	if out.Err != nil {
		return nil, out.Err
	}
	return out.Emit.Program, nil
}

// NewContext builds a fresh Context over prog, sharing mgr's prelude-seeded
// scopes/trait registry and a newly created MetaManager/EmitVisitor pair.
func NewContext(prog *ast.Program, mgr *scope.Manager) *Context {
	meta := runtime.NewMetaManager()
	return &Context{
		Program: prog,
		Manager: mgr,
		Emit:    emit.NewEmitVisitor(mgr.TraitImpls(), meta),
		Meta:    meta,
	}
}

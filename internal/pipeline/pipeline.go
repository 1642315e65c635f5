// Package pipeline drives the semantic core's three stages over a parsed
// program (spec §2, §5): declaration, type-check (with inline specialization
// emission), and a final root-level emission/run pass. Grounded on the
// ancestor module's Pipeline{processors}/PipelineContext driver
// (internal/analyzer/processor.go, internal/pipeline: a processor chain
// threading one mutable context through sequential stages), narrowed to
// spec §7's single-error model — an LSP-oriented pipeline keeps running every
// stage to collect all diagnostics at once; vane stops at the first failure
// instead, since spec.md explicitly rules out error recovery.
package pipeline

import (
	"github.com/vane-lang/vane/internal/ast"
	"github.com/vane-lang/vane/internal/diag"
	"github.com/vane-lang/vane/internal/emit"
	"github.com/vane-lang/vane/internal/runtime"
	"github.com/vane-lang/vane/internal/scope"
)

// Context is the mutable state threaded through every Processor (spec §5
// driver state): the parsed program, the shared scope/trait registries, the
// stage-3 output, and the first error raised by any stage.
type Context struct {
	Program *ast.Program
	Manager *scope.Manager
	Emit    *emit.EmitVisitor
	Meta    *runtime.MetaManager
	Err     *diag.Error
}

// Processor is one pipeline stage (spec §5: "stage 1 runs to completion
// before stage 2 starts"). Process must not mutate ctx.Program's identity,
// only the annotations stage 2/3 attach to its nodes.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline is a fixed sequence of stages run in order.
type Pipeline struct {
	processors []Processor
}

// New builds a pipeline from processors, run in the given order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order, stopping at the first one that sets
// ctx.Err (spec §7: "one error, no recovery past the first failure" — unlike
// an LSP-oriented pipeline, which runs every processor regardless to
// surface all available diagnostics at once).
func (p *Pipeline) Run(initialCtx *Context) *Context {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
		if ctx.Err != nil {
			return ctx
		}
	}
	return ctx
}

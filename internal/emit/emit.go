package emit

import (
	"github.com/vane-lang/vane/internal/ast"
	"github.com/vane-lang/vane/internal/runtime"
	"github.com/vane-lang/vane/internal/traits"
	"github.com/vane-lang/vane/internal/types"
)

// Function is one reachable entry in the intermediate program: a mangled
// name paired with the AST body the tree-walking runtime executes (spec
// §4.6 permits "any evaluable target... a tree-walking AST" — we choose the
// already-type-annotated AST itself rather than lowering further).
type Function struct {
	MangledName string
	Def         *ast.FunctionDef
	Binds       types.Binds
}

// Program is the stage-3 output: every reachable specialization/trait
// method keyed by its mangled name, in first-reachable order, plus the
// top-level statement list the host runs directly (spec §4.6, §5: "again at
// the root for the program body").
type Program struct {
	Functions map[string]*Function
	Order     []string
	TopLevel  []ast.Statement
}

func newProgram() *Program {
	return &Program{Functions: make(map[string]*Function)}
}

// Lookup and TopLevelStatements satisfy runtime.Program, so
// *emit.Program can be handed directly to runtime.NewInterpreter.
func (p *Program) Lookup(mangledName string) (*ast.FunctionDef, bool) {
	fn, ok := p.Functions[mangledName]
	if !ok {
		return nil, false
	}
	return fn.Def, true
}

func (p *Program) TopLevelStatements() []ast.Statement { return p.TopLevel }

// EmitVisitor implements check.Emitter: it renders reachable call-site
// resolutions into Program and populates the shared MetaManager's per-type
// method tables. Grounded on the ancestor module's on-demand compiled-routine table
// (internal/backend/vmbackend.go: a name-keyed cache populated the first
// time a call site reaches a given routine), adapted to spec's mangling and
// create_dyn_object rules.
type EmitVisitor struct {
	Program *Program
	Impls   *traits.TraitImpls
	Meta    *runtime.MetaManager

	emitted map[string]bool
}

// NewEmitVisitor creates a stage-3 emitter sharing impls (populated by stage
// 1) and meta (the runtime's per-type method table registry).
func NewEmitVisitor(impls *traits.TraitImpls, meta *runtime.MetaManager) *EmitVisitor {
	return &EmitVisitor{
		Program: newProgram(),
		Impls:   impls,
		Meta:    meta,
		emitted: make(map[string]bool),
	}
}

// EmitProgram records prog's top-level statements as the intermediate
// program's entry body (spec §5: "emission... again at the root for the
// program body"). Call once, after stage 2 has fully run.
func (e *EmitVisitor) EmitProgram(prog *ast.Program) {
	e.Program.TopLevel = prog.Statements
}

func (e *EmitVisitor) register(mangled string, def *ast.FunctionDef, binds types.Binds) {
	if e.emitted[mangled] {
		return
	}
	e.emitted[mangled] = true
	e.Program.Functions[mangled] = &Function{MangledName: mangled, Def: def, Binds: binds}
	e.Program.Order = append(e.Program.Order, mangled)
}

// mangledNameFor computes resolved's name in the intermediate program: a
// trait method mangles as trait-for-type, a generic free function mangles
// by its bound type arguments, and anything else emits under its plain
// source name (spec §4.6). A prelude-provided native (no AST body at all)
// is never mangled — its bridge identity *is* its plain Name (e.g.
// "add_int"), since it is never specialized or re-dispatched by mangled
// form.
func mangledNameFor(resolved *types.ResolvedFunction, binds types.Binds) string {
	fn := resolved.Function
	if _, hasBody := fn.SourceAST.(*ast.FunctionDef); !hasBody {
		return fn.Name
	}
	if resolved.Impl != nil {
		return MangleTraitMethod(resolved.Impl.Trait, resolved.Impl.TargetType, fn.Name)
	}
	if len(fn.TypeParameters) > 0 {
		typeArgs := make([]types.Type, len(fn.TypeParameters))
		for i, tp := range fn.TypeParameters {
			if bound, ok := binds[tp.Key()]; ok {
				typeArgs[i] = bound
			} else {
				typeArgs[i] = tp
			}
		}
		return MangleFunctionName(fn.Name, typeArgs)
	}
	return fn.Name
}

// EmitCall implements check.Emitter. It registers c's resolved callee under
// its mangled name (a no-op for functions with no AST body, i.e. runtime
// bridge natives supplied by the prelude) and, for every argument boxed
// into a constrained type variable, runs create_dyn_object so the boxed
// value's method table is populated before the call executes (spec §4.6
// "create_dyn_object").
func (e *EmitVisitor) EmitCall(c *ast.Call) {
	if c.Resolved == nil {
		return
	}
	fn := c.Resolved.Function
	mangled := mangledNameFor(c.Resolved, c.Binds)
	if !c.DynDispatch {
		c.Mangled = mangled
	}
	if def, ok := fn.SourceAST.(*ast.FunctionDef); ok && def.Body != nil {
		e.register(mangled, def, c.Binds)
	}

	for i, arg := range c.Args {
		if i >= len(fn.Args) {
			break
		}
		v, isVar := types.IsTypeVar(fn.Args[i])
		if !isVar || len(v.Constraints) == 0 {
			continue
		}
		observed := arg.Type()
		if _, observedIsVar := types.IsTypeVar(observed); observedIsVar {
			continue
		}
		e.ensureDynMethods(observed, v.Constraints)
	}
}

// EmitWrap implements check.Emitter's dynamic-return-wrap hook (spec §4.6
// Return rule: "populates those methods into the concrete type's method
// table").
func (e *EmitVisitor) EmitWrap(concrete types.Type, traitRefs []types.TraitRef) {
	e.ensureDynMethods(concrete, traitRefs)
}

// ensureDynMethods is create_dyn_object (spec §4.6): for every trait in
// traitRefs, find concrete's impl and register each of its methods both in
// the intermediate program (mangled, on demand) and in concrete's runtime
// DataMeta vtable, so a later vtable lookup by (trait, method) succeeds.
func (e *EmitVisitor) ensureDynMethods(concrete types.Type, traitRefs []types.TraitRef) {
	meta := e.Meta.Meta(MangleType(concrete))
	for _, tr := range traitRefs {
		for _, impl := range e.Impls.GetImpl(concrete, tr, false) {
			for methodName, fn := range impl.Functions {
				mangled := MangleTraitMethod(tr, concrete, methodName)
				if def, ok := fn.SourceAST.(*ast.FunctionDef); ok && def.Body != nil {
					e.register(mangled, def, impl.Binds)
				}
				meta.Register(methodName, tr.Name, mangled)
			}
		}
	}
}

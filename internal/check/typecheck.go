package check

import (
	"fmt"

	"github.com/vane-lang/vane/internal/ast"
	"github.com/vane-lang/vane/internal/binder"
	"github.com/vane-lang/vane/internal/config"
	"github.com/vane-lang/vane/internal/diag"
	"github.com/vane-lang/vane/internal/scope"
	"github.com/vane-lang/vane/internal/traits"
	"github.com/vane-lang/vane/internal/types"
)

// TypeContext is threaded down through recursive type-checking calls (spec
// §4.5): ExpectedReturn disambiguates multi-impl lookups and return-wrapping
// decisions, Bindings carries substitutions accumulated by an enclosing
// specialization re-entry.
type TypeContext struct {
	ExpectedReturn types.Type
	Bindings       types.Binds
}

// specializationKey identifies one (generic_function, binding_tuple) pass so
// the specialization re-entry loop in §4.5 doesn't recheck the same body
// twice (spec §5: "each specialization is keyed by (function_identity,
// binding_tuple) and memoized").
type specializationKey struct {
	fn    *ast.FunctionDef
	binds string
}

// Emitter receives call-site and return-wrap events as stage 2 finalizes
// them, so stage 3 always renders a node's annotations before a later
// specialization pass mutates the same shared AST nodes again (spec §4.6,
// §5: "emission is triggered from within type checking for specialization
// scheduling"). Satisfied structurally by *emit.EmitVisitor — package check
// never imports package emit (same cycle-break idiom as binder.ImplLookup).
type Emitter interface {
	// EmitCall fires once c.Resolved/c.Binds/c.DynDispatch are final: for a
	// free function this registers (and, for a generic callee, mangles) the
	// reachable specialization; for a trait method it registers the
	// (trait, concrete-type) entry and, when an argument is boxed into a
	// constrained type variable, populates that argument's dynamic method
	// table on demand.
	EmitCall(c *ast.Call)
	// EmitWrap fires when a Return is marked WrapDynamic: it ensures every
	// trait in traits has its concrete-type method registered and entered
	// into that type's runtime method table.
	EmitWrap(concrete types.Type, traitRefs []types.TraitRef)
}

// TypeCheckVisitor is stage 2 (spec §4.5): it resolves every expression's
// type, validates constraints, chooses overloads, and records call-site
// resolution/binds/dyn_dispatch. Grounded on the ancestor module's bidirectional
// checker (internal/analyzer/type_checker.go: an inferred/expected pair
// threaded through recursive Check calls), adapted to spec's TypeContext and
// TraitImpls-driven overload search.
type TypeCheckVisitor struct {
	ast.BaseVisitor
	Manager *scope.Manager
	Impls   *traits.TraitImpls
	Err     error

	// Emit is nil during checker-only use (e.g. unit tests); the full
	// pipeline wires it to an *emit.EmitVisitor (spec §5 driver).
	Emit Emitter

	ctx       TypeContext
	loopDepth int
	funcStack []*types.FunctionRef

	specialized map[specializationKey]bool
}

// NewTypeCheckVisitor creates a stage-2 visitor sharing mgr's scopes and the
// trait registry populated by stage 1.
func NewTypeCheckVisitor(mgr *scope.Manager) *TypeCheckVisitor {
	return &TypeCheckVisitor{
		Manager:     mgr,
		Impls:       mgr.TraitImpls(),
		ctx:         TypeContext{Bindings: make(types.Binds)},
		specialized: make(map[specializationKey]bool),
	}
}

func (tc *TypeCheckVisitor) fail(err error) {
	if tc.Err == nil {
		tc.Err = err
	}
}

func (tc *TypeCheckVisitor) failed() bool { return tc.Err != nil }

// Run drives stage 2 over prog (spec §4.5). Returns the first error raised.
func (tc *TypeCheckVisitor) Run(prog *ast.Program) error {
	prog.Accept(tc)
	return tc.Err
}

func (tc *TypeCheckVisitor) VisitProgram(p *ast.Program) {
	for _, stmt := range p.Statements {
		if tc.failed() {
			return
		}
		stmt.Accept(tc)
	}
}

func (tc *TypeCheckVisitor) VisitBlock(b *ast.Block) {
	b.SetScope(tc.Manager.Current())
	inner := tc.Manager.Push()
	defer tc.Manager.Pop()
	b.SetScope(inner)
	for _, stmt := range b.Statements {
		if tc.failed() {
			return
		}
		stmt.Accept(tc)
	}
}

// typeOf runs v's Accept against tc and returns the type it resolved. Every
// expression sets its own Scope()/Type() during Accept (spec §3 invariant:
// "scope back-pointer set exactly once").
func (tc *TypeCheckVisitor) typeOf(e ast.Expression) types.Type {
	e.SetScope(tc.Manager.Current())
	e.Accept(tc)
	return e.Type()
}

// withExpected runs fn with ExpectedReturn temporarily set to expected,
// restoring the prior value afterward (spec §4.5: "recurse into a_i with
// context expected_return_type = substituted_argtype_i").
func (tc *TypeCheckVisitor) withExpected(expected types.Type, fn func()) {
	prev := tc.ctx.ExpectedReturn
	tc.ctx.ExpectedReturn = expected
	fn()
	tc.ctx.ExpectedReturn = prev
}

// --- Literals -------------------------------------------------------------

func (tc *TypeCheckVisitor) VisitIntLiteral(l *ast.IntLiteral) {
	l.SetType(types.Primitive{Name: config.IntType})
}
func (tc *TypeCheckVisitor) VisitFloatLiteral(l *ast.FloatLiteral) {
	l.SetType(types.Primitive{Name: config.FloatType})
}
func (tc *TypeCheckVisitor) VisitBoolLiteral(l *ast.BoolLiteral) {
	l.SetType(types.Primitive{Name: config.BoolType})
}
func (tc *TypeCheckVisitor) VisitStringLiteral(l *ast.StringLiteral) {
	l.SetType(types.Primitive{Name: config.StringType})
}

// --- Variable ---------------------------------------------------------------

func (tc *TypeCheckVisitor) VisitIdentifier(id *ast.Identifier) {
	sym, ok := tc.Manager.Current().LookupVar(id.Name)
	if !ok {
		tc.fail(diag.New(diag.UndefinedSymbol, diag.PhaseTypeCheck, id.Span(), "undefined variable %q", id.Name))
		return
	}
	id.SetType(types.Apply(sym.VarType, tc.ctx.Bindings))
}

// --- Binary operator --------------------------------------------------------

var compareOps = map[string]bool{">": true, "<": true, ">=": true, "<=": true, "==": true}

func (tc *TypeCheckVisitor) VisitBinaryOp(b *ast.BinaryOp) {
	leftType := tc.typeOf(b.Left)
	if tc.failed() {
		return
	}
	rightType := tc.typeOf(b.Right)
	if tc.failed() {
		return
	}

	if b.Operator == "and" || b.Operator == "or" {
		tc.desugarLogic(b, leftType, rightType)
		return
	}

	effectiveOp := b.Operator
	if effectiveOp == "!=" {
		effectiveOp = "=="
		b.Negated = true
	}
	methodName, ok := config.OperatorMethod[effectiveOp]
	if !ok {
		tc.fail(diag.InternalError(diag.PhaseTypeCheck, b.Span(), fmt.Sprintf("unknown operator %q", b.Operator)))
		return
	}
	traitName := config.OpsTraitName
	if compareOps[effectiveOp] {
		traitName = config.CompareTraitName
	}

	leftSub := types.Apply(leftType, tc.ctx.Bindings)
	candidates := tc.Impls.GetImpl(leftSub, types.TraitRef{Name: traitName}, true)
	var resolved *types.ResolvedFunction
	var resolvedImpl *types.TraitImpl
	var resultType types.Type
	var bindsOut types.Binds
	sawMethod := false
	for _, impl := range candidates {
		fn, ok := impl.Functions[methodName]
		if !ok {
			continue
		}
		if len(fn.Args) != 1 {
			continue
		}
		sawMethod = true
		bnd := binder.New(tc.Impls)
		if err := bnd.Resolve(fn.Args[0], rightType); err != nil {
			continue
		}
		resolved = &types.ResolvedFunction{Function: fn, SourceType: leftSub, Binds: bnd.Bindings(), Impl: impl}
		resolvedImpl = impl
		resultType = bnd.Bind(fn.ReturnType)
		bindsOut = bnd.Bindings()
		break
	}
	if resolved == nil && sawMethod {
		tc.fail(diag.New(diag.TypeMismatch, diag.PhaseTypeCheck, b.Span(),
			"operator %q is not defined between %s and %s", b.Operator, leftSub.String(), rightType.String()))
		return
	}
	if resolved == nil {
		tc.fail(diag.New(diag.ConstraintViolation, diag.PhaseTypeCheck, b.Span(),
			"%s does not implement %s (needed for operator %q)", leftSub.String(), traitName, b.Operator))
		return
	}

	callee := ast.NewAttribute(b.Span(), b.Left, methodName)
	callee.SetScope(tc.Manager.Current())
	callee.SetType(resolved.Function.ReturnType)
	callee.Resolved = resolved

	call := ast.NewCall(b.Span(), callee, []ast.Expression{b.Right})
	call.SetScope(tc.Manager.Current())
	call.Resolved = resolved
	call.Binds = bindsOut
	_, call.DynDispatch = types.IsTypeVar(leftSub)
	call.SetType(resultType)

	b.Desugared = call
	_ = resolvedImpl
	b.SetType(resultType)

	if tc.Emit != nil {
		tc.Emit.EmitCall(call)
	}
}

// desugarLogic rewrites `a and b` / `a or b` into a call to the prelude's
// logic_and/logic_or free function (spec §9 open-question resolution: "both
// operands are always evaluated, since they desugar to method calls" — no
// Logic trait is named anywhere in spec §1's prelude list, so "method calls"
// here means the free-function bridge calls the prelude already registers,
// the same pattern the Ops/Compare desugaring above uses for trait methods).
func (tc *TypeCheckVisitor) desugarLogic(b *ast.BinaryOp, leftType, rightType types.Type) {
	boolT := types.Primitive{Name: config.BoolType}
	if leftType.String() != boolT.String() || rightType.String() != boolT.String() {
		tc.fail(diag.New(diag.TypeMismatch, diag.PhaseTypeCheck, b.Span(),
			"operator %q requires Bool operands, got %s and %s", b.Operator, leftType.String(), rightType.String()))
		return
	}

	fnName := "logic_and"
	if b.Operator == "or" {
		fnName = "logic_or"
	}
	sym, ok := tc.Manager.Current().LookupVar(fnName)
	if !ok {
		tc.fail(diag.InternalError(diag.PhaseTypeCheck, b.Span(), fmt.Sprintf("prelude function %q not installed", fnName)))
		return
	}
	fnType, ok := sym.VarType.(types.FunctionRef)
	if !ok {
		tc.fail(diag.InternalError(diag.PhaseTypeCheck, b.Span(), fmt.Sprintf("%q is not callable", fnName)))
		return
	}

	callee := ast.NewIdentifier(b.Span(), fnName)
	callee.SetScope(tc.Manager.Current())
	callee.SetType(fnType)

	resolved := &types.ResolvedFunction{Function: &fnType, SourceType: nil}
	call := ast.NewCall(b.Span(), callee, []ast.Expression{b.Left, b.Right})
	call.SetScope(tc.Manager.Current())
	call.Resolved = resolved
	call.SetType(boolT)

	b.Desugared = call
	b.SetType(boolT)

	if tc.Emit != nil {
		tc.Emit.EmitCall(call)
	}
}

// --- Attribute ---------------------------------------------------------------

func (tc *TypeCheckVisitor) VisitAttribute(a *ast.Attribute) {
	recvType := tc.typeOf(a.Receiver)
	if tc.failed() {
		return
	}
	recvType = types.Apply(recvType, tc.ctx.Bindings)

	if v, isVar := types.IsTypeVar(recvType); isVar && len(v.Constraints) > 0 {
		var candidates []*types.ResolvedFunction
		for _, c := range v.Constraints {
			for _, impl := range tc.Impls.GetImplByTrait(c) {
				if fn, ok := impl.Functions[a.Name]; ok {
					candidates = append(candidates, &types.ResolvedFunction{Function: fn, SourceType: recvType, Impl: impl})
				}
			}
		}
		tc.finishAttribute(a, recvType, candidates)
		return
	}

	if ref, isRef := recvType.(types.TypeRef); isRef && ref.StructRef != nil {
		if ft, ok := ref.StructRef.Fields[a.Name]; ok {
			binds := make(types.Binds, len(ref.StructRef.Parameters))
			for i, p := range ref.StructRef.Parameters {
				if i < len(ref.Parameters) {
					binds[p.Key()] = ref.Parameters[i]
				}
			}
			a.IsField = true
			a.SetType(types.Apply(ft, binds))
			return
		}
	}

	var candidates []*types.ResolvedFunction
	for _, impl := range tc.Impls.GetImplByType(recvType) {
		if fn, ok := impl.Functions[a.Name]; ok {
			candidates = append(candidates, &types.ResolvedFunction{Function: fn, SourceType: recvType, Impl: impl})
		}
	}
	tc.finishAttribute(a, recvType, candidates)
}

func (tc *TypeCheckVisitor) finishAttribute(a *ast.Attribute, recvType types.Type, candidates []*types.ResolvedFunction) {
	switch len(candidates) {
	case 0:
		tc.fail(diag.New(diag.UnresolvedAttribute, diag.PhaseTypeCheck, a.Span(),
			"no field or trait method %q on %s", a.Name, recvType.String()))
	case 1:
		a.Resolved = candidates[0]
		a.SetType(types.FunctionRef(*candidates[0].Function))
	default:
		a.Multi = &types.MultiResolvedFunction{Candidates: candidates, SourceType: recvType}
		a.SetType(types.MultiResolvedFunction(*a.Multi))
	}
}

// --- Call --------------------------------------------------------------------

func (tc *TypeCheckVisitor) VisitCall(c *ast.Call) {
	c.Callee.SetScope(tc.Manager.Current())
	c.Callee.Accept(tc)
	if tc.failed() {
		return
	}

	var candidates []*types.ResolvedFunction
	var receiverType types.Type
	switch callee := c.Callee.(type) {
	case *ast.Attribute:
		receiverType = types.Apply(callee.Receiver.Type(), tc.ctx.Bindings)
		if callee.Multi != nil {
			candidates = callee.Multi.Candidates
		} else if callee.Resolved != nil {
			candidates = []*types.ResolvedFunction{callee.Resolved}
		}
	case *ast.Identifier:
		sym, ok := tc.Manager.Current().LookupVar(callee.Name)
		if !ok {
			tc.fail(diag.New(diag.UndefinedSymbol, diag.PhaseTypeCheck, c.Span(), "undefined function %q", callee.Name))
			return
		}
		fnType, ok := sym.VarType.(types.FunctionRef)
		if !ok {
			tc.fail(diag.New(diag.TypeMismatch, diag.PhaseTypeCheck, c.Span(), "%q is not callable", callee.Name))
			return
		}
		fnCopy := fnType
		candidates = []*types.ResolvedFunction{{Function: &fnCopy, SourceType: nil}}
	default:
		tc.fail(diag.InternalError(diag.PhaseTypeCheck, c.Span(), "unsupported call callee kind"))
		return
	}

	if len(candidates) == 0 {
		tc.fail(diag.New(diag.UnresolvedAttribute, diag.PhaseTypeCheck, c.Span(), "no candidate callee resolved"))
		return
	}
	if len(candidates) == 1 && len(candidates[0].Function.Args) != len(c.Args) {
		tc.fail(diag.New(diag.ArityMismatch, diag.PhaseTypeCheck, c.Span(),
			"expected %d argument(s), got %d", len(candidates[0].Function.Args), len(c.Args)))
		return
	}

	_, dynDispatch := types.IsTypeVar(receiverType)

	type attempt struct {
		cand       *types.ResolvedFunction
		binds      types.Binds
		returnType types.Type
	}
	var survivors []attempt

	for _, cand := range candidates {
		fn := cand.Function
		if len(fn.Args) != len(c.Args) {
			continue
		}
		bnd := binder.New(tc.Impls)
		ok := true
		for i, argExpr := range c.Args {
			declared := types.Apply(fn.Args[i], binder.Merge(tc.ctx.Bindings, bnd.Bindings()))
			var observed types.Type
			tc.withExpected(declared, func() {
				observed = tc.typeOf(argExpr)
			})
			if tc.failed() {
				return
			}
			if err := bnd.Resolve(fn.Args[i], observed); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		if tc.ctx.ExpectedReturn != nil {
			if _, isVar := types.IsTypeVar(tc.ctx.ExpectedReturn); !isVar {
				rt := bnd.Bind(fn.ReturnType)
				if !tc.Impls.IsTypeMatch(rt, tc.ctx.ExpectedReturn) && !tc.Impls.IsTypeMatch(tc.ctx.ExpectedReturn, rt) {
					continue
				}
			}
		}
		survivors = append(survivors, attempt{cand: cand, binds: bnd.Bindings(), returnType: bnd.Bind(fn.ReturnType)})
	}

	if len(survivors) == 0 {
		tc.fail(diag.New(diag.TypeMismatch, diag.PhaseTypeCheck, c.Span(), "no matching overload for call"))
		return
	}
	chosen := survivors[0]
	if len(survivors) > 1 {
		sameTrait := true
		first := survivors[0].cand.Impl
		for _, s := range survivors[1:] {
			if first == nil || s.cand.Impl == nil || !first.Trait.Equal(s.cand.Impl.Trait) {
				sameTrait = false
				break
			}
		}
		if !(dynDispatch && sameTrait) {
			tc.fail(diag.New(diag.AmbiguousCall, diag.PhaseTypeCheck, c.Span(), "ambiguous call: %d overloads survive", len(survivors)))
			return
		}
	}

	c.Resolved = chosen.cand
	c.Binds = chosen.binds
	c.DynDispatch = dynDispatch
	c.SetType(chosen.returnType)

	if fn := chosen.cand.Function; len(fn.TypeParameters) > 0 && !dynDispatch {
		tc.specializeCall(fn, chosen.binds)
	}

	if tc.Emit != nil {
		tc.Emit.EmitCall(c)
	}
}

// specializeCall re-enters the callee's body in specialized mode (spec §4.5
// "Specialization pass"): each type-parameter symbol in the callee's inner
// scope is rebound to the binder-substituted type, and the body is
// re-checked with context.type_bindings = binds. Memoized by
// (function, binds) so the fixed-point in §5 terminates.
func (tc *TypeCheckVisitor) specializeCall(fn *types.FunctionRef, binds types.Binds) {
	src, ok := fn.SourceAST.(*ast.FunctionDef)
	if !ok || src.Body == nil {
		return
	}
	key := specializationKey{fn: src, binds: mangleBinds(binds)}
	if tc.specialized[key] {
		return
	}
	tc.specialized[key] = true

	savedCtx := tc.ctx
	tc.ctx = TypeContext{Bindings: binder.Merge(tc.ctx.Bindings, binds)}
	tc.checkFunctionBody(src)
	tc.ctx = savedCtx
}

func mangleBinds(b types.Binds) string {
	s := ""
	for k, v := range b {
		s += k + "=" + v.String() + ";"
	}
	return s
}

// --- Struct init ---------------------------------------------------------

func (tc *TypeCheckVisitor) VisitStructInit(s *ast.StructInit) {
	sym, ok := tc.Manager.Current().LookupType(s.TypeName)
	if !ok || sym.StructDef == nil {
		tc.fail(diag.New(diag.UndefinedSymbol, diag.PhaseTypeCheck, s.Span(), "undefined struct %q", s.TypeName))
		return
	}
	def := sym.StructDef
	bnd := binder.New(tc.Impls)
	for _, f := range s.Fields {
		declared, ok := def.Fields[f.Name]
		if !ok {
			tc.fail(diag.New(diag.UnresolvedAttribute, diag.PhaseTypeCheck, s.Span(), "%s has no field %q", def.Name, f.Name))
			return
		}
		substituted := types.Apply(declared, binder.Merge(tc.ctx.Bindings, bnd.Bindings()))
		var observed types.Type
		tc.withExpected(substituted, func() {
			observed = tc.typeOf(f.Value)
		})
		if tc.failed() {
			return
		}
		if err := bnd.Resolve(declared, observed); err != nil {
			tc.fail(diag.New(diag.TypeMismatch, diag.PhaseTypeCheck, s.Span(),
				"field %q: %v", f.Name, err))
			return
		}
	}
	params := make([]types.Type, len(def.Parameters))
	for i, p := range def.Parameters {
		params[i] = types.Type(p)
	}
	resolved := bnd.Bind(types.TypeRef{Name: def.Name, Parameters: params, StructRef: def})
	ref, ok := resolved.(types.TypeRef)
	if !ok {
		ref = types.TypeRef{Name: def.Name, Parameters: params, StructRef: def}
	}
	s.Resolved = ref
	s.SetType(ref)
}

// --- Statements ----------------------------------------------------------

func (tc *TypeCheckVisitor) VisitExprStatement(e *ast.ExprStatement) {
	e.SetScope(tc.Manager.Current())
	tc.typeOf(e.Value)
}

func (tc *TypeCheckVisitor) VisitVarDef(v *ast.VarDef) {
	v.SetScope(tc.Manager.Current())
	var expected types.Type
	if v.TypeAnnotation != nil {
		if t, err := resolveTypeExpr(tc.Manager.Current(), v.TypeAnnotation); err == nil {
			expected = t
		}
	}
	var observed types.Type
	tc.withExpected(expected, func() {
		observed = tc.typeOf(v.Value)
	})
	if tc.failed() {
		return
	}
	resultType := observed
	if expected != nil {
		if !tc.Impls.IsTypeMatch(observed, expected) {
			tc.fail(diag.New(diag.TypeMismatch, diag.PhaseTypeCheck, v.Span(),
				"let %s: expected %s, got %s", v.Name, expected.String(), observed.String()))
			return
		}
		resultType = expected
	}
	v.ResolvedType = resultType
	sym := scope.Symbol{Name: v.Name, Kind: scope.VarKind, VarType: resultType, DefinedAt: v.Span()}
	if !tc.Manager.Current().UpdateVar(v.Name, sym) {
		if err := tc.Manager.Add(sym); err != nil {
			tc.fail(err)
		}
	}
}

func (tc *TypeCheckVisitor) VisitAssign(a *ast.Assign) {
	a.SetScope(tc.Manager.Current())
	sym, ok := tc.Manager.Current().LookupVar(a.Name)
	if !ok {
		tc.fail(diag.New(diag.UndefinedSymbol, diag.PhaseTypeCheck, a.Span(), "undefined variable %q", a.Name))
		return
	}
	var observed types.Type
	tc.withExpected(sym.VarType, func() {
		observed = tc.typeOf(a.Value)
	})
	if tc.failed() {
		return
	}
	if !tc.Impls.IsTypeMatch(observed, sym.VarType) {
		tc.fail(diag.New(diag.TypeMismatch, diag.PhaseTypeCheck, a.Span(),
			"assignment to %s: expected %s, got %s", a.Name, sym.VarType.String(), observed.String()))
	}
}

func (tc *TypeCheckVisitor) VisitIf(i *ast.If) {
	i.SetScope(tc.Manager.Current())
	boolT := types.Primitive{Name: config.BoolType}
	for _, br := range i.Branches {
		var cond types.Type
		tc.withExpected(boolT, func() { cond = tc.typeOf(br.Condition) })
		if tc.failed() {
			return
		}
		if cond.String() != boolT.String() {
			tc.fail(diag.New(diag.TypeMismatch, diag.PhaseTypeCheck, br.Condition.Span(),
				"if condition must be Bool, got %s", cond.String()))
			return
		}
		br.Body.Accept(tc)
		if tc.failed() {
			return
		}
	}
	if i.Else != nil {
		i.Else.Accept(tc)
	}
}

func (tc *TypeCheckVisitor) VisitWhile(w *ast.While) {
	w.SetScope(tc.Manager.Current())
	boolT := types.Primitive{Name: config.BoolType}
	var cond types.Type
	tc.withExpected(boolT, func() { cond = tc.typeOf(w.Condition) })
	if tc.failed() {
		return
	}
	if cond.String() != boolT.String() {
		tc.fail(diag.New(diag.TypeMismatch, diag.PhaseTypeCheck, w.Condition.Span(),
			"while condition must be Bool, got %s", cond.String()))
		return
	}
	tc.loopDepth++
	w.Body.Accept(tc)
	tc.loopDepth--
}

func (tc *TypeCheckVisitor) VisitBreak(b *ast.Break) {
	b.SetScope(tc.Manager.Current())
	if tc.loopDepth == 0 {
		tc.fail(diag.New(diag.BreakOutsideLoop, diag.PhaseTypeCheck, b.Span(), "break outside while"))
	}
}

func (tc *TypeCheckVisitor) VisitContinue(c *ast.Continue) {
	c.SetScope(tc.Manager.Current())
	if tc.loopDepth == 0 {
		tc.fail(diag.New(diag.ContinueOutsideLoop, diag.PhaseTypeCheck, c.Span(), "continue outside while"))
	}
}

func (tc *TypeCheckVisitor) VisitBlockStatement(b *ast.BlockStatement) {
	b.SetScope(tc.Manager.Current())
	b.Block.Accept(tc)
}

// VisitReturn implements the Return rule (spec §4.5): if the enclosing
// function's declared return is a dynamic-trait type variable and the
// observed type is concrete, mark the node for dynamic wrapping.
func (tc *TypeCheckVisitor) VisitReturn(r *ast.Return) {
	r.SetScope(tc.Manager.Current())
	if len(tc.funcStack) == 0 {
		tc.fail(diag.New(diag.ReturnOutsideFunc, diag.PhaseTypeCheck, r.Span(), "return outside function"))
		return
	}
	declared := tc.funcStack[len(tc.funcStack)-1].ReturnType

	var observed types.Type = types.Primitive{Name: config.UnitType}
	if r.Value != nil {
		tc.withExpected(declared, func() { observed = tc.typeOf(r.Value) })
		if tc.failed() {
			return
		}
	}

	if v, isVar := types.IsTypeVar(types.Apply(declared, tc.ctx.Bindings)); isVar && len(v.Constraints) > 0 {
		if _, observedIsVar := types.IsTypeVar(observed); !observedIsVar {
			r.WrapDynamic = true
			r.WrapTraits = v.Constraints
			if tc.Emit != nil {
				tc.Emit.EmitWrap(observed, v.Constraints)
			}
		}
	}

	if !tc.Impls.IsTypeMatch(observed, types.Apply(declared, tc.ctx.Bindings)) {
		tc.fail(diag.New(diag.TypeMismatch, diag.PhaseTypeCheck, r.Span(),
			"return type mismatch: expected %s, got %s", declared.String(), observed.String()))
	}
}

// --- Declarations (stage-2 body pass) -------------------------------------

func (tc *TypeCheckVisitor) VisitStructDef(*ast.StructDef) {}
func (tc *TypeCheckVisitor) VisitTraitDef(*ast.TraitDef)   {}

func (tc *TypeCheckVisitor) VisitTraitImplDef(i *ast.TraitImplDef) {
	i.SetScope(tc.Manager.Current())
	for _, fn := range i.Functions {
		tc.checkFunctionBody(fn)
		if tc.failed() {
			return
		}
	}
}

// VisitFunctionDef checks the body once under its own declared (possibly
// generic, unbound) signature; a generic function is additionally re-checked
// per call site by specializeCall (spec §4.5 "Specialization pass").
func (tc *TypeCheckVisitor) VisitFunctionDef(f *ast.FunctionDef) {
	f.SetScope(tc.Manager.Current())
	tc.checkFunctionBody(f)
}

// checkFunctionBody pushes the function's parameter scope, binds each
// parameter symbol (substituted through the current context bindings when
// re-entering for specialization), and walks the body.
func (tc *TypeCheckVisitor) checkFunctionBody(f *ast.FunctionDef) {
	if f.Body == nil {
		return
	}
	inner := tc.Manager.Push()
	defer tc.Manager.Pop()

	for _, tp := range f.Signature.TypeParameters {
		inner.Add(scope.Symbol{Name: tp.Name, Kind: scope.GenericKind, GenericVar: tp})
	}
	for i, p := range f.Params {
		argType := types.Apply(f.Signature.Args[i], tc.ctx.Bindings)
		if err := inner.Add(scope.Symbol{Name: p.Name, Kind: scope.VarKind, VarType: argType}); err != nil {
			tc.fail(err)
			return
		}
	}
	if f.Signature.AssociationType != nil {
		inner.Add(scope.Symbol{Name: "self", Kind: scope.VarKind, VarType: f.Signature.AssociationType})
	}

	tc.funcStack = append(tc.funcStack, f.Signature)
	f.Body.SetScope(inner)
	for _, stmt := range f.Body.Statements {
		if tc.failed() {
			break
		}
		stmt.Accept(tc)
	}
	tc.funcStack = tc.funcStack[:len(tc.funcStack)-1]

	if tc.failed() {
		return
	}
	// A Unit-returning body needs no explicit return (falling off the end is
	// itself the Unit value); anything else must return on every path.
	if f.Signature.ReturnType.String() == config.UnitType {
		return
	}
	if !allPathsReturn(f.Body.Statements) {
		tc.fail(diag.New(diag.MissingReturn, diag.PhaseTypeCheck, f.Span(),
			"function %q does not return a value on every path", f.Name))
	}
}

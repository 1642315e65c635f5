// Package check implements the two front-line AST visitors of the semantic
// pipeline (spec §4.4-4.5): DeclarationVisitor (stage 1, scope/symbol
// construction) and TypeCheckVisitor (stage 2, bidirectional type
// elaboration, trait resolution, monomorphization scheduling). Grounded on
// the ancestor module's two-pass analyzer split (internal/analyzer/declaration_pass.go,
// internal/analyzer/type_checker.go), generalized from that module's
// structural/row-typed surface to spec's nominal struct+trait model.
package check

import (
	"fmt"

	"github.com/vane-lang/vane/internal/ast"
	"github.com/vane-lang/vane/internal/config"
	"github.com/vane-lang/vane/internal/diag"
	"github.com/vane-lang/vane/internal/scope"
	"github.com/vane-lang/vane/internal/types"
)

// DeclarationVisitor is stage 1 (spec §4.4): it walks every top-level item
// depth-first, installing struct/trait/function symbols and registering
// trait impls, without traversing function/method bodies. Stage 1 must run
// to completion before stage 2 starts so mutually-recursive declarations
// resolve regardless of source order (spec §4.4 rationale).
type DeclarationVisitor struct {
	ast.BaseVisitor
	Manager *scope.Manager
	Err     error
}

// NewDeclarationVisitor creates a stage-1 visitor sharing mgr's scope stack
// and trait registry with the rest of the pipeline.
func NewDeclarationVisitor(mgr *scope.Manager) *DeclarationVisitor {
	return &DeclarationVisitor{Manager: mgr}
}

func (d *DeclarationVisitor) fail(err error) {
	if d.Err == nil {
		d.Err = err
	}
}

func (d *DeclarationVisitor) failed() bool { return d.Err != nil }

// Run drives stage 1 over prog's top-level statements. Returns the first
// error raised (spec §1 Non-goals: "no recovery past the first failure").
func (d *DeclarationVisitor) Run(prog *ast.Program) error {
	prog.SetScope(d.Manager.Root())
	for _, stmt := range prog.Statements {
		if d.failed() {
			break
		}
		stmt.Accept(d)
	}
	return d.Err
}

func (d *DeclarationVisitor) VisitProgram(p *ast.Program) {
	p.SetScope(d.Manager.Current())
	for _, stmt := range p.Statements {
		if d.failed() {
			return
		}
		stmt.Accept(d)
	}
}

// resolveTypeExpr elaborates a surface TypeExpr against sc: primitives and
// already-declared structs resolve to their definitions, a name matching a
// generic parameter in sc resolves to that TypeVar, an existential
// `impl Trait` resolves to a fresh TypeVar constrained by that trait, and
// anything else is UndefinedSymbol.
func resolveTypeExpr(sc *scope.Scope, te *ast.TypeExpr) (types.Type, error) {
	if te == nil {
		return types.Primitive{Name: config.UnitType}, nil
	}
	switch te.Name {
	case config.IntType, config.FloatType, config.BoolType, config.StringType, config.UnitType, config.AnyType:
		return types.Primitive{Name: te.Name}, nil
	}

	if sym, ok := sc.LookupGeneric(te.Name); ok {
		return sym.GenericVar, nil
	}

	if sym, ok := sc.LookupType(te.Name); ok {
		params := make([]types.Type, len(te.Parameters))
		for i, p := range te.Parameters {
			rt, err := resolveTypeExpr(sc, p)
			if err != nil {
				return nil, err
			}
			params[i] = rt
		}
		return types.TypeRef{Name: sym.Name, Parameters: params, StructRef: sym.StructDef}, nil
	}

	if te.IsExistential {
		if sym, ok := sc.LookupTrait(te.Name); ok {
			params := make([]types.Type, len(te.Parameters))
			for i, p := range te.Parameters {
				rt, err := resolveTypeExpr(sc, p)
				if err != nil {
					return nil, err
				}
				params[i] = rt
			}
			ref := types.TraitRef{Name: sym.Name, Parameters: params}
			return types.NewTypeVar("impl_"+te.Name, ref), nil
		}
	}

	return nil, &diag.Error{
		Kind:    diag.UndefinedSymbol,
		Phase:   diag.PhaseDeclaration,
		Message: fmt.Sprintf("undefined type %q", te.Name),
	}
}

// bindTypeParams pushes nothing; it installs each TypeParam of params as a fresh
// GenericKind symbol in sc, returning the minted TypeVars in declaration
// order (spec §4.4: "convert the parameter list to fresh type variables").
func bindTypeParams(sc *scope.Scope, params []ast.TypeParam) ([]types.TypeVar, error) {
	vars := make([]types.TypeVar, len(params))
	for i, p := range params {
		constraints := make([]types.TraitRef, 0, len(p.Constraints))
		for _, cname := range p.Constraints {
			tsym, ok := sc.LookupTrait(cname)
			if !ok {
				return nil, &diag.Error{Kind: diag.UndefinedSymbol, Phase: diag.PhaseDeclaration,
					Message: fmt.Sprintf("undefined trait %q in constraint", cname)}
			}
			constraints = append(constraints, types.TraitRef{Name: tsym.Name})
		}
		tv := types.NewTypeVar(p.Name, constraints...)
		vars[i] = tv
		if err := sc.Add(scope.Symbol{Name: p.Name, Kind: scope.GenericKind, GenericVar: tv}); err != nil {
			return nil, err
		}
	}
	return vars, nil
}

func (d *DeclarationVisitor) VisitStructDef(s *ast.StructDef) {
	s.SetScope(d.Manager.Current())
	root := d.Manager.Current()

	inner := d.Manager.Push()
	defer d.Manager.Pop()

	tparams, err := bindTypeParams(inner, s.TypeParams)
	if err != nil {
		d.fail(err)
		return
	}
	selfVar := types.NewTypeVar(config.SelfTypeVarName)
	if err := inner.Add(scope.Symbol{Name: config.SelfTypeVarName, Kind: scope.GenericKind, GenericVar: selfVar}); err != nil {
		d.fail(err)
		return
	}

	fields := make(map[string]types.Type, len(s.Fields))
	order := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		ft, err := resolveTypeExpr(inner, f.Type)
		if err != nil {
			d.fail(err)
			return
		}
		fields[f.Name] = ft
		order = append(order, f.Name)
	}

	def := &types.StructDef{Name: s.Name, Fields: fields, FieldOrder: order, Parameters: tparams}
	s.Def = def
	if err := root.Add(scope.Symbol{Name: s.Name, Kind: scope.TypeKind, StructDef: def, DefinedAt: s.Span()}); err != nil {
		d.fail(err)
	}
}

func (d *DeclarationVisitor) VisitTraitDef(t *ast.TraitDef) {
	t.SetScope(d.Manager.Current())
	root := d.Manager.Current()

	inner := d.Manager.Push()
	defer d.Manager.Pop()

	tparams, err := bindTypeParams(inner, t.TypeParams)
	if err != nil {
		d.fail(err)
		return
	}
	selfVar := types.NewTypeVar(config.SelfTypeVarName)
	if err := inner.Add(scope.Symbol{Name: config.SelfTypeVarName, Kind: scope.GenericKind, GenericVar: selfVar}); err != nil {
		d.fail(err)
		return
	}

	funcs := make(map[string]*types.FunctionRef, len(t.Functions))
	for _, fn := range t.Functions {
		sig, err := elaborateSignature(inner, fn)
		if err != nil {
			d.fail(err)
			return
		}
		sig.AssociationTrait = &types.TraitRef{Name: t.Name}
		fn.Signature = sig
		funcs[fn.Name] = sig
	}

	def := &types.TraitDef{Name: t.Name, Parameters: tparams, SelfType: selfVar, Functions: funcs}
	t.Def = def
	if err := root.Add(scope.Symbol{Name: t.Name, Kind: scope.TraitKind, TraitDef: def, DefinedAt: t.Span()}); err != nil {
		d.fail(err)
	}
}

// elaborateSignature resolves fn's parameter and return types against sc
// without traversing fn.Body (spec §4.4: "the body is not traversed yet").
func elaborateSignature(sc *scope.Scope, fn *ast.FunctionDef) (*types.FunctionRef, error) {
	inner := sc
	localTParams, err := bindTypeParams(sc, fn.TypeParams)
	if err != nil {
		return nil, err
	}

	args := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		pt, err := resolveTypeExpr(inner, p.Type)
		if err != nil {
			return nil, err
		}
		args[i] = pt
	}
	ret, err := resolveTypeExpr(inner, fn.ReturnType)
	if err != nil {
		return nil, err
	}
	return &types.FunctionRef{
		Name:           fn.Name,
		Args:           args,
		ReturnType:     ret,
		TypeParameters: localTParams,
		SourceAST:      fn,
	}, nil
}

func (d *DeclarationVisitor) VisitTraitImplDef(i *ast.TraitImplDef) {
	i.SetScope(d.Manager.Current())

	inner := d.Manager.Push()
	defer d.Manager.Pop()

	tparams, err := bindTypeParams(inner, i.TypeParams)
	if err != nil {
		d.fail(err)
		return
	}

	targetType, err := resolveTypeExpr(inner, i.Target)
	if err != nil {
		d.fail(err)
		return
	}
	traitSym, ok := inner.LookupTrait(i.Trait.Name)
	if !ok {
		d.fail(&diag.Error{Kind: diag.UndefinedSymbol, Phase: diag.PhaseDeclaration,
			Message: fmt.Sprintf("undefined trait %q", i.Trait.Name)})
		return
	}
	traitParams := make([]types.Type, len(i.Trait.Parameters))
	for idx, p := range i.Trait.Parameters {
		pt, err := resolveTypeExpr(inner, p)
		if err != nil {
			d.fail(err)
			return
		}
		traitParams[idx] = pt
	}
	traitRef := types.TraitRef{Name: traitSym.Name, Parameters: traitParams}

	// `self` is bound as a variable typed as the target (spec §4.4: "a self
	// variable typed as the target type").
	if err := inner.Add(scope.Symbol{Name: "self", Kind: scope.VarKind, VarType: targetType}); err != nil {
		d.fail(err)
		return
	}

	funcs := make(map[string]*types.FunctionRef, len(i.Functions))
	for _, fn := range i.Functions {
		sig, err := elaborateSignature(inner, fn)
		if err != nil {
			d.fail(err)
			return
		}
		sig.AssociationTrait = &traitRef
		sig.AssociationType = targetType
		fn.Signature = sig
		funcs[fn.Name] = sig
	}

	impl := &types.TraitImpl{
		Trait:          traitRef,
		TargetType:     targetType,
		TypeParameters: tparams,
		Functions:      funcs,
	}
	i.Impl = impl

	for _, existing := range d.Manager.TraitImpls().All() {
		if existing.Trait.Equal(impl.Trait) && existing.TargetType.String() == impl.TargetType.String() {
			d.fail(&diag.Error{Kind: diag.DuplicateDefinition, Phase: diag.PhaseDeclaration,
				Message: fmt.Sprintf("duplicate impl of %s for %s", impl.Trait.String(), impl.TargetType.String())})
			return
		}
	}
	d.Manager.TraitImpls().AddImpl(impl)
}

func (d *DeclarationVisitor) VisitFunctionDef(f *ast.FunctionDef) {
	f.SetScope(d.Manager.Current())
	root := d.Manager.Current()

	inner := d.Manager.Push()
	sig, err := elaborateSignature(inner, f)
	d.Manager.Pop()
	if err != nil {
		d.fail(err)
		return
	}
	f.Signature = sig

	fnType := types.FunctionRef(*sig)
	if err := root.Add(scope.Symbol{Name: f.Name, Kind: scope.VarKind, VarType: fnType, DefinedAt: f.Span()}); err != nil {
		d.fail(err)
	}
}

func (d *DeclarationVisitor) VisitVarDef(v *ast.VarDef) {
	v.SetScope(d.Manager.Current())
	placeholder := types.Type(types.Primitive{Name: config.AnyType})
	if v.TypeAnnotation != nil {
		t, err := resolveTypeExpr(d.Manager.Current(), v.TypeAnnotation)
		if err != nil {
			d.fail(err)
			return
		}
		placeholder = t
	}
	if err := d.Manager.Add(scope.Symbol{Name: v.Name, Kind: scope.VarKind, VarType: placeholder, DefinedAt: v.Span()}); err != nil {
		d.fail(err)
	}
}

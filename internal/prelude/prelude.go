// Package prelude wires the fixed set of primitives, traits, and trait
// impls every vane program starts with (spec §1: "Int, Float, Bool, String,
// Unit, Any are prelude-registered, not literal syntax the checker
// special-cases"). Because lexing/parsing a textual prelude source is out
// of scope, the prelude is built directly as scope/types values — the same
// shapes stage 1 would have produced by running the front end over prelude
// source, per spec §1's "no compiler shortcuts": every primitive method
// still goes through the ordinary TraitImpls/binder machinery at a call
// site, it simply has no vane-source AST body; its Name is looked up in the
// runtime.Bridge() native table when the call executes.
// Grounded on the ancestor module's builtin-registration pass
// (internal/analyzer/builtins.go: a Go-constructed table of global symbols
// installed into the root SymbolTable before the user's own AST is walked).
package prelude

import (
	"github.com/vane-lang/vane/internal/config"
	"github.com/vane-lang/vane/internal/scope"
	"github.com/vane-lang/vane/internal/traits"
	"github.com/vane-lang/vane/internal/types"
)

// primitiveNames is every prelude-registered primitive (spec §1).
var primitiveNames = []string{
	config.IntType, config.FloatType, config.BoolType, config.StringType, config.UnitType,
}

// native builds a FunctionRef with no AST body: SourceAST is left nil, and
// Name is set to its runtime bridge identity (the EmitVisitor's
// mangledNameFor treats a SourceAST-less function's Name as already final,
// never mangling it further — see internal/emit/emit.go).
func native(bridgeName string, args []types.Type, ret types.Type) *types.FunctionRef {
	return &types.FunctionRef{Name: bridgeName, Args: args, ReturnType: ret}
}

func prim(name string) types.Type { return types.Primitive{Name: name} }

// opsImpl builds the Ops impl (add/sub/mul/div) for primitive name, whose
// arithmetic natives follow the "<op>_<type>" bridge convention.
func opsImpl(name string) *types.TraitImpl {
	self := prim(name)
	return &types.TraitImpl{
		Trait:      types.TraitRef{Name: config.OpsTraitName},
		TargetType: self,
		Functions: map[string]*types.FunctionRef{
			config.AddMethodName: native("add_"+lower(name), []types.Type{self}, self),
			config.SubMethodName: native("sub_"+lower(name), []types.Type{self}, self),
			config.MulMethodName: native("mul_"+lower(name), []types.Type{self}, self),
			config.DivMethodName: native("div_"+lower(name), []types.Type{self}, self),
		},
	}
}

// compareImpl builds the Compare impl (gt/lt/ge/le/eq) for primitive name.
func compareImpl(name string) *types.TraitImpl {
	self := prim(name)
	boolT := prim(config.BoolType)
	return &types.TraitImpl{
		Trait:      types.TraitRef{Name: config.CompareTraitName},
		TargetType: self,
		Functions: map[string]*types.FunctionRef{
			config.GtMethodName: native("gt_"+lower(name), []types.Type{self}, boolT),
			config.LtMethodName: native("lt_"+lower(name), []types.Type{self}, boolT),
			config.GeMethodName: native("ge_"+lower(name), []types.Type{self}, boolT),
			config.LeMethodName: native("le_"+lower(name), []types.Type{self}, boolT),
			config.EqMethodName: native("eq_"+lower(name), []types.Type{self}, boolT),
		},
	}
}

// toStringImpl builds the ToString impl for primitive name, whose native
// follows the "<type>_to_string" bridge convention.
func toStringImpl(name string) *types.TraitImpl {
	self := prim(name)
	return &types.TraitImpl{
		Trait:      types.TraitRef{Name: config.ToStringTraitName},
		TargetType: self,
		Functions: map[string]*types.FunctionRef{
			config.ToStringMethodName: native(lower(name)+"_to_string", nil, prim(config.StringType)),
		},
	}
}

func lower(s string) string {
	b := []byte(s)
	if len(b) > 0 && b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}

// Install registers every prelude primitive, trait, and impl into root (the
// compilation's global scope) and impls (the shared TraitImpls registry).
// Call once before running DeclarationVisitor over user source (spec §1).
func Install(root *scope.Scope, impls *traits.TraitImpls) {
	for _, name := range primitiveNames {
		root.Add(scope.Symbol{Name: name, Kind: scope.TypeKind})
	}
	root.Add(scope.Symbol{Name: config.AnyType, Kind: scope.TypeKind})

	opsDef := &types.TraitDef{Name: config.OpsTraitName, SelfType: types.NewTypeVar(config.SelfTypeVarName)}
	compareDef := &types.TraitDef{Name: config.CompareTraitName, SelfType: types.NewTypeVar(config.SelfTypeVarName)}
	toStringDef := &types.TraitDef{Name: config.ToStringTraitName, SelfType: types.NewTypeVar(config.SelfTypeVarName)}
	root.Add(scope.Symbol{Name: config.OpsTraitName, Kind: scope.TraitKind, TraitDef: opsDef})
	root.Add(scope.Symbol{Name: config.CompareTraitName, Kind: scope.TraitKind, TraitDef: compareDef})
	root.Add(scope.Symbol{Name: config.ToStringTraitName, Kind: scope.TraitKind, TraitDef: toStringDef})

	// Ops and Compare cover Int/Float/String (String has no div/sub/mul, but
	// the prelude only wires `add` for String's Ops use by omitting the
	// others — spec §9 leaves string arithmetic beyond `+` unspecified, so
	// this repo narrows String's Ops impl to concatenation only).
	impls.AddImpl(opsImpl(config.IntType))
	impls.AddImpl(opsImpl(config.FloatType))
	impls.AddImpl(stringOpsImpl())
	impls.AddImpl(compareImpl(config.IntType))
	impls.AddImpl(compareImpl(config.FloatType))
	impls.AddImpl(stringCompareImpl())

	for _, name := range []string{config.IntType, config.FloatType, config.BoolType, config.StringType} {
		impls.AddImpl(toStringImpl(name))
	}

	// Conversions (spec §6 runtime bridge): int_to_float, string_to_float,
	// int_to_string, float_to_string, bool_to_string. Registered as plain
	// free functions rather than trait methods since no Into-like trait is
	// named in spec.md (SPEC_FULL §12 documents Into<T> as a supplemented
	// user-space trait pattern; these fixed conversions are host builtins).
	root.Add(scope.Symbol{Name: "int_to_float", Kind: scope.VarKind,
		VarType: types.FunctionRef(*native("int_to_float", []types.Type{prim(config.IntType)}, prim(config.FloatType)))})
	root.Add(scope.Symbol{Name: "string_to_float", Kind: scope.VarKind,
		VarType: types.FunctionRef(*native("string_to_float", []types.Type{prim(config.StringType)}, prim(config.FloatType)))})
	root.Add(scope.Symbol{Name: "int_to_string", Kind: scope.VarKind,
		VarType: types.FunctionRef(*native("int_to_string", []types.Type{prim(config.IntType)}, prim(config.StringType)))})
	root.Add(scope.Symbol{Name: "float_to_string", Kind: scope.VarKind,
		VarType: types.FunctionRef(*native("float_to_string", []types.Type{prim(config.FloatType)}, prim(config.StringType)))})
	root.Add(scope.Symbol{Name: "bool_to_string", Kind: scope.VarKind,
		VarType: types.FunctionRef(*native("bool_to_string", []types.Type{prim(config.BoolType)}, prim(config.StringType)))})

	// echo/panic/is_true/logic_and/logic_or (spec §6 bridge). `and`/`or`
	// desugar directly to calls on logic_and/logic_or (see
	// internal/check/typecheck.go's desugarLogic, spec §9: "both operands
	// are always evaluated, since they desugar to method calls") — these
	// two entries are also reachable as ordinary callable functions from
	// vane source.
	anyT := prim(config.AnyType)
	unitT := prim(config.UnitType)
	boolT := prim(config.BoolType)
	root.Add(scope.Symbol{Name: "echo", Kind: scope.VarKind,
		VarType: types.FunctionRef(*native("echo", []types.Type{anyT}, unitT))})
	root.Add(scope.Symbol{Name: "panic", Kind: scope.VarKind,
		VarType: types.FunctionRef(*native("panic", []types.Type{anyT}, unitT))})
	root.Add(scope.Symbol{Name: "is_true", Kind: scope.VarKind,
		VarType: types.FunctionRef(*native("is_true", []types.Type{boolT}, boolT))})
	root.Add(scope.Symbol{Name: "logic_and", Kind: scope.VarKind,
		VarType: types.FunctionRef(*native("logic_and", []types.Type{boolT, boolT}, boolT))})
	root.Add(scope.Symbol{Name: "logic_or", Kind: scope.VarKind,
		VarType: types.FunctionRef(*native("logic_or", []types.Type{boolT, boolT}, boolT))})
}

func stringOpsImpl() *types.TraitImpl {
	self := prim(config.StringType)
	return &types.TraitImpl{
		Trait:      types.TraitRef{Name: config.OpsTraitName},
		TargetType: self,
		Functions: map[string]*types.FunctionRef{
			config.AddMethodName: native("add_string", []types.Type{self}, self),
		},
	}
}

func stringCompareImpl() *types.TraitImpl {
	self := prim(config.StringType)
	boolT := prim(config.BoolType)
	return &types.TraitImpl{
		Trait:      types.TraitRef{Name: config.CompareTraitName},
		TargetType: self,
		Functions: map[string]*types.FunctionRef{
			config.GtMethodName: native("gt_string", []types.Type{self}, boolT),
			config.LtMethodName: native("lt_string", []types.Type{self}, boolT),
			config.GeMethodName: native("ge_string", []types.Type{self}, boolT),
			config.LeMethodName: native("le_string", []types.Type{self}, boolT),
			config.EqMethodName: native("eq_string", []types.Type{self}, boolT),
		},
	}
}

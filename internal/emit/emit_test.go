package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vane-lang/vane/internal/ast"
	"github.com/vane-lang/vane/internal/runtime"
	"github.com/vane-lang/vane/internal/token"
	"github.com/vane-lang/vane/internal/traits"
	"github.com/vane-lang/vane/internal/types"
)

func zeroSpan() token.Span { return token.Span{} }

func freeFunctionDef(name string, tparams ...types.TypeVar) *ast.FunctionDef {
	body := ast.NewBlock(zeroSpan(), nil)
	def := ast.NewFunctionDef(zeroSpan(), name, nil, nil, nil, body)
	def.Signature = &types.FunctionRef{Name: name, SourceAST: def, TypeParameters: tparams}
	return def
}

func TestEmitCall_RegistersPlainFreeFunction(t *testing.T) {
	impls := traits.NewTraitImpls()
	meta := runtime.NewMetaManager()
	e := NewEmitVisitor(impls, meta)

	def := freeFunctionDef("greet")
	callee := ast.NewIdentifier(zeroSpan(), "greet")
	call := ast.NewCall(zeroSpan(), callee, nil)
	call.Resolved = &types.ResolvedFunction{Function: def.Signature}

	e.EmitCall(call)

	require.Contains(t, e.Program.Functions, "greet")
	assert.Equal(t, def, e.Program.Functions["greet"].Def)
	assert.Equal(t, "greet", call.Mangled)
}

func TestEmitCall_MangledNameForSpecializedGeneric(t *testing.T) {
	impls := traits.NewTraitImpls()
	meta := runtime.NewMetaManager()
	e := NewEmitVisitor(impls, meta)

	tv := types.TypeVar{Name: "T"}
	def := freeFunctionDef("identity", tv)
	callee := ast.NewIdentifier(zeroSpan(), "identity")
	call := ast.NewCall(zeroSpan(), callee, nil)
	call.Resolved = &types.ResolvedFunction{Function: def.Signature}
	call.Binds = types.Binds{tv.Key(): types.Primitive{Name: "Int"}}

	e.EmitCall(call)

	assert.Equal(t, "identity___Int", call.Mangled)
	require.Contains(t, e.Program.Functions, "identity___Int")
}

func TestEmitCall_NativeWithoutBodyIsNotRegistered(t *testing.T) {
	impls := traits.NewTraitImpls()
	meta := runtime.NewMetaManager()
	e := NewEmitVisitor(impls, meta)

	fn := &types.FunctionRef{Name: "add_int"} // no SourceAST: a prelude native
	callee := ast.NewIdentifier(zeroSpan(), "add_int")
	call := ast.NewCall(zeroSpan(), callee, nil)
	call.Resolved = &types.ResolvedFunction{Function: fn}

	e.EmitCall(call)

	assert.Equal(t, "add_int", call.Mangled)
	assert.Empty(t, e.Program.Functions)
}

func TestEmitCall_DynDispatchLeavesMangledEmpty(t *testing.T) {
	impls := traits.NewTraitImpls()
	meta := runtime.NewMetaManager()
	e := NewEmitVisitor(impls, meta)

	def := freeFunctionDef("greet")
	callee := ast.NewIdentifier(zeroSpan(), "greet")
	call := ast.NewCall(zeroSpan(), callee, nil)
	call.Resolved = &types.ResolvedFunction{Function: def.Signature}
	call.DynDispatch = true

	e.EmitCall(call)

	assert.Empty(t, call.Mangled)
}

func TestEnsureDynMethods_PopulatesVTableAndProgram(t *testing.T) {
	impls := traits.NewTraitImpls()
	meta := runtime.NewMetaManager()
	e := NewEmitVisitor(impls, meta)

	showDef := freeFunctionDef("show")
	target := types.Primitive{Name: "Point"}
	trait := types.TraitRef{Name: "Show"}
	impl := &types.TraitImpl{
		Trait:      trait,
		TargetType: target,
		Functions:  map[string]*types.FunctionRef{"show": showDef.Signature},
	}
	impls.AddImpl(impl)

	e.ensureDynMethods(target, []types.TraitRef{trait})

	mangled := MangleTraitMethod(trait, target, "show")
	require.Contains(t, e.Program.Functions, mangled)

	got, ok := meta.Meta("Point").Lookup("show", "Show")
	require.True(t, ok)
	assert.Equal(t, mangled, got)
}

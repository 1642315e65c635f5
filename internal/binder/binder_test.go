package binder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vane-lang/vane/internal/types"
)

type fakeImpls struct {
	ok bool
}

func (f fakeImpls) IsTypeMatch(observed, pattern types.Type) bool { return f.ok }

func TestResolve_PrimitiveMatch(t *testing.T) {
	b := New(nil)
	err := b.Resolve(types.Primitive{Name: "Int"}, types.Primitive{Name: "Int"})
	assert.NoError(t, err)
}

func TestResolve_PrimitiveMismatch(t *testing.T) {
	b := New(nil)
	err := b.Resolve(types.Primitive{Name: "Int"}, types.Primitive{Name: "String"})
	assert.Error(t, err)
}

func TestResolve_AnyMatchesAnything(t *testing.T) {
	b := New(nil)
	assert.NoError(t, b.Resolve(types.Primitive{Name: "Any"}, types.Primitive{Name: "Int"}))
	assert.NoError(t, b.Resolve(types.Primitive{Name: "Int"}, types.Primitive{Name: "Any"}))
}

func TestResolve_BindsTypeVar(t *testing.T) {
	b := New(nil)
	tv := types.TypeVar{Name: "T", ID: "t1"}
	require.NoError(t, b.Resolve(tv, types.Primitive{Name: "Int"}))
	assert.Equal(t, "Int", b.Bindings()[tv.Key()].String())
}

func TestResolve_RebindingSameTypeIsIdempotent(t *testing.T) {
	b := New(nil)
	tv := types.TypeVar{Name: "T", ID: "t1"}
	require.NoError(t, b.Resolve(tv, types.Primitive{Name: "Int"}))
	assert.NoError(t, b.Resolve(tv, types.Primitive{Name: "Int"}))
}

func TestResolve_RebindingDifferentTypeConflicts(t *testing.T) {
	b := New(nil)
	tv := types.TypeVar{Name: "T", ID: "t1"}
	require.NoError(t, b.Resolve(tv, types.Primitive{Name: "Int"}))
	err := b.Resolve(tv, types.Primitive{Name: "String"})
	require.Error(t, err)
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestResolve_ConstraintViolation(t *testing.T) {
	b := New(fakeImpls{ok: false})
	tv := types.TypeVar{Name: "T", ID: "t1", Constraints: []types.TraitRef{{Name: "Show"}}}
	err := b.Resolve(tv, types.Primitive{Name: "Int"})
	require.Error(t, err)
	var violation *ConstraintViolationError
	assert.ErrorAs(t, err, &violation)
}

func TestResolve_ConstraintSatisfied(t *testing.T) {
	b := New(fakeImpls{ok: true})
	tv := types.TypeVar{Name: "T", ID: "t1", Constraints: []types.TraitRef{{Name: "Show"}}}
	assert.NoError(t, b.Resolve(tv, types.Primitive{Name: "Int"}))
}

func TestResolve_NestedGenericParameters(t *testing.T) {
	b := New(nil)
	tv := types.TypeVar{Name: "T", ID: "t1"}
	defined := types.TypeRef{Name: "Box", Parameters: []types.Type{tv}}
	observed := types.TypeRef{Name: "Box", Parameters: []types.Type{types.Primitive{Name: "Int"}}}
	require.NoError(t, b.Resolve(defined, observed))
	assert.Equal(t, "Int", b.Bindings()[tv.Key()].String())
}

func TestResolve_ArityMismatchOnTypeRef(t *testing.T) {
	b := New(nil)
	defined := types.TypeRef{Name: "Box", Parameters: []types.Type{types.Primitive{Name: "Int"}}}
	observed := types.TypeRef{Name: "Box", Parameters: nil}
	assert.Error(t, b.Resolve(defined, observed))
}

func TestBind_SubstitutesAccumulatedBindings(t *testing.T) {
	b := New(nil)
	tv := types.TypeVar{Name: "T", ID: "t1"}
	require.NoError(t, b.Resolve(tv, types.Primitive{Name: "Int"}))
	bound := b.Bind(tv)
	assert.Equal(t, "Int", bound.String())
}

func TestMerge_InnerOverridesOuter(t *testing.T) {
	outer := types.Binds{"t1": types.Primitive{Name: "Int"}}
	inner := types.Binds{"t1": types.Primitive{Name: "String"}, "t2": types.Primitive{Name: "Bool"}}
	merged := Merge(outer, inner)
	assert.Equal(t, "String", merged["t1"].String())
	assert.Equal(t, "Bool", merged["t2"].String())
}

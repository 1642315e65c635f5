package traits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vane-lang/vane/internal/types"
)

func showImpl(target types.Type) *types.TraitImpl {
	return &types.TraitImpl{
		Trait:      types.TraitRef{Name: "Show"},
		TargetType: target,
		Functions: map[string]*types.FunctionRef{
			"show": {Name: "show", ReturnType: types.Primitive{Name: "String"}},
		},
	}
}

func TestIsTypeMatch_ConcretePrimitivesMustMatchByName(t *testing.T) {
	r := NewTraitImpls()
	assert.True(t, r.IsTypeMatch(types.Primitive{Name: "Int"}, types.Primitive{Name: "Int"}))
	assert.False(t, r.IsTypeMatch(types.Primitive{Name: "Int"}, types.Primitive{Name: "String"}))
}

func TestIsTypeMatch_UnconstrainedVariablePatternAcceptsAnything(t *testing.T) {
	r := NewTraitImpls()
	pattern := types.TypeVar{Name: "T", ID: "t1"}
	assert.True(t, r.IsTypeMatch(types.Primitive{Name: "Int"}, pattern))
}

func TestIsTypeMatch_ConstrainedVariablePatternNeedsImpl(t *testing.T) {
	r := NewTraitImpls()
	r.AddImpl(showImpl(types.Primitive{Name: "Int"}))

	constrained := types.TypeVar{Name: "T", ID: "t1", Constraints: []types.TraitRef{{Name: "Show"}}}
	assert.True(t, r.IsTypeMatch(types.Primitive{Name: "Int"}, constrained))
	assert.False(t, r.IsTypeMatch(types.Primitive{Name: "String"}, constrained))
}

func TestIsTypeMatch_VariableObservedNeverNarrowerThanConcretePattern(t *testing.T) {
	r := NewTraitImpls()
	observed := types.TypeVar{Name: "T", ID: "t1"}
	assert.False(t, r.IsTypeMatch(observed, types.Primitive{Name: "Int"}))
}

func TestIsTypeMatch_BareTraitRefPatternLiftedToSyntheticVariable(t *testing.T) {
	r := NewTraitImpls()
	r.AddImpl(showImpl(types.Primitive{Name: "Int"}))
	assert.True(t, r.IsTypeMatch(types.Primitive{Name: "Int"}, types.TraitRef{Name: "Show"}))
}

func TestIsTypeMatch_NestedGenericParameters(t *testing.T) {
	r := NewTraitImpls()
	boxInt := types.TypeRef{Name: "Box", Parameters: []types.Type{types.Primitive{Name: "Int"}}}
	boxIntPattern := types.TypeRef{Name: "Box", Parameters: []types.Type{types.Primitive{Name: "Int"}}}
	boxStringPattern := types.TypeRef{Name: "Box", Parameters: []types.Type{types.Primitive{Name: "String"}}}
	assert.True(t, r.IsTypeMatch(boxInt, boxIntPattern))
	assert.False(t, r.IsTypeMatch(boxInt, boxStringPattern))
}

func TestGetImpl_FiltersByTraitAndTarget(t *testing.T) {
	r := NewTraitImpls()
	r.AddImpl(showImpl(types.Primitive{Name: "Int"}))
	r.AddImpl(showImpl(types.Primitive{Name: "String"}))

	got := r.GetImpl(types.Primitive{Name: "Int"}, types.TraitRef{Name: "Show"}, false)
	require.Len(t, got, 1)
	assert.Equal(t, "Int", got[0].TargetType.String())
}

func TestGetImpl_NeedBindSubstitutesGenericTarget(t *testing.T) {
	r := NewTraitImpls()
	tv := types.TypeVar{Name: "T", ID: "t1"}
	impl := &types.TraitImpl{
		Trait:      types.TraitRef{Name: "Show"},
		TargetType: types.TypeRef{Name: "Box", Parameters: []types.Type{tv}},
		Functions: map[string]*types.FunctionRef{
			"show": {Name: "show", Args: []types.Type{tv}, ReturnType: types.Primitive{Name: "String"}},
		},
	}
	r.AddImpl(impl)

	query := types.TypeRef{Name: "Box", Parameters: []types.Type{types.Primitive{Name: "Int"}}}
	got := r.GetImpl(query, types.TraitRef{Name: "Show"}, true)
	require.Len(t, got, 1)
	assert.Equal(t, "Int", got[0].Functions["show"].Args[0].String())
}

func TestGetImplByType_IgnoresTrait(t *testing.T) {
	r := NewTraitImpls()
	r.AddImpl(showImpl(types.Primitive{Name: "Int"}))
	got := r.GetImplByType(types.Primitive{Name: "Int"})
	require.Len(t, got, 1)
}

func TestGetImplByTrait_IgnoresTarget(t *testing.T) {
	r := NewTraitImpls()
	r.AddImpl(showImpl(types.Primitive{Name: "Int"}))
	r.AddImpl(showImpl(types.Primitive{Name: "String"}))
	got := r.GetImplByTrait(types.TraitRef{Name: "Show"})
	assert.Len(t, got, 2)
}

func TestAll_ReturnsEveryRegisteredImpl(t *testing.T) {
	r := NewTraitImpls()
	r.AddImpl(showImpl(types.Primitive{Name: "Int"}))
	r.AddImpl(showImpl(types.Primitive{Name: "String"}))
	assert.Len(t, r.All(), 2)
}

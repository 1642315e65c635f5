package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vane-lang/vane/internal/types"
)

func TestAdd_RejectsDuplicateInSameNameSpace(t *testing.T) {
	mgr := NewManager()
	require.NoError(t, mgr.Add(Symbol{Name: "x", Kind: VarKind, VarType: types.Primitive{Name: "Int"}}))
	err := mgr.Add(Symbol{Name: "x", Kind: VarKind, VarType: types.Primitive{Name: "Int"}})
	require.Error(t, err)
	var dup *DuplicateDefinitionError
	assert.ErrorAs(t, err, &dup)
}

func TestAdd_SameNameDifferentNameSpacesDoesNotCollide(t *testing.T) {
	mgr := NewManager()
	require.NoError(t, mgr.Add(Symbol{Name: "Box", Kind: VarKind, VarType: types.Primitive{Name: "Int"}}))
	require.NoError(t, mgr.Add(Symbol{Name: "Box", Kind: TypeKind, StructDef: &types.StructDef{Name: "Box"}}))
}

func TestLookup_WalksToParentScope(t *testing.T) {
	mgr := NewManager()
	require.NoError(t, mgr.Root().Add(Symbol{Name: "g", Kind: VarKind, VarType: types.Primitive{Name: "Int"}}))

	mgr.Push()
	sym, ok := mgr.Current().LookupVar("g")
	require.True(t, ok)
	assert.Equal(t, "g", sym.Name)
}

func TestLookup_ChildShadowsParentWithoutMutatingParent(t *testing.T) {
	mgr := NewManager()
	require.NoError(t, mgr.Root().Add(Symbol{Name: "x", Kind: VarKind, VarType: types.Primitive{Name: "Int"}}))

	mgr.Push()
	require.NoError(t, mgr.Current().Add(Symbol{Name: "x", Kind: VarKind, VarType: types.Primitive{Name: "String"}}))

	sym, _ := mgr.Current().LookupVar("x")
	assert.Equal(t, "String", sym.VarType.String())

	rootSym, _ := mgr.Root().LookupVar("x")
	assert.Equal(t, "Int", rootSym.VarType.String())
}

func TestPop_IsLIFOAndDiscardsChildBindings(t *testing.T) {
	mgr := NewManager()
	mgr.Push()
	require.NoError(t, mgr.Current().Add(Symbol{Name: "tmp", Kind: VarKind, VarType: types.Primitive{Name: "Int"}}))
	mgr.Pop()

	_, ok := mgr.Current().LookupVar("tmp")
	assert.False(t, ok)
	assert.True(t, mgr.Current().IsRoot())
}

func TestPop_RootPanics(t *testing.T) {
	mgr := NewManager()
	assert.Panics(t, func() { mgr.Pop() })
}

func TestUpdateVar_OverwritesNearestEnclosing(t *testing.T) {
	mgr := NewManager()
	require.NoError(t, mgr.Root().Add(Symbol{Name: "x", Kind: VarKind, VarType: types.Primitive{Name: "Any"}}))

	mgr.Push()
	ok := mgr.Current().UpdateVar("x", Symbol{Name: "x", Kind: VarKind, VarType: types.Primitive{Name: "Int"}})
	require.True(t, ok)

	sym, _ := mgr.Root().LookupVar("x")
	assert.Equal(t, "Int", sym.VarType.String())
}

func TestUpdateVar_MissingNameReturnsFalse(t *testing.T) {
	mgr := NewManager()
	ok := mgr.Current().UpdateVar("nope", Symbol{Name: "nope", Kind: VarKind})
	assert.False(t, ok)
}

func TestTraitImpls_SameInstanceRegardlessOfNesting(t *testing.T) {
	mgr := NewManager()
	before := mgr.TraitImpls()
	mgr.Push()
	assert.Same(t, before, mgr.TraitImpls())
}

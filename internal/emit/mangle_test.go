package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vane-lang/vane/internal/types"
)

func TestMangleType_Primitive(t *testing.T) {
	assert.Equal(t, "Int", MangleType(types.Primitive{Name: "Int"}))
}

func TestMangleType_Generic(t *testing.T) {
	boxInt := types.TypeRef{Name: "Box", Parameters: []types.Type{types.Primitive{Name: "Int"}}}
	assert.Equal(t, "Box_p_Int_q_", MangleType(boxInt))
}

func TestMangleType_NestedGeneric(t *testing.T) {
	pair := types.TypeRef{Name: "Pair", Parameters: []types.Type{
		types.Primitive{Name: "Int"},
		types.Primitive{Name: "String"},
	}}
	assert.Equal(t, "Pair_p_Int__String_q_", MangleType(pair))
}

func TestMangleType_TypeVarIsSentinel(t *testing.T) {
	assert.Equal(t, dynSentinel, MangleType(types.TypeVar{Name: "T"}))
}

func TestMangleFunctionName_NoArgsIsIdentity(t *testing.T) {
	assert.Equal(t, "identity", MangleFunctionName("identity", nil))
}

func TestMangleFunctionName_SpecializedArgs(t *testing.T) {
	args := []types.Type{types.Primitive{Name: "Int"}, types.Primitive{Name: "String"}}
	assert.Equal(t, "pair___Int___String", MangleFunctionName("pair", args))
}

func TestMangleTraitMethod(t *testing.T) {
	tr := types.TraitRef{Name: "Show"}
	ty := types.Primitive{Name: "Int"}
	assert.Equal(t, "Show_for_Int___show", MangleTraitMethod(tr, ty, "show"))
}

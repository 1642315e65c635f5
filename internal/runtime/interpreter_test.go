package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vane-lang/vane/internal/ast"
	"github.com/vane-lang/vane/internal/token"
	"github.com/vane-lang/vane/internal/types"
)

func TestEval_StructInit_GenericInstantiationsGetDistinctKinds(t *testing.T) {
	in := NewInterpreter(nil, NewMetaManager())
	e := newEnv(nil)

	boxInt := ast.NewStructInit(token.Span{}, "Box", nil)
	boxInt.Resolved = types.TypeRef{Name: "Box", Parameters: []types.Type{types.Primitive{Name: "Int"}}}

	boxString := ast.NewStructInit(token.Span{}, "Box", nil)
	boxString.Resolved = types.TypeRef{Name: "Box", Parameters: []types.Type{types.Primitive{Name: "String"}}}

	gotInt := in.eval(boxInt, e)
	gotString := in.eval(boxString, e)

	assert.Equal(t, "Box_p_Int_q_", gotInt.Kind)
	assert.Equal(t, "Box_p_String_q_", gotString.Kind)
	assert.NotEqual(t, gotInt.Kind, gotString.Kind)
}

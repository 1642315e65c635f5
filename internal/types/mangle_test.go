package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMangle_Primitive(t *testing.T) {
	assert.Equal(t, "Int", Mangle(Primitive{Name: "Int"}))
}

func TestMangle_GenericStructDistinguishesInstantiations(t *testing.T) {
	boxInt := TypeRef{Name: "Box", Parameters: []Type{Primitive{Name: "Int"}}}
	boxString := TypeRef{Name: "Box", Parameters: []Type{Primitive{Name: "String"}}}
	assert.Equal(t, "Box_p_Int_q_", Mangle(boxInt))
	assert.Equal(t, "Box_p_String_q_", Mangle(boxString))
	assert.NotEqual(t, Mangle(boxInt), Mangle(boxString))
}

func TestMangle_TypeVarIsSentinel(t *testing.T) {
	assert.Equal(t, DynSentinel, Mangle(TypeVar{Name: "T"}))
}

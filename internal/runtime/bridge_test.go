package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridge_IntArithmeticAndCompare(t *testing.T) {
	b := Bridge()
	a, c := boxInt(3), boxInt(5)

	assert.Equal(t, int64(8), asInt(b["add_int"]([]*DataObject{a, c})))
	assert.Equal(t, int64(-2), asInt(b["sub_int"]([]*DataObject{a, c})))
	assert.Equal(t, int64(15), asInt(b["mul_int"]([]*DataObject{a, c})))
	assert.True(t, asBool(b["lt_int"]([]*DataObject{a, c})))
	assert.True(t, asBool(b["le_int"]([]*DataObject{a, c})))
	assert.False(t, asBool(b["gt_int"]([]*DataObject{a, c})))
	assert.False(t, asBool(b["ge_int"]([]*DataObject{a, c})))
	assert.False(t, asBool(b["eq_int"]([]*DataObject{a, c})))
}

func TestBridge_FloatArithmeticAndCompare(t *testing.T) {
	b := Bridge()
	x, y := boxFloat(1.5), boxFloat(2.5)
	assert.Equal(t, 4.0, asFloat(b["add_float"]([]*DataObject{x, y})))
	assert.True(t, asBool(b["lt_float"]([]*DataObject{x, y})))
	assert.True(t, asBool(b["ge_float"]([]*DataObject{y, x})))
}

func TestBridge_StringOpsNarrowedToAddPlusFullCompare(t *testing.T) {
	b := Bridge()
	s1, s2 := boxString("abc"), boxString("abd")
	assert.Equal(t, "abcabd", asString(b["add_string"]([]*DataObject{s1, s2})))
	assert.True(t, asBool(b["lt_string"]([]*DataObject{s1, s2})))
	assert.True(t, asBool(b["le_string"]([]*DataObject{s1, s1})))
	assert.True(t, asBool(b["ge_string"]([]*DataObject{s2, s1})))
	assert.False(t, asBool(b["eq_string"]([]*DataObject{s1, s2})))
}

func TestBridge_Conversions(t *testing.T) {
	b := Bridge()
	assert.Equal(t, 7.0, asFloat(b["int_to_float"]([]*DataObject{boxInt(7)})))
	assert.Equal(t, "7", asString(b["int_to_string"]([]*DataObject{boxInt(7)})))
	assert.Equal(t, "true", asString(b["bool_to_string"]([]*DataObject{boxBool(true)})))
	assert.Equal(t, 3.5, asFloat(b["string_to_float"]([]*DataObject{boxString("3.5")})))
}

func TestBridge_FloatToStringKeepsTrailingPointZeroForWholeNumbers(t *testing.T) {
	b := Bridge()
	assert.Equal(t, "2.0", asString(b["float_to_string"]([]*DataObject{boxFloat(2)})))
	assert.Equal(t, "3.5", asString(b["float_to_string"]([]*DataObject{boxFloat(3.5)})))
}

func TestBridge_LogicAndOr(t *testing.T) {
	b := Bridge()
	assert.True(t, asBool(b["logic_and"]([]*DataObject{boxBool(true), boxBool(true)})))
	assert.False(t, asBool(b["logic_and"]([]*DataObject{boxBool(true), boxBool(false)})))
	assert.True(t, asBool(b["logic_or"]([]*DataObject{boxBool(false), boxBool(true)})))
}

func TestBridge_PanicRaisesGoPanic(t *testing.T) {
	b := Bridge()
	require.Panics(t, func() { b["panic"]([]*DataObject{boxString("boom")}) })
}

func TestBridge_EchoReturnsUnit(t *testing.T) {
	b := Bridge()
	got := b["echo"]([]*DataObject{boxInt(1)})
	assert.Equal(t, "Unit", got.Kind)
}

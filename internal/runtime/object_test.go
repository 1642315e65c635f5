package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataMeta_RegisterAndLookup(t *testing.T) {
	meta := newDataMeta("Point")
	meta.Register("show", "Show", "Show_for_Point___show")

	got, ok := meta.Lookup("show", "Show")
	require.True(t, ok)
	assert.Equal(t, "Show_for_Point___show", got)
}

func TestDataMeta_LookupMissingMethodFails(t *testing.T) {
	meta := newDataMeta("Point")
	_, ok := meta.Lookup("show", "Show")
	assert.False(t, ok)
}

func TestDataMeta_RegisterIsIdempotent(t *testing.T) {
	meta := newDataMeta("Point")
	meta.Register("show", "Show", "Show_for_Point___show")
	meta.Register("show", "Show", "Show_for_Point___show")
	assert.Len(t, meta.VTable["show"], 1)
}

func TestDataMeta_SameMethodDifferentTraitsDoNotCollide(t *testing.T) {
	meta := newDataMeta("Point")
	meta.Register("eq", "Compare", "Compare_for_Point___eq")
	meta.Register("eq", "Equatable", "Equatable_for_Point___eq")
	assert.Len(t, meta.VTable["eq"], 2)
}

func TestMetaManager_MetaCreatesOnFirstReference(t *testing.T) {
	mm := NewMetaManager()
	m1 := mm.Meta("Point")
	m2 := mm.Meta("Point")
	assert.Same(t, m1, m2)
}

func TestNewPrimitive_BoxesNativeValue(t *testing.T) {
	o := NewPrimitive("Int", int64(5))
	assert.Equal(t, "Int", o.Kind)
	assert.Equal(t, int64(5), o.Native)
}

func TestNewStruct_BoxesFields(t *testing.T) {
	fields := map[string]*DataObject{"x": NewPrimitive("Int", int64(1))}
	o := NewStruct("Point", fields)
	assert.Equal(t, "Point", o.Kind)
	assert.Equal(t, fields, o.Fields)
}

func TestDataObject_StringFormatsNativeOrStructShape(t *testing.T) {
	assert.Equal(t, "5", NewPrimitive("Int", int64(5)).String())
	assert.Equal(t, "Point{...}", NewStruct("Point", nil).String())
	var nilObj *DataObject
	assert.Equal(t, "<nil>", nilObj.String())
}

// Package runtime implements the object model stage 4 executes against
// (spec §2 stage 4, §6): a dynamically typed DataObject wrapping every
// runtime value, a MetaManager holding one DataMeta (name + method table) per
// concrete type, and the primitive operator bridge. Grounded on the
// the ancestor module's tree-walking value representation (internal/backend/treewalk.go:
// a tagged Value plus an object-shape registry keyed by type name),
// generalized to the spec's boxed-DataObject-plus-vtable model so dynamic
// dispatch and create_dyn_object have somewhere to look methods up.
package runtime

import "fmt"

// DataMeta is the per-concrete-type record stage 3 populates on demand
// (spec §4.6: "populates the concrete type's method table"). VTable maps a
// method name to, for each trait that provides it, the mangled function
// name implementing it — a method can appear under more than one trait
// (e.g. a type could offer `eq` via Compare only, never collide in practice
// since the prelude keeps one trait per method name, but the two-level map
// keeps dispatch unambiguous if a user trait ever reuses a name).
type DataMeta struct {
	Name   string
	VTable map[string]map[string]string // method -> trait name -> mangled fn
}

func newDataMeta(name string) *DataMeta {
	return &DataMeta{Name: name, VTable: make(map[string]map[string]string)}
}

// Register records that method, reached via trait, resolves to mangled.
// Idempotent: registering the same triple twice is a no-op (spec §5
// "emission is deterministic and idempotent").
func (m *DataMeta) Register(method, trait, mangled string) {
	if m.VTable[method] == nil {
		m.VTable[method] = make(map[string]string)
	}
	m.VTable[method][trait] = mangled
}

// Lookup returns the mangled function name implementing method via trait on
// this type, or false if stage 3 never populated that entry.
func (m *DataMeta) Lookup(method, trait string) (string, bool) {
	byTrait, ok := m.VTable[method]
	if !ok {
		return "", false
	}
	mangled, ok := byTrait[trait]
	return mangled, ok
}

// DataObject is the boxed runtime value stage 4 operates on (spec §6
// "runtime object model"). Kind is the concrete type's key (mangled struct
// name, or a primitive name); Fields holds a struct's field values; Native
// carries a Go-native primitive payload (int64, float64, bool, string) when
// Kind names a primitive.
type DataObject struct {
	Kind   string
	Fields map[string]*DataObject
	Native any
}

// NewPrimitive boxes a native Go value under type key kind.
func NewPrimitive(kind string, native any) *DataObject {
	return &DataObject{Kind: kind, Native: native}
}

// NewStruct boxes a struct instance's fields under type key kind.
func NewStruct(kind string, fields map[string]*DataObject) *DataObject {
	return &DataObject{Kind: kind, Fields: fields}
}

func (o *DataObject) String() string {
	if o == nil {
		return "<nil>"
	}
	if o.Native != nil {
		return fmt.Sprintf("%v", o.Native)
	}
	return fmt.Sprintf("%s{...}", o.Kind)
}

// MetaManager is the registry of per-type DataMeta (spec §2 stage 4:
// "MetaManager ... per-type method tables populated by stage 3"). One
// instance is shared by a whole compilation/run.
type MetaManager struct {
	metas map[string]*DataMeta
}

// NewMetaManager creates an empty registry.
func NewMetaManager() *MetaManager {
	return &MetaManager{metas: make(map[string]*DataMeta)}
}

// Meta returns the DataMeta for type key name, creating an empty one on
// first reference (a type may be registered before any of its methods are).
func (mm *MetaManager) Meta(name string) *DataMeta {
	m, ok := mm.metas[name]
	if !ok {
		m = newDataMeta(name)
		mm.metas[name] = m
	}
	return m
}

// MakeObject constructs a struct DataObject and ensures its DataMeta exists
// (spec §4.6 "Struct init: emit a call to runtime.make_object(type_key,
// fields)").
func (mm *MetaManager) MakeObject(typeKey string, fields map[string]*DataObject) *DataObject {
	mm.Meta(typeKey)
	return NewStruct(typeKey, fields)
}

// MethodFor resolves method m, reached through trait t, on the concrete
// value's runtime type. Used by the dynamic-dispatch call path (spec §4.6
// "vtable lookup by (trait, method) pair on the receiver's type_key").
func (mm *MetaManager) MethodFor(o *DataObject, trait, method string) (string, bool) {
	meta, ok := mm.metas[o.Kind]
	if !ok {
		return "", false
	}
	return meta.Lookup(method, trait)
}

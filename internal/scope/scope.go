// Package scope implements symbol and scope management (spec §4.1): four
// partitioned name spaces per scope, child-to-root lookup, and strictly
// nested push/pop lifetimes. Grounded on the ancestor module's SymbolTable chain
// (internal/symbols/symbol_table_core.go: an `outer *SymbolTable` parent
// pointer walked by every lookup), generalized to the spec's four name
// spaces instead of a single `store` map.
package scope

import (
	"fmt"

	"github.com/vane-lang/vane/internal/token"
	"github.com/vane-lang/vane/internal/types"
)

// Kind identifies which name space a Symbol belongs to.
type Kind int

const (
	VarKind Kind = iota
	TypeKind
	TraitKind
	GenericKind
)

// Symbol is an entry in one of a Scope's four name spaces.
type Symbol struct {
	Name string
	Kind Kind

	// VarType is set for VarKind symbols (spec §4.5 Variable rule: "the
	// scope's variable symbol's type_ref").
	VarType types.Type

	// StructDef/TraitDef are set for TypeKind/TraitKind symbols respectively.
	StructDef *types.StructDef
	TraitDef  *types.TraitDef

	// GenericVar is set for GenericKind symbols (a bound type parameter).
	GenericVar types.TypeVar

	DefinedAt token.Span
}

// DuplicateDefinitionError is returned by Add when name already exists in
// the same scope's name space (spec §4.1).
type DuplicateDefinitionError struct {
	Name string
	Kind Kind
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("duplicate definition of %q in this scope", e.Name)
}

// Scope holds the four partitioned name spaces described in spec §4.1: a
// struct and a trait and a variable may share a name without collision.
// Uniqueness is local to one scope's name space, not transitive — a local
// `let` may shadow a global one (spec §4.1 design decision).
type Scope struct {
	parent *Scope

	vars     map[string]Symbol
	typesNS  map[string]Symbol
	traits   map[string]Symbol
	generics map[string]Symbol
}

func newScope(parent *Scope) *Scope {
	return &Scope{
		parent:   parent,
		vars:     make(map[string]Symbol),
		typesNS:  make(map[string]Symbol),
		traits:   make(map[string]Symbol),
		generics: make(map[string]Symbol),
	}
}

func (s *Scope) spaceFor(kind Kind) map[string]Symbol {
	switch kind {
	case VarKind:
		return s.vars
	case TypeKind:
		return s.typesNS
	case TraitKind:
		return s.traits
	case GenericKind:
		return s.generics
	default:
		return nil
	}
}

// Add inserts sym into this scope's name space for sym.Kind. Returns
// DuplicateDefinitionError if the name is already bound in that name space
// in this exact scope.
func (s *Scope) Add(sym Symbol) error {
	space := s.spaceFor(sym.Kind)
	if _, exists := space[sym.Name]; exists {
		return &DuplicateDefinitionError{Name: sym.Name, Kind: sym.Kind}
	}
	space[sym.Name] = sym
	return nil
}

// UpdateVar overwrites the variable symbol named name in the nearest
// enclosing scope that declares it (used once a `let`'s inferred type is
// known; stage 1 installs only an `Any` placeholder, spec §4.4: "install a
// placeholder variable symbol"). Reports false if no such symbol exists.
func (s *Scope) UpdateVar(name string, sym Symbol) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = sym
			return true
		}
	}
	return false
}

func (s *Scope) lookup(kind Kind, name string) (Symbol, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.spaceFor(kind)[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// LookupVar walks from this scope to the root looking for name in the
// variable name space.
func (s *Scope) LookupVar(name string) (Symbol, bool) { return s.lookup(VarKind, name) }

// LookupType walks from this scope to the root looking for name in the type
// name space.
func (s *Scope) LookupType(name string) (Symbol, bool) { return s.lookup(TypeKind, name) }

// LookupTrait walks from this scope to the root looking for name in the
// trait name space.
func (s *Scope) LookupTrait(name string) (Symbol, bool) { return s.lookup(TraitKind, name) }

// LookupGeneric walks from this scope to the root looking for name in the
// generic-parameter name space.
func (s *Scope) LookupGeneric(name string) (Symbol, bool) { return s.lookup(GenericKind, name) }

// Parent returns the enclosing scope, or nil for the root.
func (s *Scope) Parent() *Scope { return s.parent }

// IsRoot reports whether s is the global scope.
func (s *Scope) IsRoot() bool { return s.parent == nil }

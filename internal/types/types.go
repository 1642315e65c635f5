// Package types implements the type representation described in spec §3:
// primitives, parametric type references, identity-bearing type variables,
// trait references, function signatures, struct/trait definitions, trait
// implementations, and call-site resolutions.
package types

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Type is the common interface every type representation satisfies. Kept
// deliberately small (spec.md doesn't ask for a kind system or free-variable
// collection beyond what TypeBinder needs, and TypeBinder walks concrete
// structs directly) — grounded on a comparably small `Type`
// interface in internal/typesystem/types.go, trimmed to what spec §3 names.
type Type interface {
	String() string
	typ()
}

// SourceNode is the opaque AST back-pointer FunctionRef.source_ast carries
// (spec §3). Declared here rather than imported from package ast to avoid an
// import cycle — package ast depends on package types, not the reverse.
type SourceNode interface {
	TokenLiteral() string
}

// Binds is a substitution keyed by TypeVar identity, never by printed name
// (spec §3 invariant: "binding maps are keyed by the variable identity").
type Binds map[string]Type

// Clone returns a shallow copy of b.
func (b Binds) Clone() Binds {
	out := make(Binds, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Primitive is one of the prelude-registered atoms (Int, Float, Bool, String,
// Unit, Any).
type Primitive struct {
	Name string
}

func (Primitive) typ()            {}
func (p Primitive) String() string { return p.Name }

// TypeRef is a named, possibly parametric concrete type. An empty Parameters
// list means a plain nominal reference. StructRef is filled in once the name
// is dereferenced against a scope (spec §3: "may carry a resolved struct_ref
// back-pointer once dereferenced").
type TypeRef struct {
	Name       string
	Parameters []Type
	StructRef  *StructDef
}

func (TypeRef) typ() {}
func (r TypeRef) String() string {
	if len(r.Parameters) == 0 {
		return r.Name
	}
	parts := make([]string, len(r.Parameters))
	for i, p := range r.Parameters {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s<%s>", r.Name, strings.Join(parts, ", "))
}

// TypeVar is a generic type variable. Two variables with equal Name but
// distinct ID are distinct (spec §3 invariant). ID is minted fresh by
// NewTypeVar using github.com/google/uuid, grounded on the `Uuid`
// virtual-package precedent (internal/modules/virtual_packages_data.go) —
// repurposed here as the compiler's own fresh-identity source (SPEC_FULL §11).
type TypeVar struct {
	Name        string
	ID          string
	Constraints []TraitRef
}

func (TypeVar) typ() {}
func (v TypeVar) String() string { return v.Name }

// Key is the identity this variable is bound under in a Binds map.
func (v TypeVar) Key() string { return v.ID }

// NewTypeVar mints a fresh type variable with a unique identity. name is the
// printed/display name (may collide with other variables' names; ID never
// does). uuid keeps identity globally unique across the whole compilation,
// including across repeated specialization passes (spec §4.5 "specialization
// pass").
func NewTypeVar(name string, constraints ...TraitRef) TypeVar {
	return TypeVar{Name: name, ID: uuid.NewString(), Constraints: constraints}
}

// TraitRef is a reference to a trait at a specific instantiation.
type TraitRef struct {
	Name       string
	Parameters []Type
}

func (TraitRef) typ() {}
func (t TraitRef) String() string {
	if len(t.Parameters) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Parameters))
	for i, p := range t.Parameters {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(parts, ", "))
}

// Equal reports whether t and o name the same trait at the same (structural)
// instantiation, used by TraitImpls' uniqueness check (spec §3 invariant).
func (t TraitRef) Equal(o TraitRef) bool {
	if t.Name != o.Name || len(t.Parameters) != len(o.Parameters) {
		return false
	}
	for i := range t.Parameters {
		if t.Parameters[i].String() != o.Parameters[i].String() {
			return false
		}
	}
	return true
}

// FunctionRef is a function signature, optionally tagged with the trait impl
// it belongs to (spec §3).
type FunctionRef struct {
	Name             string
	Args             []Type
	ReturnType       Type
	TypeParameters   []TypeVar
	AssociationTrait *TraitRef
	AssociationType  Type
	SourceAST        SourceNode
}

func (FunctionRef) typ() {}
func (f FunctionRef) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), f.ReturnType.String())
}

// StructDef is the definition side of a nominal struct type.
type StructDef struct {
	Name       string
	Fields     map[string]Type
	FieldOrder []string // declaration order, for deterministic StructInit/emission
	Parameters []TypeVar
}

func (StructDef) typ()            {}
func (s StructDef) String() string { return s.Name }

// TraitDef is the definition side of a trait, with a synthetic Self variable.
type TraitDef struct {
	Name       string
	Parameters []TypeVar
	SelfType   TypeVar
	Functions  map[string]*FunctionRef
}

func (TraitDef) typ()            {}
func (t TraitDef) String() string { return t.Name }

// TraitImpl is one implementation record: a trait instantiation bound to a
// target type and a table of method bodies (spec §3). Uniquely identified by
// (Trait.Name, Trait.Parameters, TargetType) — enforced by stage 1 (package
// check) before registration; neither this type nor traits.AddImpl checks it.
type TraitImpl struct {
	Trait          TraitRef
	TargetType     Type
	TypeParameters []TypeVar
	Functions      map[string]*FunctionRef
	Binds          Binds
}

func (TraitImpl) typ() {}
func (i TraitImpl) String() string {
	return fmt.Sprintf("impl %s for %s", i.Trait.String(), i.TargetType.String())
}

// ResolvedFunction is a call-site resolution of a specific overload.
type ResolvedFunction struct {
	Function   *FunctionRef
	SourceType Type
	Binds      Binds
	// Impl is set when Function came from a trait implementation (spec §4.5
	// step 6: "for trait methods, the impl it was selected from").
	Impl *TraitImpl
}

func (ResolvedFunction) typ() {}
func (r ResolvedFunction) String() string { return r.Function.String() }

// MultiResolvedFunction is used when an attribute name matches several impls
// simultaneously; disambiguated later by argument/return inference.
type MultiResolvedFunction struct {
	Candidates []*ResolvedFunction
	SourceType Type
}

func (MultiResolvedFunction) typ() {}
func (m MultiResolvedFunction) String() string {
	parts := make([]string, len(m.Candidates))
	for i, c := range m.Candidates {
		parts[i] = c.String()
	}
	return strings.Join(parts, " | ")
}

// IsTypeVar reports whether t itself is a bare TypeVar (no bindings are
// consulted) — used throughout stage 2 to decide dyn_dispatch (spec §4.5 step 2).
func IsTypeVar(t Type) (TypeVar, bool) {
	v, ok := t.(TypeVar)
	return v, ok
}

// Apply substitutes every TypeVar in t that has a binding in b, recursively.
// This is the one free-standing substitution helper; TypeBinder.Bind
// (internal/binder) wraps it with its own accumulated bindings.
func Apply(t Type, b Binds) Type {
	if t == nil || len(b) == 0 {
		return t
	}
	switch v := t.(type) {
	case TypeVar:
		if repl, ok := b[v.ID]; ok {
			return repl
		}
		return v
	case TypeRef:
		params := make([]Type, len(v.Parameters))
		for i, p := range v.Parameters {
			params[i] = Apply(p, b)
		}
		return TypeRef{Name: v.Name, Parameters: params, StructRef: v.StructRef}
	case TraitRef:
		params := make([]Type, len(v.Parameters))
		for i, p := range v.Parameters {
			params[i] = Apply(p, b)
		}
		return TraitRef{Name: v.Name, Parameters: params}
	case FunctionRef:
		args := make([]Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = Apply(a, b)
		}
		return FunctionRef{
			Name:             v.Name,
			Args:             args,
			ReturnType:       Apply(v.ReturnType, b),
			TypeParameters:   v.TypeParameters,
			AssociationTrait: v.AssociationTrait,
			AssociationType:  v.AssociationType,
			SourceAST:        v.SourceAST,
		}
	case *FunctionRef:
		applied := Apply(*v, b).(FunctionRef)
		return &applied
	case ResolvedFunction:
		fn := v.Function
		if fn != nil {
			appliedFn := Apply(*fn, b).(FunctionRef)
			fn = &appliedFn
		}
		return ResolvedFunction{Function: fn, SourceType: Apply(v.SourceType, b), Binds: v.Binds, Impl: v.Impl}
	default:
		return t
	}
}

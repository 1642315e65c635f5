// Package binder implements TypeBinder (spec §4.3): the unification-like
// helper that resolves declared-vs-observed type pairs and substitutes
// through a Type, TraitRef, FunctionRef, or ResolvedFunction. Grounded on the
// the ancestor module's internal/typesystem/unify.go (walk-in-lockstep unification with a
// Subst accumulator), generalized to the spec's identity-keyed TypeVar
// bindings and constraint-checking-on-bind semantics.
package binder

import (
	"fmt"

	"github.com/vane-lang/vane/internal/types"
)

// ImplLookup is the narrow view of the trait-implementation registry that a
// TypeBinder needs to validate a variable's constraints against an observed
// type (spec §4.3: "checking every constraint against the observed type via
// TraitImpls.is_type_match"). Declared here rather than depending on package
// traits directly, so package traits can depend on package binder (it seeds
// a TypeBinder while computing an impl's bindings, spec §4.2) without an
// import cycle; *traits.TraitImpls satisfies this interface structurally.
type ImplLookup interface {
	IsTypeMatch(observed, pattern types.Type) bool
}

// ConflictError is returned when a variable already bound is rebound to a
// distinct type (spec §4.3).
type ConflictError struct {
	Var      types.TypeVar
	Existing types.Type
	New      types.Type
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("type conflict: %s already bound to %s, cannot rebind to %s",
		e.Var.String(), e.Existing.String(), e.New.String())
}

// ConstraintViolationError is returned when a variable is bound to a type
// that fails one of its declared constraints (spec §4.3).
type ConstraintViolationError struct {
	Var       types.TypeVar
	Candidate types.Type
	Trait     types.TraitRef
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("%s does not implement %s, required by %s",
		e.Candidate.String(), e.Trait.String(), e.Var.String())
}

// TypeBinder accumulates a substitution from one-directional unification:
// the "defined" side may contain TypeBinder's own variables, the "observed"
// side is ground with respect to them (spec §4.3 design decision).
type TypeBinder struct {
	bindings types.Binds
	impls    ImplLookup
}

// New creates an empty TypeBinder. impls may be nil if the binder will never
// need to validate a constrained variable; with nil impls, trait
// constraints on a variable are not checked.
func New(impls ImplLookup) *TypeBinder {
	return &TypeBinder{bindings: make(types.Binds), impls: impls}
}

// Bindings returns the accumulated substitution.
func (b *TypeBinder) Bindings() types.Binds { return b.bindings }

func isAny(t types.Type) bool {
	p, ok := t.(types.Primitive)
	return ok && p.Name == "Any"
}

// Resolve unifies defined against observed, walking in lockstep (spec §4.3).
func (b *TypeBinder) Resolve(defined, observed types.Type) error {
	if isAny(defined) || isAny(observed) {
		return nil
	}

	if v, ok := defined.(types.TypeVar); ok {
		return b.bindVar(v, observed)
	}

	switch d := defined.(type) {
	case types.Primitive:
		o, ok := observed.(types.Primitive)
		if !ok || o.Name != d.Name {
			return fmt.Errorf("type mismatch: expected %s, got %s", d.String(), observed.String())
		}
		return nil

	case types.TypeRef:
		o, ok := observed.(types.TypeRef)
		if !ok {
			if ov, isVar := observed.(types.TypeVar); isVar {
				return fmt.Errorf("type mismatch: expected %s, got unresolved %s", d.String(), ov.String())
			}
			return fmt.Errorf("type mismatch: expected %s, got %s", d.String(), observed.String())
		}
		if o.Name != d.Name || len(o.Parameters) != len(d.Parameters) {
			return fmt.Errorf("type mismatch: expected %s, got %s", d.String(), o.String())
		}
		for i := range d.Parameters {
			if err := b.Resolve(d.Parameters[i], o.Parameters[i]); err != nil {
				return err
			}
		}
		return nil

	case types.TraitRef:
		o, ok := observed.(types.TraitRef)
		if !ok || !d.Equal(o) {
			return fmt.Errorf("type mismatch: expected %s, got %s", d.String(), observed.String())
		}
		return nil

	case types.FunctionRef:
		o, ok := observed.(types.FunctionRef)
		if !ok || len(o.Args) != len(d.Args) {
			return fmt.Errorf("type mismatch: expected %s, got %s", d.String(), observed.String())
		}
		for i := range d.Args {
			if err := b.Resolve(d.Args[i], o.Args[i]); err != nil {
				return err
			}
		}
		return b.Resolve(d.ReturnType, o.ReturnType)

	default:
		return fmt.Errorf("type mismatch: expected %s, got %s", defined.String(), observed.String())
	}
}

func (b *TypeBinder) bindVar(v types.TypeVar, observed types.Type) error {
	if existing, ok := b.bindings[v.Key()]; ok {
		if existing.String() == observed.String() {
			return nil
		}
		return &ConflictError{Var: v, Existing: existing, New: observed}
	}

	if b.impls != nil {
		for _, c := range v.Constraints {
			if !b.impls.IsTypeMatch(observed, c) {
				return &ConstraintViolationError{Var: v, Candidate: observed, Trait: c}
			}
		}
	}

	b.bindings[v.Key()] = observed
	return nil
}

// Bind substitutes the accumulated bindings through t.
func (b *TypeBinder) Bind(t types.Type) types.Type {
	return types.Apply(t, b.bindings)
}

// Merge layers other's bindings on top of b's own (used when a call site's
// context bindings from an enclosing specialization must combine with a
// fresh per-call binder, spec §4.5 step 4: "context.type_bindings ⊕
// binder.bindings").
func Merge(outer, inner types.Binds) types.Binds {
	out := outer.Clone()
	for k, v := range inner {
		out[k] = v
	}
	return out
}

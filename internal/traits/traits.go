// Package traits implements TraitImpls (spec §4.2): the registry of trait
// implementations, its structural compatibility predicate is_type_match, and
// impl lookup/binding. Grounded on the ancestor module's trait-instance bookkeeping
// (internal/symbols/symbol_table_traits.go, symbol_table_implementations.go:
// a flat list of registered instances searched by structural match against a
// query), adapted to the spec's exact is_type_match algorithm and to
// returning freshly-bound TraitImpl copies rather than
// dictionary-evidence objects.
package traits

import (
	"github.com/vane-lang/vane/internal/binder"
	"github.com/vane-lang/vane/internal/types"
)

// TraitImpls is the shared, append-only registry of trait implementations
// (spec §4.2). No uniqueness check at insertion — §4.3 in spec.md ("The
// *TraitImpls* predicate") relies on compatibility testing during lookup, not
// at AddImpl time; stage 1 (package check) is responsible for rejecting two
// impls whose (trait, target) triple coincides (spec §3 invariant).
type TraitImpls struct {
	impls []*types.TraitImpl
}

// NewTraitImpls creates an empty registry.
func NewTraitImpls() *TraitImpls { return &TraitImpls{} }

// AddImpl appends impl to the registry.
func (t *TraitImpls) AddImpl(impl *types.TraitImpl) {
	t.impls = append(t.impls, impl)
}

// All returns every registered impl, for stage-1 uniqueness checking.
func (t *TraitImpls) All() []*types.TraitImpl { return t.impls }

// IsTypeMatch is the structural compatibility predicate of spec §4.2: r1 is
// the candidate observed type, r2 is the pattern expected.
func (t *TraitImpls) IsTypeMatch(r1, r2 types.Type) bool {
	// 1. Lift a bare TraitRef pattern to a synthetic constrained variable.
	if tr, ok := r2.(types.TraitRef); ok {
		synthetic := types.TypeVar{Name: "_", Constraints: []types.TraitRef{tr}}
		return t.IsTypeMatch(r1, synthetic)
	}

	// 2. A variable is never narrower than a concrete type.
	if _, r1IsVar := r1.(types.TypeVar); r1IsVar {
		if _, r2IsVar := r2.(types.TypeVar); !r2IsVar {
			return false
		}
	}

	// 3. Pattern is a variable.
	if r2Var, ok := r2.(types.TypeVar); ok {
		if len(r2Var.Constraints) == 0 {
			return true
		}
		for _, c := range r2Var.Constraints {
			if r1Var, r1IsVar := r1.(types.TypeVar); r1IsVar {
				if !hasConstraint(r1Var, c) {
					return false
				}
				continue
			}
			if len(t.GetImpl(r1, c, false)) == 0 {
				return false
			}
		}
		return true
	}

	// 4. Both concrete: names and parameter arity must match, recursing
	// through parameters.
	return t.concreteMatch(r1, r2)
}

func hasConstraint(v types.TypeVar, c types.TraitRef) bool {
	for _, existing := range v.Constraints {
		if existing.Equal(c) {
			return true
		}
	}
	return false
}

func (t *TraitImpls) concreteMatch(r1, r2 types.Type) bool {
	name1, params1, ok1 := decompose(r1)
	name2, params2, ok2 := decompose(r2)
	if !ok1 || !ok2 || name1 != name2 || len(params1) != len(params2) {
		return false
	}
	for i := range params1 {
		if !t.IsTypeMatch(params1[i], params2[i]) {
			return false
		}
	}
	return true
}

func decompose(ty types.Type) (name string, params []types.Type, ok bool) {
	switch v := ty.(type) {
	case types.Primitive:
		return v.Name, nil, true
	case types.TypeRef:
		return v.Name, v.Parameters, true
	default:
		return "", nil, false
	}
}

// GetImpl returns every impl whose (trait, target) pattern is type-compatible
// with the query, after substituting bindings. When needBind is true, each
// returned impl has its bindings freshly computed for the query (spec §4.2).
func (t *TraitImpls) GetImpl(targetType types.Type, traitRef types.TraitRef, needBind bool) []*types.TraitImpl {
	var out []*types.TraitImpl
	for _, impl := range t.impls {
		if !t.IsTypeMatch(targetType, impl.TargetType) {
			continue
		}
		if !traitsCompatible(t, traitRef, impl.Trait) {
			continue
		}
		if !needBind {
			out = append(out, impl)
			continue
		}
		bound, err := t.bindImpl(impl, targetType, traitRef)
		if err != nil {
			continue
		}
		out = append(out, bound)
	}
	return out
}

func traitsCompatible(t *TraitImpls, query, pattern types.TraitRef) bool {
	if query.Name != pattern.Name || len(query.Parameters) != len(pattern.Parameters) {
		return false
	}
	for i := range query.Parameters {
		if !t.IsTypeMatch(query.Parameters[i], pattern.Parameters[i]) {
			return false
		}
	}
	return true
}

// bindImpl seeds a TypeBinder by unifying impl.TargetType with realTarget and
// impl.Trait's parameters with realTrait's, then substitutes through the
// whole impl (spec §4.2 "Binding an impl").
func (t *TraitImpls) bindImpl(impl *types.TraitImpl, realTarget types.Type, realTrait types.TraitRef) (*types.TraitImpl, error) {
	b := binder.New(t)
	if err := b.Resolve(impl.TargetType, realTarget); err != nil {
		return nil, err
	}
	for i := range impl.Trait.Parameters {
		if i >= len(realTrait.Parameters) {
			break
		}
		if err := b.Resolve(impl.Trait.Parameters[i], realTrait.Parameters[i]); err != nil {
			return nil, err
		}
	}

	binds := b.Bindings()
	funcs := make(map[string]*types.FunctionRef, len(impl.Functions))
	for name, fn := range impl.Functions {
		applied := types.Apply(*fn, binds).(types.FunctionRef)
		funcs[name] = &applied
	}

	return &types.TraitImpl{
		Trait:          types.Apply(impl.Trait, binds).(types.TraitRef),
		TargetType:     types.Apply(impl.TargetType, binds),
		TypeParameters: impl.TypeParameters,
		Functions:      funcs,
		Binds:          binds,
	}, nil
}

// GetImplByType is a one-sided search used when the trait side is unknown
// (attribute/method lookup, spec §4.2).
func (t *TraitImpls) GetImplByType(targetType types.Type) []*types.TraitImpl {
	var out []*types.TraitImpl
	for _, impl := range t.impls {
		if t.IsTypeMatch(targetType, impl.TargetType) {
			out = append(out, impl)
		}
	}
	return out
}

// GetImplByTrait is a one-sided search used when the target type is unknown.
func (t *TraitImpls) GetImplByTrait(traitRef types.TraitRef) []*types.TraitImpl {
	var out []*types.TraitImpl
	for _, impl := range t.impls {
		if traitsCompatible(t, traitRef, impl.Trait) {
			out = append(out, impl)
		}
	}
	return out
}

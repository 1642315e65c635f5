package scope

import "github.com/vane-lang/vane/internal/traits"

// Manager owns the strictly-nested scope stack and the single globally
// shared TraitImpls registry reachable from any scope (spec §4.1).
type Manager struct {
	stack []*Scope
	impls *traits.TraitImpls
}

// NewManager creates a Manager with a single root (global) scope pushed.
func NewManager() *Manager {
	m := &Manager{impls: traits.NewTraitImpls()}
	m.stack = []*Scope{newScope(nil)}
	return m
}

// Push enters a fresh nested scope and returns it.
func (m *Manager) Push() *Scope {
	s := newScope(m.Current())
	m.stack = append(m.stack, s)
	return s
}

// Pop leaves the current scope, enforcing LIFO discipline, and returns it.
// Popping the root scope panics — it is a programmer error in the visitor,
// not a user-facing condition.
func (m *Manager) Pop() *Scope {
	if len(m.stack) <= 1 {
		panic("scope.Manager: cannot pop the root scope")
	}
	top := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return top
}

// Current returns the innermost open scope.
func (m *Manager) Current() *Scope { return m.stack[len(m.stack)-1] }

// Root returns the global scope. The TraitImpls registry is held by the
// Manager itself (see TraitImpls), not by any Scope.
func (m *Manager) Root() *Scope { return m.stack[0] }

// Add inserts sym into the current scope, routed by sym.Kind.
func (m *Manager) Add(sym Symbol) error { return m.Current().Add(sym) }

// TraitImpls returns the single shared trait-implementation registry.
func (m *Manager) TraitImpls() *traits.TraitImpls { return m.impls }

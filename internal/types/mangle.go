package types

import "strings"

// DynSentinel is the mangled form of a bare type variable: every
// dynamic-dispatch path maps to the same compiled entry regardless of which
// variable it refers to (spec §4.6).
const DynSentinel = "0DYN0"

// Mangle renders t per spec §4.6: `<T>` => `_p_T_q_`, `,` => `__`, and a bare
// type variable => DynSentinel. Shared by package emit (specialized function
// names and vtable keys) and package runtime (a struct instance's Kind must
// collapse to the same string a vtable was registered under, so
// Box<Int>/Box<String> keep distinct method tables instead of colliding on
// the bare "Box" name); kept here, below both, to avoid an emit<->runtime
// import cycle.
func Mangle(t Type) string {
	if _, isVar := IsTypeVar(t); isVar {
		return DynSentinel
	}
	switch v := t.(type) {
	case Primitive:
		return v.Name
	case TypeRef:
		if len(v.Parameters) == 0 {
			return v.Name
		}
		parts := make([]string, len(v.Parameters))
		for i, p := range v.Parameters {
			parts[i] = Mangle(p)
		}
		return v.Name + "_p_" + strings.Join(parts, "__") + "_q_"
	case TraitRef:
		if len(v.Parameters) == 0 {
			return v.Name
		}
		parts := make([]string, len(v.Parameters))
		for i, p := range v.Parameters {
			parts[i] = Mangle(p)
		}
		return v.Name + "_p_" + strings.Join(parts, "__") + "_q_"
	default:
		return DynSentinel
	}
}

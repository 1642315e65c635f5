// Package emit implements EmitVisitor (spec §4.6): the stage-3 component
// that renders reachable specializations into a mangled-name-keyed
// intermediate program and populates the runtime's per-type method tables.
// Grounded on the ancestor module's code generator (internal/backend/treewalk.go,
// vmbackend.go: a name-keyed table of compiled routines populated on demand
// from call sites), adapted to spec's exact mangling scheme and dyn-dispatch
// vtable population rules.
package emit

import (
	"strings"

	"github.com/vane-lang/vane/internal/types"
)

// dynSentinel is the mangled form of a type variable, re-exported from
// package types so existing call sites in this package don't need to change.
const dynSentinel = types.DynSentinel

// MangleType renders t per spec §4.6: `<T>` => `_p_T_q_`, `,` => `__`, and a
// bare type variable => the sentinel. Delegates to types.Mangle, which also
// backs package runtime's struct-Kind computation (internal/types/mangle.go)
// so a generic struct's runtime Kind and its vtable key are always the same
// string.
func MangleType(t types.Type) string {
	return types.Mangle(t)
}

// MangleFunctionName mangles a generic free function specialized at typeArgs
// (spec §4.6: "fname___T1___T2___...___Tk").
func MangleFunctionName(name string, typeArgs []types.Type) string {
	if len(typeArgs) == 0 {
		return name
	}
	parts := make([]string, len(typeArgs))
	for i, t := range typeArgs {
		parts[i] = MangleType(t)
	}
	return name + "___" + strings.Join(parts, "___")
}

// MangleTraitMethod mangles method m of trait tr implemented for ty (spec
// §4.6: "mangle(Tr)_for_mangle(Ty)___m").
func MangleTraitMethod(tr types.TraitRef, ty types.Type, method string) string {
	return MangleType(tr) + "_for_" + MangleType(ty) + "___" + method
}

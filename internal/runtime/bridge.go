package runtime

import (
	"fmt"
	"strconv"
	"strings"
)

// Native is a bridge function's Go implementation: it takes boxed arguments
// and returns a boxed result (spec §6 "Runtime bridge" lists every name
// below; none take a receiver separately from args[0], matching how the
// prelude's impl methods forward `self` as an ordinary argument).
type Native func(args []*DataObject) *DataObject

func boxInt(v int64) *DataObject    { return NewPrimitive("Int", v) }
func boxFloat(v float64) *DataObject { return NewPrimitive("Float", v) }
func boxBool(v bool) *DataObject    { return NewPrimitive("Bool", v) }
func boxString(v string) *DataObject { return NewPrimitive("String", v) }

func asInt(o *DataObject) int64      { return o.Native.(int64) }
func asFloat(o *DataObject) float64  { return o.Native.(float64) }
func asBool(o *DataObject) bool      { return o.Native.(bool) }
func asString(o *DataObject) string  { return o.Native.(string) }

// formatFloat renders a Float the way every literal in spec §8's scenarios
// expects it printed: 'g'-shortest, but with a guaranteed ".0" for
// whole-number values so 2.0 never collapses to the Int-indistinguishable
// "2". strconv's 'g' verb drops the fraction entirely for whole numbers.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Bridge returns the fixed table of natively implemented functions backing
// the prelude's Ops/Compare/ToString impls for primitives and the handful
// of free builtins (echo, panic, is_true, logic_and, logic_or). Grounded on
// the exact name list in spec §6.
func Bridge() map[string]Native {
	return map[string]Native{
		"add_int": func(a []*DataObject) *DataObject { return boxInt(asInt(a[0]) + asInt(a[1])) },
		"sub_int": func(a []*DataObject) *DataObject { return boxInt(asInt(a[0]) - asInt(a[1])) },
		"mul_int": func(a []*DataObject) *DataObject { return boxInt(asInt(a[0]) * asInt(a[1])) },
		"div_int": func(a []*DataObject) *DataObject { return boxInt(asInt(a[0]) / asInt(a[1])) },
		"le_int": func(a []*DataObject) *DataObject { return boxBool(asInt(a[0]) <= asInt(a[1])) },
		"gt_int": func(a []*DataObject) *DataObject { return boxBool(asInt(a[0]) > asInt(a[1])) },
		"eq_int": func(a []*DataObject) *DataObject { return boxBool(asInt(a[0]) == asInt(a[1])) },
		// lt_int/ge_int complete Compare's five-method surface for Int
		// (config.OperatorMethod keeps lt/ge as their own methods rather than
		// rewriting `<`/`>=` to a swapped gt/le at desugar time); spec §6's
		// bridge list names le/gt/eq for Int, so these two are this repo's own
		// extension, kept symmetric with the float/string tables below.
		"lt_int": func(a []*DataObject) *DataObject { return boxBool(asInt(a[0]) < asInt(a[1])) },
		"ge_int": func(a []*DataObject) *DataObject { return boxBool(asInt(a[0]) >= asInt(a[1])) },

		"add_float": func(a []*DataObject) *DataObject { return boxFloat(asFloat(a[0]) + asFloat(a[1])) },
		"sub_float": func(a []*DataObject) *DataObject { return boxFloat(asFloat(a[0]) - asFloat(a[1])) },
		"mul_float": func(a []*DataObject) *DataObject { return boxFloat(asFloat(a[0]) * asFloat(a[1])) },
		"div_float": func(a []*DataObject) *DataObject { return boxFloat(asFloat(a[0]) / asFloat(a[1])) },
		"le_float": func(a []*DataObject) *DataObject { return boxBool(asFloat(a[0]) <= asFloat(a[1])) },
		"gt_float": func(a []*DataObject) *DataObject { return boxBool(asFloat(a[0]) > asFloat(a[1])) },
		"eq_float": func(a []*DataObject) *DataObject { return boxBool(asFloat(a[0]) == asFloat(a[1])) },
		"lt_float": func(a []*DataObject) *DataObject { return boxBool(asFloat(a[0]) < asFloat(a[1])) },
		"ge_float": func(a []*DataObject) *DataObject { return boxBool(asFloat(a[0]) >= asFloat(a[1])) },

		"add_string": func(a []*DataObject) *DataObject { return boxString(asString(a[0]) + asString(a[1])) },
		"lt_string":  func(a []*DataObject) *DataObject { return boxBool(asString(a[0]) < asString(a[1])) },
		"gt_string":  func(a []*DataObject) *DataObject { return boxBool(asString(a[0]) > asString(a[1])) },
		"eq_string":  func(a []*DataObject) *DataObject { return boxBool(asString(a[0]) == asString(a[1])) },
		"le_string":  func(a []*DataObject) *DataObject { return boxBool(asString(a[0]) <= asString(a[1])) },
		"ge_string":  func(a []*DataObject) *DataObject { return boxBool(asString(a[0]) >= asString(a[1])) },

		"int_to_float":    func(a []*DataObject) *DataObject { return boxFloat(float64(asInt(a[0]))) },
		"string_to_float": func(a []*DataObject) *DataObject {
			f, _ := strconv.ParseFloat(asString(a[0]), 64)
			return boxFloat(f)
		},
		"int_to_string":   func(a []*DataObject) *DataObject { return boxString(strconv.FormatInt(asInt(a[0]), 10)) },
		"float_to_string": func(a []*DataObject) *DataObject { return boxString(formatFloat(asFloat(a[0]))) },
		"bool_to_string":  func(a []*DataObject) *DataObject { return boxString(strconv.FormatBool(asBool(a[0]))) },

		"echo": func(a []*DataObject) *DataObject {
			fmt.Println(a[0])
			return NewPrimitive("Unit", nil)
		},
		"panic": func(a []*DataObject) *DataObject {
			panic(fmt.Sprintf("vane panic: %v", a[0]))
		},
		"is_true":   func(a []*DataObject) *DataObject { return boxBool(asBool(a[0])) },
		"logic_and": func(a []*DataObject) *DataObject { return boxBool(asBool(a[0]) && asBool(a[1])) },
		"logic_or":  func(a []*DataObject) *DataObject { return boxBool(asBool(a[0]) || asBool(a[1])) },
	}
}

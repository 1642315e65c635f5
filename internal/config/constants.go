package config

// Version is the current vane version.
var Version = "0.1.0"

const SourceFileExt = ".vane"

// IsTestMode is set once at startup so type/error rendering can normalize
// output that would otherwise be non-deterministic (not currently used by
// any printer, kept for parity with the pack's test-mode flag convention).
var IsTestMode = false

// Names of the Ops trait and its methods (spec §1: prelude registers the
// standard Ops, Compare, ToString traits). Binary operators desugar to calls
// of these methods (spec §4.5).
const (
	OpsTraitName     = "Ops"
	CompareTraitName = "Compare"
	ToStringTraitName = "ToString"

	AddMethodName = "add"
	SubMethodName = "sub"
	MulMethodName = "mul"
	DivMethodName = "div"

	GtMethodName = "gt"
	LtMethodName = "lt"
	GeMethodName = "ge"
	LeMethodName = "le"
	EqMethodName = "eq"

	ToStringMethodName = "to_string"
)

// OperatorMethod maps a surface binary operator to the trait method it
// desugars to (spec §4.5: "a op b becomes a function call a.<op_name>(b)").
var OperatorMethod = map[string]string{
	"+": AddMethodName,
	"-": SubMethodName,
	"*": MulMethodName,
	"/": DivMethodName,
	">": GtMethodName,
	"<": LtMethodName,
	">=": GeMethodName,
	"<=": LeMethodName,
	"==": EqMethodName,
}

// Prelude-registered primitive type names (spec §1).
const (
	IntType    = "Int"
	FloatType  = "Float"
	BoolType   = "Bool"
	StringType = "String"
	UnitType   = "Unit"
	AnyType    = "Any"
)

// SelfTypeVarName is the synthetic type variable every trait/impl scope binds
// for its Self type (spec §3: TraitDef.self_type, §4.4: impl target as `self`).
const SelfTypeVarName = "Self"

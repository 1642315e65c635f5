package ast

import (
	"github.com/vane-lang/vane/internal/token"
	"github.com/vane-lang/vane/internal/types"
)

// IntLiteral, FloatLiteral, BoolLiteral, StringLiteral are primitive
// literals (spec §6).
type IntLiteral struct {
	exprBase
	Value int64
}

func NewIntLiteral(span token.Span, v int64) *IntLiteral {
	return &IntLiteral{exprBase: exprBase{span: span}, Value: v}
}
func (l *IntLiteral) TokenLiteral() string { return "int" }
func (l *IntLiteral) Accept(v Visitor)     { v.VisitIntLiteral(l) }

type FloatLiteral struct {
	exprBase
	Value float64
}

func NewFloatLiteral(span token.Span, v float64) *FloatLiteral {
	return &FloatLiteral{exprBase: exprBase{span: span}, Value: v}
}
func (l *FloatLiteral) TokenLiteral() string { return "float" }
func (l *FloatLiteral) Accept(v Visitor)     { v.VisitFloatLiteral(l) }

type BoolLiteral struct {
	exprBase
	Value bool
}

func NewBoolLiteral(span token.Span, v bool) *BoolLiteral {
	return &BoolLiteral{exprBase: exprBase{span: span}, Value: v}
}
func (l *BoolLiteral) TokenLiteral() string { return "bool" }
func (l *BoolLiteral) Accept(v Visitor)     { v.VisitBoolLiteral(l) }

type StringLiteral struct {
	exprBase
	Value string
}

func NewStringLiteral(span token.Span, v string) *StringLiteral {
	return &StringLiteral{exprBase: exprBase{span: span}, Value: v}
}
func (l *StringLiteral) TokenLiteral() string { return "string" }
func (l *StringLiteral) Accept(v Visitor)     { v.VisitStringLiteral(l) }

// Identifier is a variable reference (spec §6).
type Identifier struct {
	exprBase
	Name string
}

func NewIdentifier(span token.Span, name string) *Identifier {
	return &Identifier{exprBase: exprBase{span: span}, Name: name}
}
func (i *Identifier) TokenLiteral() string { return i.Name }
func (i *Identifier) Accept(v Visitor)     { v.VisitIdentifier(i) }

// BinaryOp is a binary expression. Stage 2 desugars it to a method call on
// the Ops/Compare trait and stashes the desugared form here (spec §4.5:
// "the rewrite is stored as a side table on the node so emission uses the
// desugared form").
type BinaryOp struct {
	exprBase
	Operator  string
	Left      Expression
	Right     Expression
	Desugared *Call // filled in by stage 2

	// Negated marks `!=`, desugared to `eq` plus a boolean negation that
	// emission renders natively (no externally-provided primitive covers
	// inequality directly, spec §6 runtime bridge lists `eq_*` only).
	Negated bool
}

func NewBinaryOp(span token.Span, op string, left, right Expression) *BinaryOp {
	return &BinaryOp{exprBase: exprBase{span: span}, Operator: op, Left: left, Right: right}
}
func (b *BinaryOp) TokenLiteral() string { return b.Operator }
func (b *BinaryOp) Accept(v Visitor)     { v.VisitBinaryOp(b) }

// Attribute is a dotted access `x.a` — a field read or a trait-method
// reference depending on what stage 2 resolves it to (spec §4.5).
type Attribute struct {
	exprBase
	Receiver Expression
	Name     string

	// Resolved is set when exactly one candidate matched (spec §4.5 step 6).
	Resolved *types.ResolvedFunction
	// Multi is set when several impls matched simultaneously, pending
	// disambiguation by the enclosing call (spec §4.5 step 6, §3).
	Multi *types.MultiResolvedFunction
	// IsField is true when Name resolved to a struct field rather than a
	// trait method (spec §4.5 step 4).
	IsField bool
}

func NewAttribute(span token.Span, receiver Expression, name string) *Attribute {
	return &Attribute{exprBase: exprBase{span: span}, Receiver: receiver, Name: name}
}
func (a *Attribute) TokenLiteral() string { return "." + a.Name }
func (a *Attribute) Accept(v Visitor)     { v.VisitAttribute(a) }

// Call is a function/method call `f(a1, ..., an)` (spec §6).
type Call struct {
	exprBase
	Callee Expression // an Identifier (free function) or an Attribute (method)
	Args   []Expression

	// Set by stage 2 (spec §4.5 steps 3-8):
	Resolved    *types.ResolvedFunction
	Binds       types.Binds
	DynDispatch bool

	// Mangled is the intermediate program's entry name for this call's
	// static target, set by stage 3 the moment it first renders the callee
	// (spec §4.6). Left empty for a dyn-dispatch call site, whose target
	// depends on the receiver's runtime type and is resolved by vtable
	// lookup instead.
	Mangled string
}

func NewCall(span token.Span, callee Expression, args []Expression) *Call {
	return &Call{exprBase: exprBase{span: span}, Callee: callee, Args: args}
}
func (c *Call) TokenLiteral() string { return "call" }
func (c *Call) Accept(v Visitor)     { v.VisitCall(c) }

// StructInitField is one `name: value` pair in a StructInit, in source order
// (spec §4.5: "for each named field in init order").
type StructInitField struct {
	Name  string
	Value Expression
}

// StructInit is a struct construction `T { f1: v1, ... }` (spec §6).
type StructInit struct {
	exprBase
	TypeName string
	Fields   []StructInitField

	// Resolved is the binder-substituted, dereferenced result type (spec §4.5
	// Struct init rule, step 3).
	Resolved types.TypeRef
}

func NewStructInit(span token.Span, typeName string, fields []StructInitField) *StructInit {
	return &StructInit{exprBase: exprBase{span: span}, TypeName: typeName, Fields: fields}
}
func (s *StructInit) TokenLiteral() string { return s.TypeName }
func (s *StructInit) Accept(v Visitor)     { v.VisitStructInit(s) }

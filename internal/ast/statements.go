package ast

import (
	"github.com/vane-lang/vane/internal/token"
	"github.com/vane-lang/vane/internal/types"
)

// TypeExpr is the surface-syntax representation of a type annotation, as
// handed to the semantic pipeline by the (out-of-scope) parser: a bare name
// plus optional parameters, e.g. `Box<T>` or `impl Show`. Stage 1/2 elaborate
// this into a types.Type.
type TypeExpr struct {
	Name          string
	Parameters    []*TypeExpr
	IsExistential bool // `impl Trait<...>` return-position sugar (spec §6)
}

// Param is a function/method parameter: a name plus its declared type.
type Param struct {
	Name string
	Type *TypeExpr
}

// TypeParam is a generic parameter declaration, optionally constrained:
// `T` or `T: Show`.
type TypeParam struct {
	Name        string
	Constraints []string // trait names; MPTC arguments aren't in spec's grammar
}

// VarDef is `let x = expr;` or `let x: T = expr;` (spec §6).
type VarDef struct {
	stmtBase
	Name           string
	TypeAnnotation *TypeExpr // nil if omitted
	Value          Expression

	ResolvedType types.Type // filled in by stage 2
}

func NewVarDef(span token.Span, name string, ann *TypeExpr, value Expression) *VarDef {
	return &VarDef{stmtBase: stmtBase{span: span}, Name: name, TypeAnnotation: ann, Value: value}
}
func (d *VarDef) TokenLiteral() string { return "let" }
func (d *VarDef) Accept(v Visitor)     { v.VisitVarDef(d) }

// FunctionDef is `def fname<T1, ...>(a: A, b: B) -> R { ... }` (spec §6), and
// also a trait function signature or a trait-impl method body.
type FunctionDef struct {
	stmtBase
	Name           string
	TypeParams     []TypeParam
	Params         []Param
	ReturnType     *TypeExpr
	Body           *Block // nil for a bare trait signature (no default body)

	// Signature is installed in stage 1; stage 2 re-enters Body under
	// Signature's bindings for each specialization (spec §4.5 "Specialization
	// pass").
	Signature *types.FunctionRef
}

func NewFunctionDef(span token.Span, name string, tparams []TypeParam, params []Param, ret *TypeExpr, body *Block) *FunctionDef {
	return &FunctionDef{stmtBase: stmtBase{span: span}, Name: name, TypeParams: tparams, Params: params, ReturnType: ret, Body: body}
}
func (f *FunctionDef) TokenLiteral() string { return "def " + f.Name }
func (f *FunctionDef) Accept(v Visitor)     { v.VisitFunctionDef(f) }

// FieldDef is one `name: Type` struct field declaration.
type FieldDef struct {
	Name string
	Type *TypeExpr
}

// StructDef is `struct Name<T1, ...> { f1: Type1, ... }` (spec §6).
type StructDef struct {
	stmtBase
	Name       string
	TypeParams []TypeParam
	Fields     []FieldDef

	Def *types.StructDef // installed in stage 1
}

func NewStructDef(span token.Span, name string, tparams []TypeParam, fields []FieldDef) *StructDef {
	return &StructDef{stmtBase: stmtBase{span: span}, Name: name, TypeParams: tparams, Fields: fields}
}
func (s *StructDef) TokenLiteral() string { return "struct " + s.Name }
func (s *StructDef) Accept(v Visitor)     { v.VisitStructDef(s) }

// TraitDef is `trait Name<T1, ...> { def m(args) -> ReturnType; ... }`
// (spec §6).
type TraitDef struct {
	stmtBase
	Name       string
	TypeParams []TypeParam
	Functions  []*FunctionDef // bare signatures (Body == nil)

	Def *types.TraitDef // installed in stage 1
}

func NewTraitDef(span token.Span, name string, tparams []TypeParam, funcs []*FunctionDef) *TraitDef {
	return &TraitDef{stmtBase: stmtBase{span: span}, Name: name, TypeParams: tparams, Functions: funcs}
}
func (t *TraitDef) TokenLiteral() string { return "trait " + t.Name }
func (t *TraitDef) Accept(v Visitor)     { v.VisitTraitDef(t) }

// TraitImplDef is `impl<T1, ...> TraitRef for TargetType { def m(...) {...} }`
// (spec §6).
type TraitImplDef struct {
	stmtBase
	TypeParams []TypeParam
	Trait      *TypeExpr // a trait reference, possibly parametric
	Target     *TypeExpr
	Functions  []*FunctionDef

	Impl *types.TraitImpl // registered in stage 1
}

func NewTraitImplDef(span token.Span, tparams []TypeParam, trait, target *TypeExpr, funcs []*FunctionDef) *TraitImplDef {
	return &TraitImplDef{stmtBase: stmtBase{span: span}, TypeParams: tparams, Trait: trait, Target: target, Functions: funcs}
}
func (i *TraitImplDef) TokenLiteral() string { return "impl" }
func (i *TraitImplDef) Accept(v Visitor)     { v.VisitTraitImplDef(i) }

// ExprStatement wraps an expression used in statement position (e.g. a bare
// call).
type ExprStatement struct {
	stmtBase
	Value Expression
}

func NewExprStatement(span token.Span, value Expression) *ExprStatement {
	return &ExprStatement{stmtBase: stmtBase{span: span}, Value: value}
}
func (e *ExprStatement) TokenLiteral() string { return "expr" }
func (e *ExprStatement) Accept(v Visitor)     { v.VisitExprStatement(e) }

// Assign is `x = expr;` (reassignment of an existing variable).
type Assign struct {
	stmtBase
	Name  string
	Value Expression
}

func NewAssign(span token.Span, name string, value Expression) *Assign {
	return &Assign{stmtBase: stmtBase{span: span}, Name: name, Value: value}
}
func (a *Assign) TokenLiteral() string { return a.Name + " =" }
func (a *Assign) Accept(v Visitor)     { v.VisitAssign(a) }

// IfBranch is one `if`/`elif` condition+body pair.
type IfBranch struct {
	Condition Expression
	Body      *Block
}

// If is `if E { ... } elif E { ... } else { ... }` (spec §6).
type If struct {
	stmtBase
	Branches []IfBranch
	Else     *Block // nil if no else clause
}

func NewIf(span token.Span, branches []IfBranch, elseBlock *Block) *If {
	return &If{stmtBase: stmtBase{span: span}, Branches: branches, Else: elseBlock}
}
func (i *If) TokenLiteral() string { return "if" }
func (i *If) Accept(v Visitor)     { v.VisitIf(i) }

// While is `while E { ... }` (spec §6). break/continue are well-typed only
// inside a While body (spec §9 open-question resolution).
type While struct {
	stmtBase
	Condition Expression
	Body      *Block
}

func NewWhile(span token.Span, cond Expression, body *Block) *While {
	return &While{stmtBase: stmtBase{span: span}, Condition: cond, Body: body}
}
func (w *While) TokenLiteral() string { return "while" }
func (w *While) Accept(v Visitor)     { v.VisitWhile(w) }

// Return is `return expr;` (spec §6). WrapDynamic is set by stage 2 when the
// enclosing function's declared return is a dynamic-trait type variable and
// the observed type is concrete (spec §4.5 Return rule, §4.6 emission rule).
type Return struct {
	stmtBase
	Value       Expression // nil for a bare `return;` (Unit)
	WrapDynamic bool
	// WrapTraits lists the constraint set the wrapped concrete type's vtable
	// must be populated for (spec §4.6: "for every trait in the declared
	// return's constraint set").
	WrapTraits []types.TraitRef
}

func NewReturn(span token.Span, value Expression) *Return {
	return &Return{stmtBase: stmtBase{span: span}, Value: value}
}
func (r *Return) TokenLiteral() string { return "return" }
func (r *Return) Accept(v Visitor)     { v.VisitReturn(r) }

// Break is `break;`. Continue is `continue;` (spec §6).
type Break struct{ stmtBase }

func NewBreak(span token.Span) *Break  { return &Break{stmtBase: stmtBase{span: span}} }
func (b *Break) TokenLiteral() string  { return "break" }
func (b *Break) Accept(v Visitor)      { v.VisitBreak(b) }

type Continue struct{ stmtBase }

func NewContinue(span token.Span) *Continue { return &Continue{stmtBase: stmtBase{span: span}} }
func (c *Continue) TokenLiteral() string    { return "continue" }
func (c *Continue) Accept(v Visitor)        { v.VisitContinue(c) }

// BlockStatement lets a Block stand in statement position (function bodies,
// if/while bodies are already *Block and used directly; this wraps the
// general case of a nested bare block statement).
type BlockStatement struct {
	stmtBase
	Block *Block
}

func NewBlockStatement(span token.Span, block *Block) *BlockStatement {
	return &BlockStatement{stmtBase: stmtBase{span: span}, Block: block}
}
func (b *BlockStatement) TokenLiteral() string { return "block" }
func (b *BlockStatement) Accept(v Visitor)     { v.VisitBlockStatement(b) }

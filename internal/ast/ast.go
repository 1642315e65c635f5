// Package ast defines the AST contract consumed by the semantic pipeline
// (spec §6): a fixed set of node kinds, each carrying an opaque source span
// and mutable annotation fields the visitor stages fill in (scope, resolved
// type, call resolution). Lexing/parsing that produces this shape is out of
// scope (spec §1) — this package only defines what stage 1 consumes.
//
// Grounded on the ancestor module's visitor-dispatch AST (internal/ast/ast_core.go:
// `Accept(v Visitor)` per node, a node interface requiring `TokenLiteral()`),
// trimmed to the fixed node set spec §6 names — no open-class extension is
// needed (spec §9 design note: "the set of node kinds is fixed").
package ast

import (
	"github.com/vane-lang/vane/internal/scope"
	"github.com/vane-lang/vane/internal/token"
	"github.com/vane-lang/vane/internal/types"
)

// Node is the base interface every AST node satisfies.
type Node interface {
	TokenLiteral() string
	Span() token.Span
	Accept(v Visitor)
}

// Statement is a Node appearing in statement position.
type Statement interface {
	Node
	statementNode()
	Scope() *scope.Scope
	SetScope(*scope.Scope)
}

// Expression is a Node appearing in expression position. Scope and
// ResolvedType are set exactly once during stages 1–2 (spec §3 invariant).
type Expression interface {
	Node
	expressionNode()
	Scope() *scope.Scope
	SetScope(*scope.Scope)
	Type() types.Type
	SetType(types.Type)
}

// exprBase is embedded by every expression node; it carries the mutable
// per-node annotations stage 1/2 attach (spec §9 design note: "keep these as
// in-place fields on ... the node and mutate through &mut").
type exprBase struct {
	span  token.Span
	scope *scope.Scope
	typ   types.Type
}

func (e *exprBase) Span() token.Span        { return e.span }
func (e *exprBase) Scope() *scope.Scope     { return e.scope }
func (e *exprBase) SetScope(s *scope.Scope) { e.scope = s }
func (e *exprBase) Type() types.Type        { return e.typ }
func (e *exprBase) SetType(t types.Type)    { e.typ = t }
func (exprBase) expressionNode()            {}

// stmtBase is embedded by every statement node.
type stmtBase struct {
	span  token.Span
	scope *scope.Scope
}

func (s *stmtBase) Span() token.Span        { return s.span }
func (s *stmtBase) Scope() *scope.Scope     { return s.scope }
func (s *stmtBase) SetScope(sc *scope.Scope) { s.scope = sc }
func (stmtBase) statementNode()             {}

// Program is the root node of every AST the (out-of-scope) parser produces.
type Program struct {
	stmtBase
	Statements []Statement
}

func NewProgram(span token.Span, stmts []Statement) *Program {
	return &Program{stmtBase: stmtBase{span: span}, Statements: stmts}
}
func (p *Program) TokenLiteral() string { return "program" }
func (p *Program) Accept(v Visitor)     { v.VisitProgram(p) }

// Block is a brace-delimited sequence of statements; a fresh scope is pushed
// on entry and popped on exit (spec §3: "A fresh scope is pushed on entry to
// every block").
type Block struct {
	stmtBase
	Statements []Statement
}

func NewBlock(span token.Span, stmts []Statement) *Block {
	return &Block{stmtBase: stmtBase{span: span}, Statements: stmts}
}
func (b *Block) TokenLiteral() string { return "{" }
func (b *Block) Accept(v Visitor)     { v.VisitBlock(b) }

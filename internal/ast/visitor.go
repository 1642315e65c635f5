package ast

// Visitor is implemented by each pipeline stage (DeclarationVisitor,
// TypeCheckVisitor, EmitVisitor) to walk the fixed node set (spec §6).
// Grounded on the ancestor module's dispatch-table Visitor interface
// (internal/ast/ast_core.go), trimmed to exactly the node kinds spec §6
// names.
type Visitor interface {
	VisitProgram(*Program)
	VisitBlock(*Block)

	VisitIntLiteral(*IntLiteral)
	VisitFloatLiteral(*FloatLiteral)
	VisitBoolLiteral(*BoolLiteral)
	VisitStringLiteral(*StringLiteral)
	VisitIdentifier(*Identifier)
	VisitBinaryOp(*BinaryOp)
	VisitAttribute(*Attribute)
	VisitCall(*Call)
	VisitStructInit(*StructInit)

	VisitVarDef(*VarDef)
	VisitFunctionDef(*FunctionDef)
	VisitStructDef(*StructDef)
	VisitTraitDef(*TraitDef)
	VisitTraitImplDef(*TraitImplDef)
	VisitExprStatement(*ExprStatement)
	VisitAssign(*Assign)
	VisitIf(*If)
	VisitWhile(*While)
	VisitReturn(*Return)
	VisitBreak(*Break)
	VisitContinue(*Continue)
	VisitBlockStatement(*BlockStatement)
}

// BaseVisitor gives every stage a no-op default for node kinds it doesn't
// care about; stages embed it and override only the Visit* methods they
// need (spec §9 design note: "stages other than emission ignore most
// expression kinds"). Grounded on the ancestor module's embeddable no-op visitor
// (internal/analyzer/base_visitor.go).
type BaseVisitor struct{}

func (BaseVisitor) VisitProgram(*Program)               {}
func (BaseVisitor) VisitBlock(*Block)                   {}
func (BaseVisitor) VisitIntLiteral(*IntLiteral)         {}
func (BaseVisitor) VisitFloatLiteral(*FloatLiteral)     {}
func (BaseVisitor) VisitBoolLiteral(*BoolLiteral)       {}
func (BaseVisitor) VisitStringLiteral(*StringLiteral)   {}
func (BaseVisitor) VisitIdentifier(*Identifier)         {}
func (BaseVisitor) VisitBinaryOp(*BinaryOp)             {}
func (BaseVisitor) VisitAttribute(*Attribute)           {}
func (BaseVisitor) VisitCall(*Call)                     {}
func (BaseVisitor) VisitStructInit(*StructInit)         {}
func (BaseVisitor) VisitVarDef(*VarDef)                 {}
func (BaseVisitor) VisitFunctionDef(*FunctionDef)       {}
func (BaseVisitor) VisitStructDef(*StructDef)           {}
func (BaseVisitor) VisitTraitDef(*TraitDef)             {}
func (BaseVisitor) VisitTraitImplDef(*TraitImplDef)     {}
func (BaseVisitor) VisitExprStatement(*ExprStatement)   {}
func (BaseVisitor) VisitAssign(*Assign)                 {}
func (BaseVisitor) VisitIf(*If)                         {}
func (BaseVisitor) VisitWhile(*While)                   {}
func (BaseVisitor) VisitReturn(*Return)                 {}
func (BaseVisitor) VisitBreak(*Break)                   {}
func (BaseVisitor) VisitContinue(*Continue)             {}
func (BaseVisitor) VisitBlockStatement(*BlockStatement) {}

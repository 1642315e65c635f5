package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vane-lang/vane/internal/ast"
)

func TestParse_VarDefAndExprStatement(t *testing.T) {
	prog, err := Parse(`let x = 1 + 2; x;`)
	require.Nil(t, err)
	require.Len(t, prog.Statements, 2)

	vd, ok := prog.Statements[0].(*ast.VarDef)
	require.True(t, ok)
	assert.Equal(t, "x", vd.Name)
	bin, ok := vd.Value.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Operator)

	es, ok := prog.Statements[1].(*ast.ExprStatement)
	require.True(t, ok)
	_, ok = es.Value.(*ast.Identifier)
	assert.True(t, ok)
}

func TestParse_FunctionDefWithGenericsAndReturn(t *testing.T) {
	src := `def identity<T>(x: T) -> T { return x; }`
	prog, err := Parse(src)
	require.Nil(t, err)
	require.Len(t, prog.Statements, 1)

	fn, ok := prog.Statements[0].(*ast.FunctionDef)
	require.True(t, ok)
	assert.Equal(t, "identity", fn.Name)
	require.Len(t, fn.TypeParams, 1)
	assert.Equal(t, "T", fn.TypeParams[0].Name)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, "x", fn.Params[0].Name)
	assert.Equal(t, "T", fn.Params[0].Type.Name)
	require.NotNil(t, fn.ReturnType)
	assert.Equal(t, "T", fn.ReturnType.Name)
	require.Len(t, fn.Body.Statements, 1)
}

func TestParse_StructTraitImpl(t *testing.T) {
	src := `
struct Box<T> { value: T }
trait Show { def show(self) -> String; }
impl Show for Box<Int> { def show(self) -> String { return "box"; } }
`
	prog, err := Parse(src)
	require.Nil(t, err)
	require.Len(t, prog.Statements, 3)

	sd, ok := prog.Statements[0].(*ast.StructDef)
	require.True(t, ok)
	assert.Equal(t, "Box", sd.Name)
	require.Len(t, sd.Fields, 1)
	assert.Equal(t, "value", sd.Fields[0].Name)

	td, ok := prog.Statements[1].(*ast.TraitDef)
	require.True(t, ok)
	assert.Equal(t, "Show", td.Name)
	require.Len(t, td.Functions, 1)
	assert.Nil(t, td.Functions[0].Body)

	id, ok := prog.Statements[2].(*ast.TraitImplDef)
	require.True(t, ok)
	assert.Equal(t, "Show", id.Trait.Name)
	assert.Equal(t, "Box", id.Target.Name)
	require.Len(t, id.Target.Parameters, 1)
	assert.Equal(t, "Int", id.Target.Parameters[0].Name)
}

func TestParse_IfWhileBreakContinue(t *testing.T) {
	src := `
while x < 10 {
	if x == 5 {
		break;
	} elif x == 3 {
		continue;
	} else {
		x = x + 1;
	}
}
`
	prog, err := Parse(src)
	require.Nil(t, err)
	require.Len(t, prog.Statements, 1)

	w, ok := prog.Statements[0].(*ast.While)
	require.True(t, ok)
	require.Len(t, w.Body.Statements, 1)

	ifStmt, ok := w.Body.Statements[0].(*ast.If)
	require.True(t, ok)
	require.Len(t, ifStmt.Branches, 2)
	require.NotNil(t, ifStmt.Else)
}

func TestParse_CallAndAttributeChaining(t *testing.T) {
	prog, err := Parse(`x.add(y).show();`)
	require.Nil(t, err)
	require.Len(t, prog.Statements, 1)

	es := prog.Statements[0].(*ast.ExprStatement)
	outer, ok := es.Value.(*ast.Call)
	require.True(t, ok)
	attr, ok := outer.Callee.(*ast.Attribute)
	require.True(t, ok)
	assert.Equal(t, "show", attr.Name)

	inner, ok := attr.Receiver.(*ast.Call)
	require.True(t, ok)
	innerAttr, ok := inner.Callee.(*ast.Attribute)
	require.True(t, ok)
	assert.Equal(t, "add", innerAttr.Name)
}

func TestParse_StructInitLiteral(t *testing.T) {
	prog, err := Parse(`let b = Box { value: 1 };`)
	require.Nil(t, err)
	vd := prog.Statements[0].(*ast.VarDef)
	init, ok := vd.Value.(*ast.StructInit)
	require.True(t, ok)
	assert.Equal(t, "Box", init.TypeName)
	require.Len(t, init.Fields, 1)
	assert.Equal(t, "value", init.Fields[0].Name)
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse(`let = 1;`)
	require.NotNil(t, err)
}

package check_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vane-lang/vane/internal/check"
	"github.com/vane-lang/vane/internal/parser"
	"github.com/vane-lang/vane/internal/prelude"
	"github.com/vane-lang/vane/internal/scope"
)

func declare(t *testing.T, src string) (*scope.Manager, error) {
	t.Helper()
	prog, perr := parser.Parse(src)
	require.Nil(t, perr)

	mgr := scope.NewManager()
	prelude.Install(mgr.Root(), mgr.TraitImpls())

	v := check.NewDeclarationVisitor(mgr)
	return mgr, v.Run(prog)
}

func TestDeclaration_StructInstallsTypeSymbol(t *testing.T) {
	mgr, err := declare(t, `struct Point { x: Int, y: Int }`)
	require.NoError(t, err)

	sym, ok := mgr.Root().LookupType("Point")
	require.True(t, ok)
	require.NotNil(t, sym.StructDef)
	assert.ElementsMatch(t, []string{"x", "y"}, sym.StructDef.FieldOrder)
}

func TestDeclaration_FunctionInstallsVarSymbol(t *testing.T) {
	mgr, err := declare(t, `def add(a: Int, b: Int) -> Int { return a; }`)
	require.NoError(t, err)

	sym, ok := mgr.Root().LookupVar("add")
	require.True(t, ok)
	assert.Equal(t, "add", sym.Name)
}

func TestDeclaration_TraitImplRegistersImpl(t *testing.T) {
	mgr, err := declare(t, `
struct Point { x: Int }
trait Show { def show(self) -> String; }
impl Show for Point { def show(self) -> String { return "p"; } }
`)
	require.NoError(t, err)

	impls := mgr.TraitImpls().All()
	var found bool
	for _, impl := range impls {
		if impl.Trait.Name == "Show" && impl.TargetType.String() == "Point" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestDeclaration_DuplicateTraitImplFails(t *testing.T) {
	_, err := declare(t, `
struct Point { x: Int }
trait Show { def show(self) -> String; }
impl Show for Point { def show(self) -> String { return "p"; } }
impl Show for Point { def show(self) -> String { return "q"; } }
`)
	require.Error(t, err)
}

func TestDeclaration_UndefinedTypeInFieldFails(t *testing.T) {
	_, err := declare(t, `struct Point { x: Nope }`)
	require.Error(t, err)
}

func TestDeclaration_UndefinedTraitInImplFails(t *testing.T) {
	_, err := declare(t, `
struct Point { x: Int }
impl Nope for Point { }
`)
	require.Error(t, err)
}

func TestDeclaration_VarDefInstallsAnyPlaceholderWithoutAnnotation(t *testing.T) {
	mgr, err := declare(t, `let x = 1;`)
	require.NoError(t, err)

	sym, ok := mgr.Root().LookupVar("x")
	require.True(t, ok)
	assert.Equal(t, "Any", sym.VarType.String())
}

func TestDeclaration_GenericFunctionBindsTypeParameter(t *testing.T) {
	mgr, err := declare(t, `def identity<T>(x: T) -> T { return x; }`)
	require.NoError(t, err)

	sym, ok := mgr.Root().LookupVar("identity")
	require.True(t, ok)
	fn, ok := sym.VarType.(interface{ String() string })
	require.True(t, ok)
	assert.Contains(t, fn.String(), "->")
}

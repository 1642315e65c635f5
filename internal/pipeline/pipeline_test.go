package pipeline_test

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vane-lang/vane/internal/parser"
	"github.com/vane-lang/vane/internal/pipeline"
	"github.com/vane-lang/vane/internal/prelude"
	"github.com/vane-lang/vane/internal/runtime"
	"github.com/vane-lang/vane/internal/scope"
)

func compileAndRun(t *testing.T, src string) {
	t.Helper()
	prog, perr := parser.Parse(src)
	require.Nil(t, perr)

	mgr := scope.NewManager()
	prelude.Install(mgr.Root(), mgr.TraitImpls())

	ctx := pipeline.NewContext(prog, mgr)
	emitted, cerr := pipeline.Compile(ctx)
	require.Nil(t, cerr, "compile error: %v", cerr)
	require.NotNil(t, emitted)

	interp := runtime.NewInterpreter(emitted, ctx.Meta)
	interp.Run()
}

// compileAndCapture runs src and returns everything its echo calls wrote to
// stdout, so a test can assert on the literal text spec §8's scenarios name
// rather than just "it didn't error".
func compileAndCapture(t *testing.T, src string) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	compileAndRun(t, src)

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestPipeline_ArithmeticAndCompare(t *testing.T) {
	compileAndRun(t, `
let a = 1 + 2;
let b = a * 3;
if b > 5 {
	echo(b);
}
`)
}

func TestPipeline_GenericIdentityFunction(t *testing.T) {
	compileAndRun(t, `
def identity<T>(x: T) -> T {
	return x;
}
let n = identity(5);
let s = identity("hi");
echo(n);
echo(s);
`)
}

func TestPipeline_StructAndTraitImpl(t *testing.T) {
	compileAndRun(t, `
struct Point { x: Int, y: Int }

trait Show {
	def show(self) -> String;
}

impl Show for Point {
	def show(self) -> String {
		return "point";
	}
}

let p = Point { x: 1, y: 2 };
echo(p.show());
`)
}

func TestPipeline_WhileBreakContinue(t *testing.T) {
	compileAndRun(t, `
let i = 0;
let total = 0;
while i < 10 {
	i = i + 1;
	if i == 5 {
		continue;
	}
	if i == 8 {
		break;
	}
	total = total + i;
}
echo(total);
`)
}

func TestPipeline_AndOrShortCircuitFree(t *testing.T) {
	compileAndRun(t, `
let a = true;
let b = false;
if a and b {
	echo("both");
} elif a or b {
	echo("either");
} else {
	echo("neither");
}
`)
}

func TestPipeline_MultipleTraitImplsDisambiguatedByReturnType(t *testing.T) {
	out := compileAndCapture(t, `
trait Into<T> { def into() -> T; }
impl Into<String> for Int { def into() -> String { return int_to_string(self); } }
impl Into<Float> for Int { def into() -> Float { return int_to_float(self); } }
let s: String = (1).into();
let f: Float = (2).into();
echo(s);
echo(float_to_string(f));
`)
	assert.Equal(t, "1\n2.0\n", out)
}

func TestPipeline_UndefinedSymbolFails(t *testing.T) {
	prog, perr := parser.Parse(`let x = y;`)
	require.Nil(t, perr)

	mgr := scope.NewManager()
	prelude.Install(mgr.Root(), mgr.TraitImpls())

	ctx := pipeline.NewContext(prog, mgr)
	_, cerr := pipeline.Compile(ctx)
	require.NotNil(t, cerr)
	assert.Contains(t, cerr.Message, "y")
}

package interp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goepl/epl/internal/builtins"
	"github.com/goepl/epl/internal/errors"
	"github.com/goepl/epl/internal/model"
	"github.com/goepl/epl/internal/parser"
)

func run(t *testing.T, src string, out *bytes.Buffer) (int, error) {
	t.Helper()
	astProg, err := parser.Parse(src, "t.epl")
	require.NoError(t, err)
	root := builtins.NewRootScope(out)
	prog, err := model.ElaborateProgram(astProg, root)
	if err != nil {
		return 0, err
	}
	rc := model.NewRuntimeContext(prog.Scope.Owner())
	return Run(prog, rc)
}

func TestScenarioPureAddFoldsAndExits5(t *testing.T) {
	code, err := run(t, `fn main() -> Int { add(2, 3) }`, nil)
	require.NoError(t, err)
	require.Equal(t, 5, code)
}

func TestScenarioTopLevelLetFoldsAndExits7(t *testing.T) {
	code, err := run(t, `let x = 7
fn main() -> Int { x }
`, nil)
	require.NoError(t, err)
	require.Equal(t, 7, code)
}

func TestScenarioRuntimeMutableExits1(t *testing.T) {
	code, err := run(t, `var y: Int = 0
fn main() -> Int { y = 1 y }
`, nil)
	require.NoError(t, err)
	require.Equal(t, 1, code)
}

func TestScenarioRecursiveFactorialExits120(t *testing.T) {
	code, err := run(t, `
fn f(n: Int) -> Int { if ieq(n, 0) { 1 } else { mul(n, f(sub(n, 1))) } }
fn main() -> Int { f(5) }
`, nil)
	require.NoError(t, err)
	require.Equal(t, 120, code)
}

func TestScenarioIprintWritesAndExits0(t *testing.T) {
	var buf bytes.Buffer
	code, err := run(t, `fn main() { iprint(42) }`, &buf)
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "42\n", buf.String())
}

func TestScenarioTypeMismatchOnDeclaration(t *testing.T) {
	astProg, err := parser.Parse(`let x: Bool = add(1, 2)`, "t.epl")
	require.NoError(t, err)
	_, err = model.ElaborateProgram(astProg, builtins.NewRootScope(nil))
	require.Error(t, err)
	report, ok := err.(*errors.Report)
	require.True(t, ok)
	require.Equal(t, errors.MOD_TypeMismatch, report.Code)
}

func TestBoundaryDivisionByZeroIsExecutionError(t *testing.T) {
	// z is a runtime mutable, so div(1, z) carries a nonempty
	// runtime_depends and is never folded at elaboration time: this
	// exercises the real Exec path in Run, not InlinerError's wrapping of
	// a compile-time fold failure.
	code, err := run(t, `var z: Int = 0
fn main() -> Int { div(1, z) }
`, nil)
	require.Error(t, err)
	report, ok := err.(*errors.Report)
	require.True(t, ok)
	require.Equal(t, errors.RUN001, report.Code)
	_ = code
}

func TestBoundaryDivisionByZeroFoldFailureIsInlinerError(t *testing.T) {
	// Here both operands are compile-time constants, so the elaborator
	// itself attempts the fold and must surface the interpreter's fault
	// as an InlinerError (§7), not panic or silently skip folding.
	_, err := run(t, `fn main() -> Int { div(1, 0) }`, nil)
	require.Error(t, err)
	report, ok := err.(*errors.Report)
	require.True(t, ok)
	require.Equal(t, errors.INL001, report.Code)
	require.NotNil(t, report.Cause)
}

func TestBoundaryRedeclarationFails(t *testing.T) {
	astProg, err := parser.Parse(`
let x: Int = 1
let x: Int = 2
`, "t.epl")
	require.NoError(t, err)
	_, err = model.ElaborateProgram(astProg, builtins.NewRootScope(nil))
	require.Error(t, err)
	report, ok := err.(*errors.Report)
	require.True(t, ok)
	require.Equal(t, errors.MOD_AlreadyDefined, report.Code)
}

func TestBoundaryAssignmentToLetFails(t *testing.T) {
	astProg, err := parser.Parse(`
let x: Int = 1
fn main() -> Int { x = 2 x }
`, "t.epl")
	require.NoError(t, err)
	_, err = model.ElaborateProgram(astProg, builtins.NewRootScope(nil))
	require.Error(t, err)
	report, ok := err.(*errors.Report)
	require.True(t, ok)
	require.Equal(t, errors.MOD_Immutable, report.Code)
}

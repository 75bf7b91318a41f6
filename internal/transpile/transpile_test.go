package transpile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goepl/epl/internal/builtins"
	"github.com/goepl/epl/internal/model"
	"github.com/goepl/epl/internal/parser"
)

func transpileSource(t *testing.T, src string) string {
	t.Helper()
	astProg, err := parser.Parse(src, "t.epl")
	require.NoError(t, err)
	root := builtins.NewRootScope(nil)
	prog, err := model.ElaborateProgram(astProg, root)
	require.NoError(t, err)
	rc := model.NewRuntimeContext(prog.Scope.Owner())
	out, err := Transpile(prog, rc)
	require.NoError(t, err)
	return out
}

func TestTranspilePureCallEmitsLiteralNotCall(t *testing.T) {
	c := transpileSource(t, `fn main() -> Int { add(2, 3) }`)
	require.Contains(t, c, "5", "expected folded literal 5 in output")
	require.NotContains(t, c, "add(", "expected no call to add in folded output")
}

func TestTranspileTopLevelLetEmitsConstDecl(t *testing.T) {
	c := transpileSource(t, "let x = 7\nfn main() -> Int { x }\n")
	require.Contains(t, c, "const Int")
	require.Contains(t, c, "7")
}

func TestTranspileMutableAssignmentEmitsRealAssignment(t *testing.T) {
	c := transpileSource(t, "var y: Int = 0\nfn main() -> Int { y = 1 y }\n")
	require.Contains(t, c, "= 1;", "expected a real assignment")
}

func TestTranspileEmptyBlockEmitsBraces(t *testing.T) {
	c := transpileSource(t, "var i: Int = 0\nfn main() -> Int { while gt(i, 0) { } 0 }\n")
	require.Contains(t, c, "{}", "expected an empty block sentinel")
}

func TestTranspileEnumEmitsTypedef(t *testing.T) {
	c := transpileSource(t, `
enum Color { red, green, blue }
fn main() -> Int { 0 }
`)
	require.Contains(t, c, "typedef enum")
}

func TestTranspileIncludesBuiltinsHeader(t *testing.T) {
	c := transpileSource(t, `fn main() -> Int { 0 }`)
	require.Contains(t, c, `#include "builtins.h"`)
}

func TestTranspileSynthesizesMain(t *testing.T) {
	c := transpileSource(t, `fn main() -> Int { 42 }`)
	require.Contains(t, c, "int main(void)")
}

// TestTranspileDiscardedNonLastCallIsEmitted pins a call whose own return
// type is not Unit (abort is Void-typed) but whose value is discarded
// because it sits in statement position, not last in its block: it must
// still appear in the generated C, terminated, not vanish.
func TestTranspileDiscardedNonLastCallIsEmitted(t *testing.T) {
	c := transpileSource(t, `fn main() { abort() iprint(1) }`)
	require.Contains(t, c, "abort()")
	require.Contains(t, c, "iprint(1)")
}

// TestTranspileDiscardedIntReturningCallIsEmitted covers a user function
// with a non-Unit declared return type, called only for its side effect
// from a Unit-typed main: the call must still execute in the compiled
// binary even though its value is thrown away.
func TestTranspileDiscardedIntReturningCallIsEmitted(t *testing.T) {
	c := transpileSource(t, `
var y: Int = 0
fn f() -> Int { y = 1 y }
fn main() { f() }
`)
	require.Regexp(t, `f_\w+\(\);`, c)
}

// TestTranspileDiscardedCallInUnitIfBranchIsEmitted covers the same defect
// one level deeper: a Void-typed call that is also the *last* statement of
// a Unit-typed if-branch, where nothing else in the branch would cause it
// to be written out.
func TestTranspileDiscardedCallInUnitIfBranchIsEmitted(t *testing.T) {
	c := transpileSource(t, `
var n: Int = 0
fn main() { if ieq(n, 0) { abort() } iprint(1) }
`)
	require.Contains(t, c, "abort()")
	require.Contains(t, c, "iprint(1)")
}

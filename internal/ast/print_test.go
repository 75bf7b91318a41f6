package ast_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/goepl/epl/internal/ast"
	"github.com/goepl/epl/internal/parser"
	"github.com/goepl/epl/testutil"
)

// TestRoundTripEquivalentSourceProducesSameAst is the §8 round-trip
// invariant: two sources that differ only in whitespace/comments must
// parse to AST shapes that compare equal once srcmap is stripped.
func TestRoundTripEquivalentSourceProducesSameAst(t *testing.T) {
	a, err := parser.Parse("let x: Int = 5\nfn add_one(n: Int) -> Int { add(n, 1) }\n", "a.epl")
	require.NoError(t, err)

	b, err := parser.Parse(`
	let   x  :  Int   =   5
	fn add_one ( n : Int ) -> Int {
		add ( n , 1 )
	}
`, "b.epl")
	require.NoError(t, err)

	if diff := cmp.Diff(ast.Simplify(a), ast.Simplify(b)); diff != "" {
		t.Fatalf("AST shapes differ after stripping srcmap (-a +b):\n%s", diff)
	}
}

func TestSimplifyIntLiteralMatchesGolden(t *testing.T) {
	prog, err := parser.Parse("42", "t.epl")
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)

	testutil.CompareWithGolden(t, "ast", "int_literal", ast.Simplify(prog.Statements[0]))
}

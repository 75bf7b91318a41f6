package replshell

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goepl/epl/internal/model"
)

func TestEvalExpressionReturnsValue(t *testing.T) {
	sess := New(nil)
	v, ok, err := sess.Eval("add(2, 3)")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "5", v.String())
}

func TestEvalPersistsLetAcrossLines(t *testing.T) {
	sess := New(nil)
	_, _, err := sess.Eval("let x = 7")
	require.NoError(t, err)
	v, ok, err := sess.Eval("x")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "7", v.String())
}

func TestEvalPersistsFuncAcrossLines(t *testing.T) {
	sess := New(nil)
	_, _, err := sess.Eval("fn double(n: Int) -> Int { mul(n, 2) }")
	require.NoError(t, err)
	v, ok, err := sess.Eval("double(21)")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "42", v.String())
}

func TestEvalMutableVarAcrossLines(t *testing.T) {
	sess := New(nil)
	_, _, err := sess.Eval("var y: Int = 1")
	require.NoError(t, err)
	_, _, err = sess.Eval("y = 2")
	require.NoError(t, err)
	v, ok, err := sess.Eval("y")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "2", v.String())
}

func TestEvalUndefinedNameIsError(t *testing.T) {
	sess := New(nil)
	_, _, err := sess.Eval("doesNotExist")
	require.Error(t, err)
}

func TestEvalIprintWritesToSessionOutput(t *testing.T) {
	var buf bytes.Buffer
	sess := New(&buf)
	v, ok, err := sess.Eval("iprint(9)")
	require.NoError(t, err)
	require.True(t, ok)
	_, isUnit := v.Type().(model.UnitType)
	require.True(t, isUnit)
	require.Equal(t, "9\n", buf.String())
}

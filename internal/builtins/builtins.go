// Package builtins seeds the root scope every EPL program elaborates
// against: the primitive types, the Bool enum, and the arithmetic,
// comparison, boolean, and IO builtin functions (§4.7).
package builtins

import (
	"fmt"
	"io"

	"github.com/goepl/epl/internal/errors"
	"github.com/goepl/epl/internal/model"
)

// NewRootScope builds a fresh builtin scope writing iprint/bprint output to
// out. A nil out discards output (useful for pure-compile-time tests).
func NewRootScope(out io.Writer) *model.Scope {
	if out == nil {
		out = io.Discard
	}
	root := model.NewRootScope()

	registerType(root, "Unit", model.UnitType{})
	registerType(root, "Void", model.VoidType{})
	registerType(root, "Int", model.IntType{})

	boolType := &model.EnumType{Name: "Bool", Values: []string{"false", "true"}}
	registerTypeValue(root, "Bool", model.TypeValue(boolType))
	registerVariant(root, boolType, "false")
	registerVariant(root, boolType, "true")

	registerArithmetic(root)
	registerComparison(root, boolType)
	registerBoolean(root, boolType)
	registerIO(root, boolType, out)

	return root
}

func registerType(root *model.Scope, name string, t model.Type) {
	registerTypeValue(root, name, model.TypeValue(t))
}

func registerTypeValue(root *model.Scope, name string, v model.Value) {
	vd := &model.VarDef{Name: name, Readonly: true, Typ: model.KindType{}, Owner: root.Owner()}
	vd.SetStaticValue(v)
	if err := root.AddTerm(name, vd, nil); err != nil {
		panic(err)
	}
}

func registerVariant(root *model.Scope, t *model.EnumType, name string) {
	vd := &model.VarDef{Name: name, Readonly: true, Typ: t, Owner: root.Owner()}
	vd.SetStaticValue(model.EnumValue(t, name))
	if err := root.AddTerm(name, vd, nil); err != nil {
		panic(err)
	}
}

func register(root *model.Scope, name string, args []model.Type, ret model.Type, compileTime bool, impl func(args []model.Value) (model.Value, error)) {
	b := &model.Builtin{Name: name, Args: args, Ret: ret, CompileTime: compileTime, Impl: impl}
	if err := root.AddTerm(name, b, nil); err != nil {
		panic(err)
	}
}

func boolOf(t *model.EnumType, b bool) model.Value {
	if b {
		return model.EnumValue(t, "true")
	}
	return model.EnumValue(t, "false")
}

func boolOfValue(v model.Value) bool {
	return v.Variant == "true"
}

// registerArithmetic registers add/sub/mul/div/mod exactly as
// original_source/builtins.py does, except div and mod raise a runtime
// error on a zero divisor (the Python original silently divides, which
// is a latent bug there — spec.md §8's boundary behavior requires a
// division-by-zero to surface as an execution-time error ancestor
// consistently from both the interpreter and the transpiled binary).
func registerArithmetic(root *model.Scope) {
	ii := []model.Type{model.IntType{}, model.IntType{}}
	register(root, "add", ii, model.IntType{}, true, func(a []model.Value) (model.Value, error) {
		return model.IntValue(a[0].Int + a[1].Int), nil
	})
	register(root, "sub", ii, model.IntType{}, true, func(a []model.Value) (model.Value, error) {
		return model.IntValue(a[0].Int - a[1].Int), nil
	})
	register(root, "mul", ii, model.IntType{}, true, func(a []model.Value) (model.Value, error) {
		return model.IntValue(a[0].Int * a[1].Int), nil
	})
	register(root, "div", ii, model.IntType{}, true, func(a []model.Value) (model.Value, error) {
		if a[1].Int == 0 {
			return model.Value{}, errors.NewExecution(errors.RUN001, errors.PhaseInterpreter, "division by zero")
		}
		return model.IntValue(a[0].Int / a[1].Int), nil
	})
	register(root, "mod", ii, model.IntType{}, true, func(a []model.Value) (model.Value, error) {
		if a[1].Int == 0 {
			return model.Value{}, errors.NewExecution(errors.RUN001, errors.PhaseInterpreter, "modulo by zero")
		}
		return model.IntValue(a[0].Int % a[1].Int), nil
	})
}

func registerComparison(root *model.Scope, boolType *model.EnumType) {
	ii := []model.Type{model.IntType{}, model.IntType{}}
	cmp := func(name string, f func(a, b int64) bool) {
		register(root, name, ii, boolType, true, func(a []model.Value) (model.Value, error) {
			return boolOf(boolType, f(a[0].Int, a[1].Int)), nil
		})
	}
	cmp("ieq", func(a, b int64) bool { return a == b })
	cmp("ineq", func(a, b int64) bool { return a != b })
	cmp("gt", func(a, b int64) bool { return a > b })
	cmp("geq", func(a, b int64) bool { return a >= b })
	cmp("lt", func(a, b int64) bool { return a < b })
	cmp("leq", func(a, b int64) bool { return a <= b })
}

func registerBoolean(root *model.Scope, boolType *model.EnumType) {
	bb := []model.Type{boolType, boolType}
	b1 := []model.Type{boolType}
	register(root, "and", bb, boolType, true, func(a []model.Value) (model.Value, error) {
		return boolOf(boolType, boolOfValue(a[0]) && boolOfValue(a[1])), nil
	})
	register(root, "or", bb, boolType, true, func(a []model.Value) (model.Value, error) {
		return boolOf(boolType, boolOfValue(a[0]) || boolOfValue(a[1])), nil
	})
	register(root, "xor", bb, boolType, true, func(a []model.Value) (model.Value, error) {
		return boolOf(boolType, boolOfValue(a[0]) != boolOfValue(a[1])), nil
	})
	register(root, "not", b1, boolType, true, func(a []model.Value) (model.Value, error) {
		return boolOf(boolType, !boolOfValue(a[0])), nil
	})
	register(root, "beq", bb, boolType, true, func(a []model.Value) (model.Value, error) {
		return boolOf(boolType, boolOfValue(a[0]) == boolOfValue(a[1])), nil
	})
	register(root, "bneq", bb, boolType, true, func(a []model.Value) (model.Value, error) {
		return boolOf(boolType, boolOfValue(a[0]) != boolOfValue(a[1])), nil
	})
}

// registerIO registers the three effectful builtins: iprint, bprint, and
// abort — all marked compile_time=false, so no expression that calls one
// is ever folded away, matching `call_runtime_depends = [self]` in
// original_source/builtins.py.
func registerIO(root *model.Scope, boolType *model.EnumType, out io.Writer) {
	register(root, "iprint", []model.Type{model.IntType{}}, model.UnitType{}, false, func(a []model.Value) (model.Value, error) {
		fmt.Fprintf(out, "%d\n", a[0].Int)
		return model.UnitValue(), nil
	})
	register(root, "bprint", []model.Type{boolType}, model.UnitType{}, false, func(a []model.Value) (model.Value, error) {
		fmt.Fprintf(out, "%s\n", a[0].Variant)
		return model.UnitValue(), nil
	})
	register(root, "abort", nil, model.VoidType{}, false, func(a []model.Value) (model.Value, error) {
		return model.Value{}, errors.NewExecution(errors.RUN001, errors.PhaseInterpreter, "abort")
	})
}

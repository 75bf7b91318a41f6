package parser

import (
	"strings"
	"testing"

	"github.com/goepl/epl/internal/ast"
)

func TestParseLetAndFuncDef(t *testing.T) {
	src := `
let x: Int = 5
fn add_one(n: Int) -> Int {
	add(n, 1)
}
`
	prog, err := Parse(src, "t.epl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	v, ok := prog.Statements[0].(*ast.Var)
	if !ok {
		t.Fatalf("expected *ast.Var, got %T", prog.Statements[0])
	}
	if v.Name != "x" || !v.Readonly {
		t.Fatalf("unexpected var: %+v", v)
	}
	if _, ok := v.Type.(*ast.Term); !ok {
		t.Fatalf("expected type Term, got %T", v.Type)
	}

	fn, ok := prog.Statements[1].(*ast.Func)
	if !ok {
		t.Fatalf("expected *ast.Func, got %T", prog.Statements[1])
	}
	if fn.Name != "add_one" || len(fn.Args) != 1 || fn.Args[0].Name != "n" {
		t.Fatalf("unexpected func: %+v", fn)
	}
	if fn.ReturnType == nil {
		t.Fatal("expected return type")
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(fn.Body.Statements))
	}
	call, ok := fn.Body.Statements[0].(*ast.Call)
	if !ok {
		t.Fatalf("expected call, got %T", fn.Body.Statements[0])
	}
	if callee, ok := call.Callee.(*ast.Term); !ok || callee.Name != "add" {
		t.Fatalf("unexpected callee: %+v", call.Callee)
	}
}

func TestParseEnumAndAttributeAccess(t *testing.T) {
	src := `
enum Color { red, green, blue }
let c: Color = Color.red
`
	prog, err := Parse(src, "t.epl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	en, ok := prog.Statements[0].(*ast.Enum)
	if !ok {
		t.Fatalf("expected *ast.Enum, got %T", prog.Statements[0])
	}
	if en.Name != "Color" || len(en.Values) != 3 || en.Values[2] != "blue" {
		t.Fatalf("unexpected enum: %+v", en)
	}
	v := prog.Statements[1].(*ast.Var)
	attr, ok := v.Value.(*ast.AttributeAccess)
	if !ok {
		t.Fatalf("expected attribute access, got %T", v.Value)
	}
	if attr.Attribute != "red" {
		t.Fatalf("unexpected attribute: %+v", attr)
	}
}

func TestParseIfWhileAssignment(t *testing.T) {
	src := `
fn f(n: Int) -> Int {
	var acc: Int = 0
	while gt(n, 0) {
		acc = add(acc, n)
		n = sub(n, 1)
	}
	if gt(acc, 100) {
		acc
	} else {
		0
	}
}
`
	prog, err := Parse(src, "t.epl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := prog.Statements[0].(*ast.Func)
	if len(fn.Body.Statements) != 3 {
		t.Fatalf("expected 3 statements in body, got %d", len(fn.Body.Statements))
	}
	wh, ok := fn.Body.Statements[1].(*ast.While)
	if !ok {
		t.Fatalf("expected while, got %T", fn.Body.Statements[1])
	}
	if len(wh.Body.Statements) != 2 {
		t.Fatalf("expected 2 statements in while body, got %d", len(wh.Body.Statements))
	}
	assign, ok := wh.Body.Statements[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("expected assignment, got %T", wh.Body.Statements[0])
	}
	if assign.Destination != "acc" {
		t.Fatalf("unexpected destination: %s", assign.Destination)
	}
	iff, ok := fn.Body.Statements[2].(*ast.If)
	if !ok {
		t.Fatalf("expected if, got %T", fn.Body.Statements[2])
	}
	if iff.OnFalse == nil {
		t.Fatal("expected else block")
	}
}

func TestParseFuncLiteralAndTupleType(t *testing.T) {
	src := `
let pair: (Int, Bool) = (1, true)
let adder = fn(a: Int, b: Int) -> Int { add(a, b) }
`
	prog, err := Parse(src, "t.epl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := prog.Statements[0].(*ast.Var)
	if _, ok := v.Type.(*ast.Tuple); !ok {
		t.Fatalf("expected tuple type, got %T", v.Type)
	}
	if _, ok := v.Value.(*ast.Tuple); !ok {
		t.Fatalf("expected tuple value, got %T", v.Value)
	}

	adder := prog.Statements[1].(*ast.Var)
	fn, ok := adder.Value.(*ast.Func)
	if !ok {
		t.Fatalf("expected func literal, got %T", adder.Value)
	}
	if fn.Name != "" {
		t.Fatalf("expected anonymous func, got name %q", fn.Name)
	}
	if len(fn.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(fn.Args))
	}
}

func TestParseTypeAlias(t *testing.T) {
	prog, err := Parse(`type Age = Int`, "t.epl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alias, ok := prog.Statements[0].(*ast.TypeAlias)
	if !ok {
		t.Fatalf("expected *ast.TypeAlias, got %T", prog.Statements[0])
	}
	if alias.Name != "Age" {
		t.Fatalf("unexpected alias name: %s", alias.Name)
	}
}

func TestParseErrorOnUnexpectedToken(t *testing.T) {
	_, err := Parse(`let x: Int = )`, "t.epl")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "unexpected token") {
		t.Fatalf("unexpected error message: %v", err)
	}
}

func TestParseRecursiveFunctionBody(t *testing.T) {
	src := `
fn countdown(n: Int) -> Int {
	if gt(n, 0) {
		countdown(sub(n, 1))
	} else {
		0
	}
}
`
	prog, err := Parse(src, "t.epl")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := prog.Statements[0].(*ast.Func)
	iff := fn.Body.Statements[0].(*ast.If)
	call, ok := iff.OnTrue.Statements[0].(*ast.Call)
	if !ok {
		t.Fatalf("expected self-call, got %T", iff.OnTrue.Statements[0])
	}
	if callee, ok := call.Callee.(*ast.Term); !ok || callee.Name != "countdown" {
		t.Fatalf("expected recursive call to countdown, got %+v", call.Callee)
	}
}

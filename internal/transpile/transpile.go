package transpile

import (
	"fmt"

	"github.com/goepl/epl/internal/errors"
	"github.com/goepl/epl/internal/model"
	"github.com/goepl/epl/internal/sid"
)

// Transpiler walks an elaborated Program and emits a single C translation
// unit. A Transpiler is single-use: Transpile constructs one, builds the
// Output tree, and renders it once (§5: "the Output tree is not shared
// across contexts; each transpiler invocation builds a fresh one").
type Transpiler struct {
	ids  *sid.Allocator
	rc   *model.RuntimeContext // shared build-time context for emit-time folding
	decl *Output               // top-of-file typedefs and function bodies, in first-use order

	funcNames     map[*model.Function]string
	enumNames     map[*model.EnumType]string
	funcTypeNames map[*model.FuncType]string
	varNames      map[*model.VarDef]string
}

// Transpile renders the elaborated prog as C source text. rootRC is a
// build-time runtime context the transpiler folds against for any subtree
// that still needs a fold at emit time (§4.6:
// "the transpiler may also call the interpreter directly on a compile-time
// subtree through a shared build-time runtime context").
func Transpile(prog *model.Program, rootRC *model.RuntimeContext) (string, error) {
	t := &Transpiler{
		ids:           sid.NewAllocator(),
		rc:            rootRC,
		decl:          NewOutput(),
		funcNames:     map[*model.Function]string{},
		enumNames:     map[*model.EnumType]string{},
		funcTypeNames: map[*model.FuncType]string{},
		varNames:      map[*model.VarDef]string{},
	}
	top := NewOutput()
	// Function bodies are rendered into t.decl, above top, so every
	// top-level variable is declared there ahead of any body that uses it.
	for _, st := range prog.Statements {
		if v, ok := st.(*model.VarDef); ok {
			cType, err := t.cType(v.Typ)
			if err != nil {
				return "", err
			}
			qualifier := ""
			if v.Readonly {
				qualifier = "const "
			}
			t.decl.Emitf("extern %s%s %s ;", qualifier, cType, t.nameFor(v))
			t.decl.Emit("\n")
		}
	}
	for _, st := range prog.Statements {
		if err := t.emitTopStatement(st, top); err != nil {
			return "", err
		}
	}

	var mainCall string
	mainReturnsInt := false
	if mainDef, err := prog.Scope.Resolve("main", nil); err == nil {
		if fn, ok := mainDef.(*model.Function); ok {
			name, err := t.emitFunction(fn)
			if err != nil {
				return "", err
			}
			mainCall = name
			_, mainReturnsInt = fn.ReturnTyp.(model.IntType)
		}
	}

	out := NewOutput()
	out.Emit(`#include "builtins.h"`)
	out.Emit("\n")
	out.items = append(out.items, outputItem{nested: t.decl})
	out.Emit("\n")
	out.items = append(out.items, outputItem{nested: top})
	out.Emit("\n")
	out.Emit("int main ( void ) {")
	body := out.Child().Indent()
	if mainCall != "" && mainReturnsInt {
		body.Emitf("Int r = %s ( ) ;", mainCall)
		body.Emit("\n")
		body.Emit("return r ;")
	} else if mainCall != "" {
		body.Emitf("%s ( ) ;", mainCall)
		body.Emit("\n")
		body.Emit("return 0 ;")
	} else {
		body.Emit("return 0 ;")
	}
	out.Emit("\n")
	out.Emit("}")
	return out.Render(), nil
}

// emitTopStatement handles one Program-level statement: a VarDef (let/var),
// a named Function, an EnumDef, or a bare expression statement.
func (t *Transpiler) emitTopStatement(st model.Node, out *Output) error {
	switch n := st.(type) {
	case *model.VarDef:
		return t.emitVarDef(n, out)
	case *model.Function:
		_, err := t.emitFunction(n)
		return err
	case *model.EnumDef:
		_, err := t.emitEnumType(n.Typ)
		return err
	case model.Expr:
		prelude := out.Child()
		body := out.Child()
		return t.emitStatement(n, prelude, body)
	default:
		return errors.NewExecution(errors.RUN001, errors.PhaseCompiler, "transpile: unexpected top-level node %T", st)
	}
}

// emitVarDef emits `const T name = value;` for readonly bindings, `T name =
// value;` otherwise (§4.6), recording name so later VarRefs resolve to it.
func (t *Transpiler) emitVarDef(v *model.VarDef, out *Output) error {
	cType, err := t.cType(v.Typ)
	if err != nil {
		return err
	}
	name := t.nameFor(v)
	if v.Value == nil {
		out.Emitf("%s %s ;", cType, name)
		out.Emit("\n")
		return nil
	}
	prelude := out.Child()
	valText, err := t.emitExpr(v.Value, prelude, out)
	if err != nil {
		return err
	}
	qualifier := ""
	if v.Readonly {
		qualifier = "const "
	}
	out.Emitf("%s%s %s = %s ;", qualifier, cType, name, valText)
	out.Emit("\n")
	return nil
}

func (t *Transpiler) nameFor(v *model.VarDef) string {
	if n, ok := t.varNames[v]; ok {
		return n
	}
	n := sid.Mangle(v.Name, t.ids.Next())
	t.varNames[v] = n
	return n
}

// emitFunction emits a C function definition once per Function node (cached
// by identity on first emission via a generated unique name), returning
// that name (§4.6).
func (t *Transpiler) emitFunction(fn *model.Function) (string, error) {
	if name, ok := t.funcNames[fn]; ok {
		return name, nil
	}
	name := sid.Mangle(fn.Name, t.ids.Next())
	t.funcNames[fn] = name // reserve before emitting the body, for recursive calls

	retType, err := t.cType(fn.ReturnTyp)
	if err != nil {
		return "", err
	}
	argDecls := make([]string, len(fn.Args))
	for i, a := range fn.Args {
		aType, err := t.cType(a.Typ)
		if err != nil {
			return "", err
		}
		argDecls[i] = fmt.Sprintf("%s %s", aType, t.nameFor(a))
	}
	sig := NewOutput()
	sig.Emitf("%s %s (", retType, name)
	for i, d := range argDecls {
		if i > 0 {
			sig.Emit(",")
		}
		sig.Emit(d)
	}
	if len(argDecls) == 0 {
		sig.Emit("void")
	}
	sig.Emit(") {")

	body := sig.Child().Indent()
	prelude := body.Child()
	stmts := body.Child()
	_, unit := fn.ReturnTyp.(model.UnitType)
	resultText, err := t.emitBlockStatements(fn.Body, prelude, stmts, !unit)
	if err != nil {
		return "", err
	}
	if !unit {
		stmts.Emitf("return %s ;", resultText)
	}
	sig.Emit("\n")
	sig.Emit("}")
	sig.Emit("\n")
	t.decl.items = append(t.decl.items, outputItem{nested: sig})
	return name, nil
}

// emitExpr emits e's value, writing any needed declarations into prelude
// and any needed statements into body, and returns the C text that denotes
// e's value in the enclosing expression. A Precompiled node is emitted via
// its already-folded Value (§4.6's "emitted via its Precompiled Value
// whenever one exists"); the eager folding in internal/model's elaborator
// means almost every compile-time-reducible subtree has already become one
// by the time it reaches here.
func (t *Transpiler) emitExpr(e model.Expr, prelude, body *Output) (string, error) {
	switch n := e.(type) {
	case *model.Precompiled:
		return t.literalText(n.Value)
	case *model.Lit:
		return t.literalText(n.Val)
	case *model.FuncLit:
		return t.emitFunction(n.Fn)
	case *model.TermRef:
		return t.emitTermRef(n)
	case *model.Call:
		return t.emitCall(n, prelude, body)
	case *model.Assignment:
		return t.emitAssignment(n, prelude, body)
	case *model.If:
		return t.emitIf(n, prelude, body)
	case *model.While:
		return t.emitWhile(n, prelude, body)
	case *model.Block:
		return t.emitBlockAsExpr(n, prelude, body)
	case *model.AttrAccess, *model.TupleExpr:
		// Both kinds only ever elaborate with empty runtime_depends (an
		// AttrAccess reads a fixed enum value; a TupleExpr builds a type),
		// so the elaborator's eager fold has already replaced them with a
		// Precompiled by the time a Transpiler ever sees the tree. Fall
		// back to folding directly, for defense in depth.
		val, err := model.Exec(e, t.rc)
		if err != nil {
			return "", errors.Wrap(errors.INL001, errors.PhaseInliner, e.AstNode(), err)
		}
		return t.literalText(val)
	default:
		return "", errors.NewExecution(errors.RUN001, errors.PhaseCompiler, "transpile: unhandled expression %T", e)
	}
}

func (t *Transpiler) emitTermRef(n *model.TermRef) (string, error) {
	switch d := n.Def.(type) {
	case *model.VarDef:
		if val, ok := d.StaticValue(); ok {
			return t.literalText(val)
		}
		return t.nameFor(d), nil
	case *model.Function:
		return t.emitFunction(d)
	case *model.Builtin:
		return d.Name, nil
	default:
		return "", errors.NewExecution(errors.RUN001, errors.PhaseCompiler, "transpile: unresolvable term")
	}
}

func (t *Transpiler) emitCall(c *model.Call, prelude, body *Output) (string, error) {
	calleeText, err := t.emitExpr(c.Callee, prelude, body)
	if err != nil {
		return "", err
	}
	argTexts := make([]string, len(c.Args))
	for i, a := range c.Args {
		at, err := t.emitExpr(a, prelude, body)
		if err != nil {
			return "", err
		}
		argTexts[i] = at
	}
	call := NewOutput()
	call.Emitf("%s (", calleeText)
	for i, at := range argTexts {
		if i > 0 {
			call.Emit(",")
		}
		call.Emit(at)
	}
	call.Emit(")")
	return call.Render(), nil
}

func (t *Transpiler) emitAssignment(a *model.Assignment, prelude, body *Output) (string, error) {
	valText, err := t.emitExpr(a.Value, prelude, body)
	if err != nil {
		return "", err
	}
	body.Emitf("%s = %s ;", t.nameFor(a.Dest), valText)
	body.Emit("\n")
	return "", nil
}

// emitIf produces a statement-form `if` when the expression types as Unit,
// or declares a temp in prelude and assigns it from each branch otherwise
// (§4.6).
func (t *Transpiler) emitIf(n *model.If, prelude, body *Output) (string, error) {
	condText, err := t.emitExpr(n.Cond, prelude, body)
	if err != nil {
		return "", err
	}
	_, resultIsUnit := n.Typ.(model.UnitType)

	var tempName, cType string
	if !resultIsUnit {
		cType, err = t.cType(n.Typ)
		if err != nil {
			return "", err
		}
		tempName = sid.Mangle("if_result", t.ids.Next())
		prelude.Emitf("%s %s ;", cType, tempName)
		prelude.Emit("\n")
	}

	body.Emitf("if ( %s ) {", condText)
	onTrue := body.Child().Indent()
	if err := t.emitBranch(n.OnTrue, onTrue, tempName, resultIsUnit); err != nil {
		return "", err
	}
	body.Emit("\n")
	body.Emit("}")
	if n.OnFalse != nil {
		body.Emit("else {")
		onFalse := body.Child().Indent()
		if err := t.emitBranch(n.OnFalse, onFalse, tempName, resultIsUnit); err != nil {
			return "", err
		}
		body.Emit("\n")
		body.Emit("}")
	}
	body.Emit("\n")
	return tempName, nil
}

func (t *Transpiler) emitBranch(b *model.Block, out *Output, tempName string, resultIsUnit bool) error {
	prelude := out.Child()
	stmts := out.Child()
	resultText, err := t.emitBlockStatements(b, prelude, stmts, !resultIsUnit)
	if err != nil {
		return err
	}
	if !resultIsUnit {
		stmts.Emitf("%s = %s ;", tempName, resultText)
		stmts.Emit("\n")
	}
	return nil
}

// emitWhile always produces a statement: While is Unit-typed by
// construction (§4.6).
func (t *Transpiler) emitWhile(n *model.While, prelude, body *Output) (string, error) {
	condPrelude := body.Child()
	condText, err := t.emitExpr(n.Cond, condPrelude, body)
	if err != nil {
		return "", err
	}

	body.Emitf("while ( %s ) {", condText)
	loopBody := body.Child().Indent()
	loopPrelude := loopBody.Child()
	loopStmts := loopBody.Child()
	if _, err := t.emitBlockStatements(n.Body, loopPrelude, loopStmts, false); err != nil {
		return "", err
	}
	body.Emit("\n")
	body.Emit("}")
	body.Emit("\n")
	return "", nil
}

// emitBlockAsExpr produces a temp variable in prelude when the block's
// value is wanted by the caller (§4.6's general Block rule); used for
// nested blocks appearing directly in expression position (none of EPL's
// grammar nests a bare Block there today, but function/branch bodies route
// through emitBlockStatements instead, which this delegates to).
func (t *Transpiler) emitBlockAsExpr(b *model.Block, prelude, body *Output) (string, error) {
	_, resultIsUnit := b.Typ.(model.UnitType)
	innerPrelude := body.Child()
	innerStmts := body.Child()
	resultText, err := t.emitBlockStatements(b, innerPrelude, innerStmts, !resultIsUnit)
	if err != nil {
		return "", err
	}
	if resultIsUnit {
		return "", nil
	}
	cType, err := t.cType(b.Typ)
	if err != nil {
		return "", err
	}
	tempName := sid.Mangle("block_result", t.ids.Next())
	prelude.Emitf("%s %s = %s ;", cType, tempName, resultText)
	prelude.Emit("\n")
	return tempName, nil
}

// emitStatement emits e for its side effects only. Assignment and While
// already write themselves into body and return "" (nothing further to
// do); everything else — a bare Call, TermRef, If, or Block standing alone
// in statement position — only returns inline C text and must still be
// terminated with `;` here, regardless of e's own type (§4.6: any Call
// emitted as a statement is terminated, Unit-typed or not).
func (t *Transpiler) emitStatement(e model.Expr, prelude, body *Output) error {
	text, err := t.emitExpr(e, prelude, body)
	if err != nil {
		return err
	}
	if text != "" {
		body.Emitf("%s ;", text)
		body.Emit("\n")
	}
	return nil
}

// emitBlockStatements emits every statement of b's body. Declarations
// (VarDef/Function/EnumDef) and any non-last expression statement are
// always emitted purely for effect via emitStatement. The last expression
// statement is also emitted via emitStatement — and "" is returned — when
// wantsResult is false (the caller discards the block's value, e.g. a
// Unit-typed function body or if-branch); only when wantsResult is true is
// its C text left unemitted and returned for the caller to assign to a
// temp or return directly. This matches spec.md's empty-block boundary
// behaviour: an empty block has no result text, and its caller substitutes
// the Unit sentinel.
func (t *Transpiler) emitBlockStatements(b *model.Block, prelude, body *Output, wantsResult bool) (string, error) {
	if len(b.Statements) == 0 {
		body.Emit("{ }")
		body.Emit("\n")
		return "UNIT", nil
	}
	var last string
	for i, st := range b.Statements {
		switch n := st.(type) {
		case *model.VarDef:
			if err := t.emitVarDef(n, body); err != nil {
				return "", err
			}
			last = ""
		case *model.Function:
			if _, err := t.emitFunction(n); err != nil {
				return "", err
			}
			last = ""
		case *model.EnumDef:
			if _, err := t.emitEnumType(n.Typ); err != nil {
				return "", err
			}
			last = ""
		case model.Expr:
			if i == len(b.Statements)-1 && wantsResult {
				text, err := t.emitExpr(n, prelude, body)
				if err != nil {
					return "", err
				}
				last = text
				continue
			}
			if err := t.emitStatement(n, prelude, body); err != nil {
				return "", err
			}
			last = ""
		default:
			return "", errors.NewExecution(errors.RUN001, errors.PhaseCompiler, "transpile: unexpected statement %T", st)
		}
	}
	if last == "" {
		return "UNIT", nil
	}
	return last, nil
}

// literalText renders a build-time Value as inline C.
func (t *Transpiler) literalText(v model.Value) (string, error) {
	switch vt := v.Typ.(type) {
	case model.IntType:
		return fmt.Sprintf("%d", v.Int), nil
	case model.FloatType:
		return fmt.Sprintf("%g", v.Float), nil
	case model.UnitType:
		return "UNIT", nil
	case *model.EnumType:
		if vt.Name == "Bool" {
			return v.Variant, nil // builtins.h's Bool literals are its lowercase C identifiers
		}
		name, err := t.emitEnumType(vt)
		if err != nil {
			return "", err
		}
		return name + "_" + v.Variant, nil
	default:
		if v.Func != nil {
			return t.emitFunction(v.Func)
		}
		if v.Builtin != nil {
			return v.Builtin.Name, nil
		}
		return "", errors.NewExecution(errors.RUN001, errors.PhaseCompiler, "transpile: no literal form for %s", v.Typ)
	}
}

// cType maps a model.Type to the C type used for its values. Unit, Int,
// Void, and Bool come from builtins.h (§6: "a builtins.h header that
// provides Unit, Int, Bool, and the built-in functions"); everything else
// is typedef'd on first use.
func (t *Transpiler) cType(typ model.Type) (string, error) {
	switch vt := typ.(type) {
	case model.UnitType:
		return "Unit", nil
	case model.VoidType:
		return "Void", nil
	case model.IntType:
		return "Int", nil
	case model.FloatType:
		return "double", nil
	case *model.EnumType:
		if vt.Name == "Bool" {
			return "Bool", nil
		}
		return t.emitEnumType(vt)
	case *model.FuncType:
		return t.emitFuncType(vt)
	case *model.TupleType:
		return "", errors.NewExecution(errors.RUN001, errors.PhaseCompiler, "transpile: tuple types have no runtime representation")
	default:
		return "", errors.NewExecution(errors.RUN001, errors.PhaseCompiler, "transpile: unsupported type %s", typ.String())
	}
}

// emitEnumType typedefs et as a C enum on first use: `typedef enum { a, b,
// c } Name;`. An empty enum gets a synthetic `empty` tag so the C still
// compiles (§4.6).
func (t *Transpiler) emitEnumType(et *model.EnumType) (string, error) {
	if name, ok := t.enumNames[et]; ok {
		return name, nil
	}
	name := sid.Mangle(et.Name, t.ids.Next())
	t.enumNames[et] = name

	values := et.Values
	if len(values) == 0 {
		values = []string{"empty"}
	}
	out := NewOutput()
	out.Emit("typedef enum {")
	for i, v := range values {
		if i > 0 {
			out.Emit(",")
		}
		out.Emitf("%s_%s", name, v)
	}
	out.Emitf("} %s ;", name)
	out.Emit("\n")
	t.decl.items = append(t.decl.items, outputItem{nested: out})
	return name, nil
}

// emitFuncType typedefs a function-pointer type on first use: `typedef R
// (*Fn_N)(A1, A2, ...);` (§4.6).
func (t *Transpiler) emitFuncType(ft *model.FuncType) (string, error) {
	if name, ok := t.funcTypeNames[ft]; ok {
		return name, nil
	}
	name := sid.Mangle("Fn", t.ids.Next())
	t.funcTypeNames[ft] = name

	retType, err := t.cType(ft.Return)
	if err != nil {
		return "", err
	}
	argTypes := make([]string, len(ft.Args))
	for i, a := range ft.Args {
		at, err := t.cType(a)
		if err != nil {
			return "", err
		}
		argTypes[i] = at
	}
	out := NewOutput()
	out.Emitf("typedef %s (*%s) (", retType, name)
	for i, at := range argTypes {
		if i > 0 {
			out.Emit(",")
		}
		out.Emit(at)
	}
	if len(argTypes) == 0 {
		out.Emit("void")
	}
	out.Emit(") ;")
	out.Emit("\n")
	t.decl.items = append(t.decl.items, outputItem{nested: out})
	return name, nil
}

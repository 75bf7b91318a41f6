package model

import (
	"github.com/goepl/epl/internal/ast"
	"github.com/goepl/epl/internal/errors"
)

// effectSentinel is a synthetic dependency marker, not a real binding: it is
// added to a Call's runtime_depends whenever the callee is an impure
// builtin (iprint, bprint, abort), so such a call is never folded away even
// though its arguments may themselves be compile-time constants.
var effectSentinel = &VarDef{Name: "<effect>"}

// ElaborateProgram turns a parsed AST into the typed, partially-evaluated
// model (§4.2), resolving every name against builtins and folding every
// subexpression whose runtime_depends set turns out empty.
func ElaborateProgram(astProg *ast.Program, builtins *Scope) (*Program, error) {
	owner := &Owner{Name: "<program>"}
	scope := builtins.NewChild(owner)
	buildRC := NewRuntimeContext(owner)
	stmts, err := elaborateStatements(astProg.Statements, scope, buildRC)
	if err != nil {
		return nil, err
	}
	return &Program{AstNd: astProg, Scope: scope, Statements: stmts}, nil
}

// NewSessionScope creates a scope/RuntimeContext pair rooted at builtins
// that a caller can elaborate and execute statements against incrementally,
// one `ElaborateStatement` call at a time, the REPL's persistent session.
func NewSessionScope(builtins *Scope) (*Scope, *RuntimeContext) {
	owner := &Owner{Name: "<repl>"}
	scope := builtins.NewChild(owner)
	return scope, NewRuntimeContext(owner)
}

// ElaborateStatement elaborates the statements parsed from a single REPL
// line against a persistent session scope (as returned by NewSessionScope),
// registering any new top-level name into scope exactly as ElaborateProgram
// would for a whole file, and returns the elaborated nodes in source order
// for the caller to Exec one at a time.
func ElaborateStatement(astStmts []ast.Node, scope *Scope, buildRC *RuntimeContext) ([]Node, error) {
	return elaborateStatements(astStmts, scope, buildRC)
}

// elaborateStatements elaborates a statement list (a Program or a Block
// body) in scope, two-phase: enum/type-alias names and then named-function
// signatures are registered before any function body is elaborated, so
// forward references and recursion resolve regardless of source order.
func elaborateStatements(astStmts []ast.Node, scope *Scope, buildRC *RuntimeContext) ([]Node, error) {
	enumTypes := map[ast.Node]*EnumType{}
	funcs := map[ast.Node]*Function{}

	for _, st := range astStmts {
		switch n := st.(type) {
		case *ast.Enum:
			if n.Name == "" {
				continue
			}
			et, err := declareEnum(n, scope)
			if err != nil {
				return nil, err
			}
			enumTypes[st] = et
		case *ast.TypeAlias:
			if err := declareTypeAlias(n, scope, buildRC); err != nil {
				return nil, err
			}
		}
	}

	for _, st := range astStmts {
		fd, ok := st.(*ast.Func)
		if !ok || fd.Name == "" {
			continue
		}
		fn, err := declareFuncSignature(fd, scope, buildRC)
		if err != nil {
			return nil, err
		}
		funcs[st] = fn
	}

	var out []Node
	for _, st := range astStmts {
		switch n := st.(type) {
		case *ast.Enum:
			if n.Name == "" {
				break
			}
			out = append(out, &EnumDef{AstNd: n, Typ: enumTypes[st]})
			continue
		case *ast.TypeAlias:
			continue
		case *ast.Func:
			if n.Name != "" {
				fn := funcs[st]
				if err := elaborateFuncBody(fn, n, scope, buildRC); err != nil {
					return nil, err
				}
				out = append(out, fn)
				continue
			}
		case *ast.Var:
			vd, err := elaborateVarDef(n, scope, buildRC)
			if err != nil {
				return nil, err
			}
			out = append(out, vd)
			continue
		}

		expr, ok := st.(ast.Expr)
		if !ok {
			return nil, errors.New(errors.MOD_FatalError, errors.PhaseModel, st, "statement is neither a definition nor an expression")
		}
		e, err := elaborateExpr(expr, scope, buildRC)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// declareEnum registers a named enum's type and every one of its bare
// variant names as terms (§4.1): `red` and `Color.red` both resolve,
// matching the original prototype's add_term for each enum value.
func declareEnum(node *ast.Enum, scope *Scope) (*EnumType, error) {
	et := &EnumType{Name: node.Name, Values: append([]string{}, node.Values...)}
	typeVD := &VarDef{AstNd: node, Name: node.Name, Readonly: true, Typ: KindType{}, Owner: scope.Owner()}
	tv := TypeValue(et)
	typeVD.value = &tv
	if err := scope.AddTerm(node.Name, typeVD, node); err != nil {
		return nil, err
	}
	for _, val := range node.Values {
		vd := &VarDef{AstNd: node, Name: val, Readonly: true, Typ: et, Owner: scope.Owner()}
		vv := EnumValue(et, val)
		vd.value = &vv
		if err := scope.AddTerm(val, vd, node); err != nil {
			return nil, err
		}
	}
	return et, nil
}

func declareTypeAlias(node *ast.TypeAlias, scope *Scope, buildRC *RuntimeContext) error {
	t, err := resolveTypeExpr(node.Target, scope, buildRC)
	if err != nil {
		return err
	}
	vd := &VarDef{AstNd: node, Name: node.Name, Readonly: true, Typ: KindType{}, Owner: scope.Owner()}
	tv := TypeValue(t)
	vd.value = &tv
	return scope.AddTerm(node.Name, vd, node)
}

// declareFuncSignature elaborates a named function's argument and return
// types and registers it into scope before its body is touched, so the
// body may call the function itself or any sibling declared alongside it.
func declareFuncSignature(node *ast.Func, scope *Scope, buildRC *RuntimeContext) (*Function, error) {
	self := &Owner{Name: node.Name}
	argDefs, err := elaborateFuncArgs(node.Args, self, scope, buildRC)
	if err != nil {
		return nil, err
	}
	retType, err := elaborateReturnType(node.ReturnType, scope, buildRC)
	if err != nil {
		return nil, err
	}
	fn := &Function{AstNd: node, Name: node.Name, Args: argDefs, ReturnTyp: retType, Self: self, DefOwner: scope.Owner()}
	if err := scope.AddTerm(node.Name, fn, node); err != nil {
		return nil, err
	}
	return fn, nil
}

func elaborateFuncArgs(astArgs []*ast.Var, self *Owner, scope *Scope, buildRC *RuntimeContext) ([]*VarDef, error) {
	argDefs := make([]*VarDef, len(astArgs))
	for i, a := range astArgs {
		t, err := resolveTypeExpr(a.Type, scope, buildRC)
		if err != nil {
			return nil, err
		}
		vd := &VarDef{AstNd: a, Name: a.Name, Readonly: true, Typ: t, Owner: self}
		// A parameter is opaque at the point its owning function's body is
		// elaborated: the body is built once, generically, not per call, so
		// any reference to it must never be treated as fold-safe (§4.3 row
		// 2's same-owner/readonly-transparent rule would otherwise let a
		// parameter reference carry an empty dependency set). Giving it a
		// self-dependency keeps every use of it non-empty.
		vd.RDeps = NewDepSet(vd)
		argDefs[i] = vd
	}
	return argDefs, nil
}

func elaborateReturnType(astType ast.Expr, scope *Scope, buildRC *RuntimeContext) (Type, error) {
	if astType == nil {
		return UnitType{}, nil
	}
	return resolveTypeExpr(astType, scope, buildRC)
}

// elaborateFuncBody elaborates fn's body in a fresh scope/runtime context
// parented at fn.Self, then derives fn.CallDeps — the body's dependencies
// that are not its own arguments — from the finished body.
//
// A function that calls itself recursively reads fn.CallDeps while that
// very field is still being computed (its zero value, empty); this
// slightly under-approximates the dependency set of a self-recursive call
// made from within the function's own body, in exchange for not having to
// thread a "signature not yet known" sentinel through Call elaboration. In
// every function representable here, a recursive call's own arguments
// already reference the function's parameters (themselves always
// non-empty, see elaborateFuncArgs), so the call's overall runtime_depends
// still comes out non-empty regardless of this approximation.
func elaborateFuncBody(fn *Function, node *ast.Func, scope *Scope, buildRC *RuntimeContext) error {
	bodyScope := scope.NewChild(fn.Self)
	bodyRC := buildRC.Child(fn.Self)
	for _, a := range fn.Args {
		if err := bodyScope.AddTerm(a.Name, a, a.AstNd); err != nil {
			return err
		}
		bodyRC.Declare(a)
	}
	stmts, err := elaborateStatements(node.Body.Statements, bodyScope, bodyRC)
	if err != nil {
		return err
	}
	bodyType, deps := blockTypeAndDeps(stmts)
	body := &Block{AstNd: node.Body, Scope: bodyScope, Statements: stmts, Typ: bodyType, RDeps: deps}
	if !AssignableFrom(fn.ReturnTyp, body.Typ) {
		return errors.New(errors.MOD_TypeMismatch, errors.PhaseModel, node, "function %s: declared return type %s but body produces %s", fn.Name, fn.ReturnTyp, body.Typ)
	}
	fn.Body = body

	argSet := NewDepSet(fn.Args...)
	callDeps := make(DepSet, len(deps))
	for v := range deps {
		if !argSet.Has(v) {
			callDeps[v] = struct{}{}
		}
	}
	fn.CallDeps = callDeps
	return nil
}

// blockTypeAndDeps computes a statement list's resulting type (the type of
// its last *expression* statement, Unit if none occurred — including the
// empty-block case, §8) and the union of every statement's runtime_depends.
func blockTypeAndDeps(stmts []Node) (Type, DepSet) {
	typ := Type(UnitType{})
	deps := DepSet{}
	for _, st := range stmts {
		if e, ok := st.(Expr); ok {
			typ = e.ExprType()
			deps = deps.Union(e.ExprDeps())
		} else if v, ok := st.(*VarDef); ok {
			deps = deps.Union(v.RDeps)
		}
	}
	return typ, deps
}

func elaborateVarDef(node *ast.Var, scope *Scope, buildRC *RuntimeContext) (*VarDef, error) {
	var declaredType Type
	if node.Type != nil {
		t, err := resolveTypeExpr(node.Type, scope, buildRC)
		if err != nil {
			return nil, err
		}
		declaredType = t
	}
	vd := &VarDef{AstNd: node, Name: node.Name, Readonly: node.Readonly, Owner: scope.Owner()}
	if node.Value != nil {
		valExpr, err := elaborateExpr(node.Value, scope, buildRC)
		if err != nil {
			return nil, err
		}
		if declaredType == nil {
			declaredType = valExpr.ExprType()
		} else if !AssignableFrom(declaredType, valExpr.ExprType()) {
			return nil, errors.New(errors.MOD_TypeMismatch, errors.PhaseModel, node, "%s: declared type %s but initializer is %s", node.Name, declaredType, valExpr.ExprType())
		}
		vd.Value = valExpr
		vd.RDeps = valExpr.ExprDeps()
		if p, ok := valExpr.(*Precompiled); ok && vd.Readonly {
			v := p.Value
			vd.value = &v
		}
	} else if declaredType == nil {
		return nil, errors.New(errors.MOD_FatalError, errors.PhaseModel, node, "%s: neither a type nor an initializer", node.Name)
	} else {
		vd.RDeps = DepSet{}
	}
	vd.Typ = declaredType
	if err := scope.AddTerm(node.Name, vd, node); err != nil {
		return nil, err
	}
	return vd, nil
}

// elaborateExpr elaborates n and, when the result's runtime_depends comes
// out empty, eagerly folds it to a Precompiled constant (§4.2) — except
// for the four node kinds the fold wrapper is never applied to: a bare
// literal, a function literal, a builtin reference, and a bare term
// reference, each already irreducible.
func elaborateExpr(n ast.Expr, scope *Scope, buildRC *RuntimeContext) (Expr, error) {
	raw, err := elaborateExprRaw(n, scope, buildRC)
	if err != nil {
		return nil, err
	}
	return maybeFold(raw, buildRC)
}

func maybeFold(e Expr, buildRC *RuntimeContext) (Expr, error) {
	switch e.(type) {
	case *FuncLit, *Lit, *TermRef, *Precompiled:
		return e, nil
	}
	if !e.ExprDeps().Empty() {
		return e, nil
	}
	val, err := Exec(e, buildRC)
	if err != nil {
		return nil, errors.Wrap(errors.INL001, errors.PhaseInliner, e.AstNode(), err)
	}
	return &Precompiled{AstNd: e.AstNode(), Orig: e, Value: val}, nil
}

func elaborateExprRaw(n ast.Expr, scope *Scope, buildRC *RuntimeContext) (Expr, error) {
	switch node := n.(type) {
	case *ast.Value:
		return elaborateLiteral(node)
	case *ast.Term:
		return elaborateTerm(node, scope)
	case *ast.Call:
		return elaborateCall(node, scope, buildRC)
	case *ast.AttributeAccess:
		return elaborateAttrAccess(node, scope, buildRC)
	case *ast.Assignment:
		return elaborateAssignment(node, scope, buildRC)
	case *ast.If:
		return elaborateIf(node, scope, buildRC)
	case *ast.While:
		return elaborateWhile(node, scope, buildRC)
	case *ast.Block:
		return elaborateBlockExpr(node, scope, buildRC)
	case *ast.Func:
		return elaborateFuncLiteral(node, scope, buildRC)
	case *ast.Enum:
		return elaborateAnonEnum(node)
	case *ast.Tuple:
		return elaborateTuple(node, scope, buildRC)
	default:
		return nil, errors.New(errors.MOD_FatalError, errors.PhaseModel, n, "unexpected expression node")
	}
}

func elaborateLiteral(v *ast.Value) (Expr, error) {
	switch v.Kind {
	case ast.IntValue:
		return &Lit{AstNd: v, Val: IntValue(v.Int)}, nil
	case ast.FloatValue:
		return &Lit{AstNd: v, Val: Value{Typ: FloatType{}, Float: v.Float}}, nil
	default:
		return nil, errors.New(errors.MOD_FatalError, errors.PhaseModel, v, "unsupported literal kind")
	}
}

// elaborateAnonEnum elaborates an inline, unnamed `enum { a, b }` type
// literal. It registers nothing into scope: without a name there is no way
// to refer back to it, so it exists purely as a Kind-typed value (e.g. for
// a throwaway type annotation).
func elaborateAnonEnum(node *ast.Enum) (Expr, error) {
	et := &EnumType{Values: append([]string{}, node.Values...)}
	return &Lit{AstNd: node, Val: TypeValue(et)}, nil
}

func elaborateTerm(t *ast.Term, scope *Scope) (Expr, error) {
	def, err := scope.Resolve(t.Name, t)
	if err != nil {
		return nil, err
	}
	typ := def.DefType()
	if d, ok := def.(*VarDef); ok {
		var deps DepSet
		if d.Readonly || d.Owner == scope.Owner() {
			deps = d.RDeps
		} else {
			deps = NewDepSet(d)
		}
		return &TermRef{AstNd: t, Def: d, Typ: typ, RDeps: deps}, nil
	}
	return &TermRef{AstNd: t, Def: def, Typ: typ, RDeps: DepSet{}}, nil
}

func elaborateCall(c *ast.Call, scope *Scope, buildRC *RuntimeContext) (Expr, error) {
	calleeExpr, err := elaborateExpr(c.Callee, scope, buildRC)
	if err != nil {
		return nil, err
	}
	ft, ok := calleeExpr.ExprType().(*FuncType)
	if !ok {
		return nil, errors.New(errors.MOD_NotCallable, errors.PhaseModel, c, "value of type %s is not callable", calleeExpr.ExprType())
	}
	if len(ft.Args) != len(c.Args) {
		return nil, errors.New(errors.MOD_ArgCountMismatch, errors.PhaseModel, c, "expected %d arguments, got %d", len(ft.Args), len(c.Args))
	}
	argExprs := make([]Expr, len(c.Args))
	deps := calleeExpr.ExprDeps()
	for i, a := range c.Args {
		ae, err := elaborateExpr(a, scope, buildRC)
		if err != nil {
			return nil, err
		}
		if !AssignableFrom(ft.Args[i], ae.ExprType()) {
			return nil, errors.New(errors.MOD_TypeMismatch, errors.PhaseModel, a, "argument %d: expected %s, got %s", i, ft.Args[i], ae.ExprType())
		}
		argExprs[i] = ae
		deps = deps.Union(ae.ExprDeps())
	}
	if tr, ok := calleeExpr.(*TermRef); ok {
		switch d := tr.Def.(type) {
		case *Function:
			deps = deps.Union(d.CallDeps)
			if d.Body == nil && d.Self != scope.Owner() {
				// A call to a function whose body is elaborated later in
				// source order: its dependencies are not known yet.
				deps = deps.Add(effectSentinel)
			}
		case *Builtin:
			if !d.CompileTime {
				deps = deps.Add(effectSentinel)
			}
		}
	} else {
		// The callee itself is a dynamic value (e.g. a function returned by
		// another call): its own concrete body is unknown here, so the call
		// can never be assumed fold-safe beyond what calleeExpr.ExprDeps
		// already contributed.
		deps = deps.Add(effectSentinel)
	}
	return &Call{AstNd: c, Callee: calleeExpr, Args: argExprs, Typ: ft.Return, RDeps: deps}, nil
}

// elaborateAttrAccess reads a variant off an enum type. The object must
// itself resolve to a known type at elaboration time — EPL has no runtime
// notion of "this value's enum type", only compile-time type expressions —
// so a non-empty dependency set here is always a NotCompileTime error.
func elaborateAttrAccess(node *ast.AttributeAccess, scope *Scope, buildRC *RuntimeContext) (Expr, error) {
	objExpr, err := elaborateExpr(node.Obj, scope, buildRC)
	if err != nil {
		return nil, err
	}
	if !objExpr.ExprDeps().Empty() {
		return nil, errors.New(errors.MOD_NotCompileTime, errors.PhaseModel, node, "attribute access requires a compile-time type")
	}
	objVal, err := staticValueOf(objExpr, buildRC)
	if err != nil {
		return nil, err
	}
	et, ok := objVal.TypeVal.(*EnumType)
	if !ok {
		return nil, errors.New(errors.MOD_NoSuchAttribute, errors.PhaseModel, node, "%s is not an enum type", objExpr.ExprType())
	}
	if !et.HasValue(node.Attribute) {
		return nil, errors.New(errors.MOD_NoSuchAttribute, errors.PhaseModel, node, "%s has no value %s", et, node.Attribute)
	}
	return &AttrAccess{AstNd: node, Obj: objExpr, Attribute: node.Attribute, Typ: et, RDeps: DepSet{}}, nil
}

func elaborateAssignment(node *ast.Assignment, scope *Scope, buildRC *RuntimeContext) (Expr, error) {
	def, err := scope.Resolve(node.Destination, node)
	if err != nil {
		return nil, err
	}
	d, ok := def.(*VarDef)
	if !ok {
		return nil, errors.New(errors.MOD_TypeMismatch, errors.PhaseModel, node, "%s is not a variable", node.Destination)
	}
	if d.Readonly {
		return nil, errors.New(errors.MOD_Immutable, errors.PhaseModel, node, "%s is immutable", d.Name)
	}
	valExpr, err := elaborateExpr(node.Value, scope, buildRC)
	if err != nil {
		return nil, err
	}
	if !AssignableFrom(d.Typ, valExpr.ExprType()) {
		return nil, errors.New(errors.MOD_TypeMismatch, errors.PhaseModel, node, "%s: expected %s, got %s", d.Name, d.Typ, valExpr.ExprType())
	}
	// Promote: d's own runtime_depends permanently absorbs whatever the
	// assigned value depends on (§4.3 row 6), so a later reference to d
	// from the same owner correctly carries this assignment's dependencies
	// too.
	d.RDeps = d.RDeps.Union(valExpr.ExprDeps())
	deps := valExpr.ExprDeps()
	if d.Owner != scope.Owner() {
		deps = deps.Add(d)
	}
	return &Assignment{AstNd: node, Dest: d, Value: valExpr, RDeps: deps}, nil
}

func elaborateIf(node *ast.If, scope *Scope, buildRC *RuntimeContext) (Expr, error) {
	condExpr, err := elaborateExpr(node.Cond, scope, buildRC)
	if err != nil {
		return nil, err
	}
	bt, err := boolType(scope, buildRC, node)
	if err != nil {
		return nil, err
	}
	if !AssignableFrom(bt, condExpr.ExprType()) {
		return nil, errors.New(errors.MOD_TypeMismatch, errors.PhaseModel, node, "if condition: expected Bool, got %s", condExpr.ExprType())
	}
	onTrue, err := elaborateBlockExpr(node.OnTrue, scope, buildRC)
	if err != nil {
		return nil, err
	}
	var onFalse *Block
	if node.OnFalse != nil {
		onFalse, err = elaborateBlockExpr(node.OnFalse, scope, buildRC)
		if err != nil {
			return nil, err
		}
	}
	typ := Type(UnitType{})
	if onFalse != nil && onTrue.Typ.Equals(onFalse.Typ) {
		typ = onTrue.Typ
	}
	deps := condExpr.ExprDeps().Union(onTrue.RDeps)
	if onFalse != nil {
		deps = deps.Union(onFalse.RDeps)
	}
	return &If{AstNd: node, Cond: condExpr, OnTrue: onTrue, OnFalse: onFalse, Typ: typ, RDeps: deps}, nil
}

func elaborateWhile(node *ast.While, scope *Scope, buildRC *RuntimeContext) (Expr, error) {
	condExpr, err := elaborateExpr(node.Cond, scope, buildRC)
	if err != nil {
		return nil, err
	}
	bt, err := boolType(scope, buildRC, node)
	if err != nil {
		return nil, err
	}
	if !AssignableFrom(bt, condExpr.ExprType()) {
		return nil, errors.New(errors.MOD_TypeMismatch, errors.PhaseModel, node, "while condition: expected Bool, got %s", condExpr.ExprType())
	}
	body, err := elaborateBlockExpr(node.Body, scope, buildRC)
	if err != nil {
		return nil, err
	}
	deps := condExpr.ExprDeps().Union(body.RDeps)
	deps = dropWhileDepsIfUnrollable(scope.Owner(), deps)
	return &While{AstNd: node, Cond: condExpr, Body: body, RDeps: deps}, nil
}

// dropWhileDepsIfUnrollable implements §4.3's While special case: a loop's
// runtime_depends collapses to empty when every variable it depends on is
// a mutable local of the current owner whose own runtime_depends is itself
// empty — such a loop only ever touches state fully known at elaboration
// time, so it can in principle be unrolled rather than forced to run.
func dropWhileDepsIfUnrollable(owner *Owner, deps DepSet) DepSet {
	for v := range deps {
		if v == effectSentinel {
			return deps
		}
		if v.Owner != owner || v.Readonly || !v.RDeps.Empty() {
			return deps
		}
	}
	return DepSet{}
}

func elaborateBlockExpr(astBlock *ast.Block, parentScope *Scope, parentRC *RuntimeContext) (*Block, error) {
	childScope := parentScope.NewChild(nil)
	childRC := parentRC.Child(nil)
	stmts, err := elaborateStatements(astBlock.Statements, childScope, childRC)
	if err != nil {
		return nil, err
	}
	typ, deps := blockTypeAndDeps(stmts)
	return &Block{AstNd: astBlock, Scope: childScope, Statements: stmts, Typ: typ, RDeps: deps}, nil
}

func elaborateFuncLiteral(node *ast.Func, scope *Scope, buildRC *RuntimeContext) (Expr, error) {
	self := &Owner{Name: node.Name}
	if self.Name == "" {
		self.Name = "<anonymous fn>"
	}
	argDefs, err := elaborateFuncArgs(node.Args, self, scope, buildRC)
	if err != nil {
		return nil, err
	}
	retType, err := elaborateReturnType(node.ReturnType, scope, buildRC)
	if err != nil {
		return nil, err
	}
	fn := &Function{AstNd: node, Name: node.Name, Args: argDefs, ReturnTyp: retType, Self: self, DefOwner: scope.Owner()}
	if err := elaborateFuncBody(fn, node, scope, buildRC); err != nil {
		return nil, err
	}
	return &FuncLit{AstNd: node, Fn: fn}, nil
}

func elaborateTuple(node *ast.Tuple, scope *Scope, buildRC *RuntimeContext) (Expr, error) {
	members := make([]Expr, len(node.Members))
	deps := DepSet{}
	for i, m := range node.Members {
		me, err := elaborateExpr(m, scope, buildRC)
		if err != nil {
			return nil, err
		}
		if _, ok := me.ExprType().(KindType); !ok {
			return nil, errors.New(errors.MOD_TypeMismatch, errors.PhaseModel, node, "tuple member %d is not a type", i)
		}
		members[i] = me
		deps = deps.Union(me.ExprDeps())
	}
	return &TupleExpr{AstNd: node, Members: members, RDeps: deps}, nil
}

// boolType resolves the Bool term through the same path any other named
// type reference takes, rather than requiring a dedicated lookup helper.
func boolType(scope *Scope, buildRC *RuntimeContext, node ast.Node) (Type, error) {
	return resolveTypeExpr(&ast.Term{Name: "Bool", Pos: node.Position()}, scope, buildRC)
}

// resolveTypeExpr implements resolve_type (§4.1): elaborate node as an
// ordinary compile-time expression, then require the result to carry a
// Kind-typed value and extract its Type payload.
func resolveTypeExpr(node ast.Expr, scope *Scope, buildRC *RuntimeContext) (Type, error) {
	expr, err := elaborateExpr(node, scope, buildRC)
	if err != nil {
		return nil, err
	}
	if !expr.ExprDeps().Empty() {
		return nil, errors.New(errors.MOD_NotCompileTime, errors.PhaseModel, node, "type expression is not known at compile time")
	}
	val, err := staticValueOf(expr, buildRC)
	if err != nil {
		return nil, err
	}
	if _, isKind := val.Typ.(KindType); !isKind {
		return nil, errors.New(errors.MOD_KindMismatch, errors.PhaseModel, node, "expression does not denote a type")
	}
	return val.TypeVal, nil
}

// staticValueOf reads the build-time value off an already-elaborated,
// dependency-free expression: either it folded to Precompiled/Lit directly,
// or it is a bare reference to a Definition that already carries one.
func staticValueOf(expr Expr, buildRC *RuntimeContext) (Value, error) {
	switch e := expr.(type) {
	case *Precompiled:
		return e.Value, nil
	case *Lit:
		return e.Val, nil
	case *TermRef:
		if v, ok := e.Def.StaticValue(); ok {
			return v, nil
		}
	}
	return Value{}, errors.New(errors.MOD_NotCompileTime, errors.PhaseModel, expr.AstNode(), "expression has no compile-time value")
}

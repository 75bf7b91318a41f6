package model

import "github.com/goepl/epl/internal/ast"

// Owner marks the innermost Function-or-Program scope: the boundary that
// partitions compile-time variables from runtime variables (§4.1, GLOSSARY).
// Two scopes share an Owner iff neither crosses a function call boundary
// between them.
type Owner struct{ Name string }

// Node is any model node: a Definition (registered into a scope) or an
// Expr (appears in a statement list). Exec in eval.go switches over the
// concrete type rather than this interface carrying behaviour — per
// design note 9, node behaviour is a tagged union, not a vtable.
type Node interface {
	AstNode() ast.Node
}

// Definition is a name binding: a VarDef, Function, or Builtin.
type Definition interface {
	Node
	DefName() string
	DefType() Type
	// StaticValue returns the definition's build-time value, if it has
	// one, and whether it does. Function literals and Builtins always
	// do (they are constants, §3 invariant 5); a VarDef does iff it names
	// an enum type, an enum variant, a type alias or a builtin type, or is
	// a `let` whose initializer folded to a known value during elaboration.
	StaticValue() (Value, bool)
}

// Expr is a model node usable in expression position, carrying a
// precomputed type and runtime_depends set (§4.3).
type Expr interface {
	Node
	ExprType() Type
	ExprDeps() DepSet
}

// VarDef is a let/var binding, function argument, or built-in/type
// registration (§3).
type VarDef struct {
	AstNd    ast.Node
	Name     string
	Readonly bool
	Typ      Type
	Owner    *Owner
	RDeps    DepSet // this VarDef's own runtime_depends, promoted by assignment (§4.3 row 6)
	Value    Expr   // initializer, nil for bare parameters
	value    *Value // known build-time value, set once folding succeeds
}

func (v *VarDef) AstNode() ast.Node { return v.AstNd }
func (v *VarDef) DefName() string   { return v.Name }
func (v *VarDef) DefType() Type     { return v.Typ }
func (v *VarDef) StaticValue() (Value, bool) {
	if v.value == nil {
		return Value{}, false
	}
	return *v.value, true
}

// SetStaticValue fixes v's compile-time value once and for all. Used by
// internal/builtins to register primitive types, the Bool enum, and its
// variants as compile-time constants directly, without going through
// elaboration of an initializer expression.
func (v *VarDef) SetStaticValue(val Value) {
	v.value = &val
}

// Function is a function literal — named, when reached via a top-level
// `fn name(...)` definition, or anonymous otherwise.
type Function struct {
	AstNd     ast.Node
	Name      string
	Args      []*VarDef
	ReturnTyp Type // never nil; Unit when omitted in source
	Body      *Block
	Self      *Owner // this function's own runtime boundary, used by its body
	DefOwner  *Owner // the owner of the scope the function literal was defined in; calls are parented at the root context instead (see callFunction)
	CallDeps  DepSet // body's runtime deps that are not its own arguments (§3 invariant 5)
}

func (f *Function) AstNode() ast.Node { return f.AstNd }
func (f *Function) DefName() string   { return f.Name }
func (f *Function) DefType() Type     { return f.Type() }
func (f *Function) StaticValue() (Value, bool) {
	return FuncValue(f), true
}
func (f *Function) Type() Type {
	args := make([]Type, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.Typ
	}
	return &FuncType{Args: args, Return: f.ReturnTyp}
}
func (f *Function) ArgTypes() []Type { return f.Type().(*FuncType).Args }
func (f *Function) ReturnType() Type { return f.ReturnTyp }

// Builtin is a primitive callable provided by the host (§4.7). A nil Impl
// marks a type-only builtin registration (never actually called).
type Builtin struct {
	Name        string
	Args        []Type
	Ret         Type
	CompileTime bool
	Impl        func(args []Value) (Value, error)
}

func (b *Builtin) AstNode() ast.Node { return nil }
func (b *Builtin) DefName() string   { return b.Name }
func (b *Builtin) DefType() Type     { return b.Type() }
func (b *Builtin) StaticValue() (Value, bool) {
	return BuiltinValue(b), true
}
func (b *Builtin) Type() Type        { return &FuncType{Args: b.Args, Return: b.Ret} }
func (b *Builtin) ArgTypes() []Type  { return b.Args }
func (b *Builtin) ReturnType() Type  { return b.Ret }

// TermRef is a use of a named term (§3 VarRef, generalised to any
// Definition kind — a VarDef, a Function, or a Builtin).
type TermRef struct {
	AstNd ast.Node
	Def   Definition
	Typ   Type
	RDeps DepSet
}

func (t *TermRef) AstNode() ast.Node   { return t.AstNd }
func (t *TermRef) ExprType() Type      { return t.Typ }
func (t *TermRef) ExprDeps() DepSet    { return t.RDeps }

// Call is function application.
type Call struct {
	AstNd  ast.Node
	Callee Expr
	Args   []Expr
	Typ    Type
	RDeps  DepSet
}

func (c *Call) AstNode() ast.Node { return c.AstNd }
func (c *Call) ExprType() Type    { return c.Typ }
func (c *Call) ExprDeps() DepSet  { return c.RDeps }

// AttrAccess is `e.f`, used to read a value off its enum type.
type AttrAccess struct {
	AstNd     ast.Node
	Obj       Expr
	Attribute string
	Typ       Type
	RDeps     DepSet
}

func (a *AttrAccess) AstNode() ast.Node { return a.AstNd }
func (a *AttrAccess) ExprType() Type    { return a.Typ }
func (a *AttrAccess) ExprDeps() DepSet  { return a.RDeps }

// Assignment is `name = expr`, statement-only; always types as Unit.
type Assignment struct {
	AstNd ast.Node
	Dest  *VarDef
	Value Expr
	RDeps DepSet
}

func (a *Assignment) AstNode() ast.Node { return a.AstNd }
func (a *Assignment) ExprType() Type    { return UnitType{} }
func (a *Assignment) ExprDeps() DepSet  { return a.RDeps }

// If is `if cond { ... } else { ... }`; OnFalse is nil if absent.
type If struct {
	AstNd   ast.Node
	Cond    Expr
	OnTrue  *Block
	OnFalse *Block
	Typ     Type
	RDeps   DepSet
}

func (i *If) AstNode() ast.Node { return i.AstNd }
func (i *If) ExprType() Type    { return i.Typ }
func (i *If) ExprDeps() DepSet  { return i.RDeps }

// While is `while cond { ... }`; always types as Unit.
type While struct {
	AstNd ast.Node
	Cond  Expr
	Body  *Block
	RDeps DepSet
}

func (w *While) AstNode() ast.Node { return w.AstNd }
func (w *While) ExprType() Type    { return UnitType{} }
func (w *While) ExprDeps() DepSet  { return w.RDeps }

// Block is a brace-delimited statement sequence with its own scope.
type Block struct {
	AstNd      ast.Node
	Scope      *Scope
	Statements []Node
	Typ        Type // Unit if the block is empty or its last statement is Unit-typed
	RDeps      DepSet
}

func (b *Block) AstNode() ast.Node { return b.AstNd }
func (b *Block) ExprType() Type    { return b.Typ }
func (b *Block) ExprDeps() DepSet  { return b.RDeps }

// Program is the root model node: the elaborated top-level block.
type Program struct {
	AstNd      ast.Node
	Scope      *Scope
	Statements []Node
}

func (p *Program) AstNode() ast.Node { return p.AstNd }

// Precompiled marks an expression already reduced to a Value at build
// time (§3). Orig is retained purely for diagnostics/traceability.
type Precompiled struct {
	AstNd ast.Node
	Orig  Expr
	Value Value
}

func (p *Precompiled) AstNode() ast.Node { return p.AstNd }
func (p *Precompiled) ExprType() Type    { return p.Value.Typ }
func (p *Precompiled) ExprDeps() DepSet  { return nil }

// Lit is a bare literal: exempt from the eager-fold wrapper since it is
// already irreducible (§4.2).
type Lit struct {
	AstNd ast.Node
	Val   Value
}

func (l *Lit) AstNode() ast.Node { return l.AstNd }
func (l *Lit) ExprType() Type    { return l.Val.Typ }
func (l *Lit) ExprDeps() DepSet  { return nil }

// FuncLit is a function-literal expression result: exempt from folding,
// the literal itself is already a build-time constant.
type FuncLit struct {
	AstNd ast.Node
	Fn    *Function
}

func (l *FuncLit) AstNode() ast.Node { return l.AstNd }
func (l *FuncLit) ExprType() Type    { return l.Fn.Type() }
func (l *FuncLit) ExprDeps() DepSet  { return nil }

// TupleExpr constructs a tuple *type* value from member type expressions:
// `(Int, Bool)`. EPL has no runtime tuple values (Non-goals: no
// user-defined structures beyond enums), so a TupleExpr only elaborates
// successfully when every member itself elaborates to a Kind-typed value;
// elaborateTuple reports anything else as a TypeMismatch.
type TupleExpr struct {
	AstNd   ast.Node
	Members []Expr
	RDeps   DepSet
}

func (t *TupleExpr) AstNode() ast.Node { return t.AstNd }
func (t *TupleExpr) ExprType() Type    { return KindType{} }
func (t *TupleExpr) ExprDeps() DepSet  { return t.RDeps }

// EnumDef is a named top-level enum definition's statement-list entry.
// Its type and variant names are registered into the scope separately;
// this node only exists so execution visits it (a no-op, matching the
// original prototype's `Enum.execute`).
type EnumDef struct {
	AstNd ast.Node
	Typ   *EnumType
}

func (e *EnumDef) AstNode() ast.Node { return e.AstNd }

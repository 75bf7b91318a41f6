// Package ast defines the node shapes the lexer/parser must produce.
//
// The shapes are fixed by the EPL language specification: Program, Var,
// Func, Enum, TypeAlias, Call, AttributeAccess, Assignment, If, While,
// Block, Term, Value and Tuple, each carrying a srcmap position. Nodes
// are produced by the parser and are immutable thereafter — the model
// package never mutates an AST node, only reads it while elaborating.
package ast

import (
	"fmt"
	"strings"
)

// Pos is the srcmap: a source position used for diagnostics.
type Pos struct {
	File   string
	Line   int
	Offset int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Offset)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Offset)
}

// Node is the base interface implemented by every AST node.
type Node interface {
	String() string
	Position() Pos
}

// Expr is any node that can appear in expression position.
type Expr interface {
	Node
	exprNode()
}

// Definition is any node that introduces a name into the enclosing scope.
type Definition interface {
	Node
	defNode()
}

// Program is the root node: a sequence of top-level statements.
type Program struct {
	Statements []Node
	Pos        Pos
}

func (p *Program) Position() Pos { return p.Pos }
func (p *Program) String() string {
	parts := make([]string, len(p.Statements))
	for i, s := range p.Statements {
		parts[i] = s.String()
	}
	return "Program {\n" + indent(strings.Join(parts, "\n")) + "\n}"
}

// Var is a let/var binding, or — reused for function parameters and
// builtin registration — an untyped-initializer argument declaration.
type Var struct {
	Name     string
	Type     Expr // nil if inferred from Value
	Readonly bool
	Value    Expr // nil for function parameters
	Pos      Pos
}

func (v *Var) Position() Pos { return v.Pos }
func (v *Var) defNode()      {}
func (v *Var) exprNode()     {}
func (v *Var) String() string {
	kw := "var"
	if v.Readonly {
		kw = "let"
	}
	s := fmt.Sprintf("%s %s", kw, v.Name)
	if v.Type != nil {
		s += ": " + v.Type.String()
	}
	if v.Value != nil {
		s += " = " + v.Value.String()
	}
	return s
}

// Func is both a function literal and (with a non-empty Name via the
// enclosing top-level statement) a named function definition.
type Func struct {
	Name       string // "" for an anonymous function literal
	Args       []*Var // each a readonly Var with a Type and no Value
	ReturnType Expr   // nil if omitted (inferred as Unit)
	Body       *Block
	Pos        Pos
}

func (f *Func) Position() Pos { return f.Pos }
func (f *Func) defNode()      {}
func (f *Func) exprNode()     {}
func (f *Func) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.String()
	}
	ret := ""
	if f.ReturnType != nil {
		ret = " -> " + f.ReturnType.String()
	}
	name := f.Name
	return fmt.Sprintf("fn %s(%s)%s %s", name, strings.Join(args, ", "), ret, f.Body.String())
}

// Enum is a first-class enum-type expression: `enum { a, b, c }`.
type Enum struct {
	Name   string // "" for an anonymous enum literal used inline
	Values []string
	Pos    Pos
}

func (e *Enum) Position() Pos { return e.Pos }
func (e *Enum) defNode()      {}
func (e *Enum) exprNode()     {}
func (e *Enum) String() string {
	return fmt.Sprintf("enum %s { %s }", e.Name, strings.Join(e.Values, ", "))
}

// TypeAlias is `type T = U`.
type TypeAlias struct {
	Name   string
	Target Expr
	Pos    Pos
}

func (t *TypeAlias) Position() Pos { return t.Pos }
func (t *TypeAlias) defNode()      {}
func (t *TypeAlias) String() string {
	return fmt.Sprintf("type %s = %s", t.Name, t.Target.String())
}

// Call is function application: `f(x, y)`.
type Call struct {
	Callee Expr
	Args   []Expr
	Pos    Pos
}

func (c *Call) Position() Pos { return c.Pos }
func (c *Call) exprNode()     {}
func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee.String(), strings.Join(args, ", "))
}

// AttributeAccess is `e.f` — used to read an enum value off its type.
type AttributeAccess struct {
	Obj       Expr
	Attribute string
	Pos       Pos
}

func (a *AttributeAccess) Position() Pos { return a.Pos }
func (a *AttributeAccess) exprNode()     {}
func (a *AttributeAccess) String() string {
	return fmt.Sprintf("%s.%s", a.Obj.String(), a.Attribute)
}

// Assignment is `name = expr`, statement-only.
type Assignment struct {
	Destination string
	Value       Expr
	Pos         Pos
}

func (a *Assignment) Position() Pos { return a.Pos }
func (a *Assignment) exprNode()     {}
func (a *Assignment) String() string {
	return fmt.Sprintf("%s = %s", a.Destination, a.Value.String())
}

// If is `if cond { ... } else { ... }`; OnFalse is nil if absent.
type If struct {
	Cond    Expr
	OnTrue  *Block
	OnFalse *Block
	Pos     Pos
}

func (i *If) Position() Pos { return i.Pos }
func (i *If) exprNode()     {}
func (i *If) String() string {
	s := fmt.Sprintf("if %s %s", i.Cond.String(), i.OnTrue.String())
	if i.OnFalse != nil {
		s += " else " + i.OnFalse.String()
	}
	return s
}

// While is `while cond { ... }`.
type While struct {
	Cond Expr
	Body *Block
	Pos  Pos
}

func (w *While) Position() Pos { return w.Pos }
func (w *While) exprNode()     {}
func (w *While) String() string {
	return fmt.Sprintf("while %s %s", w.Cond.String(), w.Body.String())
}

// Block is a brace-delimited sequence of statements, introducing a scope.
type Block struct {
	Statements []Node
	Pos        Pos
}

func (b *Block) Position() Pos { return b.Pos }
func (b *Block) exprNode()     {}
func (b *Block) String() string {
	if len(b.Statements) == 0 {
		return "{}"
	}
	parts := make([]string, len(b.Statements))
	for i, s := range b.Statements {
		parts[i] = s.String()
	}
	return "{\n" + indent(strings.Join(parts, "\n")) + "\n}"
}

// Term is a use of a named term: an identifier reference.
type Term struct {
	Name string
	Pos  Pos
}

func (t *Term) Position() Pos { return t.Pos }
func (t *Term) exprNode()     {}
func (t *Term) String() string { return t.Name }

// ValueKind tags the literal kind carried by a Value node.
type ValueKind int

const (
	IntValue ValueKind = iota
	FloatValue
	BoolValue
)

// Value is a literal: an integer, float, or boolean constant.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Bool  bool
	Pos   Pos
}

func (v *Value) Position() Pos { return v.Pos }
func (v *Value) exprNode()     {}
func (v *Value) String() string {
	switch v.Kind {
	case IntValue:
		return fmt.Sprintf("%d", v.Int)
	case FloatValue:
		return fmt.Sprintf("%g", v.Float)
	case BoolValue:
		return fmt.Sprintf("%t", v.Bool)
	default:
		return "<value>"
	}
}

// Tuple is a parenthesized type-list expression: `(T, U)`.
type Tuple struct {
	Members []Expr
	Pos     Pos
}

func (t *Tuple) Position() Pos { return t.Pos }
func (t *Tuple) exprNode()     {}
func (t *Tuple) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "\t" + l
	}
	return strings.Join(lines, "\n")
}

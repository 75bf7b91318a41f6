// Package model is the semantic core: scope and name resolution (§4.1),
// elaboration of the AST into a typed model (§4.2), partial evaluation and
// dependency computation (§4.3), the type system (§4.4), and the
// tree-walking evaluator (§4.5) that both elaboration-time folding and the
// interpreter share. Elaboration and evaluation live in one package
// deliberately (design note 9): the partial evaluator must run the
// interpreter while elaborating, and splitting them into separate
// mutually-recursive packages would create an import cycle for no benefit.
package model

import (
	"fmt"
	"strings"
)

// Type is a static EPL type.
type Type interface {
	String() string
	Equals(other Type) bool
}

// UnitType is the absorbing primitive: assignable to from any source type.
type UnitType struct{}

func (UnitType) String() string { return "Unit" }
func (UnitType) Equals(o Type) bool {
	_, ok := o.(UnitType)
	return ok
}

// VoidType is the uninhabited primitive: a value of this type never
// actually exists (only `abort`'s declared return type uses it), so it is
// assignable to anything when it is the *source* type (the opposite
// asymmetry from Unit, resolving an inconsistency left open by §9).
type VoidType struct{}

func (VoidType) String() string { return "Void" }
func (VoidType) Equals(o Type) bool {
	_, ok := o.(VoidType)
	return ok
}

// IntType is the sole numeric primitive with built-in operators (§9: Float
// is lexed/parsed but reserved, non-functional).
type IntType struct{}

func (IntType) String() string { return "Int" }
func (IntType) Equals(o Type) bool {
	_, ok := o.(IntType)
	return ok
}

// FloatType is lexed and parsed but carries no built-in operators (§9):
// reserved but non-functional until the language is extended.
type FloatType struct{}

func (FloatType) String() string { return "Float" }
func (FloatType) Equals(o Type) bool {
	_, ok := o.(FloatType)
	return ok
}

// KindType is the meta-type: a Value whose Typ is KindType carries a Type
// as its payload. This is what lets resolve_type (§4.1) be "elaborate as a
// compile-time expression, require the result to carry a Type, extract
// it" instead of pattern-matching the AST shape directly — the same path
// that handles `let x: Int = ...` also handles type-alias names and
// tuple-type expressions.
type KindType struct{}

func (KindType) String() string { return "Kind" }
func (KindType) Equals(o Type) bool {
	_, ok := o.(KindType)
	return ok
}

// EnumType is a first-class enum type, introduced by `enum { a, b, c }` or
// `enum Name { a, b, c }`. Equality is identity: two separately-declared
// enums never unify even if their value lists match, matching the source
// language's lack of structural enum typing.
type EnumType struct {
	Name   string
	Values []string
}

func (e *EnumType) String() string {
	if e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("enum { %s }", strings.Join(e.Values, ", "))
}

func (e *EnumType) Equals(o Type) bool {
	oe, ok := o.(*EnumType)
	return ok && oe == e
}

func (e *EnumType) HasValue(name string) bool {
	for _, v := range e.Values {
		if v == name {
			return true
		}
	}
	return false
}

// FuncType is structural: two FuncTypes are equal iff their arg types are
// equal pairwise and their return types are equal (§4.4).
type FuncType struct {
	Args   []Type
	Return Type
}

func (f *FuncType) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(args, ", "), f.Return.String())
}

func (f *FuncType) Equals(o Type) bool {
	of, ok := o.(*FuncType)
	if !ok || len(of.Args) != len(f.Args) {
		return false
	}
	for i := range f.Args {
		if !f.Args[i].Equals(of.Args[i]) {
			return false
		}
	}
	return f.Return.Equals(of.Return)
}

// TupleType groups a fixed list of member types: `(T, U)`. Structural like
// FuncType — two tuple types with the same member types unify, which is
// the more useful reading of §4.4's silence on tuple equality.
type TupleType struct {
	Members []Type
}

func (t *TupleType) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t *TupleType) Equals(o Type) bool {
	ot, ok := o.(*TupleType)
	if !ok || len(ot.Members) != len(t.Members) {
		return false
	}
	for i := range t.Members {
		if !t.Members[i].Equals(ot.Members[i]) {
			return false
		}
	}
	return true
}

// AssignableFrom implements §4.4's assignability rule: S assignable to T
// iff S == T, except the expected type Unit admits any source (it
// discards), and Void — never actually inhabited, only named as the
// return type of `abort` — is admitted wherever it is the source.
func AssignableFrom(expected, got Type) bool {
	if _, ok := expected.(UnitType); ok {
		return true
	}
	if _, ok := got.(VoidType); ok {
		return true
	}
	return expected.Equals(got)
}

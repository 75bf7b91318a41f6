package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAssignableFromUnitAbsorbsAnySource(t *testing.T) {
	if !AssignableFrom(UnitType{}, IntType{}) {
		t.Fatal("expected Unit to accept any source type")
	}
	if !AssignableFrom(UnitType{}, UnitType{}) {
		t.Fatal("expected Unit to accept Unit")
	}
}

func TestAssignableFromVoidAsSource(t *testing.T) {
	if !AssignableFrom(IntType{}, VoidType{}) {
		t.Fatal("expected Void to be assignable to any expected type as a source")
	}
}

func TestAssignableFromRequiresEquality(t *testing.T) {
	if AssignableFrom(IntType{}, &EnumType{Name: "Bool"}) {
		t.Fatal("expected Int and an unrelated enum to be incompatible")
	}
	if !AssignableFrom(IntType{}, IntType{}) {
		t.Fatal("expected Int assignable to Int")
	}
}

func TestEnumTypeIdentityEquality(t *testing.T) {
	a := &EnumType{Name: "Color", Values: []string{"red", "blue"}}
	b := &EnumType{Name: "Color", Values: []string{"red", "blue"}}
	if a.Equals(b) {
		t.Fatal("expected two separately-declared enums with identical shapes to be unequal")
	}
	if !a.Equals(a) {
		t.Fatal("expected an enum type to equal itself")
	}
}

func TestEnumTypeHasValue(t *testing.T) {
	c := &EnumType{Name: "Color", Values: []string{"red", "green", "blue"}}
	if !c.HasValue("green") {
		t.Fatal("expected HasValue to find a declared variant")
	}
	if c.HasValue("purple") {
		t.Fatal("expected HasValue to reject an undeclared variant")
	}
}

func TestFuncTypeStructuralEquality(t *testing.T) {
	f1 := &FuncType{Args: []Type{IntType{}, IntType{}}, Return: IntType{}}
	f2 := &FuncType{Args: []Type{IntType{}, IntType{}}, Return: IntType{}}
	if !f1.Equals(f2) {
		t.Fatal("expected structurally identical FuncTypes to be equal")
	}
	f3 := &FuncType{Args: []Type{IntType{}}, Return: IntType{}}
	if f1.Equals(f3) {
		t.Fatal("expected FuncTypes with different arities to be unequal")
	}
	f4 := &FuncType{Args: []Type{IntType{}, IntType{}}, Return: UnitType{}}
	if f1.Equals(f4) {
		t.Fatal("expected FuncTypes with different return types to be unequal")
	}
}

func TestTupleTypeStructuralEquality(t *testing.T) {
	t1 := &TupleType{Members: []Type{IntType{}, UnitType{}}}
	t2 := &TupleType{Members: []Type{IntType{}, UnitType{}}}
	if !t1.Equals(t2) {
		t.Fatal("expected structurally identical TupleTypes to be equal")
	}
	t3 := &TupleType{Members: []Type{UnitType{}, IntType{}}}
	if t1.Equals(t3) {
		t.Fatal("expected member order to matter for tuple equality")
	}
}

// TestFuncTypeArgsStructuralShape uses a structural diff rather than
// Equals so a future arity/type-order mistake in construction reports
// exactly which element moved, instead of a single pass/fail bit.
func TestFuncTypeArgsStructuralShape(t *testing.T) {
	got := (&FuncType{Args: []Type{IntType{}, &EnumType{Name: "Bool", Values: []string{"false", "true"}}}, Return: UnitType{}}).Args
	want := []Type{IntType{}, &EnumType{Name: "Bool", Values: []string{"false", "true"}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("FuncType.Args shape mismatch (-want +got):\n%s", diff)
	}
}

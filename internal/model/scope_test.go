package model

import (
	"testing"

	"github.com/goepl/epl/internal/errors"
)

func TestScopeAddAndResolve(t *testing.T) {
	root := NewRootScope()
	vd := &VarDef{Name: "x", Typ: IntType{}, Owner: root.Owner()}
	if err := root.AddTerm("x", vd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := root.Resolve("x", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Definition(vd) {
		t.Fatalf("resolved wrong definition")
	}
}

func TestScopeRedeclarationFails(t *testing.T) {
	root := NewRootScope()
	vd := &VarDef{Name: "x", Typ: IntType{}, Owner: root.Owner()}
	if err := root.AddTerm("x", vd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := root.AddTerm("x", vd, nil)
	if err == nil {
		t.Fatal("expected AlreadyDefined error")
	}
	report, ok := err.(*errors.Report)
	if !ok || report.Code != errors.MOD_AlreadyDefined {
		t.Fatalf("expected MOD_AlreadyDefined, got %v", err)
	}
}

func TestScopeUndefinedFails(t *testing.T) {
	root := NewRootScope()
	_, err := root.Resolve("missing", nil)
	if err == nil {
		t.Fatal("expected Undefined error")
	}
	report, ok := err.(*errors.Report)
	if !ok || report.Code != errors.MOD_Undefined {
		t.Fatalf("expected MOD_Undefined, got %v", err)
	}
}

func TestScopeShadowingAcrossChildren(t *testing.T) {
	root := NewRootScope()
	outer := &VarDef{Name: "x", Typ: IntType{}, Owner: root.Owner()}
	if err := root.AddTerm("x", outer, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	child := root.NewChild(nil)
	inner := &VarDef{Name: "x", Typ: IntType{}, Owner: child.Owner()}
	if err := child.AddTerm("x", inner, nil); err != nil {
		t.Fatalf("shadowing in a child scope must be allowed: %v", err)
	}
	got, err := child.Resolve("x", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Definition(inner) {
		t.Fatal("expected child scope to resolve its own shadowing definition")
	}
	stillOuter, err := root.Resolve("x", nil)
	if err != nil || stillOuter != Definition(outer) {
		t.Fatal("shadowing in the child must not affect the parent's own binding")
	}
}

func TestScopeChildInheritsOwnerByDefault(t *testing.T) {
	root := NewRootScope()
	child := root.NewChild(nil)
	if child.Owner() != root.Owner() {
		t.Fatal("expected nil owner to inherit the parent's owner")
	}
	fnOwner := &Owner{Name: "f"}
	fnScope := root.NewChild(fnOwner)
	if fnScope.Owner() != fnOwner {
		t.Fatal("expected explicit owner to be used as-is")
	}
}

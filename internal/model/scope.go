package model

import (
	"github.com/goepl/epl/internal/ast"
	"github.com/goepl/epl/internal/errors"
)

// Scope is a pair of maps collapsed into one namespace (§4.1): term names
// resolve to a Definition, which may itself carry a Type-valued static
// value — that unification is what makes resolve_type "evaluate an
// expression and require a Type payload" instead of a second, parallel
// type-name table.
type Scope struct {
	parent *Scope
	owner  *Owner
	terms  map[string]Definition
}

// NewRootScope creates the built-in context: the root parent of every
// other scope, constructed once and read-only thereafter (§5).
func NewRootScope() *Scope {
	return &Scope{owner: &Owner{Name: "<builtins>"}, terms: map[string]Definition{}}
}

// NewChild creates a child scope. owner is nil to inherit the parent's
// owner (e.g. a Block nested in an If/While/Block), or a fresh *Owner to
// mark a new runtime boundary (a Function body, or the Program root).
func (s *Scope) NewChild(owner *Owner) *Scope {
	o := owner
	if o == nil {
		o = s.owner
	}
	return &Scope{parent: s, owner: o, terms: map[string]Definition{}}
}

func (s *Scope) Owner() *Owner { return s.owner }

// AddTerm registers name in this scope, failing with AlreadyDefined if it
// is already bound here. Shadowing across nested scopes is permitted;
// redeclaration within the same scope is not (§4.1).
func (s *Scope) AddTerm(name string, def Definition, node ast.Node) error {
	if _, exists := s.terms[name]; exists {
		return errors.New(errors.MOD_AlreadyDefined, errors.PhaseModel, node, "already defined name: %s", name)
	}
	s.terms[name] = def
	return nil
}

// Resolve walks outward through parent scopes; fails with Undefined if
// the name is unreachable (§4.1).
func (s *Scope) Resolve(name string, node ast.Node) (Definition, error) {
	for sc := s; sc != nil; sc = sc.parent {
		if d, ok := sc.terms[name]; ok {
			return d, nil
		}
	}
	return nil, errors.New(errors.MOD_Undefined, errors.PhaseModel, node, "undefined name: %s", name)
}

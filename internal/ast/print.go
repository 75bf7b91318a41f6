package ast

import (
	"encoding/json"
	"fmt"
)

// Print produces a deterministic JSON representation of an AST node,
// omitting srcmap so that two parses of equivalent-but-differently-spaced
// source compare equal (the round-trip invariant in spec.md §8).
func Print(node Node) string {
	data, err := json.MarshalIndent(simplify(node), "", "  ")
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(data)
}

// Simplify exposes the same srcmap-free shape Print serializes, as a plain
// Go value rather than a JSON string, for callers that want to diff or
// golden-compare the structure directly.
func Simplify(node Node) interface{} {
	return simplify(node)
}

func simplifyExprs(nodes []Expr) []interface{} {
	out := make([]interface{}, len(nodes))
	for i, n := range nodes {
		out[i] = simplify(n)
	}
	return out
}

func simplifyNodes(nodes []Node) []interface{} {
	out := make([]interface{}, len(nodes))
	for i, n := range nodes {
		out[i] = simplify(n)
	}
	return out
}

func simplify(node interface{}) interface{} {
	if node == nil {
		return nil
	}
	switch n := node.(type) {
	case *Program:
		return map[string]interface{}{"type": "Program", "statements": simplifyNodes(n.Statements)}
	case *Var:
		m := map[string]interface{}{"type": "Var", "name": n.Name, "readonly": n.Readonly}
		if n.Type != nil {
			m["varType"] = simplify(n.Type)
		}
		if n.Value != nil {
			m["value"] = simplify(n.Value)
		}
		return m
	case *Func:
		args := make([]interface{}, len(n.Args))
		for i, a := range n.Args {
			args[i] = simplify(a)
		}
		m := map[string]interface{}{"type": "Func", "name": n.Name, "args": args, "body": simplify(n.Body)}
		if n.ReturnType != nil {
			m["returnType"] = simplify(n.ReturnType)
		}
		return m
	case *Enum:
		return map[string]interface{}{"type": "Enum", "name": n.Name, "values": n.Values}
	case *TypeAlias:
		return map[string]interface{}{"type": "TypeAlias", "name": n.Name, "target": simplify(n.Target)}
	case *Call:
		return map[string]interface{}{"type": "Call", "callee": simplify(n.Callee), "args": simplifyExprs(n.Args)}
	case *AttributeAccess:
		return map[string]interface{}{"type": "AttributeAccess", "obj": simplify(n.Obj), "attribute": n.Attribute}
	case *Assignment:
		return map[string]interface{}{"type": "Assignment", "destination": n.Destination, "value": simplify(n.Value)}
	case *If:
		m := map[string]interface{}{"type": "If", "cond": simplify(n.Cond), "onTrue": simplify(n.OnTrue)}
		if n.OnFalse != nil {
			m["onFalse"] = simplify(n.OnFalse)
		}
		return m
	case *While:
		return map[string]interface{}{"type": "While", "cond": simplify(n.Cond), "body": simplify(n.Body)}
	case *Block:
		return map[string]interface{}{"type": "Block", "statements": simplifyNodes(n.Statements)}
	case *Term:
		return map[string]interface{}{"type": "Term", "name": n.Name}
	case *Value:
		switch n.Kind {
		case IntValue:
			return map[string]interface{}{"type": "Value", "kind": "Int", "value": n.Int}
		case FloatValue:
			return map[string]interface{}{"type": "Value", "kind": "Float", "value": n.Float}
		case BoolValue:
			return map[string]interface{}{"type": "Value", "kind": "Bool", "value": n.Bool}
		}
		return map[string]interface{}{"type": "Value"}
	case *Tuple:
		return map[string]interface{}{"type": "Tuple", "members": simplifyExprs(n.Members)}
	default:
		return fmt.Sprintf("<unknown %T>", node)
	}
}

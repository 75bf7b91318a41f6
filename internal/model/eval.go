package model

import "github.com/goepl/epl/internal/errors"

// RuntimeContext is the runtime value chain, parallel to the Scope chain
// but holding only bound values (§4.5). Values are keyed by *VarDef
// pointer rather than by name: since VarDef identity is fixed at
// elaboration time, this sidesteps any ambiguity name-based dynamic
// lookup would have across shadowed declarations.
type RuntimeContext struct {
	parent *RuntimeContext
	owner  *Owner
	values map[*VarDef]*Value
}

// NewRuntimeContext creates a root runtime context for owner (normally
// the elaborated Program's own Owner).
func NewRuntimeContext(owner *Owner) *RuntimeContext {
	return &RuntimeContext{owner: owner, values: map[*VarDef]*Value{}}
}

// Child creates a runtime context parented at rc: a function call's frame
// (see callFunction) or, during elaboration, the build-time context of a
// function body or nested block.
//
// The spec calls for a call's context to be parented at the callee's
// *defining* scope. callFunction instead parents every call on the root
// context, which avoids threading a runtime context per static Owner
// through elaboration. A function body therefore sees the program's
// top-level bindings and its own arguments and locals; a function defined
// inside another function's body has no access to that enclosing
// function's runtime bindings.
func (rc *RuntimeContext) Child(owner *Owner) *RuntimeContext {
	return &RuntimeContext{parent: rc, owner: owner, values: map[*VarDef]*Value{}}
}

// Declare registers v as known-but-unbound in this context (§4.5
// VarDef.execute: "registers the name in the current runtime context").
func (rc *RuntimeContext) Declare(v *VarDef) {
	rc.values[v] = nil
}

// Bind registers v with an initial value, combining Declare+Set.
func (rc *RuntimeContext) Bind(v *VarDef, val Value) {
	rc.values[v] = &val
}

// Set assigns to an already-declared v, walking outward to find its
// binding scope.
func (rc *RuntimeContext) Set(v *VarDef, val Value) error {
	for c := rc; c != nil; c = c.parent {
		if _, ok := c.values[v]; ok {
			c.values[v] = &val
			return nil
		}
	}
	return errors.NewExecution(errors.RUN001, errors.PhaseInterpreter, "variable not declared: %s", v.Name)
}

// Get reads v's value, failing with NotInitialized if it is declared but
// unbound, or RUN001 if it is not reachable at all.
func (rc *RuntimeContext) Get(v *VarDef) (Value, error) {
	for c := rc; c != nil; c = c.parent {
		if val, ok := c.values[v]; ok {
			if val == nil {
				return Value{}, errors.NewExecution(errors.MOD_NotInitialized, errors.PhaseInterpreter, "variable not initialized: %s", v.Name)
			}
			return *val, nil
		}
	}
	return Value{}, errors.NewExecution(errors.RUN001, errors.PhaseInterpreter, "variable not bound: %s", v.Name)
}

func isTrue(v Value) bool {
	return v.Variant == "true"
}

// Exec evaluates a model node against rc. It is a free function switching
// on the node's concrete type rather than a method on Node, matching
// design note 9: node behaviour is a tagged union, not a vtable, and the
// interpreter is a pure function over model nodes and a runtime context —
// the elaborator calls this same function to fold compile-time subtrees,
// so this is the one evaluator the whole compiler has.
func Exec(node Node, rc *RuntimeContext) (Value, error) {
	switch n := node.(type) {
	case *Precompiled:
		return n.Value, nil
	case *Lit:
		return n.Val, nil
	case *FuncLit:
		return FuncValue(n.Fn), nil
	case *TermRef:
		switch d := n.Def.(type) {
		case *VarDef:
			// A VarDef that already carries a known static value is a
			// compile-time constant by construction (an enum type name, an
			// enum variant, a type alias, or a let binding folded during
			// elaboration) and need not be bound in rc at all: enum and type
			// names never are, and folding during elaboration runs against a
			// build-time context in which no binding has executed. Such
			// constants are read directly; anything else goes through the
			// live binding.
			if val, ok := d.StaticValue(); ok {
				return val, nil
			}
			return rc.Get(d)
		case *Function:
			return FuncValue(d), nil
		case *Builtin:
			return BuiltinValue(d), nil
		}
		return Value{}, errors.NewExecution(errors.RUN001, errors.PhaseInterpreter, "unresolvable term")
	case *AttrAccess:
		objVal, err := Exec(n.Obj, rc)
		if err != nil {
			return Value{}, err
		}
		et, ok := objVal.TypeVal.(*EnumType)
		if !ok {
			return Value{}, errors.NewExecution(errors.RUN001, errors.PhaseInterpreter, "attribute access on non-enum type")
		}
		return EnumValue(et, n.Attribute), nil
	case *TupleExpr:
		members := make([]Type, len(n.Members))
		for i, m := range n.Members {
			v, err := Exec(m, rc)
			if err != nil {
				return Value{}, err
			}
			members[i] = v.TypeVal
		}
		return TypeValue(&TupleType{Members: members}), nil
	case *Call:
		calleeVal, err := Exec(n.Callee, rc)
		if err != nil {
			return Value{}, err
		}
		args := make([]Value, len(n.Args))
		for i, a := range n.Args {
			v, err := Exec(a, rc)
			if err != nil {
				return Value{}, err
			}
			args[i] = v
		}
		return execCall(calleeVal, args, rc)
	case *Assignment:
		val, err := Exec(n.Value, rc)
		if err != nil {
			return Value{}, err
		}
		if err := rc.Set(n.Dest, val); err != nil {
			return Value{}, err
		}
		return UnitValue(), nil
	case *If:
		cond, err := Exec(n.Cond, rc)
		if err != nil {
			return Value{}, err
		}
		if isTrue(cond) {
			return Exec(n.OnTrue, rc)
		}
		if n.OnFalse != nil {
			return Exec(n.OnFalse, rc)
		}
		return UnitValue(), nil
	case *While:
		for {
			cond, err := Exec(n.Cond, rc)
			if err != nil {
				return Value{}, err
			}
			if !isTrue(cond) {
				break
			}
			if _, err := Exec(n.Body, rc); err != nil {
				return Value{}, err
			}
		}
		return UnitValue(), nil
	case *VarDef:
		rc.Declare(n)
		if n.Value != nil {
			val, err := Exec(n.Value, rc)
			if err != nil {
				return Value{}, err
			}
			rc.Bind(n, val)
		}
		return UnitValue(), nil
	case *Function:
		return FuncValue(n), nil
	case *EnumDef:
		return UnitValue(), nil
	case *Block:
		res := UnitValue()
		for _, st := range n.Statements {
			v, err := Exec(st, rc)
			if err != nil {
				return Value{}, err
			}
			res = v
		}
		return res, nil
	case *Program:
		res := UnitValue()
		for _, st := range n.Statements {
			v, err := Exec(st, rc)
			if err != nil {
				return Value{}, err
			}
			res = v
		}
		return res, nil
	default:
		return Value{}, errors.NewExecution(errors.MOD_FatalError, errors.PhaseInterpreter, "unexpected model node")
	}
}

func execCall(callee Value, args []Value, rc *RuntimeContext) (Value, error) {
	switch {
	case callee.Func != nil:
		return callFunction(callee.Func, args, rc)
	case callee.Builtin != nil:
		return callBuiltin(callee.Builtin, args)
	default:
		return Value{}, errors.NewExecution(errors.MOD_NotCallable, errors.PhaseInterpreter, "value is not callable")
	}
}

// CallFunction invokes fn with args against rc, exported for internal/interp
// to call `main` directly the way original_source/interpreter.py's
// run_model does (main is resolved and called, not executed as a
// statement).
func CallFunction(fn *Function, args []Value, rc *RuntimeContext) (Value, error) {
	return callFunction(fn, args, rc)
}

func callFunction(fn *Function, args []Value, rc *RuntimeContext) (Value, error) {
	root := rc
	for root.parent != nil {
		root = root.parent
	}
	callRC := root.Child(fn.Self)
	for i, a := range fn.Args {
		callRC.Bind(a, args[i])
	}
	return Exec(fn.Body, callRC)
}

func callBuiltin(b *Builtin, args []Value) (Value, error) {
	if b.Impl == nil {
		return Value{}, errors.NewExecution(errors.MOD_NotCallable, errors.PhaseInterpreter, "builtin %s has no implementation", b.Name)
	}
	return b.Impl(args)
}

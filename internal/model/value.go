package model

import "fmt"

// Value is a materialised constant: a (value, type) pair (§3). Values
// created during partial evaluation and values produced at run time share
// this exact representation — only the Precompiled wrapper around an
// Expression records that a value was obtained at build time.
type Value struct {
	Typ Type

	Int     int64
	Float   float64
	Variant string // the selected value name, when Typ is *EnumType

	TypeVal Type // the payload, when Typ is KindType

	Func    *Function
	Builtin *Builtin
}

func (v Value) Type() Type { return v.Typ }

func IntValue(n int64) Value { return Value{Typ: IntType{}, Int: n} }

func UnitValue() Value { return Value{Typ: UnitType{}} }

func TypeValue(t Type) Value { return Value{Typ: KindType{}, TypeVal: t} }

func EnumValue(t *EnumType, variant string) Value { return Value{Typ: t, Variant: variant} }

func FuncValue(f *Function) Value { return Value{Typ: f.Type(), Func: f} }

func BuiltinValue(b *Builtin) Value { return Value{Typ: b.Type(), Builtin: b} }

func (v Value) String() string {
	switch v.Typ.(type) {
	case IntType:
		return fmt.Sprintf("%d", v.Int)
	case UnitType:
		return "unit"
	case KindType:
		return v.TypeVal.String()
	}
	if _, ok := v.Typ.(*EnumType); ok {
		return v.Variant
	}
	if v.Func != nil {
		return fmt.Sprintf("<fn %s>", v.Func.Name)
	}
	if v.Builtin != nil {
		return fmt.Sprintf("<builtin %s>", v.Builtin.Name)
	}
	return "<value>"
}

// Callable is implemented by anything invokable: *Function and *Builtin.
type Callable interface {
	Type() Type
	ArgTypes() []Type
	ReturnType() Type
}

package params

import (
	"fmt"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindFlag is a keyword that was present with no value.
	KindFlag Kind = iota
	// KindInt is an integer operand.
	KindInt
	// KindString is a string operand.
	KindString
	// KindList is a sequence of string operands.
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindFlag:
		return "flag"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a parsed operand value. Exactly one variant is meaningful,
// selected by Kind.
type Value struct {
	kind Kind
	i    int
	s    string
	list []string
}

// Flag returns the value recorded for an arity-0 keyword.
func Flag() Value { return Value{kind: KindFlag} }

// Int returns an integer value.
func Int(i int) Value { return Value{kind: KindInt, i: i} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// List returns a list value. The slice is copied.
func List(items ...string) Value {
	return Value{kind: KindList, list: append([]string(nil), items...)}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// AsInt returns the integer variant.
func (v Value) AsInt() (int, bool) { return v.i, v.kind == KindInt }

// AsString returns the string variant.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsList returns a copy of the list variant.
func (v Value) AsList() ([]string, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return append([]string(nil), v.list...), true
}

// String renders the value for display.
func (v Value) String() string {
	switch v.kind {
	case KindFlag:
		return "true"
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindString:
		return v.s
	case KindList:
		return "[" + strings.Join(v.list, ", ") + "]"
	default:
		return ""
	}
}

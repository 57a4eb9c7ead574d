package directive

import (
	"fmt"
	"maps"
	"strconv"

	"fortio.org/safecast"
)

// Kind is the type of a Value.
type Kind int

const (
	KindNone Kind = iota
	KindString
	KindInt
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "str"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	default:
		return "NoneType"
	}
}

// Value is a string, int or bool. The zero Value is None, which expressions
// may produce (print returns it) but parameters never hold.
type Value struct {
	kind Kind
	s    string
	i    int64
	b    bool
}

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int returns an int Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Bool returns a bool Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// None returns the None Value.
func None() Value { return Value{} }

// Kind reports the type of v.
func (v Value) Kind() Kind { return v.kind }

// Truthy follows Python truth testing.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindString:
		return v.s != ""
	case KindInt:
		return v.i != 0
	case KindBool:
		return v.b
	default:
		return false
	}
}

// String renders v the way Python's str() does.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	default:
		return "None"
	}
}

// Repr renders v the way Python's repr() does, quoting strings.
func (v Value) Repr() string {
	if v.kind == KindString {
		return strconv.Quote(v.s)
	}
	return v.String()
}

// Interface returns the Go value behind v: string, int64, bool or nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return v.i
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// Equal reports whether v and w have the same kind and value.
func (v Value) Equal(w Value) bool {
	return v == w
}

// FromAny converts a Go string, bool or integer to a Value. Decoded config
// files yield uint64 for positive YAML integers.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case Value:
		return t, nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint64:
		n, err := safecast.Conv[int64](t)
		if err != nil {
			return Value{}, fmt.Errorf("integer parameter out of range: %w", err)
		}
		return Int(n), nil
	default:
		return Value{}, fmt.Errorf("unsupported parameter type %T (want string, bool or int)", x)
	}
}

// Params is the parameter store directives read and write.
type Params map[string]Value

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	return maps.Clone(p)
}

// Map returns the Go values of every parameter, as used by templates.
func (p Params) Map() map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v.Interface()
	}
	return out
}

// Str returns the string parameter name, or "" when absent or not a string.
func (p Params) Str(name string) string {
	v, ok := p[name]
	if !ok || v.kind != KindString {
		return ""
	}
	return v.s
}

// Flag returns the truth value of parameter name.
func (p Params) Flag(name string) bool {
	return p[name].Truthy()
}

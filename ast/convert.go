// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// ToValue converts a Go value into a Value. It panics if v has a type it
// cannot convert. Values that already satisfy Value are returned as-is.
//
// Strings become String, Booleans become Bool, integers of every width become
// Int, floats become Float, nil becomes Null, and slices and string-keyed maps
// of convertible values become List and *Dict. Map entries are added in
// sorted key order.
func ToValue(v any) Value {
	switch t := v.(type) {
	case Value:
		return t
	case nil:
		return Null{}
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(t)
	case int8:
		return Int(t)
	case int16:
		return Int(t)
	case int32:
		return Int(t)
	case int64:
		return Int(t)
	case uint8:
		return Int(t)
	case uint16:
		return Int(t)
	case uint32:
		return Int(t)
	case uint:
		return uintValue(uint64(t))
	case uint64:
		return uintValue(t)
	case float32:
		return Float(t)
	case float64:
		return Float(t)
	case []any:
		out := make(List, len(t))
		for i, elt := range t {
			out[i] = ToValue(elt)
		}
		return out
	case []string:
		out := make(List, len(t))
		for i, s := range t {
			out[i] = String(s)
		}
		return out
	case map[string]any:
		d := NewDict()
		for _, key := range slices.Sorted(maps.Keys(t)) {
			d.Set(Key{Name: key}, ToValue(t[key]))
		}
		return d
	default:
		panic(fmt.Sprintf("ast.ToValue: unsupported type %T", v))
	}
}

// ToLiteral converts a Go value into a Literal, as ToValue does. It panics if
// the result contains an expression.
func ToLiteral(v any) Literal {
	lit, ok := AsLiteral(ToValue(v))
	if !ok {
		panic(fmt.Sprintf("ast.ToLiteral: value of type %T contains an expression", v))
	}
	return lit
}

// AsLiteral converts v to an equivalent Literal, and reports whether this was
// possible. It is not possible if v contains an Expr anywhere within it.
func AsLiteral(v Value) (Literal, bool) {
	switch t := v.(type) {
	case Literal:
		return t, true
	case List:
		out := make(LiteralList, len(t))
		for i, elt := range t {
			lit, ok := AsLiteral(elt)
			if !ok {
				return nil, false
			}
			out[i] = lit
		}
		return out, true
	case *Dict:
		out := NewLiteralDict()
		for key, val := range t.All() {
			lit, ok := AsLiteral(val)
			if !ok {
				return nil, false
			}
			out.Set(key, lit)
		}
		return out, true
	}
	return nil, false
}

func uintValue(u uint64) Value {
	if u > math.MaxInt64 {
		panic(fmt.Sprintf("ast.ToValue: value %d out of range for Int", u))
	}
	return Int(u)
}

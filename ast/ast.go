// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an abstract syntax tree for ESON values, together with
// the tokens and expression trees of the ${...} literals embedded in them.
//
// Two families of values share the same concrete scalar types. A Value may
// contain expression literals (Expr); a Literal is a Value that is known to
// contain none, and is produced wherever ESON requires a constant, such as the
// arguments of an annotation.
package ast

import (
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/eson/internal/escape"
	"go4.org/mem"
)

// A Value is an arbitrary ESON value. The concrete type is one of Null, Bool,
// Int, Float, String, List, *Dict, LiteralList, *LiteralDict, or Expr.
type Value interface {
	// ESON renders the value as ESON source text. Parsing the result yields a
	// value equal to the original.
	ESON() string

	// String renders the compact descriptive form of the value, for example
	// Int(1) or Str("a"). This is the form used for format-string splices.
	String() string

	isValue()
}

// A Literal is a Value that contains no expression literals.
// The concrete type is one of Null, Bool, Int, Float, String, LiteralList, or
// *LiteralDict.
type Literal interface {
	Value
	isLiteral()
}

// Null represents the null constant.
type Null struct{}

func (Null) ESON() string   { return "null" }
func (Null) String() string { return "Null" }
func (Null) isValue()       {}
func (Null) isLiteral()     {}

// A Bool is a Boolean constant, true or false.
type Bool bool

func (b Bool) ESON() string   { return strconv.FormatBool(bool(b)) }
func (b Bool) String() string { return "Boolean(" + b.ESON() + ")" }
func (Bool) isValue()         {}
func (Bool) isLiteral()       {}

// An Int is a 64-bit signed integer value.
type Int int64

func (z Int) ESON() string   { return strconv.FormatInt(int64(z), 10) }
func (z Int) String() string { return "Int(" + z.ESON() + ")" }
func (Int) isValue()         {}
func (Int) isLiteral()       {}

// A Float is a 64-bit floating-point value.
type Float float64

// ESON renders f so that it reads back as a Float: integral values keep a
// ".0" suffix, and the non-finite values use the Infinity and NaN keywords.
func (f Float) ESON() string {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (f Float) String() string { return "Float(" + f.ESON() + ")" }
func (Float) isValue()         {}
func (Float) isLiteral()       {}

// A String is a string value.
type String string

func (s String) ESON() string   { return string(escape.Quote(mem.S(string(s)))) }
func (s String) String() string { return "Str(" + s.ESON() + ")" }
func (String) isValue()         {}
func (String) isLiteral()       {}

// A List is an ordered sequence of values.
type List []Value

func (a List) ESON() string   { return joinValues("[", a, ", ", "]", Value.ESON) }
func (a List) String() string { return joinValues("List([", a, ", ", "])", Value.String) }
func (List) isValue()         {}

// Len reports the number of elements in a.
func (a List) Len() int { return len(a) }

// A LiteralList is an ordered sequence of literal values.
type LiteralList []Literal

func (a LiteralList) ESON() string   { return joinValues("[", a, ", ", "]", Literal.ESON) }
func (a LiteralList) String() string { return joinValues("List([", a, ", ", "])", Literal.String) }
func (LiteralList) isValue()         {}
func (LiteralList) isLiteral()       {}

// Len reports the number of elements in a.
func (a LiteralList) Len() int { return len(a) }

// An Expr is an unevaluated expression literal, ${ ... }.
//
// Tokens is the flat token sequence of the expression body, and Tree is the
// result of applying operator precedence to Tokens. Tree is nil only for an
// Expr constructed by hand without one.
type Expr struct {
	Tokens Chunk
	Tree   Node
}

func (e Expr) ESON() string   { return "${" + e.Tokens.ESON() + "}" }
func (e Expr) String() string { return "Expr(" + e.Tokens.String() + ")" }
func (Expr) isValue()         {}

func joinValues[T any](open string, vs []T, sep, close string, f func(T) string) string {
	var sb strings.Builder
	sb.WriteString(open)
	for i, v := range vs {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(f(v))
	}
	sb.WriteString(close)
	return sb.String()
}

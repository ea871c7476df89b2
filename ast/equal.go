// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"math"
	"slices"
)

// Equal reports whether a and b are equal values. Lists are equal if they
// have equal elements in the same order; dictionaries are equal if they have
// the same key names with equal values, regardless of order or annotations.
// A List and a LiteralList with equal elements are equal, as are a *Dict and
// a *LiteralDict with equal entries. A NaN Float is equal to any other NaN.
// Expressions are equal if their token streams are equal.
func Equal(a, b Value) bool {
	switch t := a.(type) {
	case nil:
		return b == nil
	case Null, Bool, Int, String:
		return a == b
	case Float:
		u, ok := b.(Float)
		return ok && (t == u || math.IsNaN(float64(t)) && math.IsNaN(float64(u)))
	case List:
		return seqEqual(t, b)
	case LiteralList:
		return seqEqual(t, b)
	case *Dict:
		if t == nil {
			return false
		}
		return dictEqual(&t.table, b)
	case *LiteralDict:
		if t == nil {
			return false
		}
		return dictEqual(&t.table, b)
	case Expr:
		u, ok := b.(Expr)
		return ok && ChunkEqual(t.Tokens, u.Tokens)
	}
	return false
}

func seqEqual[V Value](as []V, b Value) bool {
	switch u := b.(type) {
	case List:
		return slices.EqualFunc(as, u, func(x V, y Value) bool { return Equal(x, y) })
	case LiteralList:
		return slices.EqualFunc(as, u, func(x V, y Literal) bool { return Equal(x, y) })
	}
	return false
}

func dictEqual[V Value](t *table[V], b Value) bool {
	switch u := b.(type) {
	case *Dict:
		return u != nil && tableEqual(t, &u.table)
	case *LiteralDict:
		return u != nil && tableEqual(t, &u.table)
	}
	return false
}

func tableEqual[V, W Value](t *table[V], u *table[W]) bool {
	if t.Len() != u.Len() {
		return false
	}
	for k, v := range t.All() {
		w, ok := u.Get(k.Name)
		if !ok || !Equal(v, w) {
			return false
		}
	}
	return true
}

// ChunkEqual reports whether a and b are equal token sequences.
func ChunkEqual(a, b Chunk) bool { return slices.EqualFunc(a, b, TokenEqual) }

// TokenEqual reports whether a and b are equal tokens.
func TokenEqual(a, b Token) bool {
	switch t := a.(type) {
	case Op, Var:
		return a == b
	case Val:
		u, ok := b.(Val)
		return ok && Equal(t.Value, u.Value)
	case FnCall:
		u, ok := b.(FnCall)
		return ok && t.Name == u.Name && slices.EqualFunc(t.Args, u.Args, ChunkEqual)
	case Group:
		u, ok := b.(Group)
		return ok && ChunkEqual(t.Tokens, u.Tokens)
	case Ref:
		u, ok := b.(Ref)
		return ok && t.Pronoun == u.Pronoun && slices.Equal(t.Path, u.Path)
	}
	return false
}

// Walk calls f for v and, in order, for each value nested within v: the
// elements of lists and the values of dictionary entries. If f returns false
// for a value, Walk does not visit the values nested within it. Walk does not
// descend into expressions.
func Walk(v Value, f func(Value) bool) {
	if !f(v) {
		return
	}
	switch t := v.(type) {
	case List:
		for _, elt := range t {
			Walk(elt, f)
		}
	case LiteralList:
		for _, elt := range t {
			Walk(elt, f)
		}
	case *Dict:
		for _, val := range t.All() {
			Walk(val, f)
		}
	case *LiteralDict:
		for _, val := range t.All() {
			Walk(val, f)
		}
	}
}

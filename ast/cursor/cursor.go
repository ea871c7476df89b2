// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over the structure of an ESON value.
package cursor

import (
	"fmt"

	"github.com/creachadair/eson/ast"
)

// Path traverses a sequential path into the structure of v where path elements
// are as documented for the Cursor.Down method.  This is a convenience wrapper
// for creating a cursor, applying path, and retrieving its value.
func Path[T ast.Value](v ast.Value, path ...any) (T, error) {
	c := New(v).Down(path...)
	var result T
	if err := c.Err(); err != nil {
		return result, err
	}
	v, ok := c.Value().(T)
	if !ok {
		return result, fmt.Errorf("wrong value type %T", c.Value())
	}
	return v.(T), nil
}

// Resolve traverses the path of ref starting from v. The pronoun of ref is
// ignored; the caller is responsible for choosing v to match it.
func Resolve(v ast.Value, ref ast.Ref) (ast.Value, error) {
	c := New(v).Down(RefPath(ref)...)
	return c.Value(), c.Err()
}

// RefPath converts the path of ref to path elements for Cursor.Down.
func RefPath(ref ast.Ref) []any {
	out := make([]any, len(ref.Path))
	for i, ix := range ref.Path {
		out[i] = ix
	}
	return out
}

// A Cursor is a pointer that navigates into the structure of an ast.Value.
type Cursor struct {
	org ast.Value
	stk []ast.Value
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin ast.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() ast.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() ast.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of values from the origin to the current
// location in c.
func (c *Cursor) Path() []ast.Value {
	return append([]ast.Value{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current value. If the path is valid, the element reached is returned. If the
// path cannot be completely consumed, traversal stops and an error is
// recorded. Use Err to recover the error.
//
// A string or ast.RefStr path element selects the dictionary entry with that
// name. An int or ast.RefInt selects a list element by offset; negative
// offsets count backward from the end (-1 is last, -2 second last). An error
// is reported if the offset is out of bounds.
//
// If a path element is a function, the function is executed and its result
// becomes the next value in the sequence. The function must have a signature
//
//	func(ast.Value) (ast.Value, error)
//
// If the function reports an error, traversal stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case ast.RefStr:
			elt = string(t)
		case ast.RefInt:
			elt = int(t)
		}

		switch t := elt.(type) {
		case string:
			var next ast.Value
			var ok bool
			switch e := cur.(type) {
			case *ast.Dict:
				next, ok = e.Get(t)
			case *ast.LiteralDict:
				next, ok = e.Get(t)
			default:
				return c.setErrorf("cannot traverse %T with %q", cur, t)
			}
			if !ok {
				return c.setErrorf("key %q not found", t)
			}
			cur = c.push(next)

		case int:
			switch e := cur.(type) {
			case ast.List:
				i, ok := fixListBound(len(e), t)
				if !ok {
					return c.setErrorf("list index %d out of bounds (n=%d)", t, len(e))
				}
				cur = c.push(e[i])
			case ast.LiteralList:
				i, ok := fixListBound(len(e), t)
				if !ok {
					return c.setErrorf("list index %d out of bounds (n=%d)", t, len(e))
				}
				cur = c.push(e[i])
			default:
				return c.setErrorf("cannot traverse %T with %v", cur, t)
			}

		case func(ast.Value) (ast.Value, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v ast.Value) ast.Value { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixListBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

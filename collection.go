// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package eson

import "github.com/creachadair/eson/ast"

// descend enters a nested production at in, reporting a committed error if
// this would exceed the maximum nesting depth.
func (p *Parser) descend(in input) (input, error) {
	if in.depth >= p.maxDepth {
		return in, commit(wrapf(in, ErrTooDeep, "nesting exceeds %d levels", p.maxDepth))
	}
	in.depth++
	return in, nil
}

// sequence parses a bracketed, comma-separated sequence of elements with an
// optional trailing comma. The parser commits after the opening bracket.
func sequence[T any](p *Parser, in input, open, close byte, name string, elem parseFunc[T]) ([]T, input, error) {
	cur, ok := in.cutByte(open)
	if !ok {
		return nil, in, expected(in, `"`+string(open)+`"`)
	}
	cur, err := p.descend(cur)
	if err != nil {
		return nil, in, within(name, err)
	}

	out, cur, stop, err := sepList(cur, comma, elem)
	if err != nil {
		return nil, in, within(name, err)
	}
	cur = skip(cur)
	if len(out) != 0 {
		cur, _ = cur.cutByte(',')
		cur = skip(cur)
	}
	end, ok := cur.cutByte(close)
	if !ok {
		want := `"` + string(close) + `"`
		if len(out) != 0 {
			want = `"," or ` + want
		}
		return nil, in, commit(within(name, furthest(expected(cur, want), stop)))
	}
	return out, end.atDepth(in.depth), nil
}

// list parses a list whose elements may contain expressions.
func (p *Parser) list(in input) (ast.List, input, error) {
	elts, rest, err := sequence(p, in, '[', ']', "list", p.value)
	return ast.List(elts), rest, err
}

// literalList parses a list whose elements are literals.
func (p *Parser) literalList(in input) (ast.LiteralList, input, error) {
	elts, rest, err := sequence(p, in, '[', ']', "list", p.literal)
	return ast.LiteralList(elts), rest, err
}

type entry[V any] struct {
	key ast.Key
	val V
}

// entries parses the body of a dictionary. Each entry is a key, a colon, and
// a value; after a complete key the parser commits to the entry.
func entries[V any](p *Parser, in input, elem parseFunc[V]) ([]entry[V], input, error) {
	return sequence(p, in, '{', '}', "dict", func(in input) (entry[V], input, error) {
		k, cur, err := p.key(skip(in))
		if err != nil {
			return entry[V]{}, in, err
		}
		cur = skip(cur)
		cur, ok := cur.cutByte(':')
		if !ok {
			return entry[V]{}, in, commit(within("entry", expected(cur, `":"`)))
		}
		v, rest, err := elem(cur)
		if err != nil {
			return entry[V]{}, in, commit(within("entry "+ast.String(k.Name).ESON(), err))
		}
		return entry[V]{key: k, val: v}, rest, nil
	})
}

// dict parses a dictionary whose values may contain expressions.
// When a key is repeated, the later value replaces the earlier one.
func (p *Parser) dict(in input) (*ast.Dict, input, error) {
	es, rest, err := entries(p, in, p.value)
	if err != nil {
		return nil, in, err
	}
	d := ast.NewDict()
	for _, e := range es {
		d.Set(e.key, e.val)
	}
	return d, rest, nil
}

// literalDict parses a dictionary whose values are literals.
func (p *Parser) literalDict(in input) (*ast.LiteralDict, input, error) {
	es, rest, err := entries(p, in, p.literal)
	if err != nil {
		return nil, in, err
	}
	d := ast.NewLiteralDict()
	for _, e := range es {
		d.Set(e.key, e.val)
	}
	return d, rest, nil
}

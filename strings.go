// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package eson

import (
	"strings"

	"github.com/creachadair/eson/internal/escape"
	"go4.org/mem"
)

// literalString parses an escaped or raw string literal.
func literalString(in input) (string, input, error) {
	switch in.peek() {
	case '"':
		return escapedString(in)
	case 'r':
		body, rest, err := rawBody(in.advance(1))
		if err != nil {
			if isCommitted(err) {
				return "", in, err
			}
			return "", in, expected(in, "string")
		}
		return body.src.StringCopy(), rest, nil
	}
	return "", in, expected(in, "string")
}

// stringValue parses any string literal: escaped, raw, or format.
func (p *Parser) stringValue(in input) (string, input, error) {
	if in.peek() == 'f' {
		return p.formatString(in)
	}
	return literalString(in)
}

// escapedString parses a double-quoted string with backslash escapes.
// Once the opening quote is seen the parser is committed.
func escapedString(in input) (string, input, error) {
	cur, ok := in.cutByte('"')
	if !ok {
		return "", in, expected(in, "string")
	}
	var buf []byte
	for {
		rest := cur.rest()
		i := indexQuoteOrEscape(rest)
		if i < 0 {
			return "", in, commit(within("string", failf(in, "unterminated string")))
		}
		buf = mem.Append(buf, rest.SliceTo(i))
		cur = cur.advance(i)
		if cur.peek() == '"' {
			return string(buf), cur.advance(1), nil
		}

		var n int
		var err error
		buf, n, err = escape.Decode(buf, cur.rest().SliceFrom(1))
		if err != nil {
			return "", in, commit(within("string", wrapf(cur, err, "%v", err)))
		}
		cur = cur.advance(1 + n)
	}
}

func indexQuoteOrEscape(m mem.RO) int {
	for i := 0; i < m.Len(); i++ {
		if b := m.At(i); b == '"' || b == '\\' {
			return i
		}
	}
	return -1
}

// rawBody parses the fenced part of a raw string, starting just after its
// r or f prefix: zero or more '#', a double quote, the body, and a closing
// double quote followed by the same number of '#'. The body is returned as
// an input positioned at its start. If no opening fence is found, rawBody
// fails without committing; once the fence is open it is committed.
func rawBody(in input) (input, input, error) {
	hashes, cur := in.takeWhile(func(b byte) bool { return b == '#' })
	cur, ok := cur.cutByte('"')
	if !ok {
		return input{}, in, expected(in, "raw string")
	}
	fence := `"` + strings.Repeat("#", hashes.Len())
	i := mem.Index(cur.rest(), mem.S(fence))
	if i < 0 {
		return input{}, in, commit(within("string",
			failf(in, "unterminated raw string, want closing %s", fence)))
	}
	body := cur.sub(cur.rest().SliceTo(i), cur.pos)
	return body, cur.advance(i + len(fence)), nil
}

// formatString parses a format string, f"..." with the same fences as a raw
// string. Within the body, backslash escapes are decoded and each expression
// literal ${...} is replaced by the descriptive form of its tokens.
func (p *Parser) formatString(in input) (string, input, error) {
	start, ok := in.cutByte('f')
	if !ok {
		return "", in, expected(in, "format string")
	}
	body, rest, err := rawBody(start)
	if err != nil {
		if isCommitted(err) {
			return "", in, err
		}
		return "", in, expected(in, "string")
	}
	if p.noExpr {
		return "", in, commit(wrapf(in, ErrNotAllowed, "format strings are not allowed"))
	}

	var buf []byte
	cur := body
	for !cur.eof() {
		switch {
		case cur.peek() == '\\':
			var n int
			buf, n, err = escape.Decode(buf, cur.rest().SliceFrom(1))
			if err != nil {
				return "", in, commit(within("format_string", wrapf(cur, err, "%v", err)))
			}
			cur = cur.advance(1 + n)

		case cur.hasPrefix("${"):
			e, next, err := p.exprLiteral(cur)
			if err != nil {
				return "", in, commit(within("format_string", err))
			}
			buf = append(buf, e.Tokens.String()...)
			cur = next

		default:
			n := 1
			for n < cur.rest().Len() {
				if b := cur.peekAt(n); b == '\\' || b == '$' {
					break
				}
				n++
			}
			buf = mem.Append(buf, cur.rest().SliceTo(n))
			cur = cur.advance(n)
		}
	}
	return string(buf), rest.atDepth(in.depth), nil
}

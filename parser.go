// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package eson

import (
	"fmt"
	"io"

	"github.com/creachadair/eson/ast"
)

// DefaultMaxDepth is the default limit on the nesting depth of lists,
// dictionaries, expressions, calls, and groups.
const DefaultMaxDepth = 512

// A Parser parses ESON text. The zero value is ready for use with default
// settings. A Parser is not modified by parsing, and may be shared by
// concurrent goroutines once configured.
type Parser struct {
	maxDepth int
	noExpr   bool
}

// NewParser returns a new Parser with default settings.
func NewParser() *Parser { return &Parser{maxDepth: DefaultMaxDepth} }

// MaxDepth sets the maximum nesting depth of p. If n ≤ 0, the default is
// used. It returns p to permit chaining.
func (p *Parser) MaxDepth(n int) *Parser {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
	return p
}

// AllowExpressions sets whether p accepts expression literals and format
// strings in live values. It returns p to permit chaining.
func (p *Parser) AllowExpressions(ok bool) *Parser { p.noExpr = !ok; return p }

func (p *Parser) init() *Parser {
	if p.maxDepth <= 0 {
		q := *p
		q.maxDepth = DefaultMaxDepth
		return &q
	}
	return p
}

var defaultParser = NewParser()

// ParseValue parses a single value, possibly containing expressions, from the
// front of text. Leading whitespace and comments are skipped. It returns the
// value and the remainder of text after it. In case of error, the returned
// error has concrete type *SyntaxError.
func ParseValue(text string) (ast.Value, string, error) { return defaultParser.ParseValue(text) }

// ParseLiteralValue parses a single literal value from the front of text, as
// ParseValue does. Expression literals and format strings are not accepted.
func ParseLiteralValue(text string) (ast.Literal, string, error) {
	return defaultParser.ParseLiteralValue(text)
}

// Parse parses text as a complete document containing a single value,
// optionally surrounded by whitespace and comments. If text has further input
// after the value, Parse returns the value along with an error that wraps
// ErrExtraInput.
func Parse(text string) (ast.Value, error) { return defaultParser.Parse(text) }

// MustParse is as Parse, but panics on error. It is intended for use with
// constant input in tests and program initialization.
func MustParse(text string) ast.Value {
	v, err := Parse(text)
	if err != nil {
		panic(fmt.Sprintf("eson.MustParse: %v", err))
	}
	return v
}

// ParseLiteral parses text as a complete document containing a single
// literal value, as Parse does.
func ParseLiteral(text string) (ast.Literal, error) { return defaultParser.ParseLiteral(text) }

// ParseReader reads all of r and parses it as a complete document.
func ParseReader(r io.Reader) (ast.Value, error) { return defaultParser.ParseReader(r) }

// ParseValue is as the package-level ParseValue, using the settings of p.
func (p *Parser) ParseValue(text string) (ast.Value, string, error) {
	p = p.init()
	v, rest, err := p.value(newInput(text))
	if err != nil {
		return nil, text, finish(text, err)
	}
	return v, text[rest.offset():], nil
}

// ParseLiteralValue is as the package-level ParseLiteralValue, using the
// settings of p.
func (p *Parser) ParseLiteralValue(text string) (ast.Literal, string, error) {
	p = p.init()
	v, rest, err := p.literal(newInput(text))
	if err != nil {
		return nil, text, finish(text, err)
	}
	return v, text[rest.offset():], nil
}

// Parse is as the package-level Parse, using the settings of p.
func (p *Parser) Parse(text string) (ast.Value, error) {
	v, rest, err := p.ParseValue(text)
	if err != nil {
		return nil, err
	}
	return v, checkExtra(text, rest)
}

// ParseLiteral is as the package-level ParseLiteral, using the settings of p.
func (p *Parser) ParseLiteral(text string) (ast.Literal, error) {
	v, rest, err := p.ParseLiteralValue(text)
	if err != nil {
		return nil, err
	}
	return v, checkExtra(text, rest)
}

// ParseReader is as the package-level ParseReader, using the settings of p.
func (p *Parser) ParseReader(r io.Reader) (ast.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return p.Parse(string(data))
}

// checkExtra reports an error if rest, the unparsed tail of text, contains
// anything other than whitespace and comments.
func checkExtra(text, rest string) error {
	in := newInput(text).advance(len(text) - len(rest))
	if tail := skip(in); !tail.eof() {
		return finish(text, wrapf(tail, ErrExtraInput, "unexpected %s after value", describe(tail)))
	}
	return nil
}

// value parses a live value, after skipping whitespace and comments.
// The alternatives are tried in order: string, number, Boolean, null, list,
// dictionary, and expression literal.
func (p *Parser) value(in input) (ast.Value, input, error) {
	in = skip(in)
	v, rest, err := alt(in,
		lift(p.stringValue, func(s string) ast.Value { return ast.String(s) }),
		lift(number, func(v ast.Literal) ast.Value { return v }),
		constant,
		lift(p.list, func(v ast.List) ast.Value { return v }),
		lift(p.dict, func(v *ast.Dict) ast.Value { return v }),
		lift(p.exprLiteral, func(v ast.Expr) ast.Value { return v }),
	)
	if err != nil {
		return nil, in, explain(in, err)
	}
	return v, rest, nil
}

// literal parses a literal value, after skipping whitespace and comments.
func (p *Parser) literal(in input) (ast.Literal, input, error) {
	in = skip(in)
	v, rest, err := alt(in,
		lift(literalString, func(s string) ast.Literal { return ast.String(s) }),
		number,
		lift(constant, func(v ast.Value) ast.Literal { return v.(ast.Literal) }),
		lift(p.literalList, func(v ast.LiteralList) ast.Literal { return v }),
		lift(p.literalDict, func(v *ast.LiteralDict) ast.Literal { return v }),
	)
	if err != nil {
		if se, ok := err.(*SyntaxError); ok && !se.Committed && in.hasPrefix("${") {
			return nil, in, commit(wrapf(in, ErrNotAllowed, "expressions are not allowed in a literal"))
		}
		return nil, in, explain(in, err)
	}
	return v, rest, nil
}

// constant parses one of the keywords true, false, or null.
func constant(in input) (ast.Value, input, error) {
	if rest, ok := keyword(in, "true"); ok {
		return ast.Bool(true), rest, nil
	} else if rest, ok := keyword(in, "false"); ok {
		return ast.Bool(false), rest, nil
	} else if rest, ok := keyword(in, "null"); ok {
		return ast.Null{}, rest, nil
	}
	return nil, in, expected(in, "true, false, or null")
}

// explain replaces a recoverable error that made no progress past in with a
// general message, and adds a suggestion if the input looks like a
// misspelled keyword.
func explain(in input, err error) error {
	se, ok := err.(*SyntaxError)
	if !ok || se.Committed || se.Offset() > in.offset() {
		return err
	}
	out := expected(in, "value")
	if isIdentStart(in.peek()) || in.peek() == '-' {
		word, _ := in.advance(1).takeWhile(isIdentByte)
		w := string(in.peek()) + word.StringCopy()
		if kw, ok := suggest(w); ok {
			out.Message += fmt.Sprintf(" (did you mean %q?)", kw)
		}
	}
	return out
}

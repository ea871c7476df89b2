// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package eson implements a parser for ESON, a superset of JSON intended for
// configuration files.
//
// # Syntax
//
// In addition to plain JSON, ESON accepts:
//
//	// line comments                   anywhere whitespace is allowed
//	[1, 2, 3,]   {a: 1,}               trailing commas
//	{name: 1}                          identifier keys
//	{@required @doc("id") name: 1}     key annotations
//	0b1010  0o777  0x1F                binary, octal, and hex integers
//	Infinity  -Infinity  NaN           non-finite floats
//	"a\u{1F600}\
//	   b"                              braced Unicode escapes, line continuations
//	r#"no "escapes" here"#             raw strings with # fences
//	f"hello, ${name}"                  format strings
//	${ a + b * f(c) }                  expression literals
//
// An expression literal is not evaluated. The parser records its token
// stream and builds a tree from it by operator precedence; see package expr
// for the precedence rules. References to other parts of the document are
// written self.x, super["y"], or $[0].
//
// # Parsing
//
// ParseValue parses one value from the front of a string and returns the
// remaining input:
//
//	v, rest, err := eson.ParseValue(`{a: 1} tail`)
//
// Parse parses a whole document, which must contain exactly one value:
//
//	v, err := eson.Parse(text)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// ParseLiteralValue and ParseLiteral are the same, but accept only values that
// contain no expression literals or format strings. These are the values
// allowed as annotation arguments.
//
// Errors from the parser have concrete type *SyntaxError, which reports the
// location of the error and the grammar productions being parsed at the time.
// Use errors.Is to check for ErrOverflow, ErrExtraInput, ErrTooDeep, and
// ErrNotAllowed.
//
// To change the nesting limit or to disallow expressions, construct a Parser:
//
//	p := eson.NewParser().MaxDepth(64).AllowExpressions(false)
//	v, err := p.Parse(text)
package eson

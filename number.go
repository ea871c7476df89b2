// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package eson

import (
	"errors"
	"math"
	"strconv"

	"github.com/creachadair/eson/ast"
	"go4.org/mem"
)

var radixes = []struct {
	prefix string
	base   int
	digit  func(byte) bool
}{
	{"0b", 2, isBinary},
	{"0o", 8, isOctal},
	{"0x", 16, isHex},
}

// number parses a numeric literal. The forms are tried in order: binary,
// octal, and hexadecimal integers with an 0b, 0o, or 0x prefix; a decimal
// integer or float; and the constants Infinity, -Infinity, and NaN.
//
// A prefix with no digits after it does not match, so for example "0x" is
// read as the decimal 0 followed by "x". A well-formed literal that is out of
// range reports a committed error wrapping ErrOverflow.
func number(in input) (ast.Literal, input, error) {
	for _, r := range radixes {
		rest, ok := in.cut(r.prefix)
		if !ok {
			continue
		}
		digits, after := rest.takeWhile(r.digit)
		if digits.Len() == 0 {
			continue
		}
		z, err := mem.ParseInt(digits, r.base, 64)
		if err != nil {
			return nil, in, overflow(in, err, "integer %s%s", r.prefix, digits.StringCopy())
		}
		return ast.Int(z), after, nil
	}

	if v, rest, err := decimal(in); err == nil || isCommitted(err) {
		return v, rest, err
	}
	if rest, ok := keyword(in, "Infinity"); ok {
		return ast.Float(math.Inf(1)), rest, nil
	} else if rest, ok := keyword(in, "-Infinity"); ok {
		return ast.Float(math.Inf(-1)), rest, nil
	} else if rest, ok := keyword(in, "NaN"); ok {
		return ast.Float(math.NaN()), rest, nil
	}
	return nil, in, expected(in, "number")
}

// decimal parses an optionally negative decimal number with an optional
// fraction and exponent. The result is an Int if neither is present, and
// otherwise a Float.
func decimal(in input) (ast.Literal, input, error) {
	cur, _ := in.cutByte('-')
	whole, cur := cur.takeWhile(isDigit)
	if whole.Len() == 0 {
		return nil, in, expected(in, "number")
	}

	isFloat := false
	if cur.peek() == '.' && isDigit(cur.peekAt(1)) {
		_, cur = cur.advance(1).takeWhile(isDigit)
		isFloat = true
	}
	if b := cur.peek(); b == 'e' || b == 'E' {
		exp := cur.advance(1)
		if s := exp.peek(); s == '+' || s == '-' {
			exp = exp.advance(1)
		}
		if digits, after := exp.takeWhile(isDigit); digits.Len() != 0 {
			cur = after
			isFloat = true
		}
	}

	text := cur.textFrom(in)
	if !isFloat {
		z, err := mem.ParseInt(text, 10, 64)
		if err != nil {
			return nil, in, overflow(in, err, "integer %s", text.StringCopy())
		}
		return ast.Int(z), cur, nil
	}
	f, err := mem.ParseFloat(text, 64)
	if err != nil {
		return nil, in, overflow(in, err, "float %s", text.StringCopy())
	}
	return ast.Float(f), cur, nil
}

// overflow reports a committed error for a numeric literal that could not be
// converted.
func overflow(in input, err error, msg string, args ...any) error {
	if errors.Is(err, strconv.ErrRange) {
		err = ErrOverflow
	}
	se := wrapf(in, err, msg, args...)
	se.Message += " out of range"
	return commit(se)
}

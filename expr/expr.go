// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package expr builds expression trees from the token streams of ESON
// expression literals, using precedence climbing.
//
// Operators bind in the following order, loosest first. All binary operators
// are left-associative.
//
//	||
//	&&
//	==  !=
//	<  <=  >  >=
//	+  -
//	*  /  %
//	prefix !  +  -
//	postfix call, reference, or group
//
// Operands are values, variables, function calls, references, and groups. A
// function call, reference, or group that follows an operand directly is
// applied to it as a postfix. The ^ operator is recognized by the tokenizer
// but has no defined precedence, and is rejected here.
package expr

import (
	"fmt"

	"github.com/creachadair/eson/ast"
)

// Binding powers, loosest to tightest.
const (
	precNone = 10 * iota
	precOr
	precAnd
	precEq
	precCompare
	precSum
	precProduct
	precPrefix
	precPostfix
)

// infixPrec reports the binding power of t in infix or postfix position, or
// precNone if t cannot appear there.
func infixPrec(t ast.Token) int {
	switch t := t.(type) {
	case ast.Op:
		switch t {
		case ast.Or:
			return precOr
		case ast.And:
			return precAnd
		case ast.Eq, ast.Ne:
			return precEq
		case ast.Lt, ast.Le, ast.Gt, ast.Ge:
			return precCompare
		case ast.Plus, ast.Minus:
			return precSum
		case ast.Mul, ast.Div, ast.Mod:
			return precProduct
		}
	case ast.FnCall, ast.Ref, ast.Group:
		return precPostfix
	}
	return precNone
}

func isPrefix(op ast.Op) bool { return op == ast.Not || op == ast.Plus || op == ast.Minus }

// A StructureError reports a token stream that does not form a well-formed
// expression.
type StructureError struct {
	Pos     int       // index of the offending token
	Token   ast.Token // the offending token, or nil at the end of the stream
	Message string

	// If the error occurred in a nested token stream (a call argument or a
	// group), Nested is the error from that stream.
	Nested *StructureError
}

func (e *StructureError) Error() string {
	msg := fmt.Sprintf("token %d: %s", e.Pos, e.Message)
	if e.Nested != nil {
		msg += ": " + e.Nested.Error()
	}
	return msg
}

// Parse constructs an expression tree from the tokens of c. It reports a
// *StructureError if c is empty, starts with a token that cannot begin an
// expression, or has tokens left over after a complete expression. The token
// streams of call arguments and groups are checked in the same way.
func Parse(c ast.Chunk) (ast.Node, error) {
	if len(c) == 0 {
		return nil, &StructureError{Message: "empty expression"}
	}
	p := &parser{toks: c}
	node, err := p.parse(precNone)
	if err != nil {
		return nil, err
	}
	if p.pos < len(c) {
		tok := c[p.pos]
		if tok == ast.Caret {
			return nil, p.errorf(tok, "operator %q has no defined precedence", tok.ESON())
		}
		return nil, p.errorf(tok, "unexpected %s after complete expression", tok)
	}
	return node, nil
}

// MustParse is as Parse, but panics on error.
func MustParse(c ast.Chunk) ast.Node {
	node, err := Parse(c)
	if err != nil {
		panic(err)
	}
	return node
}

type parser struct {
	toks ast.Chunk
	pos  int
}

func (p *parser) errorf(tok ast.Token, msg string, args ...any) *StructureError {
	return &StructureError{Pos: p.pos, Token: tok, Message: fmt.Sprintf(msg, args...)}
}

// parse parses an expression whose operators all bind more tightly than bound.
func (p *parser) parse(bound int) (ast.Node, error) {
	if p.pos >= len(p.toks) {
		return nil, p.errorf(nil, "unexpected end of expression")
	}
	tok := p.toks[p.pos]

	var lhs ast.Node
	switch t := tok.(type) {
	case ast.Op:
		if !isPrefix(t) {
			return nil, p.errorf(tok, "operator %q cannot begin an expression", t.ESON())
		}
		p.pos++
		x, err := p.parse(precPrefix)
		if err != nil {
			return nil, err
		}
		lhs = ast.Prefix{Op: t, X: x}
	default:
		if err := p.checkNested(tok); err != nil {
			return nil, err
		}
		p.pos++
		lhs = ast.Primary{Token: tok}
	}

	for p.pos < len(p.toks) {
		tok := p.toks[p.pos]
		prec := infixPrec(tok)
		if prec <= bound {
			break
		}
		if prec == precPostfix {
			if err := p.checkNested(tok); err != nil {
				return nil, err
			}
			p.pos++
			lhs = ast.Postfix{Op: tok, X: lhs}
			continue
		}
		p.pos++
		rhs, err := p.parse(prec)
		if err != nil {
			return nil, err
		}
		lhs = ast.Infix{Op: tok.(ast.Op), X: lhs, Y: rhs}
	}
	return lhs, nil
}

// checkNested reports an error if tok contains a token stream that is not a
// well-formed expression.
func (p *parser) checkNested(tok ast.Token) error {
	switch t := tok.(type) {
	case ast.FnCall:
		for i, arg := range t.Args {
			if _, err := Parse(arg); err != nil {
				se := p.errorf(tok, "in argument %d of %s", i+1, t.Name)
				se.Nested = err.(*StructureError)
				return se
			}
		}
	case ast.Group:
		if _, err := Parse(t.Tokens); err != nil {
			se := p.errorf(tok, "in group")
			se.Nested = err.(*StructureError)
			return se
		}
	}
	return nil
}

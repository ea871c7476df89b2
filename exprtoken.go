// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package eson

import (
	"errors"
	"strconv"

	"github.com/creachadair/eson/ast"
	"github.com/creachadair/eson/expr"
)

// exprLiteral parses an expression literal, ${ tokens }. The parser commits
// after the opening "${". Whitespace is permitted around and between the
// tokens, but comments are not.
func (p *Parser) exprLiteral(in input) (ast.Expr, input, error) {
	cur, ok := in.cut("${")
	if !ok {
		return ast.Expr{}, in, expected(in, `"${"`)
	}
	if p.noExpr {
		return ast.Expr{}, in, commit(wrapf(in, ErrNotAllowed, "expressions are not allowed"))
	}
	cur, err := p.descend(cur)
	if err != nil {
		return ast.Expr{}, in, within("expr", err)
	}
	toks, starts, cur, stop, err := p.tokens(cur)
	if err != nil {
		return ast.Expr{}, in, commit(within("expr", err))
	}
	cur = skipSpace(cur)
	end, ok := cur.cutByte('}')
	if !ok {
		return ast.Expr{}, in, commit(within("expr", furthest(expected(cur, `"}"`), stop)))
	}

	tree, err := expr.Parse(toks)
	if err != nil {
		// Report the error at the offending token, or at the closing brace if
		// the expression ended too soon.
		at := cur
		if se, ok := err.(*expr.StructureError); ok && se.Pos < len(starts) {
			at = starts[se.Pos]
		}
		return ast.Expr{}, in, commit(within("expr", wrapf(at, err, "invalid expression: %v", err)))
	}
	return ast.Expr{Tokens: toks, Tree: tree}, end.atDepth(in.depth), nil
}

// tokens parses one or more expression tokens separated by optional
// whitespace. It also returns the position at which each token begins. On
// success, stop is the recoverable error that ended the sequence.
func (p *Parser) tokens(in input) (_ ast.Chunk, starts []input, _ input, stop, err error) {
	var out ast.Chunk
	cur := in
	for {
		start := skipSpace(cur)
		tok, next, err := alt(start, p.fnCall, p.group, p.reference, p.valueToken, variable, operator)
		if err != nil {
			if isCommitted(err) {
				return nil, nil, in, nil, err
			} else if len(out) == 0 {
				return nil, nil, in, nil, commit(err)
			}
			return out, starts, cur, err, nil
		}
		out = append(out, tok)
		starts = append(starts, start)
		cur = next
	}
}

// chunk parses a token sequence for use as a call argument.
func (p *Parser) chunk(in input) (ast.Chunk, input, error) {
	c, _, rest, _, err := p.tokens(in)
	return c, rest, err
}

// fnCall parses a function call, name(args...), where the open parenthesis
// directly follows the name. The parser commits at the parenthesis.
func (p *Parser) fnCall(in input) (ast.Token, input, error) {
	name, cur, err := identifier(in)
	if err != nil {
		return nil, in, err
	}
	cur, ok := cur.cutByte('(')
	if !ok {
		return nil, in, expected(cur, `"("`)
	}
	cur, err = p.descend(cur)
	if err != nil {
		return nil, in, within("fn_call", err)
	}

	var args []ast.Chunk
	if probe := skipSpace(cur); probe.peek() == ')' {
		cur = probe
	} else {
		sep := func(in input) (input, bool) { return skipSpace(in).cutByte(',') }
		var stop error
		args, cur, stop, err = sepList(cur, sep, p.chunk)
		if err == nil && len(args) == 0 {
			err = stop
		}
		if err != nil {
			return nil, in, commit(within("fn_call", err))
		}
		cur = skipSpace(cur)
	}
	end, ok := cur.cutByte(')')
	if !ok {
		return nil, in, commit(within("fn_call", expected(cur, `"," or ")"`)))
	}
	return ast.FnCall{Name: name, Args: args}, end.atDepth(in.depth), nil
}

// group parses a parenthesized token sequence.
func (p *Parser) group(in input) (ast.Token, input, error) {
	cur, ok := in.cutByte('(')
	if !ok {
		return nil, in, expected(in, `"("`)
	}
	cur, err := p.descend(cur)
	if err != nil {
		return nil, in, within("group", err)
	}
	toks, _, cur, stop, err := p.tokens(cur)
	if err != nil {
		return nil, in, commit(within("group", err))
	}
	cur = skipSpace(cur)
	end, ok := cur.cutByte(')')
	if !ok {
		return nil, in, commit(within("group", furthest(expected(cur, `")"`), stop)))
	}
	return ast.Group{Tokens: toks}, end.atDepth(in.depth), nil
}

// reference parses a reference: self, super, or $, followed by zero or more
// path elements .name, ["name"], or [index].
func (p *Parser) reference(in input) (ast.Token, input, error) {
	var ref ast.Ref
	cur, ok := keyword(in, "self")
	if ok {
		ref.Pronoun = ast.Curr
	} else if cur, ok = keyword(in, "super"); ok {
		ref.Pronoun = ast.Super
	} else if in.peek() == '$' && in.peekAt(1) != '{' {
		ref.Pronoun = ast.Root
		cur = in.advance(1)
	} else {
		return nil, in, expected(in, "reference")
	}

	for {
		ix, next, err := refIndex(skipSpace(cur))
		if err != nil {
			if isCommitted(err) {
				return nil, in, within("reference", err)
			}
			break
		}
		ref.Path = append(ref.Path, ix)
		cur = next
	}
	return ref, cur, nil
}

// refIndex parses a single path element of a reference.
func refIndex(in input) (ast.RefIndex, input, error) {
	if cur, ok := in.cutByte('.'); ok {
		name, rest, err := identifier(skipSpace(cur))
		if err != nil {
			return nil, in, err
		}
		return ast.RefStr(name), rest, nil
	}

	cur, ok := in.cutByte('[')
	if !ok {
		return nil, in, expected(in, `"." or "["`)
	}
	cur = skipSpace(cur)

	var ix ast.RefIndex
	if s, rest, err := literalString(cur); err == nil {
		ix, cur = ast.RefStr(s), rest
	} else if isCommitted(err) {
		return nil, in, err
	} else if digits, rest := cur.takeWhile(isDigit); digits.Len() != 0 {
		z, err := strconv.ParseInt(digits.StringCopy(), 10, 16)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				err = ErrOverflow
			}
			return nil, in, commit(wrapf(cur, err, "reference index %s out of range", digits.StringCopy()))
		}
		ix, cur = ast.RefInt(z), rest
	} else {
		return nil, in, expected(cur, "string or index")
	}

	end, ok := skipSpace(cur).cutByte(']')
	if !ok {
		return nil, in, expected(cur, `"]"`)
	}
	return ix, end, nil
}

// valueToken parses a value as an expression operand. A value may not begin
// with a sign inside an expression; a leading + or - is an operator.
func (p *Parser) valueToken(in input) (ast.Token, input, error) {
	if b := in.peek(); b == '+' || b == '-' {
		return nil, in, expected(in, "value")
	}
	v, rest, err := alt(in,
		lift(p.stringValue, func(s string) ast.Value { return ast.String(s) }),
		lift(number, func(v ast.Literal) ast.Value { return v }),
		constant,
		lift(p.list, func(v ast.List) ast.Value { return v }),
		lift(p.dict, func(v *ast.Dict) ast.Value { return v }),
		lift(p.exprLiteral, func(v ast.Expr) ast.Value { return v }),
	)
	if err != nil {
		return nil, in, err
	}
	return ast.Val{Value: v}, rest, nil
}

// variable parses a variable name.
func variable(in input) (ast.Token, input, error) {
	name, rest, err := identifier(in)
	if err != nil {
		return nil, in, err
	}
	return ast.Var(name), rest, nil
}

// operator parses an operator, preferring the longest match.
func operator(in input) (ast.Token, input, error) {
	for _, op := range ast.Operators {
		if rest, ok := in.cut(op.ESON()); ok {
			return op, rest, nil
		}
	}
	return nil, in, expected(in, "operator")
}

// ParseReference parses text as a reference, for example self.name or
// $["key"][0], with nothing else but surrounding whitespace.
func ParseReference(text string) (ast.Ref, error) {
	in := skipSpace(newInput(text))
	tok, rest, err := defaultParser.reference(in)
	if err != nil {
		return ast.Ref{}, finish(text, err)
	}
	if rest = skipSpace(rest); !rest.eof() {
		return ast.Ref{}, finish(text, wrapf(rest, ErrExtraInput, "unexpected %s after reference", describe(rest)))
	}
	return tok.(ast.Ref), nil
}

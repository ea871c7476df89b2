// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package eson

import "github.com/creachadair/eson/ast"

// annotation parses a single annotation, @name, optionally followed on the
// same line by a parenthesized list of literal arguments. The parser commits
// once the '@' is seen.
func (p *Parser) annotation(in input) (ast.Annotation, input, error) {
	cur, ok := in.cutByte('@')
	if !ok {
		return ast.Annotation{}, in, expected(in, `"@"`)
	}
	name, cur, err := identifier(cur)
	if err != nil {
		return ast.Annotation{}, in, commit(within("annotation", err))
	}
	cur = skipInline(cur)
	open, ok := cur.cutByte('(')
	if !ok {
		return ast.Annotation{Name: name}, cur, nil
	}

	args, rest, stop, err := sepList(open, comma, p.literal)
	if err != nil {
		return ast.Annotation{}, in, within("annotation", err)
	}
	rest = skip(rest)
	end, ok := rest.cutByte(')')
	if !ok {
		return ast.Annotation{}, in, commit(within("annotation", furthest(expected(rest, `"," or ")"`), stop)))
	}
	return ast.Annotation{Name: name, Args: args}, skipInline(end), nil
}

// annotations parses zero or more annotations separated by whitespace and
// comments. If there are none, it returns nil and the original input.
func (p *Parser) annotations(in input) ([]ast.Annotation, input, error) {
	var out []ast.Annotation
	cur := in
	for {
		a, next, err := p.annotation(skip(cur))
		if err != nil {
			if isCommitted(err) {
				return nil, in, err
			}
			return out, cur, nil
		}
		out = append(out, a)
		cur = next
	}
}

// key parses a dictionary key: optional annotations followed by either a
// string literal or an identifier. A key that has annotations is committed.
func (p *Parser) key(in input) (ast.Key, input, error) {
	anns, cur, err := p.annotations(in)
	if err != nil {
		return ast.Key{}, in, within("key", err)
	}
	cur = skip(cur)
	name, rest, err := alt(cur, literalString, identifier)
	if err != nil {
		if len(anns) != 0 {
			err = commit(expected(cur, "key after annotations"))
		}
		return ast.Key{}, in, within("key", err)
	}
	return ast.Key{Name: name, Annotations: anns}, rest, nil
}

// comma consumes a comma preceded by optional whitespace and comments.
func comma(in input) (input, bool) { return skip(in).cutByte(',') }

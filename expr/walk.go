// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package expr

import "github.com/creachadair/eson/ast"

// Walk calls f for each node of the tree rooted at n in depth-first order,
// visiting operands from left to right. If f returns false for a node, Walk
// does not visit its operands. Walk does not descend into the token streams
// of call arguments or groups.
func Walk(n ast.Node, f func(ast.Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch t := n.(type) {
	case ast.Prefix:
		Walk(t.X, f)
	case ast.Infix:
		Walk(t.X, f)
		Walk(t.Y, f)
	case ast.Postfix:
		Walk(t.X, f)
	}
}

// Calls returns the function calls of the tree rooted at n, including those
// nested in call arguments, groups, and expression literals within operand
// values, in source order.
func Calls(n ast.Node) ([]ast.FnCall, error) {
	var out []ast.FnCall
	err := visitTokens(n, func(tok ast.Token) {
		if fc, ok := tok.(ast.FnCall); ok {
			out = append(out, fc)
		}
	})
	return out, err
}

// Vars returns the names of the variables of the tree rooted at n, including
// those nested as for Calls, in source order.
func Vars(n ast.Node) ([]string, error) {
	var out []string
	err := visitTokens(n, func(tok ast.Token) {
		if v, ok := tok.(ast.Var); ok {
			out = append(out, string(v))
		}
	})
	return out, err
}

// visitTokens calls f for each operand token of n in source order. Nested
// token streams are parsed and visited in turn.
func visitTokens(n ast.Node, f func(ast.Token)) error {
	var err error
	var visit func(ast.Node) bool
	visit = func(n ast.Node) bool {
		if err != nil {
			return false
		}
		switch t := n.(type) {
		case ast.Primary:
			err = visitToken(t.Token, f)
		case ast.Postfix:
			// The operand precedes the postfix token in the source.
			Walk(t.X, visit)
			if err == nil {
				err = visitToken(t.Op, f)
			}
			return false
		}
		return true
	}
	Walk(n, visit)
	return err
}

func visitToken(tok ast.Token, f func(ast.Token)) error {
	f(tok)
	var nested []ast.Chunk
	switch t := tok.(type) {
	case ast.FnCall:
		nested = t.Args
	case ast.Group:
		nested = []ast.Chunk{t.Tokens}
	case ast.Val:
		return visitValue(t.Value, f)
	}
	for _, c := range nested {
		sub, err := Parse(c)
		if err != nil {
			return err
		}
		if err := visitTokens(sub, f); err != nil {
			return err
		}
	}
	return nil
}

// visitValue visits the operand tokens of each expression literal nested in v.
func visitValue(v ast.Value, f func(ast.Token)) error {
	var err error
	ast.Walk(v, func(v ast.Value) bool {
		if err != nil {
			return false
		}
		if e, ok := v.(ast.Expr); ok {
			err = visitTokens(e.Tree, f)
		}
		return true
	})
	return err
}

// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

// A Node is a node of an expression tree, built from a token stream by
// applying operator precedence. The concrete type is one of Primary, Prefix,
// Infix, or Postfix.
type Node interface {
	// String renders the node with explicit parentheses around every operator
	// application, for example (Val(Int(1)) Plus Val(Int(2))).
	String() string

	isNode()
}

// A Primary is a leaf holding a single operand token.
type Primary struct{ Token Token }

func (p Primary) String() string { return p.Token.String() }
func (Primary) isNode()          {}

// A Prefix applies a prefix operator to its operand.
type Prefix struct {
	Op Op
	X  Node
}

func (p Prefix) String() string { return "(" + p.Op.String() + " " + p.X.String() + ")" }
func (Prefix) isNode()          {}

// An Infix applies a binary operator to its operands.
type Infix struct {
	Op   Op
	X, Y Node
}

func (p Infix) String() string {
	return "(" + p.X.String() + " " + p.Op.String() + " " + p.Y.String() + ")"
}
func (Infix) isNode() {}

// A Postfix applies a postfix token to its operand. The token is a FnCall,
// a Ref, or a Group that follows the operand directly.
type Postfix struct {
	Op Token
	X  Node
}

func (p Postfix) String() string { return "(" + p.X.String() + " " + p.Op.String() + ")" }
func (Postfix) isNode()          {}

// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"strconv"
	"strings"
)

// A Token is a single element of the token stream of an expression literal.
// The concrete type is one of Op, Val, Var, FnCall, Ref, or Group.
type Token interface {
	// ESON renders the token in source form.
	ESON() string

	// String renders the descriptive form of the token, for example Var(x).
	String() string

	isToken()
}

// An Op is an operator token, or one of the reserved marker tokens.
type Op byte

// Operator and marker tokens. The markers (None, Pipe, Q, Colon, Eoi) are
// never produced by the tokenizer; they are reserved for use by evaluators.
const (
	None  Op = iota // placeholder
	Pipe            // |
	Q               // ?
	Colon           // :
	Eq              // ==
	Ne              // !=
	Le              // <=
	Ge              // >=
	And             // &&
	Or              // ||
	Not             // !
	Gt              // >
	Lt              // <
	Plus            // +
	Minus           // -
	Mul             // *
	Div             // /
	Mod             // %
	Caret           // ^
	Eoi             // end of input
)

var opInfo = [...]struct{ src, name string }{
	None:  {"", "None"},
	Pipe:  {"|", "Pipe"},
	Q:     {"?", "Q"},
	Colon: {":", "Colon"},
	Eq:    {"==", "Eq"},
	Ne:    {"!=", "Ne"},
	Le:    {"<=", "Le"},
	Ge:    {">=", "Ge"},
	And:   {"&&", "And"},
	Or:    {"||", "Or"},
	Not:   {"!", "Not"},
	Gt:    {">", "Gt"},
	Lt:    {"<", "Lt"},
	Plus:  {"+", "Plus"},
	Minus: {"-", "Minus"},
	Mul:   {"*", "Mul"},
	Div:   {"/", "Div"},
	Mod:   {"%", "Mod"},
	Caret: {"^", "Caret"},
	Eoi:   {"", "Eoi"},
}

// Operators lists the operator tokens recognized in expressions, ordered so
// that no entry is a prefix of a later one.
var Operators = []Op{Eq, Ne, Le, Ge, And, Or, Not, Gt, Lt, Plus, Minus, Mul, Div, Mod, Caret}

// ESON returns the source spelling of o, or "" for a marker.
func (o Op) ESON() string {
	if int(o) < len(opInfo) {
		return opInfo[o].src
	}
	return ""
}

func (o Op) String() string {
	if int(o) < len(opInfo) {
		return opInfo[o].name
	}
	return "Op(" + strconv.Itoa(int(o)) + ")"
}

func (Op) isToken() {}

// A Val is a token carrying a value written inline in an expression.
type Val struct{ Value Value }

func (v Val) ESON() string   { return v.Value.ESON() }
func (v Val) String() string { return "Val(" + v.Value.String() + ")" }
func (Val) isToken()         {}

// A Var is a token naming a variable.
type Var string

func (v Var) ESON() string   { return string(v) }
func (v Var) String() string { return "Var(" + string(v) + ")" }
func (Var) isToken()         {}

// A FnCall is a function call token, name(arg, ...). Each argument is the
// token stream of one comma-separated argument expression.
type FnCall struct {
	Name string
	Args []Chunk
}

func (f FnCall) ESON() string {
	return joinValues(f.Name+"(", f.Args, ", ", ")", Chunk.ESON)
}

func (f FnCall) String() string {
	return joinValues("FnCall("+f.Name+", [", f.Args, ", ", "])", Chunk.String)
}

func (FnCall) isToken() {}

// A Group is a parenthesized token stream.
type Group struct{ Tokens Chunk }

func (g Group) ESON() string   { return "(" + g.Tokens.ESON() + ")" }
func (g Group) String() string { return "Group(" + g.Tokens.String() + ")" }
func (Group) isToken()         {}

// A Pronoun is the head of a reference.
type Pronoun byte

const (
	Curr  Pronoun = iota // self
	Super                // super
	Root                 // $
)

// ESON returns the source keyword for p.
func (p Pronoun) ESON() string {
	switch p {
	case Curr:
		return "self"
	case Super:
		return "super"
	case Root:
		return "$"
	}
	return "?"
}

func (p Pronoun) String() string {
	switch p {
	case Curr:
		return "Curr"
	case Super:
		return "Super"
	case Root:
		return "Root"
	}
	return "Pronoun(" + strconv.Itoa(int(p)) + ")"
}

// A Ref is a reference token: a pronoun followed by a path of indexes, for
// example self.name, super["a b"], or $[0].
type Ref struct {
	Pronoun Pronoun
	Path    []RefIndex
}

func (r Ref) ESON() string {
	var sb strings.Builder
	sb.WriteString(r.Pronoun.ESON())
	for _, ix := range r.Path {
		switch t := ix.(type) {
		case RefStr:
			if isIdentifier(string(t)) {
				sb.WriteString("." + string(t))
			} else {
				sb.WriteString("[" + String(t).ESON() + "]")
			}
		case RefInt:
			sb.WriteString("[" + strconv.Itoa(int(t)) + "]")
		}
	}
	return sb.String()
}

func (r Ref) String() string {
	return joinValues("Ref("+r.Pronoun.String()+"([", r.Path, ", ", "]))", RefIndex.String)
}

func (Ref) isToken() {}

// A RefIndex is one element of a reference path.
// The concrete type is either RefStr or RefInt.
type RefIndex interface {
	String() string
	isRefIndex()
}

// A RefStr selects a dictionary entry by name.
type RefStr string

func (s RefStr) String() string { return "Str(" + String(s).ESON() + ")" }
func (RefStr) isRefIndex()      {}

// A RefInt selects a list element by position.
type RefInt int16

func (z RefInt) String() string { return "Int(" + strconv.Itoa(int(z)) + ")" }
func (RefInt) isRefIndex()      {}

// A Chunk is a sequence of tokens.
type Chunk []Token

// ESON renders the tokens of c in source form, separated by spaces.
func (c Chunk) ESON() string { return joinValues("", c, " ", "", Token.ESON) }

// String renders the descriptive forms of the tokens of c, separated by
// spaces.
func (c Chunk) String() string { return joinValues("", c, " ", "", Token.String) }

// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package eson

import "go4.org/mem"

// An input is an immutable view of the unconsumed remainder of the source
// text. Grammar functions take an input and return the input remaining after
// the text they recognized, so backtracking is a matter of keeping the
// original input value.
type input struct {
	src   mem.RO // the text being scanned
	pos   int    // offset of the next unconsumed byte in src
	base  int    // offset of src within the complete document
	depth int    // current nesting depth
}

func newInput(text string) input { return input{src: mem.S(text)} }

// offset reports the offset of in within the complete document.
func (in input) offset() int { return in.base + in.pos }

func (in input) rest() mem.RO { return in.src.SliceFrom(in.pos) }

func (in input) eof() bool { return in.pos >= in.src.Len() }

// peek returns the next unconsumed byte, or 0 at the end of input.
func (in input) peek() byte { return in.peekAt(0) }

func (in input) peekAt(i int) byte {
	if in.pos+i < in.src.Len() {
		return in.src.At(in.pos + i)
	}
	return 0
}

func (in input) advance(n int) input { in.pos += n; return in }

// textFrom returns the source text between from and in.
func (in input) textFrom(from input) mem.RO { return in.src.Slice(from.pos, in.pos) }

func (in input) hasPrefix(s string) bool { return mem.HasPrefix(in.rest(), mem.S(s)) }

// cut consumes s if it is a prefix of the input.
func (in input) cut(s string) (input, bool) {
	if in.hasPrefix(s) {
		return in.advance(len(s)), true
	}
	return in, false
}

// cutByte consumes b if it is the next byte of the input.
func (in input) cutByte(b byte) (input, bool) {
	if !in.eof() && in.peek() == b {
		return in.advance(1), true
	}
	return in, false
}

// takeWhile consumes the longest prefix of the input whose bytes satisfy f.
func (in input) takeWhile(f func(byte) bool) (mem.RO, input) {
	n := in.pos
	for n < in.src.Len() && f(in.src.At(n)) {
		n++
	}
	return in.src.Slice(in.pos, n), in.advance(n - in.pos)
}

// atDepth returns a copy of in with the given nesting depth.
func (in input) atDepth(depth int) input { in.depth = depth; return in }

// sub returns an input whose text is the view m of in's source, starting at
// offset start within in.src.
func (in input) sub(m mem.RO, start int) input {
	return input{src: m, base: in.base + start, depth: in.depth}
}

func isSpace(b byte) bool  { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }
func isInline(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }
func isDigit(b byte) bool  { return '0' <= b && b <= '9' }
func isBinary(b byte) bool { return b == '0' || b == '1' }
func isOctal(b byte) bool  { return '0' <= b && b <= '7' }
func isHex(b byte) bool {
	return isDigit(b) || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}
func isIdentStart(b byte) bool { return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') }
func isIdentByte(b byte) bool  { return isIdentStart(b) || isDigit(b) }

// skip consumes any whitespace and line comments at the front of the input.
// A line comment runs from "//" through the end of the line.
func skip(in input) input {
	for {
		if isSpace(in.peek()) {
			_, in = in.takeWhile(isSpace)
		} else if in.hasPrefix("//") {
			i := mem.IndexByte(in.rest(), '\n')
			if i < 0 {
				return in.advance(in.src.Len() - in.pos)
			}
			in = in.advance(i + 1)
		} else {
			return in
		}
	}
}

// skipSpace consumes whitespace, but not comments, at the front of the input.
func skipSpace(in input) input { _, in = in.takeWhile(isSpace); return in }

// skipInline consumes whitespace other than newlines.
func skipInline(in input) input { _, in = in.takeWhile(isInline); return in }

// identifier consumes an identifier, a letter or underscore followed by any
// number of letters, digits, or underscores.
func identifier(in input) (string, input, error) {
	if !isIdentStart(in.peek()) {
		return "", in, expected(in, "identifier")
	}
	id, rest := in.takeWhile(isIdentByte)
	return id.StringCopy(), rest, nil
}

// keyword consumes word if it occurs at the front of the input and is not
// immediately followed by an identifier character.
func keyword(in input, word string) (input, bool) {
	rest, ok := in.cut(word)
	if !ok || isIdentByte(rest.peek()) {
		return in, false
	}
	return rest, true
}

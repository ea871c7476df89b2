// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package eson

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"go4.org/mem"
)

var (
	// ErrOverflow is reported (wrapped in a *SyntaxError) when a numeric
	// literal is well-formed but out of range for its type.
	ErrOverflow = errors.New("numeric overflow")

	// ErrExtraInput is reported (wrapped in a *SyntaxError) when a complete
	// value is followed by further input.
	ErrExtraInput = errors.New("extra input after value")

	// ErrTooDeep is reported (wrapped in a *SyntaxError) when values or
	// expressions are nested more deeply than the parser permits.
	ErrTooDeep = errors.New("nesting too deep")

	// ErrNotAllowed is reported (wrapped in a *SyntaxError) when the input
	// uses a feature that the parser settings disallow.
	ErrNotAllowed = errors.New("feature not allowed")
)

// SyntaxError is the concrete type of errors reported by the parser.
type SyntaxError struct {
	// Location is the location of the offending input. Its span covers the
	// first character at which the error was detected, and is empty at the
	// end of input.
	Location Location

	// Context lists the grammar productions that were being parsed when the
	// error occurred, outermost first.
	Context []string

	Message string

	// Committed reports whether the error occurred after the parser had
	// committed to a production, so that no alternative was tried.
	Committed bool

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "at %s: ", s.Location.First)
	for _, c := range s.Context {
		sb.WriteString(c)
		sb.WriteString(": ")
	}
	sb.WriteString(s.Message)
	return sb.String()
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// Offset reports the byte offset of the error in the source text.
func (s *SyntaxError) Offset() int { return s.Location.Pos }

// failf returns a recoverable syntax error at the current position of in.
func failf(in input, msg string, args ...any) *SyntaxError {
	pos := in.offset()
	end := pos
	if !in.eof() {
		_, n := mem.DecodeRune(in.rest())
		end += max(n, 1)
	}
	return &SyntaxError{
		Location: Location{Span: Span{Pos: pos, End: end}},
		Message:  fmt.Sprintf(msg, args...),
	}
}

// expected returns a recoverable error reporting that the input did not
// match what was wanted.
func expected(in input, want string) *SyntaxError {
	return failf(in, "expected %s, found %s", want, describe(in))
}

// wrapf returns a syntax error at in that wraps err.
func wrapf(in input, err error, msg string, args ...any) *SyntaxError {
	se := failf(in, msg, args...)
	se.err = err
	return se
}

// describe renders the next character of the input for use in a message.
func describe(in input) string {
	if in.eof() {
		return "end of input"
	}
	r, _ := mem.DecodeRune(in.rest())
	if r == utf8.RuneError {
		return fmt.Sprintf("byte %#02x", in.peek())
	}
	return fmt.Sprintf("%q", r)
}

// commit marks err as committed, so that enclosing alternatives report it
// instead of trying other choices.
func commit(err error) error {
	if se, ok := err.(*SyntaxError); ok {
		se.Committed = true
	}
	return err
}

// isCommitted reports whether err is a committed error.
func isCommitted(err error) bool {
	se, ok := err.(*SyntaxError)
	return !ok || se.Committed
}

// within records that err occurred while parsing the named production.
func within(name string, err error) error {
	if se, ok := err.(*SyntaxError); ok {
		se.Context = append([]string{name}, se.Context...)
	}
	return err
}

// furthest returns whichever of a and b occurred later in the input. If they
// occurred at the same place, a is preferred. Either may be nil.
func furthest(a, b error) error {
	sa, aok := a.(*SyntaxError)
	sb, bok := b.(*SyntaxError)
	if !aok {
		if a == nil {
			return b
		}
		return a
	} else if bok && sb.Offset() > sa.Offset() {
		return sb
	}
	return sa
}

// finish fills in the line and column details of err for the given source
// text. Errors that are not syntax errors are returned unchanged.
func finish(text string, err error) error {
	if se, ok := err.(*SyntaxError); ok {
		se.Location = LocateSpan(text, se.Location.Span)
	}
	return err
}

// keywords are the bare words that denote values.
var keywords = []string{"true", "false", "null", "Infinity", "-Infinity", "NaN"}

// suggest returns the keyword closest to word, if any is close enough to be
// a plausible misspelling.
func suggest(word string) (string, bool) {
	best, bestDist := "", 3
	for _, kw := range keywords {
		if d := fuzzy.LevenshteinDistance(strings.ToLower(word), strings.ToLower(kw)); d < bestDist {
			best, bestDist = kw, d
		}
	}
	return best, best != "" && best != word
}

// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package format implements pretty-printing of ESON values.
//
// The output of Format is valid ESON that parses to a value equal to the
// input. Short lists and dictionaries are kept on one line; larger ones are
// broken across lines with a trailing comma after each element, and the
// values of simple dictionary entries are aligned in columns.
package format

import (
	"bytes"
	"fmt"
	"io"
	"iter"
	"strings"
	"text/tabwriter"

	"github.com/creachadair/eson/ast"
)

// A Formatter carries the settings for pretty-printing ESON values.
// A zero value is ready for use with default settings.
type Formatter struct {
	// IndentSize is the number of spaces used for each level of
	// indentation. If zero, 2 is used.
	IndentSize int

	// MaxLineItems is the largest number of list elements that may be
	// rendered on a single line. If zero, 3 is used.
	MaxLineItems int
}

func (f Formatter) indent() string {
	if f.IndentSize <= 0 {
		return "  "
	}
	return strings.Repeat(" ", f.IndentSize)
}

func (f Formatter) maxLineItems() int {
	if f.MaxLineItems <= 0 {
		return 3
	}
	return f.MaxLineItems
}

// Format renders a pretty-printed representation of v to w with default
// settings.
func Format(w io.Writer, v ast.Value) error {
	var f Formatter
	return f.Format(w, v)
}

// FormatToString formats v to a string with default settings.
// In case of error in formatting, it returns an empty string.
func FormatToString(v ast.Value) string {
	var buf bytes.Buffer
	if Format(&buf, v) != nil {
		return ""
	}
	return buf.String()
}

// Format renders a pretty-printed representation of v to w using the settings
// from f. The output ends with a newline.
func (f Formatter) Format(w io.Writer, v ast.Value) error {
	tw := tabwriter.NewWriter(w, 4, 4, 1, ' ', 0)
	f.formatValue(tw, v, "", "")
	io.WriteString(tw, "\n")
	return tw.Flush()
}

type writeFlusher interface {
	io.Writer
	Flush() error
}

// formatValue writes a representation of v to w indented by indent.
// The first line is prefixed by init.
func (f Formatter) formatValue(w writeFlusher, v ast.Value, init, indent string) {
	switch t := v.(type) {
	case ast.List:
		formatList(f, w, t, init, indent)
	case ast.LiteralList:
		formatList(f, w, t, init, indent)
	case *ast.Dict:
		formatDict(f, w, t.All(), t.Len(), init, indent)
	case *ast.LiteralDict:
		formatDict(f, w, t.All(), t.Len(), init, indent)
	case nil:
		panic("format: nil value")
	default:
		fmt.Fprint(w, init, v.ESON())
	}
}

func values[V ast.Value](vs []V) iter.Seq[ast.Value] {
	return func(yield func(ast.Value) bool) {
		for _, v := range vs {
			if !yield(v) {
				return
			}
		}
	}
}

func formatList[V ast.Value](f Formatter, w writeFlusher, vs []V, init, indent string) {
	if f.isBoringList(len(vs), values(vs)) {
		fmt.Fprint(w, init, "[")
		for i, v := range vs {
			if i > 0 {
				io.WriteString(w, ", ")
			}
			f.formatValue(w, v, "", "")
		}
		io.WriteString(w, "]")
		return
	}

	fmt.Fprint(w, init, "[\n")
	adent := indent + f.indent()
	for _, v := range vs {
		f.formatValue(w, v, adent, adent)
		io.WriteString(w, ",\n")
	}
	w.Flush()
	fmt.Fprint(w, indent, "]")
}

func formatDict[V ast.Value](f Formatter, w writeFlusher, all iter.Seq2[ast.Key, V], n int, init, indent string) {
	if n == 0 {
		fmt.Fprint(w, init, "{}")
		return
	}
	if n == 1 {
		for k, v := range all {
			if len(k.Annotations) == 0 && f.isBoring(v) {
				fmt.Fprint(w, init, "{", k.ESON(), ": ")
				f.formatValue(w, v, "", "")
				io.WriteString(w, "}")
				return
			}
		}
	}

	fmt.Fprint(w, init, "{\n")
	mdent := indent + f.indent()
	prevBoring, curBoring := true, true
	i := 0
	for k, v := range all {
		// Leave extra space before the next entry if either it or its
		// predecessor was non-boring.
		prevBoring, curBoring = curBoring, len(k.Annotations) == 0 && f.isBoring(v)
		if i != 0 && !(prevBoring && curBoring) {
			io.WriteString(w, "\n")
		}
		i++

		if len(k.Annotations) != 0 {
			// Annotations go on their own line, above the key.
			fmt.Fprint(w, mdent, annotationLine(k), "\n")
			k.Annotations = nil
		}
		fmt.Fprint(w, mdent, k.ESON(), f.entrySep(v))
		f.formatValue(w, v, "", mdent)
		io.WriteString(w, ",\n")
	}
	w.Flush()
	fmt.Fprint(w, indent, "}")
}

// entrySep returns a key-value separator for the given value.
// Boring values get indented so they line up in columns;
// non-boring values are stapled directly to the key.
func (f Formatter) entrySep(v ast.Value) string {
	if f.isBoring(v) {
		return ":\t"
	}
	return ": "
}

// isBoring reports whether v has a simple enough structure that it can be
// rendered on one line.
func (f Formatter) isBoring(v ast.Value) bool {
	switch t := v.(type) {
	case ast.List:
		return f.isBoringList(len(t), values(t))
	case ast.LiteralList:
		return f.isBoringList(len(t), values(t))
	case *ast.Dict:
		return isBoringDict(f, t.Len(), t.All())
	case *ast.LiteralDict:
		return isBoringDict(f, t.Len(), t.All())
	default:
		return true
	}
}

func (f Formatter) isBoringList(n int, all iter.Seq[ast.Value]) bool {
	if n > f.maxLineItems() {
		return false
	}
	for v := range all {
		if !f.isBoring(v) {
			return false
		}
	}
	return true
}

func isBoringDict[V ast.Value](f Formatter, n int, all iter.Seq2[ast.Key, V]) bool {
	if n != 1 {
		return n == 0
	}
	ok := false
	for k, v := range all {
		ok = len(k.Annotations) == 0 && f.isBoring(v)
	}
	return ok
}

// annotationLine renders the annotations of k without the key name.
func annotationLine(k ast.Key) string {
	parts := make([]string, len(k.Annotations))
	for i, a := range k.Annotations {
		parts[i] = a.ESON()
	}
	return strings.Join(parts, " ")
}

// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"iter"
	"slices"
	"strings"
)

// A Key is the key of a dictionary entry, with its annotations.
//
// Keys compare equal by name alone: two keys that differ only in their
// annotations are the same key.
type Key struct {
	Name        string
	Annotations []Annotation // nil if the key has no annotations
}

// Equal reports whether k and o have the same name.
func (k Key) Equal(o Key) bool { return k.Name == o.Name }

// ESON renders k in source form, including its annotations.
func (k Key) ESON() string {
	var sb strings.Builder
	for _, a := range k.Annotations {
		sb.WriteString(a.ESON())
		sb.WriteByte(' ')
	}
	if isIdentifier(k.Name) {
		sb.WriteString(k.Name)
	} else {
		sb.WriteString(String(k.Name).ESON())
	}
	return sb.String()
}

// Annotation returns the first annotation of k with the given name.
func (k Key) Annotation(name string) (Annotation, bool) {
	for _, a := range k.Annotations {
		if a.Name == name {
			return a, true
		}
	}
	return Annotation{}, false
}

// An Annotation is a named tag attached to a dictionary key, with an optional
// argument list. An annotation written without parentheses (@tag) has nil
// Args; one written with an empty argument list (@tag()) has empty, non-nil
// Args.
type Annotation struct {
	Name string
	Args []Literal
}

// HasArgs reports whether a was written with an argument list.
func (a Annotation) HasArgs() bool { return a.Args != nil }

// ESON renders a in source form.
func (a Annotation) ESON() string {
	if a.Args == nil {
		return "@" + a.Name
	}
	return joinValues("@"+a.Name+"(", a.Args, ", ", ")", Literal.ESON)
}

// table is an insertion-ordered map from key names to values.
type table[V Value] struct {
	keys []Key
	vals []V
	pos  map[string]int
}

// Set adds an entry for k with value v, and reports whether k was new.
// If an entry with the same name already exists, its value is replaced by v
// but the original key, its annotations, and its position are kept.
func (t *table[V]) Set(k Key, v V) bool {
	if i, ok := t.pos[k.Name]; ok {
		t.vals[i] = v
		return false
	}
	if t.pos == nil {
		t.pos = make(map[string]int)
	}
	t.pos[k.Name] = len(t.keys)
	t.keys = append(t.keys, k)
	t.vals = append(t.vals, v)
	return true
}

// Get returns the value of the entry with the given name, if present.
func (t *table[V]) Get(name string) (V, bool) {
	_, v, ok := t.Lookup(name)
	return v, ok
}

// Lookup returns the key and value of the entry with the given name.
func (t *table[V]) Lookup(name string) (Key, V, bool) {
	i, ok := t.pos[name]
	if !ok {
		var zero V
		return Key{}, zero, false
	}
	return t.keys[i], t.vals[i], true
}

// Len reports the number of entries.
func (t *table[V]) Len() int { return len(t.keys) }

// Keys returns the keys of the entries in order of first insertion.
func (t *table[V]) Keys() []Key { return slices.Clone(t.keys) }

// All iterates over the entries in order of first insertion.
func (t *table[V]) All() iter.Seq2[Key, V] {
	return func(yield func(Key, V) bool) {
		for i, k := range t.keys {
			if !yield(k, t.vals[i]) {
				return
			}
		}
	}
}

func (t *table[V]) render(open, close string, str func(Key) string, val func(V) string) string {
	var sb strings.Builder
	sb.WriteString(open)
	for i, k := range t.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(str(k))
		sb.WriteString(": ")
		sb.WriteString(val(t.vals[i]))
	}
	sb.WriteString(close)
	return sb.String()
}

// A Dict is a dictionary of key-value entries whose values may contain
// expression literals. Use NewDict to construct one.
type Dict struct{ table[Value] }

// NewDict returns a new empty dictionary.
func NewDict() *Dict { return new(Dict) }

// Equal reports whether d and o have the same key names with equal values,
// regardless of order and annotations.
func (d *Dict) Equal(o *Dict) bool {
	if d == nil || o == nil {
		return d == o
	}
	return tableEqual(&d.table, &o.table)
}

func (d *Dict) ESON() string {
	return d.render("{", "}", Key.ESON, Value.ESON)
}

func (d *Dict) String() string {
	return d.render("Dict({", "})", func(k Key) string { return String(k.Name).ESON() }, Value.String)
}

func (*Dict) isValue() {}

// A LiteralDict is a dictionary whose values are all literals.
// Use NewLiteralDict to construct one.
type LiteralDict struct{ table[Literal] }

// NewLiteralDict returns a new empty literal dictionary.
func NewLiteralDict() *LiteralDict { return new(LiteralDict) }

// Equal reports whether d and o have the same key names with equal values,
// regardless of order and annotations.
func (d *LiteralDict) Equal(o *LiteralDict) bool {
	if d == nil || o == nil {
		return d == o
	}
	return tableEqual(&d.table, &o.table)
}

func (d *LiteralDict) ESON() string {
	return d.render("{", "}", Key.ESON, Literal.ESON)
}

func (d *LiteralDict) String() string {
	return d.render("Dict({", "})", func(k Key) string { return String(k.Name).ESON() }, Literal.String)
}

func (*LiteralDict) isValue()   {}
func (*LiteralDict) isLiteral() {}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i > 0 && c >= '0' && c <= '9') {
			continue
		}
		return false
	}
	return true
}

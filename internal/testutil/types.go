// Package testutil defines support code for unit tests.
package testutil

import (
	"testing"

	"github.com/creachadair/eson"
	"github.com/creachadair/eson/ast"
	"github.com/google/go-cmp/cmp"
)

// MustParse parses text as a complete ESON document, and fails t if it is
// not valid.
func MustParse(t testing.TB, text string) ast.Value {
	t.Helper()
	v, err := eson.Parse(text)
	if err != nil {
		t.Fatalf("Parse %q: unexpected error: %v", text, err)
	}
	return v
}

// EqualValues is a cmp option that compares ESON values structurally, so
// that literal and live forms of the same data compare equal.
var EqualValues = cmp.Comparer(ast.Equal)

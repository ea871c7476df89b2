// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package eson_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/eson"
	"github.com/creachadair/eson/ast"
	"github.com/creachadair/eson/expr"
	"github.com/creachadair/eson/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  string // descriptive form of the value
		rest  string
	}{
		// Numbers
		{"0", "Int(0)", ""},
		{"0b1010", "Int(10)", ""},
		{"0o777", "Int(511)", ""},
		{"0x123", "Int(291)", ""},
		{"0xDEADbeef", "Int(3735928559)", ""},
		{"-42", "Int(-42)", ""},
		{"1.5", "Float(1.5)", ""},
		{"123.456e-10", "Float(1.23456e-08)", ""},
		{"1e3", "Float(1000.0)", ""},
		{"2E+2", "Float(200.0)", ""},
		{"-0.25", "Float(-0.25)", ""},
		{"Infinity", "Float(Infinity)", ""},
		{"-Infinity", "Float(-Infinity)", ""},
		{"NaN", "Float(NaN)", ""},
		{"0x", "Int(0)", "x"},
		{"0b2", "Int(0)", "b2"},
		{"1.", "Int(1)", "."},
		{"1e", "Int(1)", "e"},
		{"9223372036854775807", "Int(9223372036854775807)", ""},
		{"-9223372036854775808", "Int(-9223372036854775808)", ""},

		// Constants
		{"true", "Boolean(true)", ""},
		{"false", "Boolean(false)", ""},
		{"null", "Null", ""},

		// Strings
		{`""`, `Str("")`, ""},
		{`"a\tb"`, `Str("a\tb")`, ""},
		{`"\u{1F600}"`, `Str("😀")`, ""},
		{"\"a\\   \n   b\"", `Str("ab")`, ""},
		{`r"abc"`, `Str("abc")`, ""},
		{`r"a\nb"`, `Str("a\\nb")`, ""},
		{`r#"say "hi""#`, `Str("say \"hi\"")`, ""},
		{`r##"a "# b"##`, `Str("a \"# b")`, ""},
		{`r#"John"##`, `Str("John")`, "#"},
		{`f"plain"`, `Str("plain")`, ""},
		{`f"hello ${name}!"`, `Str("hello Var(name)!")`, ""},
		{`f"${name}"`, `Str("Var(name)")`, ""},
		{`f"${1 + x}\t$5"`, `Str("Val(Int(1)) Plus Var(x)\t$5")`, ""},
		{`f#"quoted "${q}""#`, `Str("quoted \"Var(q)\"")`, ""},

		// Lists
		{"[]", "List([])", ""},
		{"[ ]", "List([])", ""},
		{"[1]", "List([Int(1)])", ""},
		{"[1, 2, 3,]", "List([Int(1), Int(2), Int(3)])", ""},
		{"[1 , 2 ,\n]", "List([Int(1), Int(2)])", ""},
		{`[[], [[]]]`, "List([List([]), List([List([])])])", ""},

		// Dictionaries
		{"{}", "Dict({})", ""},
		{"{a: 1}", `Dict({"a": Int(1)})`, ""},
		{`{a: 1, "b c": [true],}`, `Dict({"a": Int(1), "b c": List([Boolean(true)])})`, ""},
		{"{a: 1, b: 2, a: 3}", `Dict({"a": Int(3), "b": Int(2)})`, ""},
		{`{r"raw": 1, _x9: 2}`, `Dict({"raw": Int(1), "_x9": Int(2)})`, ""},
		{`{true: 1, null: 2}`, `Dict({"true": Int(1), "null": Int(2)})`, ""},
		{`{@a k: 1}`, `Dict({"k": Int(1)})`, ""},

		// Expressions
		{"${x}", "Expr(Var(x))", ""},
		{"${ 1 + 2 }", "Expr(Val(Int(1)) Plus Val(Int(2)))", ""},
		{"${-1}", "Expr(Minus Val(Int(1)))", ""},
		{"${a<=b}", "Expr(Var(a) Le Var(b))", ""},
		{"${!done && ok}", "Expr(Not Var(done) And Var(ok))", ""},
		{"${self.ele}", `Expr(Ref(Curr([Str("ele")])))`, ""},
		{`${super["ele"]}`, `Expr(Ref(Super([Str("ele")])))`, ""},
		{"${$[0]}", "Expr(Ref(Root([Int(0)])))", ""},
		{"${$}", "Expr(Ref(Root([])))", ""},
		{`${$.a["b"][2]}`, `Expr(Ref(Root([Str("a"), Str("b"), Int(2)])))`, ""},
		{"${f()}", "Expr(FnCall(f, []))", ""},
		{"${f(a, b)}", "Expr(FnCall(f, [Var(a), Var(b)]))", ""},
		{"${f(2 * 7)}", "Expr(FnCall(f, [Val(Int(2)) Mul Val(Int(7))]))", ""},
		{"${f (a)}", "Expr(Var(f) Group(Var(a)))", ""},
		{"${(a + b) * c}", "Expr(Group(Var(a) Plus Var(b)) Mul Var(c))", ""},
		{`${[1, "x"]}`, `Expr(Val(List([Int(1), Str("x")])))`, ""},
		{"${truex}", "Expr(Var(truex))", ""},
		{"${selfish}", "Expr(Var(selfish))", ""},
		{"${true}", "Expr(Val(Boolean(true)))", ""},
		{"${ ${x} }", "Expr(Val(Expr(Var(x))))", ""},
		{`${f"${x}"}`, `Expr(Val(Str("Var(x)")))`, ""},
		{"[1, ${f(a, b)}, {x: 2}]",
			`List([Int(1), Expr(FnCall(f, [Var(a), Var(b)])), Dict({"x": Int(2)})])`, ""},

		// Whitespace, comments, and remaining input
		{"  // comment\n  5 // trailing", "Int(5)", " // trailing"},
		{"[ // one\n 1, // two\n 2 // three\n]", "List([Int(1), Int(2)])", ""},
		{"{ // c\n a // c\n : // c\n 1 // c\n , // c\n }", `Dict({"a": Int(1)})`, ""},
		{`"abc" rest`, `Str("abc")`, " rest"},
		{"1 2", "Int(1)", " 2"},
	}
	for _, tc := range tests {
		v, rest, err := eson.ParseValue(tc.input)
		if err != nil {
			t.Errorf("ParseValue(%#q): unexpected error: %v", tc.input, err)
			continue
		}
		if got := v.String(); got != tc.want {
			t.Errorf("ParseValue(%#q):\n got %s\nwant %s", tc.input, got, tc.want)
		}
		if rest != tc.rest {
			t.Errorf("ParseValue(%#q): rest is %#q, want %#q", tc.input, rest, tc.rest)
		}
	}
}

func TestNumberTypes(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Value
	}{
		{"0b1010", ast.Int(10)},
		{"0o777", ast.Int(0o777)},
		{"0x123", ast.Int(0x123)},
		{"123.456e-10", ast.Float(123.456e-10)},
		{"10", ast.Int(10)},
		{"10.0", ast.Float(10)},
		{"1e2", ast.Float(100)},
	}
	for _, tc := range tests {
		got := testutil.MustParse(t, tc.input)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Parse(%#q) (-want, +got):\n%s", tc.input, diff)
		}
	}
}

func TestDict(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		d := testutil.MustParse(t, "{}").(*ast.Dict)
		if d.Len() != 0 {
			t.Errorf("Len: got %d, want 0", d.Len())
		}
	})
	t.Run("TrailingComma", func(t *testing.T) {
		a := testutil.MustParse(t, "{a: 1, b: 2,}")
		b := testutil.MustParse(t, "{a: 1, b: 2}")
		if !ast.Equal(a, b) {
			t.Errorf("Trailing comma changed the value: %s vs. %s", a, b)
		}
	})
	t.Run("Duplicates", func(t *testing.T) {
		d := testutil.MustParse(t, "{@first k: 1, x: 0, @second k: 2}").(*ast.Dict)
		if d.Len() != 2 {
			t.Errorf("Len: got %d, want 2", d.Len())
		}
		key, val, ok := d.Lookup("k")
		if !ok {
			t.Fatal(`Lookup("k") failed`)
		}
		if diff := cmp.Diff(ast.Value(ast.Int(2)), val); diff != "" {
			t.Errorf("Value (-want, +got):\n%s", diff)
		}
		// The first key is kept along with its annotations.
		if diff := cmp.Diff([]ast.Annotation{{Name: "first"}}, key.Annotations); diff != "" {
			t.Errorf("Annotations (-want, +got):\n%s", diff)
		}
		var names []string
		for k := range d.All() {
			names = append(names, k.Name)
		}
		if diff := cmp.Diff([]string{"k", "x"}, names); diff != "" {
			t.Errorf("Key order (-want, +got):\n%s", diff)
		}
	})
	t.Run("OrderInsensitive", func(t *testing.T) {
		a := testutil.MustParse(t, "{a: 1, b: [2]}")
		b := testutil.MustParse(t, "{@x b: [2], a: 1}")
		if diff := cmp.Diff(a, b); diff != "" {
			t.Errorf("Dicts differ (-a, +b):\n%s", diff)
		}
		c := testutil.MustParse(t, "{a: 1, b: [3]}")
		if ast.Equal(a, c) {
			t.Errorf("Dicts %s and %s should differ", a, c)
		}
	})
}

func TestAnnotations(t *testing.T) {
	d := testutil.MustParse(t, `{
  @a @b() @c(1, "x", [true])
  k: 1,
  @note r"raw" : 2,
  @tag
  plain: 3,
  bare: 4,
}`).(*ast.Dict)

	tests := []struct {
		key  string
		want []ast.Annotation
	}{
		{"k", []ast.Annotation{
			{Name: "a"},
			{Name: "b", Args: []ast.Literal{}},
			{Name: "c", Args: []ast.Literal{ast.Int(1), ast.String("x"), ast.LiteralList{ast.Bool(true)}}},
		}},
		{"raw", []ast.Annotation{{Name: "note"}}},
		{"plain", []ast.Annotation{{Name: "tag"}}},
		{"bare", nil},
	}
	for _, tc := range tests {
		key, _, ok := d.Lookup(tc.key)
		if !ok {
			t.Errorf("Key %q not found", tc.key)
			continue
		}
		if diff := cmp.Diff(tc.want, key.Annotations); diff != "" {
			t.Errorf("Key %q annotations (-want, +got):\n%s", tc.key, diff)
		}
	}

	key, _, _ := d.Lookup("k")
	if a, ok := key.Annotation("b"); !ok || !a.HasArgs() {
		t.Errorf("Annotation b: got %+v, %v; want empty arguments", a, ok)
	}
	if a, ok := key.Annotation("a"); !ok || a.HasArgs() {
		t.Errorf("Annotation a: got %+v, %v; want no arguments", a, ok)
	}
	if got, want := key.ESON(), `@a @b() @c(1, "x", [true]) k`; got != want {
		t.Errorf("Key ESON: got %#q, want %#q", got, want)
	}
}

func TestExprTree(t *testing.T) {
	val := func(z int64) ast.Node { return ast.Primary{Token: ast.Val{Value: ast.Int(z)}} }
	tests := []struct {
		input string
		want  ast.Node
	}{
		{"${1 + 2 * 3}", ast.Infix{
			Op: ast.Plus,
			X:  val(1),
			Y:  ast.Infix{Op: ast.Mul, X: val(2), Y: val(3)},
		}},
		{"${1 * 2 + 3}", ast.Infix{
			Op: ast.Plus,
			X:  ast.Infix{Op: ast.Mul, X: val(1), Y: val(2)},
			Y:  val(3),
		}},
		{"${1 - 2 - 3}", ast.Infix{
			Op: ast.Minus,
			X:  ast.Infix{Op: ast.Minus, X: val(1), Y: val(2)},
			Y:  val(3),
		}},
		{"${-1 * 2}", ast.Infix{
			Op: ast.Mul,
			X:  ast.Prefix{Op: ast.Minus, X: val(1)},
			Y:  val(2),
		}},
		{"${a || b && c == d}", ast.Infix{
			Op: ast.Or,
			X:  ast.Primary{Token: ast.Var("a")},
			Y: ast.Infix{
				Op: ast.And,
				X:  ast.Primary{Token: ast.Var("b")},
				Y: ast.Infix{
					Op: ast.Eq,
					X:  ast.Primary{Token: ast.Var("c")},
					Y:  ast.Primary{Token: ast.Var("d")},
				},
			},
		}},
		{"${self.x}", ast.Primary{Token: ast.Ref{
			Pronoun: ast.Curr, Path: []ast.RefIndex{ast.RefStr("x")},
		}}},
		{`${super["ele"]}`, ast.Primary{Token: ast.Ref{
			Pronoun: ast.Super, Path: []ast.RefIndex{ast.RefStr("ele")},
		}}},
		{"${$[0]}", ast.Primary{Token: ast.Ref{
			Pronoun: ast.Root, Path: []ast.RefIndex{ast.RefInt(0)},
		}}},
		{"${x $.y}", ast.Postfix{
			Op: ast.Ref{Pronoun: ast.Root, Path: []ast.RefIndex{ast.RefStr("y")}},
			X:  ast.Primary{Token: ast.Var("x")},
		}},
	}
	for _, tc := range tests {
		v := testutil.MustParse(t, tc.input)
		e, ok := v.(ast.Expr)
		if !ok {
			t.Fatalf("Parse(%#q): got %T, want expression", tc.input, v)
		}
		if diff := cmp.Diff(tc.want, e.Tree); diff != "" {
			t.Errorf("Parse(%#q) tree (-want, +got):\n%s", tc.input, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input   string
		want    string   // substring of the error message
		context []string // if non-nil, the expected error context
		target  error    // if non-nil, the error must wrap this
	}{
		{"", "expected value, found end of input", nil, nil},
		{"   // nothing", "expected value", nil, nil},
		{"?", `expected value, found '?'`, nil, nil},
		{"ture", `did you mean "true"`, nil, nil},
		{"nul", `did you mean "null"`, nil, nil},
		{"-Infinty", `did you mean "-Infinity"`, nil, nil},
		{"nullable", "expected value, found 'n'", nil, nil},

		{"[1, 2", `expected "," or "]"`, []string{"list"}, nil},
		{"[1 2]", `expected "," or "]", found '2'`, []string{"list"}, nil},
		{"[,]", `expected "]", found ','`, []string{"list"}, nil},
		{"[1,,]", `found ','`, []string{"list"}, nil},
		{"{a 1}", `expected ":", found '1'`, []string{"dict", "entry"}, nil},
		{"{a: }", "expected value", []string{"dict", `entry "a"`}, nil},
		{"{a: 1 b: 2}", `expected "," or "}"`, []string{"dict"}, nil},
		{"{1: 2}", `expected "}", found '1'`, []string{"dict"}, nil},
		{"{@a}", "expected key after annotations", []string{"dict", "key"}, nil},
		{"{@tag\n(1) k: 1}", "expected key after annotations, found '('", []string{"dict", "key"}, nil},
		{"{@ a: 1}", "expected identifier", []string{"dict", "key", "annotation"}, nil},
		{"{@a(1 a: 1}", `expected "," or ")"`, []string{"dict", "key", "annotation"}, nil},
		{"{@a(${x}) k: 1}", "expressions are not allowed", nil, eson.ErrNotAllowed},

		{`"abc`, "unterminated string", []string{"string"}, nil},
		{`"a\qb"`, "invalid escape", []string{"string"}, nil},
		{`r##"John"#`, `unterminated raw string, want closing "##`, []string{"string"}, nil},
		{`f"${}"`, "", []string{"format_string", "expr"}, nil},

		{"99999999999999999999", "out of range", nil, eson.ErrOverflow},
		{"-99999999999999999999", "out of range", nil, eson.ErrOverflow},
		{"0x1FFFFFFFFFFFFFFFF", "out of range", nil, eson.ErrOverflow},
		{"1e400", "out of range", nil, eson.ErrOverflow},
		{"${$[70000]}", "out of range", nil, eson.ErrOverflow},

		{"${}", "", []string{"expr"}, nil},
		{"${ 1 + }", "unexpected end of expression", []string{"expr"}, nil},
		{"${ * 1 }", "cannot begin an expression", []string{"expr"}, nil},
		{"${ 1 ^ 2 }", "no defined precedence", []string{"expr"}, nil},
		{"${ 1 2 }", "unexpected Val(Int(2))", []string{"expr"}, nil},
		{"${ f(a, ) }", "", []string{"expr", "fn_call"}, nil},
		{"${ f(a b }", `expected "," or ")"`, []string{"expr", "fn_call"}, nil},
		{"${ (a }", `expected ")"`, []string{"expr", "group"}, nil},
		{"${ (a +) }", "in group", []string{"expr"}, nil},
		{"${ a // no comments\n }", "cannot begin an expression", []string{"expr"}, nil},
		{"${ a", `expected "}", found end of input`, []string{"expr"}, nil},

		{"[1] 2", "unexpected '2' after value", nil, eson.ErrExtraInput},
		{strings.Repeat("[", 1000), "nesting exceeds 512 levels", nil, eson.ErrTooDeep},
	}
	for _, tc := range tests {
		_, err := eson.Parse(tc.input)
		if err == nil {
			t.Errorf("Parse(%#q): got nil error, want %q", tc.input, tc.want)
			continue
		}
		var se *eson.SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Parse(%#q): got %T, want *SyntaxError", tc.input, err)
			continue
		}
		if !strings.Contains(se.Message, tc.want) {
			t.Errorf("Parse(%#q): got %q, want %q", tc.input, se.Message, tc.want)
		}
		if tc.context != nil {
			if diff := cmp.Diff(tc.context, se.Context); diff != "" {
				t.Errorf("Parse(%#q) context (-want, +got):\n%s", tc.input, diff)
			}
		}
		if tc.target != nil && !errors.Is(err, tc.target) {
			t.Errorf("Parse(%#q): got %v, want %v", tc.input, err, tc.target)
		}
		t.Logf("Parse(%#q): %v", tc.input, err)
	}
}

func TestErrorLocation(t *testing.T) {
	const input = "{\n  a: 1,\n  b: ?\n}"
	_, err := eson.Parse(input)
	var se *eson.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("Parse: got %v, want *SyntaxError", err)
	}
	if got, want := se.Location.First, (eson.LineCol{Line: 3, Column: 5}); got != want {
		t.Errorf("Location: got %v, want %v", got, want)
	}
	if got, want := se.Offset(), 15; got != want {
		t.Errorf("Offset: got %d, want %d", got, want)
	}
	if !se.Committed {
		t.Error("Error is not committed")
	}
	if got, want := err.Error(), `at 3:5: dict: entry "b": expected value, found '?'`; got != want {
		t.Errorf("Error:\n got %s\nwant %s", got, want)
	}
}

func TestExprErrorLocation(t *testing.T) {
	tests := []struct {
		input  string
		offset int
	}{
		{"{key: ${ a + b c }}", 15}, // the extra operand
		{"${ * 1 }", 3},             // the leading operator
		{"${ 1 + }", 7},             // the closing brace
		{"${ f(a) (b +) }", 8},      // the malformed group
	}
	for _, tc := range tests {
		_, err := eson.Parse(tc.input)
		var se *eson.SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Parse %#q: got %v, want *SyntaxError", tc.input, err)
			continue
		}
		var xe *expr.StructureError
		if !errors.As(err, &xe) {
			t.Errorf("Parse %#q: got %v, want *expr.StructureError", tc.input, err)
		}
		if got := se.Offset(); got != tc.offset {
			t.Errorf("Parse %#q: error offset is %d, want %d (%v)", tc.input, got, tc.offset, err)
		}
	}
}

func TestExtraInput(t *testing.T) {
	v, err := eson.Parse("[1] [2]")
	if !errors.Is(err, eson.ErrExtraInput) {
		t.Fatalf("Parse: got %v, want %v", err, eson.ErrExtraInput)
	}
	if diff := cmp.Diff(ast.Value(ast.List{ast.Int(1)}), v); diff != "" {
		t.Errorf("Value (-want, +got):\n%s", diff)
	}

	// Trailing whitespace and comments are not extra.
	if _, err := eson.Parse("[1]  // done\n\n"); err != nil {
		t.Errorf("Parse: unexpected error: %v", err)
	}
}

func TestParserSettings(t *testing.T) {
	t.Run("MaxDepth", func(t *testing.T) {
		p := eson.NewParser().MaxDepth(3)
		if _, err := p.Parse("[[[1]]]"); err != nil {
			t.Errorf("Parse: unexpected error: %v", err)
		}
		for _, input := range []string{"[[[[1]]]]", "[{a: [{}]}]", "[[${(x)}]]", "[[${f(1)}]]"} {
			if _, err := p.Parse(input); !errors.Is(err, eson.ErrTooDeep) {
				t.Errorf("Parse(%#q): got %v, want %v", input, err, eson.ErrTooDeep)
			}
		}
	})
	t.Run("NoExpressions", func(t *testing.T) {
		p := eson.NewParser().AllowExpressions(false)
		if _, err := p.Parse(`{a: [1, "two", r"three"]}`); err != nil {
			t.Errorf("Parse: unexpected error: %v", err)
		}
		for _, input := range []string{"${x}", `[f"a"]`, `{k: ${1}}`} {
			if _, err := p.Parse(input); !errors.Is(err, eson.ErrNotAllowed) {
				t.Errorf("Parse(%#q): got %v, want %v", input, err, eson.ErrNotAllowed)
			}
		}
	})
	t.Run("ZeroValue", func(t *testing.T) {
		var p eson.Parser
		if _, err := p.Parse(strings.Repeat("[", 100) + strings.Repeat("]", 100)); err != nil {
			t.Errorf("Parse: unexpected error: %v", err)
		}
	})
}

func TestParseLiteral(t *testing.T) {
	v, err := eson.ParseLiteral(`{a: [1, {b: "c"}], d: null}`)
	if err != nil {
		t.Fatalf("ParseLiteral: unexpected error: %v", err)
	}
	d, ok := v.(*ast.LiteralDict)
	if !ok {
		t.Fatalf("ParseLiteral: got %T, want *ast.LiteralDict", v)
	}
	a, _ := d.Get("a")
	if _, ok := a.(ast.LiteralList); !ok {
		t.Errorf("Element a: got %T, want ast.LiteralList", a)
	}
	if !ast.Equal(v, eson.MustParse(`{a: [1, {b: "c"}], d: null}`)) {
		t.Errorf("Literal and live values differ")
	}

	for _, input := range []string{"${x}", `f"x"`, "[1, ${x}]", "{a: ${x}}"} {
		if _, err := eson.ParseLiteral(input); err == nil {
			t.Errorf("ParseLiteral(%#q): got nil error", input)
		}
	}

	lit, rest, err := eson.ParseLiteralValue("[1, 2] tail")
	if err != nil {
		t.Fatalf("ParseLiteralValue: unexpected error: %v", err)
	}
	if got := lit.String(); got != "List([Int(1), Int(2)])" || rest != " tail" {
		t.Errorf("ParseLiteralValue: got %s, %#q", got, rest)
	}
}

func TestParseReader(t *testing.T) {
	v, err := eson.ParseReader(strings.NewReader("// config\n{port: 0x1F90}\n"))
	if err != nil {
		t.Fatalf("ParseReader: unexpected error: %v", err)
	}
	port, _ := v.(*ast.Dict).Get("port")
	if diff := cmp.Diff(ast.Value(ast.Int(8080)), port); diff != "" {
		t.Errorf("Port (-want, +got):\n%s", diff)
	}
}

func TestParseReference(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Ref
		fail  bool
	}{
		{"self", ast.Ref{Pronoun: ast.Curr}, false},
		{" super.a ", ast.Ref{Pronoun: ast.Super, Path: []ast.RefIndex{ast.RefStr("a")}}, false},
		{`$["a b"][3].c`, ast.Ref{Pronoun: ast.Root, Path: []ast.RefIndex{
			ast.RefStr("a b"), ast.RefInt(3), ast.RefStr("c"),
		}}, false},
		{"$ . a [ 0 ]", ast.Ref{Pronoun: ast.Root, Path: []ast.RefIndex{ast.RefStr("a"), ast.RefInt(0)}}, false},
		{"this.a", ast.Ref{}, true},
		{"self.", ast.Ref{}, true},
		{"$[32768]", ast.Ref{}, true},
	}
	for _, tc := range tests {
		got, err := eson.ParseReference(tc.input)
		if err != nil {
			if !tc.fail {
				t.Errorf("ParseReference(%#q): unexpected error: %v", tc.input, err)
			}
			continue
		} else if tc.fail {
			t.Errorf("ParseReference(%#q): got %v, want error", tc.input, got)
			continue
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("ParseReference(%#q) (-want, +got):\n%s", tc.input, diff)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []string{
		`null`, `true`, `-17`, `0.5`, `1e300`, `Infinity`, `-Infinity`, `NaN`,
		`{a: NaN, b: [NaN, 1]}`,
		`"tab\tquote\"nul\u0000 😀"`,
		`r#"raw "text""#`,
		`[1, [2, [3, []]], {}]`,
		`{a: 1, "b c": "d", @x @y() @z(1, "two", [3]) e: {f: null}}`,
		`${1 + 2 * -x}`,
		`${f(a, b + 1, g()) && !$.list[0] || super["k v"].w}`,
		`${(a + b) * c}`,
		`${ {k: [1, 2]} }`,
		`[${x}, ${y == "z"}]`,
	}
	for _, input := range tests {
		v := testutil.MustParse(t, input)
		src := v.ESON()
		w, err := eson.Parse(src)
		if err != nil {
			t.Errorf("Reparse %#q: unexpected error: %v\nfrom: %#q", src, err, input)
			continue
		}
		if !ast.Equal(v, w) {
			t.Errorf("Round trip %#q:\n got %s\nwant %s", input, w, v)
		}
		if e, ok := v.(ast.Expr); ok {
			if diff := cmp.Diff(e.Tree, w.(ast.Expr).Tree); diff != "" {
				t.Errorf("Round trip %#q tree (-want, +got):\n%s", input, diff)
			}
		}
	}
}

func TestCalls(t *testing.T) {
	e := testutil.MustParse(t, "${ f(g(x), (h(1))) + y }").(ast.Expr)
	calls, err := expr.Calls(e.Tree)
	if err != nil {
		t.Fatalf("Calls: unexpected error: %v", err)
	}
	var names []string
	for _, c := range calls {
		names = append(names, c.Name)
	}
	if diff := cmp.Diff([]string{"f", "g", "h"}, names); diff != "" {
		t.Errorf("Calls (-want, +got):\n%s", diff)
	}

	// Expressions nested in operand values are included.
	e = testutil.MustParse(t, "${ f([${g(y)}], {k: ${h(z)}}) }").(ast.Expr)
	calls, err = expr.Calls(e.Tree)
	if err != nil {
		t.Fatalf("Calls: unexpected error: %v", err)
	}
	names = nil
	for _, c := range calls {
		names = append(names, c.Name)
	}
	if diff := cmp.Diff([]string{"f", "g", "h"}, names); diff != "" {
		t.Errorf("Nested calls (-want, +got):\n%s", diff)
	}
	vars, err := expr.Vars(e.Tree)
	if err != nil {
		t.Fatalf("Vars: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"y", "z"}, vars); diff != "" {
		t.Errorf("Nested vars (-want, +got):\n%s", diff)
	}
}

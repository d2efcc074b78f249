package parser

import (
	stderrors "errors"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/lazyc/ast"
	"github.com/pontaoski/lazyc/config"
	"github.com/pontaoski/lazyc/errors"
	"github.com/pontaoski/lazyc/memory"
	"github.com/pontaoski/lazyc/types"
)

func parse(t *testing.T, src string) []ast.Func {
	t.Helper()
	funcs, err := parseWith(config.Default(), src)
	if err != nil {
		t.Fatalf("parsing %q: %v", src, err)
	}
	return funcs
}

func parseWith(c config.Capacity, src string) ([]ast.Func, error) {
	return ParseSource(types.NewSource("test", []byte(src)), memory.New(c))
}

func TestParseLiteralBody(t *testing.T) {
	funcs := parse(t, "main { 1234 }")
	if len(funcs) != 1 {
		t.Fatalf("got %d funcs", len(funcs))
	}
	f := funcs[0]
	if f.Kind != ast.NAMED || f.Name != "main" {
		t.Fatalf("got %s", f.Ident())
	}
	if f.Args.First != nil || f.Args.Last != nil {
		t.Fatalf("main has args %v", f.Args.Slice())
	}
	if f.Expr.Kind != ast.U32 || f.Expr.U32 != 1234 {
		t.Fatalf("body %s", repr.String(f.Expr))
	}
}

func TestParseProgram(t *testing.T) {
	funcs := parse(t, "# ...\n"+
		"f x { x }\n"+
		"g a b c { (a - b) + c }\n"+
		"h { pack 1 0 } # ?!")
	if len(funcs) != 3 {
		t.Fatalf("got %d funcs", len(funcs))
	}

	f := funcs[0]
	if f.Name != "f" || f.Args.First.Value != "x" || f.Args.First.Next != nil || f.Args.Last.Value != "x" {
		t.Fatalf("f = %s", f)
	}

	g := funcs[1]
	if g.Name != "g" || repr.String(g.Args.Slice()) != repr.String([]string{"a", "b", "c"}) {
		t.Fatalf("g = %s", g)
	}
	e := g.Expr
	if e.Kind != ast.APP || e.App[0].Kind != ast.APP {
		t.Fatalf("g body %s", ast.FormatExpr(e))
	}
	if plus := e.App[0].App[0]; plus.Kind != ast.BINOP || plus.BinOp != ast.ADD {
		t.Fatalf("outer operator %s", ast.FormatExpr(plus))
	}
	minus := e.App[0].App[1]
	if minus.Kind != ast.APP || minus.App[0].Kind != ast.APP {
		t.Fatalf("left operand %s", ast.FormatExpr(minus))
	}
	if op := minus.App[0].App[0]; op.Kind != ast.BINOP || op.BinOp != ast.SUB {
		t.Fatalf("inner operator %s", ast.FormatExpr(op))
	}
	if a := minus.App[0].App[1]; a.Kind != ast.VAR || a.Var != "a" {
		t.Fatalf("a = %s", ast.FormatExpr(a))
	}
	if b := minus.App[1]; b.Kind != ast.VAR || b.Var != "b" {
		t.Fatalf("b = %s", ast.FormatExpr(b))
	}
	if c := e.App[1]; c.Kind != ast.VAR || c.Var != "c" {
		t.Fatalf("c = %s", ast.FormatExpr(c))
	}

	h := funcs[2]
	if h.Name != "h" || !h.Args.Empty() {
		t.Fatalf("h = %s", h)
	}
	if h.Expr.Kind != ast.PACK || h.Expr.Pack != (ast.Pack{Tag: 1, Arity: 0}) {
		t.Fatalf("h body %s", repr.String(h.Expr))
	}
}

func TestParseShapes(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"a * b * c", "a * (b * c)"},
		{"a + b + c", "a + (b + c)"},
		{"a - b * c", "a - (b * c)"},
		{"a * b / c", "a * (b / c)"},
		{"a & b | c", "(a & b) | c"},
		{"a | b & c | d", "a | ((b & c) | d)"},
		{"a < b + 1 & c", "(a < (b + 1)) & c"},
		{"a != b", "a != b"},
		{"f x y + 1", "(f x y) + 1"},
		{"f (g x) y", "f (g x) y"},
		{"pack 2 1 x", "pack 2 1 x"},
		{"undef", "undef"},
		{"((x))", "x"},
		{"let { x = 1; y = x } x + y", "let { x = 1; y = x } x + y"},
		{"letrec { xs = cons 1 xs } xs", "letrec { xs = cons 1 xs } xs"},
		{"unpack p { 0 = undef; 1 a b = a * b }", "unpack p { 0 = undef; 1 a b = a * b }"},
		{"f (let { x = 1 } x) 2", "f (let { x = 1 } x) 2"},
	}
	for _, test := range tests {
		src := "main { " + test.body + " }"
		funcs := parse(t, src)
		if got := ast.FormatExpr(funcs[0].Expr); got != test.want {
			t.Errorf("%q parsed as %q, want %q", test.body, got, test.want)
		}
	}
}

func TestParseLetAndUnpack(t *testing.T) {
	funcs := parse(t, "f p { letrec { a = 1; b = a } unpack p { 3 x y = x; 4 = b } }")
	e := funcs[0].Expr
	if e.Kind != ast.LETREC {
		t.Fatalf("got %s", e.Kind)
	}
	var names []string
	for b := range e.Let.Bindings.All() {
		names = append(names, b.Name)
	}
	if repr.String(names) != repr.String([]string{"a", "b"}) {
		t.Fatalf("bindings %v", names)
	}
	u := e.Let.Expr
	if u.Kind != ast.UNPACK || u.Unpack.Expr.Var != "p" {
		t.Fatalf("body %s", ast.FormatExpr(u))
	}
	branches := u.Unpack.Branches.Slice()
	if len(branches) != 2 || branches[0].Tag != 3 || branches[1].Tag != 4 {
		t.Fatalf("branches %s", repr.String(branches))
	}
	if repr.String(branches[0].Args.Slice()) != repr.String([]string{"x", "y"}) || !branches[1].Args.Empty() {
		t.Fatalf("branch args %s", repr.String(branches))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src   string
		check func(error) bool
	}{
		{"", isEmptyProgram},
		{"# nothing", isEmptyProgram},
		{"main { a / b / c }", expected(types.RBRACE, types.DIV)},
		{"main { a - b - c }", expected(types.RBRACE, types.SUB)},
		{"main { a < b < c }", expected(types.RBRACE, types.LT)},
		{"main { a / b * c }", expected(types.RBRACE, types.MUL)},
		{"main { 1", expected(types.RBRACE, types.EOF)},
		{"main 1 { 1 }", expected(types.LBRACE, types.U32)},
		{"{ 1 }", expected(types.VAR, types.LBRACE)},
		{"main { (a }", expected(types.RPAREN, types.RBRACE)},
		{"main { let let { x = 1 } x }", expected(types.LBRACE, types.LET)},
		{"main { let { x = 1; } x }", expected(types.VAR, types.RBRACE)},
		{"main { let { x 1 } x }", expected(types.ASSIGN, types.U32)},
		{"main { unpack p { 1 = 2 { }", func(err error) bool {
			var e errors.ExpectedOneOfKindGotKind
			return stderrors.As(err, &e) && e.Got == types.LBRACE
		}},
		{"main { let { x = 1 ) } x }", func(err error) bool {
			var e errors.ExpectedOneOfKindGotKind
			return stderrors.As(err, &e) && e.Got == types.RPAREN && len(e.Expected) == 2
		}},
		{"main { }", isExpectedExpression(types.RBRACE)},
		{"main { negate 1 }", isExpectedExpression(types.NEGATE)},
		{"main { if a }", isExpectedExpression(types.IF)},
		{"main { a + }", isExpectedExpression(types.RBRACE)},
		{"main { pack 256 0 }", isByteRange("pack tag", 256)},
		{"main { pack 0 300 }", isByteRange("pack arity", 300)},
		{"main { pack x 0 }", expected(types.U32, types.VAR)},
		{"main { unpack p { 1000 = 1 } }", isByteRange("branch tag", 1000)},
		{"main { 1 ! 2 }", func(err error) bool {
			var e errors.UnterminatedNotEqual
			return stderrors.As(err, &e)
		}},
	}
	for _, test := range tests {
		_, err := parseWith(config.Default(), test.src)
		if err == nil {
			t.Errorf("%q: expected an error", test.src)
			continue
		}
		if !test.check(errors.Cause(err)) {
			t.Errorf("%q: unexpected error %v", test.src, err)
		}
	}
}

func isEmptyProgram(err error) bool {
	var e errors.EmptyProgram
	return stderrors.As(err, &e) && e.Filename == "test"
}

func expected(want, got types.TokenKind) func(error) bool {
	return func(err error) bool {
		var e errors.ExpectedKindGotKind
		return stderrors.As(err, &e) && e.Expected == want && e.Got == got
	}
}

func isExpectedExpression(got types.TokenKind) func(error) bool {
	return func(err error) bool {
		var e errors.ExpectedExpression
		return stderrors.As(err, &e) && e.Got == got
	}
}

func isByteRange(what string, value uint32) func(error) bool {
	return func(err error) bool {
		var e errors.ByteRangeExceeded
		return stderrors.As(err, &e) && e.What == what && e.Value == value
	}
}

func TestParseErrorLocation(t *testing.T) {
	_, err := parseWith(config.Default(), "f { 1 }\ng { x y ) }")
	var e errors.ExpectedKindGotKind
	if !stderrors.As(errors.Cause(err), &e) {
		t.Fatalf("got %v", err)
	}
	if e.Location.Line != 2 || e.Location.Column != 9 || e.Location.Filename != "test" {
		t.Fatalf("location %s", e.Location)
	}
}

func TestParseCapacity(t *testing.T) {
	tests := []struct {
		edit func(*config.Capacity)
		src  string
		what string
	}{
		{func(c *config.Capacity) { c.Exprs = 2 }, "main { f x }", "exprs"},
		{func(c *config.Capacity) { c.Funcs = 1 }, "a { 1 } b { 2 }", "funcs"},
		{func(c *config.Capacity) { c.Strings = 1 }, "f x y { x }", "strings"},
		{func(c *config.Capacity) { c.Bindings = 1 }, "f { let { x = 1; y = 2 } x }", "bindings"},
		{func(c *config.Capacity) { c.Branches = 1 }, "f p { unpack p { 0 = 1; 1 = 2 } }", "branches"},
	}
	for _, test := range tests {
		c := config.Default()
		test.edit(&c)
		_, err := parseWith(c, test.src)
		var e errors.CapacityExceeded
		if !stderrors.As(errors.Cause(err), &e) || e.What != test.what {
			t.Errorf("%q: got %v, want %s exhausted", test.src, err, test.what)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	sources := []string{
		"f x { x }\ng a b c { (a - b) + c }\nh { pack 1 0 }",
		"main { f (a * b * c) (d / e) (x < y) (p & q | r) }",
		"k xs { letrec { go = f go; n = 0 } unpack xs { 0 = n; 1 y ys = y + go ys } }",
		"m { unpack (let { a = pack 1 2 } a) { 1 l r = l } }",
		"n { (unpack p { 0 = 1 }) + (let { z = 2 } z) }",
		"o { pack 3 0 (pack 1 1 undef) 4 }",
	}
	for _, src := range sources {
		first := parse(t, src)
		text := ast.Format(first)
		second := parse(t, text)
		if len(first) != len(second) {
			t.Fatalf("%q formatted as %q: %d funcs became %d", src, text, len(first), len(second))
		}
		for i := range first {
			if !ast.EqualFunc(&first[i], &second[i]) {
				t.Fatalf("%q formatted as %q: %s became %s", src, text, first[i], second[i])
			}
		}
	}
}

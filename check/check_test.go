package check

import (
	"testing"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/lazyc/config"
	"github.com/pontaoski/lazyc/memory"
	"github.com/pontaoski/lazyc/parser"
	"github.com/pontaoski/lazyc/types"
)

func diagnose(t *testing.T, src string) []string {
	t.Helper()
	funcs, err := parser.ParseSource(types.NewSource("test", []byte(src)), memory.New(config.Default()))
	if err != nil {
		t.Fatalf("parsing %q: %v", src, err)
	}
	var out []string
	for _, d := range Program(funcs) {
		out = append(out, d.String())
	}
	return out
}

func TestProgram(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"main { f 1 } f x { x }", nil},
		{"main { y }", []string{"main: unbound variable y"}},
		{"main { y + y }", []string{"main: unbound variable y"}},
		{"f { 1 } f { 2 }", []string{"f: defined more than once"}},
		{"f x x { x }", []string{"f: parameter x repeated"}},
		{"f { let { a = b; b = 1 } a }", []string{"f: unbound variable b"}},
		{"f { letrec { a = b; b = a } a }", nil},
		{"f { let { a = 1; a = 2 } a }", []string{"f: a bound twice in one let"}},
		{"f { let { a = 1 } b }", []string{"f: unbound variable b"}},
		{"f p { unpack p { 0 = x; 1 x = x } }", []string{"f: unbound variable x"}},
		{"f p { unpack p { 1 = 0; 1 = 1 } }", []string{"f: branch tag 1 repeated"}},
		{"f p { unpack p { 0 a b = a + b } }", nil},
	}
	for _, test := range tests {
		got := diagnose(t, test.src)
		if repr.String(got) != repr.String(test.want) {
			t.Errorf("%q: got %s, want %s", test.src, repr.String(got), repr.String(test.want))
		}
	}
}

func TestGlobals(t *testing.T) {
	funcs, err := parser.ParseSource(types.NewSource("test", []byte("a { 1 } b x { x } a { 2 }")), memory.New(config.Default()))
	if err != nil {
		t.Fatal(err)
	}
	globals := Globals(funcs)
	if globals.Len() != 2 {
		t.Fatalf("len %d", globals.Len())
	}
	a, ok := globals.Lookup("a")
	if !ok || a.Expr.U32 != 1 {
		t.Fatalf("a = %v", a)
	}
	if _, ok := globals.Lookup("c"); ok {
		t.Fatal("found c")
	}
}

package manifest

import (
	"strings"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/lazyc/config"
	"github.com/pontaoski/lazyc/memory"
	"github.com/pontaoski/lazyc/parser"
	"github.com/pontaoski/lazyc/types"
)

func build(t *testing.T, src string) Manifest {
	t.Helper()
	funcs, err := parser.ParseSource(types.NewSource("test", []byte(src)), memory.New(config.Default()))
	if err != nil {
		t.Fatal(err)
	}
	m, err := New("demo", funcs)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestNew(t *testing.T) {
	m := build(t, "main { k 1 2 } k a b { a }")
	want := Manifest{Package: "demo", Globals: []Global{{"main", 0}, {"k", 2}}}
	if repr.String(m) != repr.String(want) {
		t.Fatalf("got %s", repr.String(m))
	}
}

func TestModuleEmbedsManifest(t *testing.T) {
	m := build(t, "main { k 1 2 } k a b { a }")
	mod, err := m.Module()
	if err != nil {
		t.Fatal(err)
	}
	text := mod.String()
	for _, want := range []string{"@" + Symbol, "@" + AritySymbol, "[2 x i8]", "main"} {
		if !strings.Contains(text, want) {
			t.Errorf("module lacks %q:\n%s", want, text)
		}
	}
}

func TestParse(t *testing.T) {
	got, err := Parse(`{"package":"p","globals":[{"name":"f","arity":3}]}`)
	if err != nil {
		t.Fatal(err)
	}
	if got.Package != "p" || len(got.Globals) != 1 || got.Globals[0] != (Global{"f", 3}) {
		t.Fatalf("got %s", repr.String(got))
	}
	if _, err := Parse("{"); err == nil {
		t.Fatal("accepted truncated JSON")
	}
}

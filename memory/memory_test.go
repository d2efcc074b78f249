package memory

import (
	"testing"
	"unsafe"

	"github.com/pontaoski/lazyc/ast"
	"github.com/pontaoski/lazyc/config"
)

func TestIntern(t *testing.T) {
	m := New(config.Default())
	a := m.Intern([]byte("fold"))
	b := m.Intern([]byte("fold"))
	if a != "fold" || unsafe.StringData(a) != unsafe.StringData(b) {
		t.Fatalf("interned copies differ: %q %q", a, b)
	}
	if m.Symbols.Len() != 1 {
		t.Fatalf("symbols len %d", m.Symbols.Len())
	}
}

func TestResetAST(t *testing.T) {
	m := New(config.Default())
	m.Intern([]byte("x"))
	m.Exprs.Alloc()
	m.Funcs.AllocValue(ast.Func{Name: "x"})
	m.ResetAST()

	for _, u := range m.Usage() {
		want := 0
		if u.Name == "symbols" {
			want = 1
		}
		if u.Len != want {
			t.Errorf("%s: len %d, want %d", u.Name, u.Len, want)
		}
		if u.Cap == 0 {
			t.Errorf("%s: zero capacity", u.Name)
		}
	}
}

// Package memory bundles every arena and the symbol table one parse writes
// into. A Memory is owned by a single caller; nothing in it is safe for
// concurrent use.
package memory

import (
	"github.com/pontaoski/lazyc/arena"
	"github.com/pontaoski/lazyc/ast"
	"github.com/pontaoski/lazyc/config"
	"github.com/pontaoski/lazyc/list"
	"github.com/pontaoski/lazyc/table"
	"github.com/pontaoski/lazyc/types"
)

type Memory struct {
	Tokens   *arena.Arena[types.Token]
	Symbols  *table.Table[string]
	Strings  *arena.Arena[list.Node[string]]
	Bindings *arena.Arena[list.Node[ast.Binding]]
	Branches *arena.Arena[list.Node[ast.Branch]]
	Exprs    *arena.Arena[ast.Expr]
	Funcs    *arena.Arena[ast.Func]
}

func New(c config.Capacity) *Memory {
	return &Memory{
		Tokens:   arena.New[types.Token]("tokens", c.Tokens),
		Symbols:  table.New[string](c.Symbols),
		Strings:  arena.New[list.Node[string]]("strings", c.Strings),
		Bindings: arena.New[list.Node[ast.Binding]]("bindings", c.Bindings),
		Branches: arena.New[list.Node[ast.Branch]]("branches", c.Branches),
		Exprs:    arena.New[ast.Expr]("exprs", c.Exprs),
		Funcs:    arena.New[ast.Func]("funcs", c.Funcs),
	}
}

// Intern returns the canonical copy of text, adding it on first sight.
func (m *Memory) Intern(text []byte) string {
	if s, ok := m.Symbols.Lookup(string(text)); ok {
		return s
	}
	s := string(text)
	m.Symbols.Insert(s, s)
	return s
}

// Usage describes how full one arena is.
type Usage struct {
	Name string
	Len  int
	Cap  int
}

func (m *Memory) Usage() []Usage {
	return []Usage{
		{m.Tokens.Name(), m.Tokens.Len(), m.Tokens.Cap()},
		{"symbols", m.Symbols.Len(), m.Symbols.Cap()},
		{m.Strings.Name(), m.Strings.Len(), m.Strings.Cap()},
		{m.Bindings.Name(), m.Bindings.Len(), m.Bindings.Cap()},
		{m.Branches.Name(), m.Branches.Len(), m.Branches.Cap()},
		{m.Exprs.Name(), m.Exprs.Len(), m.Exprs.Cap()},
		{m.Funcs.Name(), m.Funcs.Len(), m.Funcs.Cap()},
	}
}

// ResetAST drops everything the parser built, keeping tokens and symbols.
func (m *Memory) ResetAST() {
	m.Strings.Reset()
	m.Bindings.Reset()
	m.Branches.Reset()
	m.Exprs.Reset()
	m.Funcs.Reset()
}

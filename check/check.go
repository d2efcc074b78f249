// Package check looks for mistakes the grammar lets through: functions
// defined twice, names used without a binding, repeated parameters and
// repeated branch tags.
package check

import (
	"fmt"

	"github.com/hashicorp/go-set/v3"

	"github.com/pontaoski/lazyc/ast"
	"github.com/pontaoski/lazyc/table"
)

type Diagnostic struct {
	Func    string
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Func, d.Message)
}

// Globals indexes funcs by name, keeping the first of any duplicates. The
// table is sized to stay at most half full.
func Globals(funcs []ast.Func) *table.Table[*ast.Func] {
	globals := table.New[*ast.Func](2*len(funcs) + 2)
	for i := range funcs {
		f := &funcs[i]
		if _, ok := globals.Lookup(f.Ident()); !ok {
			globals.Insert(f.Ident(), f)
		}
	}
	return globals
}

type checker struct {
	globals  *table.Table[*ast.Func]
	fn       string
	reported *set.Set[string]
	diags    []Diagnostic
}

func (c *checker) report(format string, args ...interface{}) {
	c.diags = append(c.diags, Diagnostic{Func: c.fn, Message: fmt.Sprintf(format, args...)})
}

// Program returns the diagnostics for funcs in definition order.
func Program(funcs []ast.Func) []Diagnostic {
	c := &checker{globals: Globals(funcs)}
	for i := range funcs {
		f := &funcs[i]
		c.fn = f.Ident()
		c.reported = set.New[string](0)

		if first, _ := c.globals.Lookup(f.Ident()); first != f {
			c.report("defined more than once")
		}

		scope := set.New[string](f.Args.Len())
		for arg := range f.Args.All() {
			if !scope.Insert(arg) {
				c.report("parameter %s repeated", arg)
			}
		}
		c.expr(f.Expr, scope)
	}
	return c.diags
}

func (c *checker) expr(e *ast.Expr, scope *set.Set[string]) {
	switch e.Kind {
	case ast.VAR:
		if scope.Contains(e.Var) {
			return
		}
		if _, ok := c.globals.Lookup(e.Var); ok {
			return
		}
		if c.reported.Insert(e.Var) {
			c.report("unbound variable %s", e.Var)
		}
	case ast.APP:
		c.expr(e.App[0], scope)
		c.expr(e.App[1], scope)
	case ast.LET, ast.LETREC:
		inner := scope.Copy()
		group := set.New[string](0)
		for b := range e.Let.Bindings.All() {
			if !group.Insert(b.Name) {
				c.report("%s bound twice in one %s", b.Name, kindWord(e.Kind))
			}
			inner.Insert(b.Name)
		}
		rhs := scope
		if e.Kind == ast.LETREC {
			rhs = inner
		}
		for b := range e.Let.Bindings.All() {
			c.expr(b.Expr, rhs)
		}
		c.expr(e.Let.Expr, inner)
	case ast.UNPACK:
		c.expr(e.Unpack.Expr, scope)
		tags := set.New[uint8](0)
		for branch := range e.Unpack.Branches.All() {
			if !tags.Insert(branch.Tag) {
				c.report("branch tag %d repeated", branch.Tag)
			}
			inner := scope.Copy()
			for arg := range branch.Args.All() {
				inner.Insert(arg)
			}
			c.expr(branch.Expr, inner)
		}
	}
}

func kindWord(k ast.ExprKind) string {
	if k == ast.LETREC {
		return "letrec"
	}
	return "let"
}

package ast

import (
	"slices"
	"strconv"
	"strings"

	"github.com/pontaoski/lazyc/list"
)

// Format prints funcs as source text, one definition per line. Parsing the
// output yields structurally equal trees, except for OPERATOR definitions
// and bare operators, which have no surface syntax.
func Format(funcs []Func) string {
	var b strings.Builder
	for i := range funcs {
		b.WriteString(funcs[i].String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (f Func) String() string {
	var b strings.Builder
	b.WriteString(f.Ident())
	for arg := range f.Args.All() {
		b.WriteByte(' ')
		b.WriteString(arg)
	}
	b.WriteString(" { ")
	writeExpr(&b, f.Expr)
	b.WriteString(" }")
	return b.String()
}

func FormatExpr(e *Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeOperand(b *strings.Builder, e *Expr) {
	if e.IsAtomic() {
		writeExpr(b, e)
		return
	}
	b.WriteByte('(')
	writeExpr(b, e)
	b.WriteByte(')')
}

func writeExpr(b *strings.Builder, e *Expr) {
	if op, l, r, ok := e.Operator(); ok {
		writeOperand(b, l)
		b.WriteString(" " + op.String() + " ")
		writeOperand(b, r)
		return
	}

	switch e.Kind {
	case UNDEF:
		b.WriteString("undef")
	case PACK:
		b.WriteString("pack ")
		b.WriteString(strconv.Itoa(int(e.Pack.Tag)))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(int(e.Pack.Arity)))
	case U32:
		b.WriteString(strconv.FormatUint(uint64(e.U32), 10))
	case VAR:
		b.WriteString(e.Var)
	case BINOP:
		b.WriteString("(" + e.BinOp.String() + ")")
	case APP:
		fn := e.App[0]
		if _, _, _, isOp := fn.Operator(); fn.Kind == APP && !isOp {
			writeExpr(b, fn)
		} else {
			writeOperand(b, fn)
		}
		b.WriteByte(' ')
		writeOperand(b, e.App[1])
	case LET, LETREC:
		if e.Kind == LET {
			b.WriteString("let { ")
		} else {
			b.WriteString("letrec { ")
		}
		i := 0
		for binding := range e.Let.Bindings.All() {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(binding.Name)
			b.WriteString(" = ")
			writeExpr(b, binding.Expr)
			i++
		}
		b.WriteString(" } ")
		writeExpr(b, e.Let.Expr)
	case UNPACK:
		b.WriteString("unpack ")
		switch e.Unpack.Expr.Kind {
		case LET, LETREC, UNPACK:
			writeOperand(b, e.Unpack.Expr)
		default:
			writeExpr(b, e.Unpack.Expr)
		}
		b.WriteString(" { ")
		i := 0
		for branch := range e.Unpack.Branches.All() {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(strconv.Itoa(int(branch.Tag)))
			for arg := range branch.Args.All() {
				b.WriteByte(' ')
				b.WriteString(arg)
			}
			b.WriteString(" = ")
			writeExpr(b, branch.Expr)
			i++
		}
		b.WriteString(" }")
	}
}

// Equal reports whether two trees have the same shape and payloads.
func Equal(a, b *Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case UNDEF:
		return true
	case PACK:
		return a.Pack == b.Pack
	case U32:
		return a.U32 == b.U32
	case VAR:
		return a.Var == b.Var
	case BINOP:
		return a.BinOp == b.BinOp
	case APP:
		return Equal(a.App[0], b.App[0]) && Equal(a.App[1], b.App[1])
	case LET, LETREC:
		x, y := a.Let.Bindings.First, b.Let.Bindings.First
		for ; x != nil && y != nil; x, y = x.Next, y.Next {
			if x.Value.Name != y.Value.Name || !Equal(x.Value.Expr, y.Value.Expr) {
				return false
			}
		}
		return x == nil && y == nil && Equal(a.Let.Expr, b.Let.Expr)
	case UNPACK:
		if !Equal(a.Unpack.Expr, b.Unpack.Expr) {
			return false
		}
		x, y := a.Unpack.Branches.First, b.Unpack.Branches.First
		for ; x != nil && y != nil; x, y = x.Next, y.Next {
			if x.Value.Tag != y.Value.Tag || !equalNames(x.Value.Args, y.Value.Args) || !Equal(x.Value.Expr, y.Value.Expr) {
				return false
			}
		}
		return x == nil && y == nil
	}
	return false
}

func equalNames(a, b list.List[string]) bool {
	return slices.Equal(a.Slice(), b.Slice())
}

// EqualFunc compares identity, parameters and body.
func EqualFunc(a, b *Func) bool {
	return a.Kind == b.Kind && a.Ident() == b.Ident() && equalNames(a.Args, b.Args) && Equal(a.Expr, b.Expr)
}

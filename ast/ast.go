// Package ast defines the expression tree built by the parser.
//
// Nodes are allocated from arenas and referenced by plain pointers. A tree is
// acyclic and is never changed once a parent links to it.
package ast

import (
	"fmt"

	"github.com/pontaoski/lazyc/list"
)

type BinOp int

const (
	ADD BinOp = iota
	SUB
	MUL
	DIV

	LT
	LE
	GT
	GE
	EQ
	NE

	OR
	AND
)

var binOpSymbols = [...]string{
	ADD: "+",
	SUB: "-",
	MUL: "*",
	DIV: "/",
	LT:  "<",
	LE:  "<=",
	GT:  ">",
	GE:  ">=",
	EQ:  "==",
	NE:  "!=",
	OR:  "|",
	AND: "&",
}

func (b BinOp) String() string {
	if b < 0 || int(b) >= len(binOpSymbols) {
		return fmt.Sprintf("BinOp(%d)", int(b))
	}
	return binOpSymbols[b]
}

type ExprKind int

const (
	UNDEF ExprKind = iota
	PACK

	APP
	LET
	LETREC
	UNPACK

	U32
	VAR

	BINOP
)

func (k ExprKind) String() string {
	data := map[ExprKind]string{
		UNDEF:  "UNDEF",
		PACK:   "PACK",
		APP:    "APP",
		LET:    "LET",
		LETREC: "LETREC",
		UNPACK: "UNPACK",
		U32:    "U32",
		VAR:    "VAR",
		BINOP:  "BINOP",
	}
	if name, ok := data[k]; ok {
		return name
	}
	return fmt.Sprintf("ExprKind(%d)", int(k))
}

type Binding struct {
	Name string
	Expr *Expr
}

type Let struct {
	Bindings list.List[Binding]
	Expr     *Expr
}

// Branch is one arm of an unpack, chosen by the constructor tag. Args name
// the constructor's fields inside Expr.
type Branch struct {
	Args list.List[string]
	Expr *Expr
	Tag  uint8
}

type Unpack struct {
	Expr     *Expr
	Branches list.List[Branch]
}

type Pack struct {
	Tag   uint8
	Arity uint8
}

// Expr is a tagged union; Kind says which of the payload fields is set.
// Infix operators are a BINOP node applied to both operands through two
// nested APP nodes: ((op l) r).
type Expr struct {
	Kind   ExprKind
	Var    string
	U32    uint32
	Pack   Pack
	App    [2]*Expr
	Let    Let
	Unpack Unpack
	BinOp  BinOp
}

// IsAtomic reports whether e needs no surrounding parentheses in argument
// position. A bare operator prints as its own parenthesised symbol.
func (e *Expr) IsAtomic() bool {
	switch e.Kind {
	case UNDEF, PACK, U32, VAR, BINOP:
		return true
	}
	return false
}

// Operator returns the operator and operands if e is a fully applied infix
// operator.
func (e *Expr) Operator() (op BinOp, l, r *Expr, ok bool) {
	if e.Kind != APP || e.App[0].Kind != APP || e.App[0].App[0].Kind != BINOP {
		return 0, nil, nil, false
	}
	return e.App[0].App[0].BinOp, e.App[0].App[1], e.App[1], true
}

type FuncKind int

const (
	NAMED FuncKind = iota
	OPERATOR
)

// Func is a top level definition. Name is set for NAMED functions, Op for
// OPERATOR definitions.
type Func struct {
	Args list.List[string]
	Expr *Expr
	Name string
	Op   BinOp
	Kind FuncKind
}

// Ident is the name the function is known by globally.
func (f *Func) Ident() string {
	if f.Kind == OPERATOR {
		return "(" + f.Op.String() + ")"
	}
	return f.Name
}

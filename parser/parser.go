// Package parser builds function definitions from a token sequence.
//
// Expressions are parsed by recursive descent over six precedence levels,
// loosest first:
//
//	1  |             right-chaining
//	2  &             right-chaining
//	3  < <= > >= == !=  at most one, no chaining
//	4  + -           + right-chains, - takes one level-5 operand
//	5  * /           * right-chains, / takes one level-6 operand
//	6  application   left-associative run of atomic expressions
//
// let, letrec and unpack are recognised only where a full expression may
// start. Every node is allocated from the Memory passed to NewParser.
package parser

import (
	"fortio.org/safecast"

	"github.com/pontaoski/lazyc/ast"
	"github.com/pontaoski/lazyc/errors"
	"github.com/pontaoski/lazyc/lexer"
	"github.com/pontaoski/lazyc/list"
	"github.com/pontaoski/lazyc/memory"
	"github.com/pontaoski/lazyc/types"
)

type Parser struct {
	src    types.Source
	tokens []types.Token
	mem    *memory.Memory
	i      int
}

func NewParser(src types.Source, tokens []types.Token, mem *memory.Memory) *Parser {
	return &Parser{
		src:    src,
		tokens: tokens,
		mem:    mem,
	}
}

// ParseSource lexes src into mem and parses the result.
func ParseSource(src types.Source, mem *memory.Memory) ([]ast.Func, error) {
	tokens, err := lexer.NewLexer(src, mem.Tokens, mem).Lex()
	if err != nil {
		return nil, err
	}
	return NewParser(src, tokens, mem).Parse()
}

// Parse consumes every token as a sequence of function definitions. The
// returned slice aliases the function arena of the parser's Memory.
func (p *Parser) Parse() (funcs []ast.Func, err error) {
	defer errors.Catch(&err)

	p.mem.ResetAST()
	p.i = 0
	for p.i < len(p.tokens) {
		p.parseFunc()
	}
	if p.mem.Funcs.Len() == 0 {
		panic(errors.EmptyProgram{Filename: p.src.Name})
	}
	return p.mem.Funcs.Items(), nil
}

// peek returns the current token, or an EOF token at the end of the input.
func (p *Parser) peek() types.Token {
	if p.i >= len(p.tokens) {
		return types.Token{Kind: types.EOF, Offset: len(p.src.Text)}
	}
	return p.tokens[p.i]
}

func (p *Parser) next() types.Token {
	t := p.peek()
	if p.i < len(p.tokens) {
		p.i++
	}
	return t
}

func (p *Parser) expect(kind types.TokenKind) types.Token {
	t := p.next()
	if t.Kind != kind {
		panic(errors.ExpectedKindGotKind{
			Expected: kind,
			Got:      t.Kind,
			Location: p.src.Position(t.Offset),
		})
	}
	return t
}

// expectByte reads a U32 token that must fit in a byte.
func (p *Parser) expectByte(what string) uint8 {
	t := p.expect(types.U32)
	v, err := safecast.Conv[uint8](t.Value)
	if err != nil {
		panic(errors.ByteRangeExceeded{
			What:     what,
			Value:    t.Value,
			Location: p.src.Position(t.Offset),
		})
	}
	return v
}

func (p *Parser) alloc(e ast.Expr) *ast.Expr {
	return p.mem.Exprs.AllocValue(e)
}

func (p *Parser) app(l, r *ast.Expr) *ast.Expr {
	return p.alloc(ast.Expr{Kind: ast.APP, App: [2]*ast.Expr{l, r}})
}

func (p *Parser) binary(op ast.BinOp, l, r *ast.Expr) *ast.Expr {
	fn := p.alloc(ast.Expr{Kind: ast.BINOP, BinOp: op})
	return p.app(p.app(fn, l), r)
}

// infix consumes the operator token and parses the right operand with right.
func (p *Parser) infix(op ast.BinOp, l *ast.Expr, right func() *ast.Expr) *ast.Expr {
	p.next()
	return p.binary(op, l, right())
}

func (p *Parser) parseFunc() {
	f := p.mem.Funcs.Alloc()
	f.Kind = ast.NAMED
	f.Name = p.expect(types.VAR).Text
	p.parseArgs(&f.Args)
	p.expect(types.LBRACE)
	f.Expr = p.parseExpr()
	p.expect(types.RBRACE)
}

func (p *Parser) parseArgs(args *list.List[string]) {
	for p.peek().Kind == types.VAR {
		list.Append(p.mem.Strings, args, p.next().Text)
	}
}

func (p *Parser) parseExpr() *ast.Expr {
	switch p.peek().Kind {
	case types.LET:
		p.next()
		return p.parseLet(ast.LET)
	case types.LETREC:
		p.next()
		return p.parseLet(ast.LETREC)
	case types.UNPACK:
		p.next()
		return p.parseUnpack()
	}
	return p.parseExpr1()
}

// parseLet is called past the let or letrec keyword.
func (p *Parser) parseLet(kind ast.ExprKind) *ast.Expr {
	p.expect(types.LBRACE)
	e := p.alloc(ast.Expr{Kind: kind})
	for {
		list.Append(p.mem.Bindings, &e.Let.Bindings, p.parseBinding())
		if p.endOfList() {
			break
		}
	}
	e.Let.Expr = p.parseExpr()
	return e
}

// endOfList consumes a separator: false after ';', true after '}'.
func (p *Parser) endOfList() bool {
	t := p.next()
	switch t.Kind {
	case types.SCOLON:
		return false
	case types.RBRACE:
		return true
	}
	panic(errors.ExpectedOneOfKindGotKind{
		Expected: []types.TokenKind{types.SCOLON, types.RBRACE},
		Got:      t.Kind,
		Location: p.src.Position(t.Offset),
	})
}

func (p *Parser) parseBinding() ast.Binding {
	name := p.expect(types.VAR).Text
	p.expect(types.ASSIGN)
	return ast.Binding{Name: name, Expr: p.parseExpr()}
}

// parseUnpack is called past the unpack keyword.
func (p *Parser) parseUnpack() *ast.Expr {
	e := p.alloc(ast.Expr{Kind: ast.UNPACK})
	e.Unpack.Expr = p.parseExpr()
	p.expect(types.LBRACE)
	for {
		list.Append(p.mem.Branches, &e.Unpack.Branches, p.parseBranch())
		if p.endOfList() {
			return e
		}
	}
}

func (p *Parser) parseBranch() ast.Branch {
	var branch ast.Branch
	branch.Tag = p.expectByte("branch tag")
	p.parseArgs(&branch.Args)
	p.expect(types.ASSIGN)
	branch.Expr = p.parseExpr()
	return branch
}

// parseAtomic returns nil without consuming anything if no atomic
// expression starts at the current token.
func (p *Parser) parseAtomic() *ast.Expr {
	t := p.peek()
	switch t.Kind {
	case types.UNDEF:
		p.next()
		return p.alloc(ast.Expr{Kind: ast.UNDEF})
	case types.PACK:
		p.next()
		tag := p.expectByte("pack tag")
		arity := p.expectByte("pack arity")
		return p.alloc(ast.Expr{Kind: ast.PACK, Pack: ast.Pack{Tag: tag, Arity: arity}})
	case types.LPAREN:
		p.next()
		e := p.parseExpr()
		p.expect(types.RPAREN)
		return e
	case types.VAR:
		p.next()
		return p.alloc(ast.Expr{Kind: ast.VAR, Var: t.Text})
	case types.U32:
		p.next()
		return p.alloc(ast.Expr{Kind: ast.U32, U32: t.Value})
	}
	return nil
}

func (p *Parser) parseExpr6() *ast.Expr {
	l := p.parseAtomic()
	if l == nil {
		t := p.peek()
		panic(errors.ExpectedExpression{Got: t.Kind, Location: p.src.Position(t.Offset)})
	}
	for {
		r := p.parseAtomic()
		if r == nil {
			return l
		}
		l = p.app(l, r)
	}
}

func (p *Parser) parseExpr5() *ast.Expr {
	l := p.parseExpr6()
	switch p.peek().Kind {
	case types.MUL:
		return p.infix(ast.MUL, l, p.parseExpr5)
	case types.DIV:
		return p.infix(ast.DIV, l, p.parseExpr6)
	}
	return l
}

func (p *Parser) parseExpr4() *ast.Expr {
	l := p.parseExpr5()
	switch p.peek().Kind {
	case types.ADD:
		return p.infix(ast.ADD, l, p.parseExpr4)
	case types.SUB:
		return p.infix(ast.SUB, l, p.parseExpr5)
	}
	return l
}

var comparisons = map[types.TokenKind]ast.BinOp{
	types.LT: ast.LT,
	types.LE: ast.LE,
	types.GT: ast.GT,
	types.GE: ast.GE,
	types.EQ: ast.EQ,
	types.NE: ast.NE,
}

func (p *Parser) parseExpr3() *ast.Expr {
	l := p.parseExpr4()
	if op, ok := comparisons[p.peek().Kind]; ok {
		return p.infix(op, l, p.parseExpr4)
	}
	return l
}

func (p *Parser) parseExpr2() *ast.Expr {
	l := p.parseExpr3()
	if p.peek().Kind == types.AND {
		return p.infix(ast.AND, l, p.parseExpr2)
	}
	return l
}

func (p *Parser) parseExpr1() *ast.Expr {
	l := p.parseExpr2()
	if p.peek().Kind == types.OR {
		return p.infix(ast.OR, l, p.parseExpr1)
	}
	return l
}

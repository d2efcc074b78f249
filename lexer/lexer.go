// Package lexer turns source bytes into tokens.
//
// The scan is a single left-to-right pass without backtracking. Tokens are
// written into a caller-owned arena; running out of room, an unknown
// character, a lone '!' or an integer literal wider than 32 bits ends the
// scan.
package lexer

import (
	"strconv"
	"strings"

	"github.com/pontaoski/lazyc/arena"
	"github.com/pontaoski/lazyc/errors"
	"github.com/pontaoski/lazyc/types"
)

// Interner hands out one shared string per distinct identifier.
type Interner interface {
	Intern(text []byte) string
}

type Lexer struct {
	src     types.Source
	tokens  *arena.Arena[types.Token]
	symbols Interner
	i       int
}

func NewLexer(src types.Source, tokens *arena.Arena[types.Token], symbols Interner) *Lexer {
	return &Lexer{
		src:     src,
		tokens:  tokens,
		symbols: symbols,
	}
}

// Lex resets the token arena and fills it with the tokens of the whole
// source. The returned slice aliases the arena.
func (l *Lexer) Lex() (tokens []types.Token, err error) {
	defer errors.Catch(&err)

	l.tokens.Reset()
	l.i = 0
	for l.i < len(l.src.Text) {
		l.next()
	}
	return l.tokens.Items(), nil
}

func isAlpha(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdent(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '_'
}

var single = map[byte]types.TokenKind{
	'(': types.LPAREN,
	')': types.RPAREN,
	'{': types.LBRACE,
	'}': types.RBRACE,
	';': types.SCOLON,
	'+': types.ADD,
	'-': types.SUB,
	'*': types.MUL,
	'/': types.DIV,
	'&': types.AND,
	'|': types.OR,
}

// withEquals lists the characters that form a second kind when followed by '='.
var withEquals = map[byte][2]types.TokenKind{
	'=': {types.ASSIGN, types.EQ},
	'<': {types.LT, types.LE},
	'>': {types.GT, types.GE},
}

func (l *Lexer) emit(t types.Token) {
	l.tokens.AllocValue(t)
}

func (l *Lexer) peekIs(c byte) bool {
	return l.i < len(l.src.Text) && l.src.Text[l.i] == c
}

func (l *Lexer) next() {
	text := l.src.Text
	c := text[l.i]
	start := l.i

	switch c {
	case '#':
		for l.i++; l.i < len(text); l.i++ {
			if text[l.i] == '\n' {
				l.i++
				break
			}
		}
		return
	case ' ', '\t', '\n':
		l.i++
		return
	case '!':
		l.i++
		if !l.peekIs('=') {
			panic(errors.UnterminatedNotEqual{Location: l.src.Position(start)})
		}
		l.i++
		l.emit(types.Token{Kind: types.NE, Offset: start})
		return
	}

	if kind, ok := single[c]; ok {
		l.i++
		l.emit(types.Token{Kind: kind, Offset: start})
		return
	}

	if kinds, ok := withEquals[c]; ok {
		l.i++
		kind := kinds[0]
		if l.peekIs('=') {
			l.i++
			kind = kinds[1]
		}
		l.emit(types.Token{Kind: kind, Offset: start})
		return
	}

	switch {
	case isDigit(c):
		l.lexU32()
	case isIdent(c):
		l.lexWord()
	default:
		panic(errors.UnexpectedChar{Char: c, Location: l.src.Position(start)})
	}
}

func (l *Lexer) lexU32() {
	text := l.src.Text
	start := l.i
	for l.i < len(text) && isDigit(text[l.i]) {
		l.i++
	}
	lit := string(text[start:l.i])
	value, err := strconv.ParseUint(lit, 10, 32)
	if err != nil {
		panic(errors.LiteralOverflow{Literal: lit, Location: l.src.Position(start)})
	}
	l.emit(types.Token{Kind: types.U32, Value: uint32(value), Offset: start})
}

func (l *Lexer) lexWord() {
	text := l.src.Text
	start := l.i
	for l.i < len(text) && isIdent(text[l.i]) {
		l.i++
	}
	word := text[start:l.i]
	if kind, ok := types.Keywords[string(word)]; ok {
		l.emit(types.Token{Kind: kind, Offset: start})
		return
	}
	l.emit(types.Token{Kind: types.VAR, Text: l.symbols.Intern(word), Offset: start})
}

// Render writes tokens back out as source text, one space between tokens.
// Lexing the result yields the same kinds, texts and values.
func Render(tokens []types.Token) string {
	var b strings.Builder
	for i, t := range tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch t.Kind {
		case types.VAR:
			b.WriteString(t.Text)
		case types.U32:
			b.WriteString(strconv.FormatUint(uint64(t.Value), 10))
		default:
			b.WriteString(types.Lexemes[t.Kind])
		}
	}
	return b.String()
}

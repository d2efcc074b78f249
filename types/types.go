package types

import (
	"bytes"
	"fmt"
)

// Source is a named byte sequence. Embedded NUL bytes are ordinary content.
type Source struct {
	Name string
	Text []byte
}

func NewSource(name string, text []byte) Source {
	return Source{Name: name, Text: text}
}

// Position resolves a byte offset to a 1-based line and column.
func (s Source) Position(offset int) Position {
	if offset > len(s.Text) {
		offset = len(s.Text)
	}
	if offset < 0 {
		offset = 0
	}
	before := s.Text[:offset]
	line := bytes.Count(before, []byte{'\n'}) + 1
	column := offset - (bytes.LastIndexByte(before, '\n') + 1) + 1
	return Position{
		Line:     line,
		Column:   column,
		Offset:   offset,
		Filename: s.Name,
	}
}

type Position struct {
	Line     int
	Column   int
	Offset   int
	Filename string
}

type TokenKind int

const (
	EOF TokenKind = iota

	UNDEF
	NEGATE
	IF

	LET
	LETREC
	PACK
	UNPACK

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	SCOLON
	ASSIGN

	ADD
	SUB
	MUL
	DIV
	LT
	LE
	GT
	GE
	EQ
	NE

	AND
	OR

	U32
	VAR
)

var kindNames = map[TokenKind]string{
	EOF:    "EOF",
	UNDEF:  "UNDEF",
	NEGATE: "NEGATE",
	IF:     "IF",
	LET:    "LET",
	LETREC: "LETREC",
	PACK:   "PACK",
	UNPACK: "UNPACK",
	LPAREN: "LPAREN",
	RPAREN: "RPAREN",
	LBRACE: "LBRACE",
	RBRACE: "RBRACE",
	SCOLON: "SCOLON",
	ASSIGN: "ASSIGN",
	ADD:    "ADD",
	SUB:    "SUB",
	MUL:    "MUL",
	DIV:    "DIV",
	LT:     "LT",
	LE:     "LE",
	GT:     "GT",
	GE:     "GE",
	EQ:     "EQ",
	NE:     "NE",
	AND:    "AND",
	OR:     "OR",
	U32:    "U32",
	VAR:    "VAR",
}

func (t TokenKind) String() string {
	if name, ok := kindNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(t))
}

// Keywords maps reserved words to their token kinds.
var Keywords = map[string]TokenKind{
	"undef":  UNDEF,
	"negate": NEGATE,
	"if":     IF,
	"let":    LET,
	"letrec": LETREC,
	"pack":   PACK,
	"unpack": UNPACK,
}

// Lexemes holds the fixed spelling of every kind without a payload.
var Lexemes = map[TokenKind]string{
	UNDEF:  "undef",
	NEGATE: "negate",
	IF:     "if",
	LET:    "let",
	LETREC: "letrec",
	PACK:   "pack",
	UNPACK: "unpack",
	LPAREN: "(",
	RPAREN: ")",
	LBRACE: "{",
	RBRACE: "}",
	SCOLON: ";",
	ASSIGN: "=",
	ADD:    "+",
	SUB:    "-",
	MUL:    "*",
	DIV:    "/",
	LT:     "<",
	LE:     "<=",
	GT:     ">",
	GE:     ">=",
	EQ:     "==",
	NE:     "!=",
	AND:    "&",
	OR:     "|",
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Token is a lexed unit. Text is set for VAR, Value for U32.
type Token struct {
	Kind   TokenKind
	Text   string
	Value  uint32
	Offset int
}

func (t Token) String() string {
	switch t.Kind {
	case VAR:
		return fmt.Sprintf("%s %q@%d", t.Kind, t.Text, t.Offset)
	case U32:
		return fmt.Sprintf("%s %d@%d", t.Kind, t.Value, t.Offset)
	}
	return fmt.Sprintf("%s@%d", t.Kind, t.Offset)
}

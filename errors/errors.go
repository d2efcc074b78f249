// Package errors holds the fatal conditions raised by the front end.
//
// Every condition here ends the current lex or parse: the memory it was
// writing into is left half built and must be thrown away. Core code raises
// them with panic, and the public entry points turn them back into error
// values with Catch.
package errors

import (
	"fmt"
	"runtime"

	"github.com/pontaoski/lazyc/types"
	"github.com/ztrue/tracerr"
)

type CapacityExceeded struct {
	What     string
	Capacity int
}

func (e CapacityExceeded) Error() string {
	return fmt.Sprintf("%s exhausted: capacity %d", e.What, e.Capacity)
}

type TableFull struct {
	Capacity int
}

func (e TableFull) Error() string {
	return fmt.Sprintf("table full: capacity %d leaves no free slot", e.Capacity)
}

type EmptyListConcat struct{}

func (e EmptyListConcat) Error() string {
	return "concat onto an empty list"
}

type UnexpectedChar struct {
	Char     byte
	Location types.Position
}

func (e UnexpectedChar) Error() string {
	return fmt.Sprintf("unexpected character %q. %s", e.Char, e.Location)
}

type UnterminatedNotEqual struct {
	Location types.Position
}

func (e UnterminatedNotEqual) Error() string {
	return fmt.Sprintf("'!' must be followed by '='. %s", e.Location)
}

type LiteralOverflow struct {
	Literal  string
	Location types.Position
}

func (e LiteralOverflow) Error() string {
	return fmt.Sprintf("integer literal %s does not fit in 32 bits. %s", e.Literal, e.Location)
}

type ByteRangeExceeded struct {
	What     string
	Value    uint32
	Location types.Position
}

func (e ByteRangeExceeded) Error() string {
	return fmt.Sprintf("%s %d is out of range 0-255. %s", e.What, e.Value, e.Location)
}

type ExpectedKindGotKind struct {
	Expected types.TokenKind
	Got      types.TokenKind
	Location types.Position
}

func (e ExpectedKindGotKind) Error() string {
	return fmt.Sprintf("got a %s, expected a %s. %s", e.Got, e.Expected, e.Location)
}

type ExpectedOneOfKindGotKind struct {
	Expected []types.TokenKind
	Got      types.TokenKind
	Location types.Position
}

func (e ExpectedOneOfKindGotKind) Error() string {
	return fmt.Sprintf("got a %s, expected one of %s. %s", e.Got, e.Expected, e.Location)
}

type ExpectedExpression struct {
	Got      types.TokenKind
	Location types.Position
}

func (e ExpectedExpression) Error() string {
	return fmt.Sprintf("got a %s, expected an expression. %s", e.Got, e.Location)
}

type EmptyProgram struct {
	Filename string
}

func (e EmptyProgram) Error() string {
	return fmt.Sprintf("%s: program defines no functions", e.Filename)
}

// Catch must be deferred directly. It stores a panicking error into err,
// wrapped with the stack of the code that raised it. Runtime errors and
// non-error panics keep unwinding.
func Catch(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if _, ok := r.(runtime.Error); ok {
		panic(r)
	}
	rerr, ok := r.(error)
	if !ok {
		panic(r)
	}
	*err = tracerr.Wrap(rerr)
}

// Cause strips the stack trace added by Catch.
func Cause(err error) error {
	return tracerr.Unwrap(err)
}

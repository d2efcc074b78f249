package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/pontaoski/lazyc/ast"
	"github.com/pontaoski/lazyc/check"
	"github.com/pontaoski/lazyc/config"
	"github.com/pontaoski/lazyc/errors"
	"github.com/pontaoski/lazyc/memory"
	"github.com/pontaoski/lazyc/parser"
	"github.com/pontaoski/lazyc/types"
)

const historyFile = ".lazyc_history"

// incomplete reports whether err came from input that ran out before the
// definition was finished, in which case the REPL keeps reading.
func incomplete(err error) bool {
	switch e := errors.Cause(err).(type) {
	case errors.ExpectedKindGotKind:
		return e.Got == types.EOF
	case errors.ExpectedOneOfKindGotKind:
		return e.Got == types.EOF
	case errors.ExpectedExpression:
		return e.Got == types.EOF
	}
	return false
}

// evaluate parses one complete input and renders the result.
func evaluate(capacity config.Capacity, text string) (string, error) {
	mem := memory.New(capacity)
	funcs, err := parser.ParseSource(types.NewSource("<repl>", []byte(text)), mem)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(ast.Format(funcs))
	for _, d := range check.Program(funcs) {
		fmt.Fprintf(&sb, "warning: %s\n", d)
	}
	return sb.String(), nil
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, historyFile)
}

func repl(capacity config.Capacity) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	hist := historyPath()
	if hist != "" {
		if f, err := os.Open(hist); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
	}

	var buf strings.Builder
loop:
	for {
		prompt := "> "
		if buf.Len() > 0 {
			prompt = ". "
		}
		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			buf.Reset()
			continue
		}
		if err == io.EOF {
			fmt.Println()
			break loop
		}
		if err != nil {
			return err
		}
		if buf.Len() == 0 {
			switch strings.TrimSpace(input) {
			case "":
				continue
			case ":quit", ":q":
				break loop
			case ":help":
				fmt.Println("enter definitions such as: main { 1 + 2 }")
				fmt.Println(":quit leaves")
				continue
			}
		}
		buf.WriteString(input)
		buf.WriteByte('\n')

		out, err := evaluate(capacity, buf.String())
		if err != nil && incomplete(err) {
			continue
		}
		line.AppendHistory(strings.TrimSpace(buf.String()))
		buf.Reset()
		if err != nil {
			fmt.Println(errors.Cause(err))
			continue
		}
		fmt.Print(out)
	}
	if hist != "" {
		if f, err := os.Create(hist); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}
	return nil
}

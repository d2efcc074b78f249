package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/lazyc/ast"
	"github.com/pontaoski/lazyc/check"
	"github.com/pontaoski/lazyc/config"
	"github.com/pontaoski/lazyc/lexer"
	"github.com/pontaoski/lazyc/manifest"
	"github.com/pontaoski/lazyc/memory"
	"github.com/pontaoski/lazyc/parser"
	"github.com/pontaoski/lazyc/types"
)

// readSource reads path, or standard input for "-".
func readSource(path string) (types.Source, error) {
	if path == "-" {
		data, err := ioutil.ReadAll(os.Stdin)
		return types.NewSource("<stdin>", data), err
	}
	data, err := ioutil.ReadFile(path)
	return types.NewSource(path, data), err
}

func loadProject(c *cli.Context) (config.Project, error) {
	return config.Load(c.String("config"))
}

func logUsage(mem *memory.Memory) {
	for _, u := range mem.Usage() {
		log.Printf("%-8s %d/%d", u.Name, u.Len, u.Cap)
	}
}

// parseFile lexes and parses one file into fresh memory.
func parseFile(c *cli.Context, path string) ([]ast.Func, *memory.Memory, error) {
	project, err := loadProject(c)
	if err != nil {
		return nil, nil, err
	}
	src, err := readSource(path)
	if err != nil {
		return nil, nil, err
	}
	mem := memory.New(project.Capacity)
	funcs, err := parser.ParseSource(src, mem)
	log.Printf("parsed %s", src.Name)
	logUsage(mem)
	return funcs, mem, err
}

func requireArg(c *cli.Context, what string) (string, error) {
	arg := c.Args().First()
	if arg == "" {
		return "", fmt.Errorf("no %s provided", what)
	}
	return arg, nil
}

func main() {
	app := &cli.App{
		Name:  "lazyc",
		Usage: "front end for a lazy pattern-matching language",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "project file (default " + config.FileName + " if present)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log arena usage",
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "print errors without source excerpts",
			},
		},
		Before: func(c *cli.Context) error {
			log.SetPrefix("lazyc: ")
			log.SetFlags(0)
			if !c.Bool("verbose") {
				log.SetOutput(io.Discard)
			}
			return nil
		},
		ExitErrHandler: func(c *cli.Context, err error) {
			if err == nil {
				return
			}
			if exit, ok := err.(cli.ExitCoder); ok && exit.Error() == "" {
				os.Exit(exit.ExitCode())
			}
			if c.Bool("plain") {
				tracerr.Print(err)
			} else {
				tracerr.PrintSourceColor(err)
			}
			os.Exit(1)
		},
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "write a project file",
				ArgsUsage: "NAME",
				Action: func(c *cli.Context) error {
					name, err := requireArg(c, "package name")
					if err != nil {
						return err
					}
					return config.Write(config.FileName, config.Project{
						Package:  name,
						Capacity: config.Default(),
					})
				},
			},
			{
				Name:      "lex",
				Usage:     "print the tokens of a file",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					path, err := requireArg(c, "file")
					if err != nil {
						return err
					}
					project, err := loadProject(c)
					if err != nil {
						return err
					}
					src, err := readSource(path)
					if err != nil {
						return err
					}
					mem := memory.New(project.Capacity)
					tokens, err := lexer.NewLexer(src, mem.Tokens, mem).Lex()
					if err != nil {
						return err
					}
					for _, t := range tokens {
						fmt.Printf("%s\t%s\n", src.Position(t.Offset), t)
					}
					return nil
				},
			},
			{
				Name:      "parse",
				Usage:     "parse a file and print the result",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "dump",
						Usage: "print the tree structure instead of source",
					},
				},
				Action: func(c *cli.Context) error {
					path, err := requireArg(c, "file")
					if err != nil {
						return err
					}
					funcs, _, err := parseFile(c, path)
					if err != nil {
						return err
					}
					if c.Bool("dump") {
						repr.Println(funcs, repr.Indent("  "), repr.OmitEmpty(true))
						return nil
					}
					fmt.Print(ast.Format(funcs))
					return nil
				},
			},
			{
				Name:      "fmt",
				Usage:     "reformat a file",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "write",
						Usage: "overwrite the file instead of printing",
					},
				},
				Action: func(c *cli.Context) error {
					path, err := requireArg(c, "file")
					if err != nil {
						return err
					}
					funcs, _, err := parseFile(c, path)
					if err != nil {
						return err
					}
					out := ast.Format(funcs)
					if c.Bool("write") && path != "-" {
						return ioutil.WriteFile(path, []byte(out), 0o644)
					}
					fmt.Print(out)
					return nil
				},
			},
			{
				Name:      "check",
				Usage:     "report unbound names and duplicate definitions",
				ArgsUsage: "FILE...",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return fmt.Errorf("no file provided")
					}
					failed := false
					for _, path := range c.Args().Slice() {
						funcs, _, err := parseFile(c, path)
						if err != nil {
							return err
						}
						for _, d := range check.Program(funcs) {
							fmt.Printf("%s: %s\n", path, d)
							failed = true
						}
					}
					if failed {
						return cli.Exit("", 1)
					}
					return nil
				},
			},
			{
				Name:      "emit",
				Usage:     "write an LLVM module carrying the program's global manifest",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Usage: "destination .ll file (default stdout)",
					},
				},
				Action: func(c *cli.Context) error {
					path, err := requireArg(c, "file")
					if err != nil {
						return err
					}
					project, err := loadProject(c)
					if err != nil {
						return err
					}
					funcs, _, err := parseFile(c, path)
					if err != nil {
						return err
					}
					m, err := manifest.New(project.Package, funcs)
					if err != nil {
						return err
					}
					mod, err := m.Module()
					if err != nil {
						return err
					}
					out := c.String("output")
					if out == "" {
						fmt.Print(mod.String())
						return nil
					}
					return ioutil.WriteFile(out, []byte(mod.String()), 0o644)
				},
			},
			{
				Name:      "manifest",
				Usage:     "dump the global manifest of a compiled module",
				ArgsUsage: "LIBRARY",
				Action: func(c *cli.Context) error {
					path, err := requireArg(c, "library")
					if err != nil {
						return err
					}
					m, err := manifest.FromFile(path)
					if err != nil {
						return err
					}
					repr.Println(m)
					return nil
				},
			},
			{
				Name:  "repl",
				Usage: "parse definitions interactively",
				Action: func(c *cli.Context) error {
					project, err := loadProject(c)
					if err != nil {
						return err
					}
					return repl(project.Capacity)
				},
			},
		},
	}
	app.Run(os.Args)
}

// Package gmachine holds the data layouts of the graph-reduction machine the
// front end targets: its instruction set and its heap nodes. There is no
// evaluator here; the layouts fix the boundary between the parser's output
// and a code generator.
package gmachine

//go:generate sh -c "cd ../tool && go run . ../gmachine/layout.adt ../gmachine/layout.go gmachine"

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/pontaoski/lazyc/ast"
)

// NewGlobal describes f as an unlinked global: its name and arity, with no
// code yet.
func NewGlobal(f *ast.Func) (GlobalNode, error) {
	n := f.Args.Len()
	arity, err := safecast.Conv[uint8](n)
	if err != nil {
		return GlobalNode{}, fmt.Errorf("%s takes %d arguments, at most 255 fit a global: %w", f.Ident(), n, err)
	}
	return GlobalNode{Name: f.Ident(), Arity: arity}, nil
}

// Globals describes every function of a program, in definition order.
func Globals(funcs []ast.Func) ([]GlobalNode, error) {
	out := make([]GlobalNode, 0, len(funcs))
	for i := range funcs {
		g, err := NewGlobal(&funcs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, nil
}

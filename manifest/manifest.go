// Package manifest records which globals a program defines, for the loader
// of the graph-reduction machine. The manifest travels inside an LLVM module
// as a JSON string constant and can be read back from the compiled object.
package manifest

import (
	"encoding/json"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"

	"github.com/pontaoski/lazyc/ast"
	"github.com/pontaoski/lazyc/gmachine"
	"github.com/pontaoski/lazyc/reader"
)

const (
	// Symbol holds the JSON manifest.
	Symbol = "__lazyc_globals"
	// AritySymbol holds one i8 arity per global, in manifest order.
	AritySymbol = "__lazyc_arities"
)

type Global struct {
	Name  string `json:"name"`
	Arity uint8  `json:"arity"`
}

type Manifest struct {
	Package string   `json:"package"`
	Globals []Global `json:"globals"`
}

func New(pkg string, funcs []ast.Func) (Manifest, error) {
	nodes, err := gmachine.Globals(funcs)
	if err != nil {
		return Manifest{}, err
	}
	m := Manifest{Package: pkg}
	for _, n := range nodes {
		m.Globals = append(m.Globals, Global{Name: n.Name, Arity: n.Arity})
	}
	return m, nil
}

// Module returns an LLVM module that embeds m.
func (m Manifest) Module() (*ir.Module, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}

	mod := ir.NewModule()
	g := mod.NewGlobalDef(Symbol, constant.NewCharArray(append(data, 0)))
	g.Immutable = true

	arities := make([]constant.Constant, 0, len(m.Globals))
	for _, global := range m.Globals {
		arities = append(arities, constant.NewInt(types.I8, int64(global.Arity)))
	}
	a := mod.NewGlobalDef(AritySymbol, constant.NewArray(types.NewArray(uint64(len(arities)), types.I8), arities...))
	a.Immutable = true

	return mod, nil
}

func Parse(data string) (m Manifest, err error) {
	err = json.Unmarshal([]byte(data), &m)
	return
}

// FromFile reads the manifest embedded in a compiled shared object.
func FromFile(path string) (Manifest, error) {
	data, err := reader.ReadSymbol(path, Symbol)
	if err != nil {
		return Manifest{}, err
	}
	return Parse(data)
}

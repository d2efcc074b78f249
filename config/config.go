// Package config sizes the fixed-capacity memory used by a parse.
//
// Values come from three layers, each overriding the previous one: built-in
// defaults, the project file, and LAZYC_* environment variables.
package config

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v2"
)

// FileName is the project file looked up in the working directory.
const FileName = "lazyc.yaml"

type Capacity struct {
	Tokens   int `yaml:"tokens,omitempty"`
	Symbols  int `yaml:"symbols,omitempty"`
	Strings  int `yaml:"strings,omitempty"`
	Bindings int `yaml:"bindings,omitempty"`
	Branches int `yaml:"branches,omitempty"`
	Exprs    int `yaml:"exprs,omitempty"`
	Funcs    int `yaml:"funcs,omitempty"`
}

type Project struct {
	Package  string   `yaml:"package"`
	Capacity Capacity `yaml:"capacity,omitempty"`
}

func Default() Capacity {
	return Capacity{
		Tokens:   1 << 16,
		Symbols:  1 << 13,
		Strings:  1 << 14,
		Bindings: 1 << 12,
		Branches: 1 << 12,
		Exprs:    1 << 17,
		Funcs:    1 << 10,
	}
}

// Load reads the project file at path. A missing file is not an error when
// path is the default FileName; the defaults are used instead.
func Load(path string) (Project, error) {
	p := Project{Capacity: Default()}

	explicit := path != ""
	if !explicit {
		path = FileName
	}

	data, err := ioutil.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Project{}, fmt.Errorf("reading %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return Project{}, fmt.Errorf("reading %s: %w", path, err)
	}

	p.Capacity = p.Capacity.FromEnv()
	if err := p.Capacity.Validate(); err != nil {
		return Project{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// FromEnv returns c with every LAZYC_* variable that is set applied.
func (c Capacity) FromEnv() Capacity {
	c.Tokens = env.Int("LAZYC_TOKENS", c.Tokens)
	c.Symbols = env.Int("LAZYC_SYMBOLS", c.Symbols)
	c.Strings = env.Int("LAZYC_STRINGS", c.Strings)
	c.Bindings = env.Int("LAZYC_BINDINGS", c.Bindings)
	c.Branches = env.Int("LAZYC_BRANCHES", c.Branches)
	c.Exprs = env.Int("LAZYC_EXPRS", c.Exprs)
	c.Funcs = env.Int("LAZYC_FUNCS", c.Funcs)
	return c
}

func (c Capacity) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"tokens", c.Tokens},
		{"symbols", c.Symbols},
		{"strings", c.Strings},
		{"bindings", c.Bindings},
		{"branches", c.Branches},
		{"exprs", c.Exprs},
		{"funcs", c.Funcs},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return fmt.Errorf("capacity %s must be positive, got %d", f.name, f.value)
		}
	}
	if c.Symbols < 2 {
		return fmt.Errorf("capacity symbols must be at least 2, got %d", c.Symbols)
	}
	return nil
}

// Write creates path holding p.
func Write(path string, p Project) error {
	out, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	fi, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fi.Close()

	_, err = fi.Write(out)
	return err
}

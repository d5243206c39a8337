// Package engineconfig compiles small boolean/value expressions used
// to gate experimental behavior in the engine (for example, whether
// the WASM interpreter honors a particular opcode family) against a
// caller-supplied symbol table.
package engineconfig

import (
	"fmt"

	"github.com/expr-lang/expr/compiler"
	"github.com/expr-lang/expr/conf"
	exprparser "github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"
)

// Expr is a single compiled expression, e.g. "mem_limit > 65536" or
// "features.wasm_globals".
type Expr struct {
	raw     string
	program *vm.Program
}

// Compile parses and compiles s with expr-lang/expr's low-level
// parser and compiler packages.
func Compile(s string) (Expr, error) {
	if s == "" {
		return Expr{}, nil
	}

	tree, err := exprparser.Parse(s)
	if err != nil {
		return Expr{}, fmt.Errorf("engineconfig: parse %q: %w", s, err)
	}

	c := conf.CreateNew()
	program, err := compiler.Compile(tree, c)
	if err != nil {
		return Expr{}, fmt.Errorf("engineconfig: compile %q: %w", s, err)
	}

	return Expr{raw: s, program: program}, nil
}

// RawString returns the source text the Expr was compiled from.
func (e Expr) RawString() string { return e.raw }

// IsEmpty reports whether e holds no expression (the zero Expr).
func (e Expr) IsEmpty() bool { return e.program == nil }

// Eval runs the expression against env, a symbol table of named
// values the expression may reference.
func (e Expr) Eval(env map[string]any) (any, error) {
	if e.program == nil {
		return nil, nil
	}
	return vm.Run(e.program, env)
}

// Config is a named set of compiled expressions, evaluated against a
// shared environment to gate engine behavior (feature flags, resource
// limits, experimental opcode support).
type Config struct {
	exprs map[string]Expr
}

// NewConfig returns an empty Config.
func NewConfig() *Config {
	return &Config{exprs: map[string]Expr{}}
}

// Define compiles expression and stores it under name, replacing any
// previous definition.
func (c *Config) Define(name, expression string) error {
	x, err := Compile(expression)
	if err != nil {
		return fmt.Errorf("engineconfig: define %q: %w", name, err)
	}
	c.exprs[name] = x
	return nil
}

// Defined reports whether an expression is stored under name.
func (c *Config) Defined(name string) bool {
	_, ok := c.exprs[name]
	return ok
}

// ErrUndefined reports a lookup of a name that was never Defined.
type ErrUndefined struct{ Name string }

func (e ErrUndefined) Error() string { return fmt.Sprintf("engineconfig: %q is not defined", e.Name) }

// Eval evaluates the expression stored under name against env.
func (c *Config) Eval(name string, env map[string]any) (any, error) {
	x, ok := c.exprs[name]
	if !ok {
		return nil, ErrUndefined{Name: name}
	}
	return x.Eval(env)
}

// EvalBool evaluates the expression stored under name against env and
// requires the result to be a bool, returning an error otherwise. This
// is the common case for feature-flag gates.
func (c *Config) EvalBool(name string, env map[string]any) (bool, error) {
	v, err := c.Eval(name, env)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("engineconfig: %q evaluated to %T, not bool", name, v)
	}
	return b, nil
}

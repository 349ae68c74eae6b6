// Package sexpr reads and evaluates the expression language embedded
// in MML documents: a small Lisp with atoms, vectors, ordered maps,
// lexical closures, macros and a namespaced symbol table.
package sexpr

import (
	"fmt"
	"strings"
)

// NativeNS is the namespace holding the host-provided operators. It is
// sealed: def may not install bindings into it.
const NativeNS = "__native__"

// DefaultNS is the namespace unqualified definitions land in.
const DefaultNS = "core"

// Context is the evaluator's mutable state: the namespaced symbol
// table, the fallback namespace lists and the output buffer. A Context
// is not safe for concurrent use; evaluation is strictly sequential.
type Context struct {
	symbols    map[string]map[string]*Value
	fallbackNS map[string][]string
	currentNS  string

	buf strings.Builder
}

// NewContext creates a Context with the native operators seeded into
// the __native__ namespace.
func NewContext() *Context {
	c := &Context{
		symbols:    map[string]map[string]*Value{},
		fallbackNS: map[string][]string{},
		currentNS:  DefaultNS,
	}
	c.registerNatives()
	return c
}

// CurrentNamespace returns the namespace unqualified symbols resolve
// and define into.
func (c *Context) CurrentNamespace() string {
	return c.currentNS
}

// SetFallback installs the ordered list of namespaces searched after ns
// when a bare symbol does not resolve in ns itself.
func (c *Context) SetFallback(ns string, fallbacks ...string) {
	c.fallbackNS[ns] = fallbacks
}

// Define installs a binding. An empty namespace means the current one.
// The native namespace is sealed.
func (c *Context) Define(sym Symbol, value *Value) error {
	ns := sym.NS
	if ns == "" {
		ns = c.currentNS
	}
	if ns == NativeNS {
		return fmt.Errorf("cannot define symbols in native namespace")
	}
	if c.symbols[ns] == nil {
		c.symbols[ns] = map[string]*Value{}
	}
	c.symbols[ns][sym.Token] = value
	return nil
}

func (c *Context) register(name string, policy EvalPolicy, fn NativeFn) {
	if c.symbols[NativeNS] == nil {
		c.symbols[NativeNS] = map[string]*Value{}
	}
	c.symbols[NativeNS][name] = NewNativeValue(name, policy, fn)
}

// Resolve looks a symbol up outside any lexical frame.
func (c *Context) Resolve(sym Symbol) (*Value, error) {
	return c.resolve(sym, nil)
}

func (c *Context) resolve(sym Symbol, frame *Frame) (*Value, error) {
	if sym.NS == "" {
		if v, ok := frame.lookup(sym.Token); ok {
			return v, nil
		}
		if v, ok := c.symbols[c.currentNS][sym.Token]; ok {
			return v, nil
		}
		for _, fb := range c.fallbackNS[c.currentNS] {
			if v, ok := c.symbols[fb][sym.Token]; ok {
				return v, nil
			}
		}
		return nil, fmt.Errorf("could not find symbol %s", sym.Token)
	}

	if v, ok := c.symbols[sym.NS][sym.Token]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("could not find symbol %s.%s", sym.NS, sym.Token)
}

// Eval parses source into forms and evaluates them in order within a
// fresh root frame, returning the last result. Definitions installed
// through def persist on the Context across Eval calls.
func (c *Context) Eval(source string) (*Value, error) {
	forms, err := Parse(source)
	if err != nil {
		return nil, err
	}

	frame := c.makeFrame(nil)
	last := Nil
	for _, form := range forms {
		last, err = c.evalValue(form, frame)
		if err != nil {
			return nil, err
		}
	}
	return last, nil
}

// PullBuffer returns the accumulated output buffer and clears it.
func (c *Context) PullBuffer() string {
	out := c.buf.String()
	c.buf.Reset()
	return out
}

// Buffer returns the accumulated output buffer without clearing it.
func (c *Context) Buffer() string {
	return c.buf.String()
}

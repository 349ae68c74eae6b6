package sexpr

import (
	"errors"
	"fmt"
)

// Frame is a lexical environment: bindings plus an optional parent.
// Chains cloned by addRootFrame share the binding maps of the original
// links, so frames form a DAG, never a cycle.
type Frame struct {
	vars   map[string]*Value
	parent *Frame
}

func (f *Frame) lookup(name string) (*Value, bool) {
	for cur := f; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// addRootFrame clones the receiver chain link by link (each clone
// shares its original's bindings) and grafts captured below the clone,
// so a call sees caller chain first, captured chain after it.
func (f *Frame) addRootFrame(captured *Frame) *Frame {
	if f == nil {
		return captured
	}
	head := &Frame{vars: f.vars}
	prev := head
	for next := f.parent; next != nil; next = next.parent {
		layer := &Frame{vars: next.vars}
		prev.parent = layer
		prev = layer
	}
	prev.parent = captured
	return head
}

// makeFrame creates a frame under parent and pre-binds the local let
// operator: (let [k v ...] body...) evaluates each binding in the
// cumulative let frame, then the body forms, returning the last value.
func (c *Context) makeFrame(parent *Frame) *Frame {
	frame := &Frame{
		vars:   map[string]*Value{},
		parent: parent,
	}
	frame.vars["let"] = NewNativeValue("let", EvalSkipAll, func(args []*Value, _ *Frame) (*Value, error) {
		if len(args) == 0 {
			return nil, errors.New("must have arguments to 'let'")
		}
		if !args[0].Is(KindVector) {
			return nil, errors.New("first argument to 'let' must be a vector")
		}

		letFrame := c.makeFrame(frame)
		bindings := args[0].List()
		for i := 0; i < len(bindings); i += 2 {
			key := bindings[i]
			if !key.Is(KindSymbol) {
				return nil, errors.New("'let' can only bind to symbols")
			}
			if i+1 >= len(bindings) {
				return nil, fmt.Errorf("missing value for %v", key)
			}
			val, err := c.evalValue(bindings[i+1], letFrame)
			if err != nil {
				return nil, err
			}
			letFrame.vars[key.Symbol().String()] = val
		}

		return c.evalBody(args[1:], letFrame)
	})
	return frame
}

package sexpr

import (
	"errors"
	"fmt"
)

var errInvalidCallable = errors.New("invalid callable")

// evalValue is the recursive evaluation kernel. Literals
// self-evaluate, vectors and maps descend, symbols resolve, lists
// apply.
func (c *Context) evalValue(form *Value, frame *Frame) (*Value, error) {
	if frame == nil {
		frame = c.makeFrame(nil)
	}

	switch form.Kind() {
	case KindSymbol:
		return c.resolve(form.Symbol(), frame)

	case KindVector:
		items := form.List()
		res := make([]*Value, len(items))
		for i, item := range items {
			v, err := c.evalValue(item, frame)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return NewVectorValue(res), nil

	case KindMap:
		src := form.Map()
		res := NewMap()
		for i := 0; i < src.Len(); i++ {
			k, v := src.Entry(i)
			ek, err := c.evalValue(k, frame)
			if err != nil {
				return nil, err
			}
			ev, err := c.evalValue(v, frame)
			if err != nil {
				return nil, err
			}
			if err := res.Set(ek, ev); err != nil {
				return nil, err
			}
		}
		return NewMapValue(res), nil

	case KindList:
		return c.evalList(form.List(), frame)
	}

	return form, nil
}

func (c *Context) evalList(items []*Value, frame *Frame) (*Value, error) {
	if len(items) == 0 {
		return Nil, nil
	}

	head, err := c.evalValue(items[0], frame)
	if err != nil {
		return nil, err
	}

	skip := paramsToSkipEvalFor(head)
	args := make([]*Value, 0, len(items)-1)
	for i, arg := range items[1:] {
		if i < skip {
			args = append(args, arg)
			continue
		}
		v, err := c.evalValue(arg, frame)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	return c.call(head, args, frame)
}

// paramsToSkipEvalFor returns how many leading arguments the callable
// receives unevaluated. Macros skip everything; natives follow their
// EvalPolicy; anything else evaluates all arguments.
func paramsToSkipEvalFor(callable *Value) int {
	switch callable.Kind() {
	case KindNative:
		return callable.Native().Policy.skip()
	case KindMacro:
		return EvalSkipAll.skip()
	}
	return 0
}

// call applies a callable to already-prepared arguments.
func (c *Context) call(callable *Value, args []*Value, frame *Frame) (*Value, error) {
	switch callable.Kind() {
	case KindFunc:
		fn := callable.Func()
		callFrame, err := c.bindParams(fn.Params, fn.VarParam, args, frame.addRootFrame(fn.Frame))
		if err != nil {
			return nil, err
		}
		return c.evalBody(fn.Body, callFrame)

	case KindMacro:
		m := callable.Macro()
		callFrame, err := c.bindParams(m.Params, m.VarParam, args, frame)
		if err != nil {
			return nil, err
		}
		form, err := c.evalBody(m.Body, callFrame)
		if err != nil {
			return nil, err
		}
		// the expansion evaluates in the caller's scope
		return c.evalValue(form, frame)

	case KindNative:
		return callable.Native().Fn(args, frame)

	case KindBool:
		if callable.Bool() {
			if len(args) >= 1 {
				return args[0], nil
			}
		} else if len(args) >= 2 {
			return args[1], nil
		}
		return Nil, nil
	}

	return nil, errInvalidCallable
}

func (c *Context) bindParams(params []Symbol, varParam *Symbol, args []*Value, parent *Frame) (*Frame, error) {
	if len(args) < len(params) || (varParam == nil && len(args) != len(params)) {
		return nil, fmt.Errorf("expected arity %d but received %d params", len(params), len(args))
	}

	callFrame := c.makeFrame(parent)
	for i, p := range params {
		callFrame.vars[p.String()] = args[i]
	}
	if varParam != nil {
		rest := make([]*Value, len(args)-len(params))
		copy(rest, args[len(params):])
		callFrame.vars[varParam.String()] = NewVectorValue(rest)
	}
	return callFrame, nil
}

func (c *Context) evalBody(body []*Value, frame *Frame) (*Value, error) {
	last := Nil
	for _, form := range body {
		v, err := c.evalValue(form, frame)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

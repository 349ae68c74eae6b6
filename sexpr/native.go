package sexpr

import (
	"errors"
	"fmt"
)

// registerNatives seeds the __native__ namespace. def is the only
// partial-skip native; fn, macro and quote receive their arguments
// verbatim.
func (c *Context) registerNatives() {
	c.register("buf", EvalAll, c.nativeBuf)
	c.register("str", EvalAll, nativeStr)

	c.register("add", EvalAll, foldNumbers("add", 0, func(acc, x float64) float64 { return acc + x }))
	c.register("mul", EvalAll, foldNumbers("mul", 1, func(acc, x float64) float64 { return acc * x }))
	c.register("sub", EvalAll, foldTail("sub", func(acc, x float64) float64 { return acc - x }))
	c.register("div", EvalAll, foldTail("div", func(acc, x float64) float64 { return acc / x }))

	c.register("invert-sign", EvalAll, nativeInvertSign)
	c.register("truthy", EvalAll, nativeTruthy)

	c.register("def", EvalSkipN(1), c.nativeDef)
	c.register("fn", EvalSkipAll, c.nativeFn)
	c.register("macro", EvalSkipAll, c.nativeMacro)
	c.register("quote", EvalSkipAll, nativeQuote)
}

func (c *Context) nativeBuf(args []*Value, _ *Frame) (*Value, error) {
	for _, v := range args {
		c.buf.WriteString(v.render())
	}
	return Nil, nil
}

func nativeStr(args []*Value, _ *Frame) (*Value, error) {
	out := ""
	for _, v := range args {
		out += v.render()
	}
	return NewStringValue(out), nil
}

func foldNumbers(name string, init float64, fold func(acc, x float64) float64) NativeFn {
	return func(args []*Value, _ *Frame) (*Value, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("expected at least one argument to __native__.%s", name)
		}
		acc := init
		for _, v := range args {
			x, err := v.toNumber()
			if err != nil {
				return nil, err
			}
			acc = fold(acc, x)
		}
		return NewNumberValue(acc), nil
	}
}

func foldTail(name string, fold func(acc, x float64) float64) NativeFn {
	return func(args []*Value, _ *Frame) (*Value, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("expected at least one argument to __native__.%s", name)
		}
		acc, err := args[0].toNumber()
		if err != nil {
			return nil, err
		}
		for _, v := range args[1:] {
			x, err := v.toNumber()
			if err != nil {
				return nil, err
			}
			acc = fold(acc, x)
		}
		return NewNumberValue(acc), nil
	}
}

func nativeInvertSign(args []*Value, _ *Frame) (*Value, error) {
	if len(args) != 1 {
		return nil, errors.New("expected arity of one argument to __native__.invert-sign")
	}
	x, err := args[0].toNumber()
	if err != nil {
		return nil, err
	}
	return NewNumberValue(-x), nil
}

// truthy: nil, false, 0 and "" are false, everything else is true.
func nativeTruthy(args []*Value, _ *Frame) (*Value, error) {
	if len(args) != 1 {
		return nil, errors.New("expected arity of one argument to __native__.truthy")
	}
	return NewBoolValue(Truthy(args[0])), nil
}

// Truthy reports the truth value used by conditionals.
func Truthy(v *Value) bool {
	switch v.Kind() {
	case KindNil:
		return false
	case KindBool:
		return v.Bool()
	case KindNumber:
		return v.Number() != 0
	case KindString:
		return v.Text() != ""
	}
	return true
}

func (c *Context) nativeDef(args []*Value, _ *Frame) (*Value, error) {
	if len(args) != 2 {
		return nil, errors.New("invalid arity for def, expected 2 values")
	}
	if !args[0].Is(KindSymbol) {
		return nil, errors.New("must bind to a Symbol")
	}
	if err := c.Define(args[0].Symbol(), args[1]); err != nil {
		return nil, err
	}
	return Nil, nil
}

func (c *Context) nativeFn(args []*Value, frame *Frame) (*Value, error) {
	params, varParam, body, err := procParts("fn", args)
	if err != nil {
		return nil, err
	}
	return NewFuncValue(&Func{
		Params:   params,
		VarParam: varParam,
		Body:     body,
		Frame:    frame,
	}), nil
}

func (c *Context) nativeMacro(args []*Value, _ *Frame) (*Value, error) {
	params, varParam, body, err := procParts("macro", args)
	if err != nil {
		return nil, err
	}
	return NewMacroValue(&Macro{
		Params:   params,
		VarParam: varParam,
		Body:     body,
	}), nil
}

// procParts splits (name [params... & var?] body...) argument lists.
func procParts(name string, args []*Value) ([]Symbol, *Symbol, []*Value, error) {
	if len(args) == 0 || !args[0].Is(KindVector) {
		return nil, nil, nil, fmt.Errorf("first argument to '%s' must be a parameter vector", name)
	}

	params := []Symbol{}
	var varParam *Symbol
	items := args[0].List()
	for i := 0; i < len(items); i++ {
		if !items[i].Is(KindSymbol) {
			return nil, nil, nil, fmt.Errorf("'%s' parameters must be symbols", name)
		}
		sym := items[i].Symbol()
		if sym.NS == "" && sym.Token == "&" {
			if i+1 != len(items)-1 || !items[i+1].Is(KindSymbol) {
				return nil, nil, nil, fmt.Errorf("'%s' expects exactly one symbol after &", name)
			}
			v := items[i+1].Symbol()
			varParam = &v
			break
		}
		params = append(params, sym)
	}

	return params, varParam, args[1:], nil
}

func nativeQuote(args []*Value, _ *Frame) (*Value, error) {
	if len(args) != 1 {
		return nil, errors.New("expected arity of one argument to __native__.quote")
	}
	return args[0], nil
}

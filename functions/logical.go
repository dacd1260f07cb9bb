package functions

import (
	"github.com/rapidpro/expressions/context"
	"github.com/rapidpro/expressions/types"
)

func init() {
	registerImpl("AND", andFn)
	registerImpl("FALSE", falseFn)
	registerImpl("IF", ifFn)
	registerImpl("OR", orFn)
	registerImpl("TRUE", trueFn)
}

func andFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	for _, a := range args {
		b, err := argBool(a)
		if err != nil {
			return types.Value{}, err
		}
		if !b {
			return types.NewBool(false), nil
		}
	}
	return types.NewBool(true), nil
}

func orFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	for _, a := range args {
		b, err := argBool(a)
		if err != nil {
			return types.Value{}, err
		}
		if b {
			return types.NewBool(true), nil
		}
	}
	return types.NewBool(false), nil
}

func falseFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	return types.NewBool(false), nil
}

func trueFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	return types.NewBool(true), nil
}

func ifFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	cond, err := argBool(args[0])
	if err != nil {
		return types.Value{}, err
	}
	if cond {
		return args[1], nil
	}
	return args[2], nil
}

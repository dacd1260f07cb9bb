package functions

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/rapidpro/expressions/context"
	"github.com/rapidpro/expressions/internal/decimalmath"
	"github.com/rapidpro/expressions/types"
)

func init() {
	registerImpl("ABS", absFn)
	registerImpl("AVERAGE", averageFn)
	registerImpl("EXP", expFn)
	registerImpl("INT", intFn)
	registerImpl("MAX", maxFn)
	registerImpl("MIN", minFn)
	registerImpl("MOD", modFn)
	registerImpl("POWER", powerFn)
	registerImpl("RAND", randFn)
	registerImpl("RANDBETWEEN", randBetweenFn)
	registerImpl("ROUND", roundFn)
	registerImpl("ROUNDDOWN", roundDownFn)
	registerImpl("ROUNDUP", roundUpFn)
	registerImpl("SUM", sumFn)
	registerImpl("TRUNC", truncFn)
}

func argDec(v types.Value) (decimal.Decimal, error) {
	return types.ToDecimal(v)
}

func decimalList(args []types.Value) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(args))
	for i, a := range args {
		d, err := argDec(a)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

func absFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	d, err := argDec(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return types.NewDec(d.Abs()), nil
}

func averageFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	nums, err := decimalList(args)
	if err != nil {
		return types.Value{}, err
	}
	if len(nums) == 0 {
		return types.Value{}, errors.New("AVERAGE requires at least one number")
	}
	sum := decimal.Zero
	for _, n := range nums {
		sum = sum.Add(n)
	}
	return types.NewDec(sum.DivRound(decimal.NewFromInt(int64(len(nums))), 12)), nil
}

func expFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	d, err := argDec(args[0])
	if err != nil {
		return types.Value{}, err
	}
	f, _ := d.Float64()
	return types.NewDec(decimal.NewFromFloat(math.Exp(f))), nil
}

func intFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	d, err := argDec(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return types.NewDec(d.Floor()), nil
}

func maxFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	nums, err := decimalList(args)
	if err != nil {
		return types.Value{}, err
	}
	if len(nums) == 0 {
		return types.Value{}, errors.New("MAX requires at least one number")
	}
	max := nums[0]
	for _, n := range nums[1:] {
		if n.GreaterThan(max) {
			max = n
		}
	}
	return types.NewDec(max), nil
}

func minFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	nums, err := decimalList(args)
	if err != nil {
		return types.Value{}, err
	}
	if len(nums) == 0 {
		return types.Value{}, errors.New("MIN requires at least one number")
	}
	min := nums[0]
	for _, n := range nums[1:] {
		if n.LessThan(min) {
			min = n
		}
	}
	return types.NewDec(min), nil
}

func modFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	number, err := argDec(args[0])
	if err != nil {
		return types.Value{}, err
	}
	divisor, err := argDec(args[1])
	if err != nil {
		return types.Value{}, err
	}
	if divisor.IsZero() {
		return types.Value{}, errors.New("MOD divisor cannot be zero")
	}
	_, remainder := number.QuoRem(divisor, 0)
	return types.NewDec(remainder), nil
}

func powerFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	number, err := argDec(args[0])
	if err != nil {
		return types.Value{}, err
	}
	power, err := argDec(args[1])
	if err != nil {
		return types.Value{}, err
	}
	return types.NewDec(decimalmath.Pow(number, power)), nil
}

func randFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	return types.NewDec(decimal.NewFromFloat(rand.Float64())), nil
}

func randBetweenFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	bottom, err := types.ToInt(args[0])
	if err != nil {
		return types.Value{}, err
	}
	top, err := types.ToInt(args[1])
	if err != nil {
		return types.Value{}, err
	}
	if top < bottom {
		return types.Value{}, errors.New("RANDBETWEEN requires top >= bottom")
	}
	return types.NewInt(bottom + rand.Int63n(top-bottom+1)), nil
}

func roundFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	number, err := argDec(args[0])
	if err != nil {
		return types.Value{}, err
	}
	digits, err := types.ToInt(args[1])
	if err != nil {
		return types.Value{}, err
	}
	return types.NewDec(decimalmath.Round(number, int32(digits))), nil
}

func roundDownFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	number, err := argDec(args[0])
	if err != nil {
		return types.Value{}, err
	}
	digits, err := types.ToInt(args[1])
	if err != nil {
		return types.Value{}, err
	}
	return types.NewDec(decimalmath.TruncateTowardZero(number, int32(digits))), nil
}

func roundUpFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	number, err := argDec(args[0])
	if err != nil {
		return types.Value{}, err
	}
	digits, err := types.ToInt(args[1])
	if err != nil {
		return types.Value{}, err
	}
	return types.NewDec(decimalmath.RoundAwayFromZero(number, int32(digits))), nil
}

func truncFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	return roundDownFn(ctx, args)
}

func sumFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	nums, err := decimalList(args)
	if err != nil {
		return types.Value{}, err
	}
	sum := decimal.Zero
	for _, n := range nums {
		sum = sum.Add(n)
	}
	return types.NewDec(sum), nil
}

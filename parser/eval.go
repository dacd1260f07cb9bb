package parser

import (
	"strings"

	"github.com/go-chrono/chrono"
	"github.com/pkg/errors"

	"github.com/rapidpro/expressions/context"
	"github.com/rapidpro/expressions/internal/decimalmath"
	"github.com/rapidpro/expressions/types"
)

// evalBinary applies op to two already-resolved values (spec.md §4.5
// operator semantics).
func evalBinary(ctx *context.Context, op tokenKind, left, right types.Value) (types.Value, error) {
	switch op {
	case tokAmp:
		l, err := types.ToString(left, ctx.DateStyle())
		if err != nil {
			return types.Value{}, err
		}
		r, err := types.ToString(right, ctx.DateStyle())
		if err != nil {
			return types.Value{}, err
		}
		return types.NewString(l + r), nil

	case tokPlus, tokMinus, tokStar, tokSlash, tokCaret:
		return evalArith(op, left, right)

	case tokEQ, tokNE, tokLT, tokLE, tokGT, tokGE:
		return evalCompare(ctx, op, left, right)

	default:
		return types.Value{}, errors.Errorf("unsupported operator")
	}
}

func evalArith(op tokenKind, left, right types.Value) (types.Value, error) {
	l, err := types.ToDecimal(left)
	if err != nil {
		return types.Value{}, err
	}
	r, err := types.ToDecimal(right)
	if err != nil {
		return types.Value{}, err
	}

	switch op {
	case tokPlus:
		return types.NewDec(l.Add(r)), nil
	case tokMinus:
		return types.NewDec(l.Sub(r)), nil
	case tokStar:
		return types.NewDec(l.Mul(r)), nil
	case tokSlash:
		if r.IsZero() {
			return types.Value{}, errors.New("division by zero")
		}
		return types.NewDec(l.DivRound(r, 16)), nil
	case tokCaret:
		return types.NewDec(decimalmath.Pow(l, r)), nil
	default:
		return types.Value{}, errors.Errorf("unsupported arithmetic operator")
	}
}

func evalCompare(ctx *context.Context, op tokenKind, left, right types.Value) (types.Value, error) {
	sl, sr, err := types.ToSame(left, right, ctx.Zone(), ctx.DateParser())
	if err != nil {
		return types.Value{}, err
	}

	var cmp int
	switch sl.Kind() {
	case types.KindDec:
		cmp = sl.AsDec().Cmp(sr.AsDec())
	case types.KindStr:
		cmp = strings.Compare(sl.AsString(), sr.AsString())
	case types.KindDate:
		cmp = compareDate(sl.AsDate(), sr.AsDate())
	case types.KindDateTime:
		ldt, _ := sl.AsDateTime()
		rdt, _ := sr.AsDateTime()
		cmp = ldt.Compare(rdt)
	default:
		return types.Value{}, errors.Errorf("values of kind %s are not comparable", sl.Kind())
	}

	switch op {
	case tokEQ:
		return types.NewBool(cmp == 0), nil
	case tokNE:
		return types.NewBool(cmp != 0), nil
	case tokLT:
		return types.NewBool(cmp < 0), nil
	case tokLE:
		return types.NewBool(cmp <= 0), nil
	case tokGT:
		return types.NewBool(cmp > 0), nil
	case tokGE:
		return types.NewBool(cmp >= 0), nil
	default:
		return types.Value{}, errors.Errorf("unsupported comparison operator")
	}
}

// compareDate orders two bare dates by (year, month, day); chrono.LocalDate
// exposes no Compare method of its own, unlike LocalDateTime/OffsetDateTime.
func compareDate(a, b chrono.LocalDate) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	switch {
	case ay != by:
		return sign(ay - by)
	case am != bm:
		return sign(int(am) - int(bm))
	default:
		return sign(ad - bd)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

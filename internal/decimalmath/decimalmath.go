// Package decimalmath implements the small set of decimal arithmetic
// helpers the expression language's ROUND family and POWER/EXP need but
// shopspring/decimal doesn't provide directly: half-up rounding and
// truncation at an arbitrary (possibly negative) digit count, and decimal
// exponentiation. Grounded on temba_expressions/utils.py's
// decimal_pow/decimal_round, adapted to Go's decimal library API.
package decimalmath

import (
	"math"

	"github.com/shopspring/decimal"
)

// maxExactExponent bounds how large an integer exponent Pow will compute
// by repeated exact multiplication before falling back to float64 math;
// beyond this the loop cost isn't worth the precision gain over math.Pow.
const maxExactExponent = 64

// Pow raises base to power. Small integer powers (the common case:
// squaring, cubing, that sort of thing) are computed by repeated exact
// decimal multiplication, avoiding the precision loss float64 math.Pow
// would introduce; anything else - fractional or large exponents - falls
// back to float64 math.Pow, same as the source's decimal_pow.
func Pow(base, power decimal.Decimal) decimal.Decimal {
	if power.Equal(power.Truncate(0)) {
		n := power.IntPart()
		if n >= 0 && n <= maxExactExponent {
			return powInt(base, n)
		}
		if n < 0 && -n <= maxExactExponent {
			return decimal.NewFromInt(1).DivRound(powInt(base, -n), 16)
		}
	}

	bf, _ := base.Float64()
	pf, _ := power.Float64()
	return decimal.NewFromFloat(math.Pow(bf, pf))
}

func powInt(base decimal.Decimal, n int64) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for i := int64(0); i < n; i++ {
		result = result.Mul(base)
	}
	return result
}

// Round rounds number to digits decimal places, half-up (ties round away
// from zero), supporting a negative digits to round into the integer
// part (e.g. digits=-2 rounds to the nearest hundred).
func Round(number decimal.Decimal, digits int32) decimal.Decimal {
	if digits >= 0 {
		return number.Round(digits)
	}
	shift := decimal.New(1, -digits)
	return number.DivRound(shift, 0).Mul(shift)
}

// TruncateTowardZero truncates number to digits decimal places without
// rounding, dropping any remaining fraction, supporting a negative
// digits the same way Round does.
func TruncateTowardZero(number decimal.Decimal, digits int32) decimal.Decimal {
	shift := decimal.New(1, digits)
	return number.Mul(shift).Truncate(0).Div(shift)
}

// RoundAwayFromZero rounds number to digits decimal places, always moving
// away from zero when there is any remainder (Excel's ROUNDUP behavior,
// as opposed to Round's half-up).
func RoundAwayFromZero(number decimal.Decimal, digits int32) decimal.Decimal {
	shift := decimal.New(1, digits)
	scaled := number.Mul(shift)
	truncated := scaled.Truncate(0)
	if !scaled.Equal(truncated) {
		if scaled.Sign() >= 0 {
			truncated = truncated.Add(decimal.NewFromInt(1))
		} else {
			truncated = truncated.Sub(decimal.NewFromInt(1))
		}
	}
	return truncated.Div(shift)
}

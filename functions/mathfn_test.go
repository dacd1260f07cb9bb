package functions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rapidpro/expressions/types"
)

func TestAbs(t *testing.T) {
	v, err := callFn(t, "ABS", dec("-4.5"))
	require.NoError(t, err)
	assert.Equal(t, "4.5", types.FormatDecimal(v.AsDec()))
}

func TestAverageSumMaxMin(t *testing.T) {
	v, err := callFn(t, "AVERAGE", in(1), in(2), in(3))
	require.NoError(t, err)
	assert.Equal(t, "2", types.FormatDecimal(v.AsDec()))

	v, err = callFn(t, "SUM", in(1), in(2), in(3))
	require.NoError(t, err)
	assert.Equal(t, "6", types.FormatDecimal(v.AsDec()))

	v, err = callFn(t, "MAX", in(5), in(9), in(2))
	require.NoError(t, err)
	assert.Equal(t, "9", types.FormatDecimal(v.AsDec()))

	v, err = callFn(t, "MIN", in(5), in(9), in(2))
	require.NoError(t, err)
	assert.Equal(t, "2", types.FormatDecimal(v.AsDec()))

	_, err = callFn(t, "AVERAGE")
	assert.Error(t, err)
}

func TestIntAndExp(t *testing.T) {
	v, err := callFn(t, "INT", dec("4.9"))
	require.NoError(t, err)
	assert.Equal(t, "4", types.FormatDecimal(v.AsDec()))

	v, err = callFn(t, "INT", dec("-4.1"))
	require.NoError(t, err)
	assert.Equal(t, "-5", types.FormatDecimal(v.AsDec()))

	v, err = callFn(t, "EXP", in(0))
	require.NoError(t, err)
	assert.Equal(t, "1", types.FormatDecimal(v.AsDec()))
}

func TestMod(t *testing.T) {
	v, err := callFn(t, "MOD", in(10), in(3))
	require.NoError(t, err)
	assert.Equal(t, "1", types.FormatDecimal(v.AsDec()))

	_, err = callFn(t, "MOD", in(10), in(0))
	assert.Error(t, err)
}

func TestPower(t *testing.T) {
	v, err := callFn(t, "POWER", in(2), in(10))
	require.NoError(t, err)
	assert.Equal(t, "1024", types.FormatDecimal(v.AsDec()))
}

func TestRandBetween(t *testing.T) {
	v, err := callFn(t, "RANDBETWEEN", in(5), in(5))
	require.NoError(t, err)
	assert.Equal(t, int64(5), v.AsInt())

	_, err = callFn(t, "RANDBETWEEN", in(5), in(1))
	assert.Error(t, err)
}

func TestRoundFamily(t *testing.T) {
	v, err := callFn(t, "ROUND", dec("2.5"))
	require.NoError(t, err)
	assert.Equal(t, "3", types.FormatDecimal(v.AsDec()))

	v, err = callFn(t, "ROUNDDOWN", dec("2.59"), in(1))
	require.NoError(t, err)
	assert.Equal(t, "2.5", types.FormatDecimal(v.AsDec()))

	v, err = callFn(t, "ROUNDUP", dec("2.51"), in(1))
	require.NoError(t, err)
	assert.Equal(t, "2.6", types.FormatDecimal(v.AsDec()))

	v, err = callFn(t, "TRUNC", dec("2.99"))
	require.NoError(t, err)
	assert.Equal(t, "2", types.FormatDecimal(v.AsDec()))

	v, err = callFn(t, "ROUND", dec("1234"), in(-2))
	require.NoError(t, err)
	assert.Equal(t, "1200", types.FormatDecimal(v.AsDec()))
}

package functions

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rapidpro/expressions/context"
	"github.com/rapidpro/expressions/types"
)

func newTestContext(t *testing.T) *context.Context {
	loc, err := time.LoadLocation("Africa/Kigali")
	require.NoError(t, err)
	cfg := context.Config{
		Zone:      loc,
		DateStyle: types.DateStyleDayFirst,
		Now:       time.Date(2015, 8, 14, 10, 38, 30, 123456000, loc),
	}
	return context.New(cfg)
}

func callFn(t *testing.T, name string, args ...types.Value) (types.Value, error) {
	t.Helper()
	reg, err := Build()
	require.NoError(t, err)
	return reg.Invoke(newTestContext(t), name, args)
}

func str(s string) types.Value { return types.NewString(s) }
func in(i int64) types.Value   { return types.NewInt(i) }
func dec(s string) types.Value { return types.NewDec(decimal.RequireFromString(s)) }

package excellent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rapidpro/expressions/context"
	"github.com/rapidpro/expressions/parser"
	"github.com/rapidpro/expressions/types"
)

func kigaliContext(t *testing.T) *context.Context {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Kigali")
	require.NoError(t, err)
	now := time.Date(2015, 8, 14, 10, 38, 30, 123456000, loc)
	return context.New(context.Config{
		Zone:      loc,
		DateStyle: types.DateStyleDayFirst,
		Now:       now,
	})
}

func TestEvaluateExpression(t *testing.T) {
	ctx := kigaliContext(t)
	v, err := EvaluateExpression("2 + 3", ctx)
	require.NoError(t, err)
	s, err := types.ToString(v, ctx.DateStyle())
	require.NoError(t, err)
	assert.Equal(t, "5", s)
}

func TestEvaluateExpressionError(t *testing.T) {
	ctx := kigaliContext(t)
	_, err := EvaluateExpression("contact.name", ctx)
	assert.Error(t, err)
}

func TestEvaluateTemplateScenarios(t *testing.T) {
	ctx := kigaliContext(t)

	out, errs := EvaluateTemplate("Answer is @(2 + 3)", ctx)
	assert.Equal(t, "Answer is 5", out)
	assert.Empty(t, errs)

	out, errs = EvaluateTemplate("Answer is @(2 + 3", ctx)
	assert.Equal(t, "Answer is @(2 + 3", out)
	assert.Empty(t, errs)

	out, errs = EvaluateTemplate("@('x')", ctx)
	assert.Equal(t, "@('x')", out)
	require.Len(t, errs, 1)
	assert.Equal(t, "Expression error at: '", errs.Error())

	out, errs = EvaluateTemplate("@(FIXED(1234.5678, 1, True))", ctx)
	assert.Equal(t, "1234.6", out)
	assert.Empty(t, errs)
}

func TestEvaluateTemplateResolveAvailable(t *testing.T) {
	ctx := kigaliContext(t)
	ctx.Set("foo", types.NewDecFromInt(5))
	ctx.Set("bar", types.NewString("x"))

	out, errs := EvaluateTemplate("@(foo + contact.name + bar)", ctx, WithStrategy(parser.ResolveAvailable))
	assert.Equal(t, `@(5+contact.name+"x")`, out)
	assert.Empty(t, errs)
}

func TestEvaluateTemplateNoExpressionsIsIdentity(t *testing.T) {
	ctx := kigaliContext(t)
	out, errs := EvaluateTemplate("plain text, no sigils", ctx)
	assert.Equal(t, "plain text, no sigils", out)
	assert.Empty(t, errs)
}

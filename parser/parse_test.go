package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rapidpro/expressions/context"
	"github.com/rapidpro/expressions/types"
)

func TestParsePrecedence(t *testing.T) {
	// * binds tighter than +.
	e, err := ParseExpression("2 + 3 * 4")
	require.NoError(t, err)
	b := e.root.(*binary)
	assert.Equal(t, tokPlus, b.op)
	rhs := b.right.(*binary)
	assert.Equal(t, tokStar, rhs.op)

	// ^ binds tighter than unary -, so -2^2 is -(2^2).
	e, err = ParseExpression("-2^2")
	require.NoError(t, err)
	u := e.root.(*unary)
	inner := u.operand.(*binary)
	assert.Equal(t, tokCaret, inner.op)

	// ^ is left-associative: 2^3^2 is (2^3)^2. spec.md's precedence
	// prose says "right-assoc", but the original implementation's test
	// suite proves left-associativity (2^3^4 == 4096); see DESIGN.md.
	e, err = ParseExpression("2^3^2")
	require.NoError(t, err)
	top := e.root.(*binary)
	assert.Equal(t, tokCaret, top.op)
	_, leftIsPower := top.left.(*binary)
	assert.True(t, leftIsPower)
	_, rightIsNumber := top.right.(*numberLit)
	assert.True(t, rightIsNumber)

	// & binds looser than + but tighter than comparisons.
	e, err = ParseExpression("1 = 2 & 3")
	require.NoError(t, err)
	cmp := e.root.(*binary)
	assert.Equal(t, tokEQ, cmp.op)
	_, rightIsConcat := cmp.right.(*binary)
	assert.True(t, rightIsConcat)
}

func TestParsePrimaries(t *testing.T) {
	e, err := ParseExpression(`"say ""hi"""`)
	require.NoError(t, err)
	lit := e.root.(*stringLit)
	assert.Equal(t, `say "hi"`, lit.value.AsString())

	e, err = ParseExpression("true")
	require.NoError(t, err)
	b := e.root.(*boolLit)
	assert.True(t, b.value.AsBool())

	e, err = ParseExpression("contact.name")
	require.NoError(t, err)
	id := e.root.(*identifier)
	assert.Equal(t, "contact.name", id.path)
	assert.True(t, e.IsBareIdentifier())

	e, err = ParseExpression(`UPPER("abc")`)
	require.NoError(t, err)
	c := e.root.(*call)
	assert.Equal(t, "UPPER", c.name)
	assert.Len(t, c.args, 1)
	assert.False(t, e.IsBareIdentifier())

	e, err = ParseExpression("(1 + 2) * 3")
	require.NoError(t, err)
	top := e.root.(*binary)
	assert.Equal(t, tokStar, top.op)
}

func TestParseErrors(t *testing.T) {
	_, err := ParseExpression("1 +")
	assert.Error(t, err)

	_, err = ParseExpression("(1 + 2")
	assert.Error(t, err)

	_, err = ParseExpression("'x'")
	assert.Error(t, err)

	_, err = ParseExpression("1 2")
	assert.Error(t, err)
}

// TestPowerAssociativityMatchesOriginal grounds the left-associative `^`
// fix against the original implementation's own literal assertions
// (temba_expressions/tests.py): 2^3^4 == 4096 (only true left-
// associative) and 4^-1 == 0.25 (the exponent operand still accepts a
// leading unary minus without regaining right-associativity).
func TestPowerAssociativityMatchesOriginal(t *testing.T) {
	ctx := context.New(context.Config{
		Zone:      time.UTC,
		DateStyle: types.DateStyleDayFirst,
		Now:       time.Now(),
	})

	e, err := ParseExpression("2^3^4")
	require.NoError(t, err)
	v, pending, _, err := e.Eval(ctx, Complete)
	require.NoError(t, err)
	assert.False(t, pending)
	s, err := types.ToString(v, ctx.DateStyle())
	require.NoError(t, err)
	assert.Equal(t, "4096", s)

	e, err = ParseExpression("4^-1")
	require.NoError(t, err)
	v, _, _, err = e.Eval(ctx, Complete)
	require.NoError(t, err)
	s, err = types.ToString(v, ctx.DateStyle())
	require.NoError(t, err)
	assert.Equal(t, "0.25", s)
}

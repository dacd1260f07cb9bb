package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDecimal(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"2.0", "2"},
		{"1234000", "1234000"},
		{"0.4440000", "0.444"},
		{"1234567890.50", "1234567890.5"},
		{"0.0", "0"},
	}
	for _, c := range cases {
		d, err := decimal.NewFromString(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.expected, FormatDecimal(d), "input %s", c.in)
	}
}

func TestToBool(t *testing.T) {
	b, err := ToBool(NewString("true"))
	require.NoError(t, err)
	assert.True(t, b)

	b, err = ToBool(NewString("False"))
	require.NoError(t, err)
	assert.False(t, b)

	_, err = ToBool(NewString("nope"))
	assert.Error(t, err)

	b, err = ToBool(NewInt(0))
	require.NoError(t, err)
	assert.False(t, b)
}

func TestToIntRoundsDecHalfUp(t *testing.T) {
	d, _ := decimal.NewFromString("2.5")
	i, err := ToInt(NewDec(d))
	require.NoError(t, err)
	assert.Equal(t, int64(3), i)
}

func TestToStringRoundTrip(t *testing.T) {
	s, err := ToString(NewInt(42), DateStyleDayFirst)
	require.NoError(t, err)
	assert.Equal(t, "42", s)

	s, err = ToString(NewBool(true), DateStyleDayFirst)
	require.NoError(t, err)
	assert.Equal(t, "TRUE", s)
}

func TestContainerDefaultAndRender(t *testing.T) {
	c := NewContainer()
	c.Set("name", NewString("Bob"))
	c.Set("Age", NewInt(32))

	s, err := ToString(NewContainer(c), DateStyleDayFirst)
	require.NoError(t, err)
	assert.Contains(t, s, "Age")
	assert.Contains(t, s, "name")

	c.SetDefault(NewString("default-value"))
	s, err = ToString(NewContainer(c), DateStyleDayFirst)
	require.NoError(t, err)
	assert.Equal(t, "default-value", s)
}

func TestContainerCaseInsensitiveLookup(t *testing.T) {
	c := NewContainer()
	c.Set("Name", NewString("Bob"))
	v, ok := c.Get("NAME")
	require.True(t, ok)
	assert.Equal(t, "Bob", v.AsString())
}

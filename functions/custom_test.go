package functions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField(t *testing.T) {
	v, err := callFn(t, "FIELD", str("a,b,c"), in(2), str(","))
	require.NoError(t, err)
	assert.Equal(t, "b", v.AsString())

	v, err = callFn(t, "FIELD", str("a b  c"), in(2))
	require.NoError(t, err)
	assert.Equal(t, "b", v.AsString())

	_, err = callFn(t, "FIELD", str("a,b,c"), in(0), str(","))
	assert.Error(t, err)
}

func TestFirstAndRemoveFirstWord(t *testing.T) {
	v, err := callFn(t, "FIRST_WORD", str("hello there world"))
	require.NoError(t, err)
	assert.Equal(t, "hello", v.AsString())

	v, err = callFn(t, "REMOVE_FIRST_WORD", str("hello there world"))
	require.NoError(t, err)
	assert.Equal(t, "there world", v.AsString())
}

func TestPercent(t *testing.T) {
	v, err := callFn(t, "PERCENT", dec("0.5"))
	require.NoError(t, err)
	assert.Equal(t, "50%", v.AsString())
}

func TestReadDigits(t *testing.T) {
	v, err := callFn(t, "READ_DIGITS", str("123456789"))
	require.NoError(t, err)
	assert.Equal(t, "1 2 3 , 4 5 , 6 7 8 9", v.AsString())

	v, err = callFn(t, "READ_DIGITS", str("123"))
	require.NoError(t, err)
	assert.Equal(t, "1 2 3", v.AsString())
}

func TestWordFunctions(t *testing.T) {
	v, err := callFn(t, "WORD", str("one two three"), in(2))
	require.NoError(t, err)
	assert.Equal(t, "two", v.AsString())

	v, err = callFn(t, "WORD", str("one two three"), in(-1))
	require.NoError(t, err)
	assert.Equal(t, "three", v.AsString())

	v, err = callFn(t, "WORD_COUNT", str("one two three"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), v.AsInt())

	v, err = callFn(t, "WORD_SLICE", str("one two three four"), in(2), in(4))
	require.NoError(t, err)
	assert.Equal(t, "two three", v.AsString())

	v, err = callFn(t, "WORD_SLICE", str("one two three four"), in(3))
	require.NoError(t, err)
	assert.Equal(t, "three four", v.AsString())

	_, err = callFn(t, "WORD_SLICE", str("one two three"), in(0))
	assert.Error(t, err)
}

func TestFormatLocation(t *testing.T) {
	v, err := callFn(t, "FORMAT_LOCATION", str("Rwanda > Kigali > Gasabo"))
	require.NoError(t, err)
	assert.Equal(t, "Gasabo", v.AsString())
}

func TestRegexGroup(t *testing.T) {
	v, err := callFn(t, "REGEX_GROUP", str("number: 42"), str(`(\d+)`), in(1))
	require.NoError(t, err)
	assert.Equal(t, "42", v.AsString())

	v, err = callFn(t, "REGEX_GROUP", str("no digits here"), str(`(\d+)`), in(1))
	require.NoError(t, err)
	assert.Equal(t, "", v.AsString())

	_, err = callFn(t, "REGEX_GROUP", str("a"), str(`(a)`), in(5))
	assert.Error(t, err)
}

func TestFormatDate(t *testing.T) {
	d := mustDate(t, 2015, 8, 14)
	v, err := callFn(t, "FORMAT_DATE", d)
	require.NoError(t, err)
	assert.Equal(t, "14-08-2015 00:00", v.AsString())
}

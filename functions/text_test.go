package functions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharAndUnichar(t *testing.T) {
	v, err := callFn(t, "CHAR", in(65))
	require.NoError(t, err)
	assert.Equal(t, "A", v.AsString())

	v, err = callFn(t, "UNICHAR", in(0x1F600))
	require.NoError(t, err)
	assert.Equal(t, "😀", v.AsString())
}

func TestCodeAndUnicode(t *testing.T) {
	v, err := callFn(t, "CODE", str("Apple"))
	require.NoError(t, err)
	assert.Equal(t, int64(65), v.AsInt())

	v, err = callFn(t, "UNICODE", str("Apple"))
	require.NoError(t, err)
	assert.Equal(t, int64(65), v.AsInt())

	_, err = callFn(t, "CODE", str(""))
	assert.Error(t, err)
}

func TestClean(t *testing.T) {
	v, err := callFn(t, "CLEAN", str("hi\x07there"))
	require.NoError(t, err)
	assert.Equal(t, "hithere", v.AsString())
}

func TestConcatenate(t *testing.T) {
	v, err := callFn(t, "CONCATENATE", str("a"), str("b"), str("c"))
	require.NoError(t, err)
	assert.Equal(t, "abc", v.AsString())
}

func TestFixed(t *testing.T) {
	v, err := callFn(t, "FIXED", dec("1234.5678"))
	require.NoError(t, err)
	assert.Equal(t, "1,234.57", v.AsString())

	v, err = callFn(t, "FIXED", dec("1234.5678"), in(0), in(1))
	require.NoError(t, err)
	assert.Equal(t, "1235", v.AsString())
}

func TestLeftRight(t *testing.T) {
	v, err := callFn(t, "LEFT", str("hello"), in(2))
	require.NoError(t, err)
	assert.Equal(t, "he", v.AsString())

	v, err = callFn(t, "RIGHT", str("hello"), in(2))
	require.NoError(t, err)
	assert.Equal(t, "lo", v.AsString())

	v, err = callFn(t, "LEFT", str("hi"), in(10))
	require.NoError(t, err)
	assert.Equal(t, "hi", v.AsString())

	_, err = callFn(t, "LEFT", str("hi"), in(-1))
	assert.Error(t, err)
}

func TestLen(t *testing.T) {
	v, err := callFn(t, "LEN", str("héllo"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), v.AsInt())
}

func TestCaseFunctions(t *testing.T) {
	v, err := callFn(t, "LOWER", str("Hello WORLD"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", v.AsString())

	v, err = callFn(t, "UPPER", str("Hello World"))
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD", v.AsString())

	v, err = callFn(t, "PROPER", str("hello world"))
	require.NoError(t, err)
	assert.Equal(t, "Hello World", v.AsString())
}

func TestRept(t *testing.T) {
	v, err := callFn(t, "REPT", str("ab"), in(3))
	require.NoError(t, err)
	assert.Equal(t, "ababab", v.AsString())
}

func TestSubstitute(t *testing.T) {
	v, err := callFn(t, "SUBSTITUTE", str("a-b-c"), str("-"), str("+"))
	require.NoError(t, err)
	assert.Equal(t, "a+b+c", v.AsString())

	v, err = callFn(t, "SUBSTITUTE", str("a-b-c"), str("-"), str("+"), in(2))
	require.NoError(t, err)
	assert.Equal(t, "a-b+c", v.AsString())

	_, err = callFn(t, "SUBSTITUTE", str("a-b-c"), str("-"), str("+"), in(0))
	assert.Error(t, err)
}

func TestArityErrors(t *testing.T) {
	_, err := callFn(t, "LEFT", str("x"))
	assert.Error(t, err)

	_, err = callFn(t, "LEFT", str("x"), in(1), in(2))
	assert.Error(t, err)

	_, err = callFn(t, "NOSUCHFUNC")
	assert.Error(t, err)
}

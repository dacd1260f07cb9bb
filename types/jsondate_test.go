package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONDateTimeRoundTrip(t *testing.T) {
	v, err := ParseJSONDateTime("2012-03-04T05:06:07.123Z")
	require.NoError(t, err)
	assert.Equal(t, KindDateTime, v.Kind())

	s, err := ToJSONDateTime(v)
	require.NoError(t, err)
	assert.Equal(t, "2012-03-04T05:06:07.123Z", s)
}

func TestParseJSONDateTimeRejectsOtherShapes(t *testing.T) {
	_, err := ParseJSONDateTime("2012-03-04T05:06:07.123+02:00")
	assert.Error(t, err)

	_, err = ParseJSONDateTime("2012-03-04T05:06:07Z")
	assert.Error(t, err)

	_, err = ParseJSONDateTime("not a date")
	assert.Error(t, err)
}

func TestToJSONDateTimeRejectsNonDateTime(t *testing.T) {
	_, err := ToJSONDateTime(NewString("x"))
	assert.Error(t, err)
}

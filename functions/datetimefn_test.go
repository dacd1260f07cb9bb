package functions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rapidpro/expressions/types"
)

func mustDate(t *testing.T, year, month, day int64) types.Value {
	t.Helper()
	v, err := callFn(t, "DATE", in(year), in(month), in(day))
	require.NoError(t, err)
	return v
}

func TestDateInvalid(t *testing.T) {
	_, err := callFn(t, "DATE", in(2015), in(2), in(30))
	assert.Error(t, err)
}

func TestDayMonthYearWeekday(t *testing.T) {
	d := mustDate(t, 2015, 8, 14)

	v, err := callFn(t, "DAY", d)
	require.NoError(t, err)
	assert.Equal(t, int64(14), v.AsInt())

	v, err = callFn(t, "MONTH", d)
	require.NoError(t, err)
	assert.Equal(t, int64(8), v.AsInt())

	v, err = callFn(t, "YEAR", d)
	require.NoError(t, err)
	assert.Equal(t, int64(2015), v.AsInt())

	// 2015-08-14 is a Friday: Sunday=1 ... Friday=6.
	v, err = callFn(t, "WEEKDAY", d)
	require.NoError(t, err)
	assert.Equal(t, int64(6), v.AsInt())
}

func TestEdate(t *testing.T) {
	d := mustDate(t, 2015, 1, 31)
	v, err := callFn(t, "EDATE", d, in(1))
	require.NoError(t, err)
	year, month, day := v.AsDate().Date()
	assert.Equal(t, 2015, year)
	assert.Equal(t, 2, int(month))
	assert.Equal(t, 28, day)
}

func TestDays(t *testing.T) {
	start := mustDate(t, 2015, 1, 1)
	end := mustDate(t, 2015, 1, 11)
	v, err := callFn(t, "DAYS", end, start)
	require.NoError(t, err)
	assert.Equal(t, int64(10), v.AsInt())
}

func TestDatedifYears(t *testing.T) {
	start := mustDate(t, 1981, 5, 28)
	end := mustDate(t, 2015, 11, 23)

	v, err := callFn(t, "DATEDIF", start, end, str("y"))
	require.NoError(t, err)
	assert.Equal(t, int64(34), v.AsInt())
}

func TestDatedifMonths(t *testing.T) {
	start := mustDate(t, 2014, 9, 20)
	end := mustDate(t, 2015, 11, 23)

	v, err := callFn(t, "DATEDIF", start, end, str("m"))
	require.NoError(t, err)
	assert.Equal(t, int64(14), v.AsInt())
}

func TestDatedifDaysYmYd(t *testing.T) {
	start := mustDate(t, 2001, 6, 1)
	end := mustDate(t, 2002, 8, 15)

	v, err := callFn(t, "DATEDIF", start, end, str("d"))
	require.NoError(t, err)
	assert.Equal(t, int64(440), v.AsInt())

	v, err = callFn(t, "DATEDIF", start, end, str("yd"))
	require.NoError(t, err)
	assert.Equal(t, int64(75), v.AsInt())

	v, err = callFn(t, "DATEDIF", start, end, str("ym"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.AsInt())
}

func TestDatedifMd(t *testing.T) {
	end := mustDate(t, 2002, 8, 15)

	v, err := callFn(t, "DATEDIF", mustDate(t, 2001, 6, 1), end, str("md"))
	require.NoError(t, err)
	assert.Equal(t, int64(14), v.AsInt())

	v, err = callFn(t, "DATEDIF", mustDate(t, 2001, 6, 16), end, str("md"))
	require.NoError(t, err)
	assert.Equal(t, int64(30), v.AsInt())
}

func TestDatedifRejectsBackwardsRange(t *testing.T) {
	start := mustDate(t, 2015, 1, 1)
	end := mustDate(t, 2014, 1, 1)
	_, err := callFn(t, "DATEDIF", start, end, str("d"))
	assert.Error(t, err)
}

func TestDatedifRejectsUnknownUnit(t *testing.T) {
	start := mustDate(t, 2015, 1, 1)
	end := mustDate(t, 2015, 2, 1)
	_, err := callFn(t, "DATEDIF", start, end, str("q"))
	assert.Error(t, err)
}

func TestTimeFunctions(t *testing.T) {
	v, err := callFn(t, "TIME", in(13), in(45), in(30))
	require.NoError(t, err)
	assert.Equal(t, 13, func() int { h, _, _ := v.AsTime().Clock(); return h }())

	// HOUR/MINUTE/SECOND read a DateTime, matching the context's fixed
	// "now" of 10:38:30 (newTestContext).
	now, err := callFn(t, "NOW")
	require.NoError(t, err)

	hour, err := callFn(t, "HOUR", now)
	require.NoError(t, err)
	assert.Equal(t, int64(10), hour.AsInt())

	minute, err := callFn(t, "MINUTE", now)
	require.NoError(t, err)
	assert.Equal(t, int64(38), minute.AsInt())

	second, err := callFn(t, "SECOND", now)
	require.NoError(t, err)
	assert.Equal(t, int64(30), second.AsInt())
}

func TestTimeInvalid(t *testing.T) {
	_, err := callFn(t, "TIME", in(24), in(0), in(0))
	assert.Error(t, err)
}

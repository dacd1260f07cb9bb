package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoadKigali(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("Africa/Kigali")
	require.NoError(t, err)
	return loc
}

func TestParseDateFillsYearFromNow(t *testing.T) {
	loc := mustLoadKigali(t)
	now := time.Date(2015, 8, 14, 10, 38, 30, 0, loc)
	p := NewParser(now, loc, true)

	v, _, err := p.Parse("1 feb", ModeDate)
	require.NoError(t, err)
	require.Equal(t, "date", v.Kind().String())

	year, month, day := v.AsDate().Date()
	assert.Equal(t, 2015, year)
	assert.Equal(t, 2, int(month))
	assert.Equal(t, 1, day)
}

func TestTwoDigitYearShiftsTowardNow(t *testing.T) {
	loc := mustLoadKigali(t)
	now := time.Date(2015, 8, 14, 10, 38, 30, 0, loc)
	p := NewParser(now, loc, true)

	// "34" expands to 2034 under the current century, which is within 50
	// years of 2015, so it should NOT shift back to 1934.
	v, _, err := p.Parse("01/02/34", ModeDate)
	require.NoError(t, err)
	year, _, _ := v.AsDate().Date()
	assert.Equal(t, 2034, year)
}

func TestTwelveHourBoundary(t *testing.T) {
	loc := mustLoadKigali(t)
	now := time.Date(2015, 8, 14, 10, 38, 30, 0, loc)
	p := NewParser(now, loc, true)

	v, _, err := p.Parse("12 00 AM", ModeTime)
	require.NoError(t, err)
	hour, _, _ := v.AsTime().Clock()
	assert.Equal(t, 0, hour)

	v, _, err = p.Parse("12 00 PM", ModeTime)
	require.NoError(t, err)
	hour, _, _ = v.AsTime().Clock()
	assert.Equal(t, 12, hour)
}

func TestDayFirstVsMonthFirst(t *testing.T) {
	loc := mustLoadKigali(t)
	now := time.Date(2015, 8, 14, 10, 38, 30, 0, loc)

	dayFirst := NewParser(now, loc, true)
	v, _, err := dayFirst.Parse("03/04/2020", ModeDate)
	require.NoError(t, err)
	_, month, day := v.AsDate().Date()
	assert.Equal(t, 4, int(month))
	assert.Equal(t, 3, day)

	monthFirst := NewParser(now, loc, false)
	v, _, err = monthFirst.Parse("03/04/2020", ModeDate)
	require.NoError(t, err)
	_, month, day = v.AsDate().Date()
	assert.Equal(t, 3, int(month))
	assert.Equal(t, 4, day)
}

func TestSpanCoversMatchedTokens(t *testing.T) {
	loc := mustLoadKigali(t)
	now := time.Date(2015, 8, 14, 10, 38, 30, 0, loc)
	p := NewParser(now, loc, true)

	_, span, err := p.Parse("my birthday is on 01/02/34", ModeAuto)
	require.NoError(t, err)
	assert.Equal(t, "01/02/34", "my birthday is on 01/02/34"[span.Start:span.End])
}

func TestInvalidDateFailsOver(t *testing.T) {
	loc := mustLoadKigali(t)
	now := time.Date(2015, 8, 14, 10, 38, 30, 0, loc)
	p := NewParser(now, loc, true)

	_, _, err := p.Parse("not a date", ModeDate)
	assert.Error(t, err)
}

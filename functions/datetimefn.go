package functions

import (
	"strings"
	"time"

	"github.com/go-chrono/chrono"
	"github.com/pkg/errors"

	"github.com/rapidpro/expressions/context"
	"github.com/rapidpro/expressions/types"
)

func init() {
	registerImpl("DATE", dateFn)
	registerImpl("DATEDIF", datedifFn)
	registerImpl("DATEVALUE", datevalueFn)
	registerImpl("DAY", dayFn)
	registerImpl("DAYS", daysFn)
	registerImpl("EDATE", edateFn)
	registerImpl("HOUR", hourFn)
	registerImpl("MINUTE", minuteFn)
	registerImpl("MONTH", monthFn)
	registerImpl("NOW", nowFn)
	registerImpl("SECOND", secondFn)
	registerImpl("TIME", timeFn)
	registerImpl("TIMEVALUE", timevalueFn)
	registerImpl("TODAY", todayFn)
	registerImpl("WEEKDAY", weekdayFn)
	registerImpl("YEAR", yearFn)
}

func argDate(ctx *context.Context, v types.Value) (types.Value, error) {
	return types.ToDate(v, ctx.Zone(), ctx.DateParser())
}

func argDateTime(ctx *context.Context, v types.Value) (types.Value, error) {
	return types.ToDateTime(v, ctx.Zone(), ctx.DateParser())
}

func argTime(ctx *context.Context, v types.Value) (types.Value, error) {
	if v.Kind() == types.KindStr {
		return types.ToTimeFromString(v.AsString(), ctx.DateParser())
	}
	return types.ToTime(v, ctx.Zone())
}

func dateFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	year, err := argInt(args[0])
	if err != nil {
		return types.Value{}, err
	}
	month, err := argInt(args[1])
	if err != nil {
		return types.Value{}, err
	}
	day, err := argInt(args[2])
	if err != nil {
		return types.Value{}, err
	}
	if !validYMD(int(year), int(month), int(day)) {
		return types.Value{}, errors.New("DATE requires a valid year, month and day")
	}
	return types.NewDate(chrono.LocalDateOf(int(year), chrono.Month(month), int(day))), nil
}

func timeFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	hour, err := argInt(args[0])
	if err != nil {
		return types.Value{}, err
	}
	minute, err := argInt(args[1])
	if err != nil {
		return types.Value{}, err
	}
	second, err := argInt(args[2])
	if err != nil {
		return types.Value{}, err
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return types.Value{}, errors.New("TIME requires a valid hour, minute and second")
	}
	return types.NewTime(chrono.LocalTimeOf(int(hour), int(minute), int(second), 0)), nil
}

func datevalueFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	s, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	return argDate(ctx, types.NewString(s))
}

func timevalueFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	s, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	return argTime(ctx, types.NewString(s))
}

func dayFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	d, err := argDate(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	_, _, day := d.AsDate().Date()
	return types.NewInt(int64(day)), nil
}

func monthFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	d, err := argDate(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	_, month, _ := d.AsDate().Date()
	return types.NewInt(int64(month)), nil
}

func yearFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	d, err := argDate(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	year, _, _ := d.AsDate().Date()
	return types.NewInt(int64(year)), nil
}

func weekdayFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	d, err := argDate(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	year, month, day := d.AsDate().Date()
	t := time.Date(year, time.Month(int(month)), day, 0, 0, 0, 0, time.UTC)
	// Sunday=1 .. Saturday=7 (spec.md §6), whereas time.Weekday is Sunday=0.
	return types.NewInt(int64(t.Weekday()) + 1), nil
}

func hourFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	dt, err := argDateTime(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	tv, err := types.ToTime(dt, ctx.Zone())
	if err != nil {
		return types.Value{}, err
	}
	hour, _, _ := tv.AsTime().Clock()
	return types.NewInt(int64(hour)), nil
}

func minuteFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	dt, err := argDateTime(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	tv, err := types.ToTime(dt, ctx.Zone())
	if err != nil {
		return types.Value{}, err
	}
	_, minute, _ := tv.AsTime().Clock()
	return types.NewInt(int64(minute)), nil
}

func secondFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	dt, err := argDateTime(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	tv, err := types.ToTime(dt, ctx.Zone())
	if err != nil {
		return types.Value{}, err
	}
	_, _, second := tv.AsTime().Clock()
	return types.NewInt(int64(second)), nil
}

func nowFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	return ctx.Now(), nil
}

func todayFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	now := ctx.Now()
	date, err := types.ToDate(now, ctx.Zone(), ctx.DateParser())
	if err != nil {
		return types.Value{}, err
	}
	return date, nil
}

func edateFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	d, err := argDate(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	months, err := argInt(args[1])
	if err != nil {
		return types.Value{}, err
	}
	year, month, day := d.AsDate().Date()
	t := addMonths(time.Date(year, time.Month(int(month)), day, 0, 0, 0, 0, time.UTC), int(months))
	return types.NewDate(chrono.LocalDateOf(t.Year(), chrono.Month(t.Month()), t.Day())), nil
}

func daysFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	end, err := argDate(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	start, err := argDate(ctx, args[1])
	if err != nil {
		return types.Value{}, err
	}
	diff := stdDate(end).Sub(stdDate(start))
	return types.NewInt(int64(diff.Hours() / 24)), nil
}

func datedifFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	startV, err := argDate(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	endV, err := argDate(ctx, args[1])
	if err != nil {
		return types.Value{}, err
	}
	unit, err := argString(ctx, args[2])
	if err != nil {
		return types.Value{}, err
	}

	start := stdDate(startV)
	end := stdDate(endV)
	if end.Before(start) {
		return types.Value{}, errors.New("DATEDIF requires end_date on or after start_date")
	}

	switch strings.ToLower(unit) {
	case "y":
		return types.NewInt(int64(monthsBetween(start, end) / 12)), nil
	case "m":
		return types.NewInt(int64(monthsBetween(start, end))), nil
	case "d":
		return types.NewInt(int64(end.Sub(start).Hours() / 24)), nil
	case "md":
		return types.NewInt(int64(mdDiff(start, end))), nil
	case "ym":
		return types.NewInt(int64(monthsBetween(start, end) % 12)), nil
	case "yd":
		return types.NewInt(int64(ydDiff(start, end))), nil
	default:
		return types.Value{}, errors.Errorf("DATEDIF unit must be one of y, m, d, md, ym, yd, got %q", unit)
	}
}

// validYMD reports whether (year, month, day) is a real Gregorian
// calendar date, round-tripped through time.Date the same way
// dates.validYMD does, since chrono.LocalDateOf panics rather than
// returning an error on an invalid date.
func validYMD(year, month, day int) bool {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	y, m, d := t.Date()
	return y == year && int(m) == month && d == day
}

func stdDate(v types.Value) time.Time {
	year, month, day := v.AsDate().Date()
	return time.Date(year, time.Month(int(month)), day, 0, 0, 0, 0, time.UTC)
}

// addMonths shifts t forward by months calendar months, clamping the day
// of month into the target month, which is what Excel-style EDATE expects:
// e.g. Jan 31 + 1 month lands on the last day of February, where
// time.AddDate alone would overflow into March.
func addMonths(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// monthsBetween returns the number of complete calendar months from start
// to end (floor), the shared building block DATEDIF's y/m/ym units use.
func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	return months
}

// mdDiff returns the day-of-month remainder once the whole months between
// start and end (monthsBetween) are subtracted out.
func mdDiff(start, end time.Time) int {
	months := monthsBetween(start, end)
	adjusted := addMonths(start, months)
	days := int(end.Sub(adjusted).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days
}

// ydDiff returns the day difference between start and end ignoring years:
// start's year is replaced with end's year (or end's year minus one, if
// that would put the adjusted start after end) - the "replace year on
// start date" approach design note §9 calls out as the one to preserve.
func ydDiff(start, end time.Time) int {
	adjusted := time.Date(end.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	if adjusted.After(end) {
		adjusted = time.Date(end.Year()-1, start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(end.Sub(adjusted).Hours() / 24)
}

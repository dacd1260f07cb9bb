package types

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-chrono/chrono"
	"github.com/shopspring/decimal"
)

// DateParser is the narrow capability ToDate/ToDateTime/ToTime need to
// coerce a Str into a temporal value. It is implemented by dates.Parser;
// types can't import the dates package directly (dates produces
// types.Value results), so the dependency runs through this interface
// instead, same as any other "accept interfaces, return structs" boundary.
type DateParser interface {
	// ParseAuto parses s as a date, datetime or time of day under the
	// parser's configured day-first/month-first policy, returning a Date,
	// DateTime or Time Value.
	ParseAuto(s string) (Value, error)
	// ParseTimeOfDay parses s as a bare time of day, returning a Time Value.
	ParseTimeOfDay(s string) (Value, error)
}

// ToBool coerces v to Bool.
func ToBool(v Value) (bool, error) {
	switch v.kind {
	case KindBool:
		return v.b, nil
	case KindInt:
		return v.i != 0, nil
	case KindDec:
		return !v.dec.IsZero(), nil
	case KindStr:
		switch caseFold(v.s) {
		case caseFold("true"):
			return true, nil
		case caseFold("false"):
			return false, nil
		}
		return false, newConversionError(v.kind, KindBool, v.s)
	case KindDate, KindTime, KindDateTime:
		return true, nil
	case KindContainer:
		return true, nil
	default:
		return false, newConversionError(v.kind, KindBool, "")
	}
}

// ToInt coerces v to Int (round half-up for Dec sources).
func ToInt(v Value) (int64, error) {
	switch v.kind {
	case KindBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindInt:
		return v.i, nil
	case KindDec:
		return v.dec.Round(0).IntPart(), nil
	case KindStr:
		i, err := strconv.ParseInt(strings.TrimSpace(v.s), 10, 64)
		if err != nil {
			return 0, newConversionError(v.kind, KindInt, v.s)
		}
		return i, nil
	default:
		return 0, newConversionError(v.kind, KindInt, "")
	}
}

// ToDecimal coerces v to Dec.
func ToDecimal(v Value) (decimal.Decimal, error) {
	switch v.kind {
	case KindBool:
		if v.b {
			return decimal.NewFromInt(1), nil
		}
		return decimal.NewFromInt(0), nil
	case KindInt:
		return decimal.NewFromInt(v.i), nil
	case KindDec:
		return v.dec, nil
	case KindStr:
		d, err := decimal.NewFromString(strings.TrimSpace(v.s))
		if err != nil {
			return decimal.Decimal{}, newConversionError(v.kind, KindDec, v.s)
		}
		return d, nil
	default:
		return decimal.Decimal{}, newConversionError(v.kind, KindDec, "")
	}
}

// ToString coerces v to Str. style governs Date/DateTime
// rendering.
func ToString(v Value, style DateStyle) (string, error) {
	switch v.kind {
	case KindBool:
		return FormatBool(v.b), nil
	case KindInt:
		return FormatInt(v.i), nil
	case KindDec:
		return FormatDecimal(v.dec), nil
	case KindStr:
		return v.s, nil
	case KindDate:
		return FormatDate(v, style), nil
	case KindTime:
		return FormatTime(v), nil
	case KindDateTime:
		return FormatDateTime(v), nil
	case KindContainer:
		return RenderContainer(v.cont, style)
	default:
		return "", newConversionError(v.kind, KindStr, "")
	}
}

// ToDate coerces v to Date. loc and parser are used only
// when v is a Str.
func ToDate(v Value, loc *time.Location, parser DateParser) (Value, error) {
	switch v.kind {
	case KindDate:
		return v, nil
	case KindDateTime:
		dt, _ := v.AsDateTime()
		date, _ := dt.Split()
		return NewDate(date), nil
	case KindStr:
		parsed, err := parser.ParseAuto(v.s)
		if err != nil {
			return Value{}, newConversionError(v.kind, KindDate, v.s)
		}
		return ToDate(parsed, loc, parser)
	default:
		return Value{}, newConversionError(v.kind, KindDate, "")
	}
}

// ToTime coerces v to Time.
func ToTime(v Value, loc *time.Location) (Value, error) {
	switch v.kind {
	case KindTime:
		return v, nil
	case KindDateTime:
		dt, _ := v.AsDateTime()
		local := dt
		if loc != nil {
			local = inLocation(dt, loc)
		}
		_, offTime := local.Split()
		hour, min, sec := offTime.Clock()
		return NewTime(chrono.LocalTimeOf(hour, min, sec, offTime.Nanosecond())), nil
	default:
		return Value{}, newConversionError(v.kind, KindTime, "")
	}
}

// ToTimeFromString coerces a Str to Time using the date-parser's TIME mode;
// kept separate from ToTime
// because it needs the parser, which isn't available to every caller of
// ToTime (e.g. DateTime -> Time needs no parser at all).
func ToTimeFromString(s string, parser DateParser) (Value, error) {
	v, err := parser.ParseTimeOfDay(s)
	if err != nil {
		return Value{}, newConversionError(KindStr, KindTime, s)
	}
	return v, nil
}

// ToDateTime coerces v to DateTime. A bare Date is
// combined with midnight in loc; a Str is parsed with ParseAuto and, if
// the parse produced a bare Date, likewise combined with midnight in loc.
func ToDateTime(v Value, loc *time.Location, parser DateParser) (Value, error) {
	switch v.kind {
	case KindDateTime:
		return v, nil
	case KindDate:
		return dateAtMidnight(v.date, loc), nil
	case KindStr:
		parsed, err := parser.ParseAuto(v.s)
		if err != nil {
			return Value{}, newConversionError(v.kind, KindDateTime, v.s)
		}
		return ToDateTime(parsed, loc, parser)
	default:
		return Value{}, newConversionError(v.kind, KindDateTime, "")
	}
}

func dateAtMidnight(d chrono.LocalDate, loc *time.Location) Value {
	if loc == nil {
		loc = time.UTC
	}
	year, month, day := d.Date()
	t := time.Date(year, time.Month(int(month)), day, 0, 0, 0, 0, loc)
	return newDateTimeFromParts(t, loc)
}

// newDateTimeFromParts constructs the DateTime Value from stdlib time
// fields, computing signed offset hours/minutes the way
// OffsetDateTimeOf expects.
func newDateTimeFromParts(t time.Time, loc *time.Location) Value {
	_, offsetSecs := t.Zone()
	offHours := offsetSecs / 3600
	offMins := (offsetSecs - offHours*3600) / 60
	if offMins < 0 {
		offMins = -offMins
	}
	dt := chrono.OffsetDateTimeOf(
		t.Year(), chrono.Month(int(t.Month())), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		offHours, offMins,
	)
	return NewDateTime(dt, loc)
}

// inLocation re-expresses dt as the offset in effect for loc at that
// instant (handles DST transitions, unlike a fixed-offset shift).
func inLocation(dt chrono.OffsetDateTime, loc *time.Location) chrono.OffsetDateTime {
	std := toStdTime(dt)
	converted := std.In(loc)
	return toChronoOffsetDateTime(converted)
}

func toStdTime(dt chrono.OffsetDateTime) time.Time {
	date, offTime := dt.Split()
	year, month, day := date.Date()
	hour, min, sec := offTime.Clock()
	off := offTime.Offset()
	loc := time.FixedZone(off.String(), offsetSeconds(off))
	return time.Date(year, time.Month(int(month)), day, hour, min, sec, offTime.Nanosecond(), loc)
}

func toChronoOffsetDateTime(t time.Time) chrono.OffsetDateTime {
	v := newDateTimeFromParts(t, t.Location())
	dt, _ := v.AsDateTime()
	return dt
}

// offsetSeconds converts a chrono.Offset to signed seconds east of UTC by
// parsing its canonical "+hh:mm" / "Z" string form, keeping us independent
// of chrono.Offset's internal representation.
func offsetSeconds(o chrono.Offset) int {
	s := o.String()
	if s == "Z" {
		return 0
	}
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	h, _ := strconv.Atoi(s[1:3])
	m, _ := strconv.Atoi(s[4:6])
	return sign * (h*3600 + m*60)
}

// ToSame coerces a and b to a common kind for comparison/concatenation:
// try both-to-decimal, then both-to-date-or-
// datetime, then both-to-string.
func ToSame(a, b Value, loc *time.Location, parser DateParser) (Value, Value, error) {
	if da, err := ToDecimal(a); err == nil {
		if db, err := ToDecimal(b); err == nil {
			return NewDec(da), NewDec(db), nil
		}
	}

	if isTemporalish(a) || isTemporalish(b) {
		wantDateTime := a.kind == KindDateTime || b.kind == KindDateTime
		if wantDateTime {
			da, errA := ToDateTime(a, loc, parser)
			db, errB := ToDateTime(b, loc, parser)
			if errA == nil && errB == nil {
				return da, db, nil
			}
		} else {
			da, errA := ToDate(a, loc, parser)
			db, errB := ToDate(b, loc, parser)
			if errA == nil && errB == nil {
				return da, db, nil
			}
		}
	}

	sa, errA := ToString(a, DateStyleDayFirst)
	sb, errB := ToString(b, DateStyleDayFirst)
	if errA != nil {
		return Value{}, Value{}, errA
	}
	if errB != nil {
		return Value{}, Value{}, errB
	}
	return NewString(sa), NewString(sb), nil
}

func isTemporalish(v Value) bool {
	switch v.kind {
	case KindDate, KindTime, KindDateTime, KindStr:
		return true
	default:
		return false
	}
}

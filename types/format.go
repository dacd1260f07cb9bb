package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatDecimal renders d in the canonical string form used throughout the
// language: no scientific notation, and trailing fractional zeros dropped.
// Examples: 2.0 -> "2", 1234000 -> "1234000",
// 0.4440000 -> "0.444", 1234567890.50 -> "1234567890.5".
func FormatDecimal(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// FormatBool renders a Bool in its canonical Str form.
func FormatBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

// FormatInt renders an Int in its canonical Str form.
func FormatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

// FormatDate renders a Date according to style: dd-MM-yyyy or MM-dd-yyyy.
func FormatDate(v Value, style DateStyle) string {
	year, month, day := v.date.Date()
	if style == DateStyleMonthFirst {
		return fmt.Sprintf("%02d-%02d-%04d", int(month), day, year)
	}
	return fmt.Sprintf("%02d-%02d-%04d", day, int(month), year)
}

// FormatTime renders a Time as HH:MM.
func FormatTime(v Value) string {
	hour, min, _ := v.tim.Clock()
	return fmt.Sprintf("%02d:%02d", hour, min)
}

// FormatDateTime renders a DateTime in full ISO-8601 with offset, e.g.
// "2012-03-04T05:06:07.000008+02:00".
func FormatDateTime(v Value) string {
	dt, _ := v.AsDateTime()
	date, offTime := dt.Split()
	year, month, day := date.Date()
	hour, min, sec := offTime.Clock()
	nsec := offTime.Nanosecond()
	offset := offTime.Offset()

	micros := nsec / 1000
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d.%06d%s",
		year, int(month), day, hour, min, sec, micros, offset.String())
}

// Repr produces the canonical string for a value in a quoted context: a
// string/date/time/datetime value is wrapped in double quotes with
// internal quotes doubled (spec.md §4.1 "repr").
func Repr(v Value, style DateStyle) string {
	switch v.Kind() {
	case KindStr:
		return quoteRepr(v.s)
	case KindDate:
		return quoteRepr(FormatDate(v, style))
	case KindTime:
		return quoteRepr(FormatTime(v))
	case KindDateTime:
		return quoteRepr(FormatDateTime(v))
	case KindBool:
		return FormatBool(v.b)
	case KindInt:
		return FormatInt(v.i)
	case KindDec:
		return FormatDecimal(v.dec)
	default:
		s, _ := ToString(v, style)
		return s
	}
}

func quoteRepr(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

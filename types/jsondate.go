package types

import (
	"fmt"
	"time"
)

// jsonDateLayout is the exact shape spec.md §6 "JSON-date round-trip"
// requires: millisecond precision, always UTC, always "Z" (never a
// numeric offset). This is distinct from FormatDateTime's canonical
// microsecond-plus-offset ISO-8601 form (spec.md §4.1 Str conversion) -
// that one is the language's own string coercion; this one is the fixed
// wire format external callers (e.g. a JSON API embedding a contact's
// `created_on`) round-trip against.
const jsonDateLayout = "2006-01-02T15:04:05.000Z07:00"

// ToJSONDateTime renders a DateTime value in the fixed millisecond-UTC
// JSON wire format. It is an error to call this on a non-DateTime value.
func ToJSONDateTime(v Value) (string, error) {
	if v.Kind() != KindDateTime {
		return "", newConversionError(v.Kind(), KindDateTime, "")
	}
	dt, _ := v.AsDateTime()
	t := toStdTime(dt).UTC()
	return t.Format(jsonDateLayout), nil
}

// ParseJSONDateTime parses s against the fixed millisecond-UTC JSON wire
// format, requiring exactly that shape (spec.md §6: "Parsing requires
// exactly this shape").
func ParseJSONDateTime(s string) (Value, error) {
	if len(s) != len("2006-01-02T15:04:05.000Z") || s[len(s)-1] != 'Z' {
		return Value{}, fmt.Errorf("invalid JSON date %q: must be YYYY-MM-DDTHH:MM:SS.mmmZ", s)
	}
	t, err := time.Parse(jsonDateLayout, s)
	if err != nil {
		return Value{}, fmt.Errorf("invalid JSON date %q: %w", s, err)
	}
	return newDateTimeFromParts(t.UTC(), time.UTC), nil
}

// StdTime extracts the stdlib time.Time a DateTime value represents, for
// callers that need to hand a parsed JSON date to an API expecting
// time.Time rather than types.Value (e.g. cmd/excellentd's "now"
// override).
func StdTime(v Value) (time.Time, error) {
	if v.Kind() != KindDateTime {
		return time.Time{}, newConversionError(v.Kind(), KindDateTime, "")
	}
	dt, _ := v.AsDateTime()
	return toStdTime(dt), nil
}

package types

import (
	"time"

	"github.com/go-chrono/chrono"
	"github.com/shopspring/decimal"
)

// Value is a tagged variant holding exactly one of the kinds in Kind.
// Values are immutable once constructed; every constructor returns a fresh
// Value by value, never a pointer, so callers can pass them around freely.
type Value struct {
	kind Kind

	b   bool
	i   int64
	dec decimal.Decimal
	s   string

	date chrono.LocalDate
	tim  chrono.LocalTime

	dt  chrono.OffsetDateTime
	loc *time.Location // zone backing dt; re-derives offsets across arithmetic

	cont *Container
}

// NewBool constructs a Bool value.
func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

// NewInt constructs an Int value.
func NewInt(i int64) Value { return Value{kind: KindInt, i: i} }

// NewDec constructs a Dec value.
func NewDec(d decimal.Decimal) Value { return Value{kind: KindDec, dec: d} }

// NewDecFromInt constructs a Dec value from an int64.
func NewDecFromInt(i int64) Value { return Value{kind: KindDec, dec: decimal.NewFromInt(i)} }

// NewString constructs a Str value.
func NewString(s string) Value { return Value{kind: KindStr, s: s} }

// NewDate constructs a Date value (no time, no zone).
func NewDate(d chrono.LocalDate) Value { return Value{kind: KindDate, date: d} }

// NewTime constructs a Time value (wall time, no zone).
func NewTime(t chrono.LocalTime) Value { return Value{kind: KindTime, tim: t} }

// NewDateTime constructs a DateTime value. loc is the zone the value was
// produced in, used to re-derive UTC offsets (DST-aware) after arithmetic;
// it must not be nil.
func NewDateTime(dt chrono.OffsetDateTime, loc *time.Location) Value {
	return Value{kind: KindDateTime, dt: dt, loc: loc}
}

// NewContainer constructs a Container value.
func NewContainer(c *Container) Value { return Value{kind: KindContainer, cont: c} }

// Kind returns which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsContainer reports whether v holds a Container.
func (v Value) IsContainer() bool { return v.kind == KindContainer }

// AsBool returns the raw bool payload. Only valid when Kind() == KindBool.
func (v Value) AsBool() bool { return v.b }

// AsInt returns the raw int64 payload. Only valid when Kind() == KindInt.
func (v Value) AsInt() int64 { return v.i }

// AsDec returns the raw decimal payload. Only valid when Kind() == KindDec.
func (v Value) AsDec() decimal.Decimal { return v.dec }

// AsString returns the raw string payload. Only valid when Kind() == KindStr.
func (v Value) AsString() string { return v.s }

// AsDate returns the raw date payload. Only valid when Kind() == KindDate.
func (v Value) AsDate() chrono.LocalDate { return v.date }

// AsTime returns the raw time payload. Only valid when Kind() == KindTime.
func (v Value) AsTime() chrono.LocalTime { return v.tim }

// AsDateTime returns the raw datetime payload and its zone. Only valid when
// Kind() == KindDateTime.
func (v Value) AsDateTime() (chrono.OffsetDateTime, *time.Location) { return v.dt, v.loc }

// AsContainer returns the raw container payload. Only valid when
// Kind() == KindContainer.
func (v Value) AsContainer() *Container { return v.cont }

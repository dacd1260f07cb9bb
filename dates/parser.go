// Package dates implements a free-form human date/time parser: tokenize
// into digit/letter runs, classify each token into candidate components,
// hypothesize component sequences, and return the value produced by the
// first sequence that both matches the token classifications and forms
// a real date/time.
package dates

import (
	"fmt"
	"time"

	"github.com/go-chrono/chrono"
	"github.com/rapidpro/expressions/types"
)

// Mode selects which family of sequences Parse tries.
type Mode int

const (
	ModeDate Mode = iota
	ModeDateTime
	ModeTime
	ModeAuto
)

// Span is the byte range within the original input that the winning
// sequence consumed.
type Span struct {
	Start int
	End   int
}

// Parser parses free-form date/time strings against a fixed parsing
// context: the current instant, the default zone, and the
// day-first/month-first policy. A Parser is immutable and safe for
// concurrent use, matching go-chrono/chrono's treatment of its zone
// table as a read-only, once-initialized resource.
type Parser struct {
	Now      time.Time
	Zone     *time.Location
	DayFirst bool
}

// NewParser constructs a Parser for a given instant, default zone, and
// day-first policy.
func NewParser(now time.Time, zone *time.Location, dayFirst bool) *Parser {
	return &Parser{Now: now, Zone: zone, DayFirst: dayFirst}
}

// ParseAuto implements types.DateParser, trying AUTO mode.
func (p *Parser) ParseAuto(s string) (types.Value, error) {
	v, _, err := p.Parse(s, ModeAuto)
	return v, err
}

// ParseTimeOfDay implements types.DateParser, trying TIME mode.
func (p *Parser) ParseTimeOfDay(s string) (types.Value, error) {
	v, _, err := p.Parse(s, ModeTime)
	return v, err
}

// Parse tokenizes s, then slides a window across the resulting tokens
// looking for a contiguous run that some candidate sequence both matches
// and can build into a real date/time. This is what lets a caller extract
// an embedded date from surrounding text (e.g.
// "my birthday is on 01/02/34"): surrounding words never classify into
// any Component, so they can never complete a sequence, and the window
// naturally settles on just the digits.
//
// Windows are tried earliest-start first, and for a given start, longest
// first, so an input that is itself nothing but a date/time (the common
// case) matches the whole string on the first attempt.
func (p *Parser) Parse(s string, mode Mode) (types.Value, Span, error) {
	tokens := tokenize(s)
	if len(tokens) == 0 {
		return types.Value{}, Span{}, fmt.Errorf("no date found in %q", s)
	}

	classifieds := make([]classified, len(tokens))
	for i, t := range tokens {
		classifieds[i] = classify(t)
	}

	for start := 0; start < len(tokens); start++ {
		for length := len(tokens) - start; length >= 1; length-- {
			window := classifieds[start : start+length]
			for _, seq := range p.candidateSequences(mode, length) {
				if v, ok := p.tryBuild(seq, window); ok {
					return v, Span{Start: tokens[start].start, End: tokens[start+length-1].end}, nil
				}
			}
		}
	}

	return types.Value{}, Span{}, fmt.Errorf("no date found in %q", s)
}

// candidateSequences returns the ordered hypotheses to try for mode,
// filtered to exactly tokenCount components.
func (p *Parser) candidateSequences(mode Mode, tokenCount int) []sequence {
	switch mode {
	case ModeDate:
		return filterByLen(dateSequences(p.DayFirst), tokenCount)
	case ModeTime:
		return filterByLen(timeSequences(), tokenCount)
	case ModeDateTime:
		return combinedSequences(p.DayFirst, tokenCount)
	default: // ModeAuto
		var all []sequence
		all = append(all, filterByLen(dateSequences(p.DayFirst), tokenCount)...)
		all = append(all, combinedSequences(p.DayFirst, tokenCount)...)
		all = append(all, filterByLen(timeSequences(), tokenCount)...)
		return all
	}
}

func filterByLen(seqs []sequence, n int) []sequence {
	var out []sequence
	for _, s := range seqs {
		if len(s) == n {
			out = append(out, s)
		}
	}
	return out
}

// parts collects the classified token assigned to each component slot in
// a candidate sequence.
type parts struct {
	year, month, day           *classified
	hour, minute, second, nano *classified
	hourAndMinute, ampm, offset *classified
}

// tryBuild checks whether every token in the sequence actually has the
// hypothesized component among its candidates, and if so, attempts to
// build the resulting Value. It returns ok=false either when the
// hypothesis doesn't match the tokens' candidate sets or when the
// resulting numeric fields don't form a real date/time.
func (p *Parser) tryBuild(seq sequence, tokens []classified) (types.Value, bool) {
	var parts parts
	for i, comp := range seq {
		cls := &tokens[i]
		if !cls.has(comp) {
			return types.Value{}, false
		}
		switch comp {
		case CompYear:
			parts.year = cls
		case CompMonth:
			parts.month = cls
		case CompDay:
			parts.day = cls
		case CompHour:
			parts.hour = cls
		case CompMinute:
			parts.minute = cls
		case CompSecond:
			parts.second = cls
		case CompNano:
			parts.nano = cls
		case CompHourAndMinute:
			parts.hourAndMinute = cls
		case CompAMPM:
			parts.ampm = cls
		case CompOffset:
			parts.offset = cls
		}
	}

	hasDate := parts.year != nil || parts.month != nil || parts.day != nil
	hasTime := parts.hour != nil || parts.hourAndMinute != nil

	var (
		year, month, day          int
		hour, minute, second, ns  int
		hasOffset                 bool
		offsetSecs                int
	)

	if hasDate {
		y, m, d, ok := p.resolveDate(parts)
		if !ok {
			return types.Value{}, false
		}
		year, month, day = y, m, d
	}

	if hasTime {
		h, mi, s, n, ok := resolveTime(parts)
		if !ok {
			return types.Value{}, false
		}
		hour, minute, second, ns = h, mi, s, n
	}

	if parts.offset != nil {
		hasOffset = true
		offsetSecs = 0 // "z" is the only alphabetic offset token accepted: UTC only.
	}

	switch {
	case hasDate && hasTime:
		return p.buildDateTime(year, month, day, hour, minute, second, ns, hasOffset, offsetSecs)
	case hasDate:
		if !validYMD(year, month, day) {
			return types.Value{}, false
		}
		return types.NewDate(chrono.LocalDateOf(year, chrono.Month(month), day)), true
	case hasTime:
		if !validHMS(hour, minute, second) {
			return types.Value{}, false
		}
		return types.NewTime(chrono.LocalTimeOf(hour, minute, second, ns)), true
	default:
		return types.Value{}, false
	}
}

// resolveDate extracts the year/month/day from the matched parts,
// defaulting a missing year to the parser's current year and applying
// two-digit year resolution. A missing day (the [M Y] sequence) defaults
// to the 1st.
func (p *Parser) resolveDate(parts parts) (year, month, day int, ok bool) {
	month = 1
	day = 1

	if parts.month != nil {
		if parts.month.tok.digit {
			month = parts.month.value
		} else {
			m, found := monthFromAlias(parts.month.tok.text)
			if !found {
				return 0, 0, 0, false
			}
			month = m
		}
	} else {
		return 0, 0, 0, false
	}

	if parts.day != nil {
		day = parts.day.value
	}

	if parts.year != nil {
		year = resolveYear(parts.year, p.Now)
	} else {
		year = p.Now.Year()
	}

	return year, month, day, true
}

// resolveYear applies two-digit year resolution: expand to the current
// century, then shift by ±100 years if the result would be more than 50
// years from now.
func resolveYear(tok *classified, now time.Time) int {
	if len(tok.tok.text) != 2 {
		return tok.value
	}

	century := (now.Year() / 100) * 100
	year := century + tok.value

	diff := year - now.Year()
	if diff > 50 {
		year -= 100
	} else if diff < -50 {
		year += 100
	}
	return year
}

// resolveTime extracts hour/minute/second/nanosecond from the matched
// parts and applies the 12-hour AM/PM adjustment.
func resolveTime(parts parts) (hour, minute, second, nsec int, ok bool) {
	if parts.hourAndMinute != nil {
		n := parts.hourAndMinute.value
		hour = n / 100
		minute = n % 100
	} else if parts.hour != nil {
		hour = parts.hour.value
		if parts.minute != nil {
			minute = parts.minute.value
		}
	} else {
		return 0, 0, 0, 0, false
	}

	if parts.second != nil {
		second = parts.second.value
	}
	if parts.nano != nil {
		nsec = parts.nano.value
	}

	if parts.ampm != nil {
		if hour < 1 || hour > 12 {
			return 0, 0, 0, 0, false
		}
		if parts.ampm.isPM {
			if hour != 12 {
				hour += 12
			}
		} else if hour == 12 {
			hour = 0
		}
	}

	return hour, minute, second, nsec, true
}

// buildDateTime resolves the zone (the captured OFFSET if present, else
// the parser's default zone) and produces a
// DateTime Value with the offset that applies in that zone at that
// instant (DST-aware).
func (p *Parser) buildDateTime(year, month, day, hour, minute, second, nsec int, hasOffset bool, offsetSecs int) (types.Value, bool) {
	if !validYMD(year, month, day) || !validHMS(hour, minute, second) {
		return types.Value{}, false
	}

	loc := p.Zone
	if loc == nil {
		loc = time.UTC
	}
	if hasOffset {
		loc = time.FixedZone("UTC", offsetSecs)
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, nsec, loc)
	_, actualOffsetSecs := t.Zone()
	offHours := actualOffsetSecs / 3600
	offMins := (actualOffsetSecs - offHours*3600) / 60
	if offMins < 0 {
		offMins = -offMins
	}

	dt := chrono.OffsetDateTimeOf(year, chrono.Month(month), day, hour, minute, second, nsec, offHours, offMins)
	return types.NewDateTime(dt, loc), true
}

// validYMD reports whether (year, month, day) is a real Gregorian calendar
// date, by round-tripping through time.Date and checking it didn't
// normalize the inputs (the classic technique for validating without
// risking a panic from a construction function that assumes validity).
func validYMD(year, month, day int) bool {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	y, m, d := t.Date()
	return y == year && int(m) == month && d == day
}

// validHMS reports whether (hour, minute, second) is a real wall-clock
// time of day.
func validHMS(hour, minute, second int) bool {
	return hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59 && second >= 0 && second <= 59
}

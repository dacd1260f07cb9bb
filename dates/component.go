package dates

import (
	"strconv"
	"strings"
)

// Component is one of the date/time building blocks a token can be
// hypothesized to fill.
type Component int

const (
	CompYear Component = iota
	CompMonth
	CompDay
	CompHour
	CompMinute
	CompSecond
	CompNano
	CompHourAndMinute
	CompAMPM
	CompOffset
)

// classified is a token together with every Component it could plausibly
// fill, and (for digit tokens) the parsed integer value.
type classified struct {
	tok        rawToken
	value      int // numeric value for digit tokens; nanosecond value for CompNano
	candidates map[Component]bool
	isPM       bool // only meaningful when candidates[CompAMPM]
	offsetZero bool // only meaningful when candidates[CompOffset]
}

func (c *classified) has(comp Component) bool { return c.candidates[comp] }

// classify determines every Component a raw token could represent.
func classify(tok rawToken) classified {
	cls := classified{tok: tok, candidates: map[Component]bool{}}

	if tok.digit {
		n, _ := strconv.Atoi(tok.text)
		cls.value = n
		length := len(tok.text)

		if (length == 2 || length == 4) && n >= 1 && n <= 9999 {
			cls.candidates[CompYear] = true
		}
		if n >= 1 && n <= 12 {
			cls.candidates[CompMonth] = true
		}
		if n >= 1 && n <= 31 {
			cls.candidates[CompDay] = true
		}
		if n >= 0 && n <= 23 {
			cls.candidates[CompHour] = true
		}
		if n >= 0 && n <= 59 {
			cls.candidates[CompMinute] = true
			cls.candidates[CompSecond] = true
		}
		if length == 3 || length == 6 || length == 9 {
			cls.candidates[CompNano] = true
			cls.value = scaleToNanos(n, length)
		}
		if length == 4 {
			hour := n / 100
			minute := n % 100
			if hour >= 1 && hour <= 24 && minute >= 1 && minute <= 59 {
				cls.candidates[CompHourAndMinute] = true
			}
		}
		return cls
	}

	lower := strings.ToLower(tok.text)
	if _, ok := monthFromAlias(lower); ok {
		cls.candidates[CompMonth] = true
	}
	switch lower {
	case "am":
		cls.candidates[CompAMPM] = true
		cls.isPM = false
	case "pm":
		cls.candidates[CompAMPM] = true
		cls.isPM = true
	case "z":
		cls.candidates[CompOffset] = true
		cls.offsetZero = true
	}
	return cls
}

// scaleToNanos scales a digit run of the given length (3, 6, or 9) to
// nanoseconds, e.g. "5" (length 3, i.e. "005" millis) -> so a literal
// length-3 token like "123" means 123 milliseconds -> 123_000_000ns.
func scaleToNanos(n, length int) int {
	switch length {
	case 3:
		return n * 1_000_000
	case 6:
		return n * 1_000
	case 9:
		return n
	default:
		return n
	}
}

package dates

// sequence is an ordered hypothesis of which Component fills each token
// position.
type sequence []Component

// dateSequences returns the ordered list of date-only hypotheses for the
// given day-first/month-first policy. Both policies try the exact same set
// of hypotheses; only the priority order of the ambiguous D-vs-M pairs
// changes, which is what lets "03/04" resolve differently under each
// policy while "2024/03/04" (unambiguous once Y is pinned) doesn't.
func dateSequences(dayFirst bool) []sequence {
	dmy := sequence{CompDay, CompMonth, CompYear}
	mdy := sequence{CompMonth, CompDay, CompYear}
	ymd := sequence{CompYear, CompMonth, CompDay}
	dm := sequence{CompDay, CompMonth}
	md := sequence{CompMonth, CompDay}
	my := sequence{CompMonth, CompYear}

	if dayFirst {
		return []sequence{dmy, mdy, ymd, dm, md, my}
	}
	return []sequence{mdy, dmy, ymd, md, dm, my}
}

// timeSequences returns the ordered list of time-only hypotheses.
func timeSequences() []sequence {
	return []sequence{
		{CompHourAndMinute},
		{CompHour, CompMinute},
		{CompHour, CompMinute, CompAMPM},
		{CompHour, CompMinute, CompSecond},
		{CompHour, CompMinute, CompSecond, CompAMPM},
		{CompHour, CompMinute, CompSecond, CompNano},
		{CompHour, CompMinute, CompSecond, CompNano, CompOffset},
	}
}

// combinedSequences concatenates every date sequence with every time
// sequence whose lengths together equal tokenCount (used for the
// AUTO/DATETIME modes).
func combinedSequences(dayFirst bool, tokenCount int) []sequence {
	var out []sequence
	for _, d := range dateSequences(dayFirst) {
		for _, tm := range timeSequences() {
			if len(d)+len(tm) == tokenCount {
				combined := make(sequence, 0, len(d)+len(tm))
				combined = append(combined, d...)
				combined = append(combined, tm...)
				out = append(out, combined)
			}
		}
	}
	return out
}

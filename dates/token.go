package dates

import "unicode"

// rawToken is a maximal run of digits or of letters from the input,
// together with its byte offsets.
type rawToken struct {
	text  string
	start int
	end   int
	digit bool
}

// tokenize splits s into maximal digit-runs and letter-runs; every other
// character is a separator and is discarded.
func tokenize(s string) []rawToken {
	runes := []rune(s)
	// byteOffsets[i] is the byte offset of runes[i]; byteOffsets[len(runes)]
	// is len(s), so a token [i,j) of runes maps to bytes [byteOffsets[i], byteOffsets[j]).
	byteOffsets := make([]int, len(runes)+1)
	offset := 0
	for i, r := range runes {
		byteOffsets[i] = offset
		offset += len(string(r))
	}
	byteOffsets[len(runes)] = offset

	var tokens []rawToken
	i := 0
	for i < len(runes) {
		switch {
		case unicode.IsDigit(runes[i]):
			j := i
			for j < len(runes) && unicode.IsDigit(runes[j]) {
				j++
			}
			tokens = append(tokens, rawToken{
				text:  string(runes[i:j]),
				start: byteOffsets[i],
				end:   byteOffsets[j],
				digit: true,
			})
			i = j
		case unicode.IsLetter(runes[i]):
			j := i
			for j < len(runes) && unicode.IsLetter(runes[j]) {
				j++
			}
			tokens = append(tokens, rawToken{
				text:  string(runes[i:j]),
				start: byteOffsets[i],
				end:   byteOffsets[j],
				digit: false,
			})
			i = j
		default:
			i++
		}
	}
	return tokens
}

// Package wordscan implements the word-tokenization rule the expression
// language's word-functions use when not splitting strictly by spaces
// (spec.md §6 "Tokenization rule for word-functions"): a token is a
// maximal run of letters, marks, digits, underscore, or apostrophe;
// otherwise each symbol character is its own token, and runs of
// characters matching neither are discarded. Grounded on
// temba_expressions/utils.py's WORD_TOKEN_REGEX
// (`[\p{M}\p{L}\p{N}_']+|\pS`), re-expressed with Go's regexp package
// since no pack example reaches for a third-party regex engine.
package wordscan

import "regexp"

var wordTokenRe = regexp.MustCompile(`[\p{M}\p{L}\p{N}_']+|\p{S}`)

// Tokenize splits text per the word-tokenization rule.
func Tokenize(text string) []string {
	return wordTokenRe.FindAllString(text, -1)
}

var spaceRunRe = regexp.MustCompile(`\s+`)

// SplitBySpaces splits text on runs of whitespace, discarding empty
// results - the "by_spaces=true" mode the word-functions also support.
func SplitBySpaces(text string) []string {
	fields := spaceRunRe.Split(text, -1)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Words returns the token list for text under the given by_spaces mode.
func Words(text string, bySpaces bool) []string {
	if bySpaces {
		return SplitBySpaces(text)
	}
	return Tokenize(text)
}

package types

import (
	"golang.org/x/text/cases"
)

// caseFolder is shared by every case-insensitive comparison the value model
// and context resolution need: container keys, boolean literals ("true" /
// "True" / "TRUE"), identifier segments. aretext/state/search.go reaches for
// x/text/cases+language to fold case for search matching; we reuse the same
// pairing instead of strings.ToLower/EqualFold, since both are doing the
// same job (locale-aware case folding, not just ASCII lowercasing).
var caseFolder = cases.Fold()

// caseFold returns a form of s suitable for case-insensitive comparison.
func caseFold(s string) string {
	return caseFolder.String(s)
}

// caseEqual reports whether a and b are equal under case folding.
func caseEqual(a, b string) bool {
	return caseFold(a) == caseFold(b)
}

package functions

import "golang.org/x/text/cases"

// caseFolder matches types.caseFolder: the registry's name lookup needs
// the same locale-aware case-insensitive comparison the value model uses
// for container keys and boolean literals.
var caseFolder = cases.Fold()

func caseFold(s string) string {
	return caseFolder.String(s)
}

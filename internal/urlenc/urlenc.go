// Package urlenc provides the URL-encoding the template scanner applies to
// interpolated values when requested (spec.md §4.6). net/url.QueryEscape
// is the right tool here outright - no repo in the example pack wraps or
// replaces net/url for query-string escaping, so this is stdlib by
// default rather than by last resort.
package urlenc

import "net/url"

// Escape percent-encodes s for inclusion in a URL query string.
func Escape(s string) string {
	return url.QueryEscape(s)
}

package types

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderContainer renders c as its Str form: the default value if one was
// set, otherwise sorted "key: value" lines, one per entry, with keys
// right-padded to the widest key's display width so the values line up in
// a column. Column alignment by display width is the same concern
// aretext/cellwidth exists to serve for terminal rendering; go-runewidth is
// the direct dependency of that concern rather than len(key), since a key
// containing wide (e.g. CJK) runes would otherwise misalign the column.
func RenderContainer(c *Container, style DateStyle) (string, error) {
	if def, ok := c.Default(); ok {
		return ToString(def, style)
	}

	keys := c.SortedKeys()
	if len(keys) == 0 {
		return "", nil
	}

	width := 0
	for _, k := range keys {
		if w := runewidth.StringWidth(k); w > width {
			width = w
		}
	}

	var b strings.Builder
	for i, k := range keys {
		v, _ := c.Get(k)
		s, err := ToString(v, style)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(k)
		b.WriteString(strings.Repeat(" ", width-runewidth.StringWidth(k)))
		b.WriteString(": ")
		b.WriteString(s)
	}
	return b.String(), nil
}

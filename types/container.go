package types

import "sort"

// defaultKey and altDefaultKey are the two spellings a caller may use to
// set or retrieve a Container's default scalar value (spec.md §3).
const (
	defaultKey    = "*"
	altDefaultKey = "__default__"
)

// Container is an ordered, case-insensitively-keyed mapping from string key
// to Value, with an optional "default" value substituted when the container
// is used in a scalar position (spec.md §3).
//
// Keys compare case-insensitively on lookup but preserve their original
// case for rendering, so Container tracks both the lookup key (lowercased)
// and the original spelling.
type Container struct {
	order      []string          // original-case keys, insertion order
	lookup     map[string]string // lowercased key -> original-case key
	values     map[string]Value  // original-case key -> value
	def        *Value
	defaultSet bool
}

// NewContainer returns an empty Container.
func NewContainer() *Container {
	return &Container{
		lookup: make(map[string]string),
		values: make(map[string]Value),
	}
}

// Set inserts or overwrites the value for key. Setting defaultKey or
// altDefaultKey sets the container's default value instead of a regular
// entry.
func (c *Container) Set(key string, v Value) {
	if key == defaultKey || key == altDefaultKey {
		c.SetDefault(v)
		return
	}

	lower := lowerASCIIAware(key)
	if existing, ok := c.lookup[lower]; ok {
		c.values[existing] = v
		return
	}

	c.order = append(c.order, key)
	c.lookup[lower] = key
	c.values[key] = v
}

// SetDefault sets the value returned when this container is used in a
// scalar position.
func (c *Container) SetDefault(v Value) {
	vv := v
	c.def = &vv
	c.defaultSet = true
}

// Get looks up key case-insensitively, returning the value and whether it
// was found. It never resolves the default key.
func (c *Container) Get(key string) (Value, bool) {
	lower := lowerASCIIAware(key)
	original, ok := c.lookup[lower]
	if !ok {
		return Value{}, false
	}
	v, ok := c.values[original]
	return v, ok
}

// Default returns the container's default scalar value, if one was set.
func (c *Container) Default() (Value, bool) {
	if c.def == nil {
		return Value{}, false
	}
	return *c.def, true
}

// Len returns the number of regular (non-default) entries.
func (c *Container) Len() int {
	return len(c.order)
}

// SortedKeys returns the container's keys (original case) sorted
// case-insensitively, for the "key: value" rendering fallback.
func (c *Container) SortedKeys() []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	sort.Slice(keys, func(i, j int) bool {
		return lowerASCIIAware(keys[i]) < lowerASCIIAware(keys[j])
	})
	return keys
}

func lowerASCIIAware(s string) string {
	return caseFold(s)
}

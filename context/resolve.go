package context

import (
	"fmt"
	"strings"

	"github.com/rapidpro/expressions/types"
)

// ResolveError reports that a dotted path could not be resolved against
// the context.
type ResolveError struct {
	Path string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("could not resolve '%s'", e.Path)
}

// Resolve looks up a dotted, case-insensitive path against the context's
// variable tree. If the path ends on a Container, the container's
// default value is returned if set, otherwise the container is rendered
// as sorted "key: value" lines - the caller never sees a bare Container
// from Resolve.
func (c *Context) Resolve(path string) (types.Value, error) {
	segments := strings.Split(path, ".")

	node := c.root
	for i, segment := range segments {
		v, ok := node.Get(segment)
		if !ok {
			return types.Value{}, &ResolveError{Path: path}
		}

		last := i == len(segments)-1
		if last {
			return c.scalarize(v)
		}

		if !v.IsContainer() {
			return types.Value{}, &ResolveError{Path: path}
		}
		node = v.AsContainer()
	}

	// Unreachable: segments is never empty since strings.Split on a
	// non-empty path always yields at least one element.
	return types.Value{}, &ResolveError{Path: path}
}

// scalarize reduces a value found at the end of a resolved path to a
// scalar: a non-container passes through unchanged; a container yields
// its default value, or failing that, its sorted string rendering.
func (c *Context) scalarize(v types.Value) (types.Value, error) {
	if !v.IsContainer() {
		return v, nil
	}

	cont := v.AsContainer()
	if def, ok := cont.Default(); ok {
		return def, nil
	}

	s, err := types.RenderContainer(cont, c.cfg.DateStyle)
	if err != nil {
		return types.Value{}, err
	}
	return types.NewString(s), nil
}

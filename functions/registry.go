// Package functions implements the built-in callable registry the
// expression evaluator invokes: case-insensitive name lookup, arity
// checking against a declared signature (required, then optional with
// defaults, then at most one variadic tail), and wrapping of any error a
// function body raises into an evaluation error that names the call site
// (spec.md §4.3).
package functions

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/rapidpro/expressions/context"
	"github.com/rapidpro/expressions/types"
)

// Func is the Go shape every built-in callable implements. ctx is never a
// user-visible argument; args holds only the user-supplied positional
// arguments after arity resolution - required args, then any optional
// args with missing ones filled from their declared default, then the
// variadic tail if the function declares one.
type Func func(ctx *context.Context, args []types.Value) (types.Value, error)

// Param describes one declared parameter, for the listing operation
// (spec.md §4.3 "the registry exposes a listing operation").
type Param struct {
	Name     string
	Optional bool
	Variadic bool
}

// Signature is a callable's declared arity contract: required params
// first, then optional params (each with a default in Defaults, same
// order), then at most one variadic param.
type Signature struct {
	Params   []Param
	Defaults []types.Value
}

func (s Signature) required() int {
	n := 0
	for _, p := range s.Params {
		if !p.Optional && !p.Variadic {
			n++
		}
	}
	return n
}

func (s Signature) optional() int {
	n := 0
	for _, p := range s.Params {
		if p.Optional {
			n++
		}
	}
	return n
}

func (s Signature) variadic() bool {
	for _, p := range s.Params {
		if p.Variadic {
			return true
		}
	}
	return false
}

type entry struct {
	name string
	doc  string
	sig  Signature
	fn   Func
}

// Registry is a case-insensitive, arity-checking function table. A
// Registry returned by Default (or Build) is read-only from that point
// on and safe for concurrent use without locking (spec.md §5); the mutex
// here only guards the construction window.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*entry
}

func newRegistry() *Registry {
	return &Registry{byName: make(map[string]*entry)}
}

// Register adds or replaces a callable under name. Intended for use while
// building a Registry (Build, or a caller assembling a custom one), not
// during concurrent evaluation.
func (r *Registry) Register(name, doc string, sig Signature, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[caseFold(name)] = &entry{name: strings.ToUpper(name), doc: doc, sig: sig, fn: fn}
}

func (r *Registry) lookup(name string) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byName[caseFold(name)]
	return e, ok
}

// Invoke resolves arity (too few/too many arguments, defaults, variadic
// tail), calls the function, and re-wraps any error it returns (or panic
// it raises) as an evaluation error including the formatted argument
// list (spec.md §4.3 "invocation contract").
func (r *Registry) Invoke(ctx *context.Context, name string, args []types.Value) (result types.Value, err error) {
	e, ok := r.lookup(name)
	if !ok {
		return types.Value{}, errors.Errorf("undefined function: %s", strings.ToUpper(name))
	}

	required := e.sig.required()
	optional := e.sig.optional()
	variadic := e.sig.variadic()

	if len(args) < required {
		return types.Value{}, errors.Errorf("too few arguments for function %s", e.name)
	}
	if !variadic && len(args) > required+optional {
		return types.Value{}, errors.Errorf("too many arguments for function %s", e.name)
	}

	fixedLen := required + optional
	provided := len(args)
	if provided > fixedLen {
		provided = fixedLen
	}

	full := make([]types.Value, 0, fixedLen+len(args))
	full = append(full, args[:provided]...)
	for i := len(full); i < fixedLen; i++ {
		full = append(full, e.sig.Defaults[i-required])
	}
	if variadic && len(args) > fixedLen {
		full = append(full, args[fixedLen:]...)
	}

	defer func() {
		if p := recover(); p != nil {
			err = wrapCallError(ctx, e.name, args, errors.Errorf("%v", p))
		}
	}()

	v, callErr := e.fn(ctx, full)
	if callErr != nil {
		return types.Value{}, wrapCallError(ctx, e.name, args, callErr)
	}
	return v, nil
}

func wrapCallError(ctx *context.Context, name string, args []types.Value, cause error) error {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = types.Repr(a, ctx.DateStyle())
	}
	return errors.Wrapf(cause, "error calling function %s with arguments %s", name, strings.Join(parts, ", "))
}

// ListingEntry is one row of the A-Z function listing.
type ListingEntry struct {
	Name        string
	Description string
	Params      []Param
}

// Listing returns every registered function sorted A-Z by name
// (spec.md §4.3).
func (r *Registry) Listing() []ListingEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ListingEntry, 0, len(r.byName))
	for _, e := range r.byName {
		out = append(out, ListingEntry{Name: e.name, Description: e.doc, Params: e.sig.Params})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

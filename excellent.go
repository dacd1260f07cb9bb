// Package excellent is the library's root package: the two evaluator
// entry points spec.md §4.7 names, `EvaluateExpression` and
// `EvaluateTemplate`, built on top of `parser` (the expression language)
// and `template` (the `@…` scanner). Everything else a caller needs -
// `Context` construction, variable insertion, function registration - is
// used directly from the `context` and `functions` packages; none of it
// is re-exported or duplicated here.
package excellent

import (
	"github.com/rapidpro/expressions/context"
	"github.com/rapidpro/expressions/parser"
	"github.com/rapidpro/expressions/template"
	"github.com/rapidpro/expressions/types"
)

// ErrorList is the accumulated per-expression error channel
// `EvaluateTemplate` returns (spec.md §7): evaluation of one `@`-site
// never aborts the rest of the template, so every site that failed
// contributes one entry here. It satisfies the error interface itself so
// callers that only care about "did anything go wrong, and what's the
// headline message" can treat it as a single error (spec.md §4.7: "the
// first error's human-readable form is the one exposed").
type ErrorList []error

// Error renders the first accumulated error's message, or an empty
// string if the list is empty.
func (l ErrorList) Error() string {
	if len(l) == 0 {
		return ""
	}
	return l[0].Error()
}

// Strings renders every accumulated error's message, in occurrence order.
func (l ErrorList) Strings() []string {
	out := make([]string, len(l))
	for i, e := range l {
		out[i] = e.Error()
	}
	return out
}

// Option configures EvaluateTemplate. The zero value of the unexported
// options struct (COMPLETE, no URL-encoding) matches spec.md's defaults.
type Option func(*templateOptions)

type templateOptions struct {
	urlEncode bool
	strategy  parser.Strategy
}

// WithURLEncode percent-encodes every interpolated value (spec.md §4.6).
func WithURLEncode() Option {
	return func(o *templateOptions) { o.urlEncode = true }
}

// WithStrategy selects COMPLETE (the default) or RESOLVE_AVAILABLE
// (spec.md §4.5, §9).
func WithStrategy(s parser.Strategy) Option {
	return func(o *templateOptions) { o.strategy = s }
}

// EvaluateExpression parses and evaluates source (the contents of an
// `@(...)` block, with no surrounding template text) under the COMPLETE
// strategy, returning the resulting Value or the first error
// encountered (spec.md §4.7).
func EvaluateExpression(source string, ctx *context.Context) (types.Value, error) {
	expr, err := parser.ParseExpression(source)
	if err != nil {
		return types.Value{}, err
	}
	value, _, _, err := expr.Eval(ctx, parser.Complete)
	if err != nil {
		return types.Value{}, err
	}
	return value, nil
}

// EvaluateTemplate renders source, substituting every `@`-introduced
// expression site with its evaluated value (spec.md §4.6, §4.7). It
// always returns a string; per-expression errors accumulate in the
// second return rather than aborting the render.
func EvaluateTemplate(source string, ctx *context.Context, opts ...Option) (string, ErrorList) {
	o := templateOptions{strategy: parser.Complete}
	for _, opt := range opts {
		opt(&o)
	}

	rendered, errs := template.Evaluate(source, ctx, template.Options{
		URLEncode: o.urlEncode,
		Strategy:  o.strategy,
	})
	return rendered, ErrorList(errs)
}

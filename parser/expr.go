package parser

import (
	"github.com/rapidpro/expressions/context"
	"github.com/rapidpro/expressions/types"
)

// Expr is a parsed expression, ready to be evaluated any number of times
// against different contexts or strategies.
type Expr struct {
	root node
}

// ParseExpression parses src (the contents of an `@(...)` block, or a
// bare identifier chain scanned by the template package) into an Expr.
func ParseExpression(src string) (*Expr, error) {
	n, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return &Expr{root: n}, nil
}

// Eval walks the expression under strategy. When the result is pending
// (only possible under ResolveAvailable), pending is true, value is the zero
// Value, and source is the canonical text that should stand in for the
// whole expression.
func (e *Expr) Eval(ctx *context.Context, strategy Strategy) (value types.Value, pending bool, source string, err error) {
	o, err := e.root.eval(ctx, strategy)
	if err != nil {
		return types.Value{}, false, "", err
	}
	return o.value, o.pending, o.source, nil
}

// IsBareIdentifier reports whether the expression is a single identifier
// chain with no operators, the case the top-level pending-emission rule
// (spec.md §9) exempts from `@(...)` wrapping.
func (e *Expr) IsBareIdentifier() bool {
	_, ok := e.root.(*identifier)
	return ok
}

package parser

import (
	"github.com/rapidpro/expressions/context"
	"github.com/rapidpro/expressions/functions"
	"github.com/rapidpro/expressions/types"
)

// Strategy selects how an unresolved identifier is handled (spec.md §4.5,
// §9).
type Strategy int

const (
	// Complete treats any failure, including an unresolved identifier, as
	// an evaluation error.
	Complete Strategy = iota
	// ResolveAvailable preserves an unresolved sub-expression as a
	// "pending" value carrying its own canonical source text, so the
	// template can be re-evaluated later against a richer context.
	ResolveAvailable
)

// outcome is what evaluating any AST node produces: either a resolved
// Value, or (under ResolveAvailable) a pending placeholder carrying the
// canonical source text that should stand in for this subtree.
type outcome struct {
	value   types.Value
	pending bool
	source  string
}

func resolved(v types.Value) outcome { return outcome{value: v} }

// node is the shape every AST node implements: literals, identifier
// chains, function calls, and unary/binary operators.
type node interface {
	eval(ctx *context.Context, strategy Strategy) (outcome, error)
}

// sourceOf renders o as the text that should appear in a pending parent's
// reconstructed source: the stored pending source if o itself is pending,
// else the resolved value's repr (spec.md §4.1 "repr") so that a resolved
// operand nested inside a pending expression still round-trips as valid
// expression syntax (e.g. a string operand comes back quoted).
func sourceOf(ctx *context.Context, o outcome) string {
	if o.pending {
		return o.source
	}
	return types.Repr(o.value, ctx.DateStyle())
}

type numberLit struct{ value types.Value }

func (n *numberLit) eval(ctx *context.Context, strategy Strategy) (outcome, error) {
	return resolved(n.value), nil
}

type stringLit struct{ value types.Value }

func (n *stringLit) eval(ctx *context.Context, strategy Strategy) (outcome, error) {
	return resolved(n.value), nil
}

type boolLit struct{ value types.Value }

func (n *boolLit) eval(ctx *context.Context, strategy Strategy) (outcome, error) {
	return resolved(n.value), nil
}

// identifier is a dotted chain as written in the source (original case
// preserved, since resolution is case-insensitive but a pending rewrite
// must reproduce what the author typed).
type identifier struct{ path string }

func (n *identifier) eval(ctx *context.Context, strategy Strategy) (outcome, error) {
	v, err := ctx.Resolve(n.path)
	if err == nil {
		return resolved(v), nil
	}
	if strategy == ResolveAvailable {
		return outcome{pending: true, source: n.path}, nil
	}
	return outcome{}, err
}

// call is a function invocation; name is the uppercase function name as
// written, args its argument expressions in source order.
type call struct {
	name string
	args []node
}

func (n *call) eval(ctx *context.Context, strategy Strategy) (outcome, error) {
	argOutcomes := make([]outcome, len(n.args))
	anyPending := false
	for i, a := range n.args {
		o, err := a.eval(ctx, strategy)
		if err != nil {
			return outcome{}, err
		}
		argOutcomes[i] = o
		if o.pending {
			anyPending = true
		}
	}

	if strategy == ResolveAvailable && anyPending {
		parts := make([]string, len(argOutcomes))
		for i, o := range argOutcomes {
			parts[i] = sourceOf(ctx, o)
		}
		return outcome{pending: true, source: n.name + "(" + joinCommas(parts) + ")"}, nil
	}

	args := make([]types.Value, len(argOutcomes))
	for i, o := range argOutcomes {
		args[i] = o.value
	}
	v, err := functions.Default().Invoke(ctx, n.name, args)
	if err != nil {
		return outcome{}, err
	}
	return resolved(v), nil
}

func joinCommas(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}

// unary is the single supported prefix operator, numeric negation.
type unary struct{ operand node }

func (n *unary) eval(ctx *context.Context, strategy Strategy) (outcome, error) {
	o, err := n.operand.eval(ctx, strategy)
	if err != nil {
		return outcome{}, err
	}
	if o.pending {
		return outcome{pending: true, source: "-" + o.source}, nil
	}

	d, err := types.ToDecimal(o.value)
	if err != nil {
		return outcome{}, err
	}
	return resolved(types.NewDec(d.Neg())), nil
}

// binary is one infix operator application; op is the lexer token kind
// for the operator (one of tokEQ, tokNE, tokLT, tokLE, tokGT, tokGE,
// tokAmp, tokPlus, tokMinus, tokStar, tokSlash, tokCaret).
type binary struct {
	op          tokenKind
	left, right node
}

func (n *binary) eval(ctx *context.Context, strategy Strategy) (outcome, error) {
	lo, err := n.left.eval(ctx, strategy)
	if err != nil {
		return outcome{}, err
	}
	ro, err := n.right.eval(ctx, strategy)
	if err != nil {
		return outcome{}, err
	}

	if strategy == ResolveAvailable && (lo.pending || ro.pending) {
		src := sourceOf(ctx, lo) + opText(n.op) + sourceOf(ctx, ro)
		return outcome{pending: true, source: src}, nil
	}

	v, err := evalBinary(ctx, n.op, lo.value, ro.value)
	if err != nil {
		return outcome{}, err
	}
	return resolved(v), nil
}

func opText(op tokenKind) string {
	switch op {
	case tokEQ:
		return "="
	case tokNE:
		return "<>"
	case tokLT:
		return "<"
	case tokLE:
		return "<="
	case tokGT:
		return ">"
	case tokGE:
		return ">="
	case tokAmp:
		return "&"
	case tokPlus:
		return "+"
	case tokMinus:
		return "-"
	case tokStar:
		return "*"
	case tokSlash:
		return "/"
	case tokCaret:
		return "^"
	default:
		return "?"
	}
}

// Package template implements the template scanner (spec.md §4.6): it
// finds `@…` expression sites in surrounding free text, delimits each
// one, hands it to the expression parser/evaluator, and concatenates the
// rendered output with the literal text around it.
package template

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rapidpro/expressions/context"
	"github.com/rapidpro/expressions/internal/urlenc"
	"github.com/rapidpro/expressions/parser"
	"github.com/rapidpro/expressions/types"
)

// Options controls how Evaluate renders an expression site.
type Options struct {
	// URLEncode, when true, percent-encodes every interpolated value
	// (spec.md §4.6).
	URLEncode bool
	// Strategy selects COMPLETE vs RESOLVE_AVAILABLE handling of
	// unresolved identifiers (spec.md §4.5, §9).
	Strategy parser.Strategy
}

// scanError reports the stray-sigil / malformed-expression parse errors
// spec.md §4.6 and §7 describe in prose ("Expression error at: <char>").
type scanError struct {
	msg string
}

func (e *scanError) Error() string { return e.msg }

func exprErrorAt(s string) error {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && s == "" {
		return &scanError{msg: "Expression error at: "}
	}
	return &scanError{msg: "Expression error at: " + string(r)}
}

// Evaluate renders src, substituting every `@`-introduced expression
// site with its evaluated (and optionally URL-encoded) value. It always
// returns a string; per-expression problems are accumulated rather than
// aborting the render (spec.md §1, §7).
func Evaluate(src string, ctx *context.Context, opts Options) (string, []error) {
	var out strings.Builder
	var errs []error

	i := 0
	for i < len(src) {
		c := src[i]
		if c != '@' {
			r, size := utf8.DecodeRuneInString(src[i:])
			out.WriteRune(r)
			i += size
			continue
		}

		// Literal "@@" collapses to a single "@".
		if i+1 < len(src) && src[i+1] == '@' {
			out.WriteByte('@')
			i += 2
			continue
		}

		if i+1 < len(src) && src[i+1] == '(' {
			content, end, ok := findMatchingParen(src, i+1)
			if !ok {
				// Unbalanced: the remainder is preserved verbatim, no
				// error (spec.md §4.6, §7).
				out.WriteString(src[i:])
				i = len(src)
				continue
			}
			rendered, err := renderExpr(content, ctx, opts)
			if err != nil {
				if _, isScan := err.(*scanError); isScan {
					// A parse error inside the parens: keep the raw
					// "@(...)" text, record the error.
					out.WriteString(src[i:end])
					errs = append(errs, err)
					i = end
					continue
				}
				// An evaluation error on an otherwise well-formed
				// expression: COMPLETE empties the site.
				errs = append(errs, err)
				i = end
				continue
			}
			out.WriteString(rendered)
			i = end
			continue
		}

		identEnd, ok := scanIdentChain(src, i+1)
		if ok {
			rendered, err := renderExpr(src[i+1:identEnd], ctx, opts)
			if err != nil {
				errs = append(errs, err)
				i = identEnd
				continue
			}
			out.WriteString(rendered)
			i = identEnd
			continue
		}

		// Stray sigil followed by an illegal starter: emit "@" verbatim
		// and record the parse error; the rest of the text is scanned
		// normally starting at the next character.
		out.WriteByte('@')
		if i+1 < len(src) {
			errs = append(errs, exprErrorAt(src[i+1:]))
		}
		i++
	}

	return out.String(), errs
}

// renderExpr parses and evaluates one expression site's source text
// (the content of an `@(...)` block, or a bare identifier chain),
// returning the text that should replace it in the output.
func renderExpr(src string, ctx *context.Context, opts Options) (string, error) {
	expr, err := parser.ParseExpression(src)
	if err != nil {
		return "", exprErrorAt(errorTail(src, err))
	}

	value, pending, source, err := expr.Eval(ctx, opts.Strategy)
	if err != nil {
		return "", err
	}

	if pending {
		if expr.IsBareIdentifier() {
			return "@" + source, nil
		}
		return "@(" + source + ")", nil
	}

	s, err := types.ToString(value, ctx.DateStyle())
	if err != nil {
		return "", err
	}
	if opts.URLEncode {
		s = urlenc.Escape(s)
	}
	return s, nil
}

// errorTail best-efforts the substring of src starting at a lex/parse
// error's byte offset, falling back to src itself when the error carries
// no position (spec.md's "Expression error at: <char>" names the
// offending character, not the whole message).
func errorTail(src string, err error) string {
	if pe, ok := err.(interface{ Pos() int }); ok {
		p := pe.Pos()
		if p >= 0 && p <= len(src) {
			return src[p:]
		}
	}
	return src
}

// findMatchingParen scans src starting at openPos (src[openPos] == '(')
// for the matching ')', honoring nested parens and double-quoted string
// literals (so a ')' or nested '(' inside a string doesn't affect
// depth). Returns the content between the parens (exclusive) and the
// index just past the closing ')'.
func findMatchingParen(src string, openPos int) (content string, end int, ok bool) {
	depth := 0
	i := openPos
	for i < len(src) {
		switch src[i] {
		case '"':
			i++
			for i < len(src) {
				if src[i] == '"' {
					if i+1 < len(src) && src[i+1] == '"' {
						i += 2
						continue
					}
					i++
					break
				}
				i++
			}
		case '(':
			depth++
			i++
		case ')':
			depth--
			i++
			if depth == 0 {
				return src[openPos+1 : i-1], i, true
			}
		default:
			i++
		}
	}
	return "", 0, false
}

// scanIdentChain greedily consumes a bare identifier chain starting at
// start: a leading letter, then letters/digits/underscore, followed by
// zero or more ".segment" runs of the same shape (spec.md §4.6). Returns
// the index just past the consumed text, or ok=false if start isn't a
// valid identifier start.
func scanIdentChain(src string, start int) (end int, ok bool) {
	i := start
	r, size := utf8.DecodeRuneInString(src[i:])
	if i >= len(src) || !unicode.IsLetter(r) {
		return 0, false
	}
	i += size
	i = consumeIdentTail(src, i)

	for {
		if i >= len(src) || src[i] != '.' {
			break
		}
		r, size := utf8.DecodeRuneInString(src[i+1:])
		if i+1 >= len(src) || !unicode.IsLetter(r) {
			break
		}
		i = i + 1 + size
		i = consumeIdentTail(src, i)
	}
	return i, true
}

func consumeIdentTail(src string, i int) int {
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			break
		}
		i += size
	}
	return i
}

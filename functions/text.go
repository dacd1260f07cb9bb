package functions

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rapidpro/expressions/context"
	"github.com/rapidpro/expressions/types"
)

func init() {
	registerImpl("CHAR", charFn)
	registerImpl("CLEAN", cleanFn)
	registerImpl("CODE", codeFn)
	registerImpl("CONCATENATE", concatenateFn)
	registerImpl("FIXED", fixedFn)
	registerImpl("LEFT", leftFn)
	registerImpl("LEN", lenFn)
	registerImpl("LOWER", lowerFn)
	registerImpl("PROPER", properFn)
	registerImpl("REPT", reptFn)
	registerImpl("RIGHT", rightFn)
	registerImpl("SUBSTITUTE", substituteFn)
	registerImpl("UNICHAR", unicharFn)
	registerImpl("UNICODE", unicodeFn)
	registerImpl("UPPER", upperFn)
}

func argString(ctx *context.Context, v types.Value) (string, error) {
	return types.ToString(v, ctx.DateStyle())
}

func argInt(v types.Value) (int64, error) {
	return types.ToInt(v)
}

func argBool(v types.Value) (bool, error) {
	return types.ToBool(v)
}

func charFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	n, err := argInt(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return types.NewString(string(rune(n))), nil
}

func cleanFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	s, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	var b strings.Builder
	for _, r := range s {
		if unicode.IsPrint(r) {
			b.WriteRune(r)
		}
	}
	return types.NewString(b.String()), nil
}

func codeFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	s, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	if s == "" {
		return types.Value{}, errors.New("CODE requires a non-empty string")
	}
	r, _ := utf8.DecodeRuneInString(s)
	return types.NewInt(int64(r)), nil
}

func concatenateFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	var b strings.Builder
	for _, a := range args {
		s, err := argString(ctx, a)
		if err != nil {
			return types.Value{}, err
		}
		b.WriteString(s)
	}
	return types.NewString(b.String()), nil
}

func fixedFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	number, err := types.ToDecimal(args[0])
	if err != nil {
		return types.Value{}, err
	}
	decimals, err := argInt(args[1])
	if err != nil {
		return types.Value{}, err
	}
	noCommas, err := argBool(args[2])
	if err != nil {
		return types.Value{}, err
	}

	rounded := number.Round(int32(decimals))
	s := rounded.StringFixed(int32(decimals))
	if !noCommas {
		s = addThousandsCommas(s)
	}
	return types.NewString(s), nil
}

func addThousandsCommas(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var grouped strings.Builder
	n := len(intPart)
	for i, c := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(c)
	}

	out := grouped.String()
	if hasFrac {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}

func leftFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	s, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	n, err := argInt(args[1])
	if err != nil {
		return types.Value{}, err
	}
	runes := []rune(s)
	if n < 0 {
		return types.Value{}, errors.New("LEFT requires a non-negative character count")
	}
	if int(n) > len(runes) {
		n = int64(len(runes))
	}
	return types.NewString(string(runes[:n])), nil
}

func rightFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	s, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	n, err := argInt(args[1])
	if err != nil {
		return types.Value{}, err
	}
	runes := []rune(s)
	if n < 0 {
		return types.Value{}, errors.New("RIGHT requires a non-negative character count")
	}
	if int(n) > len(runes) {
		n = int64(len(runes))
	}
	return types.NewString(string(runes[len(runes)-int(n):])), nil
}

func lenFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	s, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	return types.NewInt(int64(utf8.RuneCountInString(s))), nil
}

var upperCaser = cases.Upper(language.Und)
var lowerCaser = cases.Lower(language.Und)
var titleCaser = cases.Title(language.Und)

func lowerFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	s, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	return types.NewString(lowerCaser.String(s)), nil
}

func upperFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	s, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	return types.NewString(upperCaser.String(s)), nil
}

func properFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	s, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	return types.NewString(titleCaser.String(strings.ToLower(s))), nil
}

func reptFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	s, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	n, err := argInt(args[1])
	if err != nil {
		return types.Value{}, err
	}
	if n < 0 {
		return types.Value{}, errors.New("REPT requires a non-negative repeat count")
	}
	return types.NewString(strings.Repeat(s, int(n))), nil
}

func substituteFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	text, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	oldText, err := argString(ctx, args[1])
	if err != nil {
		return types.Value{}, err
	}
	newText, err := argString(ctx, args[2])
	if err != nil {
		return types.Value{}, err
	}
	instance, err := argInt(args[3])
	if err != nil {
		return types.Value{}, err
	}

	if oldText == "" {
		return types.NewString(text), nil
	}

	if instance < 0 {
		return types.NewString(strings.ReplaceAll(text, oldText, newText)), nil
	}

	if instance == 0 {
		return types.Value{}, errors.New("SUBSTITUTE instance_num cannot be zero")
	}

	count := 0
	var b strings.Builder
	remaining := text
	for {
		idx := strings.Index(remaining, oldText)
		if idx == -1 {
			b.WriteString(remaining)
			break
		}
		count++
		b.WriteString(remaining[:idx])
		if int64(count) == instance {
			b.WriteString(newText)
		} else {
			b.WriteString(oldText)
		}
		remaining = remaining[idx+len(oldText):]
	}
	return types.NewString(b.String()), nil
}

func unicharFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	n, err := argInt(args[0])
	if err != nil {
		return types.Value{}, err
	}
	return types.NewString(string(rune(n))), nil
}

func unicodeFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	return codeFn(ctx, args)
}

package functions

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/rapidpro/expressions/context"
	"github.com/rapidpro/expressions/internal/wordscan"
	"github.com/rapidpro/expressions/types"
)

var decimalHundred = decimal.NewFromInt(100)

func init() {
	registerImpl("FIELD", fieldFn)
	registerImpl("FIRST_WORD", firstWordFn)
	registerImpl("PERCENT", percentFn)
	registerImpl("READ_DIGITS", readDigitsFn)
	registerImpl("REMOVE_FIRST_WORD", removeFirstWordFn)
	registerImpl("WORD", wordFn)
	registerImpl("WORD_COUNT", wordCountFn)
	registerImpl("WORD_SLICE", wordSliceFn)
	registerImpl("FORMAT_DATE", formatDateFn)
	registerImpl("FORMAT_LOCATION", formatLocationFn)
	registerImpl("REGEX_GROUP", regexGroupFn)
}

func fieldFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	text, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	index, err := argInt(args[1])
	if err != nil {
		return types.Value{}, err
	}
	delimiter, err := argString(ctx, args[2])
	if err != nil {
		return types.Value{}, err
	}
	if index < 1 {
		return types.Value{}, errors.New("FIELD index cannot be less than 1")
	}

	var fields []string
	for _, f := range strings.Split(text, delimiter) {
		if f != delimiter && strings.TrimSpace(f) != "" {
			fields = append(fields, f)
		}
	}

	if int(index) <= len(fields) {
		return types.NewString(fields[index-1]), nil
	}
	return types.NewString(""), nil
}

func firstWordFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	return wordFn(ctx, []types.Value{args[0], types.NewInt(1), types.NewBool(false)})
}

func removeFirstWordFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	text, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	trimmed := strings.TrimLeft(text, " \t\r\n")
	first, err := firstWordFn(ctx, []types.Value{types.NewString(trimmed)})
	if err != nil {
		return types.Value{}, err
	}
	firstWord := first.AsString()
	if firstWord == "" {
		return types.NewString(""), nil
	}
	return types.NewString(strings.TrimLeft(trimmed[len(firstWord):], " \t\r\n")), nil
}

func percentFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	d, err := argDec(args[0])
	if err != nil {
		return types.Value{}, err
	}
	whole := d.Mul(decimalHundred).Round(0).IntPart()
	return types.NewString(strconv.FormatInt(whole, 10) + "%"), nil
}

func readDigitsFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	text, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return types.NewString(""), nil
	}
	if text[0] == '+' {
		text = text[1:]
	}

	length := len(text)
	switch {
	case length == 9:
		// Social security number: "123 , 45 , 6789"
		parts := []string{
			spacedDigits(text[0:3]),
			spacedDigits(text[3:5]),
			spacedDigits(text[5:9]),
		}
		return types.NewString(strings.Join(parts, " , ")), nil
	case length%3 == 0 && length > 3:
		return types.NewString(groupedDigits(text, 3)), nil
	case length%4 == 0:
		return types.NewString(groupedDigits(text, 4)), nil
	default:
		return types.NewString(spacedDigits(text)), nil
	}
}

func spacedDigits(s string) string {
	runes := []rune(s)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

func groupedDigits(s string, chunkSize int) string {
	var chunks []string
	for i := 0; i < len(s); i += chunkSize {
		end := i + chunkSize
		if end > len(s) {
			end = len(s)
		}
		chunks = append(chunks, spacedDigits(s[i:end]))
	}
	return strings.Join(chunks, " , ")
}

func wordFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	number, err := argInt(args[1])
	if err != nil {
		return types.Value{}, err
	}
	return wordSliceFn(ctx, []types.Value{args[0], args[1], types.NewInt(number + 1), args[2]})
}

func wordCountFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	text, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	bySpaces, err := argBool(args[1])
	if err != nil {
		return types.Value{}, err
	}
	return types.NewInt(int64(len(wordscan.Words(text, bySpaces)))), nil
}

func wordSliceFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	text, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	start, err := argInt(args[1])
	if err != nil {
		return types.Value{}, err
	}
	stop, err := argInt(args[2])
	if err != nil {
		return types.Value{}, err
	}
	bySpaces, err := argBool(args[3])
	if err != nil {
		return types.Value{}, err
	}

	if start == 0 {
		return types.Value{}, errors.New("WORD_SLICE start cannot be zero")
	}

	words := wordscan.Words(text, bySpaces)
	n := len(words)

	from := int(start)
	if from > 0 {
		from--
	} else {
		from = n + from
	}

	var to int
	if stop == 0 {
		to = n
	} else if stop > 0 {
		to = int(stop) - 1
	} else {
		to = n + int(stop)
	}

	if from < 0 {
		from = 0
	}
	if to > n {
		to = n
	}
	if from >= to {
		return types.NewString(""), nil
	}

	return types.NewString(strings.Join(words[from:to], " ")), nil
}

func formatDateFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	dt, err := argDateTime(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	layout := ctx.DateFormat(true)
	return types.NewString(formatByLayout(dt, ctx, layout)), nil
}

func formatLocationFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	text, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	segments := strings.Split(text, ">")
	return types.NewString(strings.TrimSpace(segments[len(segments)-1])), nil
}

// formatByLayout renders v (a DateTime-coercible value) using the
// context's "dd-MM-yyyy"/"MM-dd-yyyy" + " HH:mm" layout tokens
// (context.DateFormat), re-deriving each field through the same
// Date/Time coercions the rest of the language uses rather than
// reaching for time.Time.Format, since the layout vocabulary here is
// the language's own, not Go's reference-date one.
func formatByLayout(v types.Value, ctx *context.Context, layout string) string {
	dateV, _ := types.ToDate(v, ctx.Zone(), ctx.DateParser())
	year, month, day := dateV.AsDate().Date()
	timeV, _ := types.ToTime(v, ctx.Zone())
	hour, minute, _ := timeV.AsTime().Clock()

	r := strings.NewReplacer(
		"yyyy", fmt.Sprintf("%04d", year),
		"MM", fmt.Sprintf("%02d", int(month)),
		"dd", fmt.Sprintf("%02d", day),
		"HH", fmt.Sprintf("%02d", hour),
		"mm", fmt.Sprintf("%02d", minute),
	)
	return r.Replace(layout)
}

var regexGroupFlags = "(?ims)"

func regexGroupFn(ctx *context.Context, args []types.Value) (types.Value, error) {
	text, err := argString(ctx, args[0])
	if err != nil {
		return types.Value{}, err
	}
	pattern, err := argString(ctx, args[1])
	if err != nil {
		return types.Value{}, err
	}
	groupNum, err := argInt(args[2])
	if err != nil {
		return types.Value{}, err
	}

	re, err := regexp.Compile(regexGroupFlags + pattern)
	if err != nil {
		return types.Value{}, errors.Wrap(err, "REGEX_GROUP invalid pattern")
	}

	match := re.FindStringSubmatch(text)
	if match == nil {
		return types.NewString(""), nil
	}
	if groupNum < 0 || int(groupNum) >= len(match) {
		return types.Value{}, errors.Errorf("no such matching group %d", groupNum)
	}
	return types.NewString(match[groupNum]), nil
}

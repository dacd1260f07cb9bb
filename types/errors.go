package types

import "fmt"

// ConversionError reports a failed coercion between two value kinds.
type ConversionError struct {
	From  Kind
	To    Kind
	Value string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("unable to convert %s %q to %s", e.From, e.Value, e.To)
}

func newConversionError(from, to Kind, repr string) error {
	return &ConversionError{From: from, To: to, Value: repr}
}

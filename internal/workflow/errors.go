package workflow

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks out-of-range or non-physical values (negative
// rates, zero providers). Callers test with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

package xml

import (
	"errors"
	"fmt"
)

// ErrSyntax is matched by every [ParseError].
var ErrSyntax = errors.New("xml syntax error")

// ParseError describes malformed XML input, with the position at which the
// decoder gave up.
type ParseError struct {
	Err    error
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
	}

	return e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports [ErrSyntax] as a match, so callers don't need [errors.As] to
// detect parse failures.
func (e *ParseError) Is(target error) bool {
	return target == ErrSyntax
}

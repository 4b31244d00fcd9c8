package parser

import "errors"

// ErrMalformedRule matches every syntax error reported for a rule line. A malformed rule is
// skipped; the rest of the source is still read.
var ErrMalformedRule = errors.New("malformed rule")

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return e.message
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrMalformedRule
}

var (
	synErrNoArrow          = newSyntaxError("a rule needs -> between the left-hand side and the alternatives")
	synErrMultipleArrows   = newSyntaxError("a rule can contain only one ->")
	synErrNoProductionName = newSyntaxError("a production name is missing")
	synErrMultipleLHS      = newSyntaxError("the left-hand side must be exactly one symbol")
	synErrInvalidToken     = newSyntaxError("invalid token")
)

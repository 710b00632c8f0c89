package engine

import (
	"errors"
	"fmt"

	"eqgen/markup"
)

var (
	// ErrStructure covers missing brackets, unexpected tokens and unknown
	// environments. It aborts compilation.
	ErrStructure = errors.New("syntax error")
	// ErrAmbiguousStacking is reported for a second ungrouped index or
	// exponent at the same level. It aborts compilation.
	ErrAmbiguousStacking = errors.New("ambiguous stacking")
	// ErrUnknownSymbol is recoverable, command is skipped and reported as
	// warning.
	ErrUnknownSymbol = errors.New("unknown symbol")
)

// Error describes compilation problem together with offending token.
type Error struct {
	Kind  error
	Token markup.Token
	Msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%v at %v: %s: %v", e.Kind, e.Token, e.Msg, e.cause)
	}
	return fmt.Sprintf("%v at %v: %s", e.Kind, e.Token, e.Msg)
}

func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Kind, e.cause}
	}
	return []error{e.Kind}
}

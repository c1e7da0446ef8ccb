package descriptor

import (
	"errors"
	"fmt"
)

// ErrArity is returned when a codec receives the wrong number of tokens.
var ErrArity = errors.New("descriptor: wrong number of tokens")

// Codec parses and formats descriptors of type D as fixed-arity token
// sequences. Implementations must be safe for concurrent use.
type Codec[D any] interface {
	// Arity returns the number of tokens a descriptor occupies.
	Arity() int
	// Parse decodes exactly Arity() tokens.
	Parse(tokens []string) (D, error)
	// Append appends the Arity() tokens of d to dst.
	Append(dst []string, d D) []string
	// Equal reports whether a and b are the same descriptor.
	Equal(a, b D) bool
}

// TokenError reports a token a codec could not parse.
type TokenError struct {
	Index int
	Token string
	cause error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("descriptor: token %d (%q): %v", e.Index, e.Token, e.cause)
}

func (e *TokenError) Unwrap() error { return e.cause }

func checkArity(tokens []string, arity int) error {
	if len(tokens) != arity {
		return fmt.Errorf("%w: expected %d, got %d", ErrArity, arity, len(tokens))
	}
	return nil
}

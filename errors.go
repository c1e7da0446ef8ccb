package vocabtree

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedHeader is returned when the header line is missing or has
	// fewer than four integer fields.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrInvalidParameters is returned when a header value is outside its
	// allowed range.
	ErrInvalidParameters = errors.New("invalid parameters")

	// ErrMalformedRecord is returned when a node record is missing fields,
	// has extra fields, a field fails to parse, or its parent is a word.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrDanglingParent is returned when a node record references a parent
	// that has not been defined by an earlier record.
	ErrDanglingParent = errors.New("dangling parent")

	// ErrEmptyVocabulary is returned by operations that need a loaded tree.
	ErrEmptyVocabulary = errors.New("vocabulary is empty")

	// ErrNoTrainingData is returned when Build receives no descriptors.
	ErrNoTrainingData = errors.New("no training descriptors")
)

// HeaderError describes why the header line was rejected.
//
// errors.Is reports true for ErrMalformedHeader or ErrInvalidParameters,
// depending on Kind. The underlying parse error (if any) can be accessed via
// errors.Unwrap.
type HeaderError struct {
	Kind  error
	Field string
	Value string
	cause error
}

func (e *HeaderError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("header: %v: %v", e.Kind, e.cause)
	}
	return fmt.Sprintf("header: %v: %s=%q: %v", e.Kind, e.Field, e.Value, e.cause)
}

func (e *HeaderError) Is(target error) bool { return target == e.Kind }

func (e *HeaderError) Unwrap() error { return e.cause }

// RecordError describes a rejected node record.
//
// Line is the 1-based line number in the input (the header is line 1).
// errors.Is reports true for ErrMalformedRecord or ErrDanglingParent,
// depending on Kind.
type RecordError struct {
	Kind  error
	Line  int
	Field string
	cause error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %v: %s: %v", e.Line, e.Kind, e.Field, e.cause)
}

func (e *RecordError) Is(target error) bool { return target == e.Kind }

func (e *RecordError) Unwrap() error { return e.cause }

// ValidationError describes a structural invariant violated by a node.
type ValidationError struct {
	Node   NodeID
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("node %d: %s", e.Node, e.Reason)
}

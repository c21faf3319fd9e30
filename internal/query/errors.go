package query

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes query parse errors.
type ErrorCode string

const (
	// ErrCodeEmpty indicates an empty query string.
	ErrCodeEmpty ErrorCode = "EMPTY"

	// ErrCodeMustStartWithDot indicates the query is missing the leading '.'.
	ErrCodeMustStartWithDot ErrorCode = "MUST_START_WITH_DOT"

	// ErrCodeUnexpectedChar indicates a character outside any bracket that
	// the grammar does not allow at that position.
	ErrCodeUnexpectedChar ErrorCode = "UNEXPECTED_CHAR"

	// ErrCodeUnclosedBracket indicates a '[' with no matching ']'.
	ErrCodeUnclosedBracket ErrorCode = "UNCLOSED_BRACKET"

	// ErrCodeUnclosedQuote indicates a quoted key with no closing '"'.
	ErrCodeUnclosedQuote ErrorCode = "UNCLOSED_QUOTE"

	// ErrCodeInvalidIndex indicates malformed numeric bracket content.
	ErrCodeInvalidIndex ErrorCode = "INVALID_INDEX"

	// ErrCodeInvalidPredicate indicates bracket content that failed to parse
	// as a filter expression.
	ErrCodeInvalidPredicate ErrorCode = "INVALID_PREDICATE"
)

// ParseError is a position-carrying query parse error.
//
// All parse errors are local and recoverable: a live-typing caller is
// expected to treat most of them as "query not yet complete" rather than
// fatal.
type ParseError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Pos is the rune offset the error refers to (bracket opening position
	// for unclosed brackets, quote start for unclosed quotes).
	Pos int

	// Ch is the offending character (UnexpectedChar only).
	Ch rune

	// Value is the offending substring (InvalidIndex only).
	Value string

	// Expr is the failed filter expression (InvalidPredicate only).
	Expr string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch e.Code {
	case ErrCodeEmpty:
		return "empty query"
	case ErrCodeMustStartWithDot:
		return "query must start with '.'"
	case ErrCodeUnexpectedChar:
		return fmt.Sprintf("unexpected character '%c' at position %d", e.Ch, e.Pos)
	case ErrCodeUnclosedBracket:
		return fmt.Sprintf("unclosed bracket at position %d", e.Pos)
	case ErrCodeUnclosedQuote:
		return fmt.Sprintf("unclosed quote at position %d", e.Pos)
	case ErrCodeInvalidIndex:
		return fmt.Sprintf("invalid index '%s' at position %d", e.Value, e.Pos)
	case ErrCodeInvalidPredicate:
		return fmt.Sprintf("invalid predicate '%s' at position %d", e.Expr, e.Pos)
	default:
		return fmt.Sprintf("query error %s at position %d", e.Code, e.Pos)
	}
}

// CodeOf extracts the ErrorCode from an error, or "" if the error is not a
// ParseError. Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

package syntax

import (
	"errors"
	"fmt"
)

// Sentinel parse failures. Every parse error wraps exactly one of these,
// so callers can classify with errors.Is.
var (
	// ErrUnterminatedGroup indicates a '(' with no matching ')'
	ErrUnterminatedGroup = errors.New("missing closing ')'")

	// ErrUnmatchedParen indicates a ')' with no matching '('
	ErrUnmatchedParen = errors.New("unexpected ')'")

	// ErrUnterminatedClass indicates a '[' with no matching ']'
	ErrUnterminatedClass = errors.New("missing closing ']'")

	// ErrEmptyClass indicates a character class with no members
	ErrEmptyClass = errors.New("empty character class")

	// ErrInvalidClassRange indicates a class range whose bounds are reversed, like [z-a]
	ErrInvalidClassRange = errors.New("invalid character class range")

	// ErrDanglingQuantifier indicates a quantifier with no preceding atom
	ErrDanglingQuantifier = errors.New("quantifier missing operand")

	// ErrEmptyAlternate indicates an alternation branch with no atoms, like "a|"
	ErrEmptyAlternate = errors.New("empty alternation branch")

	// ErrTrailingBackslash indicates a '\' at the end of the pattern or class
	ErrTrailingBackslash = errors.New("trailing backslash")

	// ErrInvalidEscape indicates a malformed escape sequence, like '\xZZ'
	ErrInvalidEscape = errors.New("invalid escape sequence")
)

// Error is a pattern syntax error at a byte offset within the pattern.
type Error struct {
	Pos int   // byte offset where the error was detected
	Err error // one of the sentinel failures above
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("regex syntax error at position %d: %v", e.Pos, e.Err)
}

// Unwrap returns the underlying sentinel error
func (e *Error) Unwrap() error {
	return e.Err
}

package nfa

import (
	"errors"
	"fmt"
)

// ErrTooComplex indicates the pattern exceeded the compiler's recursion
// ceiling. Well-formed trees of reasonable depth never hit this; the
// ceiling bounds stack use on adversarial nesting.
var ErrTooComplex = errors.New("pattern too complex")

// CompileError wraps compilation errors with the offending pattern
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("NFA compilation failed for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("NFA compilation failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// BuildError represents an error during NFA construction via the Builder API
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}

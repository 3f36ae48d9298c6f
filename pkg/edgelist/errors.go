package edgelist

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrInputUnavailable marks every failure to open or read an edge source.
	// It is fatal to a run.
	ErrInputUnavailable  = errors.New("input unavailable")
	ErrUnsupportedSource = errors.New("unsupported source")
	ErrGraphFrozen       = errors.New("cannot load into a frozen graph")
)

// LoadError provides structured error information for loader failures.
type LoadError struct {
	Op     string // Operation that failed (e.g., "open", "read", "query")
	Source string // Source location
	Line   int    // Line number, if applicable
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s %s (line %d): %v", e.Op, e.Source, e.Line, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Source, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is reports true for ErrInputUnavailable and for anything the cause matches.
func (e *LoadError) Is(target error) bool {
	if target == nil {
		return false
	}
	if target == ErrInputUnavailable {
		return true
	}
	return errors.Is(e.Cause, target)
}

func unavailable(op, source string, line int, cause error) error {
	return &LoadError{Op: op, Source: source, Line: line, Cause: cause}
}

package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrFrozen   = errors.New("graph is frozen")
	ErrSelfLoop = errors.New("self-loop ignored")
)

// GraphError provides structured error information for graph mutations.
type GraphError struct {
	Op    string // Operation that failed (e.g., "AddEdge")
	Edge  Edge
	Cause error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	return fmt.Sprintf("%s {%d,%d}: %v", e.Op, e.Edge.U, e.Edge.V, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

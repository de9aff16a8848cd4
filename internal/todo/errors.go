package todo

import "fmt"

// NotFoundError reports a load for an id with no matching row.
type NotFoundError struct {
	Kind string
	ID   uint32
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Kind, e.ID)
}

// InvariantError reports a disagreement between the store and the in-memory
// working copy. This always signals a bug, never a retryable condition; it is
// surfaced, not reconciled.
type InvariantError struct {
	Msg string
}

func (e InvariantError) Error() string {
	return "invariant violation: " + e.Msg
}

func invariantf(format string, args ...any) error {
	return InvariantError{Msg: fmt.Sprintf(format, args...)}
}

package webapi

import "errors"

// ErrorValue is the wire shape of a Go error chain. Msg holds the full
// rendered message at that level and Source the next wrapped error, so the
// host can rebuild an error with a cause chain.
type ErrorValue struct {
	Msg    string      `json:"msg"`
	Source *ErrorValue `json:"source,omitempty"`
}

func (e *ErrorValue) Error() string { return e.Msg }

// ErrorValueOf flattens err and everything it wraps into a chain.
// Returns nil for a nil error.
func ErrorValueOf(err error) *ErrorValue {
	var head, tail *ErrorValue
	for err != nil {
		ev := &ErrorValue{Msg: err.Error()}
		if head == nil {
			head = ev
		} else {
			tail.Source = ev
		}
		tail = ev
		err = errors.Unwrap(err)
	}
	return head
}

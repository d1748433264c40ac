package application

import (
	"fmt"
)

// Kind classifies lifecycle service failures so callers can map them
// without parsing messages.
type Kind int

const (
	KindConflict Kind = iota + 1
	KindNotFound
	KindInvalidState
	KindInvalidArgument
	KindInternal
)

// Error is a typed service failure carrying a human-readable reason.
// Compare with errors.Is against the exported sentinels below.
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Reason + ": " + e.Err.Error()
	}
	return e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Kind, so
// errors.Is(err, ErrNotFound) works regardless of the reason text.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is matching.
var (
	ErrConflict        = &Error{Kind: KindConflict, Reason: "conflict"}
	ErrNotFound        = &Error{Kind: KindNotFound, Reason: "not found"}
	ErrInvalidState    = &Error{Kind: KindInvalidState, Reason: "invalid state"}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument, Reason: "invalid argument"}
	ErrInternal        = &Error{Kind: KindInternal, Reason: "internal error"}
)

func conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Reason: fmt.Sprintf(format, args...)}
}

func notFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Reason: fmt.Sprintf(format, args...)}
}

func invalidStatef(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Reason: fmt.Sprintf(format, args...)}
}

func invalidArgument(reason string, err error) *Error {
	return &Error{Kind: KindInvalidArgument, Reason: reason, Err: err}
}

func internal(reason string, err error) *Error {
	return &Error{Kind: KindInternal, Reason: reason, Err: err}
}

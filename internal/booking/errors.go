package booking

import (
	"errors"
	"fmt"
)

// Kind classifies a booking failure so the transport layer can pick a
// status code without parsing messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindInvalidRequest
	KindUnavailable
	KindOutOfWindow
	KindConflict
	KindInvalidTransition
)

// Error is a booking failure with a human-readable message. Storage errors
// are never wrapped in Error; they propagate as-is and classify as KindUnknown.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func errf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err, or KindUnknown for unexpected errors.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnknown
}

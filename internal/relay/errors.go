package relay

import (
	"errors"
	"fmt"
)

// Kind classifies why a submission did not go through.
type Kind int

const (
	// KindTransport covers everything before a status line arrives:
	// DNS, connection, TLS, timeouts, cancelled contexts.
	KindTransport Kind = iota
	// KindRejected means the relay answered with a non-2xx status.
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport failure"
	case KindRejected:
		return "relay rejection"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error describes a failed submission.
type Error struct {
	Kind       Kind
	StatusCode int    // HTTP status for KindRejected
	Detail     string // relay-supplied message, when it sent one
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindRejected && e.Detail != "":
		return fmt.Sprintf("%s: status %d: %s", e.Kind, e.StatusCode, e.Detail)
	case e.Kind == KindRejected:
		return fmt.Sprintf("%s: status %d", e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRejected reports whether err is a non-2xx answer from the relay.
func IsRejected(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == KindRejected
}

// IsTransport reports whether err is a failure to reach the relay.
func IsTransport(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == KindTransport
}

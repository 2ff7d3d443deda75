package contact

import (
	"errors"
	"fmt"
)

// Status is the submission lifecycle state.
type Status int

const (
	StatusIdle Status = iota
	StatusSending
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSending:
		return "sending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name written by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	for _, candidate := range []Status{StatusIdle, StatusSending, StatusSuccess, StatusError} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("contact: unknown status %q", text)
}

// Field names accepted by UpdateField.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldMessage = "message"
)

// Fields are the values the visitor has typed.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Complete reports whether the required fields are present.
func (f Fields) Complete() bool {
	return f.Email != "" && f.Message != ""
}

// State is a snapshot of the form.
type State struct {
	Status Status `json:"status"`
	Fields Fields `json:"fields"`
}

var (
	// ErrValidation is returned by Submit when email or message is empty.
	ErrValidation = errors.New("contact: email and message are required")
	// ErrBusy is returned by Submit outside the Idle state.
	ErrBusy = errors.New("contact: a submission is already in progress")
	// ErrClosed is returned by operations on a closed Controller.
	ErrClosed = errors.New("contact: controller closed")
	// ErrUnknownField is returned by UpdateField for a name it does not own.
	ErrUnknownField = errors.New("contact: unknown field")
)

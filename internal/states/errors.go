package states

import (
	"errors"
	"log/slog"
)

var (
	// ErrValidation indicates a malformed or incomplete request.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates an unknown state or a state without facts.
	ErrNotFound = errors.New("not found")

	// ErrIndex indicates a fact index outside the state's fact list.
	ErrIndex = errors.New("fact index out of range")

	// ErrStorage indicates the fact overlay store failed.
	ErrStorage = errors.New("storage unavailable")
)

// Error is a failure carrying a client-facing message.
type Error struct {
	Kind    error
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the kind and the cause for errors.Is() compatibility.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Message returns the client-facing message of err, or fallback when err
// carries none.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}

func validationError(msg string) error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func notFoundError(msg string) error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func indexError(msg string) error {
	return &Error{Kind: ErrIndex, Message: msg}
}

// storageError logs the cause and hides it behind a generic message.
func storageError(op, code string, err error) error {
	slog.Error("fact store failure", "op", op, "state", code, "error", err)
	return &Error{Kind: ErrStorage, Message: "Internal Server Error", Err: err}
}

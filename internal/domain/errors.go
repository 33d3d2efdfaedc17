package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the services can return. Handlers map
// kinds to HTTP statuses; services never return untyped errors for expected
// failure modes.
type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindNotFound         ErrorKind = "not_found"
	KindConflict         ErrorKind = "conflict"
	KindDuplicate        ErrorKind = "duplicate"
	KindUnauthorized     ErrorKind = "unauthorized"
	KindAlreadyDone      ErrorKind = "already_done"
	KindExhaustedRetries ErrorKind = "exhausted_retries"
	KindServer           ErrorKind = "server"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or KindServer for untyped errors.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindServer
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Duplicatef(format string, args ...any) *Error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf(format, args...)}
}

func Unauthorizedf(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func AlreadyDonef(format string, args ...any) *Error {
	return &Error{Kind: KindAlreadyDone, Message: fmt.Sprintf(format, args...)}
}

func ExhaustedRetriesf(format string, args ...any) *Error {
	return &Error{Kind: KindExhaustedRetries, Message: fmt.Sprintf(format, args...)}
}

func ServerError(msg string, err error) *Error {
	return &Error{Kind: KindServer, Message: msg, Err: err}
}

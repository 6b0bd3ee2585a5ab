package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure. The API layer maps each kind to one
// HTTP status.
type Kind int

// Failure kinds.
const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// User-facing messages shared by several operations.
const (
	MsgInternal          = "An unexpected error occurred"
	MsgUnauthorized      = "unauthorized"
	MsgAdminOnly         = "you dont have access to this route"
	MsgNotPermitted      = "you're not allowed to perform this operation"
	MsgTodoNotFound      = "todo not found"
	MsgTodoIDMissing     = "todoId is missing"
	MsgInvalidID         = "invalid id"
	MsgTitleTaken        = "todo with this title already exists"
	MsgTaskNotDeleted    = "this task is not deleted"
	MsgEmailTaken        = "email already exists"
	MsgWrongCredentials  = "wrong email or password"
	MsgInvalidCode       = "invalid code"
	MsgWrongCode         = "wrong code"
	MsgWrongPassword     = "wrong password"
	MsgIncorrectPassword = "incorrect password"
	MsgUserNotFound      = "user not found"
)

// Error is the error type returned by every service operation.
// Message is safe to show to clients; Err carries the underlying cause for logs.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds an Error.
func NewError(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

func validationError(op, message string, err error) *Error {
	return NewError(KindValidation, op, message, err)
}

func internalError(op string, err error) *Error {
	return NewError(KindInternal, op, MsgInternal, err)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client-safe message of err. Errors that are not
// *Error, and internal errors, yield MsgInternal.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal && e.Message != "" {
		return e.Message
	}
	return MsgInternal
}

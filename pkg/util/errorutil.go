package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Kind is the closed set of application failure kinds. Every failure that
// reaches the terminal handler is one of these four.
type Kind int

const (
	KindBadRequest Kind = iota
	KindForbidden
	KindNotFound
	KindServerFault
)

// HTTPStatus maps a kind onto its response status.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindServerFault:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// Code returns the machine-readable code rendered in error responses.
func (k Kind) Code() string {
	switch k {
	case KindBadRequest:
		return "BAD_REQUEST"
	case KindForbidden:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	case KindServerFault:
		return "SERVER_FAULT"
	}
	return "SERVER_FAULT"
}

func (k Kind) defaultMessage() string {
	switch k {
	case KindBadRequest:
		return "Bad Request"
	case KindForbidden:
		return "Permission denied"
	case KindNotFound:
		return "Not Found"
	case KindServerFault:
		return "Internal Server Error"
	}
	return "Internal Server Error"
}

// Error is the typed application failure. It is created at the point of
// detection and consumed exactly once by the terminal handler.
type Error struct {
	Kind    Kind
	Message string
	Meta    map[string]any
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

func newError(kind Kind, message string, meta map[string]any) *Error {
	if message == "" {
		message = kind.defaultMessage()
	}
	return &Error{Kind: kind, Message: message, Meta: meta}
}

// NewBadRequest flags malformed or missing input.
func NewBadRequest(message string, meta map[string]any) error {
	return newError(KindBadRequest, message, meta)
}

// NewForbidden flags an absent, invalid or insufficiently privileged token.
func NewForbidden(message string) error {
	return newError(KindForbidden, message, nil)
}

// NewNotFound flags a referenced entity that does not exist.
func NewNotFound(resource string) error {
	if resource == "" {
		return newError(KindNotFound, "", nil)
	}
	return newError(KindNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewServerFault wraps an unexpected persistence or crypto failure.
func NewServerFault(err error) error {
	e := newError(KindServerFault, "", nil)
	e.Err = err
	return e
}

// ToError normalizes any error into the closed taxonomy. Database errors
// carrying a SQLSTATE code are collapsed to a generic message so driver
// details never reach a client.
func ToError(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, pgx.ErrNoRows) {
		e := newError(KindNotFound, "", nil)
		e.Err = err
		return e
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &Error{Kind: KindServerFault, Message: "Database Error", Err: err}
	}

	e := newError(KindServerFault, "", nil)
	e.Err = err
	return e
}

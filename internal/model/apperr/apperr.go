// Package apperr holds the failure taxonomy shared by the domain
// services and the HTTP boundary. Every failure is terminal for its
// request; callers never retry.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// NotFoundError means an entity id or key does not exist.
type NotFoundError struct {
	Err string
}

func (e *NotFoundError) Error() string {
	return e.Err
}

// NoDataError means a list query legitimately matched nothing.
type NoDataError struct {
	Err string
}

func (e *NoDataError) Error() string {
	return e.Err
}

// InvalidRequestError means a semantic validation failure.
type InvalidRequestError struct {
	Err string
}

func (e *InvalidRequestError) Error() string {
	return e.Err
}

// AlreadyExistsError means a unique key is already taken.
type AlreadyExistsError struct {
	Err string
}

func (e *AlreadyExistsError) Error() string {
	return e.Err
}

func NotFound(format string, args ...any) error {
	return &NotFoundError{Err: fmt.Sprintf(format, args...)}
}

func NoData(format string, args ...any) error {
	return &NoDataError{Err: fmt.Sprintf(format, args...)}
}

func InvalidRequest(format string, args ...any) error {
	return &InvalidRequestError{Err: fmt.Sprintf(format, args...)}
}

func AlreadyExists(format string, args ...any) error {
	return &AlreadyExistsError{Err: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps a failure to its client-facing status code.
// Unrecognized errors are internal.
func HTTPStatus(err error) int {
	var (
		notFound       *NotFoundError
		noData         *NoDataError
		invalidRequest *InvalidRequestError
		alreadyExists  *AlreadyExistsError
	)
	switch {
	case errors.As(err, &notFound), errors.As(err, &noData):
		return http.StatusNotFound
	case errors.As(err, &invalidRequest):
		return http.StatusBadRequest
	case errors.As(err, &alreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

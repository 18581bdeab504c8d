// Package apperr carries the error taxonomy for the API and normalizes every
// failure category into an HTTP status plus a user-facing message.
package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Error is an explicit domain error with an HTTP status already attached.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(status int, format string, args ...any) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) *Error {
	return New(http.StatusBadRequest, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return New(http.StatusUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return New(http.StatusForbidden, format, args...)
}

func NotFound(resource, id string) *Error {
	return New(http.StatusNotFound, "%s not found with id: %s", resource, id)
}

// ErrCast marks a malformed identifier or an uncastable filter value. The
// store treats these like a lookup miss, mirroring a document store's cast
// failure.
var ErrCast = errors.New("cast failure")

const pgUniqueViolation = "23505"

// Normalize maps any error to the status and message that go out on the
// wire. Unclassified errors collapse to a bare 500 so internals never leak.
func Normalize(err error) (int, string) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return http.StatusBadRequest, strings.Join(msgs, ", ")
	}

	var syn *json.SyntaxError
	var typ *json.UnmarshalTypeError
	if errors.As(err, &syn) || errors.As(err, &typ) || errors.Is(err, io.EOF) {
		return http.StatusBadRequest, "Please send a valid JSON body"
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return http.StatusBadRequest, "Duplicate field value entered"
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, ErrCast) {
		return http.StatusNotFound, "Resource not found"
	}

	return http.StatusInternalServerError, "Server Error"
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Please add a %s", field)
	case "email":
		return "Please add a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s can not be more than %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url":
		return fmt.Sprintf("Please use a valid URL for %s", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

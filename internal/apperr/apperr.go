// Package apperr defines the application error type shared by every module.
// Services return *Error for expected failure modes; handlers funnel whatever
// they get through Respond, which maps unknown errors to a generic 500.
package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// FieldError names a single invalid input field and the reason it was rejected.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error is an application error with an HTTP status code.
type Error struct {
	Code    int          `json:"-"`
	Message string       `json:"error"`
	Fields  []FieldError `json:"fields,omitempty"`
	Err     error        `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Field builds a FieldError for use with Validation.
func Field(field, reason string) FieldError {
	return FieldError{Field: field, Reason: reason}
}

// NotFound reports an unknown id for the named resource.
func NotFound(resource string) *Error {
	return &Error{Code: http.StatusNotFound, Message: resource + " not found"}
}

// Validation reports one or more rejected input fields. All fields are
// collected before any write happens.
func Validation(fields ...FieldError) *Error {
	return &Error{Code: http.StatusBadRequest, Message: "validation failed", Fields: fields}
}

// Conflict reports a duplicate where at most one row may exist.
func Conflict(message string) *Error {
	return &Error{Code: http.StatusConflict, Message: message}
}

// PaymentDeclined reports that the payment processor rejected the charge.
// No order is written when this is returned.
func PaymentDeclined(message string) *Error {
	return &Error{Code: http.StatusPaymentRequired, Message: message}
}

// Unauthenticated reports missing or invalid credentials.
func Unauthenticated(message string) *Error {
	if message == "" {
		message = "unauthenticated"
	}
	return &Error{Code: http.StatusUnauthorized, Message: message}
}

// Forbidden reports an authenticated caller acting on a resource it does not own.
func Forbidden(message string) *Error {
	return &Error{Code: http.StatusForbidden, Message: message}
}

// Internal wraps an unexpected failure (store unavailable, collaborator
// timeout). The cause is kept for logging but never sent to the client.
func Internal(err error) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: "internal error", Err: err}
}

// As extracts an *Error from err, or nil.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// Respond writes err to w as JSON. Errors that are not *Error become a
// generic 500 body.
func Respond(w http.ResponseWriter, err error) {
	appErr := As(err)
	if appErr == nil {
		appErr = Internal(err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Code)
	json.NewEncoder(w).Encode(appErr)
}

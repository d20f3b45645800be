package item

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// NotFoundError is returned when no item has the requested id.
type NotFoundError struct {
	ID int64
	// Ref is the raw reference when it could not be parsed as an id.
	Ref string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("item %s not found", e.ref())
}

func (e *NotFoundError) ref() string {
	if e.Ref != "" {
		return strconv.Quote(e.Ref)
	}
	return strconv.FormatInt(e.ID, 10)
}

// StatusCode returns the HTTP status code for this error.
func (e *NotFoundError) StatusCode() int {
	return http.StatusNotFound
}

// Hint returns a user-friendly suggestion for resolving this error.
func (e *NotFoundError) Hint() string {
	return fmt.Sprintf("Check that item %s exists. Use GET /items to list available items.", e.ref())
}

// ValidationError is returned when a request body is missing a required
// field or carries a field of the wrong type, or a query parameter is
// malformed.
type ValidationError struct {
	Field   string
	Message string
	// Query is set when Field names a query parameter rather than a body field.
	Query bool
}

func (e *ValidationError) Error() string {
	switch {
	case e.Field == "":
		return e.Message
	case e.Query:
		return fmt.Sprintf("validation failed for query parameter %q: %s", e.Field, e.Message)
	default:
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
}

// StatusCode returns the HTTP status code for this error.
func (e *ValidationError) StatusCode() int {
	return http.StatusBadRequest
}

// Hint returns a user-friendly suggestion for resolving this error.
func (e *ValidationError) Hint() string {
	if e.Query {
		return fmt.Sprintf("Check the %q query parameter in the request URL.", e.Field)
	}
	if e.Field != "" {
		return fmt.Sprintf("Check the value of field %q in your request body.", e.Field)
	}
	return `Send a JSON object such as {"name": "Item 1"}.`
}

// StatusCodeError is an error that maps to an HTTP status code.
type StatusCodeError interface {
	error
	StatusCode() int
}

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	Hint       string `json:"hint,omitempty"`
	StatusCode int    `json:"-"`
}

// ToErrorResponse converts an error to an ErrorResponse.
// Errors that are neither a *NotFoundError nor a *ValidationError become a
// generic 500 whose message does not leak internals.
func ToErrorResponse(err error) *ErrorResponse {
	var (
		notFound   *NotFoundError
		validation *ValidationError
	)

	switch {
	case errors.As(err, &notFound):
		return &ErrorResponse{
			Error:      "not_found",
			Message:    notFound.Error(),
			Hint:       notFound.Hint(),
			StatusCode: notFound.StatusCode(),
		}
	case errors.As(err, &validation):
		return &ErrorResponse{
			Error:      "validation_error",
			Message:    validation.Error(),
			Field:      validation.Field,
			Hint:       validation.Hint(),
			StatusCode: validation.StatusCode(),
		}
	default:
		return &ErrorResponse{
			Error:      "internal_error",
			Message:    "an unexpected error occurred",
			StatusCode: http.StatusInternalServerError,
		}
	}
}

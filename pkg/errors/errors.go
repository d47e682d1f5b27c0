package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
	CodeBadRequest   = "BAD_REQUEST"
	CodeTimeout      = "TIMEOUT"
	CodeUnavailable  = "SERVICE_UNAVAILABLE"
	CodeInvalidInput = "INVALID_INPUT"

	// Booking rule violations surfaced to schools as distinct,
	// user-displayable kinds.
	CodeInvalidDay = "INVALID_DAY"
	CodeDateLocked = "DATE_LOCKED"
	CodeSlotTaken  = "SLOT_TAKEN"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// Store maps a repository failure to the taxonomy. Every store call is
// bounded by a deadline; when that deadline expires the database is not
// answering in time and callers see the service as unavailable, not as an
// internal fault.
func Store(message string, err error) *AppError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:       CodeUnavailable,
			Message:    message,
			HTTPStatus: http.StatusServiceUnavailable,
			Err:        err,
		}
	}
	return Internal(message, err)
}

func Timeout(message string) *AppError {
	return &AppError{
		Code:       CodeTimeout,
		Message:    message,
		HTTPStatus: http.StatusGatewayTimeout,
	}
}

func Unavailable(service string) *AppError {
	return &AppError{
		Code:       CodeUnavailable,
		Message:    fmt.Sprintf("%s is temporarily unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// InvalidDay reports a booking request for a weekday outside the bookable
// set, or inside the minimum notice window.
func InvalidDay(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidDay,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// DateLocked reports an administrative lock on the requested date.
func DateLocked(date, note string) *AppError {
	return &AppError{
		Code:       CodeDateLocked,
		Message:    "This date has been locked by the district administrator",
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"date": date,
			"note": note,
		},
	}
}

// SlotTaken reports that the requested session already carries an active
// booking, including races resolved by the storage uniqueness constraint.
func SlotTaken(date, session string) *AppError {
	return &AppError{
		Code:       CodeSlotTaken,
		Message:    fmt.Sprintf("The %s session on %s is already booked", session, date),
		HTTPStatus: http.StatusConflict,
		Details: map[string]any{
			"date":    date,
			"session": session,
		},
	}
}

func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")

	ErrElectionNotFound  = errors.New("election not found")
	ErrElectionExists    = errors.New("election already exists")
	ErrPeriodNotFound    = errors.New("voting period not found")
	ErrCandidateNotFound = errors.New("candidate not found")

	ErrAlreadyVoted    = errors.New("vote already cast for this period")
	ErrNotEligible     = errors.New("user is not eligible for this election")
	ErrElectionClosed  = errors.New("election is closed")
	ErrPeriodNotLive   = errors.New("voting period is not live")
	ErrPeriodNotClosed = errors.New("voting period has not closed yet")
)

// Validation error codes surfaced to API clients.
const (
	CodeMissingField        = "MISSING_FIELD"
	CodeInvalidType         = "INVALID_TYPE"
	CodeInvalidRole         = "INVALID_ROLE"
	CodeURLValidationFailed = "URL_VALIDATION_FAILED"
	CodeInvalidPeriod       = "INVALID_PERIOD"
)

// ValidationError is returned when a payload fails field validation. It
// carries everything the transport layer needs to answer the request.
type ValidationError struct {
	Code       string
	Message    string
	HTTPStatus int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidationError builds a ValidationError with the default 400 status.
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message, HTTPStatus: http.StatusBadRequest}
}

// ErrorBody is the inner object of the API error envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorPayload is the API error envelope: {"error": {"code": ..., "message": ...}}.
type ErrorPayload struct {
	Error ErrorBody `json:"error"`
}

// Payload renders the error in the wire envelope.
func (e *ValidationError) Payload() ErrorPayload {
	return ErrorPayload{Error: ErrorBody{Code: e.Code, Message: e.Message}}
}

// IsCode reports whether err is a ValidationError with the given code.
func IsCode(err error, code string) bool {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	return ve.Code == code
}

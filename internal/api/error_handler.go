package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ballotportal/election-api/internal/api/metrics"
	"github.com/ballotportal/election-api/internal/core/domain"
)

type domainError struct {
	target error
	status int
	code   string
}

// domainErrors maps sentinel errors to their HTTP status and wire code.
// Order matters only for readability; the sentinels are disjoint.
var domainErrors = []domainError{
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{domain.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrElectionNotFound, http.StatusNotFound, "ELECTION_NOT_FOUND"},
	{domain.ErrPeriodNotFound, http.StatusNotFound, "PERIOD_NOT_FOUND"},
	{domain.ErrCandidateNotFound, http.StatusNotFound, "CANDIDATE_NOT_FOUND"},
	{domain.ErrUserExists, http.StatusConflict, "USER_EXISTS"},
	{domain.ErrElectionExists, http.StatusConflict, "ELECTION_EXISTS"},
	{domain.ErrAlreadyVoted, http.StatusConflict, "ALREADY_VOTED"},
	{domain.ErrPeriodNotLive, http.StatusUnprocessableEntity, "PERIOD_NOT_LIVE"},
	{domain.ErrNotEligible, http.StatusUnprocessableEntity, "NOT_ELIGIBLE"},
	{domain.ErrElectionClosed, http.StatusUnprocessableEntity, "ELECTION_CLOSED"},
	{domain.ErrPeriodNotClosed, http.StatusUnprocessableEntity, "PERIOD_NOT_CLOSED"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders validation errors with their own status and code.
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors without leaking details to the client.
//
// Every error uses the envelope {"error": {"code": "...", "message": "..."}}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, domain.ErrorPayload{Error: body})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, domain.ErrorBody) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		metrics.ValidationFailuresTotal.WithLabelValues(ve.Code).Inc()
		status := ve.HTTPStatus
		if status == 0 {
			status = http.StatusBadRequest
		}
		return status, ve.Payload().Error
	}

	for _, de := range domainErrors {
		if errors.Is(err, de.target) {
			return de.status, domain.ErrorBody{Code: de.code, Message: de.target.Error()}
		}
	}

	// Echo's own errors (bind failures, 404 from router, auth middleware).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, domain.ErrorBody{Code: statusCode(he.Code), Message: fmt.Sprintf("%v", he.Message)}
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, domain.ErrorBody{Code: "INTERNAL", Message: "internal server error"}
}

// statusCode turns an HTTP status into an upper snake case code,
// e.g. 404 -> NOT_FOUND.
func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "ERROR"
	}
	return strings.ToUpper(strings.NewReplacer(" ", "_", "-", "_", "'", "").Replace(text))
}

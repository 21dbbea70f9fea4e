package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campuslink/student-portal/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// validationResponse carries per-field messages for correctable submissions.
type validationResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Renders access denials as plain 404s, identical to a missing page.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve domain.ValidationErrors
		if errors.As(err, &ve) {
			_ = c.JSON(http.StatusUnprocessableEntity, validationResponse{
				Error:  "validation failed",
				Fields: ve,
			})
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. Denials land on 404
	// on purpose: restricted pages must look absent, not forbidden.
	switch {
	case errors.Is(err, domain.ErrNotFoundOverride):
		return http.StatusNotFound, "page not found"
	case errors.Is(err, domain.ErrUnknownUser):
		return http.StatusUnauthorized, domain.ErrUnknownUser.Error()
	case errors.Is(err, domain.ErrEmailMismatch):
		return http.StatusUnauthorized, domain.ErrEmailMismatch.Error()
	case errors.Is(err, domain.ErrInvalidOTP):
		return http.StatusUnauthorized, domain.ErrInvalidOTP.Error()
	case errors.Is(err, domain.ErrInvalidPassword):
		return http.StatusUnauthorized, domain.ErrInvalidPassword.Error()
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, domain.ErrDuplicateEmail.Error()
	case errors.Is(err, domain.ErrNotAStudent):
		return http.StatusNotFound, "page not found"
	case errors.Is(err, domain.ErrIdentityNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrCategoryNotFound):
		return http.StatusNotFound, "category not found"
	case errors.Is(err, domain.ErrContentNotFound):
		return http.StatusNotFound, "content not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

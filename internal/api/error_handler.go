package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/teamsite/content-api/internal/core/domain"
)

// messageResponse is the canonical envelope for every non-2xx response.
type messageResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps the domain
// error taxonomy onto HTTP statuses and renders the {"message": ...}
// envelope. Store-level failures surface their underlying message, matching
// the client contract of displaying it verbatim.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, messageResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var missing *domain.MissingFieldError
	switch {
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "Invalid token"
	case errors.As(err, &missing):
		return http.StatusBadRequest, "Invalid request: " + missing.Error()
	case errors.Is(err, domain.ErrUnknownKind):
		return http.StatusBadRequest, "Invalid request: unknown kind"
	case errors.Is(err, domain.ErrLocaleNotFound):
		return http.StatusBadRequest, "Invalid request: unknown locale"
	case errors.Is(err, domain.ErrRecordNotFound):
		return http.StatusNotFound, "Record not found"
	}

	// Store-level failure: log it and echo the cause back per contract.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, err.Error()
}

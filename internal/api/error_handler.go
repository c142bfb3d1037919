package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/crmdesk/portal/internal/api/handler"
	"github.com/crmdesk/portal/internal/core/domain"
	"github.com/crmdesk/portal/internal/infrastructure/crmapi"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - passes backend errors through with their status and raw body,
//   - maps known domain errors to deterministic HTTP codes,
//   - logs unexpected errors without leaking details to the client.
//
// Portal errors render as {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ae *crmapi.APIError
		if errors.As(err, &ae) {
			writeBackendError(c, ae)
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, handler.ErrorResponse{Error: msg})
	}
}

func writeBackendError(c echo.Context, ae *crmapi.APIError) {
	contentType := ae.ContentType
	if contentType == "" {
		contentType = echo.MIMEApplicationJSONCharsetUTF8
	}
	if len(ae.Body) == 0 {
		_ = c.NoContent(ae.StatusCode)
		return
	}
	_ = c.Blob(ae.StatusCode, contentType, ae.Body)
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, guard rejections, 404 from router, ...)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrDuplicateRequest):
		return http.StatusConflict, "duplicate request"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	if crmapi.IsTransport(err) {
		return http.StatusBadGateway, "crm backend unavailable"
	}
	return http.StatusInternalServerError, "internal server error"
}

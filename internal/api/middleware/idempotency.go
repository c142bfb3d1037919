package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/crmdesk/portal/internal/api/metrics"
	"github.com/crmdesk/portal/internal/core/domain"
	"github.com/crmdesk/portal/internal/core/ports"
)

const HeaderIdempotencyKey = "Idempotency-Key"

// Idempotency rejects a repeated create carrying the same Idempotency-Key
// for the same user. Requests without the header pass untouched. When the
// key store is unavailable the request proceeds. A request that fails, with
// an error or a non-2xx status, gives its key back so the client can retry.
func Idempotency(g ports.IdempotencyGuard, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get(HeaderIdempotencyKey)
			if key == "" {
				return next(c)
			}

			scope := "anonymous"
			if s, ok := CurrentSession(c); ok {
				scope = s.User.Username
			}

			first, err := g.Claim(c.Request().Context(), scope, key)
			switch {
			case err != nil:
				metrics.IdempotencyTotal.WithLabelValues("error").Inc()
				log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency check skipped")
			case !first:
				metrics.IdempotencyTotal.WithLabelValues("duplicate").Inc()
				return domain.ErrDuplicateRequest
			default:
				metrics.IdempotencyTotal.WithLabelValues("claimed").Inc()
				err := next(c)
				if err != nil || !succeeded(c.Response().Status) {
					release(c.Request().Context(), g, log, scope, key)
				}
				return err
			}
			return next(c)
		}
	}
}

func succeeded(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// release runs even when the client has gone away.
func release(ctx context.Context, g ports.IdempotencyGuard, log zerolog.Logger, scope, key string) {
	if err := g.Release(context.WithoutCancel(ctx), scope, key); err != nil {
		log.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency key not released")
		return
	}
	metrics.IdempotencyTotal.WithLabelValues("released").Inc()
}

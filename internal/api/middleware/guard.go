package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/portal/internal/api/metrics"
	"github.com/crmdesk/portal/internal/core/guard"
)

// RouteKind selects how a guard outcome is rendered.
type RouteKind string

const (
	KindPage RouteKind = "page"
	KindAPI  RouteKind = "api"
)

// Guard runs the navigation guard for a route. It must be installed after
// Session. Page routes are redirected; API routes get a status code
// instead: 401 for RedirectLogin, 409 for RedirectHome.
func Guard(meta guard.RouteMeta, kind RouteKind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, authenticated := CurrentSession(c)
			outcome := guard.Decide(meta, authenticated)
			metrics.GuardDecisionsTotal.WithLabelValues(outcome.String(), string(kind)).Inc()

			if outcome == guard.Allow {
				return next(c)
			}
			if kind == KindPage {
				return c.Redirect(http.StatusFound, outcome.Target())
			}
			if outcome == guard.RedirectLogin {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return echo.NewHTTPError(http.StatusConflict, "already authenticated")
		}
	}
}

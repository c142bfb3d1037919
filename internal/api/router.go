package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/crmdesk/portal/docs"
	"github.com/crmdesk/portal/internal/api/handler"
	"github.com/crmdesk/portal/internal/api/middleware"
	"github.com/crmdesk/portal/internal/core/ports"
)

const metricsSubsystem = "crm_portal"

// Dependencies are the services the router wires into handlers.
type Dependencies struct {
	Auth        ports.AuthService
	CRM         ports.CRMService
	Idempotency ports.IdempotencyGuard
	Cookie      middleware.SessionCookie
	// Checks are the readiness probes served at /health/ready.
	Checks map[string]handler.Check
	Logger zerolog.Logger
	// Registry receives the HTTP metrics. Nil uses the default registry,
	// which also holds the portal's own metrics.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestContext())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(metricsConfig(deps.Registry)))

	session := middleware.Session(deps.Cookie, deps.Auth, deps.Logger)
	idempotency := middleware.Idempotency(deps.Idempotency, deps.Logger)

	// --- Pages ---
	views := handler.NewViewHandler(deps.CRM)
	for _, p := range Pages {
		e.GET(p.Path, views.Page(p.Name), session, middleware.Guard(p.Meta, middleware.KindPage))
	}

	// --- JSON API ---
	handlers := routeHandlers{
		auth:      handler.NewAuthHandler(deps.Auth, deps.Cookie, deps.Logger),
		dashboard: handler.NewDashboardHandler(deps.CRM),
		companies: handler.NewCompanyHandler(deps.CRM),
		contacts:  handler.NewContactHandler(deps.CRM),
		deals:     handler.NewDealHandler(deps.CRM),
		tasks:     handler.NewTaskHandler(deps.CRM),
		meetings:  handler.NewMeetingHandler(deps.CRM),
	}
	apiGroup := e.Group("/api")
	for _, r := range handlers.apiRoutes() {
		mws := []echo.MiddlewareFunc{session, middleware.Guard(r.Meta, middleware.KindAPI)}
		if r.Idempotent {
			mws = append(mws, idempotency)
		}
		apiGroup.Add(r.Method, r.Path, r.Handler, mws...)
	}

	// --- Operational routes (no session) ---
	e.GET("/health", handler.Liveness)
	e.GET("/health/ready", handler.NewHealthDependenciesHandler(deps.Checks).Readiness)
	e.GET("/metrics", metricsHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func metricsConfig(reg *prometheus.Registry) echoprometheus.MiddlewareConfig {
	cfg := echoprometheus.MiddlewareConfig{
		Subsystem: metricsSubsystem,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return cfg
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}

package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/portal/internal/api/handler"
	"github.com/crmdesk/portal/internal/core/guard"
)

var (
	requiresAuth  = guard.RouteMeta{RequiresAuth: true}
	requiresGuest = guard.RouteMeta{RequiresGuest: true}
)

// Page is one entry of the navigation table.
type Page struct {
	Path string
	Name string
	Meta guard.RouteMeta
}

// Pages is the static page table. Every page runs the guard before its
// view is rendered.
var Pages = []Page{
	{Path: guard.LoginPath, Name: "Login", Meta: requiresGuest},
	{Path: guard.HomePath, Name: "Dashboard", Meta: requiresAuth},
	{Path: "/contacts", Name: "Contacts", Meta: requiresAuth},
	{Path: "/companies", Name: "Companies", Meta: requiresAuth},
	{Path: "/deals", Name: "Deals", Meta: requiresAuth},
	{Path: "/tasks", Name: "Tasks", Meta: requiresAuth},
	{Path: "/meetings", Name: "Meetings", Meta: requiresAuth},
}

// apiRoute is one JSON endpoint under /api.
type apiRoute struct {
	Method  string
	Path    string
	Meta    guard.RouteMeta
	Handler echo.HandlerFunc
	// Idempotent routes honour the Idempotency-Key header.
	Idempotent bool
}

type crudHandler interface {
	List(c echo.Context) error
	Get(c echo.Context) error
	Create(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
}

func crudRoutes(base string, h crudHandler) []apiRoute {
	item := base + "/:id"
	return []apiRoute{
		{Method: http.MethodGet, Path: base, Meta: requiresAuth, Handler: h.List},
		{Method: http.MethodPost, Path: base, Meta: requiresAuth, Handler: h.Create, Idempotent: true},
		{Method: http.MethodGet, Path: item, Meta: requiresAuth, Handler: h.Get},
		{Method: http.MethodPut, Path: item, Meta: requiresAuth, Handler: h.Update},
		{Method: http.MethodDelete, Path: item, Meta: requiresAuth, Handler: h.Delete},
	}
}

type routeHandlers struct {
	auth      *handler.AuthHandler
	dashboard *handler.DashboardHandler
	companies crudHandler
	contacts  crudHandler
	deals     crudHandler
	tasks     crudHandler
	meetings  *handler.MeetingHandler
}

func (h routeHandlers) apiRoutes() []apiRoute {
	routes := []apiRoute{
		{Method: http.MethodPost, Path: "/auth/login", Meta: requiresGuest, Handler: h.auth.Login},
		{Method: http.MethodPost, Path: "/auth/logout", Meta: requiresAuth, Handler: h.auth.Logout},
		{Method: http.MethodGet, Path: "/session", Meta: requiresAuth, Handler: h.auth.Session},
		{Method: http.MethodGet, Path: "/dashboard/stats", Meta: requiresAuth, Handler: h.dashboard.Stats},
		{Method: http.MethodGet, Path: "/activity", Meta: requiresAuth, Handler: h.dashboard.Activity},
		{Method: http.MethodGet, Path: "/meetings/today/count", Meta: requiresAuth, Handler: h.meetings.TodayCount},
		{Method: http.MethodGet, Path: "/meetings/filter", Meta: requiresAuth, Handler: h.meetings.Filter},
	}
	routes = append(routes, crudRoutes("/companies", h.companies)...)
	routes = append(routes, crudRoutes("/contacts", h.contacts)...)
	routes = append(routes, crudRoutes("/deals", h.deals)...)
	routes = append(routes, crudRoutes("/tasks", h.tasks)...)
	routes = append(routes, crudRoutes("/meetings", h.meetings)...)
	return routes
}

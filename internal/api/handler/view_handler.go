package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/portal/internal/core/domain"
	"github.com/crmdesk/portal/internal/core/ports"
)

// View is the JSON view model returned by page routes.
type View struct {
	View string `json:"view"`
	Data any    `json:"data"`
}

// DashboardData is the Dashboard view payload.
type DashboardData struct {
	Stats             *domain.DashboardStats `json:"stats"`
	TodayMeetingCount int                    `json:"today_meeting_count"`
}

// ContactsData carries the companies too, for the contact form's picker.
type ContactsData struct {
	Contacts  []domain.Contact `json:"contacts"`
	Companies []domain.Company `json:"companies"`
}

type loader func(ctx context.Context) (any, error)

// ViewHandler renders page routes as view models.
type ViewHandler struct {
	loaders map[string]loader
}

func NewViewHandler(crm ports.CRMService) *ViewHandler {
	return &ViewHandler{loaders: map[string]loader{
		"Login": func(context.Context) (any, error) {
			return nil, nil
		},
		"Dashboard": func(ctx context.Context) (any, error) {
			stats, err := crm.GetDashboardStats(ctx)
			if err != nil {
				return nil, err
			}
			count, err := crm.GetTodaysMeetingCount(ctx)
			if err != nil {
				return nil, err
			}
			return DashboardData{Stats: stats, TodayMeetingCount: count.Count}, nil
		},
		"Contacts": func(ctx context.Context) (any, error) {
			contacts, err := crm.ListContacts(ctx)
			if err != nil {
				return nil, err
			}
			companies, err := crm.ListCompanies(ctx)
			if err != nil {
				return nil, err
			}
			return ContactsData{Contacts: nonNil(contacts), Companies: nonNil(companies)}, nil
		},
		"Companies": func(ctx context.Context) (any, error) {
			companies, err := crm.ListCompanies(ctx)
			return nonNil(companies), err
		},
		"Deals": func(ctx context.Context) (any, error) {
			deals, err := crm.ListDeals(ctx)
			return nonNil(deals), err
		},
		"Tasks": func(ctx context.Context) (any, error) {
			tasks, err := crm.ListTasks(ctx)
			return nonNil(tasks), err
		},
		"Meetings": func(ctx context.Context) (any, error) {
			meetings, err := crm.ListMeetings(ctx)
			return nonNil(meetings), err
		},
	}}
}

// Page returns the handler rendering the named view. Unknown names answer 404.
func (h *ViewHandler) Page(name string) echo.HandlerFunc {
	load, ok := h.loaders[name]
	return func(c echo.Context) error {
		if !ok {
			return echo.ErrNotFound
		}
		data, err := load(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, View{View: name, Data: data})
	}
}

package crmapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/crmdesk/portal/internal/core/domain"
)

const (
	dashboardStatsPath = "/dashboard/stats/"
	meetingsTodayPath  = "/meetings/today/count/"
	meetingsFilterPath = "/meetings/filter/"
)

func (c *Client) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var out domain.DashboardStats
	if err := c.do(ctx, "get_dashboard_stats", http.MethodGet, dashboardStatsPath, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Companies

func (c *Client) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	return c.companies.list(ctx)
}

func (c *Client) GetCompany(ctx context.Context, id int64) (*domain.Company, error) {
	return c.companies.get(ctx, id)
}

func (c *Client) CreateCompany(ctx context.Context, in *domain.Company) (*domain.Company, error) {
	return c.companies.create(ctx, in)
}

func (c *Client) UpdateCompany(ctx context.Context, id int64, in *domain.Company) (*domain.Company, error) {
	return c.companies.update(ctx, id, in)
}

func (c *Client) DeleteCompany(ctx context.Context, id int64) error {
	return c.companies.delete(ctx, id)
}

// Contacts

func (c *Client) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	return c.contacts.list(ctx)
}

func (c *Client) GetContact(ctx context.Context, id int64) (*domain.Contact, error) {
	return c.contacts.get(ctx, id)
}

func (c *Client) CreateContact(ctx context.Context, in *domain.Contact) (*domain.Contact, error) {
	return c.contacts.create(ctx, in)
}

func (c *Client) UpdateContact(ctx context.Context, id int64, in *domain.Contact) (*domain.Contact, error) {
	return c.contacts.update(ctx, id, in)
}

func (c *Client) DeleteContact(ctx context.Context, id int64) error {
	return c.contacts.delete(ctx, id)
}

// Deals

func (c *Client) ListDeals(ctx context.Context) ([]domain.Deal, error) {
	return c.deals.list(ctx)
}

func (c *Client) GetDeal(ctx context.Context, id int64) (*domain.Deal, error) {
	return c.deals.get(ctx, id)
}

func (c *Client) CreateDeal(ctx context.Context, in *domain.Deal) (*domain.Deal, error) {
	return c.deals.create(ctx, in)
}

func (c *Client) UpdateDeal(ctx context.Context, id int64, in *domain.Deal) (*domain.Deal, error) {
	return c.deals.update(ctx, id, in)
}

func (c *Client) DeleteDeal(ctx context.Context, id int64) error {
	return c.deals.delete(ctx, id)
}

// Tasks

func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return c.tasks.list(ctx)
}

func (c *Client) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return c.tasks.get(ctx, id)
}

func (c *Client) CreateTask(ctx context.Context, in *domain.Task) (*domain.Task, error) {
	return c.tasks.create(ctx, in)
}

func (c *Client) UpdateTask(ctx context.Context, id int64, in *domain.Task) (*domain.Task, error) {
	return c.tasks.update(ctx, id, in)
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.tasks.delete(ctx, id)
}

// Meetings. Writes answer with an acknowledgement envelope rather than the
// stored meeting, and delete returns it too.

func (c *Client) ListMeetings(ctx context.Context) ([]domain.Meeting, error) {
	return c.meetings.list(ctx)
}

func (c *Client) GetMeeting(ctx context.Context, id int64) (*domain.Meeting, error) {
	return c.meetings.get(ctx, id)
}

func (c *Client) CreateMeeting(ctx context.Context, in *domain.MeetingInput) (*domain.MeetingAck, error) {
	return c.meetingAck(ctx, "create_meeting", http.MethodPost, meetingPaths.create, in)
}

func (c *Client) UpdateMeeting(ctx context.Context, id int64, in *domain.MeetingInput) (*domain.MeetingAck, error) {
	return c.meetingAck(ctx, "update_meeting", http.MethodPut, fmt.Sprintf(meetingPaths.update, id), in)
}

func (c *Client) DeleteMeeting(ctx context.Context, id int64) (*domain.MeetingAck, error) {
	return c.meetingAck(ctx, "delete_meeting", http.MethodDelete, fmt.Sprintf(meetingPaths.delete, id), nil)
}

func (c *Client) GetTodaysMeetingCount(ctx context.Context) (*domain.MeetingCount, error) {
	var out domain.MeetingCount
	if err := c.do(ctx, "get_todays_meeting_count", http.MethodGet, meetingsTodayPath, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetMeetingsForDeal(ctx context.Context, dealID int64) ([]domain.Meeting, error) {
	return c.FilterMeetings(ctx, domain.MeetingFilter{Deal: dealID})
}

func (c *Client) GetMeetingsForCompany(ctx context.Context, companyID int64) ([]domain.Meeting, error) {
	return c.FilterMeetings(ctx, domain.MeetingFilter{Company: companyID})
}

// FilterMeetings queries the filter endpoint; zero-valued criteria are left
// out of the query string.
func (c *Client) FilterMeetings(ctx context.Context, f domain.MeetingFilter) ([]domain.Meeting, error) {
	q := url.Values{}
	if f.Deal != 0 {
		q.Set("deal", strconv.FormatInt(f.Deal, 10))
	}
	if f.Company != 0 {
		q.Set("company", strconv.FormatInt(f.Company, 10))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}

	var out []domain.Meeting
	if err := c.do(ctx, "filter_meetings", http.MethodGet, meetingsFilterPath, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) meetingAck(ctx context.Context, op, method, path string, in *domain.MeetingInput) (*domain.MeetingAck, error) {
	var body any
	if in != nil {
		body = in
	}
	var out domain.MeetingAck
	if err := c.do(ctx, op, method, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package ports

import (
	"context"

	"github.com/crmdesk/portal/internal/core/domain"
)

// AuthBackend is the authentication half of the CRM REST backend.
type AuthBackend interface {
	Login(ctx context.Context, username, password string) (*domain.LoginResult, error)
	// Logout revokes the token of the session carried by ctx.
	Logout(ctx context.Context) error
}

// CRMBackend is the resource half of the CRM REST backend. Implementations
// authenticate with the session carried by ctx.
type CRMBackend interface {
	GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error)

	ListCompanies(ctx context.Context) ([]domain.Company, error)
	GetCompany(ctx context.Context, id int64) (*domain.Company, error)
	CreateCompany(ctx context.Context, in *domain.Company) (*domain.Company, error)
	UpdateCompany(ctx context.Context, id int64, in *domain.Company) (*domain.Company, error)
	DeleteCompany(ctx context.Context, id int64) error

	ListContacts(ctx context.Context) ([]domain.Contact, error)
	GetContact(ctx context.Context, id int64) (*domain.Contact, error)
	CreateContact(ctx context.Context, in *domain.Contact) (*domain.Contact, error)
	UpdateContact(ctx context.Context, id int64, in *domain.Contact) (*domain.Contact, error)
	DeleteContact(ctx context.Context, id int64) error

	ListDeals(ctx context.Context) ([]domain.Deal, error)
	GetDeal(ctx context.Context, id int64) (*domain.Deal, error)
	CreateDeal(ctx context.Context, in *domain.Deal) (*domain.Deal, error)
	UpdateDeal(ctx context.Context, id int64, in *domain.Deal) (*domain.Deal, error)
	DeleteDeal(ctx context.Context, id int64) error

	ListTasks(ctx context.Context) ([]domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	CreateTask(ctx context.Context, in *domain.Task) (*domain.Task, error)
	UpdateTask(ctx context.Context, id int64, in *domain.Task) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	ListMeetings(ctx context.Context) ([]domain.Meeting, error)
	GetMeeting(ctx context.Context, id int64) (*domain.Meeting, error)
	CreateMeeting(ctx context.Context, in *domain.MeetingInput) (*domain.MeetingAck, error)
	UpdateMeeting(ctx context.Context, id int64, in *domain.MeetingInput) (*domain.MeetingAck, error)
	DeleteMeeting(ctx context.Context, id int64) (*domain.MeetingAck, error)
	GetTodaysMeetingCount(ctx context.Context) (*domain.MeetingCount, error)
	GetMeetingsForDeal(ctx context.Context, dealID int64) ([]domain.Meeting, error)
	GetMeetingsForCompany(ctx context.Context, companyID int64) ([]domain.Meeting, error)
	FilterMeetings(ctx context.Context, f domain.MeetingFilter) ([]domain.Meeting, error)
}

package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/crmdesk/portal/internal/core/domain"
	"github.com/crmdesk/portal/internal/core/ports"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

type stubAuthService struct {
	loginFn  func(ctx context.Context, username, password string) (*domain.Session, error)
	logoutFn func(ctx context.Context, s *domain.Session) error
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, sess *domain.Session) error {
	return s.logoutFn(ctx, sess)
}

func (s *stubAuthService) Resolve(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}

// stubCRM implements only what a test needs; other calls panic through the
// nil embedded interface.
type stubCRM struct {
	ports.CRMService

	companies []domain.Company
	company   *domain.Company
	created   *domain.Company
	deletedID int64
	err       error

	stats    *domain.DashboardStats
	count    *domain.MeetingCount
	contacts []domain.Contact

	ack           *domain.MeetingAck
	gotMeeting    *domain.MeetingInput
	gotMeetingID  int64
	meetings      []domain.Meeting
	filterCalls   []string
	gotFilter     domain.MeetingFilter
	events        []domain.ActivityEvent
	activityLimit int
}

func (s *stubCRM) ListCompanies(context.Context) ([]domain.Company, error) {
	return s.companies, s.err
}

func (s *stubCRM) GetCompany(_ context.Context, id int64) (*domain.Company, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := *s.company
	out.ID = id
	return &out, nil
}

func (s *stubCRM) CreateCompany(_ context.Context, in *domain.Company) (*domain.Company, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = in
	out := *in
	out.ID = 100
	return &out, nil
}

func (s *stubCRM) UpdateCompany(_ context.Context, id int64, in *domain.Company) (*domain.Company, error) {
	out := *in
	out.ID = id
	return &out, s.err
}

func (s *stubCRM) DeleteCompany(_ context.Context, id int64) error {
	s.deletedID = id
	return s.err
}

func (s *stubCRM) ListContacts(context.Context) ([]domain.Contact, error) {
	return s.contacts, s.err
}

func (s *stubCRM) GetDashboardStats(context.Context) (*domain.DashboardStats, error) {
	return s.stats, s.err
}

func (s *stubCRM) GetTodaysMeetingCount(context.Context) (*domain.MeetingCount, error) {
	return s.count, s.err
}

func (s *stubCRM) CreateMeeting(_ context.Context, in *domain.MeetingInput) (*domain.MeetingAck, error) {
	s.gotMeeting = in
	return s.ack, s.err
}

func (s *stubCRM) UpdateMeeting(_ context.Context, id int64, in *domain.MeetingInput) (*domain.MeetingAck, error) {
	s.gotMeetingID, s.gotMeeting = id, in
	return s.ack, s.err
}

func (s *stubCRM) DeleteMeeting(_ context.Context, id int64) (*domain.MeetingAck, error) {
	s.deletedID = id
	return s.ack, s.err
}

func (s *stubCRM) GetMeetingsForDeal(_ context.Context, id int64) ([]domain.Meeting, error) {
	s.filterCalls = append(s.filterCalls, "deal")
	s.gotFilter = domain.MeetingFilter{Deal: id}
	return s.meetings, s.err
}

func (s *stubCRM) GetMeetingsForCompany(_ context.Context, id int64) ([]domain.Meeting, error) {
	s.filterCalls = append(s.filterCalls, "company")
	s.gotFilter = domain.MeetingFilter{Company: id}
	return s.meetings, s.err
}

func (s *stubCRM) FilterMeetings(_ context.Context, f domain.MeetingFilter) ([]domain.Meeting, error) {
	s.filterCalls = append(s.filterCalls, "filter")
	s.gotFilter = f
	return s.meetings, s.err
}

func (s *stubCRM) Activity(_ context.Context, limit int) ([]domain.ActivityEvent, error) {
	s.activityLimit = limit
	return s.events, s.err
}

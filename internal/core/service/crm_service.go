package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/crmdesk/portal/internal/core/domain"
	"github.com/crmdesk/portal/internal/core/ports"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 200
)

// CRMService forwards resource operations to the CRM backend and records
// every successful write in the caller's activity trail. Backend responses
// and errors are returned unmodified.
type CRMService struct {
	backend  ports.CRMBackend
	activity ports.ActivityRecorder
	history  ports.ActivityRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewCRMService(backend ports.CRMBackend, activity ports.ActivityRecorder, history ports.ActivityRepository, logger zerolog.Logger) *CRMService {
	return &CRMService{
		backend:  backend,
		activity: activity,
		history:  history,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *CRMService) GetDashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	return s.backend.GetDashboardStats(ctx)
}

// Companies

func (s *CRMService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	return s.backend.ListCompanies(ctx)
}

func (s *CRMService) GetCompany(ctx context.Context, id int64) (*domain.Company, error) {
	return s.backend.GetCompany(ctx, id)
}

func (s *CRMService) CreateCompany(ctx context.Context, in *domain.Company) (*domain.Company, error) {
	out, err := s.backend.CreateCompany(ctx, in)
	if err != nil {
		return nil, err
	}
	s.record(ctx, domain.ActionCreate, domain.ResourceCompany, out.ID)
	return out, nil
}

func (s *CRMService) UpdateCompany(ctx context.Context, id int64, in *domain.Company) (*domain.Company, error) {
	out, err := s.backend.UpdateCompany(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.record(ctx, domain.ActionUpdate, domain.ResourceCompany, id)
	return out, nil
}

func (s *CRMService) DeleteCompany(ctx context.Context, id int64) error {
	if err := s.backend.DeleteCompany(ctx, id); err != nil {
		return err
	}
	s.record(ctx, domain.ActionDelete, domain.ResourceCompany, id)
	return nil
}

// Contacts

func (s *CRMService) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	return s.backend.ListContacts(ctx)
}

func (s *CRMService) GetContact(ctx context.Context, id int64) (*domain.Contact, error) {
	return s.backend.GetContact(ctx, id)
}

func (s *CRMService) CreateContact(ctx context.Context, in *domain.Contact) (*domain.Contact, error) {
	out, err := s.backend.CreateContact(ctx, in)
	if err != nil {
		return nil, err
	}
	s.record(ctx, domain.ActionCreate, domain.ResourceContact, out.ID)
	return out, nil
}

func (s *CRMService) UpdateContact(ctx context.Context, id int64, in *domain.Contact) (*domain.Contact, error) {
	out, err := s.backend.UpdateContact(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.record(ctx, domain.ActionUpdate, domain.ResourceContact, id)
	return out, nil
}

func (s *CRMService) DeleteContact(ctx context.Context, id int64) error {
	if err := s.backend.DeleteContact(ctx, id); err != nil {
		return err
	}
	s.record(ctx, domain.ActionDelete, domain.ResourceContact, id)
	return nil
}

// Deals

func (s *CRMService) ListDeals(ctx context.Context) ([]domain.Deal, error) {
	return s.backend.ListDeals(ctx)
}

func (s *CRMService) GetDeal(ctx context.Context, id int64) (*domain.Deal, error) {
	return s.backend.GetDeal(ctx, id)
}

func (s *CRMService) CreateDeal(ctx context.Context, in *domain.Deal) (*domain.Deal, error) {
	out, err := s.backend.CreateDeal(ctx, in)
	if err != nil {
		return nil, err
	}
	s.record(ctx, domain.ActionCreate, domain.ResourceDeal, out.ID)
	return out, nil
}

func (s *CRMService) UpdateDeal(ctx context.Context, id int64, in *domain.Deal) (*domain.Deal, error) {
	out, err := s.backend.UpdateDeal(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.record(ctx, domain.ActionUpdate, domain.ResourceDeal, id)
	return out, nil
}

func (s *CRMService) DeleteDeal(ctx context.Context, id int64) error {
	if err := s.backend.DeleteDeal(ctx, id); err != nil {
		return err
	}
	s.record(ctx, domain.ActionDelete, domain.ResourceDeal, id)
	return nil
}

// Tasks

func (s *CRMService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return s.backend.ListTasks(ctx)
}

func (s *CRMService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return s.backend.GetTask(ctx, id)
}

func (s *CRMService) CreateTask(ctx context.Context, in *domain.Task) (*domain.Task, error) {
	out, err := s.backend.CreateTask(ctx, in)
	if err != nil {
		return nil, err
	}
	s.record(ctx, domain.ActionCreate, domain.ResourceTask, out.ID)
	return out, nil
}

func (s *CRMService) UpdateTask(ctx context.Context, id int64, in *domain.Task) (*domain.Task, error) {
	out, err := s.backend.UpdateTask(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.record(ctx, domain.ActionUpdate, domain.ResourceTask, id)
	return out, nil
}

func (s *CRMService) DeleteTask(ctx context.Context, id int64) error {
	if err := s.backend.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.record(ctx, domain.ActionDelete, domain.ResourceTask, id)
	return nil
}

// Meetings

func (s *CRMService) ListMeetings(ctx context.Context) ([]domain.Meeting, error) {
	return s.backend.ListMeetings(ctx)
}

func (s *CRMService) GetMeeting(ctx context.Context, id int64) (*domain.Meeting, error) {
	return s.backend.GetMeeting(ctx, id)
}

func (s *CRMService) CreateMeeting(ctx context.Context, in *domain.MeetingInput) (*domain.MeetingAck, error) {
	ack, err := s.backend.CreateMeeting(ctx, in)
	if err != nil {
		return nil, err
	}
	s.record(ctx, domain.ActionCreate, domain.ResourceMeeting, ack.MeetingID)
	return ack, nil
}

func (s *CRMService) UpdateMeeting(ctx context.Context, id int64, in *domain.MeetingInput) (*domain.MeetingAck, error) {
	ack, err := s.backend.UpdateMeeting(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.record(ctx, domain.ActionUpdate, domain.ResourceMeeting, id)
	return ack, nil
}

func (s *CRMService) DeleteMeeting(ctx context.Context, id int64) (*domain.MeetingAck, error) {
	ack, err := s.backend.DeleteMeeting(ctx, id)
	if err != nil {
		return nil, err
	}
	s.record(ctx, domain.ActionDelete, domain.ResourceMeeting, id)
	return ack, nil
}

func (s *CRMService) GetTodaysMeetingCount(ctx context.Context) (*domain.MeetingCount, error) {
	return s.backend.GetTodaysMeetingCount(ctx)
}

func (s *CRMService) GetMeetingsForDeal(ctx context.Context, dealID int64) ([]domain.Meeting, error) {
	return s.backend.GetMeetingsForDeal(ctx, dealID)
}

func (s *CRMService) GetMeetingsForCompany(ctx context.Context, companyID int64) ([]domain.Meeting, error) {
	return s.backend.GetMeetingsForCompany(ctx, companyID)
}

func (s *CRMService) FilterMeetings(ctx context.Context, f domain.MeetingFilter) ([]domain.Meeting, error) {
	return s.backend.FilterMeetings(ctx, f)
}

// Activity returns the latest events of the session user, newest first.
// limit is clamped to [1, MaxActivityLimit]; 0 selects DefaultActivityLimit.
func (s *CRMService) Activity(ctx context.Context, limit int) ([]domain.ActivityEvent, error) {
	session, ok := domain.SessionFromContext(ctx)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return s.history.ListByUser(ctx, session.User.Username, ClampActivityLimit(limit))
}

// ClampActivityLimit normalises a requested page size.
func ClampActivityLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultActivityLimit
	case limit > MaxActivityLimit:
		return MaxActivityLimit
	default:
		return limit
	}
}

func (s *CRMService) record(ctx context.Context, action domain.ActivityAction, resource string, id int64) {
	if s.activity == nil {
		return
	}
	session, ok := domain.SessionFromContext(ctx)
	if !ok {
		s.logger.Warn().Str("action", string(action)).Str("resource", resource).Msg("write without session, activity skipped")
		return
	}
	s.activity.Record(domain.ActivityEvent{
		Username:   session.User.Username,
		Action:     action,
		Resource:   resource,
		ResourceID: id,
		RequestID:  domain.RequestIDFromContext(ctx),
		At:         s.now().UTC(),
	})
}

var _ ports.CRMService = (*CRMService)(nil)

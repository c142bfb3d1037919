package service

import (
	"context"
	"sync"

	"github.com/crmdesk/portal/internal/core/domain"
	"github.com/crmdesk/portal/internal/core/ports"
)

type stubAuthBackend struct {
	result    *domain.LoginResult
	loginErr  error
	logoutErr error

	logoutToken string
}

func (b *stubAuthBackend) Login(_ context.Context, _, _ string) (*domain.LoginResult, error) {
	if b.loginErr != nil {
		return nil, b.loginErr
	}
	return b.result, nil
}

func (b *stubAuthBackend) Logout(ctx context.Context) error {
	if s, ok := domain.SessionFromContext(ctx); ok {
		b.logoutToken = s.Token
	}
	return b.logoutErr
}

type stubSessionStore struct {
	sessions  map[string]*domain.Session
	saveErr   error
	deleteErr error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, sess *domain.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	clone := *sess
	s.sessions[sess.ID] = &clone
	return nil
}

func (s *stubSessionStore) Find(_ context.Context, id string) (*domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *sess
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return s.deleteErr
}

type stubRecorder struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
}

func (r *stubRecorder) Record(e domain.ActivityEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// stubCRMBackend overrides only what a test needs; any other call panics
// through the nil embedded interface.
type stubCRMBackend struct {
	ports.CRMBackend

	company   *domain.Company
	ack       *domain.MeetingAck
	err       error
	deletedID int64
}

func (b *stubCRMBackend) CreateCompany(_ context.Context, in *domain.Company) (*domain.Company, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := *in
	out.ID = b.company.ID
	return &out, nil
}

func (b *stubCRMBackend) GetCompany(_ context.Context, id int64) (*domain.Company, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := *b.company
	out.ID = id
	return &out, nil
}

func (b *stubCRMBackend) DeleteDeal(_ context.Context, id int64) error {
	b.deletedID = id
	return b.err
}

func (b *stubCRMBackend) CreateMeeting(_ context.Context, _ *domain.MeetingInput) (*domain.MeetingAck, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.ack, nil
}

type stubActivityRepo struct {
	events   []domain.ActivityEvent
	gotUser  string
	gotLimit int
	listErr  error
}

func (r *stubActivityRepo) Insert(_ context.Context, e *domain.ActivityEvent) error {
	r.events = append(r.events, *e)
	return nil
}

func (r *stubActivityRepo) ListByUser(_ context.Context, username string, limit int) ([]domain.ActivityEvent, error) {
	r.gotUser = username
	r.gotLimit = limit
	return r.events, r.listErr
}

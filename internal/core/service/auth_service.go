package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/crmdesk/portal/internal/api/metrics"
	"github.com/crmdesk/portal/internal/core/domain"
	"github.com/crmdesk/portal/internal/core/ports"
)

const defaultSessionTTL = 12 * time.Hour

// AuthService signs users in against the CRM backend and owns the
// portal-side session lifecycle.
type AuthService struct {
	backend  ports.AuthBackend
	store    ports.SessionStore
	activity ports.ActivityRecorder
	ttl      time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAuthService(backend ports.AuthBackend, store ports.SessionStore, activity ports.ActivityRecorder, ttl time.Duration, logger zerolog.Logger) *AuthService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &AuthService{
		backend:  backend,
		store:    store,
		activity: activity,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Login exchanges credentials for a backend token and persists a new
// session holding it.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	result, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		Token:     result.Token,
		User:      result.User,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	metrics.SessionsTotal.WithLabelValues("created").Inc()
	s.logger.Info().Str("username", session.User.Username).Msg("session created")
	s.record(ctx, session.User.Username, domain.ActionLogin)
	return session, nil
}

// Logout revokes the backend token and removes the local session. The
// session is deleted even when the backend call fails; both errors are
// returned joined.
func (s *AuthService) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return domain.ErrUnauthenticated
	}

	var backendErr error
	if err := s.backend.Logout(domain.WithSession(ctx, session)); err != nil {
		backendErr = fmt.Errorf("backend logout: %w", err)
	}

	var storeErr error
	if err := s.store.Delete(ctx, session.ID); err != nil {
		storeErr = fmt.Errorf("delete session: %w", err)
	}

	metrics.SessionsTotal.WithLabelValues("destroyed").Inc()
	s.record(ctx, session.User.Username, domain.ActionLogout)
	return errors.Join(backendErr, storeErr)
}

// Resolve loads a live session. It returns domain.ErrSessionNotFound when
// the id is unknown or expired.
func (s *AuthService) Resolve(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, domain.ErrSessionNotFound
	}
	session, err := s.store.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *AuthService) record(ctx context.Context, username string, action domain.ActivityAction) {
	if s.activity == nil {
		return
	}
	s.activity.Record(domain.ActivityEvent{
		Username:  username,
		Action:    action,
		Resource:  domain.ResourceSession,
		RequestID: domain.RequestIDFromContext(ctx),
		At:        s.now().UTC(),
	})
}

var _ ports.AuthService = (*AuthService)(nil)

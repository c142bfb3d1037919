package ports

import (
	"context"

	"github.com/crmdesk/portal/internal/core/domain"
)

// SessionStore persists portal sessions. Find returns
// domain.ErrSessionNotFound when no live session exists for id.
type SessionStore interface {
	Save(ctx context.Context, s *domain.Session) error
	Find(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

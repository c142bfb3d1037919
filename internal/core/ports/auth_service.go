package ports

import (
	"context"

	"github.com/crmdesk/portal/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Logout(ctx context.Context, s *domain.Session) error
	Resolve(ctx context.Context, sessionID string) (*domain.Session, error)
}

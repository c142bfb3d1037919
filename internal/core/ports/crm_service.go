package ports

import (
	"context"

	"github.com/crmdesk/portal/internal/core/domain"
)

// CRMService is the facade used by handlers. It exposes the backend
// operations and adds the caller's activity trail.
type CRMService interface {
	CRMBackend
	Activity(ctx context.Context, limit int) ([]domain.ActivityEvent, error)
}

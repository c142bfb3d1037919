package ports

import (
	"context"

	"github.com/crmdesk/portal/internal/core/domain"
)

// ActivityRepository persists the activity trail.
type ActivityRepository interface {
	Insert(ctx context.Context, e *domain.ActivityEvent) error
	// ListByUser returns the newest events of username first.
	ListByUser(ctx context.Context, username string, limit int) ([]domain.ActivityEvent, error)
}

// ActivityRecorder accepts events for asynchronous persistence.
type ActivityRecorder interface {
	Record(e domain.ActivityEvent)
}

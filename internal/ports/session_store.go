package ports

import (
	"context"

	"visit-route-service/internal/domain"
)

// Port: per-session selection state plus the last reconciled schedule.
// The schedule lives here, owned by the session, instead of in process
// globals; reconciliation itself stays pure.
type SessionStore interface {
	// Return the session's selection; a session that never chose anything
	// gets the default weekday and no week number.
	Selection(ctx context.Context, sessionID string) (domain.Selection, error)
	SetWeekday(ctx context.Context, sessionID, weekday string) error
	SetWeek(ctx context.Context, sessionID string, week int) error

	// Return the session's last schedule, or nil when none was saved.
	Schedule(ctx context.Context, sessionID string) (*domain.Schedule, error)
	SaveSchedule(ctx context.Context, sessionID string, s *domain.Schedule) error
}

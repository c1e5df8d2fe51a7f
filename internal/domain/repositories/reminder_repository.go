package repositories

import (
	"context"
	"time"

	"cling-reminder.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// ReminderCounts holds per-user stored-status counts for the dashboard
type ReminderCounts struct {
	Total     int64
	Upcoming  int64
	Completed int64
}

// ReminderRepository defines reminder data operations. All reads and
// writes are scoped to the owning user.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *entities.Reminder) error
	GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Reminder, error)
	// List returns a page of reminders plus the total count matching
	// the store-level filter (before effective-status projection).
	List(ctx context.Context, userID uuid.UUID, filter entities.ReminderFilter) ([]*entities.Reminder, int64, error)
	Update(ctx context.Context, userID, id uuid.UUID, updates map[string]interface{}) (*entities.Reminder, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Counts(ctx context.Context, userID uuid.UUID) (*ReminderCounts, error)
	// ReconcileOverdue persists status=overdue for stored-upcoming
	// reminders dated before now, optionally scoped to one user.
	// Returns the number of rows changed; running it twice is a no-op.
	ReconcileOverdue(ctx context.Context, userID *uuid.UUID, now time.Time) (int64, error)
}

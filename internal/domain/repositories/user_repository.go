package repositories

import (
	"context"

	"cling-reminder.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

// OneTimeCodeRepository defines login code data operations
type OneTimeCodeRepository interface {
	Create(ctx context.Context, code *entities.OneTimeCode) error
	GetLatestByEmail(ctx context.Context, email string) (*entities.OneTimeCode, error)
	GetRecentByEmail(ctx context.Context, email string, limit int) ([]*entities.OneTimeCode, error)
	DeleteByEmail(ctx context.Context, email string) error
}

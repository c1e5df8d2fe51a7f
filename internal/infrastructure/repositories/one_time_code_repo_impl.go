package repositories

import (
	"context"
	"errors"
	"time"

	"cling-reminder.backend/internal/domain/entities"
	domainerrors "cling-reminder.backend/internal/domain/errors"
	"cling-reminder.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OneTimeCodeRepository implements login code data operations
type OneTimeCodeRepository struct {
	db *gorm.DB
}

// NewOneTimeCodeRepository creates a new one-time code repository
func NewOneTimeCodeRepository(db *gorm.DB) *OneTimeCodeRepository {
	return &OneTimeCodeRepository{db: db}
}

// Create persists a new code record
func (r *OneTimeCodeRepository) Create(ctx context.Context, code *entities.OneTimeCode) error {
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now()
	}

	m := &models.OneTimeCode{
		ID:        code.ID,
		Email:     code.Email,
		CodeHash:  code.CodeHash,
		ExpiresAt: code.ExpiresAt,
		CreatedAt: code.CreatedAt,
	}

	return r.db.WithContext(ctx).Create(m).Error
}

// GetLatestByEmail returns the most recently created code for an email
func (r *OneTimeCodeRepository) GetLatestByEmail(ctx context.Context, email string) (*entities.OneTimeCode, error) {
	var m models.OneTimeCode
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toCodeEntity(&m), nil
}

// GetRecentByEmail returns up to limit codes for an email, newest first
func (r *OneTimeCodeRepository) GetRecentByEmail(ctx context.Context, email string, limit int) ([]*entities.OneTimeCode, error) {
	var ms []models.OneTimeCode
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		Limit(limit).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	codes := make([]*entities.OneTimeCode, 0, len(ms))
	for _, m := range ms {
		model := m
		codes = append(codes, toCodeEntity(&model))
	}
	return codes, nil
}

// DeleteByEmail removes every code for an email. Called on successful
// verification so the whole outstanding batch is single-use.
func (r *OneTimeCodeRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&models.OneTimeCode{}).Error
}

func toCodeEntity(m *models.OneTimeCode) *entities.OneTimeCode {
	return &entities.OneTimeCode{
		ID:        m.ID,
		Email:     m.Email,
		CodeHash:  m.CodeHash,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
	}
}

package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"cling-reminder.backend/internal/domain/entities"
	domainerrors "cling-reminder.backend/internal/domain/errors"
	domainrepos "cling-reminder.backend/internal/domain/repositories"
	"cling-reminder.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// ReminderRepository implements reminder data operations
type ReminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository creates a new reminder repository
func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// Create creates a new reminder
func (r *ReminderRepository) Create(ctx context.Context, reminder *entities.Reminder) error {
	if reminder.ID == uuid.Nil {
		reminder.ID = uuid.New()
	}
	now := time.Now()
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = now
	}
	reminder.UpdatedAt = now

	m := toReminderModel(reminder)
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets a reminder owned by the given user
func (r *ReminderRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Reminder, error) {
	var m models.Reminder
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toReminderEntity(&m), nil
}

// List returns a page of reminders and the total store-level match
// count. The overdue status filter is not applied here; it requires
// the read-time projection and is handled by the caller.
func (r *ReminderRepository) List(ctx context.Context, userID uuid.UUID, filter entities.ReminderFilter) ([]*entities.Reminder, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Reminder{}).Where("user_id = ?", userID)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}
	if filter.Status != "" && filter.Status != entities.StatusOverdue {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DateFrom.Valid {
		query = query.Where("date >= ?", filter.DateFrom.Time)
	}
	if filter.DateTo.Valid {
		query = query.Where("date <= ?", filter.DateTo.Time)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := filter.SortColumn()
	if strings.EqualFold(filter.Order, "desc") {
		order += " DESC"
	} else {
		order += " ASC"
	}

	var ms []models.Reminder
	err := query.
		Order(order).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&ms).Error
	if err != nil {
		return nil, 0, err
	}

	reminders := make([]*entities.Reminder, 0, len(ms))
	for _, m := range ms {
		model := m
		reminders = append(reminders, toReminderEntity(&model))
	}
	return reminders, total, nil
}

// Update applies an allow-listed field map to an owned reminder and
// returns the updated row
func (r *ReminderRepository) Update(ctx context.Context, userID, id uuid.UUID, updates map[string]interface{}) (*entities.Reminder, error) {
	updates["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).Model(&models.Reminder{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}

	return r.GetByID(ctx, userID, id)
}

// Delete removes an owned reminder
func (r *ReminderRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Reminder{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Counts returns stored-status counts for the dashboard
func (r *ReminderRepository) Counts(ctx context.Context, userID uuid.UUID) (*domainrepos.ReminderCounts, error) {
	counts := &domainrepos.ReminderCounts{}

	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Reminder{}).Where("user_id = ?", userID)
	}

	if err := base().Count(&counts.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", entities.StatusUpcoming).Count(&counts.Upcoming).Error; err != nil {
		return nil, err
	}
	if err := base().Where("status = ?", entities.StatusCompleted).Count(&counts.Completed).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

// ReconcileOverdue persists overdue for stored-upcoming reminders whose
// date has passed. Idempotent: already-overdue rows no longer match.
func (r *ReminderRepository) ReconcileOverdue(ctx context.Context, userID *uuid.UUID, now time.Time) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Reminder{}).
		Where("status = ? AND date < ?", entities.StatusUpcoming, now)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	result := query.Updates(map[string]interface{}{
		"status":     entities.StatusOverdue,
		"updated_at": now,
	})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func toReminderModel(e *entities.Reminder) *models.Reminder {
	return &models.Reminder{
		ID:           e.ID,
		UserID:       e.UserID,
		Title:        e.Title,
		Description:  e.Description,
		Date:         e.Date.Ptr(),
		Time:         e.Time,
		Device:       e.Device,
		Category:     e.Category,
		IconImageURL: e.IconImageURL.Ptr(),
		Status:       string(e.Status),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toReminderEntity(m *models.Reminder) *entities.Reminder {
	return &entities.Reminder{
		ID:           m.ID,
		UserID:       m.UserID,
		Title:        m.Title,
		Description:  m.Description,
		Date:         null.TimeFromPtr(m.Date),
		Time:         m.Time,
		Device:       m.Device,
		Category:     m.Category,
		IconImageURL: null.StringFromPtr(m.IconImageURL),
		Status:       entities.ReminderStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

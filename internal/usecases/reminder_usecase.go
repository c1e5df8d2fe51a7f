package usecases

import (
	"context"
	"time"

	"cling-reminder.backend/internal/domain/entities"
	domainerrors "cling-reminder.backend/internal/domain/errors"
	"cling-reminder.backend/internal/domain/repositories"
	"cling-reminder.backend/pkg/logger"
	"cling-reminder.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
)

// ReminderUsecase handles reminder business logic
type ReminderUsecase struct {
	reminderRepo repositories.ReminderRepository
}

// NewReminderUsecase creates a new reminder usecase
func NewReminderUsecase(reminderRepo repositories.ReminderRepository) *ReminderUsecase {
	return &ReminderUsecase{reminderRepo: reminderRepo}
}

// Create creates a reminder for the user
func (u *ReminderUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateReminderInput) (*entities.Reminder, error) {
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid date format")
	}

	reminder := &entities.Reminder{
		UserID:       userID,
		Title:        input.Title,
		Description:  input.Description,
		Date:         date,
		Time:         input.Time,
		Device:       input.Device,
		Category:     input.Category,
		IconImageURL: null.NewString(input.IconImageURL, input.IconImageURL != ""),
		Status:       entities.StatusUpcoming,
	}

	if err := u.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, err
	}

	logger.Info(ctx, "reminder created",
		zap.String("reminder_id", reminder.ID.String()),
		zap.String("user_id", userID.String()))

	project(reminder, time.Now())
	return reminder, nil
}

// Get returns a single owned reminder with its effective status
func (u *ReminderUsecase) Get(ctx context.Context, userID, id uuid.UUID) (*entities.Reminder, error) {
	reminder, err := u.reminderRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	project(reminder, time.Now())
	return reminder, nil
}

// List returns a page of the user's reminders. Statuses are projected
// after the store query; the overdue filter is applied to the projected
// values. Meta.Total reflects the store-level match count.
func (u *ReminderUsecase) List(ctx context.Context, userID uuid.UUID, filter entities.ReminderFilter, page int) ([]*entities.Reminder, *utils.PaginationMeta, error) {
	reminders, total, err := u.reminderRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	for _, r := range reminders {
		project(r, now)
	}

	if filter.Status == entities.StatusOverdue {
		filtered := reminders[:0]
		for _, r := range reminders {
			if r.Status == entities.StatusOverdue {
				filtered = append(filtered, r)
			}
		}
		reminders = filtered
	}

	meta := &utils.PaginationMeta{
		Total:    total,
		Page:     page,
		Limit:    filter.Limit,
		Returned: len(reminders),
	}
	return reminders, meta, nil
}

// Update applies a partial update to an owned reminder
func (u *ReminderUsecase) Update(ctx context.Context, userID, id uuid.UUID, input *entities.UpdateReminderInput) (*entities.Reminder, error) {
	updates := map[string]interface{}{}

	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Date != nil {
		if *input.Date == "" {
			updates["date"] = nil
		} else {
			date, err := parseDate(*input.Date)
			if err != nil {
				return nil, domainerrors.BadRequest("invalid date format")
			}
			updates["date"] = date.Time
		}
	}
	if input.Time != nil {
		updates["time"] = *input.Time
	}
	if input.Device != nil {
		updates["device"] = *input.Device
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.IconImageURL != nil {
		updates["icon_image_url"] = *input.IconImageURL
	}
	if input.Status != nil {
		status := entities.ReminderStatus(*input.Status)
		if !status.Valid() {
			return nil, domainerrors.BadRequest("invalid status value")
		}
		updates["status"] = string(status)
	}

	if len(updates) == 0 {
		return nil, domainerrors.BadRequest("no fields to update")
	}

	reminder, err := u.reminderRepo.Update(ctx, userID, id, updates)
	if err != nil {
		return nil, err
	}
	project(reminder, time.Now())
	return reminder, nil
}

// Delete removes an owned reminder
func (u *ReminderUsecase) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return u.reminderRepo.Delete(ctx, userID, id)
}

// MarkCompleted marks an owned reminder completed
func (u *ReminderUsecase) MarkCompleted(ctx context.Context, userID, id uuid.UUID) (*entities.Reminder, error) {
	return u.reminderRepo.Update(ctx, userID, id, map[string]interface{}{
		"status": string(entities.StatusCompleted),
	})
}

// ReconcileOverdue persists overdue status for past-due upcoming
// reminders, optionally scoped to one user
func (u *ReminderUsecase) ReconcileOverdue(ctx context.Context, userID *uuid.UUID) (int64, error) {
	modified, err := u.reminderRepo.ReconcileOverdue(ctx, userID, time.Now())
	if err != nil {
		return 0, err
	}
	if modified > 0 {
		logger.Info(ctx, "reconciled overdue reminders", zap.Int64("modified", modified))
	}
	return modified, nil
}

// project overwrites the stored status with the read-time projection
func project(r *entities.Reminder, now time.Time) {
	r.Status = r.EffectiveStatus(now)
}

// parseDate accepts a bare date or an RFC 3339 timestamp
func parseDate(value string) (null.Time, error) {
	if value == "" {
		return null.Time{}, nil
	}
	if ts, err := time.Parse("2006-01-02", value); err == nil {
		return null.TimeFrom(ts), nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return null.Time{}, err
	}
	return null.TimeFrom(ts), nil
}

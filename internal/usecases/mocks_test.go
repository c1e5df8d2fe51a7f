package usecases_test

import (
	"context"
	"time"

	"cling-reminder.backend/internal/domain/entities"
	"cling-reminder.backend/internal/domain/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

// Mock OneTimeCodeRepository
type MockOneTimeCodeRepository struct {
	mock.Mock
}

func (m *MockOneTimeCodeRepository) Create(ctx context.Context, code *entities.OneTimeCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockOneTimeCodeRepository) GetLatestByEmail(ctx context.Context, email string) (*entities.OneTimeCode, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.OneTimeCode), args.Error(1)
}

func (m *MockOneTimeCodeRepository) GetRecentByEmail(ctx context.Context, email string, limit int) ([]*entities.OneTimeCode, error) {
	args := m.Called(ctx, email, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.OneTimeCode), args.Error(1)
}

func (m *MockOneTimeCodeRepository) DeleteByEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

// Mock ReminderRepository
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) Create(ctx context.Context, reminder *entities.Reminder) error {
	args := m.Called(ctx, reminder)
	if reminder.ID == uuid.Nil {
		reminder.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockReminderRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*entities.Reminder, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Reminder), args.Error(1)
}

func (m *MockReminderRepository) List(ctx context.Context, userID uuid.UUID, filter entities.ReminderFilter) ([]*entities.Reminder, int64, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Reminder), args.Get(1).(int64), args.Error(2)
}

func (m *MockReminderRepository) Update(ctx context.Context, userID, id uuid.UUID, updates map[string]interface{}) (*entities.Reminder, error) {
	args := m.Called(ctx, userID, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Reminder), args.Error(1)
}

func (m *MockReminderRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockReminderRepository) Counts(ctx context.Context, userID uuid.UUID) (*repositories.ReminderCounts, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.ReminderCounts), args.Error(1)
}

func (m *MockReminderRepository) ReconcileOverdue(ctx context.Context, userID *uuid.UUID, now time.Time) (int64, error) {
	args := m.Called(ctx, userID, now)
	return args.Get(0).(int64), args.Error(1)
}

// Mock ImageGenerator
type MockImageGenerator struct {
	mock.Mock
}

func (m *MockImageGenerator) Generate(ctx context.Context, in entities.GenerateImageInput) (*entities.ImageSuggestion, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ImageSuggestion), args.Error(1)
}

// Mock IconSuggester
type MockIconSuggester struct {
	mock.Mock
}

func (m *MockIconSuggester) SuggestIcons(ctx context.Context, description string) ([]string, error) {
	args := m.Called(ctx, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

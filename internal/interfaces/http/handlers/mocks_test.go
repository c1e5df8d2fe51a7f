package handlers_test

import (
	"context"
	"time"

	"cling-reminder.backend/internal/domain/entities"
	"cling-reminder.backend/internal/interfaces/http/middleware"
	"cling-reminder.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SendOTP(ctx context.Context, input *entities.SendOTPInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockAuthService) VerifyOTP(ctx context.Context, input *entities.VerifyOTPInput) (*entities.User, string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entities.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) GetUserInfo(ctx context.Context, userID uuid.UUID) (*entities.UserInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserInfo), args.Error(1)
}

func (m *MockAuthService) SessionTTL() time.Duration {
	args := m.Called()
	return args.Get(0).(time.Duration)
}

// Mock ReminderService
type MockReminderService struct {
	mock.Mock
}

func (m *MockReminderService) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateReminderInput) (*entities.Reminder, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Reminder), args.Error(1)
}

func (m *MockReminderService) Get(ctx context.Context, userID, id uuid.UUID) (*entities.Reminder, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Reminder), args.Error(1)
}

func (m *MockReminderService) List(ctx context.Context, userID uuid.UUID, filter entities.ReminderFilter, page int) ([]*entities.Reminder, *utils.PaginationMeta, error) {
	args := m.Called(ctx, userID, filter, page)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]*entities.Reminder), args.Get(1).(*utils.PaginationMeta), args.Error(2)
}

func (m *MockReminderService) Update(ctx context.Context, userID, id uuid.UUID, input *entities.UpdateReminderInput) (*entities.Reminder, error) {
	args := m.Called(ctx, userID, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Reminder), args.Error(1)
}

func (m *MockReminderService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockReminderService) MarkCompleted(ctx context.Context, userID, id uuid.UUID) (*entities.Reminder, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Reminder), args.Error(1)
}

func (m *MockReminderService) ReconcileOverdue(ctx context.Context, userID *uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// Mock ImageService
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) GenerateImage(ctx context.Context, input entities.GenerateImageInput) (*entities.ImageSuggestion, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ImageSuggestion), args.Error(1)
}

func (m *MockImageService) GenerateIcons(ctx context.Context, input entities.GenerateIconsInput) ([]string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// asUser simulates an authenticated session for handler tests
func asUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

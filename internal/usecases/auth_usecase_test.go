package usecases_test

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"cling-reminder.backend/internal/domain/entities"
	domainerrors "cling-reminder.backend/internal/domain/errors"
	"cling-reminder.backend/internal/domain/repositories"
	"cling-reminder.backend/internal/infrastructure/email"
	"cling-reminder.backend/internal/usecases"
	"cling-reminder.backend/pkg/jwt"
	"cling-reminder.backend/pkg/otp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`\d{6}`)

func newAuthFixture() (*usecases.AuthUsecase, *MockUserRepository, *MockOneTimeCodeRepository, *MockReminderRepository, *email.MemorySender, *jwt.JWTService) {
	userRepo := new(MockUserRepository)
	codeRepo := new(MockOneTimeCodeRepository)
	reminderRepo := new(MockReminderRepository)
	sender := email.NewMemorySender()
	jwtService := jwt.NewJWTService("test-secret", 7*24*time.Hour)

	uc := usecases.NewAuthUsecase(userRepo, codeRepo, reminderRepo, sender, jwtService, 10*time.Minute, time.Minute)
	return uc, userRepo, codeRepo, reminderRepo, sender, jwtService
}

func TestAuthUsecase_SendOTP(t *testing.T) {
	uc, _, codeRepo, _, sender, _ := newAuthFixture()
	ctx := context.Background()

	var created *entities.OneTimeCode
	codeRepo.On("GetLatestByEmail", ctx, "a@x.com").Return(nil, domainerrors.ErrNotFound)
	codeRepo.On("Create", ctx, mock.AnythingOfType("*entities.OneTimeCode")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entities.OneTimeCode)
		}).Return(nil)

	require.NoError(t, uc.SendOTP(ctx, &entities.SendOTPInput{Email: "a@x.com"}))

	require.NotNil(t, created)
	require.Equal(t, "a@x.com", created.Email)
	require.WithinDuration(t, created.CreatedAt.Add(10*time.Minute), created.ExpiresAt, time.Second)

	sent := sender.Sent()
	require.Len(t, sent, 1)
	require.Equal(t, "a@x.com", sent[0].To)
	require.Equal(t, "Your login OTP", sent[0].Subject)
	require.Contains(t, sent[0].TextBody, "10 minutes")

	// The mailed plaintext must hash to the stored digest.
	code := codePattern.FindString(sent[0].TextBody)
	require.NotEmpty(t, code)
	require.Equal(t, created.CodeHash, otp.HashCode(code))
}

func TestAuthUsecase_SendOTP_Cooldown(t *testing.T) {
	uc, _, codeRepo, _, sender, _ := newAuthFixture()
	ctx := context.Background()

	codeRepo.On("GetLatestByEmail", ctx, "a@x.com").Return(&entities.OneTimeCode{
		Email:     "a@x.com",
		CreatedAt: time.Now().Add(-10 * time.Second),
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}, nil)

	err := uc.SendOTP(ctx, &entities.SendOTPInput{Email: "a@x.com"})
	require.ErrorIs(t, err, domainerrors.ErrRateLimited)

	codeRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	require.Empty(t, sender.Sent())
}

func TestAuthUsecase_SendOTP_CooldownElapsed(t *testing.T) {
	uc, _, codeRepo, _, sender, _ := newAuthFixture()
	ctx := context.Background()

	codeRepo.On("GetLatestByEmail", ctx, "a@x.com").Return(&entities.OneTimeCode{
		Email:     "a@x.com",
		CreatedAt: time.Now().Add(-2 * time.Minute),
		ExpiresAt: time.Now().Add(8 * time.Minute),
	}, nil)
	codeRepo.On("Create", ctx, mock.AnythingOfType("*entities.OneTimeCode")).Return(nil)

	require.NoError(t, uc.SendOTP(ctx, &entities.SendOTPInput{Email: "a@x.com"}))
	require.Len(t, sender.Sent(), 1)
}

func TestAuthUsecase_SendOTP_SendFailureNotRolledBack(t *testing.T) {
	uc, _, codeRepo, _, sender, _ := newAuthFixture()
	ctx := context.Background()
	sender.Err = errors.New("smtp down")

	codeRepo.On("GetLatestByEmail", ctx, "a@x.com").Return(nil, domainerrors.ErrNotFound)
	codeRepo.On("Create", ctx, mock.AnythingOfType("*entities.OneTimeCode")).Return(nil)

	err := uc.SendOTP(ctx, &entities.SendOTPInput{Email: "a@x.com"})
	require.Error(t, err)

	var appErr *domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusBadGateway, appErr.Status)

	// The code record stays; the client retries after the cooldown.
	codeRepo.AssertCalled(t, "Create", ctx, mock.AnythingOfType("*entities.OneTimeCode"))
}

func TestAuthUsecase_SendOTP_NormalizesEmail(t *testing.T) {
	uc, _, codeRepo, _, _, _ := newAuthFixture()
	ctx := context.Background()

	codeRepo.On("GetLatestByEmail", ctx, "a@x.com").Return(nil, domainerrors.ErrNotFound)
	codeRepo.On("Create", ctx, mock.AnythingOfType("*entities.OneTimeCode")).Return(nil)

	require.NoError(t, uc.SendOTP(ctx, &entities.SendOTPInput{Email: "  A@X.com "}))
	codeRepo.AssertCalled(t, "GetLatestByEmail", ctx, "a@x.com")
}

func validCode(email, code string) *entities.OneTimeCode {
	return &entities.OneTimeCode{
		ID:        uuid.New(),
		Email:     email,
		CodeHash:  otp.HashCode(code),
		ExpiresAt: time.Now().Add(5 * time.Minute),
		CreatedAt: time.Now().Add(-time.Minute),
	}
}

func TestAuthUsecase_VerifyOTP_NewUser(t *testing.T) {
	uc, userRepo, codeRepo, _, _, jwtService := newAuthFixture()
	ctx := context.Background()

	codeRepo.On("GetRecentByEmail", ctx, "a@x.com", 5).
		Return([]*entities.OneTimeCode{validCode("a@x.com", "123456")}, nil)
	codeRepo.On("DeleteByEmail", ctx, "a@x.com").Return(nil)
	userRepo.On("GetByEmail", ctx, "a@x.com").Return(nil, domainerrors.ErrNotFound)
	userRepo.On("Create", ctx, mock.AnythingOfType("*entities.User")).Return(nil)

	user, token, err := uc.VerifyOTP(ctx, &entities.VerifyOTPInput{Email: "a@x.com", OTP: "123456"})
	require.NoError(t, err)
	require.Equal(t, "a@x.com", user.Email)
	require.NotEqual(t, uuid.Nil, user.ID)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), claims.Subject)
	require.Equal(t, "a@x.com", claims.Email)

	codeRepo.AssertCalled(t, "DeleteByEmail", ctx, "a@x.com")
}

func TestAuthUsecase_VerifyOTP_ExistingUser(t *testing.T) {
	uc, userRepo, codeRepo, _, _, _ := newAuthFixture()
	ctx := context.Background()

	existing := &entities.User{ID: uuid.New(), Email: "a@x.com"}
	codeRepo.On("GetRecentByEmail", ctx, "a@x.com", 5).
		Return([]*entities.OneTimeCode{validCode("a@x.com", "123456")}, nil)
	codeRepo.On("DeleteByEmail", ctx, "a@x.com").Return(nil)
	userRepo.On("GetByEmail", ctx, "a@x.com").Return(existing, nil)

	user, _, err := uc.VerifyOTP(ctx, &entities.VerifyOTPInput{Email: "a@x.com", OTP: "123456"})
	require.NoError(t, err)
	require.Equal(t, existing.ID, user.ID)

	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_VerifyOTP_WrongCode(t *testing.T) {
	uc, userRepo, codeRepo, _, _, _ := newAuthFixture()
	ctx := context.Background()

	codeRepo.On("GetRecentByEmail", ctx, "a@x.com", 5).
		Return([]*entities.OneTimeCode{validCode("a@x.com", "123456")}, nil)

	_, _, err := uc.VerifyOTP(ctx, &entities.VerifyOTPInput{Email: "a@x.com", OTP: "654321"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidOrExpired)

	var appErr *domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusUnauthorized, appErr.Status)

	codeRepo.AssertNotCalled(t, "DeleteByEmail", mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_VerifyOTP_ConsumeFailureAbortsLogin(t *testing.T) {
	uc, userRepo, codeRepo, _, _, _ := newAuthFixture()
	ctx := context.Background()

	codeRepo.On("GetRecentByEmail", ctx, "a@x.com", 5).
		Return([]*entities.OneTimeCode{validCode("a@x.com", "123456")}, nil)
	codeRepo.On("DeleteByEmail", ctx, "a@x.com").Return(errors.New("db down"))

	_, token, err := uc.VerifyOTP(ctx, &entities.VerifyOTPInput{Email: "a@x.com", OTP: "123456"})
	require.Error(t, err)
	require.Empty(t, token)

	// No session may be issued while the code batch is still stored.
	userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_VerifyOTP_ExpiredCode(t *testing.T) {
	uc, _, codeRepo, _, _, _ := newAuthFixture()
	ctx := context.Background()

	expired := validCode("a@x.com", "123456")
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	codeRepo.On("GetRecentByEmail", ctx, "a@x.com", 5).
		Return([]*entities.OneTimeCode{expired}, nil)

	_, _, err := uc.VerifyOTP(ctx, &entities.VerifyOTPInput{Email: "a@x.com", OTP: "123456"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidOrExpired)
}

func TestAuthUsecase_VerifyOTP_MatchesOlderRecord(t *testing.T) {
	uc, userRepo, codeRepo, _, _, _ := newAuthFixture()
	ctx := context.Background()

	newest := validCode("a@x.com", "999999")
	older := validCode("a@x.com", "123456")
	codeRepo.On("GetRecentByEmail", ctx, "a@x.com", 5).
		Return([]*entities.OneTimeCode{newest, older}, nil)
	codeRepo.On("DeleteByEmail", ctx, "a@x.com").Return(nil)
	userRepo.On("GetByEmail", ctx, "a@x.com").Return(&entities.User{ID: uuid.New(), Email: "a@x.com"}, nil)

	_, _, err := uc.VerifyOTP(ctx, &entities.VerifyOTPInput{Email: "a@x.com", OTP: "123456"})
	require.NoError(t, err)
}

func TestAuthUsecase_GetUserInfo(t *testing.T) {
	uc, userRepo, _, reminderRepo, _, _ := newAuthFixture()
	ctx := context.Background()
	userID := uuid.New()

	userRepo.On("GetByID", ctx, userID).Return(&entities.User{ID: userID, Email: "bea@x.com"}, nil)
	reminderRepo.On("Counts", ctx, userID).Return(&repositories.ReminderCounts{
		Total:     7,
		Upcoming:  4,
		Completed: 2,
	}, nil)

	info, err := uc.GetUserInfo(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "bea@x.com", info.Email)
	require.Equal(t, "bea", info.Name)
	require.EqualValues(t, 7, info.RemindersCount)
	require.EqualValues(t, 4, info.UpcomingCount)
	require.EqualValues(t, 2, info.CompletedCount)
	require.WithinDuration(t, time.Now(), info.LastLogin, time.Second)
}

func TestAuthUsecase_GetUserInfo_UserMissing(t *testing.T) {
	uc, userRepo, _, _, _, _ := newAuthFixture()
	ctx := context.Background()
	userID := uuid.New()

	userRepo.On("GetByID", ctx, userID).Return(nil, domainerrors.ErrNotFound)

	_, err := uc.GetUserInfo(ctx, userID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

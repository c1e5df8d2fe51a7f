package usecases

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"cling-reminder.backend/internal/domain/entities"
	domainerrors "cling-reminder.backend/internal/domain/errors"
	"cling-reminder.backend/internal/domain/repositories"
	"cling-reminder.backend/internal/infrastructure/email"
	"cling-reminder.backend/pkg/jwt"
	"cling-reminder.backend/pkg/logger"
	"cling-reminder.backend/pkg/otp"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// recentCodeWindow caps how many of the newest code records are checked
// during verification.
const recentCodeWindow = 5

// AuthUsecase handles the email OTP login flow
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	codeRepo     repositories.OneTimeCodeRepository
	reminderRepo repositories.ReminderRepository
	sender       email.Sender
	jwtService   *jwt.JWTService
	otpTTL       time.Duration
	cooldown     time.Duration
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	codeRepo repositories.OneTimeCodeRepository,
	reminderRepo repositories.ReminderRepository,
	sender email.Sender,
	jwtService *jwt.JWTService,
	otpTTL time.Duration,
	cooldown time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		codeRepo:     codeRepo,
		reminderRepo: reminderRepo,
		sender:       sender,
		jwtService:   jwtService,
		otpTTL:       otpTTL,
		cooldown:     cooldown,
	}
}

// SessionTTL returns the lifetime of issued session tokens
func (u *AuthUsecase) SessionTTL() time.Duration {
	return u.jwtService.Expiry()
}

// SendOTP issues a login code for the email and delivers it. Requests
// inside the cooldown window are rejected without issuing a code.
func (u *AuthUsecase) SendOTP(ctx context.Context, input *entities.SendOTPInput) error {
	address := normalizeEmail(input.Email)
	now := time.Now()

	latest, err := u.codeRepo.GetLatestByEmail(ctx, address)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}
	if latest != nil && now.Sub(latest.CreatedAt) < u.cooldown {
		return domainerrors.RateLimited("please wait before requesting another code")
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return err
	}

	record := &entities.OneTimeCode{
		Email:     address,
		CodeHash:  otp.HashCode(code),
		ExpiresAt: now.Add(u.otpTTL),
		CreatedAt: now,
	}
	if err := u.codeRepo.Create(ctx, record); err != nil {
		return err
	}

	// The code record is not rolled back on send failure; the client
	// simply retries after the cooldown.
	msg := email.NewOTPMessage(address, code, int(u.otpTTL.Minutes()))
	if err := u.sender.Send(ctx, msg); err != nil {
		logger.Error(ctx, "failed to send OTP email", zap.Error(err))
		return domainerrors.Upstream(http.StatusBadGateway, "failed to send OTP", err)
	}

	logger.Info(ctx, "OTP issued", zap.String("email", address))
	return nil
}

// VerifyOTP checks the submitted code against the newest records for
// the email. On success every outstanding code for the email is
// consumed, the user is created if needed, and a session token is
// returned.
func (u *AuthUsecase) VerifyOTP(ctx context.Context, input *entities.VerifyOTPInput) (*entities.User, string, error) {
	address := normalizeEmail(input.Email)
	now := time.Now()

	recent, err := u.codeRepo.GetRecentByEmail(ctx, address, recentCodeWindow)
	if err != nil {
		return nil, "", err
	}

	hash := otp.HashCode(strings.TrimSpace(input.OTP))
	matched := false
	for _, rec := range recent {
		if rec.CodeHash == hash && !rec.Expired(now) {
			matched = true
			break
		}
	}
	if !matched {
		return nil, "", domainerrors.NewAppError(http.StatusUnauthorized, "invalid or expired OTP", domainerrors.ErrInvalidOrExpired)
	}

	// The whole batch must be consumed before a session is issued;
	// otherwise the matched code would verify a second time.
	if err := u.codeRepo.DeleteByEmail(ctx, address); err != nil {
		return nil, "", err
	}

	user, err := u.userRepo.GetByEmail(ctx, address)
	if errors.Is(err, domainerrors.ErrNotFound) {
		user = &entities.User{Email: address}
		if err := u.userRepo.Create(ctx, user); err != nil {
			return nil, "", err
		}
	} else if err != nil {
		return nil, "", err
	}

	token, err := u.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}

	logger.Info(ctx, "user logged in", zap.String("user_id", user.ID.String()))
	return user, token, nil
}

// GetUserInfo returns the dashboard summary for a user
func (u *AuthUsecase) GetUserInfo(ctx context.Context, userID uuid.UUID) (*entities.UserInfo, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts, err := u.reminderRepo.Counts(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &entities.UserInfo{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.DisplayName(),
		RemindersCount: counts.Total,
		UpcomingCount:  counts.Upcoming,
		CompletedCount: counts.Completed,
		LastLogin:      time.Now(),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

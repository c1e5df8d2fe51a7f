package handlers

import (
	"context"
	"net/http"
	"time"

	"cling-reminder.backend/internal/domain/entities"
	domainerrors "cling-reminder.backend/internal/domain/errors"
	"cling-reminder.backend/internal/interfaces/http/middleware"
	"cling-reminder.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthService interface {
	SendOTP(ctx context.Context, input *entities.SendOTPInput) error
	VerifyOTP(ctx context.Context, input *entities.VerifyOTPInput) (*entities.User, string, error)
	GetUserInfo(ctx context.Context, userID uuid.UUID) (*entities.UserInfo, error)
	SessionTTL() time.Duration
}

// AuthHandler handles the OTP login endpoints
type AuthHandler struct {
	authUsecase   AuthService
	secureCookies bool
}

// NewAuthHandler creates a new auth handler. secureCookies should be
// true in production so the session cookie is HTTPS-only.
func NewAuthHandler(authUsecase AuthService, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authUsecase:   authUsecase,
		secureCookies: secureCookies,
	}
}

// SendOTP issues a login code
// POST /api/send-otp
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var input entities.SendOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Email required"))
		return
	}

	if err := h.authUsecase.SendOTP(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "OTP sent"})
}

// VerifyOTP exchanges a valid code for a session cookie
// POST /api/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var input entities.VerifyOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("Email and OTP required"))
		return
	}

	_, token, err := h.authUsecase.VerifyOTP(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, token, int(h.authUsecase.SessionTTL().Seconds()))
	response.Success(c, http.StatusOK, gin.H{"message": "Logged in"})
}

// Logout clears the session cookie
// POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"ok": true, "message": "Logged out"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", h.secureCookies, true)
}

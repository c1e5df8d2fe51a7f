package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User represents an account identified by email. Users are created
// lazily on the first successful OTP verification.
type User struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Name      null.String `json:"name,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// DisplayName returns the stored name, falling back to the local part
// of the email address.
func (u *User) DisplayName() string {
	if u.Name.Valid && u.Name.String != "" {
		return u.Name.String
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return "User"
}

// SendOTPInput represents input for requesting a login code
type SendOTPInput struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyOTPInput represents input for verifying a login code
type VerifyOTPInput struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// UserInfo is the dashboard summary for the authenticated user
type UserInfo struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	RemindersCount int64     `json:"remindersCount"`
	UpcomingCount  int64     `json:"upcomingCount"`
	CompletedCount int64     `json:"completedCount"`
	LastLogin      time.Time `json:"lastLogin"`
}

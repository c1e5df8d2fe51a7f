package entities

import (
	"time"

	"github.com/google/uuid"
)

// OneTimeCode is a persisted login code for an email address. Only the
// SHA-256 digest of the code is stored. Multiple outstanding codes per
// address are allowed; all of them are deleted together on the first
// successful verification.
type OneTimeCode struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CodeHash  string    `json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the code is past its expiry at the given time
func (c *OneTimeCode) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

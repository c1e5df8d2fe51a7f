package models

import (
	"time"

	"github.com/google/uuid"
)

type OneTimeCode struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);not null;index"`
	CodeHash  string    `gorm:"type:varchar(64);not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

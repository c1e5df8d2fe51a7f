package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name      *string   `gorm:"type:varchar(100)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type Reminder struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title        string     `gorm:"type:varchar(255);not null"`
	Description  string     `gorm:"type:text"`
	Date         *time.Time `gorm:"index"`
	Time         string     `gorm:"type:varchar(16)"`
	Device       string     `gorm:"type:varchar(100)"`
	Category     string     `gorm:"type:varchar(100)"`
	IconImageURL *string    `gorm:"type:text"`
	Status       string     `gorm:"type:varchar(20);not null;default:'upcoming';index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Associations
	User User `gorm:"foreignKey:UserID"`
}

package entities

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ReminderStatus represents the stored status of a reminder
type ReminderStatus string

const (
	StatusUpcoming  ReminderStatus = "upcoming"
	StatusCompleted ReminderStatus = "completed"
	StatusOverdue   ReminderStatus = "overdue"
)

// Valid reports whether s is a known status value
func (s ReminderStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusCompleted, StatusOverdue:
		return true
	}
	return false
}

// Reminder represents a reminder owned by a user. Status holds the
// stored value; the effective status is recomputed on every read via
// EffectiveStatus.
type Reminder struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"userId"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	Date         null.Time      `json:"date,omitempty"`
	Time         string         `json:"time,omitempty"`
	Device       string         `json:"device,omitempty"`
	Category     string         `json:"category,omitempty"`
	IconImageURL null.String    `json:"iconImageUrl,omitempty"`
	Status       ReminderStatus `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// DueAt combines the reminder date with its optional HH:MM[:SS] time of
// day. Returns false when no date is set. A malformed time of day is
// ignored and the bare date is used.
func (r *Reminder) DueAt() (time.Time, bool) {
	if !r.Date.Valid {
		return time.Time{}, false
	}
	due := r.Date.Time

	parts := strings.Split(r.Time, ":")
	if len(parts) >= 2 {
		h, errH := strconv.Atoi(parts[0])
		m, errM := strconv.Atoi(parts[1])
		if errH == nil && errM == nil {
			s := 0
			if len(parts) >= 3 {
				if v, err := strconv.Atoi(parts[2]); err == nil {
					s = v
				}
			}
			due = time.Date(due.Year(), due.Month(), due.Day(), h, m, s, 0, due.Location())
		}
	}
	return due, true
}

// EffectiveStatus projects the status visible to callers: completed is
// sticky, anything scheduled in the past reads as overdue, otherwise
// the stored value stands. Never persisted by read paths.
func (r *Reminder) EffectiveStatus(now time.Time) ReminderStatus {
	if r.Status == StatusCompleted {
		return StatusCompleted
	}

	stored := r.Status
	if stored == "" {
		stored = StatusUpcoming
	}

	due, ok := r.DueAt()
	if !ok {
		return stored
	}
	if due.Before(now) {
		return StatusOverdue
	}
	return stored
}

// CreateReminderInput represents input for creating a reminder
type CreateReminderInput struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Device       string `json:"device"`
	Category     string `json:"category"`
	IconImageURL string `json:"iconImageUrl"`
}

// UpdateReminderInput represents a partial update. Pointer fields
// distinguish "absent" from "set to empty".
type UpdateReminderInput struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	Date         *string `json:"date"`
	Time         *string `json:"time"`
	Device       *string `json:"device"`
	Category     *string `json:"category"`
	Status       *string `json:"status"`
	IconImageURL *string `json:"iconImageUrl"`
}

// ReminderFilter holds list filters. Status is matched against the
// effective status when it is "overdue" and against the stored value
// otherwise.
type ReminderFilter struct {
	Search   string
	Category string
	Status   ReminderStatus
	DateFrom null.Time
	DateTo   null.Time
	SortBy   string // allow-list: createdAt, date, title
	Order    string // asc or desc
	Limit    int
	Offset   int
}

// SortColumn maps the requested sort field to a store column,
// defaulting to date for anything outside the allow-list.
func (f ReminderFilter) SortColumn() string {
	switch f.SortBy {
	case "createdAt":
		return "created_at"
	case "title":
		return "title"
	case "date":
		return "date"
	}
	return "date"
}

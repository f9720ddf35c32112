package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies what a reminder is for
type Category string

const (
	CategoryFood           Category = "food"
	CategoryTransportation Category = "transportation"
	CategoryAccommodation  Category = "accommodation"
	CategoryEntertainment  Category = "entertainment"
	CategoryUtilities      Category = "utilities"
	CategoryShopping       Category = "shopping"
	CategoryHealthcare     Category = "healthcare"
	CategoryOther          Category = "other"
)

// Status represents the current state of a reminder
type Status string

const (
	StatusPending   Status = "pending"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"
)

// Reminder is a user-owned record of a future dated obligation (a bill,
// a due payment), distinct from an expense. Only pending reminders are
// eligible for due-date notifications.
type Reminder struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	UserID      string          `json:"user_id" gorm:"index;not null"`
	Title       string          `json:"title" gorm:"not null"`
	Description string          `json:"description,omitempty"`
	DueDate     time.Time       `json:"due_date" gorm:"index;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(14,2);default:0"`
	Category    Category        `json:"category" gorm:"default:other"`
	Status      Status          `json:"status" gorm:"index;default:pending"`
	// LastNotifiedOffsetDays records the most recent day-offset (3, 2, 1
	// or 0) a notification was sent for. Nil until the first send. It is a
	// scalar on purpose: only the latest milestone matters, offsets only
	// decrease as the due date approaches.
	LastNotifiedOffsetDays *int      `json:"last_notified_offset_days,omitempty"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// NormalizeDueDate truncates a due date to midnight UTC. Due dates are
// day-granular; time-of-day is never significant.
func NormalizeDueDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseCategory maps a request string to a known category, defaulting to
// "other" for anything unrecognised
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryFood, CategoryTransportation, CategoryAccommodation,
		CategoryEntertainment, CategoryUtilities, CategoryShopping,
		CategoryHealthcare:
		return Category(s)
	default:
		return CategoryOther
	}
}

// ValidStatus reports whether s names a known reminder status
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusDone, StatusCancelled:
		return true
	default:
		return false
	}
}

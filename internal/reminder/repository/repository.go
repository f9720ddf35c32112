package repository

import (
	"time"

	"sajilokhata-backend/internal/reminder/domain"
)

// ReminderRepository defines the interface for reminder data access
type ReminderRepository interface {
	// Create creates a new reminder
	Create(reminder *domain.Reminder) error

	// FindByID finds a reminder by its ID
	FindByID(id string) (*domain.Reminder, error)

	// FindByUserID finds all reminders for a user with optional status filter
	FindByUserID(userID string, status *domain.Status, limit, offset int) ([]*domain.Reminder, int64, error)

	// Update updates an existing reminder
	Update(reminder *domain.Reminder) error

	// Delete deletes a reminder by ID
	Delete(id string) error

	// FindDueSoon finds pending reminders with a due date in
	// [today, windowEnd] inclusive
	FindDueSoon(today, windowEnd time.Time) ([]*domain.Reminder, error)

	// UpdateLastNotifiedOffset records the day-offset milestone a
	// notification was just sent for
	UpdateLastNotifiedOffset(id string, offsetDays int) error
}

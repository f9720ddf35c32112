package usecase

import (
	"sajilokhata-backend/internal/reminder/domain"
)

// ReminderUsecase defines the interface for reminder business logic
type ReminderUsecase interface {
	// CreateReminder creates a new reminder for a user
	CreateReminder(userID, title, description, dueDate, amount, category string) (*domain.Reminder, error)

	// GetReminderByID retrieves a reminder by ID (with ownership check)
	GetReminderByID(userID, reminderID string) (*domain.Reminder, error)

	// GetUserReminders retrieves all reminders for a user with optional status filter
	GetUserReminders(userID string, status *string, limit, offset int) ([]*domain.Reminder, int64, error)

	// UpdateReminder updates an existing reminder
	UpdateReminder(userID, reminderID string, updates ReminderUpdateRequest) (*domain.Reminder, error)

	// UpdateReminderStatus moves a reminder between pending/done/cancelled
	UpdateReminderStatus(userID, reminderID, status string) (*domain.Reminder, error)

	// DeleteReminder deletes a reminder
	DeleteReminder(userID, reminderID string) error
}

// ReminderUpdateRequest represents the fields that can be updated
type ReminderUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Amount      *string `json:"amount,omitempty"`
	Category    *string `json:"category,omitempty"`
	Status      *string `json:"status,omitempty"`
}

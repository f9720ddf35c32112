package usecase

import (
	"errors"
	"time"

	"sajilokhata-backend/internal/reminder/domain"
	"sajilokhata-backend/internal/reminder/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// reminderUsecase implements ReminderUsecase interface
type reminderUsecase struct {
	reminderRepo repository.ReminderRepository
}

// NewReminderUsecase creates a new instance of reminderUsecase
func NewReminderUsecase(reminderRepo repository.ReminderRepository) ReminderUsecase {
	return &reminderUsecase{
		reminderRepo: reminderRepo,
	}
}

func (u *reminderUsecase) CreateReminder(userID, title, description, dueDate, amount, category string) (*domain.Reminder, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}

	due, err := parseDueDate(dueDate)
	if err != nil {
		return nil, err
	}

	amt, err := parseAmount(amount)
	if err != nil {
		return nil, err
	}

	reminder := &domain.Reminder{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		DueDate:     due,
		Amount:      amt,
		Category:    domain.ParseCategory(category),
		Status:      domain.StatusPending,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := u.reminderRepo.Create(reminder); err != nil {
		return nil, err
	}

	return reminder, nil
}

func (u *reminderUsecase) GetReminderByID(userID, reminderID string) (*domain.Reminder, error) {
	reminder, err := u.reminderRepo.FindByID(reminderID)
	if err != nil {
		return nil, err
	}
	if reminder == nil {
		return nil, errors.New("reminder not found")
	}
	if reminder.UserID != userID {
		return nil, errors.New("unauthorized")
	}
	return reminder, nil
}

func (u *reminderUsecase) GetUserReminders(userID string, status *string, limit, offset int) ([]*domain.Reminder, int64, error) {
	var statusFilter *domain.Status
	if status != nil && *status != "" {
		if !domain.ValidStatus(*status) {
			return nil, 0, errors.New("invalid status")
		}
		s := domain.Status(*status)
		statusFilter = &s
	}
	return u.reminderRepo.FindByUserID(userID, statusFilter, limit, offset)
}

func (u *reminderUsecase) UpdateReminder(userID, reminderID string, updates ReminderUpdateRequest) (*domain.Reminder, error) {
	reminder, err := u.GetReminderByID(userID, reminderID)
	if err != nil {
		return nil, err
	}

	if updates.Title != nil {
		if *updates.Title == "" {
			return nil, errors.New("title is required")
		}
		reminder.Title = *updates.Title
	}
	if updates.Description != nil {
		reminder.Description = *updates.Description
	}
	if updates.Category != nil {
		reminder.Category = domain.ParseCategory(*updates.Category)
	}
	if updates.Status != nil {
		if !domain.ValidStatus(*updates.Status) {
			return nil, errors.New("invalid status")
		}
		reminder.Status = domain.Status(*updates.Status)
	}
	if updates.Amount != nil {
		amt, err := parseAmount(*updates.Amount)
		if err != nil {
			return nil, err
		}
		reminder.Amount = amt
	}
	if updates.DueDate != nil {
		due, err := parseDueDate(*updates.DueDate)
		if err != nil {
			return nil, err
		}
		reminder.DueDate = due
		// A new due date means new notification milestones
		reminder.LastNotifiedOffsetDays = nil
	}

	reminder.UpdatedAt = time.Now()
	if err := u.reminderRepo.Update(reminder); err != nil {
		return nil, err
	}

	return reminder, nil
}

func (u *reminderUsecase) UpdateReminderStatus(userID, reminderID, status string) (*domain.Reminder, error) {
	if !domain.ValidStatus(status) {
		return nil, errors.New("invalid status")
	}

	reminder, err := u.GetReminderByID(userID, reminderID)
	if err != nil {
		return nil, err
	}

	reminder.Status = domain.Status(status)
	reminder.UpdatedAt = time.Now()
	if err := u.reminderRepo.Update(reminder); err != nil {
		return nil, err
	}

	return reminder, nil
}

func (u *reminderUsecase) DeleteReminder(userID, reminderID string) error {
	reminder, err := u.GetReminderByID(userID, reminderID)
	if err != nil {
		return err
	}
	return u.reminderRepo.Delete(reminder.ID)
}

// parseDueDate accepts RFC3339 or a bare YYYY-MM-DD date and normalizes the
// result to midnight UTC
func parseDueDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("due date is required")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return domain.NormalizeDueDate(t), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return domain.NormalizeDueDate(t), nil
	}
	return time.Time{}, errors.New("invalid due date format")
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	amt, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.New("invalid amount")
	}
	if amt.IsNegative() {
		return decimal.Zero, errors.New("amount cannot be negative")
	}
	return amt, nil
}

package repository

import (
	"errors"
	"time"

	"sajilokhata-backend/internal/reminder/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormReminderRepository implements ReminderRepository using GORM
type gormReminderRepository struct {
	db *gorm.DB
}

// NewGormReminderRepository creates a new GORM-based ReminderRepository
func NewGormReminderRepository(db *gorm.DB) ReminderRepository {
	return &gormReminderRepository{db: db}
}

func (r *gormReminderRepository) Create(reminder *domain.Reminder) error {
	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}
	reminder.CreatedAt = time.Now()
	reminder.UpdatedAt = time.Now()
	return r.db.Create(reminder).Error
}

func (r *gormReminderRepository) FindByID(id string) (*domain.Reminder, error) {
	var reminder domain.Reminder
	err := r.db.Where("id = ?", id).First(&reminder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reminder, nil
}

func (r *gormReminderRepository) FindByUserID(userID string, status *domain.Status, limit, offset int) ([]*domain.Reminder, int64, error) {
	var reminders []*domain.Reminder
	var total int64

	query := r.db.Model(&domain.Reminder{}).Where("user_id = ?", userID)

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("due_date ASC, created_at DESC").
		Limit(limit).Offset(offset).Find(&reminders).Error

	return reminders, total, err
}

func (r *gormReminderRepository) Update(reminder *domain.Reminder) error {
	reminder.UpdatedAt = time.Now()
	return r.db.Save(reminder).Error
}

func (r *gormReminderRepository) Delete(id string) error {
	return r.db.Delete(&domain.Reminder{}, "id = ?", id).Error
}

func (r *gormReminderRepository) FindDueSoon(today, windowEnd time.Time) ([]*domain.Reminder, error) {
	var reminders []*domain.Reminder
	err := r.db.Where("status = ? AND due_date >= ? AND due_date <= ?",
		domain.StatusPending, today, windowEnd).Find(&reminders).Error
	return reminders, err
}

func (r *gormReminderRepository) UpdateLastNotifiedOffset(id string, offsetDays int) error {
	return r.db.Model(&domain.Reminder{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_notified_offset_days": offsetDays,
			"updated_at":                time.Now(),
		}).Error
}

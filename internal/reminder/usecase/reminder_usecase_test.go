package usecase

import (
	"testing"
	"time"

	"sajilokhata-backend/internal/reminder/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memReminderRepo struct {
	reminders map[string]*domain.Reminder
}

func newMemReminderRepo() *memReminderRepo {
	return &memReminderRepo{reminders: make(map[string]*domain.Reminder)}
}

func (m *memReminderRepo) Create(r *domain.Reminder) error {
	m.reminders[r.ID] = r
	return nil
}

func (m *memReminderRepo) FindByID(id string) (*domain.Reminder, error) {
	return m.reminders[id], nil
}

func (m *memReminderRepo) FindByUserID(userID string, status *domain.Status, limit, offset int) ([]*domain.Reminder, int64, error) {
	var out []*domain.Reminder
	for _, r := range m.reminders {
		if r.UserID != userID {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (m *memReminderRepo) Update(r *domain.Reminder) error {
	m.reminders[r.ID] = r
	return nil
}

func (m *memReminderRepo) Delete(id string) error {
	delete(m.reminders, id)
	return nil
}

func (m *memReminderRepo) FindDueSoon(today, windowEnd time.Time) ([]*domain.Reminder, error) {
	var out []*domain.Reminder
	for _, r := range m.reminders {
		if r.Status == domain.StatusPending && !r.DueDate.Before(today) && !r.DueDate.After(windowEnd) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReminderRepo) UpdateLastNotifiedOffset(id string, offsetDays int) error {
	if r, ok := m.reminders[id]; ok {
		r.LastNotifiedOffsetDays = &offsetDays
	}
	return nil
}

func TestCreateReminderDefaults(t *testing.T) {
	uc := NewReminderUsecase(newMemReminderRepo())

	reminder, err := uc.CreateReminder("u1", "WiFi bill", "monthly internet", "2026-04-15", "1200.50", "utilities")
	require.NoError(t, err)

	assert.NotEmpty(t, reminder.ID)
	assert.Equal(t, "u1", reminder.UserID)
	assert.Equal(t, domain.StatusPending, reminder.Status)
	assert.Equal(t, domain.CategoryUtilities, reminder.Category)
	assert.Equal(t, "1200.5", reminder.Amount.String())
	assert.Nil(t, reminder.LastNotifiedOffsetDays)
	assert.Equal(t, time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC), reminder.DueDate)
}

func TestCreateReminderNormalizesDueDateToMidnightUTC(t *testing.T) {
	uc := NewReminderUsecase(newMemReminderRepo())

	reminder, err := uc.CreateReminder("u1", "Rent", "", "2026-04-15T18:45:00+05:45", "", "")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC), reminder.DueDate)
	assert.Equal(t, domain.CategoryOther, reminder.Category)
	assert.True(t, reminder.Amount.IsZero())
}

func TestCreateReminderValidation(t *testing.T) {
	uc := NewReminderUsecase(newMemReminderRepo())

	_, err := uc.CreateReminder("u1", "", "", "2026-04-15", "", "")
	assert.EqualError(t, err, "title is required")

	_, err = uc.CreateReminder("u1", "Rent", "", "", "", "")
	assert.EqualError(t, err, "due date is required")

	_, err = uc.CreateReminder("u1", "Rent", "", "next tuesday", "", "")
	assert.EqualError(t, err, "invalid due date format")

	_, err = uc.CreateReminder("u1", "Rent", "", "2026-04-15", "-5", "")
	assert.EqualError(t, err, "amount cannot be negative")

	_, err = uc.CreateReminder("u1", "Rent", "", "2026-04-15", "lots", "")
	assert.EqualError(t, err, "invalid amount")
}

func TestUnknownCategoryFallsBackToOther(t *testing.T) {
	uc := NewReminderUsecase(newMemReminderRepo())

	reminder, err := uc.CreateReminder("u1", "Rent", "", "2026-04-15", "", "rocketry")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryOther, reminder.Category)
}

func TestGetReminderOwnershipCheck(t *testing.T) {
	repo := newMemReminderRepo()
	uc := NewReminderUsecase(repo)

	created, err := uc.CreateReminder("u1", "Rent", "", "2026-04-15", "", "")
	require.NoError(t, err)

	_, err = uc.GetReminderByID("u2", created.ID)
	assert.EqualError(t, err, "unauthorized")

	_, err = uc.GetReminderByID("u1", "does-not-exist")
	assert.EqualError(t, err, "reminder not found")

	got, err := uc.GetReminderByID("u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestUpdateDueDateResetsNotificationMilestone(t *testing.T) {
	repo := newMemReminderRepo()
	uc := NewReminderUsecase(repo)

	created, err := uc.CreateReminder("u1", "Rent", "", "2026-04-15", "", "")
	require.NoError(t, err)

	offset := 2
	repo.reminders[created.ID].LastNotifiedOffsetDays = &offset

	newDue := "2026-05-01"
	updated, err := uc.UpdateReminder("u1", created.ID, ReminderUpdateRequest{DueDate: &newDue})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC), updated.DueDate)
	assert.Nil(t, updated.LastNotifiedOffsetDays)
}

func TestUpdateReminderStatus(t *testing.T) {
	repo := newMemReminderRepo()
	uc := NewReminderUsecase(repo)

	created, err := uc.CreateReminder("u1", "Rent", "", "2026-04-15", "", "")
	require.NoError(t, err)

	updated, err := uc.UpdateReminderStatus("u1", created.ID, "done")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, updated.Status)

	_, err = uc.UpdateReminderStatus("u1", created.ID, "archived")
	assert.EqualError(t, err, "invalid status")

	_, err = uc.UpdateReminderStatus("u2", created.ID, "cancelled")
	assert.EqualError(t, err, "unauthorized")
}

func TestDoneReminderLeavesDueSoonScans(t *testing.T) {
	repo := newMemReminderRepo()
	uc := NewReminderUsecase(repo)

	created, err := uc.CreateReminder("u1", "Rent", "", "2026-04-15", "", "")
	require.NoError(t, err)

	today := time.Date(2026, time.April, 14, 0, 0, 0, 0, time.UTC)
	due, err := repo.FindDueSoon(today, today.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.Len(t, due, 1)

	_, err = uc.UpdateReminderStatus("u1", created.ID, "done")
	require.NoError(t, err)

	due, err = repo.FindDueSoon(today, today.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestDeleteReminder(t *testing.T) {
	repo := newMemReminderRepo()
	uc := NewReminderUsecase(repo)

	created, err := uc.CreateReminder("u1", "Rent", "", "2026-04-15", "", "")
	require.NoError(t, err)

	err = uc.DeleteReminder("u2", created.ID)
	assert.EqualError(t, err, "unauthorized")

	require.NoError(t, uc.DeleteReminder("u1", created.ID))

	_, err = uc.GetReminderByID("u1", created.ID)
	assert.EqualError(t, err, "reminder not found")
}

func TestGetUserRemindersStatusFilter(t *testing.T) {
	repo := newMemReminderRepo()
	uc := NewReminderUsecase(repo)

	first, err := uc.CreateReminder("u1", "Rent", "", "2026-04-15", "", "")
	require.NoError(t, err)
	_, err = uc.CreateReminder("u1", "WiFi bill", "", "2026-04-20", "", "")
	require.NoError(t, err)

	_, err = uc.UpdateReminderStatus("u1", first.ID, "cancelled")
	require.NoError(t, err)

	status := "pending"
	reminders, total, err := uc.GetUserReminders("u1", &status, 50, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, reminders, 1)
	assert.Equal(t, "WiFi bill", reminders[0].Title)

	bad := "archived"
	_, _, err = uc.GetUserReminders("u1", &bad, 50, 0)
	assert.EqualError(t, err, "invalid status")
}

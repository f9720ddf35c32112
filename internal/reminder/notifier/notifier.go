package notifier

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	authrepo "sajilokhata-backend/internal/auth/repository"
	"sajilokhata-backend/internal/reminder/domain"
	"sajilokhata-backend/internal/reminder/repository"
	"sajilokhata-backend/pkg/fcm"

	"github.com/robfig/cron/v3"
)

// EventReminder is the SSE event name carrying due-date notifications
const EventReminder = "notification:reminder"

// notificationWindowDays is how far ahead of the due date notifications
// start (milestones at 3, 2, 1 and 0 days before)
const notificationWindowDays = 3

// Channel is the real-time push mechanism used to reach a user's active
// sessions
type Channel interface {
	Ready() bool
	SendToUser(userID, event string, data interface{})
}

// Payload is the notification body pushed for a due reminder
type Payload struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	DueDate   time.Time `json:"dueDate"`
	DaysUntil int       `json:"daysUntil"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
}

// DueDateNotifier scans pending reminders once an hour and pushes a
// notification per reminder per day-offset milestone. The last notified
// offset is persisted so a milestone is announced at most once.
type DueDateNotifier struct {
	reminderRepo repository.ReminderRepository
	deviceRepo   authrepo.DeviceTokenRepository
	fcmClient    *fcm.Client
	channel      Channel
	cron         *cron.Cron
	now          func() time.Time
}

// NewDueDateNotifier creates a new notifier. The channel may be a hub that
// is not ready yet; runs before it reports ready are no-ops. fcmClient may
// be nil, which disables device push but not session push.
func NewDueDateNotifier(
	reminderRepo repository.ReminderRepository,
	deviceRepo authrepo.DeviceTokenRepository,
	fcmClient *fcm.Client,
	channel Channel,
) *DueDateNotifier {
	return &DueDateNotifier{
		reminderRepo: reminderRepo,
		deviceRepo:   deviceRepo,
		fcmClient:    fcmClient,
		channel:      channel,
		now:          time.Now,
	}
}

// Start schedules the hourly scan at the top of every hour. Overlapping
// runs are skipped rather than stacked.
func (n *DueDateNotifier) Start() error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc("0 * * * *", n.checkDueReminders); err != nil {
		return fmt.Errorf("failed to schedule reminder scan: %w", err)
	}
	c.Start()
	n.cron = c

	log.Println("[ReminderNotifier] Started hourly due-date scan")
	return nil
}

// Stop gracefully stops the scheduler
func (n *DueDateNotifier) Stop() {
	if n.cron != nil {
		n.cron.Stop()
	}
}

// checkDueReminders is one scheduled run: scan, notify, record milestones
func (n *DueDateNotifier) checkDueReminders() {
	if n.channel == nil || !n.channel.Ready() {
		return
	}

	// Due dates are stored at midnight UTC, so the scan window and offset
	// arithmetic use the UTC midnight of the current local calendar date.
	// Anchoring at local midnight instead would shift the whole window by
	// the zone offset and misclassify every milestone.
	now := n.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	windowEnd := today.AddDate(0, 0, notificationWindowDays)

	reminders, err := n.reminderRepo.FindDueSoon(today, windowEnd)
	if err != nil {
		log.Printf("[ReminderNotifier] Error finding due reminders: %v", err)
		return
	}

	if len(reminders) == 0 {
		return
	}

	log.Printf("[ReminderNotifier] Found %d reminders due within %d days", len(reminders), notificationWindowDays)

	for _, rem := range reminders {
		daysUntil := int(math.Floor(rem.DueDate.Sub(today).Hours() / 24))
		if daysUntil < 0 || daysUntil > notificationWindowDays {
			continue
		}
		if rem.LastNotifiedOffsetDays != nil && *rem.LastNotifiedOffsetDays == daysUntil {
			// Already announced this milestone
			continue
		}

		payload := Payload{
			ID:        rem.ID,
			Title:     rem.Title,
			DueDate:   rem.DueDate,
			DaysUntil: daysUntil,
			Message:   buildMessage(rem.Title, daysUntil, rem.DueDate),
			Type:      "reminder",
		}

		n.channel.SendToUser(rem.UserID, EventReminder, payload)
		n.pushToDevices(rem, payload)

		if err := n.reminderRepo.UpdateLastNotifiedOffset(rem.ID, daysUntil); err != nil {
			log.Printf("[ReminderNotifier] Error recording offset %d for reminder %s: %v", daysUntil, rem.ID, err)
		}
	}
}

// buildMessage maps a day offset to its notification text
func buildMessage(title string, daysUntil int, due time.Time) string {
	switch daysUntil {
	case 0:
		return fmt.Sprintf("%q is due today", title)
	case 1:
		return fmt.Sprintf("%q is due tomorrow (%s)", title, due.Format("Jan 2, 2006"))
	default:
		return fmt.Sprintf("%q is due in %d days (%s)", title, daysUntil, due.Format("Jan 2, 2006"))
	}
}

// pushToDevices fans the notification out to the owner's registered device
// tokens. Best-effort: failures are logged and stale tokens removed.
func (n *DueDateNotifier) pushToDevices(rem *domain.Reminder, payload Payload) {
	if n.fcmClient == nil || n.deviceRepo == nil {
		return
	}

	tokens, err := n.deviceRepo.GetTokensByUserID(rem.UserID)
	if err != nil {
		log.Printf("[ReminderNotifier] Error getting device tokens for user %s: %v", rem.UserID, err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	var tokenStrings []string
	for _, t := range tokens {
		tokenStrings = append(tokenStrings, t.Token)
	}

	notification := fcm.NotificationData{
		Title: "Reminder: " + rem.Title,
		Body:  payload.Message,
		Data: map[string]string{
			"type":         "reminder",
			"reminder_id":  rem.ID,
			"days_until":   strconv.Itoa(payload.DaysUntil),
			"click_action": "/reminders",
		},
	}

	failedTokens, err := n.fcmClient.SendToDevices(context.Background(), tokenStrings, notification)
	if err != nil {
		log.Printf("[ReminderNotifier] Error sending push for reminder %s: %v", rem.ID, err)
		return
	}

	for _, token := range failedTokens {
		if err := n.deviceRepo.DeleteToken(token); err != nil {
			log.Printf("[ReminderNotifier] Error removing stale device token: %v", err)
		}
	}
}

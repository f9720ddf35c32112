package delivery

import (
	"net/http"
	"strconv"

	"sajilokhata-backend/internal/reminder/usecase"

	"github.com/gin-gonic/gin"
)

// ReminderHandler handles reminder-related HTTP requests
type ReminderHandler struct {
	reminderUsecase usecase.ReminderUsecase
}

// NewReminderHandler creates a new ReminderHandler
func NewReminderHandler(reminderUsecase usecase.ReminderUsecase) *ReminderHandler {
	return &ReminderHandler{
		reminderUsecase: reminderUsecase,
	}
}

// CreateReminderRequest represents the request body for creating a reminder
type CreateReminderRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date" binding:"required"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
}

// UpdateStatusRequest represents the request body for a status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetReminders returns all reminders for the authenticated user
// GET /api/reminders?status=pending&limit=50&offset=0
func (h *ReminderHandler) GetReminders(c *gin.Context) {
	userID := c.GetString("userID")

	status := c.Query("status")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	reminders, total, err := h.reminderUsecase.GetUserReminders(userID, statusPtr, limit, offset)
	if err != nil {
		if err.Error() == "invalid status" {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reminders": reminders,
		"total":     total,
	})
}

// GetReminderByID returns a specific reminder
// GET /api/reminders/:id
func (h *ReminderHandler) GetReminderByID(c *gin.Context) {
	userID := c.GetString("userID")
	reminderID := c.Param("id")

	reminder, err := h.reminderUsecase.GetReminderByID(userID, reminderID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, reminder)
}

// CreateReminder creates a new reminder
// POST /api/reminders
func (h *ReminderHandler) CreateReminder(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminder, err := h.reminderUsecase.CreateReminder(userID, req.Title, req.Description, req.DueDate, req.Amount, req.Category)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, reminder)
}

// UpdateReminder updates an existing reminder
// PUT /api/reminders/:id
func (h *ReminderHandler) UpdateReminder(c *gin.Context) {
	userID := c.GetString("userID")
	reminderID := c.Param("id")

	var updates usecase.ReminderUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminder, err := h.reminderUsecase.UpdateReminder(userID, reminderID, updates)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, reminder)
}

// UpdateReminderStatus marks a reminder pending/done/cancelled
// PATCH /api/reminders/:id/status
func (h *ReminderHandler) UpdateReminderStatus(c *gin.Context) {
	userID := c.GetString("userID")
	reminderID := c.Param("id")

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reminder, err := h.reminderUsecase.UpdateReminderStatus(userID, reminderID, req.Status)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, reminder)
}

// DeleteReminder deletes a reminder
// DELETE /api/reminders/:id
func (h *ReminderHandler) DeleteReminder(c *gin.Context) {
	userID := c.GetString("userID")
	reminderID := c.Param("id")

	if err := h.reminderUsecase.DeleteReminder(userID, reminderID); err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reminder deleted"})
}

func respondUsecaseError(c *gin.Context, err error) {
	switch err.Error() {
	case "reminder not found":
		c.JSON(http.StatusNotFound, gin.H{"error": "Reminder not found"})
	case "unauthorized":
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	case "invalid status", "invalid due date format", "invalid amount",
		"amount cannot be negative", "title is required", "due date is required":
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

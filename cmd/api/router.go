package api

import (
	"net/http"

	authDelivery "sajilokhata-backend/internal/auth/delivery"
	authUsecase "sajilokhata-backend/internal/auth/usecase"
	reminderDelivery "sajilokhata-backend/internal/reminder/delivery"
	reminderUsecase "sajilokhata-backend/internal/reminder/usecase"
	"sajilokhata-backend/pkg/sse"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, reminderUc reminderUsecase.ReminderUsecase, sseManager *sse.Manager) {
	authHandler := authDelivery.NewAuthHandler(authUc)
	reminderHandler := reminderDelivery.NewReminderHandler(reminderUc)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// SSE endpoint
		api.GET("/events", authDelivery.AuthMiddleware(authUc), func(c *gin.Context) {
			userID := c.GetString("userID")
			sseManager.ServeHTTP(c, userID)
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.POST("/google", authHandler.GoogleSignIn)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authDelivery.AuthMiddleware(authUc), authHandler.Me)
		}

		// Device token routes (protected)
		devices := api.Group("/devices")
		devices.Use(authDelivery.AuthMiddleware(authUc))
		{
			devices.POST("/register", authHandler.RegisterDeviceToken)
			devices.DELETE("/:token", authHandler.UnregisterDeviceToken)
		}

		// Reminder routes (protected)
		reminders := api.Group("/reminders")
		reminders.Use(authDelivery.AuthMiddleware(authUc))
		{
			reminders.GET("", reminderHandler.GetReminders)
			reminders.POST("", reminderHandler.CreateReminder)
			reminders.GET("/:id", reminderHandler.GetReminderByID)
			reminders.PUT("/:id", reminderHandler.UpdateReminder)
			reminders.DELETE("/:id", reminderHandler.DeleteReminder)
			reminders.PATCH("/:id/status", reminderHandler.UpdateReminderStatus)
		}
	}
}

package main

import (
	"log"

	api "sajilokhata-backend/cmd/api"
	authdomain "sajilokhata-backend/internal/auth/domain"
	authRepo "sajilokhata-backend/internal/auth/repository"
	authUsecase "sajilokhata-backend/internal/auth/usecase"
	reminderdomain "sajilokhata-backend/internal/reminder/domain"
	"sajilokhata-backend/internal/reminder/notifier"
	reminderRepo "sajilokhata-backend/internal/reminder/repository"
	reminderUsecase "sajilokhata-backend/internal/reminder/usecase"
	"sajilokhata-backend/pkg/config"
	"sajilokhata-backend/pkg/database"
	"sajilokhata-backend/pkg/fcm"
	"sajilokhata-backend/pkg/sse"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &authdomain.RefreshToken{}, &authdomain.DeviceToken{}, &reminderdomain.Reminder{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	deviceTokenRepository := authRepo.NewDeviceTokenRepository(db)
	reminderRepository := reminderRepo.NewGormReminderRepository(db)

	// Initialize SSE Manager
	sseManager := sse.NewManager()
	go sseManager.Run()
	defer sseManager.Stop()

	// Initialize FCM Client (optional, session push works without it)
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (device push disabled): %v", err)
		}
	} else {
		log.Printf("[WARN] No Firebase credentials configured, device push disabled")
	}

	// Initialize use cases
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, deviceTokenRepository, cfg)
	reminderUsecaseInstance := reminderUsecase.NewReminderUsecase(reminderRepository)

	// Start the hourly due-date notifier
	dueDateNotifier := notifier.NewDueDateNotifier(reminderRepository, deviceTokenRepository, fcmClient, sseManager)
	if err := dueDateNotifier.Start(); err != nil {
		log.Fatal("Failed to start reminder notifier:", err)
	}
	defer dueDateNotifier.Stop()

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, reminderUsecaseInstance, sseManager, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

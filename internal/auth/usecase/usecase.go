package usecase

import (
	authdomain "sajilokhata-backend/internal/auth/domain"
	authdto "sajilokhata-backend/internal/auth/dto"
)

// AuthUsecase defines the interface for authentication business logic
type AuthUsecase interface {
	// Login authenticates an email/password user
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)

	// Register creates a new email/password user
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)

	// GoogleSignIn authenticates a user from a verified Google ID token
	GoogleSignIn(idToken string) (*authdto.TokenResponse, error)

	// RefreshToken exchanges a valid refresh token for a new token pair
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)

	// Logout invalidates a refresh token
	Logout(refreshToken string) error

	// ValidateToken verifies an access token and returns its user
	ValidateToken(tokenString string) (*authdomain.User, error)

	// RegisterDeviceToken stores an FCM device token for push delivery
	RegisterDeviceToken(userID, token, deviceInfo string) error

	// UnregisterDeviceToken removes an FCM device token
	UnregisterDeviceToken(token string) error
}

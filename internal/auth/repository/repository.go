package repository

import (
	authdomain "sajilokhata-backend/internal/auth/domain"
)

// UserRepository defines the interface for user and refresh-token storage
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)
	Update(user *authdomain.User) error

	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindRefreshToken(token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(token string) error
}

// DeviceTokenRepository defines the interface for FCM device token storage
type DeviceTokenRepository interface {
	SaveToken(userID, token, deviceInfo string) error
	GetTokensByUserID(userID string) ([]authdomain.DeviceToken, error)
	DeleteToken(token string) error
	DeleteTokensByUserID(userID string) error
}

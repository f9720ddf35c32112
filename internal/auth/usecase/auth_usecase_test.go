package usecase

import (
	"testing"
	"time"

	authdomain "sajilokhata-backend/internal/auth/domain"
	authdto "sajilokhata-backend/internal/auth/dto"
	"sajilokhata-backend/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	users  map[string]*authdomain.User
	tokens map[string]*authdomain.RefreshToken
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		users:  make(map[string]*authdomain.User),
		tokens: make(map[string]*authdomain.RefreshToken),
	}
}

func (m *memUserRepo) Create(user *authdomain.User) error {
	user.ID = uuid.New().String()
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) FindByEmail(email string) (*authdomain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) FindByID(id string) (*authdomain.User, error) {
	return m.users[id], nil
}

func (m *memUserRepo) Update(user *authdomain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) SaveRefreshToken(token *authdomain.RefreshToken) error {
	m.tokens[token.Token] = token
	return nil
}

func (m *memUserRepo) FindRefreshToken(token string) (*authdomain.RefreshToken, error) {
	return m.tokens[token], nil
}

func (m *memUserRepo) DeleteRefreshToken(token string) error {
	delete(m.tokens, token)
	return nil
}

type memDeviceRepo struct {
	tokens map[string]authdomain.DeviceToken
}

func newMemDeviceRepo() *memDeviceRepo {
	return &memDeviceRepo{tokens: make(map[string]authdomain.DeviceToken)}
}

func (m *memDeviceRepo) SaveToken(userID, token, deviceInfo string) error {
	m.tokens[token] = authdomain.DeviceToken{UserID: userID, Token: token, DeviceInfo: deviceInfo}
	return nil
}

func (m *memDeviceRepo) GetTokensByUserID(userID string) ([]authdomain.DeviceToken, error) {
	var out []authdomain.DeviceToken
	for _, t := range m.tokens {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memDeviceRepo) DeleteToken(token string) error {
	delete(m.tokens, token)
	return nil
}

func (m *memDeviceRepo) DeleteTokensByUserID(userID string) error {
	for k, t := range m.tokens {
		if t.UserID == userID {
			delete(m.tokens, k)
		}
	}
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
}

func newTestUsecase() (AuthUsecase, *memUserRepo, *memDeviceRepo) {
	userRepo := newMemUserRepo()
	deviceRepo := newMemDeviceRepo()
	return NewAuthUsecase(userRepo, deviceRepo, testConfig()), userRepo, deviceRepo
}

func TestRegisterAndLogin(t *testing.T) {
	uc, _, _ := newTestUsecase()

	registered, err := uc.Register(&authdto.RegisterRequest{
		Email:    "asha@example.com",
		Password: "s3cret-pass",
		Name:     "Asha",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.NotEmpty(t, registered.RefreshToken)
	assert.Equal(t, "email", registered.User.Provider)

	loggedIn, err := uc.Login(&authdto.LoginRequest{
		Email:    "asha@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _, _ := newTestUsecase()

	_, err := uc.Register(&authdto.RegisterRequest{Email: "asha@example.com", Password: "s3cret-pass", Name: "Asha"})
	require.NoError(t, err)

	_, err = uc.Register(&authdto.RegisterRequest{Email: "asha@example.com", Password: "other-pass", Name: "Asha"})
	assert.EqualError(t, err, "email already registered")
}

func TestLoginWrongPassword(t *testing.T) {
	uc, _, _ := newTestUsecase()

	_, err := uc.Register(&authdto.RegisterRequest{Email: "asha@example.com", Password: "s3cret-pass", Name: "Asha"})
	require.NoError(t, err)

	_, err = uc.Login(&authdto.LoginRequest{Email: "asha@example.com", Password: "wrong"})
	assert.EqualError(t, err, "invalid email or password")

	_, err = uc.Login(&authdto.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	assert.EqualError(t, err, "invalid email or password")
}

func TestValidateAccessToken(t *testing.T) {
	uc, _, _ := newTestUsecase()

	registered, err := uc.Register(&authdto.RegisterRequest{Email: "asha@example.com", Password: "s3cret-pass", Name: "Asha"})
	require.NoError(t, err)

	user, err := uc.ValidateToken(registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, user.ID)

	_, err = uc.ValidateToken("not-a-jwt")
	assert.EqualError(t, err, "invalid token")
}

func TestRefreshTokenRotation(t *testing.T) {
	uc, _, _ := newTestUsecase()

	registered, err := uc.Register(&authdto.RegisterRequest{Email: "asha@example.com", Password: "s3cret-pass", Name: "Asha"})
	require.NoError(t, err)

	refreshed, err := uc.RefreshToken(registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, registered.User.ID, refreshed.User.ID)
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	uc, _, _ := newTestUsecase()

	registered, err := uc.Register(&authdto.RegisterRequest{Email: "asha@example.com", Password: "s3cret-pass", Name: "Asha"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(registered.RefreshToken))

	_, err = uc.RefreshToken(registered.RefreshToken)
	assert.EqualError(t, err, "refresh token expired")
}

func TestDeviceTokenLifecycle(t *testing.T) {
	uc, _, deviceRepo := newTestUsecase()

	require.NoError(t, uc.RegisterDeviceToken("u1", "fcm-token-1", "Firefox on Linux"))
	require.NoError(t, uc.RegisterDeviceToken("u1", "fcm-token-2", "Android"))

	tokens, err := deviceRepo.GetTokensByUserID("u1")
	require.NoError(t, err)
	assert.Len(t, tokens, 2)

	require.NoError(t, uc.UnregisterDeviceToken("fcm-token-1"))

	tokens, err = deviceRepo.GetTokensByUserID("u1")
	require.NoError(t, err)
	assert.Len(t, tokens, 1)
}

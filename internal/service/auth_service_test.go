package service

import (
	"testing"
	"time"

	"github.com/stocknote/stocknote-backend/internal/common"
	"github.com/stocknote/stocknote-backend/internal/domain"
	"github.com/stocknote/stocknote-backend/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestAuthService(userRepo *MockUserRepository) AuthService {
	manager := jwt.NewManager("test-secret-key", 30*time.Minute)
	return NewAuthService(userRepo, manager, 30*time.Minute, 14*24*time.Hour)
}

func TestRegister_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)

	userRepo.On("FindAccount", "local", "new@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByNickname", "newbie").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("CreateWithAccount", mock.Anything, mock.MatchedBy(func(a *domain.Account) bool {
		// the raw password must never reach storage
		return a.Provider == "local" && a.PasswordHash != "hunter2secret"
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*domain.User).ID = 1
	}).Return(nil)
	userRepo.On("CreateRefreshToken", mock.Anything).Return(nil)

	result, err := svc.Register(&domain.RegisterRequest{
		Email:    "new@example.com",
		Password: "hunter2secret",
		Nickname: "newbie",
	}, domain.ClientInfo{})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.Equal(t, "Bearer", result.Tokens.TokenType)
	assert.Equal(t, "newbie", result.User.Nickname)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)

	userRepo.On("FindAccount", "local", "taken@example.com").
		Return(&domain.Account{ID: 1}, nil)

	_, err := svc.Register(&domain.RegisterRequest{
		Email:    "taken@example.com",
		Password: "hunter2secret",
		Nickname: "whoever",
	}, domain.ClientInfo{})

	assert.ErrorIs(t, err, common.ErrUserAlreadyExists)
	userRepo.AssertNotCalled(t, "CreateWithAccount")
}

func TestRegister_DuplicateNickname(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)

	userRepo.On("FindAccount", "local", "new@example.com").
		Return(nil, gorm.ErrRecordNotFound)
	userRepo.On("FindByNickname", "taken").
		Return(&domain.User{ID: 2}, nil)

	_, err := svc.Register(&domain.RegisterRequest{
		Email:    "new@example.com",
		Password: "hunter2secret",
		Nickname: "taken",
	}, domain.ClientInfo{})

	assert.ErrorIs(t, err, common.ErrUserAlreadyExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	userRepo.On("FindAccount", "local", "user@example.com").
		Return(&domain.Account{ID: 1, UserID: 1, PasswordHash: string(hash)}, nil)

	_, err := svc.Login(&domain.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	}, domain.ClientInfo{})

	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)

	userRepo.On("FindAccount", "local", "ghost@example.com").
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(&domain.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever123",
	}, domain.ClientInfo{})

	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	userRepo.On("FindAccount", "local", "user@example.com").
		Return(&domain.Account{ID: 1, UserID: 1, PasswordHash: string(hash)}, nil)
	userRepo.On("FindByID", int64(1)).
		Return(&domain.User{ID: 1, Nickname: "trader", IsActive: true}, nil)
	userRepo.On("CreateRefreshToken", mock.Anything).Return(nil)

	result, err := svc.Login(&domain.LoginRequest{
		Email:    "user@example.com",
		Password: "correct-password",
	}, domain.ClientInfo{IPAddress: "1.2.3.4"})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.Equal(t, 1800, result.Tokens.ExpiresIn)
}

func TestLogin_InactiveUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	userRepo.On("FindAccount", "local", "user@example.com").
		Return(&domain.Account{ID: 1, UserID: 1, PasswordHash: string(hash)}, nil)
	userRepo.On("FindByID", int64(1)).
		Return(&domain.User{ID: 1, IsActive: false}, nil)

	_, err := svc.Login(&domain.LoginRequest{
		Email:    "user@example.com",
		Password: "correct-password",
	}, domain.ClientInfo{})

	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestRefresh_ExpiredSessionConsumed(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)

	userRepo.On("FindRefreshToken", "stale").Return(&domain.RefreshToken{
		UserID:    1,
		AccountID: 1,
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	}, nil)
	userRepo.On("DeleteRefreshToken", "stale").Return(nil)

	_, err := svc.Refresh("stale", domain.ClientInfo{})

	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)
	// the stale session must be revoked even though refresh failed
	userRepo.AssertCalled(t, "DeleteRefreshToken", "stale")
}

func TestRefresh_RotatesToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)

	userRepo.On("FindRefreshToken", "valid").Return(&domain.RefreshToken{
		UserID:    1,
		AccountID: 1,
		Token:     "valid",
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
	userRepo.On("DeleteRefreshToken", "valid").Return(nil)
	userRepo.On("FindByID", int64(1)).
		Return(&domain.User{ID: 1, Nickname: "trader", IsActive: true}, nil)
	userRepo.On("CreateRefreshToken", mock.Anything).Return(nil)

	tokens, err := svc.Refresh("valid", domain.ClientInfo{})

	assert.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEqual(t, "valid", tokens.RefreshToken)
}

func TestRefresh_UnknownToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo)

	userRepo.On("FindRefreshToken", "bogus").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Refresh("bogus", domain.ClientInfo{})

	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

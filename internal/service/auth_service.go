package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/stocknote/stocknote-backend/internal/common"
	"github.com/stocknote/stocknote-backend/internal/domain"
	"github.com/stocknote/stocknote-backend/internal/repository"
	"github.com/stocknote/stocknote-backend/pkg/jwt"
	"github.com/stocknote/stocknote-backend/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

const providerLocal = "local"

// AuthService local email/password authentication and token lifecycle
type AuthService interface {
	Register(req *domain.RegisterRequest, client domain.ClientInfo) (*domain.AuthResult, error)
	Login(req *domain.LoginRequest, client domain.ClientInfo) (*domain.AuthResult, error)
	Refresh(refreshToken string, client domain.ClientInfo) (*domain.TokenPair, error)
	Logout(refreshToken string) error

	// IssueTokens mints a token pair for an already-authenticated user.
	// Used by the OAuth callback once the provider identity is resolved.
	IssueTokens(user *domain.User, accountID int64, client domain.ClientInfo) (*domain.TokenPair, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtManager *jwt.Manager
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtManager *jwt.Manager, accessTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Register creates a user with a local account. Email and nickname must both
// be unused.
func (s *authService) Register(req *domain.RegisterRequest, client domain.ClientInfo) (*domain.AuthResult, error) {
	if _, err := s.userRepo.FindAccount(providerLocal, req.Email); err == nil {
		return nil, common.ErrUserAlreadyExists
	}
	if _, err := s.userRepo.FindByNickname(req.Nickname); err == nil {
		return nil, common.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Nickname: req.Nickname,
		IsActive: true,
	}
	account := &domain.Account{
		Provider:     providerLocal,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	if err := s.userRepo.CreateWithAccount(user, account); err != nil {
		return nil, err
	}

	logger.GetLogger().Info().
		Int64("user_id", user.ID).
		Str("nickname", user.Nickname).
		Msg("user registered")

	tokens, err := s.IssueTokens(user, account.ID, client)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{User: user.ToResponse(), Tokens: tokens}, nil
}

// Login verifies the password and issues a token pair. A wrong email and a
// wrong password return the same error.
func (s *authService) Login(req *domain.LoginRequest, client domain.ClientInfo) (*domain.AuthResult, error) {
	account, err := s.userRepo.FindAccount(providerLocal, req.Email)
	if err != nil {
		return nil, common.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		return nil, common.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByID(account.UserID)
	if err != nil {
		return nil, common.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, common.ErrInvalidCredentials
	}

	tokens, err := s.IssueTokens(user, account.ID, client)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{User: user.ToResponse(), Tokens: tokens}, nil
}

// Refresh rotates the refresh token and issues a fresh pair. The presented
// token is consumed whether or not it is still valid.
func (s *authService) Refresh(refreshToken string, client domain.ClientInfo) (*domain.TokenPair, error) {
	stored, err := s.userRepo.FindRefreshToken(refreshToken)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if err := s.userRepo.DeleteRefreshToken(refreshToken); err != nil {
		return nil, err
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, common.ErrRefreshTokenExpired
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil || !user.IsActive {
		return nil, common.ErrInvalidToken
	}

	return s.IssueTokens(user, stored.AccountID, client)
}

// Logout revokes the refresh token session. Unknown tokens are a no-op.
func (s *authService) Logout(refreshToken string) error {
	return s.userRepo.DeleteRefreshToken(refreshToken)
}

// IssueTokens mints an access token and persists a new refresh session
func (s *authService) IssueTokens(user *domain.User, accountID int64, client domain.ClientInfo) (*domain.TokenPair, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Nickname, user.IsSuperuser)
	if err != nil {
		return nil, err
	}

	refreshToken := uuid.New().String()
	session := &domain.RefreshToken{
		UserID:    user.ID,
		AccountID: accountID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(s.refreshTTL),
		UserAgent: client.UserAgent,
		IPAddress: client.IPAddress,
	}
	if err := s.userRepo.CreateRefreshToken(session); err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.accessTTL.Seconds()),
	}, nil
}

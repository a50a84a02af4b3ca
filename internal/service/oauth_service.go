package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/stocknote/stocknote-backend/internal/common"
	"github.com/stocknote/stocknote-backend/internal/config"
	"github.com/stocknote/stocknote-backend/internal/domain"
	"github.com/stocknote/stocknote-backend/internal/repository"
	"github.com/stocknote/stocknote-backend/pkg/logger"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const providerGoogle = "google"

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// OAuthService Google OAuth login flow
type OAuthService interface {
	// AuthURL returns the Google consent page URL for the given CSRF state
	AuthURL(state string) string

	// HandleCallback exchanges the authorization code, finds or creates the
	// user, and issues a token pair
	HandleCallback(ctx context.Context, code string, client domain.ClientInfo) (*domain.AuthResult, error)
}

type oauthService struct {
	userRepo repository.UserRepository
	auth     AuthService
	oauth    *oauth2.Config
}

// NewOAuthService creates a new OAuthService
func NewOAuthService(userRepo repository.UserRepository, auth AuthService, cfg config.GoogleConfig) OAuthService {
	return &oauthService{
		userRepo: userRepo,
		auth:     auth,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

type googleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (s *oauthService) AuthURL(state string) string {
	return s.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// HandleCallback completes the OAuth flow. An existing Google account logs
// straight in; a first-time Google login creates the user, deriving a unique
// nickname from the Google profile name.
func (s *oauthService) HandleCallback(ctx context.Context, code string, client domain.ClientInfo) (*domain.AuthResult, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("oauth code exchange: %w", err)
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, common.ErrInvalidCredentials
	}

	account, err := s.userRepo.FindAccountByProviderUserID(providerGoogle, info.ID)
	if err != nil {
		account, err = s.linkOrCreate(info)
		if err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.UpdateAccountTokens(account.ID, token.AccessToken, token.RefreshToken); err != nil {
		logger.GetLogger().Warn().Err(err).Msg("failed to store provider tokens")
	}

	user, err := s.userRepo.FindByID(account.UserID)
	if err != nil || !user.IsActive {
		return nil, common.ErrInvalidCredentials
	}

	return s.issueFor(user, account.ID, client)
}

// linkOrCreate attaches the Google identity to the user that owns the email,
// or registers a brand-new user
func (s *oauthService) linkOrCreate(info *googleUserInfo) (*domain.Account, error) {
	account := &domain.Account{
		Provider:       providerGoogle,
		ProviderUserID: info.ID,
		Email:          info.Email,
	}

	if existing, err := s.userRepo.FindAccount(providerLocal, info.Email); err == nil {
		account.UserID = existing.UserID
		if err := s.userRepo.CreateAccount(account); err != nil {
			return nil, err
		}
		return account, nil
	}

	user := &domain.User{
		Nickname:   s.uniqueNickname(info.Name),
		ProfileImg: info.Picture,
		IsActive:   true,
	}
	if err := s.userRepo.CreateWithAccount(user, account); err != nil {
		return nil, err
	}

	logger.GetLogger().Info().
		Int64("user_id", user.ID).
		Str("provider", providerGoogle).
		Msg("user registered via oauth")
	return account, nil
}

func (s *oauthService) uniqueNickname(base string) string {
	if base == "" {
		base = "trader"
	}
	nickname := base
	for i := 0; i < 5; i++ {
		if _, err := s.userRepo.FindByNickname(nickname); err != nil {
			return nickname
		}
		nickname = fmt.Sprintf("%s_%d", base, time.Now().UnixNano()%100000)
	}
	return nickname
}

func (s *oauthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	httpClient := s.oauth.Client(ctx, token)
	resp, err := httpClient.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch google userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("google userinfo status %d: %s", resp.StatusCode, body)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode google userinfo: %w", err)
	}
	return &info, nil
}

func (s *oauthService) issueFor(user *domain.User, accountID int64, client domain.ClientInfo) (*domain.AuthResult, error) {
	tokens, err := s.auth.IssueTokens(user, accountID, client)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResult{User: user.ToResponse(), Tokens: tokens}, nil
}

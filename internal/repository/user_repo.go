package repository

import (
	"time"

	"github.com/stocknote/stocknote-backend/internal/domain"
	"gorm.io/gorm"
)

// UserRepository persistence for users, auth accounts and refresh tokens
type UserRepository interface {
	FindByID(id int64) (*domain.User, error)
	FindByNickname(nickname string) (*domain.User, error)
	List() ([]*domain.User, error)

	// CreateWithAccount inserts the user and its first account atomically
	CreateWithAccount(user *domain.User, account *domain.Account) error

	FindAccount(provider, email string) (*domain.Account, error)
	FindAccountByProviderUserID(provider, providerUserID string) (*domain.Account, error)
	ListAccounts(userID int64) ([]*domain.Account, error)
	CreateAccount(account *domain.Account) error
	UpdateAccountTokens(accountID int64, accessToken, refreshToken string) error

	CreateRefreshToken(token *domain.RefreshToken) error
	FindRefreshToken(token string) (*domain.RefreshToken, error)
	DeleteRefreshToken(token string) error
	DeleteExpiredRefreshTokens() error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(id int64) (*domain.User, error) {
	var user domain.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByNickname(nickname string) (*domain.User, error) {
	var user domain.User
	if err := r.db.Where("nickname = ?", nickname).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List() ([]*domain.User, error) {
	var users []*domain.User
	err := r.db.Order("id ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) CreateWithAccount(user *domain.User, account *domain.Account) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		account.UserID = user.ID
		return tx.Create(account).Error
	})
}

func (r *userRepository) FindAccount(provider, email string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.Where("provider = ? AND email = ?", provider, email).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *userRepository) FindAccountByProviderUserID(provider, providerUserID string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.Where("provider = ? AND provider_user_id = ?", provider, providerUserID).
		First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *userRepository) ListAccounts(userID int64) ([]*domain.Account, error) {
	var accounts []*domain.Account
	err := r.db.Where("user_id = ?", userID).Order("id ASC").Find(&accounts).Error
	return accounts, err
}

func (r *userRepository) CreateAccount(account *domain.Account) error {
	return r.db.Create(account).Error
}

func (r *userRepository) UpdateAccountTokens(accountID int64, accessToken, refreshToken string) error {
	updates := map[string]interface{}{"access_token": accessToken}
	if refreshToken != "" {
		updates["refresh_token"] = refreshToken
	}
	return r.db.Model(&domain.Account{}).Where("id = ?", accountID).Updates(updates).Error
}

func (r *userRepository) CreateRefreshToken(token *domain.RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *userRepository) FindRefreshToken(token string) (*domain.RefreshToken, error) {
	var row domain.RefreshToken
	err := r.db.Where("token = ?", token).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *userRepository) DeleteRefreshToken(token string) error {
	return r.db.Where("token = ?", token).Delete(&domain.RefreshToken{}).Error
}

func (r *userRepository) DeleteExpiredRefreshTokens() error {
	return r.db.Where("expires_at < ?", time.Now()).Delete(&domain.RefreshToken{}).Error
}

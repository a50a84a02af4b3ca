package service

import (
	"github.com/stocknote/stocknote-backend/internal/common"
	"github.com/stocknote/stocknote-backend/internal/domain"
	"github.com/stocknote/stocknote-backend/internal/repository"
)

// UserService user profile reads
type UserService interface {
	GetUser(id int64) (*domain.UserResponse, error)
	ListUsers() ([]*domain.UserResponse, error)
	ListSocialAccounts(userID int64) ([]*domain.SocialAccountResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUser(id int64) (*domain.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, common.ErrUserNotFound
	}
	return user.ToResponse(), nil
}

func (s *userService) ListUsers() ([]*domain.UserResponse, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*domain.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	return out, nil
}

func (s *userService) ListSocialAccounts(userID int64) ([]*domain.SocialAccountResponse, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return nil, common.ErrUserNotFound
	}
	accounts, err := s.userRepo.ListAccounts(userID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.SocialAccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.ToResponse())
	}
	return out, nil
}

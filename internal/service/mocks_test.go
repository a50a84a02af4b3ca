package service

import (
	"github.com/stocknote/stocknote-backend/internal/domain"
	"github.com/stocknote/stocknote-backend/internal/repository"
	"github.com/stretchr/testify/mock"
)

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) List(kind domain.PostKind, opts repository.ListOptions) ([]*domain.Post, int64, error) {
	args := m.Called(kind, opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*domain.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) FindByID(kind domain.PostKind, id int64) (*domain.Post, error) {
	args := m.Called(kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}

func (m *MockPostRepository) Create(kind domain.PostKind, post *domain.Post) error {
	args := m.Called(kind, post)
	return args.Error(0)
}

func (m *MockPostRepository) Update(kind domain.PostKind, id int64, updates map[string]interface{}) error {
	args := m.Called(kind, id, updates)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(kind domain.PostKind, id int64) error {
	args := m.Called(kind, id)
	return args.Error(0)
}

func (m *MockPostRepository) ListAttachments(kind domain.PostKind, postID int64) ([]*domain.Attachment, error) {
	args := m.Called(kind, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Attachment), args.Error(1)
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) ListByPost(kind domain.PostKind, postID int64) ([]*domain.Comment, error) {
	args := m.Called(kind, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindByID(kind domain.PostKind, id int64) (*domain.Comment, error) {
	args := m.Called(kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) FindByIDForPost(kind domain.PostKind, id, postID int64) (*domain.Comment, error) {
	args := m.Called(kind, id, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) Create(kind domain.PostKind, comment *domain.Comment) error {
	args := m.Called(kind, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) UpdateContent(kind domain.PostKind, id int64, content string) error {
	args := m.Called(kind, id, content)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(kind domain.PostKind, comment *domain.Comment) error {
	args := m.Called(kind, comment)
	return args.Error(0)
}

// MockLikeRepository is a mock implementation of LikeRepository
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Toggle(kind domain.PostKind, postID, userID int64) (bool, error) {
	args := m.Called(kind, postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) HasActiveLike(kind domain.PostKind, postID, userID int64) (bool, error) {
	args := m.Called(kind, postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) ActiveLikeSet(kind domain.PostKind, userID int64, postIDs []int64) (map[int64]bool, error) {
	args := m.Called(kind, userID, postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

// MockViewRepository is a mock implementation of ViewRepository
type MockViewRepository struct {
	mock.Mock
}

func (m *MockViewRepository) Record(kind domain.PostKind, postID, userID int64, ip, userAgent string) (bool, error) {
	args := m.Called(kind, postID, userID, ip, userAgent)
	return args.Bool(0), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(id int64) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByNickname(nickname string) (*domain.User, error) {
	args := m.Called(nickname)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List() ([]*domain.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) CreateWithAccount(user *domain.User, account *domain.Account) error {
	args := m.Called(user, account)
	return args.Error(0)
}

func (m *MockUserRepository) FindAccount(provider, email string) (*domain.Account, error) {
	args := m.Called(provider, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockUserRepository) FindAccountByProviderUserID(provider, providerUserID string) (*domain.Account, error) {
	args := m.Called(provider, providerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockUserRepository) ListAccounts(userID int64) ([]*domain.Account, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

func (m *MockUserRepository) CreateAccount(account *domain.Account) error {
	args := m.Called(account)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAccountTokens(accountID int64, accessToken, refreshToken string) error {
	args := m.Called(accountID, accessToken, refreshToken)
	return args.Error(0)
}

func (m *MockUserRepository) CreateRefreshToken(token *domain.RefreshToken) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockUserRepository) FindRefreshToken(token string) (*domain.RefreshToken, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

func (m *MockUserRepository) DeleteRefreshToken(token string) error {
	args := m.Called(token)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteExpiredRefreshTokens() error {
	args := m.Called()
	return args.Error(0)
}

package service

import (
	"testing"

	"github.com/stocknote/stocknote-backend/internal/common"
	"github.com/stocknote/stocknote-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestCreateComment_RootHasDepthZero(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	svc := NewCommentService(commentRepo, postRepo)

	postRepo.On("FindByID", domain.KindFree, int64(1)).
		Return(&domain.Post{ID: 1}, nil)
	commentRepo.On("Create", domain.KindFree, mock.MatchedBy(func(c *domain.Comment) bool {
		return c.Depth == 0 && c.ParentID == nil
	})).Return(nil)

	comment, err := svc.CreateComment(domain.KindFree, domain.Actor{ID: 7}, 1,
		&domain.CreateCommentRequest{Content: "hello"})

	assert.NoError(t, err)
	assert.Equal(t, 0, comment.Depth)
	commentRepo.AssertExpectations(t)
}

func TestCreateComment_ReplyInheritsParentDepth(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	svc := NewCommentService(commentRepo, postRepo)

	parentID := int64(3)
	postRepo.On("FindByID", domain.KindFree, int64(1)).
		Return(&domain.Post{ID: 1}, nil)
	commentRepo.On("FindByIDForPost", domain.KindFree, parentID, int64(1)).
		Return(&domain.Comment{ID: 3, PostID: 1, Depth: 2}, nil)
	commentRepo.On("Create", domain.KindFree, mock.MatchedBy(func(c *domain.Comment) bool {
		return c.Depth == 3
	})).Return(nil)

	comment, err := svc.CreateComment(domain.KindFree, domain.Actor{ID: 7}, 1,
		&domain.CreateCommentRequest{Content: "reply", ParentID: &parentID})

	assert.NoError(t, err)
	assert.Equal(t, 3, comment.Depth)
}

func TestCreateComment_ParentFromOtherPostRejected(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	svc := NewCommentService(commentRepo, postRepo)

	parentID := int64(3)
	postRepo.On("FindByID", domain.KindFree, int64(1)).
		Return(&domain.Post{ID: 1}, nil)
	commentRepo.On("FindByIDForPost", domain.KindFree, parentID, int64(1)).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CreateComment(domain.KindFree, domain.Actor{ID: 7}, 1,
		&domain.CreateCommentRequest{Content: "reply", ParentID: &parentID})

	assert.ErrorIs(t, err, common.ErrParentCommentNotFound)
	commentRepo.AssertNotCalled(t, "Create")
}

func TestCreateComment_PostNotFound(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	postRepo := new(MockPostRepository)
	svc := NewCommentService(commentRepo, postRepo)

	postRepo.On("FindByID", domain.KindFree, int64(404)).
		Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CreateComment(domain.KindFree, domain.Actor{ID: 7}, 404,
		&domain.CreateCommentRequest{Content: "hello"})

	assert.ErrorIs(t, err, common.ErrPostNotFound)
}

func TestUpdateComment_OnlyOwnerOrSuperuser(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	svc := NewCommentService(commentRepo, new(MockPostRepository))

	commentRepo.On("FindByID", domain.KindFree, int64(5)).
		Return(&domain.Comment{ID: 5, UserID: 10}, nil)

	_, err := svc.UpdateComment(domain.KindFree, domain.Actor{ID: 11}, 5,
		&domain.UpdateCommentRequest{Content: "edit"})
	assert.ErrorIs(t, err, common.ErrForbidden)

	commentRepo.On("UpdateContent", domain.KindFree, int64(5), "edit").Return(nil)
	updated, err := svc.UpdateComment(domain.KindFree, domain.Actor{ID: 11, IsSuperuser: true}, 5,
		&domain.UpdateCommentRequest{Content: "edit"})
	assert.NoError(t, err)
	assert.Equal(t, "edit", updated.Content)
}

func TestDeleteComment_OwnerAllowed(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	svc := NewCommentService(commentRepo, new(MockPostRepository))

	target := &domain.Comment{ID: 5, PostID: 1, UserID: 10}
	commentRepo.On("FindByID", domain.KindFree, int64(5)).Return(target, nil)
	commentRepo.On("Delete", domain.KindFree, target).Return(nil)

	err := svc.DeleteComment(domain.KindFree, domain.Actor{ID: 10}, 5)

	assert.NoError(t, err)
	commentRepo.AssertExpectations(t)
}

func TestDeleteComment_NotFound(t *testing.T) {
	commentRepo := new(MockCommentRepository)
	svc := NewCommentService(commentRepo, new(MockPostRepository))

	commentRepo.On("FindByID", domain.KindFree, int64(404)).
		Return(nil, gorm.ErrRecordNotFound)

	err := svc.DeleteComment(domain.KindFree, domain.Actor{ID: 10}, 404)

	assert.ErrorIs(t, err, common.ErrCommentNotFound)
}

package service

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/stocknote/stocknote-backend/internal/common"
	"github.com/stocknote/stocknote-backend/internal/domain"
	"github.com/stocknote/stocknote-backend/internal/repository"
)

// CommentService comment operations for either board
type CommentService interface {
	CreateComment(kind domain.PostKind, actor domain.Actor, postID int64, req *domain.CreateCommentRequest) (*domain.Comment, error)
	UpdateComment(kind domain.PostKind, actor domain.Actor, commentID int64, req *domain.UpdateCommentRequest) (*domain.Comment, error)
	DeleteComment(kind domain.PostKind, actor domain.Actor, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	sanitizer   *bluemonday.Policy
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		sanitizer:   bluemonday.UGCPolicy(),
	}
}

// CreateComment inserts a comment and bumps the post's comment_count in the
// same transaction. A reply inherits depth from its parent plus one; the
// parent must belong to the same post.
func (s *commentService) CreateComment(kind domain.PostKind, actor domain.Actor, postID int64, req *domain.CreateCommentRequest) (*domain.Comment, error) {
	if !kind.Valid() {
		return nil, common.ErrBoardNotFound
	}
	if _, err := s.postRepo.FindByID(kind, postID); err != nil {
		return nil, common.ErrPostNotFound
	}

	depth := 0
	if req.ParentID != nil {
		parent, err := s.commentRepo.FindByIDForPost(kind, *req.ParentID, postID)
		if err != nil {
			return nil, common.ErrParentCommentNotFound
		}
		depth = parent.Depth + 1
	}

	comment := &domain.Comment{
		PostID:   postID,
		UserID:   actor.ID,
		ParentID: req.ParentID,
		Content:  s.sanitizer.Sanitize(req.Content),
		Depth:    depth,
	}

	if err := s.commentRepo.Create(kind, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateComment replaces the comment content after the ownership check
func (s *commentService) UpdateComment(kind domain.PostKind, actor domain.Actor, commentID int64, req *domain.UpdateCommentRequest) (*domain.Comment, error) {
	if !kind.Valid() {
		return nil, common.ErrBoardNotFound
	}

	comment, err := s.commentRepo.FindByID(kind, commentID)
	if err != nil {
		return nil, common.ErrCommentNotFound
	}
	if !actor.CanMutate(comment.UserID) {
		return nil, common.ErrForbidden
	}

	content := s.sanitizer.Sanitize(req.Content)
	if err := s.commentRepo.UpdateContent(kind, commentID, content); err != nil {
		return nil, err
	}
	comment.Content = content
	return comment, nil
}

// DeleteComment removes a comment and decrements the post's comment_count,
// floored at zero
func (s *commentService) DeleteComment(kind domain.PostKind, actor domain.Actor, commentID int64) error {
	if !kind.Valid() {
		return common.ErrBoardNotFound
	}

	comment, err := s.commentRepo.FindByID(kind, commentID)
	if err != nil {
		return common.ErrCommentNotFound
	}
	if !actor.CanMutate(comment.UserID) {
		return common.ErrForbidden
	}

	return s.commentRepo.Delete(kind, comment)
}

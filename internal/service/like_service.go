package service

import (
	"github.com/stocknote/stocknote-backend/internal/common"
	"github.com/stocknote/stocknote-backend/internal/domain"
	"github.com/stocknote/stocknote-backend/internal/repository"
	"github.com/stocknote/stocknote-backend/pkg/logger"
)

// LikeService the like toggle
type LikeService interface {
	ToggleLike(kind domain.PostKind, postID, userID int64) (*domain.LikeResponse, error)
}

type likeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
}

// NewLikeService creates a new LikeService
func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository) LikeService {
	return &likeService{likeRepo: likeRepo, postRepo: postRepo}
}

// ToggleLike flips the caller's like state and returns the new state together
// with the post's stored like_count. Liking twice returns to the original
// count; the counter never goes below zero.
func (s *likeService) ToggleLike(kind domain.PostKind, postID, userID int64) (*domain.LikeResponse, error) {
	if !kind.Valid() {
		return nil, common.ErrBoardNotFound
	}

	post, err := s.postRepo.FindByID(kind, postID)
	if err != nil {
		return nil, common.ErrPostNotFound
	}

	isLiked, err := s.likeRepo.Toggle(kind, postID, userID)
	if err != nil {
		return nil, err
	}

	// An unlike against an already-zero counter clamps instead of going
	// negative. Worth a log line because it means the counter has drifted.
	if !isLiked && post.LikeCount == 0 {
		logger.GetLogger().Warn().
			Str("post_kind", string(kind)).
			Int64("post_id", postID).
			Msg("like_count decrement clamped at zero")
	}

	updated, err := s.postRepo.FindByID(kind, postID)
	if err != nil {
		return nil, err
	}

	return &domain.LikeResponse{
		IsLiked:   isLiked,
		LikeCount: updated.LikeCount,
	}, nil
}

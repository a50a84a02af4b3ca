package repository

import (
	"errors"
	"strings"

	"github.com/stocknote/stocknote-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository persistence for the per-user like toggle. A like row is
// never deleted: toggling flips is_active, so the unique
// (post_kind, post_id, user_id) constraint holds across re-likes.
type LikeRepository interface {
	// Toggle flips the caller's like state for a post and applies the
	// like_count delta in the same transaction. Returns the new state.
	Toggle(kind domain.PostKind, postID, userID int64) (bool, error)

	// HasActiveLike reports whether the user currently likes the post
	HasActiveLike(kind domain.PostKind, postID, userID int64) (bool, error)

	// ActiveLikeSet returns the subset of postIDs the user currently likes
	ActiveLikeSet(kind domain.PostKind, userID int64, postIDs []int64) (map[int64]bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle serializes concurrent toggles for the same (post, user) by locking
// the like row FOR UPDATE. A first-like insert that loses the race against a
// concurrent insert hits the unique constraint; the whole transaction is then
// retried once, finding the row and flipping it instead.
func (r *likeRepository) Toggle(kind domain.PostKind, postID, userID int64) (bool, error) {
	liked, err := r.toggleOnce(kind, postID, userID)
	if err != nil && isDuplicateKey(err) {
		liked, err = r.toggleOnce(kind, postID, userID)
	}
	return liked, err
}

func (r *likeRepository) toggleOnce(kind domain.PostKind, postID, userID int64) (bool, error) {
	var liked bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var like domain.PostLike
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("post_kind = ? AND post_id = ? AND user_id = ?", kind, postID, userID).
			First(&like).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			like = domain.PostLike{
				PostKind: kind,
				PostID:   postID,
				UserID:   userID,
				IsActive: true,
			}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			liked = true
			return r.applyDelta(tx, kind, postID, +1)
		}
		if err != nil {
			return err
		}

		if like.IsActive {
			if err := tx.Model(&domain.PostLike{}).
				Where("id = ?", like.ID).
				Update("is_active", false).Error; err != nil {
				return err
			}
			liked = false
			return r.applyDelta(tx, kind, postID, -1)
		}

		if err := tx.Model(&domain.PostLike{}).
			Where("id = ?", like.ID).
			Update("is_active", true).Error; err != nil {
			return err
		}
		liked = true
		return r.applyDelta(tx, kind, postID, +1)
	})
	return liked, err
}

// applyDelta adjusts the post's like_count atomically; decrements floor at zero
func (r *likeRepository) applyDelta(tx *gorm.DB, kind domain.PostKind, postID int64, delta int) error {
	column := "like_count"
	expr := gorm.Expr(column + " + 1")
	if delta < 0 {
		expr = gorm.Expr("GREATEST(" + column + " - 1, 0)")
	}
	return tx.Table(kind.PostTable()).
		Where("id = ?", postID).
		UpdateColumn(column, expr).Error
}

// HasActiveLike checks the user's current like state for one post
func (r *likeRepository) HasActiveLike(kind domain.PostKind, postID, userID int64) (bool, error) {
	var count int64
	err := r.db.Model(&domain.PostLike{}).
		Where("post_kind = ? AND post_id = ? AND user_id = ? AND is_active = ?",
			kind, postID, userID, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ActiveLikeSet fetches the user's like state for a page of posts in one query
func (r *likeRepository) ActiveLikeSet(kind domain.PostKind, userID int64, postIDs []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	var likedIDs []int64
	err := r.db.Model(&domain.PostLike{}).
		Where("post_kind = ? AND user_id = ? AND is_active = ?", kind, userID, true).
		Where("post_id IN ?", postIDs).
		Pluck("post_id", &likedIDs).Error
	if err != nil {
		return nil, err
	}

	for _, id := range likedIDs {
		result[id] = true
	}
	return result, nil
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// fallback for drivers without error translation
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}

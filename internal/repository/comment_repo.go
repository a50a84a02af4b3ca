package repository

import (
	"time"

	"github.com/stocknote/stocknote-backend/internal/domain"
	"gorm.io/gorm"
)

// CommentRepository persistence operations for comments of either board.
// Create and Delete keep the owning post's comment_count in step with the
// comment rows inside the same transaction.
type CommentRepository interface {
	// ListByPost returns all comments of a post in creation order
	ListByPost(kind domain.PostKind, postID int64) ([]*domain.Comment, error)

	// FindByID returns a comment by ID
	FindByID(kind domain.PostKind, id int64) (*domain.Comment, error)

	// FindByIDForPost returns a comment only if it belongs to the given post
	FindByIDForPost(kind domain.PostKind, id, postID int64) (*domain.Comment, error)

	// Create inserts the comment and increments the post's comment_count
	Create(kind domain.PostKind, comment *domain.Comment) error

	// UpdateContent replaces the comment content
	UpdateContent(kind domain.PostKind, id int64, content string) error

	// Delete removes the comment and decrements the post's comment_count,
	// floored at zero
	Delete(kind domain.PostKind, comment *domain.Comment) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// ListByPost retrieves all comments for a post, oldest first.
// The tree builder relies on this order for sibling ordering.
func (r *commentRepository) ListByPost(kind domain.PostKind, postID int64) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	err := r.db.Table(kind.CommentTable()).
		Where("post_id = ?", postID).
		Order("id ASC").
		Find(&comments).Error
	return comments, err
}

// FindByID retrieves a comment by ID
func (r *commentRepository) FindByID(kind domain.PostKind, id int64) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.Table(kind.CommentTable()).
		Where("id = ?", id).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// FindByIDForPost retrieves a comment scoped to one post. Used to validate
// that a reply's parent lives under the same post.
func (r *commentRepository) FindByIDForPost(kind domain.PostKind, id, postID int64) (*domain.Comment, error) {
	var comment domain.Comment
	err := r.db.Table(kind.CommentTable()).
		Where("id = ?", id).
		Where("post_id = ?", postID).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Create inserts a comment and bumps the post counter in the same transaction
func (r *commentRepository) Create(kind domain.PostKind, comment *domain.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(kind.CommentTable()).Create(comment).Error; err != nil {
			return err
		}
		return tx.Table(kind.PostTable()).
			Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
	})
}

// UpdateContent replaces the comment content. mod_date is set by hand, same
// as in postRepository.Update.
func (r *commentRepository) UpdateContent(kind domain.PostKind, id int64, content string) error {
	return r.db.Table(kind.CommentTable()).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":  content,
			"mod_date": time.Now(),
		}).Error
}

// Delete removes a comment and decrements the post counter in the same
// transaction. The decrement is floored at zero.
func (r *commentRepository) Delete(kind domain.PostKind, comment *domain.Comment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Table(kind.CommentTable()).
			Where("id = ?", comment.ID).
			Delete(&domain.Comment{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		return tx.Table(kind.PostTable()).
			Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("GREATEST(comment_count - 1, 0)")).Error
	})
}

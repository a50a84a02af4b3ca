package repository

import (
	"time"

	"github.com/stocknote/stocknote-backend/internal/domain"
	"gorm.io/gorm"
)

// ListOptions board listing parameters, validated by the service layer
type ListOptions struct {
	Page   int
	Size   int
	Search string
	Sort   domain.SortOrder
}

// PostRepository persistence operations for posts of either board
type PostRepository interface {
	// List returns one page of posts plus the total matching count
	List(kind domain.PostKind, opts ListOptions) ([]*domain.Post, int64, error)

	// FindByID returns a post that is not soft-deleted
	FindByID(kind domain.PostKind, id int64) (*domain.Post, error)

	// Create inserts a new post with zeroed counters
	Create(kind domain.PostKind, post *domain.Post) error

	// Update applies a partial column update
	Update(kind domain.PostKind, id int64, updates map[string]interface{}) error

	// Delete removes the post together with its comments and attachments
	// in a single transaction
	Delete(kind domain.PostKind, id int64) error

	// ListAttachments returns the attachment rows of a post
	ListAttachments(kind domain.PostKind, postID int64) ([]*domain.Attachment, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func sortExpr(sort domain.SortOrder) string {
	switch sort {
	case domain.SortOldest:
		return "crt_date ASC"
	case domain.SortViews:
		return "view_count DESC"
	case domain.SortLikes:
		return "like_count DESC"
	case domain.SortComments:
		return "comment_count DESC"
	default:
		return "crt_date DESC"
	}
}

// List retrieves one page of posts, notices pinned first
func (r *postRepository) List(kind domain.PostKind, opts ListOptions) ([]*domain.Post, int64, error) {
	query := r.db.Table(kind.PostTable()).Where("is_deleted = ?", false)

	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []*domain.Post
	err := query.
		Order("is_notice DESC").
		Order(sortExpr(opts.Sort)).
		Offset((opts.Page - 1) * opts.Size).
		Limit(opts.Size).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// FindByID retrieves a post by ID
func (r *postRepository) FindByID(kind domain.PostKind, id int64) (*domain.Post, error) {
	var post domain.Post
	err := r.db.Table(kind.PostTable()).
		Where("id = ?", id).
		Where("is_deleted = ?", false).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Create inserts a new post
func (r *postRepository) Create(kind domain.PostKind, post *domain.Post) error {
	post.ViewCount = 0
	post.LikeCount = 0
	post.CommentCount = 0
	return r.db.Table(kind.PostTable()).Create(post).Error
}

// Update applies a partial update to a post. Table() carries no model, so
// gorm's update-time tracking never fires here; mod_date is set by hand.
func (r *postRepository) Update(kind domain.PostKind, id int64, updates map[string]interface{}) error {
	updates["mod_date"] = time.Now()
	return r.db.Table(kind.PostTable()).
		Where("id = ?", id).
		Updates(updates).Error
}

// Delete removes a post and everything it owns.
// Likes and views are event logs and intentionally survive the post.
func (r *postRepository) Delete(kind domain.PostKind, id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(kind.CommentTable()).
			Where("post_id = ?", id).
			Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Table(kind.AttachmentTable()).
			Where("post_id = ?", id).
			Delete(&domain.Attachment{}).Error; err != nil {
			return err
		}
		return tx.Table(kind.PostTable()).
			Where("id = ?", id).
			Delete(&domain.Post{}).Error
	})
}

// ListAttachments returns the attachments of a post
func (r *postRepository) ListAttachments(kind domain.PostKind, postID int64) ([]*domain.Attachment, error) {
	var attachments []*domain.Attachment
	err := r.db.Table(kind.AttachmentTable()).
		Where("post_id = ?", postID).
		Order("id ASC").
		Find(&attachments).Error
	return attachments, err
}

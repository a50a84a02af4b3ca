package domain

import "time"

// Comment is a comment row. Root comments have a NULL parent and depth 0;
// a reply's depth is always its parent's depth + 1.
type Comment struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    int64  `gorm:"column:post_id;not null;index" json:"post_id"`
	UserID    int64  `gorm:"column:user_id;not null" json:"user_id"`
	ParentID  *int64 `gorm:"column:parent_id" json:"parent_id"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Depth     int    `gorm:"not null;default:0" json:"depth"`
	LikeCount int    `gorm:"not null;default:0" json:"like_count"`
	IsDeleted bool   `gorm:"not null;default:false" json:"is_deleted"`

	// free board extras
	IsAnonymous  bool `gorm:"default:false" json:"is_anonymous,omitempty"`
	IsBestAnswer bool `gorm:"default:false" json:"is_best_answer,omitempty"`

	CreatedAt time.Time `gorm:"column:crt_date" json:"crt_date"`
	UpdatedAt time.Time `gorm:"column:mod_date" json:"mod_date"`
}

// CreateCommentRequest comment creation payload
type CreateCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID *int64 `json:"parent_id"`
}

// UpdateCommentRequest comment update payload
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse one node of the comment forest. Children is populated by
// the tree builder on the detail read path.
type CommentResponse struct {
	ID             int64              `json:"id"`
	Content        string             `json:"content"`
	Depth          int                `json:"depth"`
	ParentID       *int64             `json:"parent_id"`
	UserID         int64              `json:"user_id"`
	UserNickname   string             `json:"user_nickname"`
	UserProfileImg string             `json:"user_profile_img,omitempty"`
	LikeCount      int                `json:"like_count"`
	IsLiked        bool               `json:"is_liked"`
	CreatedAt      time.Time          `json:"crt_date"`
	UpdatedAt      time.Time          `json:"mod_date"`
	Children       []*CommentResponse `json:"children"`
}

// ToResponse converts a comment row to its response node
func (c *Comment) ToResponse() *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		Depth:     c.Depth,
		ParentID:  c.ParentID,
		UserID:    c.UserID,
		LikeCount: c.LikeCount,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Children:  []*CommentResponse{},
	}
}

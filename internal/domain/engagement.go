package domain

import "time"

// PostLike is the per-user like marker for a post. At most one row exists per
// (post_kind, post_id, user_id); toggling flips is_active instead of deleting
// the row, which keeps the uniqueness invariant stable and leaves an audit
// trail of past likes.
type PostLike struct {
	ID       int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PostKind PostKind `gorm:"column:post_kind;size:20;not null;uniqueIndex:uq_post_like,priority:1" json:"post_kind"`
	PostID   int64    `gorm:"column:post_id;not null;uniqueIndex:uq_post_like,priority:2" json:"post_id"`
	UserID   int64    `gorm:"column:user_id;not null;uniqueIndex:uq_post_like,priority:3" json:"user_id"`
	IsActive bool     `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"column:crt_date" json:"crt_date"`
	UpdatedAt time.Time `gorm:"column:mod_date" json:"mod_date"`
}

// TableName post_likes is shared across boards via the post_kind discriminator
func (PostLike) TableName() string {
	return "post_likes"
}

// PostView records that a user has seen a post. One row per
// (post_kind, post_id, user_id); anonymous views are never recorded.
type PostView struct {
	ID        int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	PostKind  PostKind `gorm:"column:post_kind;size:20;not null;uniqueIndex:uq_post_view,priority:1" json:"post_kind"`
	PostID    int64    `gorm:"column:post_id;not null;uniqueIndex:uq_post_view,priority:2" json:"post_id"`
	UserID    int64    `gorm:"column:user_id;not null;uniqueIndex:uq_post_view,priority:3" json:"user_id"`
	IPAddress string   `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent string   `gorm:"type:text" json:"user_agent,omitempty"`

	CreatedAt time.Time `gorm:"column:crt_date" json:"crt_date"`
	UpdatedAt time.Time `gorm:"column:mod_date" json:"mod_date"`
}

// TableName post_views is shared across boards via the post_kind discriminator
func (PostView) TableName() string {
	return "post_views"
}

// LikeResponse result of a like toggle
type LikeResponse struct {
	IsLiked   bool `json:"is_liked"`
	LikeCount int  `json:"like_count"`
}

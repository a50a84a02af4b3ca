package domain

import (
	"time"

	"gorm.io/datatypes"
)

// PostKind discriminates which board a post (and its likes/views) belongs to.
// Likes and views reference posts polymorphically by kind + id, so this is an
// application-level tag, not a foreign key.
type PostKind string

const (
	KindFree     PostKind = "free"
	KindStrategy PostKind = "strategy"
)

// Valid reports whether the kind names a known board
func (k PostKind) Valid() bool {
	return k == KindFree || k == KindStrategy
}

// PostTable returns the post table for this kind
func (k PostKind) PostTable() string {
	if k == KindStrategy {
		return "strategy_posts"
	}
	return "free_posts"
}

// CommentTable returns the comment table for this kind
func (k PostKind) CommentTable() string {
	if k == KindStrategy {
		return "strategy_comments"
	}
	return "free_comments"
}

// CommentLikeKind returns the like discriminator for this board's comments.
// Comment likes share tb_post_like with post likes, told apart by kind.
func (k PostKind) CommentLikeKind() PostKind {
	return k + "_comment"
}

// AttachmentTable returns the attachment table for this kind
func (k PostKind) AttachmentTable() string {
	if k == KindStrategy {
		return "strategy_attachments"
	}
	return "free_attachments"
}

// SortOrder list sort options
type SortOrder string

const (
	SortLatest   SortOrder = "latest"
	SortOldest   SortOrder = "oldest"
	SortViews    SortOrder = "views"
	SortLikes    SortOrder = "likes"
	SortComments SortOrder = "comments"
)

// Valid reports whether the sort order is supported
func (s SortOrder) Valid() bool {
	switch s {
	case SortLatest, SortOldest, SortViews, SortLikes, SortComments:
		return true
	}
	return false
}

// Post is a board post row. The free and strategy tables share the same shape;
// board-specific optional columns stay NULL on the other board and the service
// layer decides which of them a request may set.
type Post struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	BoardID   int64  `gorm:"column:board_id" json:"board_id"`
	UserID    int64  `gorm:"column:user_id;not null;index" json:"user_id"`
	Title     string `gorm:"size:200;not null" json:"title"`
	Content   string `gorm:"type:text;not null" json:"content"`
	ViewCount int    `gorm:"not null;default:0" json:"view_count"`
	LikeCount int    `gorm:"not null;default:0" json:"like_count"`
	// CommentCount mirrors the number of comment rows; mutated only through
	// the repository counter transactions, never assigned directly.
	CommentCount int  `gorm:"not null;default:0" json:"comment_count"`
	IsDeleted    bool `gorm:"not null;default:false" json:"is_deleted"`
	IsNotice     bool `gorm:"not null;default:false" json:"is_notice"`

	// free board extras
	Category    string                      `gorm:"size:50" json:"category,omitempty"`
	IsAnonymous bool                        `gorm:"default:false" json:"is_anonymous,omitempty"`
	IsPinned    bool                        `gorm:"default:false" json:"is_pinned,omitempty"`
	IsHot       bool                        `gorm:"default:false" json:"is_hot,omitempty"`
	Tags        datatypes.JSONSlice[string] `json:"tags,omitempty"`

	// strategy board extras
	RelatedStockID    *int64   `gorm:"column:related_stock_id" json:"related_stock_id,omitempty"`
	RelatedThemeID    *int64   `gorm:"column:related_theme_id" json:"related_theme_id,omitempty"`
	StrategyType      string   `gorm:"size:20" json:"strategy_type,omitempty"`
	TargetPrice       *float64 `json:"target_price,omitempty"`
	RiskLevel         *int     `json:"risk_level,omitempty"`
	PerformanceRating *int     `json:"performance_rating,omitempty"`
	EntryPrice        *float64 `json:"entry_price,omitempty"`
	ExitPrice         *float64 `json:"exit_price,omitempty"`
	HoldingPeriod     string   `gorm:"size:50" json:"holding_period,omitempty"`

	CreatedAt time.Time `gorm:"column:crt_date" json:"crt_date"`
	UpdatedAt time.Time `gorm:"column:mod_date" json:"mod_date"`
}

// CreatePostRequest post creation payload. Strategy-only fields are ignored on
// the free board and vice versa.
type CreatePostRequest struct {
	Title    string   `json:"title" binding:"required,max=200"`
	Content  string   `json:"content" binding:"required"`
	IsNotice bool     `json:"is_notice"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`

	StrategyType      string   `json:"strategy_type"`
	RelatedStockID    *int64   `json:"related_stock_id"`
	RelatedThemeID    *int64   `json:"related_theme_id"`
	TargetPrice       *float64 `json:"target_price"`
	RiskLevel         *int     `json:"risk_level"`
	PerformanceRating *int     `json:"performance_rating"`
	EntryPrice        *float64 `json:"entry_price"`
	ExitPrice         *float64 `json:"exit_price"`
	HoldingPeriod     string   `json:"holding_period"`
}

// UpdatePostRequest partial post update; nil fields are left unchanged
type UpdatePostRequest struct {
	Title    *string  `json:"title"`
	Content  *string  `json:"content"`
	IsNotice *bool    `json:"is_notice"`
	Category *string  `json:"category"`
	Tags     []string `json:"tags"`

	StrategyType *string  `json:"strategy_type"`
	TargetPrice  *float64 `json:"target_price"`
	RiskLevel    *int     `json:"risk_level"`
}

// PostListItem one row of a board listing
type PostListItem struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	ContentPreview string    `json:"content_preview"`
	UserID         int64     `json:"user_id"`
	UserNickname   string    `json:"user_nickname"`
	UserProfileImg string    `json:"user_profile_img,omitempty"`
	ViewCount      int       `json:"view_count"`
	LikeCount      int       `json:"like_count"`
	CommentCount   int       `json:"comment_count"`
	IsNotice       bool      `json:"is_notice"`
	IsLiked        bool      `json:"is_liked"`
	CreatedAt      time.Time `json:"crt_date"`
	UpdatedAt      time.Time `json:"mod_date"`
}

// PostDetail full post response with attachments and the comment forest
type PostDetail struct {
	ID             int64                 `json:"id"`
	Title          string                `json:"title"`
	Content        string                `json:"content"`
	UserID         int64                 `json:"user_id"`
	UserNickname   string                `json:"user_nickname"`
	UserProfileImg string                `json:"user_profile_img,omitempty"`
	ViewCount      int                   `json:"view_count"`
	LikeCount      int                   `json:"like_count"`
	CommentCount   int                   `json:"comment_count"`
	IsNotice       bool                  `json:"is_notice"`
	IsLiked        bool                  `json:"is_liked"`
	Category       string                `json:"category,omitempty"`
	Tags           []string              `json:"tags,omitempty"`
	StrategyType   string                `json:"strategy_type,omitempty"`
	TargetPrice    *float64              `json:"target_price,omitempty"`
	RiskLevel      *int                  `json:"risk_level,omitempty"`
	CreatedAt      time.Time             `json:"crt_date"`
	UpdatedAt      time.Time             `json:"mod_date"`
	Attachments    []*AttachmentResponse `json:"attachments"`
	Comments       []*CommentResponse    `json:"comments"`
}

// TagsValue converts a request tag slice to the stored JSON column value
func TagsValue(tags []string) datatypes.JSONSlice[string] {
	return datatypes.JSONSlice[string](tags)
}

// Preview returns the list preview of the content, truncated to 100 runes
func (p *Post) Preview() string {
	runes := []rune(p.Content)
	if len(runes) <= 100 {
		return p.Content
	}
	return string(runes[:100]) + "..."
}

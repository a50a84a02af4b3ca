package domain

import (
	"time"

	"gorm.io/datatypes"
)

// FreeBoard configuration row for the free discussion board
type FreeBoard struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
	SortOrder   int    `gorm:"default:0" json:"sort_order"`

	AllowedCategories datatypes.JSONSlice[string] `json:"allowed_categories,omitempty"`
	AllowAnonymous    bool                        `gorm:"default:true" json:"allow_anonymous"`
	MaxTagsCount      int                         `gorm:"default:5" json:"max_tags_count"`
	RequireModeration bool                        `gorm:"default:false" json:"require_moderation"`
	MaxContentLength  int                         `gorm:"default:10000" json:"max_content_length"`

	CreatedAt time.Time `gorm:"column:crt_date" json:"crt_date"`
	UpdatedAt time.Time `gorm:"column:mod_date" json:"mod_date"`
}

// TableName matches the original free_boards table
func (FreeBoard) TableName() string {
	return "free_boards"
}

// StrategyBoard configuration row for the strategy board
type StrategyBoard struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool   `gorm:"not null;default:true" json:"is_active"`
	SortOrder   int    `gorm:"default:0" json:"sort_order"`

	MaxRiskLevel          int                         `gorm:"default:5" json:"max_risk_level"`
	AllowedStrategyTypes  datatypes.JSONSlice[string] `json:"allowed_strategy_types,omitempty"`
	RequireStockReference bool                        `gorm:"default:false" json:"require_stock_reference"`
	RequireRiskAssessment bool                        `gorm:"default:true" json:"require_risk_assessment"`
	MaxTagsCount          int                         `gorm:"default:10" json:"max_tags_count"`

	CreatedAt time.Time `gorm:"column:crt_date" json:"crt_date"`
	UpdatedAt time.Time `gorm:"column:mod_date" json:"mod_date"`
}

// TableName matches the original strategy_boards table
func (StrategyBoard) TableName() string {
	return "strategy_boards"
}

package repository

import (
	"github.com/stocknote/stocknote-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ViewRepository records per-user post views. The unique
// (post_kind, post_id, user_id) index makes duplicate views a no-op, and the
// view_count increment only happens when a row was actually inserted.
type ViewRepository interface {
	// Record inserts a view row if the user has not seen the post before.
	// Returns true when a new row was inserted (and the counter bumped).
	Record(kind domain.PostKind, postID, userID int64, ip, userAgent string) (bool, error)
}

type viewRepository struct {
	db *gorm.DB
}

// NewViewRepository creates a new ViewRepository
func NewViewRepository(db *gorm.DB) ViewRepository {
	return &viewRepository{db: db}
}

// Record inserts with ON CONFLICT DO NOTHING so the dedup check and the
// insert cannot race between two requests from the same viewer.
func (r *viewRepository) Record(kind domain.PostKind, postID, userID int64, ip, userAgent string) (bool, error) {
	inserted := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		view := domain.PostView{
			PostKind:  kind,
			PostID:    postID,
			UserID:    userID,
			IPAddress: ip,
			UserAgent: userAgent,
		}
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&view)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		inserted = true
		return tx.Table(kind.PostTable()).
			Where("id = ?", postID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	})
	return inserted, err
}

package domain

import "time"

// Attachment file metadata attached to a post. Upload handling is outside this
// service; rows are deleted together with their post.
type Attachment struct {
	ID            int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID        int64  `gorm:"column:post_id;not null;index" json:"post_id"`
	FileName      string `gorm:"size:255;not null" json:"file_name"`
	OriginalName  string `gorm:"size:255;not null" json:"original_name"`
	FilePath      string `gorm:"size:500;not null" json:"file_path"`
	FileSize      int64  `gorm:"not null" json:"file_size"`
	MimeType      string `gorm:"size:100" json:"mime_type"`
	DownloadCount int    `gorm:"default:0" json:"download_count"`
	FileType      string `gorm:"size:50" json:"file_type,omitempty"`
	ThumbnailPath string `gorm:"size:500" json:"thumbnail_path,omitempty"`

	CreatedAt time.Time `gorm:"column:crt_date" json:"crt_date"`
	UpdatedAt time.Time `gorm:"column:mod_date" json:"mod_date"`
}

// AttachmentResponse attachment metadata returned with a post detail
type AttachmentResponse struct {
	ID           int64     `json:"id"`
	FileName     string    `json:"file_name"`
	OriginalName string    `json:"original_name"`
	FilePath     string    `json:"file_path"`
	FileSize     int64     `json:"file_size"`
	CreatedAt    time.Time `json:"crt_date"`
}

// ToResponse converts an attachment row to its response form
func (a *Attachment) ToResponse() *AttachmentResponse {
	return &AttachmentResponse{
		ID:           a.ID,
		FileName:     a.FileName,
		OriginalName: a.OriginalName,
		FilePath:     a.FilePath,
		FileSize:     a.FileSize,
		CreatedAt:    a.CreatedAt,
	}
}

package models

import "time"

// GalleryImage represents an uploaded gallery photo and its metadata.
//
// Invariant: Filename always refers to a file under the gallery upload
// directory; the upload handlers delete the file when the row is removed
// and delete freshly written files when the insert fails.
type GalleryImage struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Title       string `gorm:"type:text;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Filename    string `gorm:"type:text;not null" json:"filename"`
	Filepath    string `gorm:"type:text;not null" json:"filepath"` // Public-facing relative path.
	Category    string `gorm:"type:text;not null;index" json:"category"`
	Position    int    `gorm:"not null;default:0" json:"position"` // Sort order within the gallery.
	Active      bool   `gorm:"not null;default:true" json:"active"`

	UploadedBy uint64 `gorm:"index" json:"uploaded_by"` // Admin who uploaded the file.

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

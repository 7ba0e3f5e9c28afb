package models

import "time"

// Video represents an uploaded video and its metadata.
type Video struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Title       string `gorm:"type:text;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Filename    string `gorm:"type:text;not null" json:"filename"`
	Filepath    string `gorm:"type:text;not null" json:"filepath"` // Public-facing relative path.
	VideoType   string `gorm:"type:text;index" json:"video_type"`  // e.g. "promo", "event".
	Category    string `gorm:"type:text;index" json:"category"`
	Position    int    `gorm:"not null;default:0" json:"position"`
	Active      bool   `gorm:"not null;default:true" json:"active"`

	UploadedBy uint64 `gorm:"index" json:"uploaded_by"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

package models

import "time"

// Event represents a restaurant event shown on the public site.
type Event struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Title       string `gorm:"type:text;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	EventDate   string `gorm:"type:text;not null;index" json:"event_date"` // YYYY-MM-DD.
	EventTime   string `gorm:"type:text" json:"event_time"`                // HH:MM.
	ImagePath   string `gorm:"type:text" json:"image_path"`
	Active      bool   `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

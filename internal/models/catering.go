package models

import "time"

// CateringRequest represents a catering inquiry from the public site.
type CateringRequest struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	CompanyName string `gorm:"type:text" json:"company_name"`
	ContactName string `gorm:"type:text;not null" json:"contact_name"`
	Email       string `gorm:"type:text;not null" json:"email"`
	Phone       string `gorm:"type:text;not null" json:"phone"`

	EventType  string `gorm:"type:text;not null" json:"event_type"`
	EventDate  string `gorm:"type:text;not null" json:"event_date"` // YYYY-MM-DD.
	GuestCount int    `gorm:"not null" json:"guest_count"`
	Location   string `gorm:"type:text" json:"location"`
	Budget     string `gorm:"type:text" json:"budget"`
	Details    string `gorm:"type:text" json:"details"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

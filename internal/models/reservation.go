package models

import "time"

// Reservation statuses.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// Reservation represents a table booking submitted from the public site.
type Reservation struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	FirstName string `gorm:"type:text;not null" json:"first_name"`
	LastName  string `gorm:"type:text;not null" json:"last_name"`
	Email     string `gorm:"type:text;not null" json:"email"`
	Phone     string `gorm:"type:text;not null" json:"phone"`

	Date      string `gorm:"type:text;not null;index" json:"date"` // YYYY-MM-DD.
	Time      string `gorm:"type:text;not null" json:"time"`       // HH:MM.
	PartySize int    `gorm:"not null" json:"party_size"`

	Occasion       string `gorm:"type:text" json:"occasion"`
	SpecialMessage string `gorm:"type:text" json:"special_message"`

	Status           string `gorm:"type:text;not null;default:'pending';index" json:"status"`
	ConfirmationCode string `gorm:"type:text;not null;uniqueIndex" json:"confirmation_code"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

package models

import "time"

// Contact represents a message submitted from the public contact form.
type Contact struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	FullName string `gorm:"type:text;not null" json:"full_name"`
	Email    string `gorm:"type:text;not null" json:"email"`
	Phone    string `gorm:"type:text" json:"phone"`
	Subject  string `gorm:"type:text;not null" json:"subject"`
	Message  string `gorm:"type:text;not null" json:"message"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// NewsletterSubscriber represents a newsletter signup.
type NewsletterSubscriber struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Email string `gorm:"type:text;not null;uniqueIndex" json:"email"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

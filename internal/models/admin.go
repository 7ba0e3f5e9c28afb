package models

import "time"

// Admin roles, ordered from least to most privileged.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Admin represents an administrator account stored in the database.
type Admin struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"` // Primary key.

	Username string `gorm:"type:text;not null;uniqueIndex" json:"username"` // Unique login name.
	Password string `gorm:"type:text;not null" json:"-"`                    // Hashed password, never serialized.
	Email    string `gorm:"type:text;not null" json:"email"`
	FullName string `gorm:"type:text" json:"full_name"`

	Role string `gorm:"type:text;not null;default:'admin'" json:"role"` // RoleAdmin or RoleSuperAdmin.

	Active bool `gorm:"not null;default:true" json:"active"` // Whether the admin can sign in.

	LastLogin *time.Time `json:"last_login"` // Updated on each successful login.

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// IsRole reports whether the admin holds one of the given roles.
func (a *Admin) IsRole(roles ...string) bool {
	for _, role := range roles {
		if a.Role == role {
			return true
		}
	}
	return false
}

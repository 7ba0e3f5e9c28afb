package models

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions recorded in the activity log.
const (
	ActionLogin          = "LOGIN"
	ActionLogout         = "LOGOUT"
	ActionChangePassword = "CHANGE_PASSWORD"
	ActionCreate         = "CREATE"
	ActionUpdate         = "UPDATE"
	ActionDelete         = "DELETE"
)

// ActivityLog records an administrative action for auditing.
type ActivityLog struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	AdminID     uint64         `gorm:"not null;index" json:"admin_id"`
	Action      string         `gorm:"type:text;not null" json:"action"`
	TableName   string         `gorm:"type:text" json:"table_name"` // Affected table, empty for auth actions.
	RecordID    uint64         `json:"record_id"`
	Description string         `gorm:"type:text" json:"description"`
	IPAddress   string         `gorm:"type:text" json:"ip_address"`
	Details     datatypes.JSON `gorm:"type:jsonb" json:"details,omitempty"` // Optional structured payload.

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index" json:"created_at"`
}

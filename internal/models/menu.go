package models

import (
	"time"

	"gorm.io/datatypes"
)

// MenuCategory groups menu items for display.
type MenuCategory struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Name        string `gorm:"type:text;not null" json:"name"`
	NameEN      string `gorm:"type:text" json:"name_en"` // English display name.
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"type:text" json:"icon"`
	Position    int    `gorm:"not null;default:0" json:"position"`
	Active      bool   `gorm:"not null;default:true" json:"active"`

	Items []MenuItem `gorm:"foreignKey:CategoryID" json:"items,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// MenuItem represents a dish or drink on the menu.
type MenuItem struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	CategoryID  uint64 `gorm:"not null;index" json:"category_id"`
	Name        string `gorm:"type:text;not null" json:"name"`
	NameEN      string `gorm:"type:text" json:"name_en"`
	Description string `gorm:"type:text" json:"description"`

	PriceCents int64  `gorm:"not null;default:0" json:"price_cents"`
	Currency   string `gorm:"type:text;not null;default:'BIF'" json:"currency"`

	// Optional dish photo, managed by the menu-image upload pipeline.
	ImageFilename string `gorm:"type:text" json:"image_filename"`
	ImagePath     string `gorm:"type:text" json:"image_path"`

	Tags datatypes.JSON `gorm:"type:jsonb" json:"tags,omitempty"` // e.g. ["vegetarian","spicy"].

	Available bool `gorm:"not null;default:true" json:"available"`
	Featured  bool `gorm:"not null;default:false" json:"featured"`
	Position  int  `gorm:"not null;default:0" json:"position"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crocobrasseur/website/internal/http/response"
	"github.com/crocobrasseur/website/internal/models"
)

// MenuHandler serves the public menu.
type MenuHandler struct {
	db *gorm.DB
}

// NewMenuHandler constructs a MenuHandler.
func NewMenuHandler(db *gorm.DB) *MenuHandler {
	return &MenuHandler{db: db}
}

// Menu returns active categories with their available items, ordered for
// display.
func (h *MenuHandler) Menu(c *gin.Context) {
	var categories []models.MenuCategory
	errFind := h.db.WithContext(c.Request.Context()).
		Where("active = ?", true).
		Preload("Items", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("available = ?", true).Order("position ASC, id ASC")
		}).
		Order("position ASC, id ASC").
		Find(&categories).Error
	if errFind != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to load menu")
		return
	}
	response.List(c, http.StatusOK, len(categories), categories)
}

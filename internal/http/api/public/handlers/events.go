package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crocobrasseur/website/internal/http/response"
	"github.com/crocobrasseur/website/internal/models"
)

// EventHandler serves public event listings.
type EventHandler struct {
	db *gorm.DB
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(db *gorm.DB) *EventHandler {
	return &EventHandler{db: db}
}

// List returns active events, soonest first.
func (h *EventHandler) List(c *gin.Context) {
	var events []models.Event
	errFind := h.db.WithContext(c.Request.Context()).
		Where("active = ?", true).
		Order("event_date ASC, event_time ASC").
		Find(&events).Error
	if errFind != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to load events")
		return
	}
	response.List(c, http.StatusOK, len(events), events)
}

// GalleryHandler serves the public gallery.
type GalleryHandler struct {
	db *gorm.DB
}

// NewGalleryHandler constructs a GalleryHandler.
func NewGalleryHandler(db *gorm.DB) *GalleryHandler {
	return &GalleryHandler{db: db}
}

// List returns active gallery images, optionally filtered by category.
func (h *GalleryHandler) List(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Where("active = ?", true)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	var images []models.GalleryImage
	if errFind := query.Order("position ASC, id ASC").Find(&images).Error; errFind != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to load gallery")
		return
	}
	response.List(c, http.StatusOK, len(images), images)
}

// VideoHandler serves public videos.
type VideoHandler struct {
	db *gorm.DB
}

// NewVideoHandler constructs a VideoHandler.
func NewVideoHandler(db *gorm.DB) *VideoHandler {
	return &VideoHandler{db: db}
}

// List returns active videos, optionally filtered by type.
func (h *VideoHandler) List(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Where("active = ?", true)
	if videoType := c.Query("type"); videoType != "" {
		query = query.Where("video_type = ?", videoType)
	}
	var videos []models.Video
	if errFind := query.Order("position ASC, id ASC").Find(&videos).Error; errFind != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to load videos")
		return
	}
	response.List(c, http.StatusOK, len(videos), videos)
}

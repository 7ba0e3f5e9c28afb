package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crocobrasseur/website/internal/audit"
	webhttp "github.com/crocobrasseur/website/internal/http"
	"github.com/crocobrasseur/website/internal/http/response"
	"github.com/crocobrasseur/website/internal/models"
	"github.com/crocobrasseur/website/internal/upload"
)

// GalleryHandler handles gallery image management.
type GalleryHandler struct {
	db       *gorm.DB
	store    *upload.Store
	recorder *audit.Recorder
}

// NewGalleryHandler constructs a GalleryHandler.
func NewGalleryHandler(db *gorm.DB, store *upload.Store, recorder *audit.Recorder) *GalleryHandler {
	return &GalleryHandler{db: db, store: store, recorder: recorder}
}

// List returns gallery images, optionally filtered by category and active.
func (h *GalleryHandler) List(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Model(&models.GalleryImage{})

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where("category = ?", category)
	}
	if active := strings.TrimSpace(c.Query("active")); active != "" {
		query = query.Where("active = ?", active == "true")
	}

	var images []models.GalleryImage
	if errFind := query.Order("position ASC, created_at DESC").Find(&images).Error; errFind != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to fetch images")
		return
	}

	response.List(c, http.StatusOK, len(images), images)
}

// Get returns a single gallery image.
func (h *GalleryHandler) Get(c *gin.Context) {
	var image models.GalleryImage
	if errFind := h.db.WithContext(c.Request.Context()).First(&image, c.Param("id")).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "image not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to fetch image")
		return
	}
	response.OK(c, http.StatusOK, "", image)
}

// Upload accepts a multipart form with an "image" file and metadata fields.
// The stored file is deleted again if validation or the metadata insert
// fails after the write.
func (h *GalleryHandler) Upload(c *gin.Context) {
	claims := webhttp.ClaimsFromContext(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	fileHeader, errFile := c.FormFile("image")
	if errFile != nil {
		response.Fail(c, http.StatusBadRequest, "no image provided")
		return
	}

	stored, errSave := h.store.SaveMultipart(fileHeader, upload.GalleryImage)
	if errSave != nil {
		if upload.IsValidationError(errSave) {
			response.Fail(c, http.StatusBadRequest, errSave.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to store image")
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	category := strings.TrimSpace(c.PostForm("category"))
	if title == "" || category == "" {
		// The file is already on disk; remove it before rejecting.
		h.store.Remove(upload.GalleryImage, stored.Filename)
		response.Fail(c, http.StatusBadRequest, "title and category are required")
		return
	}

	position, _ := strconv.Atoi(c.DefaultPostForm("position", "0"))
	image := models.GalleryImage{
		Title:       title,
		Description: c.PostForm("description"),
		Filename:    stored.Filename,
		Filepath:    stored.PublicPath,
		Category:    category,
		Position:    position,
		Active:      c.DefaultPostForm("active", "true") != "false",
		UploadedBy:  claims.AdminID,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&image).Error; errCreate != nil {
		h.store.Remove(upload.GalleryImage, stored.Filename)
		response.Fail(c, http.StatusInternalServerError, "failed to save image")
		return
	}

	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     claims.AdminID,
		Action:      models.ActionCreate,
		TableName:   "gallery_images",
		RecordID:    image.ID,
		Description: "image added: " + title,
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusCreated, "image uploaded", image)
}

// galleryUpdateRequest defines PUT metadata fields.
type galleryUpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Position    int    `json:"position"`
	Active      *bool  `json:"active"`
}

// Update changes image metadata; the file itself is immutable.
func (h *GalleryHandler) Update(c *gin.Context) {
	claims := webhttp.ClaimsFromContext(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var image models.GalleryImage
	if errFind := h.db.WithContext(c.Request.Context()).First(&image, c.Param("id")).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "image not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to fetch image")
		return
	}

	var body galleryUpdateRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		response.Fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	updates := map[string]any{
		"title":       strings.TrimSpace(body.Title),
		"description": body.Description,
		"category":    strings.TrimSpace(body.Category),
		"position":    body.Position,
	}
	if body.Active != nil {
		updates["active"] = *body.Active
	}
	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&image).Updates(updates).Error; errUpdate != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to update image")
		return
	}

	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     claims.AdminID,
		Action:      models.ActionUpdate,
		TableName:   "gallery_images",
		RecordID:    image.ID,
		Description: "image updated: " + image.Title,
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusOK, "image updated", nil)
}

// Delete removes the record, then the file. A failed file delete is logged
// inside the store and never fails the request; the database is the source
// of truth for asset existence.
func (h *GalleryHandler) Delete(c *gin.Context) {
	claims := webhttp.ClaimsFromContext(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var image models.GalleryImage
	if errFind := h.db.WithContext(c.Request.Context()).First(&image, c.Param("id")).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "image not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to fetch image")
		return
	}

	if errDelete := h.db.WithContext(c.Request.Context()).Delete(&image).Error; errDelete != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to delete image")
		return
	}

	h.store.Remove(upload.GalleryImage, image.Filename)

	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     claims.AdminID,
		Action:      models.ActionDelete,
		TableName:   "gallery_images",
		RecordID:    image.ID,
		Description: "image deleted: " + image.Title,
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusOK, "image deleted", nil)
}

// reorderRequest defines the body for bulk position updates.
type reorderRequest struct {
	Images []struct {
		ID       uint64 `json:"id"`
		Position int    `json:"position"`
	} `json:"images"`
}

// Reorder updates positions for a batch of images.
func (h *GalleryHandler) Reorder(c *gin.Context) {
	var body reorderRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil || body.Images == nil {
		response.Fail(c, http.StatusBadRequest, "invalid format")
		return
	}

	errTx := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		for _, item := range body.Images {
			if errUpdate := tx.Model(&models.GalleryImage{}).
				Where("id = ?", item.ID).
				Update("position", item.Position).Error; errUpdate != nil {
				return errUpdate
			}
		}
		return nil
	})
	if errTx != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to reorder images")
		return
	}

	response.OK(c, http.StatusOK, "order updated", nil)
}

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

// VideoHandler handles video management.
type VideoHandler struct {
	db       *gorm.DB
	store    *upload.Store
	recorder *audit.Recorder
}

// NewVideoHandler constructs a VideoHandler.
func NewVideoHandler(db *gorm.DB, store *upload.Store, recorder *audit.Recorder) *VideoHandler {
	return &VideoHandler{db: db, store: store, recorder: recorder}
}

// List returns videos, optionally filtered by category, type and active.
func (h *VideoHandler) List(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Model(&models.Video{})

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where("category = ?", category)
	}
	if videoType := strings.TrimSpace(c.Query("video_type")); videoType != "" {
		query = query.Where("video_type = ?", videoType)
	}
	if active := strings.TrimSpace(c.Query("active")); active != "" {
		query = query.Where("active = ?", active == "true")
	}

	var videos []models.Video
	if errFind := query.Order("position ASC, created_at DESC").Find(&videos).Error; errFind != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to fetch videos")
		return
	}

	response.List(c, http.StatusOK, len(videos), videos)
}

// Get returns a single video.
func (h *VideoHandler) Get(c *gin.Context) {
	var video models.Video
	if errFind := h.db.WithContext(c.Request.Context()).First(&video, c.Param("id")).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "video not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to fetch video")
		return
	}
	response.OK(c, http.StatusOK, "", video)
}

// Upload accepts a multipart form with a "video" file and metadata fields.
func (h *VideoHandler) Upload(c *gin.Context) {
	claims := webhttp.ClaimsFromContext(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	fileHeader, errFile := c.FormFile("video")
	if errFile != nil {
		response.Fail(c, http.StatusBadRequest, "no video provided")
		return
	}

	stored, errSave := h.store.SaveMultipart(fileHeader, upload.Video)
	if errSave != nil {
		if upload.IsValidationError(errSave) {
			response.Fail(c, http.StatusBadRequest, errSave.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to store video")
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		h.store.Remove(upload.Video, stored.Filename)
		response.Fail(c, http.StatusBadRequest, "title is required")
		return
	}

	position, _ := strconv.Atoi(c.DefaultPostForm("position", "0"))
	video := models.Video{
		Title:       title,
		Description: c.PostForm("description"),
		Filename:    stored.Filename,
		Filepath:    stored.PublicPath,
		VideoType:   c.PostForm("video_type"),
		Category:    c.PostForm("category"),
		Position:    position,
		Active:      c.DefaultPostForm("active", "true") != "false",
		UploadedBy:  claims.AdminID,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&video).Error; errCreate != nil {
		h.store.Remove(upload.Video, stored.Filename)
		response.Fail(c, http.StatusInternalServerError, "failed to save video")
		return
	}

	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     claims.AdminID,
		Action:      models.ActionCreate,
		TableName:   "videos",
		RecordID:    video.ID,
		Description: "video added: " + title,
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusCreated, "video uploaded", video)
}

// videoUpdateRequest defines PUT metadata fields.
type videoUpdateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoType   string `json:"video_type"`
	Category    string `json:"category"`
	Position    int    `json:"position"`
	Active      *bool  `json:"active"`
}

// Update changes video metadata.
func (h *VideoHandler) Update(c *gin.Context) {
	claims := webhttp.ClaimsFromContext(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var video models.Video
	if errFind := h.db.WithContext(c.Request.Context()).First(&video, c.Param("id")).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "video not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to fetch video")
		return
	}

	var body videoUpdateRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		response.Fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	updates := map[string]any{
		"title":       strings.TrimSpace(body.Title),
		"description": body.Description,
		"video_type":  body.VideoType,
		"category":    body.Category,
		"position":    body.Position,
	}
	if body.Active != nil {
		updates["active"] = *body.Active
	}
	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&video).Updates(updates).Error; errUpdate != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to update video")
		return
	}

	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     claims.AdminID,
		Action:      models.ActionUpdate,
		TableName:   "videos",
		RecordID:    video.ID,
		Description: "video updated: " + video.Title,
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusOK, "video updated", nil)
}

// Delete removes the record, then best-effort deletes the file.
func (h *VideoHandler) Delete(c *gin.Context) {
	claims := webhttp.ClaimsFromContext(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var video models.Video
	if errFind := h.db.WithContext(c.Request.Context()).First(&video, c.Param("id")).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "video not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to fetch video")
		return
	}

	if errDelete := h.db.WithContext(c.Request.Context()).Delete(&video).Error; errDelete != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to delete video")
		return
	}

	h.store.Remove(upload.Video, video.Filename)

	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     claims.AdminID,
		Action:      models.ActionDelete,
		TableName:   "videos",
		RecordID:    video.ID,
		Description: "video deleted: " + video.Title,
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusOK, "video deleted", nil)
}

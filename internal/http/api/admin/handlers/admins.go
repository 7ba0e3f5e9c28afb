package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crocobrasseur/website/internal/audit"
	webhttp "github.com/crocobrasseur/website/internal/http"
	"github.com/crocobrasseur/website/internal/http/response"
	"github.com/crocobrasseur/website/internal/models"
	"github.com/crocobrasseur/website/internal/security"
)

// AdminAccountHandler handles admin account provisioning. All routes are
// super-admin only.
type AdminAccountHandler struct {
	db       *gorm.DB
	recorder *audit.Recorder
}

// NewAdminAccountHandler constructs an AdminAccountHandler.
func NewAdminAccountHandler(db *gorm.DB, recorder *audit.Recorder) *AdminAccountHandler {
	return &AdminAccountHandler{db: db, recorder: recorder}
}

// List returns all admin accounts, sanitized.
func (h *AdminAccountHandler) List(c *gin.Context) {
	var admins []models.Admin
	if errFind := h.db.WithContext(c.Request.Context()).
		Order("username ASC").Find(&admins).Error; errFind != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to fetch admins")
		return
	}

	payload := make([]adminPayload, 0, len(admins))
	for i := range admins {
		payload = append(payload, sanitizeAdmin(&admins[i]))
	}
	response.List(c, http.StatusOK, len(payload), payload)
}

// createAdminRequest defines the body for account creation.
type createAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Create provisions a new admin account.
func (h *AdminAccountHandler) Create(c *gin.Context) {
	claims := webhttp.ClaimsFromContext(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var body createAdminRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		response.Fail(c, http.StatusBadRequest, "invalid json")
		return
	}

	username := strings.TrimSpace(body.Username)
	password := strings.TrimSpace(body.Password)
	if username == "" || password == "" {
		response.Fail(c, http.StatusBadRequest, "username and password are required")
		return
	}
	if len(password) < security.MinPasswordLength {
		response.Fail(c, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}
	role := strings.TrimSpace(body.Role)
	if role == "" {
		role = models.RoleAdmin
	}
	if role != models.RoleAdmin && role != models.RoleSuperAdmin {
		response.Fail(c, http.StatusBadRequest, "invalid role")
		return
	}

	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		response.Fail(c, http.StatusInternalServerError, "hash password failed")
		return
	}

	admin := models.Admin{
		Username: username,
		Password: hash,
		Email:    strings.TrimSpace(body.Email),
		FullName: body.FullName,
		Role:     role,
		Active:   true,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&admin).Error; errCreate != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to create admin")
		return
	}

	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     claims.AdminID,
		Action:      models.ActionCreate,
		TableName:   "admins",
		RecordID:    admin.ID,
		Description: "admin created: " + username,
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusCreated, "admin created", sanitizeAdmin(&admin))
}

// activeRequest defines the body for activation toggles.
type activeRequest struct {
	Active *bool `json:"active"`
}

// SetActive flips the active flag. Deactivation takes effect on the
// target's next guarded request; accounts are never hard-deleted.
func (h *AdminAccountHandler) SetActive(c *gin.Context) {
	claims := webhttp.ClaimsFromContext(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var body activeRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil || body.Active == nil {
		response.Fail(c, http.StatusBadRequest, "active flag is required")
		return
	}

	var admin models.Admin
	if errFind := h.db.WithContext(c.Request.Context()).First(&admin, c.Param("id")).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "admin not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to fetch admin")
		return
	}

	if admin.ID == claims.AdminID && !*body.Active {
		response.Fail(c, http.StatusBadRequest, "cannot deactivate your own account")
		return
	}

	if errUpdate := h.db.WithContext(c.Request.Context()).
		Model(&admin).Update("active", *body.Active).Error; errUpdate != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to update admin")
		return
	}

	action := "deactivated"
	if *body.Active {
		action = "activated"
	}
	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     claims.AdminID,
		Action:      models.ActionUpdate,
		TableName:   "admins",
		RecordID:    admin.ID,
		Description: "admin " + action + ": " + admin.Username,
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusOK, "admin updated", nil)
}

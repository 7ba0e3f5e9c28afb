package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crocobrasseur/website/internal/audit"
	webhttp "github.com/crocobrasseur/website/internal/http"
	"github.com/crocobrasseur/website/internal/http/response"
	"github.com/crocobrasseur/website/internal/models"
	"github.com/crocobrasseur/website/internal/security"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	db       *gorm.DB
	secret   string
	recorder *audit.Recorder
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, secret string, recorder *audit.Recorder) *AuthHandler {
	return &AuthHandler{db: db, secret: secret, recorder: recorder}
}

// loginRequest defines the request body for admin login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// adminPayload is the sanitized admin representation returned by auth
// endpoints. The password hash never leaves the handler.
type adminPayload struct {
	ID        uint64     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login"`
}

func sanitizeAdmin(admin *models.Admin) adminPayload {
	return adminPayload{
		ID:        admin.ID,
		Username:  admin.Username,
		Email:     admin.Email,
		FullName:  admin.FullName,
		Role:      admin.Role,
		LastLogin: admin.LastLogin,
	}
}

// Login authenticates an admin and issues a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var body loginRequest
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

	// Deactivated accounts are excluded from the lookup, so they are
	// rejected before any password comparison.
	var admin models.Admin
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("username = ? AND active = ?", username, true).
		First(&admin).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusUnauthorized, "invalid credentials")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "login failed")
		return
	}

	if !security.CheckPassword(admin.Password, password) {
		response.Fail(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, errToken := security.GenerateToken(h.secret, admin.ID, admin.Username, admin.Email, admin.Role)
	if errToken != nil {
		response.Fail(c, http.StatusInternalServerError, "token generation failed")
		return
	}

	now := time.Now().UTC()
	if errUpdate := h.db.WithContext(c.Request.Context()).
		Model(&admin).Update("last_login", now).Error; errUpdate != nil {
		response.Fail(c, http.StatusInternalServerError, "login failed")
		return
	}
	admin.LastLogin = &now

	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     admin.ID,
		Action:      models.ActionLogin,
		Description: "successful login",
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusOK, "login successful", gin.H{
		"token": token,
		"admin": sanitizeAdmin(&admin),
	})
}

// Profile returns the authenticated admin's profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	admin := webhttp.AdminFromContext(c)
	if admin == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}
	response.OK(c, http.StatusOK, "", sanitizeAdmin(admin))
}

// changePasswordRequest defines the request body for password changes.
type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword verifies the current password and stores a new hash.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	admin := webhttp.AdminFromContext(c)
	if admin == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var body changePasswordRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		response.Fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	current := strings.TrimSpace(body.CurrentPassword)
	next := strings.TrimSpace(body.NewPassword)
	if current == "" || next == "" {
		response.Fail(c, http.StatusBadRequest, "current and new password are required")
		return
	}
	if len(next) < security.MinPasswordLength {
		response.Fail(c, http.StatusBadRequest, "new password must be at least 6 characters")
		return
	}

	if !security.CheckPassword(admin.Password, current) {
		response.Fail(c, http.StatusUnauthorized, "current password incorrect")
		return
	}

	hash, errHash := security.HashPassword(next)
	if errHash != nil {
		response.Fail(c, http.StatusInternalServerError, "hash password failed")
		return
	}

	if errUpdate := h.db.WithContext(c.Request.Context()).
		Model(&models.Admin{}).Where("id = ?", admin.ID).
		Update("password", hash).Error; errUpdate != nil {
		response.Fail(c, http.StatusInternalServerError, "change password failed")
		return
	}

	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     admin.ID,
		Action:      models.ActionChangePassword,
		Description: "password changed",
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusOK, "password changed", nil)
}

// Logout records the logout; token discard is client-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	admin := webhttp.AdminFromContext(c)
	if admin == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     admin.ID,
		Action:      models.ActionLogout,
		Description: "logout",
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusOK, "logout successful", nil)
}

package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/crocobrasseur/website/internal/models"
	"github.com/crocobrasseur/website/internal/security"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crocobrasseur/website/internal/http/response"
)

// Context keys set by AuthMiddleware for downstream handlers.
const (
	// ContextClaims holds the verified *security.AdminClaims (identity
	// snapshot from the token, used for attribution).
	ContextClaims = "adminClaims"
	// ContextAdmin holds the freshly loaded *models.Admin row
	// (authoritative active status).
	ContextAdmin = "adminAccount"
)

// Rejection messages for the guard states.
const (
	msgMissingToken    = "missing token"
	msgExpiredToken    = "token expired, please re-authenticate"
	msgInvalidToken    = "invalid token"
	msgInactiveAccount = "account not found or inactive"
	msgInsufficient    = "insufficient privileges"
)

// AuthMiddleware verifies the bearer token and re-checks the account's
// active flag against the database on every request. The token's role is a
// snapshot from issuance and is deliberately not re-validated here.
func AuthMiddleware(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortFail(c, http.StatusUnauthorized, msgMissingToken)
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			response.AbortFail(c, http.StatusUnauthorized, msgMissingToken)
			return
		}
		token = strings.TrimSpace(token)
		if token == "" {
			response.AbortFail(c, http.StatusUnauthorized, msgMissingToken)
			return
		}

		claims, errParse := security.ParseToken(secret, token)
		if errParse != nil {
			if errors.Is(errParse, security.ErrExpiredToken) {
				response.AbortFail(c, http.StatusUnauthorized, msgExpiredToken)
				return
			}
			response.AbortFail(c, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		// Same message for a missing and a deactivated account, to avoid
		// leaking which case occurred. A store fault is a server error,
		// not an authentication verdict.
		var admin models.Admin
		if errFind := db.WithContext(c.Request.Context()).First(&admin, claims.AdminID).Error; errFind != nil {
			if errors.Is(errFind, gorm.ErrRecordNotFound) {
				response.AbortFail(c, http.StatusUnauthorized, msgInactiveAccount)
				return
			}
			response.AbortFail(c, http.StatusInternalServerError, "authentication check failed")
			return
		}
		if !admin.Active {
			response.AbortFail(c, http.StatusUnauthorized, msgInactiveAccount)
			return
		}

		c.Set(ContextClaims, claims)
		c.Set(ContextAdmin, &admin)
		c.Next()
	}
}

// RequireRoles gates a route on the token's role snapshot.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, msgInvalidToken)
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		response.AbortFail(c, http.StatusForbidden, msgInsufficient)
	}
}

// ClaimsFromContext returns the verified claims set by AuthMiddleware.
func ClaimsFromContext(c *gin.Context) *security.AdminClaims {
	value, ok := c.Get(ContextClaims)
	if !ok {
		return nil
	}
	claims, ok := value.(*security.AdminClaims)
	if !ok {
		return nil
	}
	return claims
}

// AdminFromContext returns the fresh admin row set by AuthMiddleware.
func AdminFromContext(c *gin.Context) *models.Admin {
	value, ok := c.Get(ContextAdmin)
	if !ok {
		return nil
	}
	admin, ok := value.(*models.Admin)
	if !ok {
		return nil
	}
	return admin
}

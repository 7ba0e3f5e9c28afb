// Package admin registers the authenticated admin API.
package admin

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crocobrasseur/website/internal/audit"
	webhttp "github.com/crocobrasseur/website/internal/http"
	"github.com/crocobrasseur/website/internal/http/api/admin/handlers"
	"github.com/crocobrasseur/website/internal/models"
	"github.com/crocobrasseur/website/internal/upload"
)

// RegisterRoutes mounts the admin API under /api/admin.
//
// Login is public; everything else sits behind the auth middleware, and
// mutations additionally behind role checks.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, secret string, store *upload.Store, recorder *audit.Recorder) {
	if r == nil || db == nil {
		return
	}

	api := r.Group("/api/admin")

	authHandler := handlers.NewAuthHandler(db, secret, recorder)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(webhttp.AuthMiddleware(db, secret))

	authed.GET("/auth/profile", authHandler.Profile)
	authed.POST("/auth/change-password", authHandler.ChangePassword)
	authed.POST("/auth/logout", authHandler.Logout)

	anyAdmin := webhttp.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin)
	superOnly := webhttp.RequireRoles(models.RoleSuperAdmin)

	galleryHandler := handlers.NewGalleryHandler(db, store, recorder)
	authed.GET("/gallery", galleryHandler.List)
	authed.GET("/gallery/:id", galleryHandler.Get)
	authed.POST("/gallery", anyAdmin, galleryHandler.Upload)
	authed.PUT("/gallery/:id", anyAdmin, galleryHandler.Update)
	authed.DELETE("/gallery/:id", anyAdmin, galleryHandler.Delete)
	authed.POST("/gallery/reorder", anyAdmin, galleryHandler.Reorder)

	videoHandler := handlers.NewVideoHandler(db, store, recorder)
	authed.GET("/videos", videoHandler.List)
	authed.GET("/videos/:id", videoHandler.Get)
	authed.POST("/videos", anyAdmin, videoHandler.Upload)
	authed.PUT("/videos/:id", anyAdmin, videoHandler.Update)
	authed.DELETE("/videos/:id", anyAdmin, videoHandler.Delete)

	menuHandler := handlers.NewMenuHandler(db, store, recorder)
	authed.GET("/menu/categories", menuHandler.ListCategories)
	authed.POST("/menu/categories", anyAdmin, menuHandler.CreateCategory)
	authed.PUT("/menu/categories/:id", anyAdmin, menuHandler.UpdateCategory)
	authed.DELETE("/menu/categories/:id", anyAdmin, menuHandler.DeleteCategory)
	authed.GET("/menu/items", menuHandler.ListItems)
	authed.GET("/menu/items/:id", menuHandler.GetItem)
	authed.POST("/menu/items", anyAdmin, menuHandler.CreateItem)
	authed.PUT("/menu/items/:id", anyAdmin, menuHandler.UpdateItem)
	authed.DELETE("/menu/items/:id", anyAdmin, menuHandler.DeleteItem)

	reservationHandler := handlers.NewReservationHandler(db, recorder)
	authed.GET("/reservations", reservationHandler.List)
	authed.GET("/reservations/:id", reservationHandler.Get)
	authed.PUT("/reservations/:id/status", anyAdmin, reservationHandler.UpdateStatus)
	authed.DELETE("/reservations/:id", anyAdmin, reservationHandler.Delete)

	dashboardHandler := handlers.NewDashboardHandler(db)
	authed.GET("/dashboard/stats", dashboardHandler.Stats)

	accountHandler := handlers.NewAdminAccountHandler(db, recorder)
	authed.GET("/admins", superOnly, accountHandler.List)
	authed.POST("/admins", superOnly, accountHandler.Create)
	authed.PUT("/admins/:id/active", superOnly, accountHandler.SetActive)
}

// Package public registers the unauthenticated site API.
package public

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crocobrasseur/website/internal/config"
	"github.com/crocobrasseur/website/internal/http/api/public/handlers"
	"github.com/crocobrasseur/website/internal/http/response"
	"github.com/crocobrasseur/website/internal/mail"
)

// RegisterRoutes mounts the public API under /api and serves uploaded
// assets at the configured public base.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, sender mail.Sender) {
	if r == nil || db == nil || cfg == nil {
		return
	}

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		response.OK(c, http.StatusOK, "ok", nil)
	})

	menuHandler := handlers.NewMenuHandler(db)
	api.GET("/menu", menuHandler.Menu)

	eventHandler := handlers.NewEventHandler(db)
	api.GET("/events", eventHandler.List)

	galleryHandler := handlers.NewGalleryHandler(db)
	api.GET("/gallery", galleryHandler.List)

	videoHandler := handlers.NewVideoHandler(db)
	api.GET("/videos", videoHandler.List)

	reservationHandler := handlers.NewReservationHandler(db, sender, cfg.SMTP)
	api.POST("/reservations", reservationHandler.Create)

	contactHandler := handlers.NewContactHandler(db, sender, cfg.SMTP)
	api.POST("/contact", contactHandler.Contact)
	api.POST("/newsletter", contactHandler.Subscribe)
	api.POST("/catering", contactHandler.Catering)

	// Uploaded files are publicly reachable at the paths the admin API
	// returns.
	r.Static(cfg.Uploads.PublicBase, cfg.Uploads.Dir)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crocobrasseur/website/internal/http/response"
	"github.com/crocobrasseur/website/internal/models"
)

// DashboardHandler serves aggregate stats for the admin console.
type DashboardHandler struct {
	db *gorm.DB
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// recentActivity joins activity entries with admin usernames.
type recentActivity struct {
	models.ActivityLog
	Username string `json:"username"`
}

// Stats returns entity counts plus recent reservations and activity.
func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	counts := map[string]int64{}
	countQueries := []struct {
		key   string
		query *gorm.DB
	}{
		{"pending_reservations", h.db.WithContext(ctx).Model(&models.Reservation{}).Where("status = ?", models.ReservationPending)},
		{"total_reservations", h.db.WithContext(ctx).Model(&models.Reservation{})},
		{"gallery_images", h.db.WithContext(ctx).Model(&models.GalleryImage{}).Where("active = ?", true)},
		{"menu_items", h.db.WithContext(ctx).Model(&models.MenuItem{}).Where("available = ?", true)},
		{"videos", h.db.WithContext(ctx).Model(&models.Video{}).Where("active = ?", true)},
	}
	for _, cq := range countQueries {
		var count int64
		if errCount := cq.query.Count(&count).Error; errCount != nil {
			response.Fail(c, http.StatusInternalServerError, "failed to fetch stats")
			return
		}
		counts[cq.key] = count
	}

	var recentReservations []models.Reservation
	if errFind := h.db.WithContext(ctx).
		Order("created_at DESC").Limit(5).
		Find(&recentReservations).Error; errFind != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to fetch stats")
		return
	}

	var activity []recentActivity
	if errFind := h.db.WithContext(ctx).
		Model(&models.ActivityLog{}).
		Select("activity_logs.*, admins.username AS username").
		Joins("LEFT JOIN admins ON admins.id = activity_logs.admin_id").
		Order("activity_logs.created_at DESC").Limit(10).
		Find(&activity).Error; errFind != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to fetch stats")
		return
	}

	response.OK(c, http.StatusOK, "", gin.H{
		"stats":               counts,
		"recent_reservations": recentReservations,
		"recent_activity":     activity,
	})
}

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crocobrasseur/website/internal/audit"
	"github.com/crocobrasseur/website/internal/db"
	webhttp "github.com/crocobrasseur/website/internal/http"
	"github.com/crocobrasseur/website/internal/http/response"
	"github.com/crocobrasseur/website/internal/models"
)

// ReservationHandler handles admin reservation management.
type ReservationHandler struct {
	db       *gorm.DB
	recorder *audit.Recorder
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(conn *gorm.DB, recorder *audit.Recorder) *ReservationHandler {
	return &ReservationHandler{db: conn, recorder: recorder}
}

// List returns reservations, newest first, with optional status filter and
// name/email search.
func (h *ReservationHandler) List(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Model(&models.Reservation{})

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := db.NormalizeLikePattern(h.db, "%"+search+"%")
		query = query.Where(
			h.db.Where(db.CaseInsensitiveLikeExpr(h.db, "first_name"), pattern).
				Or(db.CaseInsensitiveLikeExpr(h.db, "last_name"), pattern).
				Or(db.CaseInsensitiveLikeExpr(h.db, "email"), pattern),
		)
	}

	var reservations []models.Reservation
	if errFind := query.Order("date DESC, time DESC").Find(&reservations).Error; errFind != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to fetch reservations")
		return
	}
	response.List(c, http.StatusOK, len(reservations), reservations)
}

// Get returns a single reservation.
func (h *ReservationHandler) Get(c *gin.Context) {
	var reservation models.Reservation
	if errFind := h.db.WithContext(c.Request.Context()).First(&reservation, c.Param("id")).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "reservation not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to fetch reservation")
		return
	}
	response.OK(c, http.StatusOK, "", reservation)
}

// statusRequest defines the body for status updates.
type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves a reservation between pending/confirmed/cancelled.
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	claims := webhttp.ClaimsFromContext(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var body statusRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		response.Fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	status := strings.TrimSpace(body.Status)
	switch status {
	case models.ReservationPending, models.ReservationConfirmed, models.ReservationCancelled:
	default:
		response.Fail(c, http.StatusBadRequest, "invalid status")
		return
	}

	var reservation models.Reservation
	if errFind := h.db.WithContext(c.Request.Context()).First(&reservation, c.Param("id")).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "reservation not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to fetch reservation")
		return
	}

	if errUpdate := h.db.WithContext(c.Request.Context()).
		Model(&reservation).Update("status", status).Error; errUpdate != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to update reservation")
		return
	}

	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     claims.AdminID,
		Action:      models.ActionUpdate,
		TableName:   "reservations",
		RecordID:    reservation.ID,
		Description: "reservation status set to " + status,
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusOK, "reservation updated", nil)
}

// Delete removes a reservation.
func (h *ReservationHandler) Delete(c *gin.Context) {
	claims := webhttp.ClaimsFromContext(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var reservation models.Reservation
	if errFind := h.db.WithContext(c.Request.Context()).First(&reservation, c.Param("id")).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			response.Fail(c, http.StatusNotFound, "reservation not found")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to fetch reservation")
		return
	}

	if errDelete := h.db.WithContext(c.Request.Context()).Delete(&reservation).Error; errDelete != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to delete reservation")
		return
	}

	h.recorder.Record(c.Request.Context(), audit.Entry{
		AdminID:     claims.AdminID,
		Action:      models.ActionDelete,
		TableName:   "reservations",
		RecordID:    reservation.ID,
		Description: "reservation deleted",
		IPAddress:   c.ClientIP(),
	})

	response.OK(c, http.StatusOK, "reservation deleted", nil)
}

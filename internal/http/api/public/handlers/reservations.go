package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crocobrasseur/website/internal/config"
	"github.com/crocobrasseur/website/internal/http/response"
	"github.com/crocobrasseur/website/internal/mail"
	"github.com/crocobrasseur/website/internal/models"
)

// ReservationHandler accepts table bookings from the public site.
type ReservationHandler struct {
	db     *gorm.DB
	sender mail.Sender
	smtp   config.SMTPConfig
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(db *gorm.DB, sender mail.Sender, smtp config.SMTPConfig) *ReservationHandler {
	return &ReservationHandler{db: db, sender: sender, smtp: smtp}
}

type reservationRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	PartySize      int    `json:"party_size" binding:"required,min=1"`
	Occasion       string `json:"occasion"`
	SpecialMessage string `json:"special_message"`
}

// Create stores a pending reservation and returns its confirmation code.
// Notification mail is fire-and-forget; delivery never affects the
// response.
func (h *ReservationHandler) Create(c *gin.Context) {
	var req reservationRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		response.Fail(c, http.StatusBadRequest, "missing or invalid reservation fields")
		return
	}

	code := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	reservation := models.Reservation{
		FirstName:        strings.TrimSpace(req.FirstName),
		LastName:         strings.TrimSpace(req.LastName),
		Email:            strings.TrimSpace(req.Email),
		Phone:            strings.TrimSpace(req.Phone),
		Date:             req.Date,
		Time:             req.Time,
		PartySize:        req.PartySize,
		Occasion:         req.Occasion,
		SpecialMessage:   req.SpecialMessage,
		Status:           models.ReservationPending,
		ConfirmationCode: code,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&reservation).Error; errCreate != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to save reservation")
		return
	}

	if h.sender != nil {
		body := fmt.Sprintf(
			"Dear %s %s,\n\nWe received your reservation request for %d guest(s) on %s at %s.\nYour confirmation code is %s.\n\nWe will contact you shortly to confirm.\n\nCroco Brasseur",
			reservation.FirstName, reservation.LastName, reservation.PartySize,
			reservation.Date, reservation.Time, reservation.ConfirmationCode,
		)
		h.sender.Send(reservation.Email, "Reservation request received", body)

		if h.smtp.NotifyTo != "" {
			notify := fmt.Sprintf(
				"New reservation #%d\n\n%s %s — %s / %s\n%d guest(s) on %s at %s\nOccasion: %s\nMessage: %s",
				reservation.ID, reservation.FirstName, reservation.LastName,
				reservation.Email, reservation.Phone,
				reservation.PartySize, reservation.Date, reservation.Time,
				reservation.Occasion, reservation.SpecialMessage,
			)
			h.sender.Send(h.smtp.NotifyTo, "New reservation request", notify)
		}
	}

	response.OK(c, http.StatusCreated, "reservation received", gin.H{
		"id":                reservation.ID,
		"confirmation_code": reservation.ConfirmationCode,
		"status":            reservation.Status,
	})
}

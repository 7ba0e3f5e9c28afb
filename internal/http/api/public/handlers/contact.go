package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/crocobrasseur/website/internal/config"
	"github.com/crocobrasseur/website/internal/http/response"
	"github.com/crocobrasseur/website/internal/mail"
	"github.com/crocobrasseur/website/internal/models"
)

// ContactHandler accepts contact-form messages, newsletter signups and
// catering inquiries.
type ContactHandler struct {
	db     *gorm.DB
	sender mail.Sender
	smtp   config.SMTPConfig
}

// NewContactHandler constructs a ContactHandler.
func NewContactHandler(db *gorm.DB, sender mail.Sender, smtp config.SMTPConfig) *ContactHandler {
	return &ContactHandler{db: db, sender: sender, smtp: smtp}
}

type contactRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Subject  string `json:"subject" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

// Contact stores a contact message and notifies the restaurant inbox.
func (h *ContactHandler) Contact(c *gin.Context) {
	var req contactRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		response.Fail(c, http.StatusBadRequest, "missing or invalid contact fields")
		return
	}
	contact := models.Contact{
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.TrimSpace(req.Email),
		Phone:    req.Phone,
		Subject:  strings.TrimSpace(req.Subject),
		Message:  req.Message,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&contact).Error; errCreate != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to save message")
		return
	}
	if h.sender != nil && h.smtp.NotifyTo != "" {
		body := fmt.Sprintf("From: %s <%s> %s\nSubject: %s\n\n%s",
			contact.FullName, contact.Email, contact.Phone, contact.Subject, contact.Message)
		h.sender.Send(h.smtp.NotifyTo, "New contact message: "+contact.Subject, body)
	}
	response.OK(c, http.StatusCreated, "message received", gin.H{"id": contact.ID})
}

type newsletterRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Subscribe registers a newsletter address. A duplicate email is a
// client error, not a server fault.
func (h *ContactHandler) Subscribe(c *gin.Context) {
	var req newsletterRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		response.Fail(c, http.StatusBadRequest, "a valid email is required")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.NewsletterSubscriber
	errFind := h.db.WithContext(c.Request.Context()).Where("email = ?", email).First(&existing).Error
	if errFind == nil {
		response.Fail(c, http.StatusBadRequest, "email already subscribed")
		return
	}
	if !errors.Is(errFind, gorm.ErrRecordNotFound) {
		response.Fail(c, http.StatusInternalServerError, "failed to subscribe")
		return
	}

	subscriber := models.NewsletterSubscriber{Email: email}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&subscriber).Error; errCreate != nil {
		// The unique index closes the check-then-insert race.
		if errors.Is(errCreate, gorm.ErrDuplicatedKey) {
			response.Fail(c, http.StatusBadRequest, "email already subscribed")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "failed to subscribe")
		return
	}
	response.OK(c, http.StatusCreated, "subscribed", nil)
}

type cateringRequest struct {
	CompanyName string `json:"company_name"`
	ContactName string `json:"contact_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	EventType   string `json:"event_type" binding:"required"`
	EventDate   string `json:"event_date" binding:"required"`
	GuestCount  int    `json:"guest_count" binding:"required,min=1"`
	Location    string `json:"location"`
	Budget      string `json:"budget"`
	Details     string `json:"details"`
}

// Catering stores a catering inquiry and notifies the restaurant inbox.
func (h *ContactHandler) Catering(c *gin.Context) {
	var req cateringRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		response.Fail(c, http.StatusBadRequest, "missing or invalid catering fields")
		return
	}
	request := models.CateringRequest{
		CompanyName: req.CompanyName,
		ContactName: strings.TrimSpace(req.ContactName),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		EventType:   req.EventType,
		EventDate:   req.EventDate,
		GuestCount:  req.GuestCount,
		Location:    req.Location,
		Budget:      req.Budget,
		Details:     req.Details,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&request).Error; errCreate != nil {
		response.Fail(c, http.StatusInternalServerError, "failed to save catering request")
		return
	}
	if h.sender != nil && h.smtp.NotifyTo != "" {
		body := fmt.Sprintf(
			"New catering inquiry #%d\n\n%s (%s) — %s / %s\nEvent: %s on %s, %d guest(s)\nLocation: %s\nBudget: %s\n\n%s",
			request.ID, request.ContactName, request.CompanyName,
			request.Email, request.Phone,
			request.EventType, request.EventDate, request.GuestCount,
			request.Location, request.Budget, request.Details,
		)
		h.sender.Send(h.smtp.NotifyTo, "New catering inquiry", body)
	}
	response.OK(c, http.StatusCreated, "catering request received", gin.H{"id": request.ID})
}

package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/crocobrasseur/website/internal/config"
	"github.com/crocobrasseur/website/internal/models"
)

func TestReservationCreate(t *testing.T) {
	db := setupDB(t)
	sender := &recordingSender{}
	smtp := config.SMTPConfig{NotifyTo: "team@example.com"}

	r := gin.New()
	h := NewReservationHandler(db, sender, smtp)
	r.POST("/reservations", h.Create)

	w := postJSON(t, r, "/reservations", map[string]any{
		"first_name": "Jean",
		"last_name":  "Ndayizeye",
		"email":      "jean@example.com",
		"phone":      "+25779000000",
		"date":       "2026-10-01",
		"time":       "19:00",
		"party_size": 4,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	data, _ := body["data"].(map[string]any)
	code, _ := data["confirmation_code"].(string)
	if len(code) != 8 || code != strings.ToUpper(code) {
		t.Fatalf("unexpected confirmation code %q", code)
	}
	if data["status"] != models.ReservationPending {
		t.Fatalf("expected pending status, got %v", data["status"])
	}

	var stored models.Reservation
	if errFind := db.Where("confirmation_code = ?", code).First(&stored).Error; errFind != nil {
		t.Fatalf("reservation not persisted: %v", errFind)
	}
	if stored.PartySize != 4 || stored.FirstName != "Jean" {
		t.Fatalf("unexpected row: %+v", stored)
	}

	sent := sender.all()
	if len(sent) != 2 {
		t.Fatalf("expected guest + notify mail, got %d", len(sent))
	}
	if sent[0].To != "jean@example.com" || sent[1].To != "team@example.com" {
		t.Fatalf("unexpected recipients: %+v", sent)
	}
	if !strings.Contains(sent[0].Body, code) {
		t.Fatalf("guest mail does not carry the confirmation code: %s", sent[0].Body)
	}
}

func TestReservationCreateMissingFields(t *testing.T) {
	db := setupDB(t)
	sender := &recordingSender{}

	r := gin.New()
	h := NewReservationHandler(db, sender, config.SMTPConfig{})
	r.POST("/reservations", h.Create)

	w := postJSON(t, r, "/reservations", map[string]any{
		"first_name": "Jean",
		"email":      "jean@example.com",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no rows, found %d", count)
	}
	if len(sender.all()) != 0 {
		t.Fatal("no mail should be sent for a rejected reservation")
	}
}

func TestReservationCodesDistinct(t *testing.T) {
	db := setupDB(t)
	sender := &recordingSender{}

	r := gin.New()
	h := NewReservationHandler(db, sender, config.SMTPConfig{})
	r.POST("/reservations", h.Create)

	codes := make(map[string]bool)
	for i := 0; i < 20; i++ {
		w := postJSON(t, r, "/reservations", map[string]any{
			"first_name": "Jean",
			"last_name":  "Ndayizeye",
			"email":      "jean@example.com",
			"phone":      "+25779000000",
			"date":       "2026-10-01",
			"time":       "19:00",
			"party_size": 2,
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("request %d failed: %d", i, w.Code)
		}
		data, _ := decodeBody(t, w)["data"].(map[string]any)
		code, _ := data["confirmation_code"].(string)
		if codes[code] {
			t.Fatalf("duplicate confirmation code %q", code)
		}
		codes[code] = true
	}
}

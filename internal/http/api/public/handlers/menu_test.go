package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/crocobrasseur/website/internal/models"
)

func TestPublicMenuFiltersInactive(t *testing.T) {
	db := setupDB(t)

	visible := models.MenuCategory{Name: "Plats", Active: true, Position: 1}
	hidden := models.MenuCategory{Name: "Archive", Active: false}
	db.Create(&visible)
	db.Create(&hidden)
	db.Create(&models.MenuItem{CategoryID: visible.ID, Name: "Brochettes", Available: true, PriceCents: 15000})
	db.Create(&models.MenuItem{CategoryID: visible.ID, Name: "Retiré", Available: false})
	db.Create(&models.MenuItem{CategoryID: hidden.ID, Name: "Oublié", Available: true})

	r := gin.New()
	h := NewMenuHandler(db)
	r.GET("/menu", h.Menu)

	w := getJSON(t, r, "/menu")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	raw, _ := json.Marshal(body["data"])
	var categories []models.MenuCategory
	if errDecode := json.Unmarshal(raw, &categories); errDecode != nil {
		t.Fatalf("decode categories: %v", errDecode)
	}
	if len(categories) != 1 {
		t.Fatalf("expected one active category, got %d", len(categories))
	}
	if len(categories[0].Items) != 1 || categories[0].Items[0].Name != "Brochettes" {
		t.Fatalf("expected only available items, got %+v", categories[0].Items)
	}
}

func TestPublicEventsOnlyActive(t *testing.T) {
	db := setupDB(t)
	db.Create(&models.Event{Title: "Soirée live", EventDate: "2026-10-10", Active: true})
	db.Create(&models.Event{Title: "Annulé", EventDate: "2026-10-11", Active: false})

	r := gin.New()
	h := NewEventHandler(db)
	r.GET("/events", h.List)

	w := getJSON(t, r, "/events")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if count, _ := body["count"].(float64); count != 1 {
		t.Fatalf("expected one active event, got %v", body["count"])
	}
}

func TestPublicGalleryCategoryFilter(t *testing.T) {
	db := setupDB(t)
	db.Create(&models.GalleryImage{Title: "a", Filename: "a.png", Filepath: "/assets/a.png", Category: "food", Active: true})
	db.Create(&models.GalleryImage{Title: "b", Filename: "b.png", Filepath: "/assets/b.png", Category: "interior", Active: true})
	db.Create(&models.GalleryImage{Title: "c", Filename: "c.png", Filepath: "/assets/c.png", Category: "food", Active: false})

	r := gin.New()
	h := NewGalleryHandler(db)
	r.GET("/gallery", h.List)

	w := getJSON(t, r, "/gallery?category=food")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if count, _ := body["count"].(float64); count != 1 {
		t.Fatalf("expected one active food image, got %v", body["count"])
	}
}

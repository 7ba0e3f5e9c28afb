package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/crocobrasseur/website/internal/models"
)

func setupMenuRouter(env *testEnv, admin *models.Admin) *gin.Engine {
	r := gin.New()
	h := NewMenuHandler(env.db, env.store, env.recorder)
	authed := r.Group("", asAdmin(admin))
	authed.POST("/menu/items", h.CreateItem)
	authed.PUT("/menu/items/:id", h.UpdateItem)
	authed.DELETE("/menu/items/:id", h.DeleteItem)
	return r
}

func seedCategory(t *testing.T, env *testEnv, name string) *models.MenuCategory {
	t.Helper()
	category := models.MenuCategory{Name: name, Active: true}
	if errCreate := env.db.Create(&category).Error; errCreate != nil {
		t.Fatalf("seed category: %v", errCreate)
	}
	return &category
}

func menuImagePath(env *testEnv, filename string) string {
	return filepath.Join(env.uploadDir, "images", "menu", filename)
}

func TestMenuItemCreateWithImage(t *testing.T) {
	env := setupEnv(t)
	admin := env.createAdmin(t, "alice", "pw-123456", models.RoleAdmin, true)
	r := setupMenuRouter(env, admin)
	category := seedCategory(t, env, "Plats")

	req := multipartUpload(t, http.MethodPost, "/menu/items", "image", "dish.png", "image/png",
		[]byte("dish-bytes"), map[string]string{
			"name":        "Brochettes",
			"category_id": "1",
			"price_cents": "15000",
		})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var item models.MenuItem
	if errFind := env.db.First(&item).Error; errFind != nil {
		t.Fatalf("load item: %v", errFind)
	}
	if item.CategoryID != category.ID || item.PriceCents != 15000 {
		t.Fatalf("unexpected row: %+v", item)
	}
	if item.ImageFilename == "" {
		t.Fatal("expected an image filename on the row")
	}
	content, errRead := os.ReadFile(menuImagePath(env, item.ImageFilename))
	if errRead != nil {
		t.Fatalf("read stored image: %v", errRead)
	}
	if string(content) != "dish-bytes" {
		t.Fatalf("stored bytes differ: %q", content)
	}
}

func TestMenuItemCreateRejectsUnknownCategory(t *testing.T) {
	env := setupEnv(t)
	admin := env.createAdmin(t, "alice", "pw-123456", models.RoleAdmin, true)
	r := setupMenuRouter(env, admin)

	req := multipartUpload(t, http.MethodPost, "/menu/items", "image", "dish.png", "image/png",
		[]byte("dish-bytes"), map[string]string{
			"name":        "Brochettes",
			"category_id": "42",
		})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if got := countStoredFiles(t, env.uploadDir); got != 0 {
		t.Fatalf("expected no stored files, found %d", got)
	}
}

func TestMenuItemImageReplaceDeletesPrevious(t *testing.T) {
	env := setupEnv(t)
	admin := env.createAdmin(t, "alice", "pw-123456", models.RoleAdmin, true)
	r := setupMenuRouter(env, admin)
	seedCategory(t, env, "Plats")

	req := multipartUpload(t, http.MethodPost, "/menu/items", "image", "dish.png", "image/png",
		[]byte("old-bytes"), map[string]string{
			"name":        "Brochettes",
			"category_id": "1",
		})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", w.Code, w.Body.String())
	}

	var item models.MenuItem
	if errFind := env.db.First(&item).Error; errFind != nil {
		t.Fatalf("load item: %v", errFind)
	}
	previous := item.ImageFilename

	req = multipartUpload(t, http.MethodPut, "/menu/items/1", "image", "dish2.png", "image/png",
		[]byte("new-bytes"), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", w.Code, w.Body.String())
	}

	var updated models.MenuItem
	if errFind := env.db.First(&updated, item.ID).Error; errFind != nil {
		t.Fatalf("reload item: %v", errFind)
	}
	if updated.ImageFilename == previous || updated.ImageFilename == "" {
		t.Fatalf("expected a new image filename, got %q", updated.ImageFilename)
	}

	// The row must reference exactly one live file: new present, old gone.
	if _, errStat := os.Stat(menuImagePath(env, previous)); !os.IsNotExist(errStat) {
		t.Fatalf("previous image still on disk: %v", errStat)
	}
	content, errRead := os.ReadFile(menuImagePath(env, updated.ImageFilename))
	if errRead != nil {
		t.Fatalf("read replacement image: %v", errRead)
	}
	if string(content) != "new-bytes" {
		t.Fatalf("replacement bytes differ: %q", content)
	}
	if got := countStoredFiles(t, env.uploadDir); got != 1 {
		t.Fatalf("expected exactly one stored file, found %d", got)
	}
}

func TestMenuItemUpdateWithoutImageKeepsFile(t *testing.T) {
	env := setupEnv(t)
	admin := env.createAdmin(t, "alice", "pw-123456", models.RoleAdmin, true)
	r := setupMenuRouter(env, admin)
	seedCategory(t, env, "Plats")

	req := multipartUpload(t, http.MethodPost, "/menu/items", "image", "dish.png", "image/png",
		[]byte("dish-bytes"), map[string]string{
			"name":        "Brochettes",
			"category_id": "1",
		})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", w.Code, w.Body.String())
	}
	var item models.MenuItem
	env.db.First(&item)

	req = multipartRequestNoFile(t, http.MethodPut, "/menu/items/1", map[string]string{
		"price_cents": "18000",
	})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", w.Code, w.Body.String())
	}

	var updated models.MenuItem
	env.db.First(&updated, item.ID)
	if updated.PriceCents != 18000 {
		t.Fatalf("expected price update, got %d", updated.PriceCents)
	}
	if updated.ImageFilename != item.ImageFilename {
		t.Fatalf("image filename changed without a new upload: %q", updated.ImageFilename)
	}
	if _, errStat := os.Stat(menuImagePath(env, item.ImageFilename)); errStat != nil {
		t.Fatalf("existing image removed: %v", errStat)
	}
}

func TestMenuItemDeleteRemovesImageFile(t *testing.T) {
	env := setupEnv(t)
	admin := env.createAdmin(t, "alice", "pw-123456", models.RoleAdmin, true)
	r := setupMenuRouter(env, admin)
	seedCategory(t, env, "Plats")

	req := multipartUpload(t, http.MethodPost, "/menu/items", "image", "dish.png", "image/png",
		[]byte("dish-bytes"), map[string]string{
			"name":        "Brochettes",
			"category_id": "1",
		})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/menu/items/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	env.db.Model(&models.MenuItem{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected row removed, found %d", count)
	}
	if got := countStoredFiles(t, env.uploadDir); got != 0 {
		t.Fatalf("expected image removed with the record, found %d files", got)
	}
}

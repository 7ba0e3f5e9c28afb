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

func setupVideoRouter(env *testEnv, admin *models.Admin) *gin.Engine {
	r := gin.New()
	h := NewVideoHandler(env.db, env.store, env.recorder)
	authed := r.Group("", asAdmin(admin))
	authed.POST("/videos", h.Upload)
	authed.DELETE("/videos/:id", h.Delete)
	return r
}

func TestVideoUploadSuccess(t *testing.T) {
	env := setupEnv(t)
	admin := env.createAdmin(t, "alice", "pw-123456", models.RoleAdmin, true)
	r := setupVideoRouter(env, admin)

	req := multipartUpload(t, http.MethodPost, "/videos", "video", "promo.mp4", "video/mp4",
		[]byte("mp4-bytes"), map[string]string{
			"title":      "Soirée live",
			"video_type": "promo",
		})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var video models.Video
	if errFind := env.db.First(&video).Error; errFind != nil {
		t.Fatalf("load video row: %v", errFind)
	}
	if video.Title != "Soirée live" || video.VideoType != "promo" {
		t.Fatalf("unexpected row: %+v", video)
	}

	onDisk := filepath.Join(env.uploadDir, "videos", video.Filename)
	content, errRead := os.ReadFile(onDisk)
	if errRead != nil {
		t.Fatalf("read stored video: %v", errRead)
	}
	if string(content) != "mp4-bytes" {
		t.Fatalf("stored bytes differ: %q", content)
	}
}

func TestVideoUploadRejectsNonVideoMIME(t *testing.T) {
	env := setupEnv(t)
	admin := env.createAdmin(t, "alice", "pw-123456", models.RoleAdmin, true)
	r := setupVideoRouter(env, admin)

	// Allowed extension, wrong declared MIME type.
	req := multipartUpload(t, http.MethodPost, "/videos", "video", "promo.mp4", "image/png",
		[]byte("not-a-video"), map[string]string{"title": "x"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if got := countStoredFiles(t, env.uploadDir); got != 0 {
		t.Fatalf("expected no stored files, found %d", got)
	}
}

func TestVideoUploadMissingTitleCleansFile(t *testing.T) {
	env := setupEnv(t)
	admin := env.createAdmin(t, "alice", "pw-123456", models.RoleAdmin, true)
	r := setupVideoRouter(env, admin)

	req := multipartUpload(t, http.MethodPost, "/videos", "video", "promo.mp4", "video/mp4",
		[]byte("mp4-bytes"), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if got := countStoredFiles(t, env.uploadDir); got != 0 {
		t.Fatalf("expected no stored files after rejection, found %d", got)
	}
}

func TestVideoDeleteRemovesRecordThenFile(t *testing.T) {
	env := setupEnv(t)
	admin := env.createAdmin(t, "alice", "pw-123456", models.RoleAdmin, true)
	r := setupVideoRouter(env, admin)

	req := multipartUpload(t, http.MethodPost, "/videos", "video", "promo.mp4", "video/mp4",
		[]byte("mp4-bytes"), map[string]string{"title": "Soirée live"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("upload failed: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/videos/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	env.db.Model(&models.Video{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected row removed, found %d", count)
	}
	if got := countStoredFiles(t, env.uploadDir); got != 0 {
		t.Fatalf("expected file removed, found %d files", got)
	}
}

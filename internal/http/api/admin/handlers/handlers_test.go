package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/crocobrasseur/website/internal/audit"
	webhttp "github.com/crocobrasseur/website/internal/http"
	"github.com/crocobrasseur/website/internal/models"
	"github.com/crocobrasseur/website/internal/security"
	"github.com/crocobrasseur/website/internal/upload"
)

const testSecret = "handlers-test-secret"

type testEnv struct {
	db        *gorm.DB
	store     *upload.Store
	uploadDir string
	recorder  *audit.Recorder
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handlers_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	errMigrate := db.AutoMigrate(
		&models.Admin{}, &models.ActivityLog{},
		&models.GalleryImage{}, &models.Video{},
		&models.MenuCategory{}, &models.MenuItem{},
		&models.Reservation{},
	)
	if errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}

	dir := t.TempDir()
	return &testEnv{
		db:        db,
		store:     upload.NewStore(dir, "/assets"),
		uploadDir: dir,
		recorder:  audit.NewRecorder(db),
	}
}

func (env *testEnv) createAdmin(t *testing.T, username, password, role string, active bool) *models.Admin {
	t.Helper()
	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		t.Fatalf("hash password: %v", errHash)
	}
	admin := models.Admin{
		Username: username,
		Password: hash,
		Email:    username + "@example.com",
		Role:     role,
		Active:   active,
	}
	if errCreate := env.db.Create(&admin).Error; errCreate != nil {
		t.Fatalf("create admin: %v", errCreate)
	}
	return &admin
}

// asAdmin injects the context keys the auth middleware would set, so
// handler behavior can be exercised without a real token round-trip.
func asAdmin(admin *models.Admin) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &security.AdminClaims{
			AdminID:  admin.ID,
			Username: admin.Username,
			Email:    admin.Email,
			Role:     admin.Role,
		}
		c.Set(webhttp.ContextClaims, claims)
		c.Set(webhttp.ContextAdmin, admin)
		c.Next()
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, errMarshal := json.Marshal(body)
		if errMarshal != nil {
			t.Fatalf("marshal body: %v", errMarshal)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if errDecode := json.Unmarshal(w.Body.Bytes(), &body); errDecode != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), errDecode)
	}
	return body
}

// multipartUpload builds a multipart request with one file field plus
// plain form fields.
func multipartUpload(t *testing.T, method, target, fileField, filename, contentType string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, filename))
	header.Set("Content-Type", contentType)
	part, errCreate := mw.CreatePart(header)
	if errCreate != nil {
		t.Fatalf("create part: %v", errCreate)
	}
	if _, errWrite := part.Write(content); errWrite != nil {
		t.Fatalf("write part: %v", errWrite)
	}
	for key, value := range fields {
		if errField := mw.WriteField(key, value); errField != nil {
			t.Fatalf("write field: %v", errField)
		}
	}
	if errClose := mw.Close(); errClose != nil {
		t.Fatalf("close writer: %v", errClose)
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// multipartRequestNoFile builds a multipart request with form fields only.
func multipartRequestNoFile(t *testing.T, method, target string, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		if errField := mw.WriteField(key, value); errField != nil {
			t.Fatalf("write field: %v", errField)
		}
	}
	if errClose := mw.Close(); errClose != nil {
		t.Fatalf("close writer: %v", errClose)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

// countStoredFiles walks the upload dir and counts regular files.
func countStoredFiles(t *testing.T, dir string) int {
	t.Helper()
	count := 0
	errWalk := filepath.WalkDir(dir, func(_ string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	if errWalk != nil {
		t.Fatalf("walk upload dir: %v", errWalk)
	}
	return count
}

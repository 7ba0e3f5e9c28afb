package upload

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// ValidationError marks an upload rejected for a client-caused reason
// (disallowed type or size). Everything else is an I/O fault.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidationError reports whether err is a client-caused upload rejection.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Class describes an asset class and its upload constraints.
type Class struct {
	Name       string   // Class identifier.
	Prefix     string   // Generated filename prefix.
	Subdir     string   // Directory under the store root.
	MaxBytes   int64    // Maximum accepted file size.
	Extensions []string // Allowed extensions, lowercase, no dot.
	// VideoMIME requires the declared MIME type to start with "video/".
	// When false the MIME subtype must be in Extensions.
	VideoMIME bool
	// Kinds appears in the rejection message.
	Kinds string
}

// Asset classes accepted by the pipeline.
var (
	GalleryImage = Class{
		Name:       "gallery",
		Prefix:     "img",
		Subdir:     "images/gallery",
		MaxBytes:   10 << 20,
		Extensions: []string{"jpeg", "jpg", "png", "gif", "webp"},
		Kinds:      "images (jpeg, jpg, png, gif, webp)",
	}
	MenuImage = Class{
		Name:       "menu",
		Prefix:     "menu",
		Subdir:     "images/menu",
		MaxBytes:   5 << 20,
		Extensions: []string{"jpeg", "jpg", "png", "webp"},
		Kinds:      "images (jpeg, jpg, png, webp)",
	}
	Video = Class{
		Name:       "video",
		Prefix:     "video",
		Subdir:     "videos",
		MaxBytes:   100 << 20,
		Extensions: []string{"mp4", "mpeg", "avi", "mov", "wmv", "webm"},
		VideoMIME:  true,
		Kinds:      "videos (mp4, mpeg, avi, mov, wmv, webm)",
	}
)

// allows checks the extension and declared MIME type against the class
// allow-list. Both must pass.
func (c Class) allows(ext, mimeType string) bool {
	ext = strings.ToLower(ext)
	extOK := false
	for _, allowed := range c.Extensions {
		if ext == allowed {
			extOK = true
			break
		}
	}
	if !extOK {
		return false
	}

	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if c.VideoMIME {
		return strings.HasPrefix(mimeType, "video/")
	}
	subtype := strings.TrimPrefix(mimeType, "image/")
	if subtype == mimeType {
		return false
	}
	for _, allowed := range c.Extensions {
		if subtype == allowed {
			return true
		}
	}
	return false
}

// StoredFile describes a successfully persisted upload.
type StoredFile struct {
	Filename   string // Generated unique filename.
	PublicPath string // Public-facing relative path.
	DiskPath   string // Absolute location on disk.
}

// Store persists uploads under a root directory and exposes them at a
// public base path.
type Store struct {
	root       string
	publicBase string
}

// NewStore constructs a Store rooted at dir, served under publicBase.
func NewStore(dir, publicBase string) *Store {
	return &Store{root: dir, publicBase: publicBase}
}

// SaveMultipart validates and persists a multipart upload.
func (s *Store) SaveMultipart(fh *multipart.FileHeader, class Class) (*StoredFile, error) {
	if fh == nil {
		return nil, &ValidationError{Message: "no file provided"}
	}
	src, errOpen := fh.Open()
	if errOpen != nil {
		return nil, fmt.Errorf("upload: open multipart file: %w", errOpen)
	}
	defer func() { _ = src.Close() }()

	return s.Save(src, fh.Size, fh.Filename, fh.Header.Get("Content-Type"), class)
}

// Save validates the file against the class constraints and streams it to
// disk under a generated unique name. Any failure after a partial write
// removes the partial file before returning.
func (s *Store) Save(src io.Reader, size int64, originalName, mimeType string, class Class) (*StoredFile, error) {
	if size > class.MaxBytes {
		return nil, &ValidationError{
			Message: fmt.Sprintf("file exceeds the %d MB limit", class.MaxBytes>>20),
		}
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(originalName)), ".")
	if !class.allows(ext, mimeType) {
		return nil, &ValidationError{
			Message: fmt.Sprintf("only %s are allowed", class.Kinds),
		}
	}

	dir := filepath.Join(s.root, filepath.FromSlash(class.Subdir))
	if errMkdir := os.MkdirAll(dir, 0755); errMkdir != nil {
		return nil, fmt.Errorf("upload: create dir: %w", errMkdir)
	}

	// O_EXCL makes a same-millisecond name collision a retry instead of an
	// overwrite.
	var dst *os.File
	var filename string
	for attempt := 0; ; attempt++ {
		filename = generateFilename(class.Prefix, ext)
		file, errCreate := os.OpenFile(filepath.Join(dir, filename), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errCreate == nil {
			dst = file
			break
		}
		if !errors.Is(errCreate, os.ErrExist) || attempt >= 5 {
			return nil, fmt.Errorf("upload: create file: %w", errCreate)
		}
	}
	diskPath := dst.Name()

	written, errCopy := io.Copy(dst, io.LimitReader(src, class.MaxBytes+1))
	errClose := dst.Close()
	switch {
	case errCopy != nil:
		s.discard(diskPath)
		return nil, fmt.Errorf("upload: write file: %w", errCopy)
	case errClose != nil:
		s.discard(diskPath)
		return nil, fmt.Errorf("upload: close file: %w", errClose)
	case written > class.MaxBytes:
		// Declared size lied; treat as a validation failure.
		s.discard(diskPath)
		return nil, &ValidationError{
			Message: fmt.Sprintf("file exceeds the %d MB limit", class.MaxBytes>>20),
		}
	}

	return &StoredFile{
		Filename:   filename,
		PublicPath: path.Join(s.publicBase, class.Subdir, filename),
		DiskPath:   diskPath,
	}, nil
}

// Remove deletes a stored file as compensating cleanup. Failures are
// logged and swallowed; the caller's primary error always wins.
func (s *Store) Remove(class Class, filename string) {
	if strings.TrimSpace(filename) == "" {
		return
	}
	diskPath := filepath.Join(s.root, filepath.FromSlash(class.Subdir), filepath.Base(filename))
	s.discard(diskPath)
}

func (s *Store) discard(diskPath string) {
	if errRemove := os.Remove(diskPath); errRemove != nil && !os.IsNotExist(errRemove) {
		log.WithError(errRemove).Warnf("cleanup failed for %s", diskPath)
	}
}

// generateFilename builds "<prefix>-<millis>-<random>.<ext>": sortable by
// upload time, collision-resistant within the same millisecond.
func generateFilename(prefix, ext string) string {
	return fmt.Sprintf("%s-%d-%d.%s", prefix, time.Now().UnixMilli(), rand.Int63n(1_000_000_000), ext)
}

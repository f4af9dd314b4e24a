package storage

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"artifolio/config"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
)

// Kind is a family of uploads sharing a directory and an extension whitelist.
type Kind struct {
	Dir        string
	Extensions map[string]bool
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var (
	FinalImages    = Kind{Dir: "artworks/final", Extensions: imageExtensions}
	ProgressPhotos = Kind{Dir: "artworks/progress", Extensions: imageExtensions}
	Timelapses     = Kind{Dir: "artworks/timelapses", Extensions: map[string]bool{
		".mp4":  true,
		".webm": true,
		".mov":  true,
	}}
)

func maxFileSize() int64 {
	return int64(config.MAX_UPLOAD_MB) * 1024 * 1024
}

// Check validates an upload without touching the disk.
func Check(kind Kind, fh *multipart.FileHeader) error {
	if fh == nil {
		return nil
	}
	if fh.Size > maxFileSize() {
		return fmt.Errorf("%w: %s exceeds %dMB", ErrTooLarge, fh.Filename, config.MAX_UPLOAD_MB)
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !kind.Extensions[ext] {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, fh.Filename)
	}
	return nil
}

// Save copies the upload under UPLOAD_DIR and returns its slash-separated relative path.
func Save(kind Kind, fh *multipart.FileHeader) (string, error) {
	if err := Check(kind, fh); err != nil {
		return "", err
	}

	dir := filepath.Join(config.UPLOAD_DIR, filepath.FromSlash(kind.Dir))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(dst.Name())
		return "", err
	}

	return path.Join(kind.Dir, name), nil
}

// Remove deletes stored files; failures are logged and otherwise ignored.
func Remove(paths ...string) {
	for _, p := range paths {
		if p == "" || strings.Contains(p, "..") {
			continue
		}
		if err := os.Remove(filepath.Join(config.UPLOAD_DIR, filepath.FromSlash(p))); err != nil && !os.IsNotExist(err) {
			log.Printf("storage: failed to remove %s: %v", p, err)
		}
	}
}

// URL is the public path a stored file is served under.
func URL(p string) string {
	if p == "" {
		return ""
	}
	return "/uploads/" + p
}

package utils

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Upload-middleware errors, surfaced to clients as 400 responses.
var (
	ErrTooManyFiles = errors.New("Too many files uploaded")
	ErrFileTooLarge = errors.New("File too large")
	ErrNotImage     = errors.New("Only image files are allowed!")
)

type UploadLimits struct {
	MaxFiles int
	MaxSize  int64
}

// SaveUploadedImages writes every file under the "images" form field into
// destDir and returns the stored filenames. Filenames are made unique with a
// millisecond timestamp plus a random id so concurrent uploads never collide.
func SaveUploadedImages(form *multipart.Form, destDir, prefix string, limits UploadLimits) ([]string, error) {
	if form == nil {
		return nil, nil
	}

	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	if limits.MaxFiles > 0 && len(files) > limits.MaxFiles {
		return nil, ErrTooManyFiles
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(files))
	for _, fh := range files {
		if limits.MaxSize > 0 && fh.Size > limits.MaxSize {
			return nil, ErrFileTooLarge
		}
		if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
			return nil, ErrNotImage
		}

		name := fmt.Sprintf("%s-%d-%s%s", prefix, time.Now().UnixMilli(), uuid.NewString(), filepath.Ext(fh.Filename))
		if err := saveFile(fh, filepath.Join(destDir, name)); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func saveFile(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}

// RemoveImageFile deletes a stored image by its recorded path. Cleanup is
// best-effort: a missing file is not an error and other failures are logged
// and swallowed.
func RemoveImageFile(storedPath string) {
	p := filepath.FromSlash(strings.TrimPrefix(storedPath, "/"))
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to remove image %s: %v", storedPath, err)
	}
}

package utils

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFile struct {
	name    string
	mime    string
	content []byte
}

func makeForm(t *testing.T, files ...testFile) *multipart.Form {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, f.name))
		h.Set("Content-Type", f.mime)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}

func TestSaveUploadedImages(t *testing.T) {
	dir := t.TempDir()
	limits := UploadLimits{MaxFiles: 2, MaxSize: 1 << 10}

	form := makeForm(t,
		testFile{"a.jpg", "image/jpeg", []byte("jpeg-bytes")},
		testFile{"b.png", "image/png", []byte("png-bytes")},
	)

	names, err := SaveUploadedImages(form, dir, "images", limits)
	require.NoError(t, err)
	require.Len(t, names, 2)

	assert.True(t, strings.HasPrefix(names[0], "images-"))
	assert.Equal(t, ".jpg", filepath.Ext(names[0]))
	assert.Equal(t, ".png", filepath.Ext(names[1]))
	assert.NotEqual(t, names[0], names[1])

	data, err := os.ReadFile(filepath.Join(dir, names[0]))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)
}

func TestSaveUploadedImages_Limits(t *testing.T) {
	dir := t.TempDir()

	t.Run("too many files", func(t *testing.T) {
		form := makeForm(t,
			testFile{"a.jpg", "image/jpeg", []byte("x")},
			testFile{"b.jpg", "image/jpeg", []byte("x")},
		)
		_, err := SaveUploadedImages(form, dir, "images", UploadLimits{MaxFiles: 1, MaxSize: 1 << 10})
		assert.ErrorIs(t, err, ErrTooManyFiles)
	})

	t.Run("file too large", func(t *testing.T) {
		form := makeForm(t, testFile{"a.jpg", "image/jpeg", bytes.Repeat([]byte("x"), 64)})
		_, err := SaveUploadedImages(form, dir, "images", UploadLimits{MaxFiles: 5, MaxSize: 16})
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("non-image MIME", func(t *testing.T) {
		form := makeForm(t, testFile{"a.pdf", "application/pdf", []byte("x")})
		_, err := SaveUploadedImages(form, dir, "images", UploadLimits{MaxFiles: 5, MaxSize: 1 << 10})
		assert.ErrorIs(t, err, ErrNotImage)
	})

	t.Run("no form means no files", func(t *testing.T) {
		names, err := SaveUploadedImages(nil, dir, "images", UploadLimits{MaxFiles: 5, MaxSize: 1 << 10})
		assert.NoError(t, err)
		assert.Empty(t, names)
	})
}

func TestRemoveImageFile(t *testing.T) {
	// Stored paths are resolved relative to the working directory, with or
	// without a leading slash.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	require.NoError(t, os.MkdirAll("uploads/users", 0o755))
	require.NoError(t, os.WriteFile("uploads/users/user-1.jpg", []byte("x"), 0o644))

	RemoveImageFile("/uploads/users/user-1.jpg")
	_, err = os.Stat("uploads/users/user-1.jpg")
	assert.True(t, os.IsNotExist(err))

	// Absent files are not an error.
	RemoveImageFile("/uploads/users/user-1.jpg")
	RemoveImageFile("uploads/missing.jpg")
}

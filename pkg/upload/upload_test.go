package upload_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/plinth/pkg/upload"
)

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := httptest.NewRequest(http.MethodPost, "/", &body)
	r.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, r.ParseMultipartForm(32<<20))
	return r
}

func TestFile_Accessors(t *testing.T) {
	t.Parallel()

	content := []byte("%PDF-1.4 fake document body")
	r := multipartRequest(t, "doc", "report.PDF", content)

	f := upload.New(r.MultipartForm.File["doc"][0])

	assert.True(t, f.Exists())
	assert.Equal(t, "report.PDF", f.Filename())
	assert.Equal(t, "pdf", f.Extension())
	assert.Equal(t, int64(len(content)), f.Size())
	assert.NotNil(t, f.Descriptor())

	data, err := f.Bytes()
	require.NoError(t, err)
	assert.Equal(t, content, data)
}

func TestFile_ContentTypeFromMagicBytes(t *testing.T) {
	t.Parallel()

	// PNG magic bytes; filename lies about the type.
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	r := multipartRequest(t, "img", "photo.txt", png)

	f := upload.New(r.MultipartForm.File["img"][0])
	assert.Equal(t, "image/png", f.ContentType())
}

func TestFile_FilenameStripsPath(t *testing.T) {
	t.Parallel()

	r := multipartRequest(t, "f", "../../etc/passwd", []byte("x"))
	f := upload.New(r.MultipartForm.File["f"][0])
	assert.Equal(t, "passwd", f.Filename())
}

func TestFile_Empty(t *testing.T) {
	t.Parallel()

	f := upload.Empty()

	assert.False(t, f.Exists())
	assert.Empty(t, f.Filename())
	assert.Empty(t, f.Extension())
	assert.Zero(t, f.Size())
	assert.Empty(t, f.ContentType())
	assert.Nil(t, f.Descriptor())

	_, err := f.Open()
	assert.ErrorIs(t, err, upload.ErrNoFile)

	_, err = f.Bytes()
	assert.ErrorIs(t, err, upload.ErrNoFile)
}

func TestFile_NilHeader(t *testing.T) {
	t.Parallel()

	f := upload.New(nil)
	assert.False(t, f.Exists())

	var nilFile *upload.File
	assert.False(t, nilFile.Exists())
	assert.Empty(t, nilFile.Filename())
}

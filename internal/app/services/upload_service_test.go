package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/pkg/apperrors"
	"github.com/yigit/campusportal/internal/pkg/filestorage"
	"github.com/yigit/campusportal/internal/pkg/media"
)

// fileHeader builds a parsed multipart file the way gin hands it to controllers
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newUploadService(t *testing.T) (UploadService, *filestorage.LocalStorage) {
	t.Helper()
	storage, err := filestorage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)
	svc := NewUploadService(storage, 1<<20, media.Options{MaxWidth: 64, MaxHeight: 64, JPEGQuality: 85}, newFixture(t).log)
	return svc, storage
}

func TestUploadService_Image(t *testing.T) {
	svc, storage := newUploadService(t)

	resp, err := svc.UploadImage(context.Background(), fileHeader(t, "banner.png", pngBytes(t, 200, 100)))
	require.NoError(t, err)
	assert.True(t, resp.Resized)
	assert.Equal(t, "image/png", resp.MimeType)
	assert.Contains(t, resp.URL, "http://localhost:8080/uploads/images/")
	assert.FileExists(t, storage.FullPath(resp.URL))

	small, err := svc.UploadImage(context.Background(), fileHeader(t, "icon.png", pngBytes(t, 16, 16)))
	require.NoError(t, err)
	assert.False(t, small.Resized)
}

func TestUploadService_Rejections(t *testing.T) {
	svc, _ := newUploadService(t)

	_, err := svc.UploadImage(context.Background(), fileHeader(t, "notes.txt", []byte("plain text, not an image")))
	requireAppError(t, err, apperrors.ErrValidationFailed, MsgFileUnsupported)

	_, err = svc.UploadImage(context.Background(), nil)
	requireAppError(t, err, apperrors.ErrValidationFailed, MsgFileRequired)

	_, err = svc.UploadDocument(context.Background(), fileHeader(t, "big.pdf", append([]byte("%PDF-1.4\n"), make([]byte, 2<<20)...)))
	requireAppError(t, err, apperrors.ErrValidationFailed, MsgFileTooLarge)
}

func TestUploadService_Document(t *testing.T) {
	svc, _ := newUploadService(t)

	resp, err := svc.UploadDocument(context.Background(), fileHeader(t, "q3.pdf", []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", resp.MimeType)
	assert.Contains(t, resp.URL, "/uploads/documents/")
	assert.IsType(t, &dto.UploadResponse{}, resp)
}

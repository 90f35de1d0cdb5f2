package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gabriel-vasile/mimetype"
)

// Accepted upload types
var (
	ImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

	DocumentTypes = []string{
		"application/pdf",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/msword",
		"text/csv",
		"image/jpeg",
		"image/png",
	}
)

// Upload is a fully read upload with its sniffed type
type Upload struct {
	Filename  string
	Data      []byte
	MimeType  string
	Extension string
}

// ReadUpload reads at most maxBytes of the uploaded file and detects its
// content type from the bytes, not from the client's header.
func ReadUpload(fileHeader *multipart.FileHeader, maxBytes int64, allowed []string) (*Upload, error) {
	if fileHeader == nil || fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if maxBytes > 0 && fileHeader.Size > maxBytes {
		return nil, ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	reader := io.Reader(file)
	if maxBytes > 0 {
		reader = io.LimitReader(file, maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, ErrFileTooLarge
	}

	mime, ok := Detect(data, allowed)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mime.String())
	}

	return &Upload{
		Filename:  fileHeader.Filename,
		Data:      data,
		MimeType:  mime.String(),
		Extension: mime.Extension(),
	}, nil
}

// Detect sniffs data and reports whether it is one of allowed
func Detect(data []byte, allowed []string) (*mimetype.MIME, bool) {
	mime := mimetype.Detect(data)
	for _, a := range allowed {
		if mime.Is(a) {
			return mime, true
		}
	}
	return mime, false
}

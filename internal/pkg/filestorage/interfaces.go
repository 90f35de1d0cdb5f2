package filestorage

import (
	"errors"
	"io"
)

// Upload errors
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrEmptyFile       = errors.New("empty file")
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Save stores the content under subPath with a generated name and returns its public URL
	Save(subPath, ext string, content io.Reader) (string, error)

	// Delete removes a previously saved file given its URL
	Delete(fileURL string) error

	// FullPath returns the filesystem path for a given file URL
	FullPath(fileURL string) string
}

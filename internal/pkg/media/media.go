// Package media normalises uploaded images before they are stored.
package media

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// Options bounds stored images
type Options struct {
	MaxWidth    int
	MaxHeight   int
	JPEGQuality int
}

// Normalize fits JPEG and PNG images into the configured box, applying EXIF
// orientation. Other types and images already inside the box are returned
// unchanged. The second result reports whether the image was re-encoded.
func Normalize(data []byte, mimeType string, opts Options) ([]byte, bool, error) {
	var format imaging.Format
	switch mimeType {
	case "image/jpeg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	default:
		return data, false, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if (opts.MaxWidth <= 0 || bounds.Dx() <= opts.MaxWidth) && (opts.MaxHeight <= 0 || bounds.Dy() <= opts.MaxHeight) {
		return data, false, nil
	}

	maxW, maxH := opts.MaxWidth, opts.MaxHeight
	if maxW <= 0 {
		maxW = bounds.Dx()
	}
	if maxH <= 0 {
		maxH = bounds.Dy()
	}
	resized := imaging.Fit(img, maxW, maxH, imaging.Lanczos)

	quality := opts.JPEGQuality
	if quality <= 0 {
		quality = 85
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(quality)); err != nil {
		return nil, false, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), true, nil
}

// Package media stores uploaded images and hands back a public reference.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrNotImage is returned for uploads whose content is not an image.
var ErrNotImage = errors.New("file is not an image")

// ErrTooLarge is returned when an upload exceeds the configured limit.
var ErrTooLarge = errors.New("file is too large")

// File is an image waiting to be uploaded.
type File struct {
	Filename string
	Body     io.Reader
}

// Uploader persists an image and returns a stable public reference (a URL or
// a host-specific identifier).
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}

// UploadError wraps any failure from an Uploader.
type UploadError struct {
	Provider string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s upload: %v", e.Provider, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// sniffHeader is how many bytes mimetype needs to recognise image formats.
const sniffHeader = 3072

// readImage reads at most limit bytes of f and checks that they are an image.
// It returns the bytes and the detected MIME type.
func readImage(f File, limit int64) ([]byte, *mimetype.MIME, error) {
	if f.Body == nil {
		return nil, nil, fmt.Errorf("empty upload")
	}
	data, err := io.ReadAll(io.LimitReader(f.Body, limit+1))
	if err != nil {
		return nil, nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, nil, ErrTooLarge
	}
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("empty upload")
	}
	mime := mimetype.Detect(data[:min(len(data), sniffHeader)])
	if !isImage(mime) {
		return nil, nil, fmt.Errorf("%w (%s)", ErrNotImage, mime.String())
	}
	return data, mime, nil
}

func isImage(mime *mimetype.MIME) bool {
	for m := mime; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return true
		}
	}
	return false
}

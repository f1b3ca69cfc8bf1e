package media

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// Local writes images to a directory served by the site itself.
type Local struct {
	Dir        string
	PublicPath string
	MaxBytes   int64
}

func NewLocal(dir, publicPath string, maxBytes int64) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{Dir: dir, PublicPath: publicPath, MaxBytes: maxBytes}, nil
}

func (l *Local) Upload(ctx context.Context, f File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &UploadError{Provider: "local", Err: err}
	}
	data, mime, err := readImage(f, l.MaxBytes)
	if err != nil {
		return "", &UploadError{Provider: "local", Err: err}
	}

	name := uuid.NewString() + mime.Extension()
	if err := os.WriteFile(filepath.Join(l.Dir, name), data, 0o644); err != nil {
		return "", &UploadError{Provider: "local", Err: err}
	}
	return path.Join(l.PublicPath, name), nil
}

package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// Cloudinary uploads signed with the account's API key and returns the
// secure URL of the stored image. An upload preset is applied when set.
type Cloudinary struct {
	UploadPreset string
	MaxBytes     int64
	Timeout      time.Duration

	cld *cloudinary.Cloudinary
}

// NewCloudinary builds the client. uploadPrefix overrides the API host and
// is empty outside tests.
func NewCloudinary(cloudName, apiKey, apiSecret, uploadPreset, uploadPrefix string, maxBytes int64, timeout time.Duration) (*Cloudinary, error) {
	conf, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config: %w", err)
	}
	if uploadPrefix != "" {
		conf.API.UploadPrefix = uploadPrefix
	}
	cld, err := cloudinary.NewFromConfiguration(*conf)
	if err != nil {
		return nil, fmt.Errorf("cloudinary client: %w", err)
	}
	return &Cloudinary{UploadPreset: uploadPreset, MaxBytes: maxBytes, Timeout: timeout, cld: cld}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, f File) (string, error) {
	data, _, err := readImage(f, c.MaxBytes)
	if err != nil {
		return "", &UploadError{Provider: "cloudinary", Err: err}
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	res, err := c.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		UploadPreset: c.UploadPreset,
	})
	if err != nil {
		return "", &UploadError{Provider: "cloudinary", Err: err}
	}
	if res.Error.Message != "" {
		return "", &UploadError{Provider: "cloudinary", Err: errors.New(res.Error.Message)}
	}
	if res.SecureURL == "" {
		return "", &UploadError{Provider: "cloudinary", Err: errors.New("response has no secure_url")}
	}
	return res.SecureURL, nil
}

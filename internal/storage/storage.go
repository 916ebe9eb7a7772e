package storage

import (
	"context"
	"fmt"
	"io"

	"log-journal-system/internal/config"
)

// MediaStore persists uploaded media and hands back the URL it is served
// from. The URL is opaque to callers; Remove accepts only URLs from Save.
type MediaStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error)
	Remove(ctx context.Context, url string) error
}

// FromConfig builds the backend selected by MEDIA_BACKEND.
func FromConfig(ctx context.Context, cfg *config.Config) (MediaStore, error) {
	switch cfg.MediaBackend {
	case "", "disk":
		return NewDiskStore(cfg.UploadDir, DefaultURLPrefix), nil
	case "s3":
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown media backend %q", cfg.MediaBackend)
	}
}

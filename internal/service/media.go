package service

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"log-journal-system/internal/storage"

	"github.com/google/uuid"
)

// MediaField is the multipart field carrying the optional upload.
const MediaField = "media"

const (
	msgWrongType    = "Error: Images/Videos Only!"
	msgTooLarge     = "File too large"
	msgTooManyFiles = "Error: only one media file is allowed"
)

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".mp4":  true,
	".mov":  true,
	".avi":  true,
}

var allowedMIMETypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/gif":       true,
	"video/mp4":       true,
	"video/quicktime": true,
	"video/x-msvideo": true,
	"video/avi":       true,
	"video/msvideo":   true,
}

// MediaIntake validates an uploaded file and hands it to a MediaStore.
type MediaIntake struct {
	store   storage.MediaStore
	maxSize int64
	now     func() time.Time
}

func NewMediaIntake(store storage.MediaStore, maxSize int64) *MediaIntake {
	return &MediaIntake{store: store, maxSize: maxSize, now: time.Now}
}

// Validate checks the size, extension and declared MIME type of fh.
func (m *MediaIntake) Validate(fh *multipart.FileHeader) error {
	if fh.Size > m.maxSize {
		return &ValidationError{Msg: msgTooLarge}
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(fh.Filename))] {
		return &ValidationError{Msg: msgWrongType}
	}
	if !allowedMIMETypes[declaredType(fh)] {
		return &ValidationError{Msg: msgWrongType}
	}
	return nil
}

// Accept stores the file attached under MediaField, if any, and returns
// its URL. A form without a file yields nil and no error.
func (m *MediaIntake) Accept(ctx context.Context, form *multipart.Form) (*string, error) {
	if form == nil {
		return nil, nil
	}
	files := form.File[MediaField]
	switch len(files) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, &ValidationError{Msg: msgTooManyFiles}
	}

	fh := files[0]
	if err := m.Validate(fh); err != nil {
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer f.Close()

	url, err := m.store.Save(ctx, m.fileName(fh.Filename), declaredType(fh), f, fh.Size)
	if err != nil {
		return nil, fmt.Errorf("store media: %w", err)
	}
	return &url, nil
}

// Discard removes media stored by Accept whose log was never written.
func (m *MediaIntake) Discard(ctx context.Context, url string) error {
	return m.store.Remove(ctx, url)
}

func (m *MediaIntake) fileName(original string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s%s", MediaField, m.now().UnixMilli(), suffix, filepath.Ext(original))
}

func declaredType(fh *multipart.FileHeader) string {
	mediaType, _, err := mime.ParseMediaType(fh.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return strings.ToLower(mediaType)
}

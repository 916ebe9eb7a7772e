package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"log-journal-system/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upload struct {
	field       string
	filename    string
	contentType string
	body        []byte
}

func buildForm(t *testing.T, uploads ...upload) *multipart.Form {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("type", "daily"))
	for _, u := range uploads {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, u.field, u.filename))
		h.Set("Content-Type", u.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(u.body)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form
}

func newTestIntake(t *testing.T, maxSize int64) (*MediaIntake, string) {
	t.Helper()
	dir := t.TempDir()
	intake := NewMediaIntake(storage.NewDiskStore(dir, storage.DefaultURLPrefix), maxSize)
	intake.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return intake, dir
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestMediaIntakeAccept(t *testing.T) {
	tests := []struct {
		name        string
		upload      upload
		wantErr     string
		wantSuffix  string
		wantStorage bool
	}{
		{
			name:        "png",
			upload:      upload{MediaField, "photo.png", "image/png", []byte("png")},
			wantSuffix:  ".png",
			wantStorage: true,
		},
		{
			name:        "upper_case_jpeg",
			upload:      upload{MediaField, "IMG_0001.JPG", "image/jpeg", []byte("jpg")},
			wantSuffix:  ".JPG",
			wantStorage: true,
		},
		{
			name:        "quicktime",
			upload:      upload{MediaField, "clip.mov", "video/quicktime", []byte("mov")},
			wantSuffix:  ".mov",
			wantStorage: true,
		},
		{
			name:    "executable",
			upload:  upload{MediaField, "script.exe", "application/octet-stream", []byte("MZ")},
			wantErr: msgWrongType,
		},
		{
			name:    "good_extension_bad_mime",
			upload:  upload{MediaField, "photo.png", "application/octet-stream", []byte("png")},
			wantErr: msgWrongType,
		},
		{
			name:    "good_mime_bad_extension",
			upload:  upload{MediaField, "photo.svg", "image/png", []byte("png")},
			wantErr: msgWrongType,
		},
		{
			name:    "too_large",
			upload:  upload{MediaField, "big.mp4", "video/mp4", bytes.Repeat([]byte("x"), 65)},
			wantErr: msgTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intake, dir := newTestIntake(t, 64)
			url, err := intake.Accept(context.Background(), buildForm(t, tt.upload))

			if tt.wantErr != "" {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantErr, verr.Msg)
				assert.Nil(t, url)
				assert.Empty(t, listDir(t, dir))
				return
			}

			require.NoError(t, err)
			require.NotNil(t, url)
			assert.True(t, strings.HasPrefix(*url, "/uploads/media-1700000000000-"), *url)
			assert.True(t, strings.HasSuffix(*url, tt.wantSuffix), *url)

			stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(*url, "/uploads/")))
			require.NoError(t, err)
			assert.Equal(t, tt.upload.body, stored)
		})
	}
}

func TestMediaIntakeWithoutFile(t *testing.T) {
	intake, dir := newTestIntake(t, 64)

	url, err := intake.Accept(context.Background(), buildForm(t))
	require.NoError(t, err)
	assert.Nil(t, url)

	url, err = intake.Accept(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, url)
	assert.Empty(t, listDir(t, dir))
}

func TestMediaIntakeSingleFileOnly(t *testing.T) {
	intake, dir := newTestIntake(t, 64)
	form := buildForm(t,
		upload{MediaField, "a.png", "image/png", []byte("a")},
		upload{MediaField, "b.png", "image/png", []byte("b")},
	)

	_, err := intake.Accept(context.Background(), form)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, msgTooManyFiles, verr.Msg)
	assert.Empty(t, listDir(t, dir))
}

func TestMediaIntakeNamesAreUnique(t *testing.T) {
	intake, _ := newTestIntake(t, 64)
	form := buildForm(t, upload{MediaField, "photo.gif", "image/gif", []byte("gif")})

	first, err := intake.Accept(context.Background(), form)
	require.NoError(t, err)
	second, err := intake.Accept(context.Background(), form)
	require.NoError(t, err)

	assert.NotEqual(t, *first, *second)
}

func TestMediaIntakeDiscard(t *testing.T) {
	intake, dir := newTestIntake(t, 64)
	url, err := intake.Accept(context.Background(), buildForm(t, upload{MediaField, "p.png", "image/png", []byte("p")}))
	require.NoError(t, err)
	require.Len(t, listDir(t, dir), 1)

	require.NoError(t, intake.Discard(context.Background(), *url))
	assert.Empty(t, listDir(t, dir))
}

func TestMediaIntakeUnreadableUploadIsNotValidation(t *testing.T) {
	intake, dir := newTestIntake(t, 64)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Type", "image/png")
	// no in-memory content and no temp file behind it
	form := &multipart.Form{File: map[string][]*multipart.FileHeader{
		MediaField: {{Filename: "photo.png", Header: h, Size: 3}},
	}}

	url, err := intake.Accept(context.Background(), form)
	require.Error(t, err)
	assert.Nil(t, url)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
	assert.Empty(t, listDir(t, dir))
}

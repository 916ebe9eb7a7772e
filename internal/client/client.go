package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"log-journal-system/internal/model"
)

// Client talks to the log API over HTTP.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: http.DefaultClient}
}

// APIError is a non-success response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// CreateRequest describes a new log. Media is optional; MediaType is
// derived from MediaName when empty.
type CreateRequest struct {
	Type      string
	Title     *string
	Content   *string
	Media     io.Reader
	MediaName string
	MediaType string
}

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Changes int64           `json:"changes"`
	Error   string          `json:"error"`
	Msg     string          `json:"msg"`
}

func (c *Client) List(ctx context.Context) ([]model.Log, error) {
	env, err := c.do(ctx, http.MethodGet, "/api/logs", nil, "")
	if err != nil {
		return nil, err
	}
	if env.Message != "success" {
		return nil, &APIError{Status: http.StatusOK, Message: env.failure()}
	}

	var logs []model.Log
	if err := json.Unmarshal(env.Data, &logs); err != nil {
		return nil, fmt.Errorf("decode logs: %w", err)
	}
	return logs, nil
}

func (c *Client) Create(ctx context.Context, req CreateRequest) (*model.Log, error) {
	body, contentType, err := encodeCreate(req)
	if err != nil {
		return nil, err
	}

	env, err := c.do(ctx, http.MethodPost, "/api/logs", body, contentType)
	if err != nil {
		return nil, err
	}
	if env.Message != "success" {
		return nil, &APIError{Status: http.StatusOK, Message: env.failure()}
	}

	var entry model.Log
	if err := json.Unmarshal(env.Data, &entry); err != nil {
		return nil, fmt.Errorf("decode log: %w", err)
	}
	return &entry, nil
}

// Delete removes a log and returns the number of rows the server removed.
// Zero means there was nothing to delete.
func (c *Client) Delete(ctx context.Context, id uint) (int64, error) {
	env, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/logs/%d", id), nil, "")
	if err != nil {
		return 0, err
	}
	if env.Message != "deleted" {
		return 0, &APIError{Status: http.StatusOK, Message: env.failure()}
	}
	return env.Changes, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	env := new(envelope)
	if err := json.NewDecoder(resp.Body).Decode(env); err != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("unreadable response: %v", err)}
	}
	if resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: env.failure()}
	}
	return env, nil
}

func (e *envelope) failure() string {
	switch {
	case e.Error != "":
		return e.Error
	case e.Msg != "":
		return e.Msg
	default:
		return "unexpected response"
	}
}

var videoTypes = map[string]string{
	".mp4": "video/mp4",
	".mov": "video/quicktime",
	".avi": "video/x-msvideo",
}

// contentTypeFor guesses the MIME type the server will check for name.
func contentTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := videoTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeCreate(req CreateRequest) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct {
		name  string
		value *string
	}{
		{"type", &req.Type},
		{"title", req.Title},
		{"content", req.Content},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := w.WriteField(f.name, *f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}

	if req.Media != nil {
		contentType := req.MediaType
		if contentType == "" {
			contentType = contentTypeFor(req.MediaName)
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="media"; filename="%s"`,
			quoteEscaper.Replace(filepath.Base(req.MediaName))))
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create media part: %w", err)
		}
		if _, err := io.Copy(part, req.Media); err != nil {
			return nil, "", fmt.Errorf("copy media: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

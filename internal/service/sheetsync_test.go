package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"log-journal-system/internal/config"
	"log-journal-system/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func TestDisabledSheetExporter(t *testing.T) {
	exporter, err := NewSheetExporter(context.Background(), config.SheetsConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, exporter)

	assert.NoError(t, exporter.ExportLogs(context.Background(), []model.Log{{ID: 1, Type: "daily"}}))
}

func TestExportLogsAppendsRows(t *testing.T) {
	var gotPath string
	var got sheets.ValueRange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "USER_ENTERED", r.URL.Query().Get("valueInputOption"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	svc, err := sheets.NewService(ctx,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	exporter := newSheetExporter(svc, "sheet-123", "Logs")

	created := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	err = exporter.ExportLogs(ctx, []model.Log{
		{ID: 2, Type: "daily", Title: strPtr("Day 2"), CreatedAt: created},
		{ID: 1, Type: "weekly", Content: strPtr("notes"), MediaURL: strPtr("/uploads/a.png"), CreatedAt: created},
	})
	require.NoError(t, err)

	assert.True(t, strings.Contains(gotPath, "sheet-123"), gotPath)
	assert.True(t, strings.HasSuffix(gotPath, ":append"), gotPath)
	require.Len(t, got.Values, 2)
	assert.Equal(t, []interface{}{"2", "daily", "Day 2", "", "", "2026-03-04T05:06:07Z"}, got.Values[0])
	assert.Equal(t, []interface{}{"1", "weekly", "", "notes", "/uploads/a.png", "2026-03-04T05:06:07Z"}, got.Values[1])
}

func TestExportLogsNothingToSend(t *testing.T) {
	exporter := newSheetExporter(nil, "sheet-123", "Logs")
	assert.NoError(t, exporter.ExportLogs(context.Background(), nil))
}

package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"log-journal-system/internal/config"
	"log-journal-system/internal/model"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetExporter mirrors logs into a Google Sheet. A nil exporter is
// disabled and every method is a no-op.
type SheetExporter struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

func NewSheetExporter(ctx context.Context, cfg config.SheetsConfig) (*SheetExporter, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	b, err := os.ReadFile(cfg.CredentialPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	// service account credentials
	creds, err := google.CredentialsFromJSON(ctx, b, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, err
	}

	return newSheetExporter(srv, cfg.SpreadsheetID, cfg.SheetName), nil
}

func newSheetExporter(srv *sheets.Service, spreadsheetID, sheetName string) *SheetExporter {
	return &SheetExporter{
		service:       srv,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}
}

// ExportLogs appends one row per log below the header row.
func (s *SheetExporter) ExportLogs(ctx context.Context, logs []model.Log) error {
	if s == nil || len(logs) == 0 {
		return nil
	}

	values := make([][]interface{}, 0, len(logs))
	for _, l := range logs {
		values = append(values, logRow(l))
	}

	_, err := s.service.Spreadsheets.Values.Append(
		s.spreadsheetID,
		s.sheetName+"!A2:F",
		&sheets.ValueRange{Values: values},
	).ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		log.Printf("Failed to export logs to sheet %s: %v", s.sheetName, err)
		return fmt.Errorf("append to sheet %s: %w", s.sheetName, err)
	}

	log.Printf("exported %d logs to sheet %s", len(logs), s.sheetName)
	return nil
}

func logRow(l model.Log) []interface{} {
	return []interface{}{
		strconv.FormatUint(uint64(l.ID), 10),
		l.Type,
		model.StringValue(l.Title),
		model.StringValue(l.Content),
		model.StringValue(l.MediaURL),
		l.CreatedAt.UTC().Format(time.RFC3339),
	}
}

package main

import (
	"errors"
	"fmt"

	"log-journal-system/internal/config"
	"log-journal-system/internal/database"
	"log-journal-system/internal/service"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export-sheet",
	Short: "Append every log to the configured Google Sheet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		if !cfg.Sheets.Enabled {
			return errors.New("sheet export is disabled; set SHEETS_ENABLED, SHEETS_CREDENTIALS and SHEETS_SPREADSHEET_ID")
		}

		exporter, err := service.NewSheetExporter(cmd.Context(), cfg.Sheets)
		if err != nil {
			return err
		}

		db, err := database.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer database.Close(db)

		logs, err := service.NewLogStore(db).ListAll(cmd.Context())
		if err != nil {
			return err
		}
		if err := exporter.ExportLogs(cmd.Context(), logs); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), ">> Exported %d logs\n", len(logs))
		return nil
	},
}

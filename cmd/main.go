package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log-journal-system/internal/config"
	"log-journal-system/internal/database"
	"log-journal-system/internal/handler"
	"log-journal-system/internal/server"
	"log-journal-system/internal/service"
	"log-journal-system/internal/storage"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:           "journal",
	Short:         "Personal log journal: web server and terminal client",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the log API and the web front end",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the logs table if it does not exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}
		db, err := database.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Printf("database %s is up to date", cfg.DBPath)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "SQLite database path (DB_PATH)")
	rootCmd.PersistentFlags().String("api-url", "", "log API base URL for client commands (API_URL)")
	_ = v.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db"))
	_ = v.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))

	serveCmd.Flags().StringP("port", "p", "", "listen port (PORT)")
	serveCmd.Flags().Bool("access-log", true, "log every request")
	_ = v.BindPFlag("port", serveCmd.Flags().Lookup("port"))
	_ = v.BindPFlag("access_log", serveCmd.Flags().Lookup("access-log"))

	rootCmd.AddCommand(serveCmd, migrateCmd, logsCmd, exportCmd)
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close(db)

	// keep serving: the table usually exists already
	if err := database.Migrate(db); err != nil {
		log.Printf("database migration failed: %v", err)
	}

	media, err := storage.FromConfig(ctx, cfg)
	if err != nil {
		return err
	}

	h := handler.NewLogHandler(
		service.NewLogStore(db),
		service.NewMediaIntake(media, cfg.MaxUploadBytes),
	)
	app := server.New(server.Options{
		PublicDir:      cfg.PublicDir,
		UploadDir:      cfg.UploadDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
		AccessLog:      cfg.AccessLog,
	}, h)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Printf("Server running on http://localhost%s", addr)
		errCh <- app.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Printf("received %v, shutting down", sig)
	}

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("shutdown: %v", err)
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

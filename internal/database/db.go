package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	type TEXT NOT NULL,
	title TEXT,
	content TEXT,
	media_url TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

const createdAtIndex = `CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs (created_at)`

// Open connects to the SQLite database at path, creating its parent
// directory when needed. ":memory:" opens a private in-memory database.
func Open(path string) (*gorm.DB, error) {
	dsn := path
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create data directory %s: %w", dir, err)
			}
		}
		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql handle: %w", err)
	}
	// SQLite has a single writer; one connection keeps writers queued in
	// Go instead of failing with SQLITE_BUSY, and keeps :memory: alive.
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate creates the logs table and its index if they do not exist.
// Every statement is idempotent, so concurrent process starts are safe.
func Migrate(db *gorm.DB) error {
	for _, stmt := range []string{schema, createdAtIndex} {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate logs table: %w", err)
		}
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("close database: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("close database: %v", err)
	}
}

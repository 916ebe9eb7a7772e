package database

import (
	"testing"

	"gorm.io/gorm"
)

// InitTestDB returns a migrated in-memory database that is closed when t ends.
func InitTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { Close(db) })
	return db
}

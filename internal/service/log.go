package service

import (
	"context"
	"time"

	"log-journal-system/internal/model"

	"gorm.io/gorm"
)

type LogStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLogStore(db *gorm.DB) *LogStore {
	return &LogStore{db: db, now: time.Now}
}

// Insert persists a new log; id and created_at are assigned here.
func (s *LogStore) Insert(ctx context.Context, input model.LogInput) (*model.Log, error) {
	entry := &model.Log{
		Type:      input.Type,
		Title:     input.Title,
		Content:   input.Content,
		MediaURL:  input.MediaURL,
		CreatedAt: s.now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, &StorageError{Op: "insert", Err: err}
	}
	return entry, nil
}

// ListAll returns every log, newest first. Rows sharing a timestamp fall
// back to id so serial inserts keep their order.
func (s *LogStore) ListAll(ctx context.Context) ([]model.Log, error) {
	logs := []model.Log{}
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return logs, nil
}

// DeleteByID removes the log with the given id and reports how many rows
// went away. A missing id, negative ones included, yields 0 and no error.
func (s *LogStore) DeleteByID(ctx context.Context, id int64) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&model.Log{}, id)
	if result.Error != nil {
		return 0, &StorageError{Op: "delete", Err: result.Error}
	}
	return result.RowsAffected, nil
}

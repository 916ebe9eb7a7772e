package model

import "time"

// Log is a single journal entry. Title, Content and MediaURL are nullable
// and encode as JSON null when unset.
type Log struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Type      string    `json:"type" gorm:"not null"`
	Title     *string   `json:"title"`
	Content   *string   `json:"content"`
	MediaURL  *string   `json:"media_url" gorm:"column:media_url"`
	CreatedAt time.Time `json:"created_at" gorm:"not null"`
}

func (Log) TableName() string {
	return "logs"
}

// StringValue returns the value of a nullable column, or "" when it is NULL.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// LogInput carries the caller-supplied fields of a new log.
type LogInput struct {
	Type     string
	Title    *string
	Content  *string
	MediaURL *string
}

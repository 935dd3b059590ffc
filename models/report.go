package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ReportStatus represents the lifecycle status of a report
type ReportStatus string

const (
	StatusDraft      ReportStatus = "draft"
	StatusInProgress ReportStatus = "in_progress"
	StatusCompleted  ReportStatus = "completed"
)

// TemplateType selects how the report skeleton is built
type TemplateType string

const (
	TemplateDefault TemplateType = "default"
	TemplateCustom  TemplateType = "custom"
)

// TemplateSection describes one section in a custom template schema
type TemplateSection struct {
	SectionNumber string `json:"section_number"`
	Title         string `json:"title"`
	Level         int    `json:"level"`
}

// TemplateChapter describes one chapter in a custom template schema
type TemplateChapter struct {
	ChapterNumber int               `json:"chapter_number"`
	Title         string            `json:"title"`
	Sections      []TemplateSection `json:"sections"`
}

// CustomTemplate is the caller-supplied chapter/section schema for
// reports created with the custom template type
type CustomTemplate struct {
	Chapters []TemplateChapter `json:"chapters"`
}

// Value implements driver.Valuer for JSONB
func (t CustomTemplate) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan implements sql.Scanner for JSONB
func (t *CustomTemplate) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, t)
}

// Report represents a report entity. Chapters and references are loaded
// separately; Chapters is populated when the full tree is fetched.
type Report struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	Title          string          `json:"title"`
	Department     string          `json:"department"`
	TemplateType   TemplateType    `json:"template_type"`
	CustomTemplate *CustomTemplate `json:"custom_template,omitempty"`
	Status         ReportStatus    `json:"status"`

	Chapters []*Chapter `json:"chapters,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentSourceType records where a section's displayed content came from
type ContentSourceType string

const (
	SourceUserUploaded ContentSourceType = "user_uploaded"
	SourceAiGenerated  ContentSourceType = "ai_generated"
	SourceMixed        ContentSourceType = "mixed"
)

// Section represents a section within a chapter. This is where the actual
// content lives. FinalContent is always derived from UserContent and
// AiContent; WordCount is always derived from FinalContent.
type Section struct {
	ID        uuid.UUID `json:"id"`
	ChapterID uuid.UUID `json:"chapter_id"`

	SectionNumber string `json:"section_number"` // e.g. "1.1", "1.1.1"
	Title         string `json:"title"`
	Level         int    `json:"level"`    // 1 for "1.1", 2 for "1.1.1"
	Position      int    `json:"position"` // insertion order within the chapter

	UserContent  string            `json:"user_content"`
	AiContent    string            `json:"ai_content"`
	FinalContent string            `json:"final_content"`
	SourceType   ContentSourceType `json:"source_type"`
	WordCount    int               `json:"word_count"`

	// Version guards concurrent content saves (optimistic locking)
	Version int `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

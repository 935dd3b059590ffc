package models

import (
	"time"

	"github.com/google/uuid"
)

// Chapter represents a chapter within a report. A chapter is a container
// for sections; Sections preserves insertion order, which is document order.
type Chapter struct {
	ID            uuid.UUID `json:"id"`
	ReportID      uuid.UUID `json:"report_id"`
	ChapterNumber int       `json:"chapter_number"`
	Title         string    `json:"title"`

	Sections []*Section `json:"sections,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

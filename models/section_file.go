package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PositionSize is the rendered size of an uploaded asset
type PositionSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PositionData describes where an uploaded asset sits in the assembled
// document relative to the section's prose
type PositionData struct {
	Placement       string       `json:"placement"`        // e.g. "after_paragraph"
	ReferenceAnchor string       `json:"reference_anchor"` // e.g. "2" for 2nd paragraph
	Alignment       string       `json:"alignment"`        // left, center, right
	Size            PositionSize `json:"size"`
	Style           string       `json:"style"` // e.g. "figure", "table"
}

var validPlacements = map[string]bool{
	"after_paragraph":  true,
	"before_paragraph": true,
	"section_start":    true,
	"section_end":      true,
}

var validAlignments = map[string]bool{
	"left":   true,
	"center": true,
	"right":  true,
}

// Validate checks the position metadata. Malformed metadata is an error,
// never silently defaulted.
func (p PositionData) Validate() error {
	if !validPlacements[p.Placement] {
		return fmt.Errorf("invalid placement %q", p.Placement)
	}
	if !validAlignments[p.Alignment] {
		return fmt.Errorf("invalid alignment %q", p.Alignment)
	}
	if p.Placement == "after_paragraph" || p.Placement == "before_paragraph" {
		if p.ReferenceAnchor == "" {
			return fmt.Errorf("placement %q requires a reference_anchor", p.Placement)
		}
	}
	if p.Size.Width <= 0 || p.Size.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", p.Size.Width, p.Size.Height)
	}
	return nil
}

// Value implements driver.Valuer for JSONB
func (p PositionData) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB
func (p *PositionData) Scan(value interface{}) error {
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

	return json.Unmarshal(bytes, p)
}

// SectionFile represents an uploaded asset (image) attached to a section.
// Only metadata is persisted here; the bytes live in storage.
type SectionFile struct {
	ID        uuid.UUID `json:"id"`
	SectionID uuid.UUID `json:"section_id"`

	Filename    string       `json:"filename"`
	MimeType    string       `json:"mime_type"`
	Size        int64        `json:"size"`
	StoragePath string       `json:"storage_path"`
	Position    PositionData `json:"position"`
	Caption     *string      `json:"caption,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// ReferenceType represents the kind of work a reference points to
type ReferenceType string

const (
	ReferenceArticle ReferenceType = "article"
	ReferenceBook    ReferenceType = "book"
	ReferenceWebsite ReferenceType = "website"
)

// Reference represents an APA-style citation record owned by a report.
// InTextCitation and FormattedAPA are derived from the other fields and
// recomputed by the service whenever those fields change.
type Reference struct {
	ID       uuid.UUID `json:"id"`
	ReportID uuid.UUID `json:"report_id"`

	CitationKey   string        `json:"citation_key"` // e.g. "Smith2023"
	ReferenceType ReferenceType `json:"reference_type"`
	Authors       []string      `json:"authors"` // ["Smith, J.", "Doe, A."]
	Year          int           `json:"year"`
	Title         string        `json:"title"`

	// Articles
	Journal *string `json:"journal,omitempty"`
	Volume  *string `json:"volume,omitempty"`
	Issue   *string `json:"issue,omitempty"`
	Pages   *string `json:"pages,omitempty"`

	// Books
	Edition           *string `json:"edition,omitempty"`
	Publisher         *string `json:"publisher,omitempty"`
	PublisherLocation *string `json:"publisher_location,omitempty"`

	// Online sources
	DOI *string `json:"doi,omitempty"`
	URL *string `json:"url,omitempty"`

	InTextCitation string `json:"in_text_citation"`
	FormattedAPA   string `json:"formatted_apa"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

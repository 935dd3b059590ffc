package repository

import (
	"context"

	"reportcraft-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrStaleVersion is returned when a guarded content save matched no row,
// meaning the section changed under the caller.
var ErrStaleVersion = pgx.ErrNoRows

const sectionColumns = `
	id, chapter_id, section_number, title, level, position,
	COALESCE(user_content, ''), COALESCE(ai_content, ''), COALESCE(final_content, ''),
	source_type, word_count, version, created_at, updated_at`

// SectionRepository handles database operations for sections
type SectionRepository struct {
	db *pgxpool.Pool
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(db *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{db: db}
}

func scanSection(row pgx.Row) (*models.Section, error) {
	section := &models.Section{}
	err := row.Scan(
		&section.ID,
		&section.ChapterID,
		&section.SectionNumber,
		&section.Title,
		&section.Level,
		&section.Position,
		&section.UserContent,
		&section.AiContent,
		&section.FinalContent,
		&section.SourceType,
		&section.WordCount,
		&section.Version,
		&section.CreatedAt,
		&section.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return section, nil
}

// GetByID retrieves a section by ID
func (r *SectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE id = $1`
	return scanSection(r.db.QueryRow(ctx, query, id))
}

// ListByChapterID retrieves a chapter's sections in document order
func (r *SectionRepository) ListByChapterID(ctx context.Context, chapterID uuid.UUID) ([]*models.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE chapter_id = $1 ORDER BY position`

	rows, err := r.db.Query(ctx, query, chapterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*models.Section
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}

	return sections, rows.Err()
}

// ListByReportID retrieves every section of a report in document order.
// One statement, so the result is a consistent snapshot: a concurrent
// content save is either fully visible or not at all.
func (r *SectionRepository) ListByReportID(ctx context.Context, reportID uuid.UUID) ([]*models.Section, error) {
	query := `
		SELECT s.id, s.chapter_id, s.section_number, s.title, s.level, s.position,
			COALESCE(s.user_content, ''), COALESCE(s.ai_content, ''), COALESCE(s.final_content, ''),
			s.source_type, s.word_count, s.version, s.created_at, s.updated_at
		FROM sections s
		JOIN chapters c ON c.id = s.chapter_id
		WHERE c.report_id = $1
		ORDER BY c.chapter_number, s.position`

	rows, err := r.db.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*models.Section
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}

	return sections, rows.Err()
}

// UpdateContent saves the content slots and derived fields of a section,
// guarded by the version the caller loaded. Returns ErrStaleVersion when
// the row changed since.
func (r *SectionRepository) UpdateContent(ctx context.Context, section *models.Section) error {
	query := `
		UPDATE sections SET
			user_content = $2,
			ai_content = $3,
			final_content = $4,
			source_type = $5,
			word_count = $6,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $1 AND version = $7
		RETURNING version, updated_at`

	return r.db.QueryRow(
		ctx, query,
		section.ID,
		section.UserContent,
		section.AiContent,
		section.FinalContent,
		section.SourceType,
		section.WordCount,
		section.Version,
	).Scan(&section.Version, &section.UpdatedAt)
}

package repository

import (
	"context"

	"reportcraft-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChapterRepository handles database operations for chapters
type ChapterRepository struct {
	db *pgxpool.Pool
}

// NewChapterRepository creates a new chapter repository
func NewChapterRepository(db *pgxpool.Pool) *ChapterRepository {
	return &ChapterRepository{db: db}
}

// GetByReportAndID retrieves a chapter scoped to its report. A chapter
// belonging to a different report is not found, even with a valid ID.
func (r *ChapterRepository) GetByReportAndID(ctx context.Context, reportID, chapterID uuid.UUID) (*models.Chapter, error) {
	chapter := &models.Chapter{}
	query := `
		SELECT id, report_id, chapter_number, title, created_at, updated_at
		FROM chapters
		WHERE id = $1 AND report_id = $2`

	err := r.db.QueryRow(ctx, query, chapterID, reportID).Scan(
		&chapter.ID,
		&chapter.ReportID,
		&chapter.ChapterNumber,
		&chapter.Title,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return chapter, nil
}

// GetByID retrieves a chapter by ID
func (r *ChapterRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Chapter, error) {
	chapter := &models.Chapter{}
	query := `
		SELECT id, report_id, chapter_number, title, created_at, updated_at
		FROM chapters
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&chapter.ID,
		&chapter.ReportID,
		&chapter.ChapterNumber,
		&chapter.Title,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return chapter, nil
}

// ListByReportID retrieves a report's chapters in chapter_number order
func (r *ChapterRepository) ListByReportID(ctx context.Context, reportID uuid.UUID) ([]*models.Chapter, error) {
	query := `
		SELECT id, report_id, chapter_number, title, created_at, updated_at
		FROM chapters
		WHERE report_id = $1
		ORDER BY chapter_number`

	rows, err := r.db.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chapters []*models.Chapter
	for rows.Next() {
		chapter := &models.Chapter{}
		err := rows.Scan(
			&chapter.ID,
			&chapter.ReportID,
			&chapter.ChapterNumber,
			&chapter.Title,
			&chapter.CreatedAt,
			&chapter.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, chapter)
	}

	return chapters, rows.Err()
}

package repository

import (
	"context"

	"reportcraft-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRepository handles database operations for reports
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

// CreateWithTree inserts a report together with its full chapter/section
// skeleton in one transaction. Any failure rolls the whole tree back, so
// no orphan chapters or sections persist.
func (r *ReportRepository) CreateWithTree(ctx context.Context, report *models.Report) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO reports (
			user_id, title, department, template_type, custom_template, status
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err = tx.QueryRow(
		ctx, query,
		report.UserID,
		report.Title,
		report.Department,
		report.TemplateType,
		report.CustomTemplate,
		report.Status,
	).Scan(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		return err
	}

	for _, chapter := range report.Chapters {
		chapter.ReportID = report.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO chapters (report_id, chapter_number, title)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at`,
			chapter.ReportID, chapter.ChapterNumber, chapter.Title,
		).Scan(&chapter.ID, &chapter.CreatedAt, &chapter.UpdatedAt)
		if err != nil {
			return err
		}

		for _, section := range chapter.Sections {
			section.ChapterID = chapter.ID
			err = tx.QueryRow(ctx, `
				INSERT INTO sections (
					chapter_id, section_number, title, level, position, source_type
				) VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id, created_at, updated_at`,
				section.ChapterID,
				section.SectionNumber,
				section.Title,
				section.Level,
				section.Position,
				section.SourceType,
			).Scan(&section.ID, &section.CreatedAt, &section.UpdatedAt)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

// GetByID retrieves a report by ID (without its tree)
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	report := &models.Report{}
	query := `
		SELECT id, user_id, title, department, template_type, custom_template,
			status, created_at, updated_at, completed_at
		FROM reports
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.UserID,
		&report.Title,
		&report.Department,
		&report.TemplateType,
		&report.CustomTemplate,
		&report.Status,
		&report.CreatedAt,
		&report.UpdatedAt,
		&report.CompletedAt,
	)

	if err != nil {
		return nil, err
	}

	return report, nil
}

// Update updates a report's mutable fields
func (r *ReportRepository) Update(ctx context.Context, report *models.Report) error {
	query := `
		UPDATE reports SET
			title = $2,
			department = $3,
			status = $4,
			completed_at = $5,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRow(
		ctx, query,
		report.ID,
		report.Title,
		report.Department,
		report.Status,
		report.CompletedAt,
	).Scan(&report.UpdatedAt)
}

// UpdateStatus updates only the report status
func (r *ReportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) error {
	query := `
		UPDATE reports SET
			status = $2,
			completed_at = CASE WHEN $2 = 'completed' THEN NOW() ELSE completed_at END,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, status)
	return err
}

// ListByUserID retrieves all reports for a user
func (r *ReportRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Report, error) {
	query := `
		SELECT id, user_id, title, department, template_type, custom_template,
			status, created_at, updated_at, completed_at
		FROM reports
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		report := &models.Report{}
		err := rows.Scan(
			&report.ID,
			&report.UserID,
			&report.Title,
			&report.Department,
			&report.TemplateType,
			&report.CustomTemplate,
			&report.Status,
			&report.CreatedAt,
			&report.UpdatedAt,
			&report.CompletedAt,
		)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// Delete removes a report and everything it owns in one transaction. The
// cascade covers references, section files, sections, and chapters; the
// caller removes stored file bytes afterwards using the returned paths.
func (r *ReportRepository) Delete(ctx context.Context, id uuid.UUID) ([]string, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		SELECT sf.storage_path
		FROM section_files sf
		JOIN sections s ON s.id = sf.section_id
		JOIN chapters c ON c.id = s.chapter_id
		WHERE c.report_id = $1`, id)
	if err != nil {
		return nil, err
	}
	var storagePaths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return nil, err
		}
		storagePaths = append(storagePaths, path)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	statements := []string{
		`DELETE FROM section_files WHERE section_id IN (
			SELECT s.id FROM sections s
			JOIN chapters c ON c.id = s.chapter_id
			WHERE c.report_id = $1)`,
		`DELETE FROM sections WHERE chapter_id IN (
			SELECT id FROM chapters WHERE report_id = $1)`,
		`DELETE FROM chapters WHERE report_id = $1`,
		`DELETE FROM report_references WHERE report_id = $1`,
		`DELETE FROM reports WHERE id = $1`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt, id); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return storagePaths, nil
}

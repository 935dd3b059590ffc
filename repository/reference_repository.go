package repository

import (
	"context"

	"reportcraft-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const referenceColumns = `
	id, report_id, citation_key, reference_type, authors, year, title,
	journal, volume, issue, pages, edition, publisher, publisher_location,
	doi, url, in_text_citation, formatted_apa, created_at, updated_at`

// ReferenceRepository handles database operations for references
type ReferenceRepository struct {
	db *pgxpool.Pool
}

// NewReferenceRepository creates a new reference repository
func NewReferenceRepository(db *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func scanReference(row pgx.Row) (*models.Reference, error) {
	ref := &models.Reference{}
	err := row.Scan(
		&ref.ID,
		&ref.ReportID,
		&ref.CitationKey,
		&ref.ReferenceType,
		&ref.Authors,
		&ref.Year,
		&ref.Title,
		&ref.Journal,
		&ref.Volume,
		&ref.Issue,
		&ref.Pages,
		&ref.Edition,
		&ref.Publisher,
		&ref.PublisherLocation,
		&ref.DOI,
		&ref.URL,
		&ref.InTextCitation,
		&ref.FormattedAPA,
		&ref.CreatedAt,
		&ref.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return ref, nil
}

// Create creates a new reference
func (r *ReferenceRepository) Create(ctx context.Context, ref *models.Reference) error {
	query := `
		INSERT INTO report_references (
			report_id, citation_key, reference_type, authors, year, title,
			journal, volume, issue, pages, edition, publisher, publisher_location,
			doi, url, in_text_citation, formatted_apa
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		) RETURNING id, created_at, updated_at`

	return r.db.QueryRow(
		ctx, query,
		ref.ReportID,
		ref.CitationKey,
		ref.ReferenceType,
		ref.Authors,
		ref.Year,
		ref.Title,
		ref.Journal,
		ref.Volume,
		ref.Issue,
		ref.Pages,
		ref.Edition,
		ref.Publisher,
		ref.PublisherLocation,
		ref.DOI,
		ref.URL,
		ref.InTextCitation,
		ref.FormattedAPA,
	).Scan(&ref.ID, &ref.CreatedAt, &ref.UpdatedAt)
}

// GetByID retrieves a reference by ID
func (r *ReferenceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Reference, error) {
	query := `SELECT ` + referenceColumns + ` FROM report_references WHERE id = $1`
	return scanReference(r.db.QueryRow(ctx, query, id))
}

// ListByReportID retrieves all references for a report
func (r *ReferenceRepository) ListByReportID(ctx context.Context, reportID uuid.UUID) ([]*models.Reference, error) {
	query := `SELECT ` + referenceColumns + ` FROM report_references WHERE report_id = $1 ORDER BY citation_key`

	rows, err := r.db.Query(ctx, query, reportID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []*models.Reference
	for rows.Next() {
		ref, err := scanReference(rows)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}

	return refs, rows.Err()
}

// KeyExists reports whether a citation key is already registered for a
// report, excluding one reference ID (pass uuid.Nil when creating)
func (r *ReferenceRepository) KeyExists(ctx context.Context, reportID uuid.UUID, citationKey string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM report_references
			WHERE report_id = $1 AND citation_key = $2 AND id <> $3)`

	err := r.db.QueryRow(ctx, query, reportID, citationKey, excludeID).Scan(&exists)
	return exists, err
}

// Update updates a reference, including its recomputed derived fields
func (r *ReferenceRepository) Update(ctx context.Context, ref *models.Reference) error {
	query := `
		UPDATE report_references SET
			citation_key = $2,
			reference_type = $3,
			authors = $4,
			year = $5,
			title = $6,
			journal = $7,
			volume = $8,
			issue = $9,
			pages = $10,
			edition = $11,
			publisher = $12,
			publisher_location = $13,
			doi = $14,
			url = $15,
			in_text_citation = $16,
			formatted_apa = $17,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	return r.db.QueryRow(
		ctx, query,
		ref.ID,
		ref.CitationKey,
		ref.ReferenceType,
		ref.Authors,
		ref.Year,
		ref.Title,
		ref.Journal,
		ref.Volume,
		ref.Issue,
		ref.Pages,
		ref.Edition,
		ref.Publisher,
		ref.PublisherLocation,
		ref.DOI,
		ref.URL,
		ref.InTextCitation,
		ref.FormattedAPA,
	).Scan(&ref.UpdatedAt)
}

// Delete removes a reference
func (r *ReferenceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM report_references WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

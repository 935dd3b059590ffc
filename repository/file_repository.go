package repository

import (
	"context"

	"reportcraft-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FileRepository handles database operations for section file records
type FileRepository struct {
	db *pgxpool.Pool
}

// NewFileRepository creates a new file repository
func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db}
}

// Create creates a new section file record
func (r *FileRepository) Create(ctx context.Context, file *models.SectionFile) error {
	query := `
		INSERT INTO section_files (
			id, section_id, filename, mime_type, size, storage_path, position_data, caption
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	return r.db.QueryRow(
		ctx, query,
		file.ID,
		file.SectionID,
		file.Filename,
		file.MimeType,
		file.Size,
		file.StoragePath,
		file.Position,
		file.Caption,
	).Scan(&file.CreatedAt)
}

// GetByID retrieves a section file by ID
func (r *FileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SectionFile, error) {
	file := &models.SectionFile{}
	query := `
		SELECT id, section_id, filename, mime_type, size, storage_path, position_data, caption, created_at
		FROM section_files
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&file.ID,
		&file.SectionID,
		&file.Filename,
		&file.MimeType,
		&file.Size,
		&file.StoragePath,
		&file.Position,
		&file.Caption,
		&file.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return file, nil
}

// ListBySectionID retrieves all files attached to a section
func (r *FileRepository) ListBySectionID(ctx context.Context, sectionID uuid.UUID) ([]*models.SectionFile, error) {
	query := `
		SELECT id, section_id, filename, mime_type, size, storage_path, position_data, caption, created_at
		FROM section_files
		WHERE section_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, sectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*models.SectionFile
	for rows.Next() {
		file := &models.SectionFile{}
		err := rows.Scan(
			&file.ID,
			&file.SectionID,
			&file.Filename,
			&file.MimeType,
			&file.Size,
			&file.StoragePath,
			&file.Position,
			&file.Caption,
			&file.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, rows.Err()
}

// Delete deletes a section file record
func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM section_files WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

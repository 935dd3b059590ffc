package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStorage keeps section assets on the local filesystem, sharded
// under basePath by the first two characters of the file ID. This is the
// development backend; production deployments use S3.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates the base directory if needed
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating asset directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Upload writes the asset and returns its relative storage path
func (s *LocalStorage) Upload(ctx context.Context, fileID uuid.UUID, filename string, data io.Reader) (string, error) {
	storagePath := generateStoragePath(fileID, filename)
	fullPath := filepath.Join(s.basePath, storagePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("creating shard directory: %w", err)
	}

	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("creating asset file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, data); err != nil {
		// Partial writes are removed so a retry starts clean
		os.Remove(fullPath)
		return "", fmt.Errorf("writing asset file: %w", err)
	}

	return storagePath, nil
}

// Download opens the asset for reading; the caller closes it
func (s *LocalStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(s.basePath, storagePath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("asset not found: %s", storagePath)
		}
		return nil, fmt.Errorf("opening asset file: %w", err)
	}
	return file, nil
}

// Delete removes the asset. A missing file is not an error; delete is
// called best-effort during report cascades.
func (s *LocalStorage) Delete(ctx context.Context, storagePath string) error {
	if err := os.Remove(filepath.Join(s.basePath, storagePath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting asset file: %w", err)
	}
	return nil
}

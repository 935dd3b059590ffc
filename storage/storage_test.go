package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStoragePath(t *testing.T) {
	id := uuid.MustParse("ab12cd34-0000-4000-8000-000000000000")

	path := generateStoragePath(id, "figure 3/v2\\final.png")

	assert.Equal(t, fmt.Sprintf("ab/%s_figure_3_v2_final.png", id), path)
	assert.True(t, strings.HasSuffix(path, ".png"))

	// Same filename under different IDs never collides
	other := generateStoragePath(uuid.New(), "figure 3/v2\\final.png")
	assert.NotEqual(t, path, other)
}

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	fileID := uuid.New()

	path, err := store.Upload(ctx, fileID, "diagram.png", bytes.NewReader([]byte("png-bytes")))
	require.NoError(t, err)
	assert.Equal(t, generateStoragePath(fileID, "diagram.png"), path)

	reader, err := store.Download(ctx, path)
	require.NoError(t, err)
	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.NoError(t, reader.Close())
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(ctx, path))
	_, err = store.Download(ctx, path)
	assert.Error(t, err)

	// Deleting an already-removed asset stays quiet
	assert.NoError(t, store.Delete(ctx, path))
}

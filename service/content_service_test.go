package service

import (
	"errors"
	"testing"

	"reportcraft-backend/repository"

	"github.com/stretchr/testify/assert"
)

func TestMapSaveError(t *testing.T) {
	// A stale version check is the caller's conflict
	assert.ErrorIs(t, mapSaveError(repository.ErrStaleVersion), ErrVersionConflict)

	// Infrastructure failures pass through unchanged
	dbErr := errors.New("connection reset by peer")
	assert.Equal(t, dbErr, mapSaveError(dbErr))
	assert.NotErrorIs(t, mapSaveError(dbErr), ErrVersionConflict)

	assert.NoError(t, mapSaveError(nil))
}

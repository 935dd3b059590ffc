package service

import (
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionLocksRejectSecondWriter(t *testing.T) {
	locks := newSectionLocks()
	id := uuid.New()

	require.NoError(t, locks.Acquire(id))
	assert.ErrorIs(t, locks.Acquire(id), ErrSectionBusy)

	locks.Release(id)
	assert.NoError(t, locks.Acquire(id))
}

func TestSectionLocksIndependentSections(t *testing.T) {
	locks := newSectionLocks()
	a, b := uuid.New(), uuid.New()

	require.NoError(t, locks.Acquire(a))
	assert.NoError(t, locks.Acquire(b))
}

func TestSectionLocksConcurrentAcquire(t *testing.T) {
	locks := newSectionLocks()
	id := uuid.New()

	const attempts = 50
	var wg sync.WaitGroup
	acquired := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if locks.Acquire(id) == nil {
				acquired <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(acquired)

	count := 0
	for range acquired {
		count++
	}
	assert.Equal(t, 1, count, "exactly one goroutine should win the lock")
}

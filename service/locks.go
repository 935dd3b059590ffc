package service

import (
	"sync"

	"github.com/google/uuid"
)

// sectionLocks enforces the single-writer-per-section rule within this
// process. Acquire never blocks: a second writer is rejected so it can
// surface a conflict instead of silently racing. Cross-process races are
// caught by the version column on saves.
type sectionLocks struct {
	mu       sync.Mutex
	inFlight map[uuid.UUID]bool
}

func newSectionLocks() *sectionLocks {
	return &sectionLocks{inFlight: make(map[uuid.UUID]bool)}
}

// Acquire marks a section as having a mutation in flight. Returns
// ErrSectionBusy when one is already running.
func (l *sectionLocks) Acquire(sectionID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.inFlight[sectionID] {
		return ErrSectionBusy
	}
	l.inFlight[sectionID] = true
	return nil
}

// Release clears the in-flight mark
func (l *sectionLocks) Release(sectionID uuid.UUID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.inFlight, sectionID)
}

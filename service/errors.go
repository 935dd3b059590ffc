package service

import (
	"errors"
	"fmt"
)

var (
	ErrReportNotFound    = errors.New("report not found")
	ErrChapterNotFound   = errors.New("chapter not found")
	ErrSectionNotFound   = errors.New("section not found")
	ErrReferenceNotFound = errors.New("reference not found")
	ErrFileNotFound      = errors.New("file not found")
	ErrNotOwner          = errors.New("not authorized to access this resource")

	// ErrSectionBusy is returned when a second content mutation or
	// generation is attempted while one is already in flight for the
	// same section.
	ErrSectionBusy = errors.New("section has a mutation in flight")

	// ErrVersionConflict is returned when a section save loses an
	// optimistic-lock race.
	ErrVersionConflict = errors.New("section was modified concurrently")

	// ErrReferenceInUse is returned when removing a reference whose
	// citation key still appears in section content without force.
	ErrReferenceInUse = errors.New("reference is cited in section content")

	ErrGenerationFailed  = errors.New("content generation failed")
	ErrGenerationTimeout = errors.New("content generation timed out")
)

// ValidationError reports malformed input: template schemas, position
// metadata, reference fields, or an incomplete-report completion attempt.
// Element names the first offending item.
type ValidationError struct {
	Element string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Element == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Element, e.Message)
}

func newValidationError(element, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Element: element, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

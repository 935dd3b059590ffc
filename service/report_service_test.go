package service

import (
	"testing"

	"reportcraft-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestIncompleteSections(t *testing.T) {
	sections := []*models.Section{
		{SectionNumber: "1.1", FinalContent: "done"},
		{SectionNumber: "1.2", FinalContent: ""},
		{SectionNumber: "1.3", FinalContent: "   \n"},
		{SectionNumber: "2.1", FinalContent: "also done"},
	}

	assert.Equal(t, []string{"1.2", "1.3"}, IncompleteSections(sections))
}

func TestIncompleteSectionsAllComplete(t *testing.T) {
	sections := []*models.Section{
		{SectionNumber: "1.1", FinalContent: "a"},
		{SectionNumber: "1.2", FinalContent: "b"},
	}

	assert.Empty(t, IncompleteSections(sections))
}

func TestIncompleteSectionsEmptyReport(t *testing.T) {
	assert.Empty(t, IncompleteSections(nil))
}

func TestValidationErrorFormatting(t *testing.T) {
	err := newValidationError("title", "title is required")
	assert.Equal(t, "title: title is required", err.Error())
	assert.True(t, IsValidation(err))

	bare := &ValidationError{Message: "broken"}
	assert.Equal(t, "broken", bare.Error())

	assert.False(t, IsValidation(ErrReportNotFound))
}

package service

import (
	"testing"

	"reportcraft-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestMergeContent(t *testing.T) {
	tests := []struct {
		name        string
		userContent string
		aiContent   string
		wantContent string
		wantSource  models.ContentSourceType
	}{
		{
			name:        "user only",
			userContent: "My own words.",
			wantContent: "My own words.",
			wantSource:  models.SourceUserUploaded,
		},
		{
			name:        "ai only",
			aiContent:   "Generated prose.",
			wantContent: "Generated prose.",
			wantSource:  models.SourceAiGenerated,
		},
		{
			name:        "both, user first",
			userContent: "My notes.",
			aiContent:   "Elaboration.",
			wantContent: "My notes.\n\nElaboration.",
			wantSource:  models.SourceMixed,
		},
		{
			name:        "both empty",
			wantContent: "",
			wantSource:  models.SourceUserUploaded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, source := MergeContent(tt.userContent, tt.aiContent)
			assert.Equal(t, tt.wantContent, content)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("   \n\t "))
	assert.Equal(t, 3, CountWords("one two three"))
	assert.Equal(t, 4, CountWords("split\nacross\n\nlines here"))
}

func TestApplyMerge(t *testing.T) {
	section := &models.Section{
		UserContent: "Notes.",
		AiContent:   "Generated elaboration here.",
	}

	applyMerge(section)

	assert.Equal(t, "Notes.\n\nGenerated elaboration here.", section.FinalContent)
	assert.Equal(t, models.SourceMixed, section.SourceType)
	assert.Equal(t, 4, section.WordCount)
}

func TestApplyMergeIdempotent(t *testing.T) {
	section := &models.Section{
		UserContent: "Same notes as before.",
		AiContent:   "Same elaboration.",
	}

	applyMerge(section)
	first := *section

	// Re-submitting identical user content recomputes without drift
	section.UserContent = "Same notes as before."
	applyMerge(section)

	assert.Equal(t, first.FinalContent, section.FinalContent)
	assert.Equal(t, first.WordCount, section.WordCount)
	assert.Equal(t, first.SourceType, section.SourceType)
}

func TestApplyMergeClearedSlots(t *testing.T) {
	section := &models.Section{
		UserContent:  "",
		AiContent:    "",
		FinalContent: "stale",
		WordCount:    1,
	}

	applyMerge(section)

	assert.Empty(t, section.FinalContent)
	assert.Zero(t, section.WordCount)
}

package service

import (
	"strings"

	"reportcraft-backend/models"
)

// MergeContent resolves a section's displayed content from its provenance
// slots. User content precedes generated elaboration when both exist,
// separated by one blank line. Returns the merged content and source type;
// source type is meaningless when both slots are empty (second return is
// user_uploaded, final is "").
func MergeContent(userContent, aiContent string) (string, models.ContentSourceType) {
	hasUser := userContent != ""
	hasAI := aiContent != ""

	switch {
	case hasUser && hasAI:
		return userContent + "\n\n" + aiContent, models.SourceMixed
	case hasAI:
		return aiContent, models.SourceAiGenerated
	default:
		return userContent, models.SourceUserUploaded
	}
}

// CountWords counts whitespace-separated tokens
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// applyMerge recomputes the derived fields on a section in place
func applyMerge(section *models.Section) {
	section.FinalContent, section.SourceType = MergeContent(section.UserContent, section.AiContent)
	section.WordCount = CountWords(section.FinalContent)
}

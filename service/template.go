package service

import (
	"strings"

	"reportcraft-backend/models"
)

// defaultTemplateVersion identifies the fixed chapter 1-5 catalogue below.
// Bump when the catalogue changes so existing reports can be told apart.
const defaultTemplateVersion = "v1"

// defaultTemplate is the fixed five-chapter skeleton used for reports
// created with the default template type.
var defaultTemplate = models.CustomTemplate{
	Chapters: []models.TemplateChapter{
		{
			ChapterNumber: 1,
			Title:         "Introduction",
			Sections: []models.TemplateSection{
				{SectionNumber: "1.1", Title: "Background of the Study", Level: 1},
				{SectionNumber: "1.2", Title: "Statement of the Problem", Level: 1},
				{SectionNumber: "1.3", Title: "Objectives of the Study", Level: 1},
				{SectionNumber: "1.3.1", Title: "General Objective", Level: 2},
				{SectionNumber: "1.3.2", Title: "Specific Objectives", Level: 2},
				{SectionNumber: "1.4", Title: "Research Questions", Level: 1},
				{SectionNumber: "1.5", Title: "Significance of the Study", Level: 1},
				{SectionNumber: "1.6", Title: "Scope and Limitations", Level: 1},
			},
		},
		{
			ChapterNumber: 2,
			Title:         "Literature Review",
			Sections: []models.TemplateSection{
				{SectionNumber: "2.1", Title: "Overview", Level: 1},
				{SectionNumber: "2.2", Title: "Theoretical Framework", Level: 1},
				{SectionNumber: "2.3", Title: "Review of Related Works", Level: 1},
				{SectionNumber: "2.3.1", Title: "Related Systems", Level: 2},
				{SectionNumber: "2.3.2", Title: "Related Studies", Level: 2},
				{SectionNumber: "2.4", Title: "Research Gap", Level: 1},
			},
		},
		{
			ChapterNumber: 3,
			Title:         "Methodology",
			Sections: []models.TemplateSection{
				{SectionNumber: "3.1", Title: "Research Design", Level: 1},
				{SectionNumber: "3.2", Title: "Data Collection", Level: 1},
				{SectionNumber: "3.2.1", Title: "Instruments", Level: 2},
				{SectionNumber: "3.2.2", Title: "Procedures", Level: 2},
				{SectionNumber: "3.3", Title: "Data Analysis", Level: 1},
				{SectionNumber: "3.4", Title: "Ethical Considerations", Level: 1},
			},
		},
		{
			ChapterNumber: 4,
			Title:         "Results and Discussion",
			Sections: []models.TemplateSection{
				{SectionNumber: "4.1", Title: "Presentation of Findings", Level: 1},
				{SectionNumber: "4.2", Title: "Discussion", Level: 1},
				{SectionNumber: "4.3", Title: "Summary of Results", Level: 1},
			},
		},
		{
			ChapterNumber: 5,
			Title:         "Conclusion and Recommendations",
			Sections: []models.TemplateSection{
				{SectionNumber: "5.1", Title: "Summary", Level: 1},
				{SectionNumber: "5.2", Title: "Conclusion", Level: 1},
				{SectionNumber: "5.3", Title: "Recommendations", Level: 1},
				{SectionNumber: "5.4", Title: "Future Work", Level: 1},
			},
		},
	},
}

// DefaultTemplate returns a copy of the fixed default skeleton
func DefaultTemplate() models.CustomTemplate {
	chapters := make([]models.TemplateChapter, len(defaultTemplate.Chapters))
	copy(chapters, defaultTemplate.Chapters)
	return models.CustomTemplate{Chapters: chapters}
}

// SectionLevel derives the level from a dotted section number:
// "1.1" is level 1, "1.1.1" is level 2.
func SectionLevel(sectionNumber string) int {
	return strings.Count(sectionNumber, ".")
}

// ValidateTemplate checks a template schema before the skeleton is built.
// The returned error names the first offending chapter or section.
func ValidateTemplate(tpl models.CustomTemplate) error {
	if len(tpl.Chapters) == 0 {
		return newValidationError("template", "template has no chapters")
	}

	seenChapters := make(map[int]bool)
	for _, ch := range tpl.Chapters {
		if ch.ChapterNumber <= 0 {
			return newValidationError(ch.Title, "chapter_number must be positive, got %d", ch.ChapterNumber)
		}
		if seenChapters[ch.ChapterNumber] {
			return newValidationError(ch.Title, "duplicate chapter_number %d", ch.ChapterNumber)
		}
		seenChapters[ch.ChapterNumber] = true

		if strings.TrimSpace(ch.Title) == "" {
			return newValidationError("template", "chapter %d has an empty title", ch.ChapterNumber)
		}
		// A chapter without sections would complete trivially; every
		// chapter must carry at least one section to track.
		if len(ch.Sections) == 0 {
			return newValidationError(ch.Title, "chapter %d has no sections", ch.ChapterNumber)
		}

		seenSections := make(map[string]bool)
		for _, sec := range ch.Sections {
			if strings.TrimSpace(sec.SectionNumber) == "" {
				return newValidationError(ch.Title, "section with empty section_number")
			}
			if seenSections[sec.SectionNumber] {
				return newValidationError(sec.SectionNumber, "duplicate section_number within chapter %d", ch.ChapterNumber)
			}
			seenSections[sec.SectionNumber] = true

			if strings.TrimSpace(sec.Title) == "" {
				return newValidationError(sec.SectionNumber, "section has an empty title")
			}
			if want := SectionLevel(sec.SectionNumber); sec.Level != want {
				return newValidationError(sec.SectionNumber, "level %d does not match section_number depth %d", sec.Level, want)
			}
		}
	}

	return nil
}

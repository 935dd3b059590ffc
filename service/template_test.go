package service

import (
	"testing"

	"reportcraft-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplateShape(t *testing.T) {
	tpl := DefaultTemplate()

	require.Len(t, tpl.Chapters, 5)
	assert.Equal(t, "Introduction", tpl.Chapters[0].Title)
	assert.Equal(t, "Literature Review", tpl.Chapters[1].Title)
	assert.Equal(t, "Methodology", tpl.Chapters[2].Title)
	assert.Equal(t, "Results and Discussion", tpl.Chapters[3].Title)
	assert.Equal(t, "Conclusion and Recommendations", tpl.Chapters[4].Title)

	for i, ch := range tpl.Chapters {
		assert.Equal(t, i+1, ch.ChapterNumber)
		assert.NotEmpty(t, ch.Sections)
	}

	// The default catalogue must validate against its own rules
	assert.NoError(t, ValidateTemplate(tpl))
}

func TestDefaultTemplateSubsectionLevels(t *testing.T) {
	tpl := DefaultTemplate()

	for _, ch := range tpl.Chapters {
		for _, sec := range ch.Sections {
			assert.Equal(t, SectionLevel(sec.SectionNumber), sec.Level,
				"section %s level mismatch", sec.SectionNumber)
		}
	}
}

func TestSectionLevel(t *testing.T) {
	assert.Equal(t, 1, SectionLevel("1.1"))
	assert.Equal(t, 2, SectionLevel("1.3.2"))
	assert.Equal(t, 3, SectionLevel("2.1.4.1"))
	assert.Equal(t, 0, SectionLevel("1"))
}

func TestValidateTemplateErrors(t *testing.T) {
	valid := models.CustomTemplate{
		Chapters: []models.TemplateChapter{
			{
				ChapterNumber: 1,
				Title:         "Intro",
				Sections: []models.TemplateSection{
					{SectionNumber: "1.1", Title: "Background", Level: 1},
				},
			},
		},
	}
	require.NoError(t, ValidateTemplate(valid))

	tests := []struct {
		name        string
		mutate      func(tpl *models.CustomTemplate)
		wantElement string
	}{
		{
			name:        "no chapters",
			mutate:      func(tpl *models.CustomTemplate) { tpl.Chapters = nil },
			wantElement: "template",
		},
		{
			name: "zero chapter number",
			mutate: func(tpl *models.CustomTemplate) {
				tpl.Chapters[0].ChapterNumber = 0
			},
			wantElement: "Intro",
		},
		{
			name: "duplicate chapter number",
			mutate: func(tpl *models.CustomTemplate) {
				tpl.Chapters = append(tpl.Chapters, models.TemplateChapter{
					ChapterNumber: 1,
					Title:         "Dup",
				})
			},
			wantElement: "Dup",
		},
		{
			name: "empty chapter title",
			mutate: func(tpl *models.CustomTemplate) {
				tpl.Chapters[0].Title = "  "
			},
			wantElement: "template",
		},
		{
			name: "chapter without sections",
			mutate: func(tpl *models.CustomTemplate) {
				tpl.Chapters[0].Sections = nil
			},
			wantElement: "Intro",
		},
		{
			name: "duplicate section number",
			mutate: func(tpl *models.CustomTemplate) {
				tpl.Chapters[0].Sections = append(tpl.Chapters[0].Sections,
					models.TemplateSection{SectionNumber: "1.1", Title: "Again", Level: 1})
			},
			wantElement: "1.1",
		},
		{
			name: "empty section title",
			mutate: func(tpl *models.CustomTemplate) {
				tpl.Chapters[0].Sections[0].Title = ""
			},
			wantElement: "1.1",
		},
		{
			name: "level does not match depth",
			mutate: func(tpl *models.CustomTemplate) {
				tpl.Chapters[0].Sections[0].Level = 2
			},
			wantElement: "1.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := models.CustomTemplate{
				Chapters: []models.TemplateChapter{
					{
						ChapterNumber: 1,
						Title:         "Intro",
						Sections: []models.TemplateSection{
							{SectionNumber: "1.1", Title: "Background", Level: 1},
						},
					},
				},
			}
			tt.mutate(&tpl)

			err := ValidateTemplate(tpl)
			require.Error(t, err)

			ve, ok := err.(*ValidationError)
			require.True(t, ok, "expected ValidationError, got %T", err)
			assert.Equal(t, tt.wantElement, ve.Element)
		})
	}
}

package service

import (
	"testing"

	"reportcraft-backend/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestInTextCitation(t *testing.T) {
	tests := []struct {
		name    string
		authors []string
		year    int
		want    string
	}{
		{"no authors", nil, 2020, "(No Author, 2020)"},
		{"one author", []string{"Smith, J."}, 2020, "(Smith, 2020)"},
		{"two authors", []string{"Smith, J.", "Doe, A."}, 2021, "(Smith & Doe, 2021)"},
		{"three authors", []string{"Smith, J.", "Doe, A.", "Lee, K."}, 2022, "(Smith et al., 2022)"},
		{"five authors", []string{"A, A.", "B, B.", "C, C.", "D, D.", "E, E."}, 2023, "(A et al., 2023)"},
		{"author without comma", []string{"Smith"}, 2020, "(Smith, 2020)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InTextCitation(tt.authors, tt.year))
		})
	}
}

func TestFormatAPAArticle(t *testing.T) {
	ref := &models.Reference{
		ReferenceType: models.ReferenceArticle,
		Authors:       []string{"Smith, J.", "Doe, A."},
		Year:          2020,
		Title:         "A study of things",
		Journal:       strPtr("Journal of Studies"),
		Volume:        strPtr("12"),
		Issue:         strPtr("3"),
		Pages:         strPtr("45-67"),
	}

	got := FormatAPA(ref)
	assert.Equal(t, "Smith, J. & Doe, A. (2020). A study of things. Journal of Studies, 12(3), 45-67.", got)
}

func TestFormatAPAArticleMinimal(t *testing.T) {
	ref := &models.Reference{
		ReferenceType: models.ReferenceArticle,
		Authors:       []string{"Smith, J."},
		Year:          2020,
		Title:         "A study of things",
	}

	// Journal block is omitted entirely, no dangling separators
	assert.Equal(t, "Smith, J. (2020). A study of things.", FormatAPA(ref))
}

func TestFormatAPABook(t *testing.T) {
	ref := &models.Reference{
		ReferenceType:     models.ReferenceBook,
		Authors:           []string{"Knuth, D."},
		Year:              1997,
		Title:             "The Art of Computer Programming",
		Edition:           strPtr("3rd"),
		Publisher:         strPtr("Addison-Wesley"),
		PublisherLocation: strPtr("Boston"),
	}

	assert.Equal(t, "Knuth, D. (1997). The Art of Computer Programming (3rd ed.). Boston: Addison-Wesley.", FormatAPA(ref))
}

func TestFormatAPABookPublisherOnly(t *testing.T) {
	ref := &models.Reference{
		ReferenceType: models.ReferenceBook,
		Authors:       []string{"Knuth, D."},
		Year:          1997,
		Title:         "The Art of Computer Programming",
		Publisher:     strPtr("Addison-Wesley"),
	}

	assert.Equal(t, "Knuth, D. (1997). The Art of Computer Programming. Addison-Wesley.", FormatAPA(ref))
}

func TestFormatAPAWebsite(t *testing.T) {
	ref := &models.Reference{
		ReferenceType: models.ReferenceWebsite,
		Authors:       []string{"Mozilla"},
		Year:          2023,
		Title:         "HTTP caching",
		URL:           strPtr("https://developer.mozilla.org/docs/caching"),
	}

	assert.Equal(t, "Mozilla (2023). HTTP caching. Retrieved from https://developer.mozilla.org/docs/caching.", FormatAPA(ref))
}

func TestFormatAPADOISuffix(t *testing.T) {
	ref := &models.Reference{
		ReferenceType: models.ReferenceArticle,
		Authors:       []string{"Smith, J."},
		Year:          2020,
		Title:         "A study of things",
		DOI:           strPtr("10.1000/xyz123"),
	}

	assert.Equal(t, "Smith, J. (2020). A study of things. https://doi.org/10.1000/xyz123", FormatAPA(ref))
}

func TestFormatAPAThreeAuthors(t *testing.T) {
	ref := &models.Reference{
		ReferenceType: models.ReferenceBook,
		Authors:       []string{"Smith, J.", "Doe, A.", "Lee, K."},
		Year:          2019,
		Title:         "Collected works",
	}

	assert.Equal(t, "Smith, J., Doe, A., & Lee, K. (2019). Collected works.", FormatAPA(ref))
}

func TestRecomputeDerived(t *testing.T) {
	ref := &models.Reference{
		ReferenceType: models.ReferenceBook,
		Authors:       []string{"Smith, J."},
		Year:          2020,
		Title:         "Things",
	}

	recomputeDerived(ref)

	assert.Equal(t, "(Smith, 2020)", ref.InTextCitation)
	assert.Equal(t, "Smith, J. (2020). Things.", ref.FormattedAPA)
}

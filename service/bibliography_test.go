package service

import (
	"strings"
	"testing"

	"reportcraft-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRef(key string, authors []string, year int, title string) *models.Reference {
	ref := &models.Reference{
		CitationKey:   key,
		ReferenceType: models.ReferenceBook,
		Authors:       authors,
		Year:          year,
		Title:         title,
	}
	recomputeDerived(ref)
	return ref
}

func sectionWith(content string) *models.Section {
	return &models.Section{FinalContent: content}
}

func TestContainsKey(t *testing.T) {
	assert.True(t, containsKey("as shown by Smith2023 earlier", "Smith2023"))
	assert.True(t, containsKey("Smith2023", "Smith2023"))
	assert.True(t, containsKey("(Smith2023)", "Smith2023"))
	assert.False(t, containsKey("Smith2023a is a different work", "Smith2023"))
	assert.False(t, containsKey("NotSmith2023 here", "Smith2023"))
	assert.False(t, containsKey("", "Smith2023"))
	// Later whole-token occurrence still matches
	assert.True(t, containsKey("Smith2023a then Smith2023.", "Smith2023"))
	// Apostrophes and hyphens end a token, matching \b in the orphan scan
	assert.True(t, containsKey("As Smith2023's results show", "Smith2023"))
	assert.True(t, containsKey("the post-Smith2023 era", "Smith2023"))
}

func TestBuildBibliographyPossessiveCitation(t *testing.T) {
	refs := []*models.Reference{
		makeRef("Smith2023", []string{"Smith, J."}, 2023, "Results"),
	}
	sections := []*models.Section{
		sectionWith("As Smith2023's results show, the post-Smith2023 era differs."),
	}

	result := BuildBibliography(sections, refs)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "Smith2023", result.Entries[0].CitationKey)
	assert.Empty(t, result.UnusedReferences)
	assert.Empty(t, result.MissingReferences)
}

func TestBuildBibliographyUsedAndSorted(t *testing.T) {
	refs := []*models.Reference{
		makeRef("Zhang2021", []string{"Zhang, W."}, 2021, "On networks"),
		makeRef("Abel2019", []string{"Abel, N."}, 2019, "On groups"),
		makeRef("Abel2015", []string{"Abel, N."}, 2015, "Earlier work"),
	}
	sections := []*models.Section{
		sectionWith("As argued in Zhang2021 and Abel2019, also Abel2015."),
	}

	result := BuildBibliography(sections, refs)

	require.Len(t, result.Entries, 3)
	// Sorted by surname, then year ascending
	assert.Equal(t, "Abel2015", result.Entries[0].CitationKey)
	assert.Equal(t, "Abel2019", result.Entries[1].CitationKey)
	assert.Equal(t, "Zhang2021", result.Entries[2].CitationKey)

	assert.Empty(t, result.MissingReferences)
	assert.Empty(t, result.UnusedReferences)

	assert.True(t, strings.HasPrefix(result.Content, "References\n\n"))
	for _, ref := range result.Entries {
		assert.Contains(t, result.Content, ref.FormattedAPA)
	}
}

func TestBuildBibliographyWarnings(t *testing.T) {
	refs := []*models.Reference{
		makeRef("Used2020", []string{"Used, U."}, 2020, "Cited work"),
		makeRef("Unused2018", []string{"Unused, V."}, 2018, "Never cited"),
	}
	sections := []*models.Section{
		sectionWith("Per Used2020 and the unregistered Orphan2022 claim."),
		sectionWith(""),
	}

	result := BuildBibliography(sections, refs)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "Used2020", result.Entries[0].CitationKey)

	require.Len(t, result.MissingReferences, 1)
	assert.Equal(t, "Orphan2022", result.MissingReferences[0].CitationKey)

	require.Len(t, result.UnusedReferences, 1)
	assert.Equal(t, "Unused2018", result.UnusedReferences[0].CitationKey)

	// Unused references never appear on the page
	assert.NotContains(t, result.Content, "Never cited")
}

func TestBuildBibliographyEmpty(t *testing.T) {
	result := BuildBibliography(nil, nil)

	assert.Empty(t, result.Entries)
	assert.Empty(t, result.MissingReferences)
	assert.Empty(t, result.UnusedReferences)
	assert.Equal(t, "References\n", result.Content)
}

func TestBuildBibliographyKeySuffixesDistinct(t *testing.T) {
	refs := []*models.Reference{
		makeRef("Smith2023", []string{"Smith, J."}, 2023, "First"),
		makeRef("Smith2023a", []string{"Smith, J."}, 2023, "Second"),
	}
	sections := []*models.Section{
		sectionWith("Only Smith2023a is cited here."),
	}

	result := BuildBibliography(sections, refs)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "Smith2023a", result.Entries[0].CitationKey)
	require.Len(t, result.UnusedReferences, 1)
	assert.Equal(t, "Smith2023", result.UnusedReferences[0].CitationKey)
	assert.Empty(t, result.MissingReferences)
}

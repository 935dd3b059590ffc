package service

import (
	"regexp"
	"sort"
	"strings"

	"reportcraft-backend/models"
)

// Citation occurrences are detected by raw citation-key token match
// ("Smith2023"), not by the rendered in-text string. Key matching is
// deterministic; rendered-text matching drifts with formatting.
var citationKeyPattern = regexp.MustCompile(`\b[A-Z][A-Za-z'-]*\d{4}[a-z]?\b`)

// BibliographyWarning flags a mismatch between citation usage and the
// reference registry
type BibliographyWarning struct {
	CitationKey string `json:"citation_key"`
	Message     string `json:"message"`
}

// BibliographyResult is the advisory output of a bibliography run. The
// caller decides whether to persist Content into the report.
type BibliographyResult struct {
	Content           string                `json:"content"`
	Entries           []*models.Reference   `json:"entries"`
	MissingReferences []BibliographyWarning `json:"missing_references"`
	UnusedReferences  []BibliographyWarning `json:"unused_references"`
}

// containsKey reports whether content contains key as a whole token.
// Boundaries follow the same word-character class as citationKeyPattern's
// \b, so the used-key detector and the orphan scanner can never disagree
// about where a token ends ("Smith2023's" cites Smith2023 in both).
func containsKey(content, key string) bool {
	for idx := strings.Index(content, key); idx >= 0; {
		before := idx == 0 || !isWordChar(content[idx-1])
		end := idx + len(key)
		after := end == len(content) || !isWordChar(content[end])
		if before && after {
			return true
		}
		next := strings.Index(content[idx+1:], key)
		if next < 0 {
			return false
		}
		idx += 1 + next
	}
	return false
}

// isWordChar mirrors regexp's \w class ([0-9A-Za-z_])
func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// BuildBibliography scans the merged content of every section for citation
// usage and cross-checks it against the registry. Keys used but not
// registered become MissingReference warnings; registered keys never used
// become UnusedReference warnings. The page lists only references that are
// both registered and used, sorted by first author's surname
// (case-insensitive), year ascending, then title.
func BuildBibliography(sections []*models.Section, references []*models.Reference) *BibliographyResult {
	result := &BibliographyResult{
		Entries:           make([]*models.Reference, 0),
		MissingReferences: make([]BibliographyWarning, 0),
		UnusedReferences:  make([]BibliographyWarning, 0),
	}

	registered := make(map[string]*models.Reference, len(references))
	for _, ref := range references {
		registered[ref.CitationKey] = ref
	}

	used := make(map[string]bool)
	orphans := make(map[string]bool)
	for _, sec := range sections {
		if sec.FinalContent == "" {
			continue
		}
		for key := range registered {
			if !used[key] && containsKey(sec.FinalContent, key) {
				used[key] = true
			}
		}
		for _, candidate := range citationKeyPattern.FindAllString(sec.FinalContent, -1) {
			if _, ok := registered[candidate]; !ok {
				orphans[candidate] = true
			}
		}
	}

	for _, ref := range references {
		if used[ref.CitationKey] {
			result.Entries = append(result.Entries, ref)
		} else {
			result.UnusedReferences = append(result.UnusedReferences, BibliographyWarning{
				CitationKey: ref.CitationKey,
				Message:     "registered but never cited in section content",
			})
		}
	}
	for key := range orphans {
		result.MissingReferences = append(result.MissingReferences, BibliographyWarning{
			CitationKey: key,
			Message:     "cited in section content but not registered",
		})
	}
	sort.Slice(result.MissingReferences, func(i, j int) bool {
		return result.MissingReferences[i].CitationKey < result.MissingReferences[j].CitationKey
	})
	sort.Slice(result.UnusedReferences, func(i, j int) bool {
		return result.UnusedReferences[i].CitationKey < result.UnusedReferences[j].CitationKey
	})

	sort.Slice(result.Entries, func(i, j int) bool {
		a, b := result.Entries[i], result.Entries[j]
		sa := strings.ToLower(firstSurname(a.Authors))
		sb := strings.ToLower(firstSurname(b.Authors))
		if sa != sb {
			return sa < sb
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Title < b.Title
	})

	var page strings.Builder
	page.WriteString("References\n\n")
	for _, ref := range result.Entries {
		page.WriteString(ref.FormattedAPA)
		page.WriteString("\n\n")
	}
	result.Content = strings.TrimRight(page.String(), "\n") + "\n"

	return result
}

func firstSurname(authors []string) string {
	if len(authors) == 0 {
		return ""
	}
	return surname(authors[0])
}

package service

import (
	"fmt"
	"strings"

	"reportcraft-backend/models"
)

// surname extracts the portion of a "Last, F." author string before the
// first comma
func surname(author string) string {
	if idx := strings.Index(author, ","); idx >= 0 {
		return strings.TrimSpace(author[:idx])
	}
	return strings.TrimSpace(author)
}

// InTextCitation builds the parenthetical in-text form. Three-tier rule:
// one author "(Smith, 2020)", two "(Smith & Doe, 2020)", three or more
// "(Smith et al., 2020)".
func InTextCitation(authors []string, year int) string {
	switch len(authors) {
	case 0:
		return fmt.Sprintf("(No Author, %d)", year)
	case 1:
		return fmt.Sprintf("(%s, %d)", surname(authors[0]), year)
	case 2:
		return fmt.Sprintf("(%s & %s, %d)", surname(authors[0]), surname(authors[1]), year)
	default:
		return fmt.Sprintf("(%s et al., %d)", surname(authors[0]), year)
	}
}

// joinAuthors joins full author strings for a bibliography entry:
// one verbatim, two with " & ", three or more comma-joined with ", & "
// before the last.
func joinAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return "No author"
	case 1:
		return authors[0]
	case 2:
		return authors[0] + " & " + authors[1]
	default:
		return strings.Join(authors[:len(authors)-1], ", ") + ", & " + authors[len(authors)-1]
	}
}

// FormatAPA renders the full bibliography-style entry for a reference.
// Optional fields are omitted individually with no dangling separators.
func FormatAPA(ref *models.Reference) string {
	var b strings.Builder

	b.WriteString(joinAuthors(ref.Authors))
	fmt.Fprintf(&b, " (%d). %s", ref.Year, ref.Title)

	switch ref.ReferenceType {
	case models.ReferenceArticle:
		b.WriteString(".")
		if ref.Journal != nil && *ref.Journal != "" {
			b.WriteString(" " + *ref.Journal)
			if ref.Volume != nil && *ref.Volume != "" {
				b.WriteString(", " + *ref.Volume)
				if ref.Issue != nil && *ref.Issue != "" {
					b.WriteString("(" + *ref.Issue + ")")
				}
			}
			if ref.Pages != nil && *ref.Pages != "" {
				b.WriteString(", " + *ref.Pages)
			}
			b.WriteString(".")
		}

	case models.ReferenceBook:
		if ref.Edition != nil && *ref.Edition != "" {
			b.WriteString(" (" + *ref.Edition + " ed.)")
		}
		b.WriteString(".")
		if ref.PublisherLocation != nil && *ref.PublisherLocation != "" {
			b.WriteString(" " + *ref.PublisherLocation)
			if ref.Publisher != nil && *ref.Publisher != "" {
				b.WriteString(": " + *ref.Publisher)
			}
			b.WriteString(".")
		} else if ref.Publisher != nil && *ref.Publisher != "" {
			b.WriteString(" " + *ref.Publisher + ".")
		}

	case models.ReferenceWebsite:
		b.WriteString(".")
		if ref.URL != nil && *ref.URL != "" {
			b.WriteString(" Retrieved from " + *ref.URL + ".")
		}

	default:
		b.WriteString(".")
	}

	if ref.DOI != nil && *ref.DOI != "" {
		b.WriteString(" https://doi.org/" + *ref.DOI)
	}

	return b.String()
}

// recomputeDerived refreshes both derived citation fields in place
func recomputeDerived(ref *models.Reference) {
	ref.InTextCitation = InTextCitation(ref.Authors, ref.Year)
	ref.FormattedAPA = FormatAPA(ref)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"reportcraft-backend/models"
	"reportcraft-backend/repository"

	"github.com/google/uuid"
)

// DocumentService assembles a report's full plain-text document from its
// chapter tree, merged section content, and bibliography.
type DocumentService struct {
	reportRepo    *repository.ReportRepository
	chapterRepo   *repository.ChapterRepository
	sectionRepo   *repository.SectionRepository
	referenceRepo *repository.ReferenceRepository
}

// DocumentServiceOption is a functional option for DocumentService
type DocumentServiceOption func(*DocumentService)

// DocumentWithReportRepository sets the report repository
func DocumentWithReportRepository(repo *repository.ReportRepository) DocumentServiceOption {
	return func(s *DocumentService) {
		s.reportRepo = repo
	}
}

// DocumentWithChapterRepository sets the chapter repository
func DocumentWithChapterRepository(repo *repository.ChapterRepository) DocumentServiceOption {
	return func(s *DocumentService) {
		s.chapterRepo = repo
	}
}

// DocumentWithSectionRepository sets the section repository
func DocumentWithSectionRepository(repo *repository.SectionRepository) DocumentServiceOption {
	return func(s *DocumentService) {
		s.sectionRepo = repo
	}
}

// DocumentWithReferenceRepository sets the reference repository
func DocumentWithReferenceRepository(repo *repository.ReferenceRepository) DocumentServiceOption {
	return func(s *DocumentService) {
		s.referenceRepo = repo
	}
}

// NewDocumentService creates a new document service
func NewDocumentService(opts ...DocumentServiceOption) *DocumentService {
	s := &DocumentService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AssembleDocumentRequest represents a request to assemble a report
type AssembleDocumentRequest struct {
	ReportID uuid.UUID
	UserID   uuid.UUID
}

// AssembleDocumentResult carries the assembled document text
type AssembleDocumentResult struct {
	Report   *models.Report
	Document string
}

// AssembleDocument renders the whole report in document order: title,
// chapters by chapter number, sections by position with their merged
// content, then the references page when any citation resolves.
func (s *DocumentService) AssembleDocument(ctx context.Context, req AssembleDocumentRequest) (*AssembleDocumentResult, error) {
	if s.reportRepo == nil || s.chapterRepo == nil || s.sectionRepo == nil {
		return nil, errors.New("repositories not set")
	}

	report, err := s.reportRepo.GetByID(ctx, req.ReportID)
	if err != nil {
		return nil, ErrReportNotFound
	}
	if report.UserID != req.UserID {
		return nil, ErrReportNotFound
	}

	chapters, err := s.chapterRepo.ListByReportID(ctx, req.ReportID)
	if err != nil {
		return nil, err
	}
	var allSections []*models.Section
	for _, chapter := range chapters {
		sections, err := s.sectionRepo.ListByChapterID(ctx, chapter.ID)
		if err != nil {
			return nil, err
		}
		chapter.Sections = sections
		allSections = append(allSections, sections...)
	}
	report.Chapters = chapters

	var b strings.Builder
	b.WriteString(report.Title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len(report.Title)))
	b.WriteString("\n\n")

	for _, chapter := range chapters {
		fmt.Fprintf(&b, "Chapter %d: %s\n\n", chapter.ChapterNumber, chapter.Title)
		for _, section := range chapter.Sections {
			fmt.Fprintf(&b, "%s %s\n\n", section.SectionNumber, section.Title)
			if section.FinalContent != "" {
				b.WriteString(section.FinalContent)
				b.WriteString("\n\n")
			}
		}
	}

	if s.referenceRepo != nil {
		references, err := s.referenceRepo.ListByReportID(ctx, req.ReportID)
		if err != nil {
			return nil, err
		}
		bib := BuildBibliography(allSections, references)
		if len(bib.Entries) > 0 {
			b.WriteString(bib.Content)
		}
	}

	return &AssembleDocumentResult{
		Report:   report,
		Document: strings.TrimRight(b.String(), "\n") + "\n",
	}, nil
}

package service

import (
	"context"
	"errors"

	"reportcraft-backend/repository"

	"github.com/google/uuid"
)

// BibliographyService builds the references page for a report from a
// single snapshot of its sections and registry.
type BibliographyService struct {
	reportRepo    *repository.ReportRepository
	sectionRepo   *repository.SectionRepository
	referenceRepo *repository.ReferenceRepository
}

// BibliographyServiceOption is a functional option for BibliographyService
type BibliographyServiceOption func(*BibliographyService)

// BibliographyWithReportRepository sets the report repository
func BibliographyWithReportRepository(repo *repository.ReportRepository) BibliographyServiceOption {
	return func(s *BibliographyService) {
		s.reportRepo = repo
	}
}

// BibliographyWithSectionRepository sets the section repository
func BibliographyWithSectionRepository(repo *repository.SectionRepository) BibliographyServiceOption {
	return func(s *BibliographyService) {
		s.sectionRepo = repo
	}
}

// BibliographyWithReferenceRepository sets the reference repository
func BibliographyWithReferenceRepository(repo *repository.ReferenceRepository) BibliographyServiceOption {
	return func(s *BibliographyService) {
		s.referenceRepo = repo
	}
}

// NewBibliographyService creates a new bibliography service
func NewBibliographyService(opts ...BibliographyServiceOption) *BibliographyService {
	s := &BibliographyService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateBibliographyRequest represents a request to build the
// references page
type GenerateBibliographyRequest struct {
	ReportID uuid.UUID
	UserID   uuid.UUID
}

// GenerateBibliography scans every section's merged content against the
// report's reference registry and returns the rendered page plus
// missing/unused warnings. The output is advisory; nothing is persisted.
func (s *BibliographyService) GenerateBibliography(ctx context.Context, req GenerateBibliographyRequest) (*BibliographyResult, error) {
	if s.reportRepo == nil || s.sectionRepo == nil || s.referenceRepo == nil {
		return nil, errors.New("repositories not set")
	}

	report, err := s.reportRepo.GetByID(ctx, req.ReportID)
	if err != nil {
		return nil, ErrReportNotFound
	}
	if report.UserID != req.UserID {
		return nil, ErrReportNotFound
	}

	sections, err := s.sectionRepo.ListByReportID(ctx, req.ReportID)
	if err != nil {
		return nil, err
	}
	references, err := s.referenceRepo.ListByReportID(ctx, req.ReportID)
	if err != nil {
		return nil, err
	}

	return BuildBibliography(sections, references), nil
}

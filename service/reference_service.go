package service

import (
	"context"
	"errors"
	"strings"

	"reportcraft-backend/models"
	"reportcraft-backend/repository"

	"github.com/google/uuid"
)

// ReferenceService owns the citation registry for a report. Derived
// fields (in-text citation, APA entry) are recomputed on every mutation,
// never edited independently.
type ReferenceService struct {
	reportRepo    *repository.ReportRepository
	sectionRepo   *repository.SectionRepository
	referenceRepo *repository.ReferenceRepository
}

// ReferenceServiceOption is a functional option for ReferenceService
type ReferenceServiceOption func(*ReferenceService)

// ReferenceWithReportRepository sets the report repository
func ReferenceWithReportRepository(repo *repository.ReportRepository) ReferenceServiceOption {
	return func(s *ReferenceService) {
		s.reportRepo = repo
	}
}

// ReferenceWithSectionRepository sets the section repository
func ReferenceWithSectionRepository(repo *repository.SectionRepository) ReferenceServiceOption {
	return func(s *ReferenceService) {
		s.sectionRepo = repo
	}
}

// ReferenceWithReferenceRepository sets the reference repository
func ReferenceWithReferenceRepository(repo *repository.ReferenceRepository) ReferenceServiceOption {
	return func(s *ReferenceService) {
		s.referenceRepo = repo
	}
}

// NewReferenceService creates a new reference service
func NewReferenceService(opts ...ReferenceServiceOption) *ReferenceService {
	s := &ReferenceService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReferenceFields carries the caller-editable fields of a reference
type ReferenceFields struct {
	CitationKey   string
	ReferenceType models.ReferenceType
	Authors       []string
	Year          int
	Title         string

	Journal           *string
	Volume            *string
	Issue             *string
	Pages             *string
	Edition           *string
	Publisher         *string
	PublisherLocation *string
	DOI               *string
	URL               *string
}

func validateReferenceFields(fields ReferenceFields) error {
	if strings.TrimSpace(fields.CitationKey) == "" {
		return newValidationError("citation_key", "citation key is required")
	}
	if len(fields.Authors) == 0 {
		return newValidationError("authors", "at least one author is required")
	}
	for _, author := range fields.Authors {
		if strings.TrimSpace(author) == "" {
			return newValidationError("authors", "author entries cannot be empty")
		}
	}
	if fields.Year < 1000 || fields.Year > 9999 {
		return newValidationError("year", "year must be a 4-digit value, got %d", fields.Year)
	}
	if strings.TrimSpace(fields.Title) == "" {
		return newValidationError("title", "title is required")
	}
	switch fields.ReferenceType {
	case models.ReferenceArticle, models.ReferenceBook, models.ReferenceWebsite:
	default:
		return newValidationError("reference_type", "unknown reference type %q", fields.ReferenceType)
	}
	return nil
}

func applyFields(ref *models.Reference, fields ReferenceFields) {
	ref.CitationKey = fields.CitationKey
	ref.ReferenceType = fields.ReferenceType
	ref.Authors = fields.Authors
	ref.Year = fields.Year
	ref.Title = fields.Title
	ref.Journal = fields.Journal
	ref.Volume = fields.Volume
	ref.Issue = fields.Issue
	ref.Pages = fields.Pages
	ref.Edition = fields.Edition
	ref.Publisher = fields.Publisher
	ref.PublisherLocation = fields.PublisherLocation
	ref.DOI = fields.DOI
	ref.URL = fields.URL
	recomputeDerived(ref)
}

// AddReferenceRequest represents a request to register a reference
type AddReferenceRequest struct {
	ReportID uuid.UUID
	UserID   uuid.UUID
	Fields   ReferenceFields
}

// AddReferenceResult represents the result of registering a reference
type AddReferenceResult struct {
	Reference *models.Reference
}

// AddReference registers a citation record for a report. Duplicate
// citation keys within the report are rejected.
func (s *ReferenceService) AddReference(ctx context.Context, req AddReferenceRequest) (*AddReferenceResult, error) {
	if s.reportRepo == nil || s.referenceRepo == nil {
		return nil, errors.New("repositories not set")
	}

	if err := s.checkReportOwner(ctx, req.ReportID, req.UserID); err != nil {
		return nil, err
	}
	if err := validateReferenceFields(req.Fields); err != nil {
		return nil, err
	}

	exists, err := s.referenceRepo.KeyExists(ctx, req.ReportID, req.Fields.CitationKey, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, newValidationError("citation_key", "citation key %q already exists for this report", req.Fields.CitationKey)
	}

	ref := &models.Reference{ReportID: req.ReportID}
	applyFields(ref, req.Fields)

	if err := s.referenceRepo.Create(ctx, ref); err != nil {
		return nil, err
	}

	return &AddReferenceResult{Reference: ref}, nil
}

// GetReferenceRequest represents a request to fetch one reference
type GetReferenceRequest struct {
	ReferenceID uuid.UUID
	UserID      uuid.UUID
}

// GetReferenceResult represents the result of fetching a reference
type GetReferenceResult struct {
	Reference *models.Reference
}

// GetReference retrieves a reference after verifying the caller owns the
// report it belongs to.
func (s *ReferenceService) GetReference(ctx context.Context, req GetReferenceRequest) (*GetReferenceResult, error) {
	if s.reportRepo == nil || s.referenceRepo == nil {
		return nil, errors.New("repositories not set")
	}

	ref, err := s.referenceRepo.GetByID(ctx, req.ReferenceID)
	if err != nil {
		return nil, ErrReferenceNotFound
	}

	report, err := s.reportRepo.GetByID(ctx, ref.ReportID)
	if err != nil {
		return nil, ErrReferenceNotFound
	}
	if report.UserID != req.UserID {
		return nil, ErrNotOwner
	}

	return &GetReferenceResult{Reference: ref}, nil
}

// ListReferencesRequest represents a request to list a report's references
type ListReferencesRequest struct {
	ReportID uuid.UUID
	UserID   uuid.UUID
}

// ListReferencesResult represents the result of listing references
type ListReferencesResult struct {
	References []*models.Reference
}

// ListReferences lists all references registered for a report
func (s *ReferenceService) ListReferences(ctx context.Context, req ListReferencesRequest) (*ListReferencesResult, error) {
	if s.reportRepo == nil || s.referenceRepo == nil {
		return nil, errors.New("repositories not set")
	}

	if err := s.checkReportOwner(ctx, req.ReportID, req.UserID); err != nil {
		return nil, err
	}

	refs, err := s.referenceRepo.ListByReportID(ctx, req.ReportID)
	if err != nil {
		return nil, err
	}

	return &ListReferencesResult{References: refs}, nil
}

// UpdateReferenceRequest represents a request to update a reference
type UpdateReferenceRequest struct {
	ReferenceID uuid.UUID
	UserID      uuid.UUID
	Fields      ReferenceFields
}

// UpdateReferenceResult represents the result of updating a reference
type UpdateReferenceResult struct {
	Reference *models.Reference
}

// UpdateReference replaces a reference's fields and recomputes both
// derived citation forms.
func (s *ReferenceService) UpdateReference(ctx context.Context, req UpdateReferenceRequest) (*UpdateReferenceResult, error) {
	result, err := s.GetReference(ctx, GetReferenceRequest{ReferenceID: req.ReferenceID, UserID: req.UserID})
	if err != nil {
		return nil, err
	}
	ref := result.Reference

	if err := validateReferenceFields(req.Fields); err != nil {
		return nil, err
	}

	exists, err := s.referenceRepo.KeyExists(ctx, ref.ReportID, req.Fields.CitationKey, ref.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, newValidationError("citation_key", "citation key %q already exists for this report", req.Fields.CitationKey)
	}

	applyFields(ref, req.Fields)

	if err := s.referenceRepo.Update(ctx, ref); err != nil {
		return nil, err
	}

	return &UpdateReferenceResult{Reference: ref}, nil
}

// RemoveReferenceRequest represents a request to remove a reference
type RemoveReferenceRequest struct {
	ReferenceID uuid.UUID
	UserID      uuid.UUID

	// Force removes the reference even when its key is still cited
	Force bool
}

// RemoveReferenceResult represents the result of removing a reference
type RemoveReferenceResult struct{}

// RemoveReference deletes a reference. Without Force the removal is
// refused while the citation key still appears in any section's merged
// content, protecting bibliography integrity.
func (s *ReferenceService) RemoveReference(ctx context.Context, req RemoveReferenceRequest) (*RemoveReferenceResult, error) {
	if s.sectionRepo == nil {
		return nil, errors.New("section repository not set")
	}

	result, err := s.GetReference(ctx, GetReferenceRequest{ReferenceID: req.ReferenceID, UserID: req.UserID})
	if err != nil {
		return nil, err
	}
	ref := result.Reference

	if !req.Force {
		sections, err := s.sectionRepo.ListByReportID(ctx, ref.ReportID)
		if err != nil {
			return nil, err
		}
		for _, section := range sections {
			if containsKey(section.FinalContent, ref.CitationKey) {
				return nil, ErrReferenceInUse
			}
		}
	}

	if err := s.referenceRepo.Delete(ctx, ref.ID); err != nil {
		return nil, err
	}

	return &RemoveReferenceResult{}, nil
}

func (s *ReferenceService) checkReportOwner(ctx context.Context, reportID, userID uuid.UUID) error {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return ErrReportNotFound
	}
	if report.UserID != userID {
		return ErrReportNotFound
	}
	return nil
}

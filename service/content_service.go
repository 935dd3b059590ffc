package service

import (
	"context"
	"errors"
	"time"

	"reportcraft-backend/models"
	"reportcraft-backend/repository"

	"github.com/google/uuid"
)

// ContentService resolves section content from its provenance slots and
// drives the generation collaborator. All mutations go through the
// single-writer-per-section guard and version-checked saves.
type ContentService struct {
	reportRepo  *repository.ReportRepository
	chapterRepo *repository.ChapterRepository
	sectionRepo *repository.SectionRepository
	generator   Generator
	genTimeout  time.Duration
	locks       *sectionLocks
}

// ContentServiceOption is a functional option for ContentService
type ContentServiceOption func(*ContentService)

// ContentWithReportRepository sets the report repository
func ContentWithReportRepository(repo *repository.ReportRepository) ContentServiceOption {
	return func(s *ContentService) {
		s.reportRepo = repo
	}
}

// ContentWithChapterRepository sets the chapter repository
func ContentWithChapterRepository(repo *repository.ChapterRepository) ContentServiceOption {
	return func(s *ContentService) {
		s.chapterRepo = repo
	}
}

// ContentWithSectionRepository sets the section repository
func ContentWithSectionRepository(repo *repository.SectionRepository) ContentServiceOption {
	return func(s *ContentService) {
		s.sectionRepo = repo
	}
}

// ContentWithGenerator sets the generation collaborator
func ContentWithGenerator(gen Generator) ContentServiceOption {
	return func(s *ContentService) {
		s.generator = gen
	}
}

// ContentWithGenerationTimeout bounds a single generation call
func ContentWithGenerationTimeout(timeout time.Duration) ContentServiceOption {
	return func(s *ContentService) {
		s.genTimeout = timeout
	}
}

// NewContentService creates a new content service
func NewContentService(opts ...ContentServiceOption) *ContentService {
	s := &ContentService{
		genTimeout: DefaultGenerationTimeout,
		locks:      newSectionLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// resolveSection loads a section with its chapter and report and checks
// ownership. Cross-user access is reported as not found.
func (s *ContentService) resolveSection(ctx context.Context, sectionID, userID uuid.UUID) (*models.Section, *models.Chapter, *models.Report, error) {
	section, err := s.sectionRepo.GetByID(ctx, sectionID)
	if err != nil {
		return nil, nil, nil, ErrSectionNotFound
	}
	chapter, err := s.chapterRepo.GetByID(ctx, section.ChapterID)
	if err != nil {
		return nil, nil, nil, ErrSectionNotFound
	}
	report, err := s.reportRepo.GetByID(ctx, chapter.ReportID)
	if err != nil {
		return nil, nil, nil, ErrSectionNotFound
	}
	if report.UserID != userID {
		return nil, nil, nil, ErrSectionNotFound
	}
	return section, chapter, report, nil
}

// mapSaveError translates a guarded content save failure. Only a stale
// version check becomes a conflict; infrastructure errors pass through.
func mapSaveError(err error) error {
	if errors.Is(err, repository.ErrStaleVersion) {
		return ErrVersionConflict
	}
	return err
}

// SetUserContentRequest represents a typed or uploaded content submission
type SetUserContentRequest struct {
	SectionID uuid.UUID
	UserID    uuid.UUID
	Content   string
}

// SetUserContentResult represents the result of a content submission
type SetUserContentResult struct {
	Section *models.Section
}

// SetUserContent stores user-authored content (typed or uploaded) in a
// section and recomputes the merged content and word count.
func (s *ContentService) SetUserContent(ctx context.Context, req SetUserContentRequest) (*SetUserContentResult, error) {
	if s.sectionRepo == nil || s.chapterRepo == nil || s.reportRepo == nil {
		return nil, errors.New("repositories not set")
	}

	if err := s.locks.Acquire(req.SectionID); err != nil {
		return nil, err
	}
	defer s.locks.Release(req.SectionID)

	section, _, report, err := s.resolveSection(ctx, req.SectionID, req.UserID)
	if err != nil {
		return nil, err
	}

	section.UserContent = req.Content
	applyMerge(section)

	if err := s.sectionRepo.UpdateContent(ctx, section); err != nil {
		return nil, mapSaveError(err)
	}

	if err := s.advanceReportStatus(ctx, report, section); err != nil {
		return nil, err
	}

	return &SetUserContentResult{Section: section}, nil
}

// GenerateSectionRequest represents a request to generate section content
type GenerateSectionRequest struct {
	SectionID uuid.UUID
	UserID    uuid.UUID
}

// GenerateSectionResult represents the result of generating content
type GenerateSectionResult struct {
	Section *models.Section
}

// GenerateSection asks the generation collaborator for section prose,
// grounded in the report context and any user content. The call is
// bounded; on failure or timeout nothing is written, so the section keeps
// its prior content and source type. Other sections of the same report
// can generate concurrently; a second operation on this section is
// rejected instead of racing.
func (s *ContentService) GenerateSection(ctx context.Context, req GenerateSectionRequest) (*GenerateSectionResult, error) {
	if s.sectionRepo == nil || s.chapterRepo == nil || s.reportRepo == nil {
		return nil, errors.New("repositories not set")
	}
	if s.generator == nil {
		return nil, errors.New("generator not set")
	}

	if err := s.locks.Acquire(req.SectionID); err != nil {
		return nil, err
	}
	defer s.locks.Release(req.SectionID)

	section, chapter, report, err := s.resolveSection(ctx, req.SectionID, req.UserID)
	if err != nil {
		return nil, err
	}

	genCtx := GenerationContext{
		ReportTitle:   report.Title,
		Department:    report.Department,
		ChapterNumber: chapter.ChapterNumber,
		ChapterTitle:  chapter.Title,
		SectionNumber: section.SectionNumber,
		SectionTitle:  section.Title,
		UserContent:   section.UserContent,
	}

	content, err := generateBounded(ctx, s.generator, genCtx, s.genTimeout)
	if err != nil {
		return nil, err
	}

	section.AiContent = content
	applyMerge(section)

	if err := s.sectionRepo.UpdateContent(ctx, section); err != nil {
		return nil, mapSaveError(err)
	}

	if err := s.advanceReportStatus(ctx, report, section); err != nil {
		return nil, err
	}

	return &GenerateSectionResult{Section: section}, nil
}

// GetSectionContentRequest represents a request to read a section
type GetSectionContentRequest struct {
	SectionID uuid.UUID
	UserID    uuid.UUID
}

// GetSectionContentResult carries all content slots and provenance
type GetSectionContentResult struct {
	Section *models.Section
}

// GetSectionContent retrieves a section with all three content slots
func (s *ContentService) GetSectionContent(ctx context.Context, req GetSectionContentRequest) (*GetSectionContentResult, error) {
	if s.sectionRepo == nil || s.chapterRepo == nil || s.reportRepo == nil {
		return nil, errors.New("repositories not set")
	}

	section, _, _, err := s.resolveSection(ctx, req.SectionID, req.UserID)
	if err != nil {
		return nil, err
	}

	return &GetSectionContentResult{Section: section}, nil
}

// ResolveOwnedSection checks that a section belongs to the user and
// returns it. Used by the file handler before attaching assets.
func (s *ContentService) ResolveOwnedSection(ctx context.Context, sectionID, userID uuid.UUID) (*models.Section, error) {
	section, _, _, err := s.resolveSection(ctx, sectionID, userID)
	return section, err
}

// advanceReportStatus moves a draft report to in-progress the first time
// any section leaves the empty state. Completion is never automatic.
func (s *ContentService) advanceReportStatus(ctx context.Context, report *models.Report, section *models.Section) error {
	if report.Status != models.StatusDraft || section.FinalContent == "" {
		return nil
	}
	return s.reportRepo.UpdateStatus(ctx, report.ID, models.StatusInProgress)
}

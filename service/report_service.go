package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"reportcraft-backend/models"
	"reportcraft-backend/repository"
	"reportcraft-backend/storage"

	"github.com/google/uuid"
)

// ReportService owns the report lifecycle: skeleton creation, tree reads,
// status transitions, and cascading deletion.
type ReportService struct {
	reportRepo  *repository.ReportRepository
	chapterRepo *repository.ChapterRepository
	sectionRepo *repository.SectionRepository
	fileStorage storage.Storage
}

// ReportServiceOption is a functional option for ReportService
type ReportServiceOption func(*ReportService)

// WithReportRepository sets the report repository
func WithReportRepository(repo *repository.ReportRepository) ReportServiceOption {
	return func(s *ReportService) {
		s.reportRepo = repo
	}
}

// WithChapterRepository sets the chapter repository
func WithChapterRepository(repo *repository.ChapterRepository) ReportServiceOption {
	return func(s *ReportService) {
		s.chapterRepo = repo
	}
}

// WithSectionRepository sets the section repository
func WithSectionRepository(repo *repository.SectionRepository) ReportServiceOption {
	return func(s *ReportService) {
		s.sectionRepo = repo
	}
}

// WithFileStorage sets the file storage backend used for cascade cleanup
func WithFileStorage(fs storage.Storage) ReportServiceOption {
	return func(s *ReportService) {
		s.fileStorage = fs
	}
}

// NewReportService creates a new report service
func NewReportService(opts ...ReportServiceOption) *ReportService {
	s := &ReportService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateReportRequest represents a request to create a report
type CreateReportRequest struct {
	UserID         uuid.UUID
	Title          string
	Department     string
	TemplateType   models.TemplateType
	CustomTemplate *models.CustomTemplate
}

// CreateReportResult represents the result of creating a report
type CreateReportResult struct {
	Report *models.Report
}

// CreateReport creates a report with its chapter/section skeleton already
// populated. Default reports get the fixed five-chapter catalogue; custom
// reports get the supplied schema after validation. Creation is atomic.
func (s *ReportService) CreateReport(ctx context.Context, req CreateReportRequest) (*CreateReportResult, error) {
	if s.reportRepo == nil {
		return nil, errors.New("report repository not set")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, newValidationError("title", "title is required")
	}
	if strings.TrimSpace(req.Department) == "" {
		return nil, newValidationError("department", "department is required")
	}

	templateType := req.TemplateType
	if templateType == "" {
		templateType = models.TemplateDefault
	}

	var tpl models.CustomTemplate
	switch templateType {
	case models.TemplateDefault:
		tpl = DefaultTemplate()
	case models.TemplateCustom:
		if req.CustomTemplate == nil {
			return nil, newValidationError("custom_template", "custom template is required for template_type custom")
		}
		tpl = *req.CustomTemplate
	default:
		return nil, newValidationError("template_type", "unknown template type %q", templateType)
	}

	if err := ValidateTemplate(tpl); err != nil {
		return nil, err
	}

	report := &models.Report{
		UserID:       req.UserID,
		Title:        req.Title,
		Department:   req.Department,
		TemplateType: templateType,
		Status:       models.StatusDraft,
	}
	if templateType == models.TemplateCustom {
		report.CustomTemplate = req.CustomTemplate
	}

	for _, tplChapter := range tpl.Chapters {
		chapter := &models.Chapter{
			ChapterNumber: tplChapter.ChapterNumber,
			Title:         tplChapter.Title,
		}
		for pos, tplSection := range tplChapter.Sections {
			chapter.Sections = append(chapter.Sections, &models.Section{
				SectionNumber: tplSection.SectionNumber,
				Title:         tplSection.Title,
				Level:         tplSection.Level,
				Position:      pos,
				SourceType:    models.SourceUserUploaded,
			})
		}
		report.Chapters = append(report.Chapters, chapter)
	}

	if err := s.reportRepo.CreateWithTree(ctx, report); err != nil {
		return nil, err
	}

	return &CreateReportResult{Report: report}, nil
}

// getOwnedReport loads a report and verifies ownership. A report owned by
// someone else is reported as not found so existence is not revealed.
func (s *ReportService) getOwnedReport(ctx context.Context, reportID, userID uuid.UUID) (*models.Report, error) {
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, ErrReportNotFound
	}
	if report.UserID != userID {
		return nil, ErrReportNotFound
	}
	return report, nil
}

// GetReportRequest represents a request to fetch a report with its tree
type GetReportRequest struct {
	ReportID uuid.UUID
	UserID   uuid.UUID
}

// GetReportResult represents the result of fetching a report
type GetReportResult struct {
	Report *models.Report
}

// GetReport retrieves a report with all chapters and sections
func (s *ReportService) GetReport(ctx context.Context, req GetReportRequest) (*GetReportResult, error) {
	if s.reportRepo == nil || s.chapterRepo == nil || s.sectionRepo == nil {
		return nil, errors.New("repositories not set")
	}

	report, err := s.getOwnedReport(ctx, req.ReportID, req.UserID)
	if err != nil {
		return nil, err
	}

	chapters, err := s.chapterRepo.ListByReportID(ctx, req.ReportID)
	if err != nil {
		return nil, err
	}
	for _, chapter := range chapters {
		sections, err := s.sectionRepo.ListByChapterID(ctx, chapter.ID)
		if err != nil {
			return nil, err
		}
		chapter.Sections = sections
	}
	report.Chapters = chapters

	return &GetReportResult{Report: report}, nil
}

// ListReportsRequest represents a request to list a user's reports
type ListReportsRequest struct {
	UserID uuid.UUID
}

// ListReportsResult represents the result of listing reports
type ListReportsResult struct {
	Reports []*models.Report
}

// ListReports lists all reports owned by a user
func (s *ReportService) ListReports(ctx context.Context, req ListReportsRequest) (*ListReportsResult, error) {
	if s.reportRepo == nil {
		return nil, errors.New("report repository not set")
	}

	reports, err := s.reportRepo.ListByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	return &ListReportsResult{Reports: reports}, nil
}

// GetChapterRequest represents a request to fetch a chapter with sections
type GetChapterRequest struct {
	ReportID  uuid.UUID
	ChapterID uuid.UUID
	UserID    uuid.UUID
}

// GetChapterResult represents the result of fetching a chapter
type GetChapterResult struct {
	Chapter *models.Chapter
}

// GetChapter retrieves a chapter scoped to its report. Cross-report IDs
// are not found even when the chapter exists elsewhere.
func (s *ReportService) GetChapter(ctx context.Context, req GetChapterRequest) (*GetChapterResult, error) {
	if s.reportRepo == nil || s.chapterRepo == nil || s.sectionRepo == nil {
		return nil, errors.New("repositories not set")
	}

	if _, err := s.getOwnedReport(ctx, req.ReportID, req.UserID); err != nil {
		return nil, err
	}

	chapter, err := s.chapterRepo.GetByReportAndID(ctx, req.ReportID, req.ChapterID)
	if err != nil {
		return nil, ErrChapterNotFound
	}

	sections, err := s.sectionRepo.ListByChapterID(ctx, chapter.ID)
	if err != nil {
		return nil, err
	}
	chapter.Sections = sections

	return &GetChapterResult{Chapter: chapter}, nil
}

// UpdateReportRequest represents a request to update report metadata.
// Status accepts an explicit override; regressions happen only this way.
type UpdateReportRequest struct {
	ReportID       uuid.UUID
	UserID         uuid.UUID
	Title          *string
	Department     *string
	StatusOverride *models.ReportStatus
}

// UpdateReportResult represents the result of updating a report
type UpdateReportResult struct {
	Report *models.Report
}

// UpdateReport updates report metadata and, when requested, overrides the
// lifecycle status explicitly.
func (s *ReportService) UpdateReport(ctx context.Context, req UpdateReportRequest) (*UpdateReportResult, error) {
	if s.reportRepo == nil {
		return nil, errors.New("report repository not set")
	}

	report, err := s.getOwnedReport(ctx, req.ReportID, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, newValidationError("title", "title cannot be empty")
		}
		report.Title = *req.Title
	}
	if req.Department != nil {
		report.Department = *req.Department
	}
	if req.StatusOverride != nil {
		switch *req.StatusOverride {
		case models.StatusDraft, models.StatusInProgress, models.StatusCompleted:
			report.Status = *req.StatusOverride
		default:
			return nil, newValidationError("status", "unknown status %q", *req.StatusOverride)
		}
	}

	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}

	return &UpdateReportResult{Report: report}, nil
}

// CompleteReportRequest represents an explicit completion request
type CompleteReportRequest struct {
	ReportID uuid.UUID
	UserID   uuid.UUID
}

// CompleteReportResult represents the result of completing a report
type CompleteReportResult struct {
	Report *models.Report
}

// CompleteReport transitions an in-progress report to completed. The
// transition is always explicit: full content coverage alone never
// completes a report. Incomplete sections fail the request by number.
func (s *ReportService) CompleteReport(ctx context.Context, req CompleteReportRequest) (*CompleteReportResult, error) {
	if s.reportRepo == nil || s.sectionRepo == nil {
		return nil, errors.New("repositories not set")
	}

	report, err := s.getOwnedReport(ctx, req.ReportID, req.UserID)
	if err != nil {
		return nil, err
	}
	if report.Status == models.StatusCompleted {
		return &CompleteReportResult{Report: report}, nil
	}

	sections, err := s.sectionRepo.ListByReportID(ctx, req.ReportID)
	if err != nil {
		return nil, err
	}

	if incomplete := IncompleteSections(sections); len(incomplete) > 0 {
		return nil, newValidationError("sections",
			"cannot complete report, sections without content: %s", strings.Join(incomplete, ", "))
	}

	report.Status = models.StatusCompleted
	now := time.Now().UTC()
	report.CompletedAt = &now
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}

	return &CompleteReportResult{Report: report}, nil
}

// DeleteReportRequest represents a request to delete a report
type DeleteReportRequest struct {
	ReportID uuid.UUID
	UserID   uuid.UUID
}

// DeleteReportResult represents the result of deleting a report
type DeleteReportResult struct{}

// DeleteReport removes a report and everything it owns. The database
// cascade is one transaction; stored file bytes are removed best-effort
// after commit since the asset store has no transactions.
func (s *ReportService) DeleteReport(ctx context.Context, req DeleteReportRequest) (*DeleteReportResult, error) {
	if s.reportRepo == nil {
		return nil, errors.New("report repository not set")
	}

	if _, err := s.getOwnedReport(ctx, req.ReportID, req.UserID); err != nil {
		return nil, err
	}

	storagePaths, err := s.reportRepo.Delete(ctx, req.ReportID)
	if err != nil {
		return nil, err
	}

	if s.fileStorage != nil {
		for _, path := range storagePaths {
			if err := s.fileStorage.Delete(ctx, path); err != nil {
				log.Printf("Warning: failed to delete stored file %s: %v", path, err)
			}
		}
	}

	return &DeleteReportResult{}, nil
}

// IncompleteSections returns the section numbers whose merged content is
// still empty, in document order.
func IncompleteSections(sections []*models.Section) []string {
	var incomplete []string
	for _, section := range sections {
		if strings.TrimSpace(section.FinalContent) == "" {
			incomplete = append(incomplete, section.SectionNumber)
		}
	}
	return incomplete
}

package handlers

import (
	"net/http"

	"reportcraft-backend/models"
	"reportcraft-backend/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler handles HTTP requests for reports and chapters
type ReportHandler struct {
	reportService   *service.ReportService
	documentService *service.DocumentService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService, documentService *service.DocumentService) *ReportHandler {
	return &ReportHandler{
		reportService:   reportService,
		documentService: documentService,
	}
}

// CreateReportRequest represents the request body for creating a report
type CreateReportRequest struct {
	Title          string                 `json:"title" binding:"required"`
	Department     string                 `json:"department" binding:"required"`
	TemplateType   string                 `json:"template_type"`
	CustomTemplate *models.CustomTemplate `json:"custom_template"`
}

// CreateReport handles POST /api/reports
func (h *ReportHandler) CreateReport(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	serviceReq := service.CreateReportRequest{
		UserID:         userID,
		Title:          req.Title,
		Department:     req.Department,
		TemplateType:   models.TemplateType(req.TemplateType),
		CustomTemplate: req.CustomTemplate,
	}

	result, err := h.reportService.CreateReport(c.Request.Context(), serviceReq)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Report,
	})
}

// ListReports handles GET /api/reports
func (h *ReportHandler) ListReports(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}

	result, err := h.reportService.ListReports(c.Request.Context(), service.ListReportsRequest{UserID: userID})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Reports,
	})
}

// GetReport handles GET /api/reports/:id
func (h *ReportHandler) GetReport(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	reportID, ok := parseIDParam(c, "id", "report")
	if !ok {
		return
	}

	result, err := h.reportService.GetReport(c.Request.Context(), service.GetReportRequest{
		ReportID: reportID,
		UserID:   userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Report,
	})
}

// UpdateReportRequest represents the request body for updating a report
type UpdateReportRequest struct {
	Title      *string `json:"title"`
	Department *string `json:"department"`
	Status     *string `json:"status"`
}

// UpdateReport handles PUT /api/reports/:id
func (h *ReportHandler) UpdateReport(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	reportID, ok := parseIDParam(c, "id", "report")
	if !ok {
		return
	}

	var req UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	serviceReq := service.UpdateReportRequest{
		ReportID:   reportID,
		UserID:     userID,
		Title:      req.Title,
		Department: req.Department,
	}
	if req.Status != nil {
		status := models.ReportStatus(*req.Status)
		serviceReq.StatusOverride = &status
	}

	result, err := h.reportService.UpdateReport(c.Request.Context(), serviceReq)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Report,
	})
}

// CompleteReport handles POST /api/reports/:id/complete
func (h *ReportHandler) CompleteReport(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	reportID, ok := parseIDParam(c, "id", "report")
	if !ok {
		return
	}

	result, err := h.reportService.CompleteReport(c.Request.Context(), service.CompleteReportRequest{
		ReportID: reportID,
		UserID:   userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Report,
	})
}

// DeleteReport handles DELETE /api/reports/:id
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	reportID, ok := parseIDParam(c, "id", "report")
	if !ok {
		return
	}

	if _, err := h.reportService.DeleteReport(c.Request.Context(), service.DeleteReportRequest{
		ReportID: reportID,
		UserID:   userID,
	}); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Report deleted",
		},
	})
}

// GetChapter handles GET /api/reports/:id/chapters/:chapterId
func (h *ReportHandler) GetChapter(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	reportID, ok := parseIDParam(c, "id", "report")
	if !ok {
		return
	}
	chapterID, ok := parseIDParam(c, "chapterId", "chapter")
	if !ok {
		return
	}

	result, err := h.reportService.GetChapter(c.Request.Context(), service.GetChapterRequest{
		ReportID:  reportID,
		ChapterID: chapterID,
		UserID:    userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Chapter,
	})
}

// AssembleDocument handles GET /api/reports/:id/document
func (h *ReportHandler) AssembleDocument(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	reportID, ok := parseIDParam(c, "id", "report")
	if !ok {
		return
	}

	result, err := h.documentService.AssembleDocument(c.Request.Context(), service.AssembleDocumentRequest{
		ReportID: reportID,
		UserID:   userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"report_id": result.Report.ID,
			"title":     result.Report.Title,
			"status":    result.Report.Status,
			"document":  result.Document,
		},
	})
}

package handlers

import (
	"io"
	"net/http"
	"strings"

	"reportcraft-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxUploadedContentSize caps text document uploads submitted as section
// content
const maxUploadedContentSize = 1 * 1024 * 1024 // 1MB

// SectionHandler handles HTTP requests for section content
type SectionHandler struct {
	contentService *service.ContentService
}

// NewSectionHandler creates a new section handler
func NewSectionHandler(contentService *service.ContentService) *SectionHandler {
	return &SectionHandler{contentService: contentService}
}

// GetContent handles GET /api/sections/:id/content
func (h *SectionHandler) GetContent(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	sectionID, ok := parseIDParam(c, "id", "section")
	if !ok {
		return
	}

	result, err := h.contentService.GetSectionContent(c.Request.Context(), service.GetSectionContentRequest{
		SectionID: sectionID,
		UserID:    userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Section,
	})
}

// TypeContentRequest represents the request body for typed content
type TypeContentRequest struct {
	Content string `json:"content"`
}

// TypeContent handles POST /api/sections/:id/type-content
func (h *SectionHandler) TypeContent(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	sectionID, ok := parseIDParam(c, "id", "section")
	if !ok {
		return
	}

	var req TypeContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	h.setUserContent(c, sectionID, userID, req.Content)
}

// UploadContent handles POST /api/sections/:id/upload-content. Accepts a
// multipart "file" part holding a plain-text document; its text lands in
// the same user slot typed content uses.
func (h *SectionHandler) UploadContent(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	sectionID, ok := parseIDParam(c, "id", "section")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "File is required")
		return
	}
	if fileHeader.Size > maxUploadedContentSize {
		respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE", "Content document exceeds 1MB")
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType != "" && !strings.HasPrefix(mimeType, "text/") {
		respondError(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Only plain-text documents are accepted")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FILE_OPEN_ERROR", err.Error())
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadedContentSize))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FILE_READ_ERROR", err.Error())
		return
	}

	h.setUserContent(c, sectionID, userID, string(content))
}

func (h *SectionHandler) setUserContent(c *gin.Context, sectionID, userID uuid.UUID, content string) {
	result, err := h.contentService.SetUserContent(c.Request.Context(), service.SetUserContentRequest{
		SectionID: sectionID,
		UserID:    userID,
		Content:   content,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Section,
	})
}

// GenerateContent handles POST /api/sections/:id/generate
func (h *SectionHandler) GenerateContent(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	sectionID, ok := parseIDParam(c, "id", "section")
	if !ok {
		return
	}

	result, err := h.contentService.GenerateSection(c.Request.Context(), service.GenerateSectionRequest{
		SectionID: sectionID,
		UserID:    userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Section,
	})
}

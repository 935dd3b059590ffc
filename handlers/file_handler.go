package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"reportcraft-backend/models"
	"reportcraft-backend/repository"
	"reportcraft-backend/service"
	"reportcraft-backend/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FileHandler handles HTTP requests for section asset uploads
type FileHandler struct {
	fileRepo         *repository.FileRepository
	contentService   *service.ContentService
	storage          storage.Storage
	maxFileSize      int64
	allowedMimeTypes map[string]bool
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileRepo *repository.FileRepository, contentService *service.ContentService, storage storage.Storage) *FileHandler {
	return &FileHandler{
		fileRepo:       fileRepo,
		contentService: contentService,
		storage:        storage,
		maxFileSize:    10 * 1024 * 1024, // 10MB
		allowedMimeTypes: map[string]bool{
			"image/png":     true,
			"image/jpeg":    true,
			"image/gif":     true,
			"image/svg+xml": true,
			"image/webp":    true,
		},
	}
}

func inferMimeType(filename string) string {
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".png"):
		return "image/png"
	case strings.HasSuffix(strings.ToLower(filename), ".jpg"),
		strings.HasSuffix(strings.ToLower(filename), ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(strings.ToLower(filename), ".gif"):
		return "image/gif"
	case strings.HasSuffix(strings.ToLower(filename), ".svg"):
		return "image/svg+xml"
	case strings.HasSuffix(strings.ToLower(filename), ".webp"):
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// UploadFile handles POST /api/sections/:id/files. Multipart form with a
// "file" part, a "position" part carrying the placement JSON, and an
// optional "caption".
func (h *FileHandler) UploadFile(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	sectionID, ok := parseIDParam(c, "id", "section")
	if !ok {
		return
	}

	section, err := h.contentService.ResolveOwnedSection(c.Request.Context(), sectionID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	positionJSON := c.PostForm("position")
	if positionJSON == "" {
		respondError(c, http.StatusBadRequest, "MISSING_POSITION", "Position metadata is required")
		return
	}
	var position models.PositionData
	if err := json.Unmarshal([]byte(positionJSON), &position); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_POSITION", "Position metadata is not valid JSON")
		return
	}
	if err := position.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_POSITION", err.Error())
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "MISSING_FILE", "File is required")
		return
	}

	if fileHeader.Size > h.maxFileSize {
		respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE",
			fmt.Sprintf("File size exceeds maximum of %d bytes", h.maxFileSize))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "FILE_OPEN_ERROR", err.Error())
		return
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = inferMimeType(fileHeader.Filename)
	}
	if !h.allowedMimeTypes[mimeType] {
		respondError(c, http.StatusBadRequest, "INVALID_FILE_TYPE",
			"File type not allowed. Allowed types: PNG, JPEG, GIF, SVG, WEBP")
		return
	}

	fileID := uuid.New()

	storagePath, err := h.storage.Upload(c.Request.Context(), fileID, fileHeader.Filename, file)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "UPLOAD_FAILED",
			fmt.Sprintf("Failed to upload file: %v", err))
		return
	}

	fileRecord := &models.SectionFile{
		ID:          fileID,
		SectionID:   section.ID,
		Filename:    fileHeader.Filename,
		MimeType:    mimeType,
		Size:        fileHeader.Size,
		StoragePath: storagePath,
		Position:    position,
	}
	if caption := c.PostForm("caption"); caption != "" {
		fileRecord.Caption = &caption
	}

	if err := h.fileRepo.Create(c.Request.Context(), fileRecord); err != nil {
		// Clean up the stored bytes, the record never existed
		h.storage.Delete(c.Request.Context(), storagePath)
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR",
			fmt.Sprintf("Failed to save file record: %v", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    fileRecord,
	})
}

// ListFiles handles GET /api/sections/:id/files
func (h *FileHandler) ListFiles(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	sectionID, ok := parseIDParam(c, "id", "section")
	if !ok {
		return
	}

	section, err := h.contentService.ResolveOwnedSection(c.Request.Context(), sectionID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	files, err := h.fileRepo.ListBySectionID(c.Request.Context(), section.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "RETRIEVAL_FAILED", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    files,
	})
}

// getOwnedFile loads a file record and checks that the caller owns the
// section it is attached to
func (h *FileHandler) getOwnedFile(c *gin.Context, userID uuid.UUID) (*models.SectionFile, bool) {
	fileID, ok := parseIDParam(c, "id", "file")
	if !ok {
		return nil, false
	}

	file, err := h.fileRepo.GetByID(c.Request.Context(), fileID)
	if err != nil {
		respondServiceError(c, service.ErrFileNotFound)
		return nil, false
	}
	if _, err := h.contentService.ResolveOwnedSection(c.Request.Context(), file.SectionID, userID); err != nil {
		respondServiceError(c, service.ErrFileNotFound)
		return nil, false
	}
	return file, true
}

// DownloadFile handles GET /api/files/:id
func (h *FileHandler) DownloadFile(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	file, ok := h.getOwnedFile(c, userID)
	if !ok {
		return
	}

	reader, err := h.storage.Download(c.Request.Context(), file.StoragePath)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DOWNLOAD_FAILED",
			fmt.Sprintf("Failed to download file: %v", err))
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.DataFromReader(http.StatusOK, file.Size, file.MimeType, reader, nil)
}

// DeleteFile handles DELETE /api/files/:id
func (h *FileHandler) DeleteFile(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	file, ok := h.getOwnedFile(c, userID)
	if !ok {
		return
	}

	if err := h.fileRepo.Delete(c.Request.Context(), file.ID); err != nil {
		respondError(c, http.StatusInternalServerError, "DELETE_FAILED", err.Error())
		return
	}
	if err := h.storage.Delete(c.Request.Context(), file.StoragePath); err != nil {
		// Record is gone, leaked bytes are logged and tolerated
		fmt.Printf("Warning: failed to delete stored file %s: %v\n", file.StoragePath, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "File deleted",
		},
	})
}

package handlers

import (
	"errors"
	"net/http"

	"reportcraft-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError writes the standard error envelope
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// userIDFromHeader extracts and parses the X-User-ID header. Writes the
// error response itself; callers return immediately on false.
func userIDFromHeader(c *gin.Context) (uuid.UUID, bool) {
	header := c.GetHeader("X-User-ID")
	if header == "" {
		respondError(c, http.StatusUnauthorized, "MISSING_USER_ID", "X-User-ID header is required")
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(header)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_USER_ID", "Invalid X-User-ID format")
		return uuid.Nil, false
	}
	return userID, true
}

// parseIDParam parses a UUID path parameter. Writes the error response
// itself; callers return immediately on false.
func parseIDParam(c *gin.Context, param, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps service errors onto HTTP statuses
func respondServiceError(c *gin.Context, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", ve.Error())
		return
	}

	switch {
	case errors.Is(err, service.ErrReportNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Report not found")
	case errors.Is(err, service.ErrChapterNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Chapter not found")
	case errors.Is(err, service.ErrSectionNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Section not found")
	case errors.Is(err, service.ErrReferenceNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Reference not found")
	case errors.Is(err, service.ErrFileNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "File not found")
	case errors.Is(err, service.ErrNotOwner):
		respondError(c, http.StatusForbidden, "FORBIDDEN", "Not authorized to access this resource")
	case errors.Is(err, service.ErrSectionBusy):
		respondError(c, http.StatusConflict, "SECTION_BUSY", "Another operation on this section is in flight")
	case errors.Is(err, service.ErrVersionConflict):
		respondError(c, http.StatusConflict, "VERSION_CONFLICT", "Section was modified concurrently, retry with fresh state")
	case errors.Is(err, service.ErrReferenceInUse):
		respondError(c, http.StatusConflict, "REFERENCE_IN_USE", "Reference is still cited in section content")
	case errors.Is(err, service.ErrGenerationTimeout):
		respondError(c, http.StatusGatewayTimeout, "GENERATION_TIMEOUT", "Content generation timed out")
	case errors.Is(err, service.ErrGenerationFailed):
		respondError(c, http.StatusBadGateway, "GENERATION_FAILED", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

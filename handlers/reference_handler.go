package handlers

import (
	"net/http"

	"reportcraft-backend/models"
	"reportcraft-backend/service"

	"github.com/gin-gonic/gin"
)

// ReferenceHandler handles HTTP requests for the reference registry and
// bibliography generation
type ReferenceHandler struct {
	referenceService    *service.ReferenceService
	bibliographyService *service.BibliographyService
}

// NewReferenceHandler creates a new reference handler
func NewReferenceHandler(referenceService *service.ReferenceService, bibliographyService *service.BibliographyService) *ReferenceHandler {
	return &ReferenceHandler{
		referenceService:    referenceService,
		bibliographyService: bibliographyService,
	}
}

// ReferenceRequest represents the request body for creating or updating
// a reference
type ReferenceRequest struct {
	CitationKey   string   `json:"citation_key" binding:"required"`
	ReferenceType string   `json:"reference_type" binding:"required"`
	Authors       []string `json:"authors" binding:"required"`
	Year          int      `json:"year" binding:"required"`
	Title         string   `json:"title" binding:"required"`

	Journal           *string `json:"journal"`
	Volume            *string `json:"volume"`
	Issue             *string `json:"issue"`
	Pages             *string `json:"pages"`
	Edition           *string `json:"edition"`
	Publisher         *string `json:"publisher"`
	PublisherLocation *string `json:"publisher_location"`
	DOI               *string `json:"doi"`
	URL               *string `json:"url"`
}

func (r ReferenceRequest) toFields() service.ReferenceFields {
	return service.ReferenceFields{
		CitationKey:       r.CitationKey,
		ReferenceType:     models.ReferenceType(r.ReferenceType),
		Authors:           r.Authors,
		Year:              r.Year,
		Title:             r.Title,
		Journal:           r.Journal,
		Volume:            r.Volume,
		Issue:             r.Issue,
		Pages:             r.Pages,
		Edition:           r.Edition,
		Publisher:         r.Publisher,
		PublisherLocation: r.PublisherLocation,
		DOI:               r.DOI,
		URL:               r.URL,
	}
}

// AddReference handles POST /api/reports/:id/references
func (h *ReferenceHandler) AddReference(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	reportID, ok := parseIDParam(c, "id", "report")
	if !ok {
		return
	}

	var req ReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.referenceService.AddReference(c.Request.Context(), service.AddReferenceRequest{
		ReportID: reportID,
		UserID:   userID,
		Fields:   req.toFields(),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    result.Reference,
	})
}

// ListReferences handles GET /api/reports/:id/references
func (h *ReferenceHandler) ListReferences(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	reportID, ok := parseIDParam(c, "id", "report")
	if !ok {
		return
	}

	result, err := h.referenceService.ListReferences(c.Request.Context(), service.ListReferencesRequest{
		ReportID: reportID,
		UserID:   userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.References,
	})
}

// GetReference handles GET /api/references/:id
func (h *ReferenceHandler) GetReference(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	referenceID, ok := parseIDParam(c, "id", "reference")
	if !ok {
		return
	}

	result, err := h.referenceService.GetReference(c.Request.Context(), service.GetReferenceRequest{
		ReferenceID: referenceID,
		UserID:      userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Reference,
	})
}

// UpdateReference handles PUT /api/references/:id
func (h *ReferenceHandler) UpdateReference(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	referenceID, ok := parseIDParam(c, "id", "reference")
	if !ok {
		return
	}

	var req ReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.referenceService.UpdateReference(c.Request.Context(), service.UpdateReferenceRequest{
		ReferenceID: referenceID,
		UserID:      userID,
		Fields:      req.toFields(),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result.Reference,
	})
}

// RemoveReference handles DELETE /api/references/:id. The force query
// parameter skips the citation-usage guard.
func (h *ReferenceHandler) RemoveReference(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	referenceID, ok := parseIDParam(c, "id", "reference")
	if !ok {
		return
	}

	force := c.Query("force") == "true"

	if _, err := h.referenceService.RemoveReference(c.Request.Context(), service.RemoveReferenceRequest{
		ReferenceID: referenceID,
		UserID:      userID,
		Force:       force,
	}); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Reference removed",
		},
	})
}

// GenerateBibliography handles POST /api/reports/:id/bibliography
func (h *ReferenceHandler) GenerateBibliography(c *gin.Context) {
	userID, ok := userIDFromHeader(c)
	if !ok {
		return
	}
	reportID, ok := parseIDParam(c, "id", "report")
	if !ok {
		return
	}

	result, err := h.bibliographyService.GenerateBibliography(c.Request.Context(), service.GenerateBibliographyRequest{
		ReportID: reportID,
		UserID:   userID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

package handlers

import (
	"net/http"

	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/services"

	"github.com/labstack/echo/v4"
)

// PatternHandlers handles pattern catalog HTTP requests, including design
// file upload and download links.
type PatternHandlers struct {
	patternService services.PatternService
}

func NewPatternHandlers(patternService services.PatternService) *PatternHandlers {
	return &PatternHandlers{patternService: patternService}
}

func (h *PatternHandlers) ListPatterns(c echo.Context) error {
	limit, offset := bindPagination(c)
	patterns, err := h.patternService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"patterns": patterns,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *PatternHandlers) CreatePattern(c echo.Context) error {
	var pattern models.Pattern
	if err := c.Bind(&pattern); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := h.patternService.Create(c.Request().Context(), &pattern); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, pattern)
}

func (h *PatternHandlers) GetPattern(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	pattern, err := h.patternService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, pattern)
}

func (h *PatternHandlers) UpdatePattern(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	var pattern models.Pattern
	if err := c.Bind(&pattern); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	pattern.ID = id
	if err := h.patternService.Update(c.Request().Context(), &pattern); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, pattern)
}

func (h *PatternHandlers) DeletePattern(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	if err := h.patternService.Delete(c.Request().Context(), id); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadPatternFile accepts a multipart upload and stores the design file.
func (h *PatternHandlers) UploadPatternFile(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return common.SendClientError(c, "Missing file upload")
	}
	src, err := fileHeader.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read upload")
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	pattern, err := h.patternService.UploadFile(c.Request().Context(), id, fileHeader.Filename, contentType, src, fileHeader.Size)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, pattern)
}

// GetPatternFileURL hands out a short-lived download link for the stored
// design file.
func (h *PatternHandlers) GetPatternFileURL(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	url, err := h.patternService.FileURL(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

package handlers

import (
	"net/http"
	"time"

	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ToolHandlers handles workshop tool HTTP requests
type ToolHandlers struct {
	toolService services.ToolService
}

func NewToolHandlers(toolService services.ToolService) *ToolHandlers {
	return &ToolHandlers{toolService: toolService}
}

// CheckoutRequest represents a tool checkout
type CheckoutRequest struct {
	ProjectID *uuid.UUID `json:"project_id"`
	DueAt     *time.Time `json:"due_at"`
}

func (h *ToolHandlers) ListTools(c echo.Context) error {
	limit, offset := bindPagination(c)
	tools, err := h.toolService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"tools":  tools,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *ToolHandlers) CreateTool(c echo.Context) error {
	var tool models.Tool
	if err := c.Bind(&tool); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := h.toolService.Create(c.Request().Context(), &tool); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, tool)
}

func (h *ToolHandlers) GetTool(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	tool, err := h.toolService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, tool)
}

func (h *ToolHandlers) UpdateTool(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	var tool models.Tool
	if err := c.Bind(&tool); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	tool.ID = id
	if err := h.toolService.Update(c.Request().Context(), &tool); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, tool)
}

func (h *ToolHandlers) DeleteTool(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	if err := h.toolService.Delete(c.Request().Context(), id); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ToolHandlers) CheckoutTool(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	checkout, err := h.toolService.Checkout(c.Request().Context(), id, req.ProjectID, req.DueAt)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, checkout)
}

func (h *ToolHandlers) ReturnTool(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	tool, err := h.toolService.Return(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, tool)
}

func (h *ToolHandlers) ListToolCheckouts(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	checkouts, err := h.toolService.ListCheckouts(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"checkouts": checkouts,
	})
}

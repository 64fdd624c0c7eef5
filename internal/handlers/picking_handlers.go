package handlers

import (
	"net/http"

	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// PickingHandlers handles picking list HTTP requests
type PickingHandlers struct {
	pickingService services.PickingService
}

func NewPickingHandlers(pickingService services.PickingService) *PickingHandlers {
	return &PickingHandlers{pickingService: pickingService}
}

// PickRequest represents a pick against a single list item
type PickRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Notes    *string         `json:"notes"`
}

func (h *PickingHandlers) ListPickingLists(c echo.Context) error {
	limit, offset := bindPagination(c)
	lists, err := h.pickingService.ListLists(c.Request().Context(), limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"picking_lists": lists,
		"limit":         limit,
		"offset":        offset,
	})
}

func (h *PickingHandlers) CreatePickingList(c echo.Context) error {
	var list models.PickingList
	if err := c.Bind(&list); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := h.pickingService.CreateList(c.Request().Context(), &list); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, list)
}

func (h *PickingHandlers) GetPickingList(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	list, err := h.pickingService.GetList(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	items, err := h.pickingService.ListItems(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"picking_list": list,
		"items":        items,
	})
}

func (h *PickingHandlers) DeletePickingList(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	if err := h.pickingService.DeleteList(c.Request().Context(), id); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PickingHandlers) AddPickingItem(c echo.Context) error {
	listID, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	var item models.PickingItem
	if err := c.Bind(&item); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	item.PickingListID = listID
	if err := h.pickingService.AddItem(c.Request().Context(), &item); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// GeneratePickingList builds a picking list from a project's components.
func (h *PickingHandlers) GeneratePickingList(c echo.Context) error {
	projectID, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	list, err := h.pickingService.GenerateForProject(c.Request().Context(), projectID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, list)
}

func (h *PickingHandlers) PickItem(c echo.Context) error {
	itemID, err := common.ValidateUUIDParam(c.Param("itemId"), "itemId")
	if err != nil {
		return common.RespondError(c, err)
	}
	var req PickRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	result, err := h.pickingService.Pick(c.Request().Context(), itemID, req.Quantity, req.Notes)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *PickingHandlers) CompletePickingList(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	list, err := h.pickingService.CompleteList(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *PickingHandlers) CancelPickingList(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	if err := h.pickingService.CancelList(c.Request().Context(), id); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

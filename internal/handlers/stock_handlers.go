package handlers

import (
	"net/http"

	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// StockHandlers handles stock level and movement HTTP requests
type StockHandlers struct {
	inventoryService services.InventoryService
}

func NewStockHandlers(inventoryService services.InventoryService) *StockHandlers {
	return &StockHandlers{inventoryService: inventoryService}
}

// UpdateStockRequest represents a stock set or adjust request
type UpdateStockRequest struct {
	Location string          `json:"location"`
	Quantity decimal.Decimal `json:"quantity"`
	Mode     string          `json:"mode"`
	Notes    *string         `json:"notes"`
}

// TransferStockRequest represents a stock transfer between locations
type TransferStockRequest struct {
	FromLocation string          `json:"from_location"`
	ToLocation   string          `json:"to_location"`
	Quantity     decimal.Decimal `json:"quantity"`
}

func (h *StockHandlers) GetTotalQuantity(c echo.Context) error {
	materialID, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	total, err := h.inventoryService.TotalQuantity(c.Request().Context(), materialID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"material_id": materialID,
		"total":       total,
	})
}

func (h *StockHandlers) ListStockLevels(c echo.Context) error {
	materialID, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	levels, err := h.inventoryService.ListByMaterial(c.Request().Context(), materialID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"stock_levels": levels,
	})
}

func (h *StockHandlers) GetStockLevel(c echo.Context) error {
	materialID, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	location := c.Param("location")
	level, err := h.inventoryService.GetStockLevel(c.Request().Context(), materialID, location)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, level)
}

func (h *StockHandlers) UpdateStock(c echo.Context) error {
	materialID, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	var req UpdateStockRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if req.Location == "" {
		req.Location = services.DefaultLocation
	}
	mode := services.UpdateMode(req.Mode)
	if mode == "" {
		mode = services.UpdateAdjust
	}
	level, err := h.inventoryService.UpdateAtLocation(c.Request().Context(), materialID, req.Location, req.Quantity, mode, req.Notes)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, level)
}

func (h *StockHandlers) TransferStock(c echo.Context) error {
	materialID, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	var req TransferStockRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := h.inventoryService.Transfer(c.Request().Context(), materialID, req.FromLocation, req.ToLocation, req.Quantity); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SearchStockRequest represents query parameters for stock level search
type SearchStockRequest struct {
	Location string `query:"location"`
	Status   string `query:"status"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}

func (h *StockHandlers) SearchStock(c echo.Context) error {
	var req SearchStockRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}
	if req.Limit <= 0 {
		req.Limit = defaultPageSize
	}
	if req.Limit > maxPageSize {
		req.Limit = maxPageSize
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	filter := &models.StockSearchFilter{
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.Location != "" {
		filter.Location = &req.Location
	}
	if req.Status != "" {
		st := models.StockStatus(req.Status)
		if !st.Valid() {
			return common.SendValidationError(c, "status", "must be a declared stock status")
		}
		filter.Status = &st
	}

	levels, err := h.inventoryService.Search(c.Request().Context(), filter)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"stock_levels": levels,
		"limit":        req.Limit,
		"offset":       req.Offset,
	})
}

func (h *StockHandlers) ListMovements(c echo.Context) error {
	materialID, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	limit, offset := bindPagination(c)
	movements, err := h.inventoryService.ListMovements(c.Request().Context(), materialID, limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"movements": movements,
		"limit":     limit,
		"offset":    offset,
	})
}

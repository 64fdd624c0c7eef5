package handlers

import (
	"net/http"

	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// MaterialHandlers handles material catalog HTTP requests
type MaterialHandlers struct {
	materialService services.MaterialService
}

func NewMaterialHandlers(materialService services.MaterialService) *MaterialHandlers {
	return &MaterialHandlers{materialService: materialService}
}

// SearchMaterialsRequest represents query parameters for material search
type SearchMaterialsRequest struct {
	Query      string `query:"q"`
	Type       string `query:"type"`
	SupplierID string `query:"supplier_id"`
	Status     string `query:"status"`
	SortBy     string `query:"sort_by"`
	SortOrder  string `query:"sort_order"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
}

func (h *MaterialHandlers) ListMaterials(c echo.Context) error {
	limit, offset := bindPagination(c)
	materials, err := h.materialService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"materials": materials,
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *MaterialHandlers) SearchMaterials(c echo.Context) error {
	var req SearchMaterialsRequest
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

	filter := &models.MaterialSearchFilter{
		Query:     req.Query,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Limit:     req.Limit,
		Offset:    req.Offset,
	}
	if req.Type != "" {
		mt := models.MaterialType(req.Type)
		if !mt.Valid() {
			return common.SendValidationError(c, "type", "must be a declared material type")
		}
		filter.MaterialType = &mt
	}
	if req.Status != "" {
		st := models.StockStatus(req.Status)
		if !st.Valid() {
			return common.SendValidationError(c, "status", "must be a declared stock status")
		}
		filter.Status = &st
	}
	if req.SupplierID != "" {
		supplierID, err := uuid.Parse(req.SupplierID)
		if err != nil {
			return common.SendValidationError(c, "supplier_id", "must be a valid UUID")
		}
		filter.SupplierID = &supplierID
	}

	materials, err := h.materialService.Search(c.Request().Context(), filter)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"materials": materials,
		"limit":     req.Limit,
		"offset":    req.Offset,
	})
}

func (h *MaterialHandlers) CreateMaterial(c echo.Context) error {
	var material models.Material
	if err := c.Bind(&material); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := h.materialService.Create(c.Request().Context(), &material); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, material)
}

func (h *MaterialHandlers) GetMaterial(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	material, err := h.materialService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, material)
}

func (h *MaterialHandlers) UpdateMaterial(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	var material models.Material
	if err := c.Bind(&material); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	material.ID = id
	if err := h.materialService.Update(c.Request().Context(), &material); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, material)
}

func (h *MaterialHandlers) DeleteMaterial(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	if err := h.materialService.Delete(c.Request().Context(), id); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *MaterialHandlers) DiscontinueMaterial(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	material, err := h.materialService.Discontinue(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, material)
}

func (h *MaterialHandlers) RestoreMaterial(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	material, err := h.materialService.Restore(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, material)
}

func (h *MaterialHandlers) ListLowStock(c echo.Context) error {
	materials, err := h.materialService.LowStock(c.Request().Context())
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"materials": materials,
	})
}

package handlers

import (
	"net/http"

	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/services"

	"github.com/labstack/echo/v4"
)

// SupplierHandlers handles supplier HTTP requests
type SupplierHandlers struct {
	supplierService services.SupplierService
}

func NewSupplierHandlers(supplierService services.SupplierService) *SupplierHandlers {
	return &SupplierHandlers{supplierService: supplierService}
}

func (h *SupplierHandlers) ListSuppliers(c echo.Context) error {
	limit, offset := bindPagination(c)
	suppliers, err := h.supplierService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"suppliers": suppliers,
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *SupplierHandlers) CreateSupplier(c echo.Context) error {
	var supplier models.Supplier
	if err := c.Bind(&supplier); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := h.supplierService.Create(c.Request().Context(), &supplier); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, supplier)
}

func (h *SupplierHandlers) GetSupplier(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	supplier, err := h.supplierService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandlers) UpdateSupplier(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	var supplier models.Supplier
	if err := c.Bind(&supplier); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	supplier.ID = id
	if err := h.supplierService.Update(c.Request().Context(), &supplier); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, supplier)
}

func (h *SupplierHandlers) DeleteSupplier(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	if err := h.supplierService.Delete(c.Request().Context(), id); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

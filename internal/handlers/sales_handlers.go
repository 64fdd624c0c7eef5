package handlers

import (
	"net/http"

	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/services"

	"github.com/labstack/echo/v4"
)

// SaleHandlers handles sale HTTP requests
type SaleHandlers struct {
	saleService services.SaleService
}

func NewSaleHandlers(saleService services.SaleService) *SaleHandlers {
	return &SaleHandlers{saleService: saleService}
}

func (h *SaleHandlers) ListSales(c echo.Context) error {
	limit, offset := bindPagination(c)
	sales, err := h.saleService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"sales":  sales,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *SaleHandlers) CreateSale(c echo.Context) error {
	var sale models.Sale
	if err := c.Bind(&sale); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := h.saleService.Create(c.Request().Context(), &sale); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, sale)
}

func (h *SaleHandlers) GetSale(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	sale, err := h.saleService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	items, err := h.saleService.ListItems(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"sale":  sale,
		"items": items,
	})
}

func (h *SaleHandlers) UpdateSale(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	var sale models.Sale
	if err := c.Bind(&sale); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	sale.ID = id
	if err := h.saleService.Update(c.Request().Context(), &sale); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, sale)
}

func (h *SaleHandlers) DeleteSale(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	if err := h.saleService.Delete(c.Request().Context(), id); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SaleHandlers) AddSaleItem(c echo.Context) error {
	saleID, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	var item models.SaleItem
	if err := c.Bind(&item); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	item.SaleID = saleID
	if err := h.saleService.AddItem(c.Request().Context(), &item); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *SaleHandlers) DeleteSaleItem(c echo.Context) error {
	saleID, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	itemID, err := common.ValidateUUIDParam(c.Param("itemId"), "itemId")
	if err != nil {
		return common.RespondError(c, err)
	}
	if err := h.saleService.DeleteItem(c.Request().Context(), saleID, itemID); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SaleHandlers) CompleteSale(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	sale, err := h.saleService.Complete(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, sale)
}

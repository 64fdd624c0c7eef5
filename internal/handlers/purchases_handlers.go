package handlers

import (
	"net/http"

	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// PurchaseHandlers handles purchase order HTTP requests
type PurchaseHandlers struct {
	purchaseService services.PurchaseService
}

func NewPurchaseHandlers(purchaseService services.PurchaseService) *PurchaseHandlers {
	return &PurchaseHandlers{purchaseService: purchaseService}
}

// ReceiveRequest represents a receipt against a single purchase item
type ReceiveRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Notes    *string         `json:"notes"`
}

func (h *PurchaseHandlers) ListPurchases(c echo.Context) error {
	limit, offset := bindPagination(c)
	purchases, err := h.purchaseService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"purchases": purchases,
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *PurchaseHandlers) CreatePurchase(c echo.Context) error {
	var purchase models.Purchase
	if err := c.Bind(&purchase); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := h.purchaseService.Create(c.Request().Context(), &purchase); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, purchase)
}

func (h *PurchaseHandlers) GetPurchase(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	purchase, err := h.purchaseService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	items, err := h.purchaseService.ListItems(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"purchase": purchase,
		"items":    items,
	})
}

func (h *PurchaseHandlers) UpdatePurchase(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	var purchase models.Purchase
	if err := c.Bind(&purchase); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	purchase.ID = id
	if err := h.purchaseService.Update(c.Request().Context(), &purchase); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, purchase)
}

func (h *PurchaseHandlers) DeletePurchase(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	if err := h.purchaseService.Delete(c.Request().Context(), id); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PurchaseHandlers) AddPurchaseItem(c echo.Context) error {
	purchaseID, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	var item models.PurchaseItem
	if err := c.Bind(&item); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	item.PurchaseID = purchaseID
	if err := h.purchaseService.AddItem(c.Request().Context(), &item); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *PurchaseHandlers) DeletePurchaseItem(c echo.Context) error {
	itemID, err := common.ValidateUUIDParam(c.Param("itemId"), "itemId")
	if err != nil {
		return common.RespondError(c, err)
	}
	if err := h.purchaseService.DeleteItem(c.Request().Context(), itemID); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReceivePurchaseItem records a delivery against one purchase line and
// books material quantities into stock.
func (h *PurchaseHandlers) ReceivePurchaseItem(c echo.Context) error {
	itemID, err := common.ValidateUUIDParam(c.Param("itemId"), "itemId")
	if err != nil {
		return common.RespondError(c, err)
	}
	var req ReceiveRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	item, err := h.purchaseService.Receive(c.Request().Context(), itemID, req.Quantity, req.Notes)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

package handlers

import (
	"net/http"

	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/services"

	"github.com/labstack/echo/v4"
)

// CustomerHandlers handles customer HTTP requests
type CustomerHandlers struct {
	customerService services.CustomerService
}

func NewCustomerHandlers(customerService services.CustomerService) *CustomerHandlers {
	return &CustomerHandlers{customerService: customerService}
}

func (h *CustomerHandlers) ListCustomers(c echo.Context) error {
	limit, offset := bindPagination(c)
	customers, err := h.customerService.List(c.Request().Context(), limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"customers": customers,
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *CustomerHandlers) CreateCustomer(c echo.Context) error {
	var customer models.Customer
	if err := c.Bind(&customer); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := h.customerService.Create(c.Request().Context(), &customer); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandlers) GetCustomer(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	customer, err := h.customerService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandlers) UpdateCustomer(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	var customer models.Customer
	if err := c.Bind(&customer); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	customer.ID = id
	if err := h.customerService.Update(c.Request().Context(), &customer); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandlers) DeleteCustomer(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	if err := h.customerService.Delete(c.Request().Context(), id); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

package common

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", resource+" not found", nil))
}

// SendUnauthorizedError sends an unauthorized error response
func SendUnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", "Unauthorized access", nil))
}

// RespondError maps a domain error to the matching HTTP response. Handlers
// call this for every service error so the taxonomy reaches clients intact.
func RespondError(c echo.Context, err error) error {
	var (
		ve *ValidationError
		ia *InvalidAdjustmentError
		eo *ExceedsOrderedError
		nf *NotFoundError
	)
	switch {
	case errors.As(err, &ve):
		return SendValidationError(c, ve.Field, ve.Rule)
	case errors.As(err, &ia):
		return c.JSON(http.StatusConflict, CreateErrorResponse("INSUFFICIENT_STOCK", ia.Error(), nil))
	case errors.As(err, &eo):
		return c.JSON(http.StatusConflict, CreateErrorResponse("EXCEEDS_ORDERED", eo.Error(), nil))
	case errors.As(err, &nf):
		return SendNotFoundError(c, nf.Resource)
	default:
		return SendServerError(c, "Internal server error")
	}
}

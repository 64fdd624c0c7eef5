package handlers

import (
	"net/http"

	"hidecraft/internal/common"
	"hidecraft/internal/middleware"
	"hidecraft/internal/models"
	"hidecraft/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// ChangePasswordRequest represents a password change payload
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandlers) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHandlers) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	tokens, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// Credential failures surface as 401, not 400.
		if common.IsValidation(err) {
			return common.SendUnauthorizedError(c)
		}
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandlers) Refresh(c echo.Context) error {
	var req models.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	tokens, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if common.IsValidation(err) {
			return common.SendUnauthorizedError(c)
		}
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandlers) Logout(c echo.Context) error {
	var req models.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandlers) ChangePassword(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := h.authService.ChangePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

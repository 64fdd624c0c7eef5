package handlers

import (
	"net/http"
	"time"

	"hidecraft/internal/repositories"

	"github.com/labstack/echo/v4"
)

// HealthHandlers exposes liveness and readiness endpoints.
type HealthHandlers struct {
	db repositories.Database
}

func NewHealthHandlers(db repositories.Database) *HealthHandlers {
	return &HealthHandlers{db: db}
}

func (h *HealthHandlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

// Ready checks that the database answers.
func (h *HealthHandlers) Ready(c echo.Context) error {
	var one int
	if err := h.db.QueryRow(c.Request().Context(), "SELECT 1").Scan(&one); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status": "degraded",
			"error":  "database unreachable",
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ready",
	})
}

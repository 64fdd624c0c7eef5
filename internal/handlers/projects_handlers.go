package handlers

import (
	"net/http"

	"hidecraft/internal/common"
	"hidecraft/internal/models"
	"hidecraft/internal/services"

	"github.com/labstack/echo/v4"
)

// ProjectHandlers handles project HTTP requests
type ProjectHandlers struct {
	projectService services.ProjectService
}

func NewProjectHandlers(projectService services.ProjectService) *ProjectHandlers {
	return &ProjectHandlers{projectService: projectService}
}

// TransitionRequest represents a project status change
type TransitionRequest struct {
	Status models.ProjectStatus `json:"status"`
}

func (h *ProjectHandlers) ListProjects(c echo.Context) error {
	limit, offset := bindPagination(c)
	ctx := c.Request().Context()

	if status := c.QueryParam("status"); status != "" {
		projects, err := h.projectService.ListByStatus(ctx, models.ProjectStatus(status), limit, offset)
		if err != nil {
			return common.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"projects": projects,
			"limit":    limit,
			"offset":   offset,
		})
	}

	projects, err := h.projectService.List(ctx, limit, offset)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"projects": projects,
		"limit":    limit,
		"offset":   offset,
	})
}

func (h *ProjectHandlers) CreateProject(c echo.Context) error {
	var project models.Project
	if err := c.Bind(&project); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if err := h.projectService.Create(c.Request().Context(), &project); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandlers) GetProject(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	project, err := h.projectService.GetByID(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	components, err := h.projectService.ListComponents(c.Request().Context(), id)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"project":    project,
		"components": components,
	})
}

func (h *ProjectHandlers) UpdateProject(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	var project models.Project
	if err := c.Bind(&project); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	project.ID = id
	if err := h.projectService.Update(c.Request().Context(), &project); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandlers) DeleteProject(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	if err := h.projectService.Delete(c.Request().Context(), id); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProjectHandlers) TransitionProject(c echo.Context) error {
	id, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	var req TransitionRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	project, err := h.projectService.Transition(c.Request().Context(), id, req.Status)
	if err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusOK, project)
}

func (h *ProjectHandlers) AddComponent(c echo.Context) error {
	projectID, err := common.ValidateUUIDParam(c.Param("id"), "id")
	if err != nil {
		return common.RespondError(c, err)
	}
	var component models.ProjectComponent
	if err := c.Bind(&component); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	component.ProjectID = projectID
	if err := h.projectService.AddComponent(c.Request().Context(), &component); err != nil {
		return common.RespondError(c, err)
	}
	return c.JSON(http.StatusCreated, component)
}

func (h *ProjectHandlers) DeleteComponent(c echo.Context) error {
	componentID, err := common.ValidateUUIDParam(c.Param("componentId"), "componentId")
	if err != nil {
		return common.RespondError(c, err)
	}
	if err := h.projectService.DeleteComponent(c.Request().Context(), componentID); err != nil {
		return common.RespondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dailysync/core/internal/application/services"
	"github.com/dailysync/core/internal/infrastructure/logger"
	"github.com/dailysync/core/internal/ports"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	logger         *logger.Logger
}

func NewProjectHandler(projectService *services.ProjectService, logger *logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger.WithComponent("project_handler"),
	}
}

// Create registers a project. Leads and admins only.
func (h *ProjectHandler) Create(c echo.Context) error {
	identity, err := identityFromContext(c)
	if err != nil {
		return err
	}

	var req ports.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}

	project, err := h.projectService.Create(c.Request().Context(), identity, req)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, project)
}

func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.projectService.List(c.Request().Context())
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, projects)
}

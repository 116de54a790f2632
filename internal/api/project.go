package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio-service/internal/entity"
	"portfolio-service/internal/service"
)

const projectNotFound = "Project not found"

type ProjectHandler struct {
	projectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProject --> POST /projects/
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var in entity.ProjectInput
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}

	project, err := h.projectService.CreateProject(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err, projectNotFound)
	}
	return c.JSON(http.StatusOK, project)
}

// GetProjects --> GET /projects/
func (h *ProjectHandler) GetProjects(c echo.Context) error {
	projects, err := h.projectService.GetProjects(c.Request().Context())
	if err != nil {
		return respondError(c, err, projectNotFound)
	}
	return c.JSON(http.StatusOK, projects)
}

// GetProject --> GET /projects/:id
func (h *ProjectHandler) GetProject(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, detail("Invalid ID"))
	}

	project, err := h.projectService.GetProject(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, projectNotFound)
	}
	return c.JSON(http.StatusOK, project)
}

// UpdateProject --> PUT /projects/:id
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, detail("Invalid ID"))
	}

	var in entity.ProjectInput
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}

	project, err := h.projectService.UpdateProject(c.Request().Context(), id, in)
	if err != nil {
		return respondError(c, err, projectNotFound)
	}
	return c.JSON(http.StatusOK, project)
}

// DeleteProject --> DELETE /projects/:id
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, detail("Invalid ID"))
	}

	project, err := h.projectService.DeleteProject(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, projectNotFound)
	}
	return c.JSON(http.StatusOK, project)
}

// DeleteAllProjects --> DELETE /projects/
func (h *ProjectHandler) DeleteAllProjects(c echo.Context) error {
	if err := h.projectService.DeleteAllProjects(c.Request().Context()); err != nil {
		return respondError(c, err, projectNotFound)
	}
	return c.JSON(http.StatusOK, detail("All projects deleted"))
}

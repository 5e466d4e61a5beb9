package handler

import (
	"cipherstudio/internal/domain/project"
	"net/http"

	"github.com/labstack/echo/v4"
)

type ProjectHandler struct {
	service ProjectService
}

func NewProjectHandler(service ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

type CreateProjectRequest struct {
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	Files       []project.FileInput `json:"files"`
	IsPublic    *bool               `json:"isPublic"`
}

// UpdateProjectRequest fields are all optional; absent fields stay untouched.
type UpdateProjectRequest struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Files       *[]project.FileInput `json:"files"`
	IsPublic    *bool                `json:"isPublic"`
}

func (h *ProjectHandler) ListProjects(c echo.Context) error {
	projects, err := h.service.List(c.Request().Context())
	if err != nil {
		return respondServiceError(c, err, msgListProjectsFail)
	}

	return respondList(c, http.StatusOK, projects, len(projects))
}

func (h *ProjectHandler) GetProject(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param(paramID))
	if err != nil {
		return respondServiceError(c, err, msgGetProjectFail)
	}

	return respondData(c, http.StatusOK, "", p)
}

func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var req CreateProjectRequest
	if err := bindJSON(c, &req); err != nil {
		return respondServiceError(c, err, msgCreateProjectFail)
	}

	p, err := h.service.Create(c.Request().Context(), project.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Files:       req.Files,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return respondServiceError(c, err, msgCreateProjectFail)
	}

	return respondData(c, http.StatusCreated, msgProjectCreated, p)
}

func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	var req UpdateProjectRequest
	if err := bindJSON(c, &req); err != nil {
		return respondServiceError(c, err, msgUpdateProjectFail)
	}

	p, err := h.service.Update(c.Request().Context(), c.Param(paramID), project.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Files:       req.Files,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		return respondServiceError(c, err, msgUpdateProjectFail)
	}

	return respondData(c, http.StatusOK, msgProjectUpdated, p)
}

func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param(paramID)); err != nil {
		return respondServiceError(c, err, msgDeleteProjectFail)
	}

	return respondMessage(c, http.StatusOK, msgProjectDeleted)
}

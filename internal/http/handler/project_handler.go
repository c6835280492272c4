package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/crestline-build/bidtrack-api/internal/repository"
	"github.com/crestline-build/bidtrack-api/internal/service"
	"go.uber.org/zap"
)

// ProjectHandler handles HTTP requests for projects
type ProjectHandler struct {
	projectService *service.ProjectService
	logger         *zap.Logger
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectService *service.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// ListProjects godoc
// @Summary List projects
// @Description Get paginated projects, each with its bid vendor rows
// @Tags Projects
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by name or address"
// @Param status query string false "Filter by status" Enums(bidding, submitted, awarded, in_progress, completed, lost)
// @Param department query string false "Filter by department" Enums(estimating, apm)
// @Param cycle query string false "Filter by the department's activity cycle" Enums(active, on_hold, archived)
// @Param sortBy query string false "Sort field" Enums(createdAt, updatedAt, name, dueDate, status)
// @Param sortDir query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} domain.PaginatedResponse
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	filters := &repository.ProjectFilters{
		Search: r.URL.Query().Get("search"),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.ProjectStatus(s)
		if !status.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		filters.Status = &status
	}
	if d := r.URL.Query().Get("department"); d != "" {
		department := domain.Department(d)
		if !department.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid department: must be estimating or apm")
			return
		}
		filters.Department = &department
	}
	if c := r.URL.Query().Get("cycle"); c != "" {
		cycle := domain.ActivityCycle(c)
		if !cycle.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid cycle: must be active, on_hold or archived")
			return
		}
		filters.Cycle = &cycle
	}

	projects, total, err := h.projectService.List(r.Context(), page, pageSize, filters, parseSort(r))
	if err != nil {
		h.logger.Error("failed to list projects", zap.Error(err))
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, paginated(projects, total, page, pageSize))
}

// SearchProjects godoc
// @Summary Search projects
// @Tags Projects
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Maximum results" default(10)
// @Success 200 {array} domain.ProjectDTO
// @Security BearerAuth
// @Router /projects/search [get]
func (h *ProjectHandler) SearchProjects(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "Query parameter q is required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	projects, err := h.projectService.Search(r.Context(), query, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

// GetProject godoc
// @Summary Get project
// @Description Get one project with its bid vendor rows
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} domain.ProjectWithVendorsDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// CreateProject godoc
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body domain.CreateProjectRequest true "Project to create"
// @Success 201 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	project, err := h.projectService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create project", zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, project)
}

// UpdateProject godoc
// @Summary Update project
// @Description Partial update. Cycle fields win over the legacy archived/onHold pair.
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param project body domain.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} domain.ProjectDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id} [patch]
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req domain.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	project, err := h.projectService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

// DeleteProject godoc
// @Summary Delete project
// @Description Remove a project and everything hanging off it. Admin only.
// @Tags Projects
// @Param id path string true "Project ID"
// @Success 204
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	if err := h.projectService.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete project",
			zap.String("project_id", id.String()),
			zap.Error(err))
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

package handler

import (
	"errors"
	"log/slog"

	"github.com/copia-dashboard/internal/dashboard/service"
	"github.com/copia-dashboard/internal/domain/entity"
	"github.com/copia-dashboard/internal/ledgerapi"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProjectHandler handles HTTP requests for project administration
type ProjectHandler struct {
	projectService service.ProjectService
	logger         *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(logger *slog.Logger, projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// Create registers a new project. Validation failures come back field by
// field so the form can highlight each offending input.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(),
		entity.ProjectName(req.Name), entity.Url(req.RedirectURL))
	if err != nil {
		if h.respondProjectError(c, err) {
			return
		}
		h.logger.Error("Failed to create project", "name", req.Name, "error", err)
		RespondLedgerError(c, err)
		return
	}

	RespondCreated(c, mapProject(project, amountTag(c)))
}

// AddAdmin grants a user admin rights on a project
func (h *ProjectHandler) AddAdmin(c *gin.Context) {
	var req AdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	project := entity.ProjectName(c.Param("name"))
	if err := h.projectService.AddAdmin(c.Request.Context(), project, entity.UserName(req.User)); err != nil {
		if h.respondProjectError(c, err) {
			return
		}
		h.logger.Error("Failed to add admin", "project", project, "user", req.User, "error", err)
		RespondLedgerError(c, err)
		return
	}

	RespondNoContent(c)
}

// RemoveAdmin revokes a user's admin rights on a project
func (h *ProjectHandler) RemoveAdmin(c *gin.Context) {
	project := entity.ProjectName(c.Param("name"))
	user := entity.UserName(c.Param("user"))
	if err := h.projectService.RemoveAdmin(c.Request.Context(), project, user); err != nil {
		if h.respondProjectError(c, err) {
			return
		}
		h.logger.Error("Failed to remove admin", "project", project, "user", user, "error", err)
		RespondLedgerError(c, err)
		return
	}

	RespondNoContent(c)
}

// ListAPIClients lists a project's API credentials
func (h *ProjectHandler) ListAPIClients(c *gin.Context) {
	project := entity.ProjectName(c.Param("name"))
	clients, err := h.projectService.ListAPIClients(c.Request.Context(), project)
	if err != nil {
		if h.respondProjectError(c, err) {
			return
		}
		h.logger.Error("Failed to list API clients", "project", project, "error", err)
		RespondLedgerError(c, err)
		return
	}

	out := make([]APIClientResponse, 0, len(clients))
	for _, client := range clients {
		out = append(out, mapAPIClient(client))
	}
	RespondOK(c, out)
}

// CreateAPIClient issues a new API credential. The response is the only
// place the secret ever appears.
func (h *ProjectHandler) CreateAPIClient(c *gin.Context) {
	var req CreateAPIClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	project := entity.ProjectName(c.Param("name"))
	client, err := h.projectService.CreateAPIClient(c.Request.Context(), project, req.Name)
	if err != nil {
		if h.respondProjectError(c, err) {
			return
		}
		h.logger.Error("Failed to create API client", "project", project, "error", err)
		RespondLedgerError(c, err)
		return
	}

	RespondCreated(c, mapAPIClient(client))
}

// DeleteAPIClient revokes an API credential
func (h *ProjectHandler) DeleteAPIClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid API client ID")
		return
	}

	project := entity.ProjectName(c.Param("name"))
	if err := h.projectService.DeleteAPIClient(c.Request.Context(), project, id); err != nil {
		if h.respondProjectError(c, err) {
			return
		}
		h.logger.Error("Failed to delete API client", "project", project, "id", id, "error", err)
		RespondLedgerError(c, err)
		return
	}

	RespondNoContent(c)
}

// respondProjectError handles the error cases shared by every project
// operation, reporting whether it wrote a response.
func (h *ProjectHandler) respondProjectError(c *gin.Context, err error) bool {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		RespondWithFieldErrors(c, verr.Fields)
		return true
	}
	if errors.Is(err, ledgerapi.ErrNotFound) {
		RespondNotFound(c, "")
		return true
	}
	return false
}

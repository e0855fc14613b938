package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"projecthub/internal/command"
	"projecthub/internal/model"
	"projecthub/internal/service"
)

type ProjectHandler struct {
	projects *service.ProjectService
}

func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// Create handles POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Status      string `json:"status"`
		StartDate   string `json:"start_date"`
		EndDate     string `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	status := req.Status
	if status == "" {
		status = model.ProjectStatusPlanning
	}
	if !model.IsValidProjectStatus(status) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown project status"})
		return
	}

	startDate, ok := parseOptionalDate(c, req.StartDate, "start_date")
	if !ok {
		return
	}
	endDate, ok := parseOptionalDate(c, req.EndDate, "end_date")
	if !ok {
		return
	}

	project, err := h.projects.Create(c.Request.Context(), actor, command.CreateProjectCommand{
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		OwnerID:     actor,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// Update handles PATCH /projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		StartDate   *string `json:"start_date"`
		EndDate     *string `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	if req.Status != nil && !model.IsValidProjectStatus(*req.Status) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown project status"})
		return
	}

	cmd := command.UpdateProjectCommand{
		ProjectID:   c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	}
	if req.StartDate != nil {
		d, ok := parseOptionalDate(c, *req.StartDate, "start_date")
		if !ok {
			return
		}
		cmd.StartDate = d
	}
	if req.EndDate != nil {
		d, ok := parseOptionalDate(c, *req.EndDate, "end_date")
		if !ok {
			return
		}
		cmd.EndDate = d
	}

	project, err := h.projects.Update(c.Request.Context(), actor, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Complete handles POST /projects/:id/complete
func (h *ProjectHandler) Complete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	project, err := h.projects.Complete(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// Get handles GET /projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	project, err := h.projects.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// List handles GET /projects with optional owner_id / status filters
func (h *ProjectHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if ownerID := c.Query("owner_id"); ownerID != "" {
		projects, err := h.projects.ListByOwner(ctx, ownerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, projects)
		return
	}

	if status := c.Query("status"); status != "" {
		projects, err := h.projects.ListByStatus(ctx, status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, projects)
		return
	}

	projects, err := h.projects.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// Delete handles DELETE /projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// parseOptionalDate parses a 2006-01-02 date. An empty string means absent.
// On a malformed value it writes a 422 and reports false.
func parseOptionalDate(c *gin.Context, value, field string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid date", "field": field})
		return nil, false
	}
	return &d, true
}

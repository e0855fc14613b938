package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"projecthub/internal/command"
	"projecthub/internal/service"
)

type MilestoneHandler struct {
	milestones *service.MilestoneService
}

func NewMilestoneHandler(milestones *service.MilestoneService) *MilestoneHandler {
	return &MilestoneHandler{milestones: milestones}
}

// Create handles POST /milestones
func (h *MilestoneHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req struct {
		ProjectID   string `json:"project_id" binding:"required"`
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		DueDate     string `json:"due_date" binding:"required"`
		IsCompleted bool   `json:"is_completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid date", "field": "due_date"})
		return
	}

	milestone, err := h.milestones.Create(c.Request.Context(), actor, command.CreateMilestoneCommand{
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
		DueDate:     dueDate,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, milestone)
}

// Update handles PATCH /milestones/:id
func (h *MilestoneHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		DueDate     *string `json:"due_date"`
		IsCompleted *bool   `json:"is_completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	cmd := command.UpdateMilestoneCommand{
		MilestoneID: c.Param("id"),
		Name:        req.Name,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
	}
	if req.DueDate != nil {
		d, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid date", "field": "due_date"})
			return
		}
		cmd.DueDate = &d
	}

	milestone, err := h.milestones.Update(c.Request.Context(), actor, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, milestone)
}

// Get handles GET /milestones/:id
func (h *MilestoneHandler) Get(c *gin.Context) {
	milestone, err := h.milestones.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, milestone)
}

// List handles GET /milestones with project_id / completed / upcoming filters
func (h *MilestoneHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		milestones []service.MilestoneDTO
		err        error
	)
	projectID := c.Query("project_id")
	if projectID == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "project_id is required"})
		return
	}

	switch {
	case c.Query("completed") == "true":
		milestones, err = h.milestones.ListCompleted(ctx, projectID)
	case c.Query("upcoming") == "true":
		milestones, err = h.milestones.ListUpcoming(ctx, projectID)
	default:
		milestones, err = h.milestones.ListByProject(ctx, projectID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, milestones)
}

// Delete handles DELETE /milestones/:id
func (h *MilestoneHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.milestones.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

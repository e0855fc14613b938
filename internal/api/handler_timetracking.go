package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"projecthub/internal/command"
	"projecthub/internal/service"
)

type TimeTrackingHandler struct {
	tracking *service.TimeTrackingService
}

func NewTimeTrackingHandler(tracking *service.TimeTrackingService) *TimeTrackingHandler {
	return &TimeTrackingHandler{tracking: tracking}
}

// Start handles POST /time/start
func (h *TimeTrackingHandler) Start(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req struct {
		TaskID      string `json:"task_id" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.tracking.Start(c.Request.Context(), actor, req.TaskID, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// Stop handles POST /time/stop
func (h *TimeTrackingHandler) Stop(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	entry, err := h.tracking.Stop(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Log handles POST /time/entries for a completed entry with explicit times
func (h *TimeTrackingHandler) Log(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req struct {
		TaskID      string `json:"task_id" binding:"required"`
		StartTime   string `json:"start_time" binding:"required"`
		EndTime     string `json:"end_time"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid timestamp", "field": "start_time"})
		return
	}

	cmd := command.CreateTimeEntryCommand{
		UserID:      actor,
		TaskID:      req.TaskID,
		StartTime:   startTime,
		Description: req.Description,
	}
	if req.EndTime != "" {
		endTime, err := time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid timestamp", "field": "end_time"})
			return
		}
		cmd.EndTime = &endTime
	}

	entry, err := h.tracking.Log(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// Update handles PATCH /time/entries/:id
func (h *TimeTrackingHandler) Update(c *gin.Context) {
	var req struct {
		Description *string `json:"description"`
		EndTime     *string `json:"end_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	cmd := command.UpdateTimeEntryCommand{
		EntryID:     c.Param("id"),
		Description: req.Description,
	}
	if req.EndTime != nil {
		endTime, err := time.Parse(time.RFC3339, *req.EndTime)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid timestamp", "field": "end_time"})
			return
		}
		cmd.EndTime = &endTime
	}

	entry, err := h.tracking.Update(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// List handles GET /time/entries with task_id / from+to filters, defaulting
// to the actor's entries
func (h *TimeTrackingHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	if taskID := c.Query("task_id"); taskID != "" {
		entries, err := h.tracking.ListByTask(ctx, taskID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
		return
	}

	if from, to := c.Query("from"), c.Query("to"); from != "" && to != "" {
		fromTime, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid date", "field": "from"})
			return
		}
		toTime, err := time.Parse("2006-01-02", to)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid date", "field": "to"})
			return
		}
		entries, err := h.tracking.ListByUserAndRange(ctx, actor, fromTime, toTime.Add(24*time.Hour))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
		return
	}

	entries, err := h.tracking.ListByUser(ctx, actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// TaskTotal handles GET /time/tasks/:id/total
func (h *TimeTrackingHandler) TaskTotal(c *gin.Context) {
	total, err := h.tracking.TaskTotalMinutes(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"task_id": c.Param("id"), "total_minutes": total})
}

// UserTotal handles GET /time/users/:id/total
func (h *TimeTrackingHandler) UserTotal(c *gin.Context) {
	total, err := h.tracking.UserTotalMinutes(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": c.Param("id"), "total_minutes": total})
}

// Delete handles DELETE /time/entries/:id
func (h *TimeTrackingHandler) Delete(c *gin.Context) {
	if err := h.tracking.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

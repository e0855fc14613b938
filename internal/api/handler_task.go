package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"projecthub/internal/command"
	"projecthub/internal/model"
	"projecthub/internal/service"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create handles POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Status      string `json:"status"`
		Priority    string `json:"priority"`
		ProjectID   string `json:"project_id" binding:"required"`
		AssignedTo  string `json:"assigned_to"`
		DueDate     string `json:"due_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	status := req.Status
	if status == "" {
		status = model.TaskStatusTodo
	}
	priority := req.Priority
	if priority == "" {
		priority = model.TaskPriorityMedium
	}
	if !model.IsValidTaskStatus(status) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown task status"})
		return
	}
	if !model.IsValidTaskPriority(priority) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown task priority"})
		return
	}

	dueDate, ok := parseOptionalDate(c, req.DueDate, "due_date")
	if !ok {
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), command.CreateTaskCommand{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    priority,
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
		DueDate:     dueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// Update handles PATCH /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
		Priority    *string `json:"priority"`
		DueDate     *string `json:"due_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	if req.Status != nil && !model.IsValidTaskStatus(*req.Status) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown task status"})
		return
	}
	if req.Priority != nil && !model.IsValidTaskPriority(*req.Priority) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown task priority"})
		return
	}

	cmd := command.UpdateTaskCommand{
		TaskID:      c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	}
	if req.DueDate != nil {
		d, ok := parseOptionalDate(c, *req.DueDate, "due_date")
		if !ok {
			return
		}
		cmd.DueDate = d
	}

	task, err := h.tasks.Update(c.Request.Context(), actor, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateStatus handles POST /tasks/:id/status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}
	if !model.IsValidTaskStatus(req.Status) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown task status"})
		return
	}

	task, err := h.tasks.UpdateStatus(c.Request.Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// Assign handles POST /tasks/:id/assign
func (h *TaskHandler) Assign(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid request body"})
		return
	}

	task, err := h.tasks.Assign(c.Request.Context(), actor, c.Param("id"), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// Get handles GET /tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	task, err := h.tasks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// List handles GET /tasks with project_id / assigned_to / status / priority /
// overdue filters
func (h *TaskHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		tasks interface{}
		err   error
	)
	switch {
	case c.Query("project_id") != "":
		tasks, err = h.tasks.ListByProject(ctx, c.Query("project_id"))
	case c.Query("assigned_to") != "":
		tasks, err = h.tasks.ListByAssignee(ctx, c.Query("assigned_to"))
	case c.Query("status") != "":
		tasks, err = h.tasks.ListByStatus(ctx, c.Query("status"))
	case c.Query("priority") != "":
		tasks, err = h.tasks.ListByPriority(ctx, c.Query("priority"))
	case c.Query("overdue") == "true":
		tasks, err = h.tasks.ListOverdue(ctx)
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "a filter is required"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Delete handles DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

package command

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"projecthub/internal/apperr"
	"projecthub/internal/event"
	"projecthub/internal/model"
	"projecthub/internal/repository"
)

type CreateTaskHandler struct {
	tasks      repository.TaskRepository
	projects   repository.ProjectRepository
	dispatcher event.Dispatcher
	logger     *zap.Logger
}

func NewCreateTaskHandler(tasks repository.TaskRepository, projects repository.ProjectRepository, dispatcher event.Dispatcher, logger *zap.Logger) *CreateTaskHandler {
	return &CreateTaskHandler{tasks: tasks, projects: projects, dispatcher: dispatcher, logger: logger}
}

func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*model.Task, error) {
	exists, err := h.projects.ExistsByID(ctx, cmd.ProjectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("project", cmd.ProjectID)
	}

	task := model.NewTask(
		uuid.NewString(),
		cmd.Title,
		cmd.Description,
		cmd.Status,
		cmd.Priority,
		cmd.ProjectID,
		cmd.AssignedTo,
		cmd.DueDate,
	)

	if err := h.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	emit(ctx, h.dispatcher, h.logger, event.NewTaskCreated(task.ID, task.Title, task.ProjectID, task.AssignedTo))
	return task, nil
}

type UpdateTaskHandler struct {
	tasks repository.TaskRepository
}

func NewUpdateTaskHandler(tasks repository.TaskRepository) *UpdateTaskHandler {
	return &UpdateTaskHandler{tasks: tasks}
}

func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) (*model.Task, error) {
	task, err := h.tasks.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.NotFound("task", cmd.TaskID)
	}

	if cmd.Title != nil {
		task.UpdateTitle(*cmd.Title)
	}
	if cmd.Description != nil {
		task.UpdateDescription(*cmd.Description)
	}
	if cmd.Status != nil {
		task.UpdateStatus(*cmd.Status)
	}
	if cmd.Priority != nil {
		task.UpdatePriority(*cmd.Priority)
	}
	if cmd.DueDate != nil {
		task.SetDueDate(cmd.DueDate)
	}

	if err := h.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

type UpdateTaskStatusHandler struct {
	tasks      repository.TaskRepository
	dispatcher event.Dispatcher
	logger     *zap.Logger
}

func NewUpdateTaskStatusHandler(tasks repository.TaskRepository, dispatcher event.Dispatcher, logger *zap.Logger) *UpdateTaskStatusHandler {
	return &UpdateTaskStatusHandler{tasks: tasks, dispatcher: dispatcher, logger: logger}
}

func (h *UpdateTaskStatusHandler) Handle(ctx context.Context, cmd UpdateTaskStatusCommand) (*model.Task, error) {
	task, err := h.tasks.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.NotFound("task", cmd.TaskID)
	}

	oldStatus := task.Status
	task.UpdateStatus(cmd.NewStatus)

	if err := h.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	emit(ctx, h.dispatcher, h.logger, event.NewTaskStatusChanged(task.ID, task.Title, oldStatus, cmd.NewStatus, cmd.UpdatedBy))
	return task, nil
}

type AssignTaskHandler struct {
	tasks      repository.TaskRepository
	users      repository.UserRepository
	dispatcher event.Dispatcher
	logger     *zap.Logger
}

func NewAssignTaskHandler(tasks repository.TaskRepository, users repository.UserRepository, dispatcher event.Dispatcher, logger *zap.Logger) *AssignTaskHandler {
	return &AssignTaskHandler{tasks: tasks, users: users, dispatcher: dispatcher, logger: logger}
}

func (h *AssignTaskHandler) Handle(ctx context.Context, cmd AssignTaskCommand) (*model.Task, error) {
	task, err := h.tasks.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.NotFound("task", cmd.TaskID)
	}

	assignee, err := h.users.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, apperr.NotFound("user", cmd.UserID)
	}

	task.AssignTo(cmd.UserID)

	if err := h.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	emit(ctx, h.dispatcher, h.logger, event.NewTaskAssigned(task.ID, task.Title, cmd.UserID, cmd.AssignedBy, task.ProjectID))
	return task, nil
}

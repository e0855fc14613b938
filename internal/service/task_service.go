package service

import (
	"context"

	"projecthub/internal/apperr"
	"projecthub/internal/command"
	"projecthub/internal/permission"
	"projecthub/internal/repository"
)

type TaskService struct {
	tasks        repository.TaskRepository
	perms        *permission.Evaluator
	create       *command.CreateTaskHandler
	update       *command.UpdateTaskHandler
	updateStatus *command.UpdateTaskStatusHandler
	assign       *command.AssignTaskHandler
}

func NewTaskService(
	tasks repository.TaskRepository,
	perms *permission.Evaluator,
	create *command.CreateTaskHandler,
	update *command.UpdateTaskHandler,
	updateStatus *command.UpdateTaskStatusHandler,
	assign *command.AssignTaskHandler,
) *TaskService {
	return &TaskService{
		tasks:        tasks,
		perms:        perms,
		create:       create,
		update:       update,
		updateStatus: updateStatus,
		assign:       assign,
	}
}

// Create performs no permission check of its own; any authenticated user may
// open a task, and the gated operations are the mutating ones below.
func (s *TaskService) Create(ctx context.Context, cmd command.CreateTaskCommand) (*TaskDTO, error) {
	task, err := s.create.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	dto := NewTaskDTO(task)
	return &dto, nil
}

func (s *TaskService) Update(ctx context.Context, actorID string, cmd command.UpdateTaskCommand) (*TaskDTO, error) {
	if !s.perms.CanManageTask(ctx, actorID, cmd.TaskID) {
		return nil, apperr.Unauthorized("not allowed to manage this task")
	}

	task, err := s.update.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	dto := NewTaskDTO(task)
	return &dto, nil
}

func (s *TaskService) UpdateStatus(ctx context.Context, actorID, taskID, newStatus string) (*TaskDTO, error) {
	if !s.perms.CanManageTask(ctx, actorID, taskID) {
		return nil, apperr.Unauthorized("not allowed to manage this task")
	}

	task, err := s.updateStatus.Handle(ctx, command.UpdateTaskStatusCommand{
		TaskID:    taskID,
		NewStatus: newStatus,
		UpdatedBy: actorID,
	})
	if err != nil {
		return nil, err
	}
	dto := NewTaskDTO(task)
	return &dto, nil
}

func (s *TaskService) Assign(ctx context.Context, actorID, taskID, userID string) (*TaskDTO, error) {
	if !s.perms.CanAssignTask(ctx, actorID) {
		return nil, apperr.Unauthorized("not allowed to assign tasks")
	}

	task, err := s.assign.Handle(ctx, command.AssignTaskCommand{
		TaskID:     taskID,
		UserID:     userID,
		AssignedBy: actorID,
	})
	if err != nil {
		return nil, err
	}
	dto := NewTaskDTO(task)
	return &dto, nil
}

func (s *TaskService) Get(ctx context.Context, taskID string) (*TaskDTO, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperr.NotFound("task", taskID)
	}
	dto := NewTaskDTO(task)
	return &dto, nil
}

func (s *TaskService) ListByProject(ctx context.Context, projectID string) ([]TaskDTO, error) {
	tasks, err := s.tasks.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return taskDTOs(tasks), nil
}

func (s *TaskService) ListByAssignee(ctx context.Context, userID string) ([]TaskDTO, error) {
	tasks, err := s.tasks.FindByAssignedUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return taskDTOs(tasks), nil
}

func (s *TaskService) ListByStatus(ctx context.Context, status string) ([]TaskDTO, error) {
	tasks, err := s.tasks.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return taskDTOs(tasks), nil
}

func (s *TaskService) ListByPriority(ctx context.Context, priority string) ([]TaskDTO, error) {
	tasks, err := s.tasks.FindByPriority(ctx, priority)
	if err != nil {
		return nil, err
	}
	return taskDTOs(tasks), nil
}

func (s *TaskService) ListOverdue(ctx context.Context) ([]TaskDTO, error) {
	tasks, err := s.tasks.FindOverdueTasks(ctx)
	if err != nil {
		return nil, err
	}
	return taskDTOs(tasks), nil
}

func (s *TaskService) Delete(ctx context.Context, actorID, taskID string) error {
	if !s.perms.CanManageTask(ctx, actorID, taskID) {
		return apperr.Unauthorized("not allowed to manage this task")
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return apperr.NotFound("task", taskID)
	}
	return s.tasks.Delete(ctx, taskID)
}

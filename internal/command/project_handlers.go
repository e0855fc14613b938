package command

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"projecthub/internal/apperr"
	"projecthub/internal/event"
	"projecthub/internal/model"
	"projecthub/internal/repository"
)

type CreateProjectHandler struct {
	projects   repository.ProjectRepository
	dispatcher event.Dispatcher
	logger     *zap.Logger
}

func NewCreateProjectHandler(projects repository.ProjectRepository, dispatcher event.Dispatcher, logger *zap.Logger) *CreateProjectHandler {
	return &CreateProjectHandler{projects: projects, dispatcher: dispatcher, logger: logger}
}

func (h *CreateProjectHandler) Handle(ctx context.Context, cmd CreateProjectCommand) (*model.Project, error) {
	if err := validateProjectDates(cmd.StartDate, cmd.EndDate); err != nil {
		return nil, err
	}

	project := model.NewProject(
		uuid.NewString(),
		cmd.Name,
		cmd.Description,
		cmd.Status,
		cmd.OwnerID,
		cmd.StartDate,
		cmd.EndDate,
	)

	if err := h.projects.Save(ctx, project); err != nil {
		return nil, err
	}

	emit(ctx, h.dispatcher, h.logger, event.NewProjectCreated(project.ID, project.Name, project.OwnerID))
	return project, nil
}

type UpdateProjectHandler struct {
	projects   repository.ProjectRepository
	dispatcher event.Dispatcher
	logger     *zap.Logger
}

func NewUpdateProjectHandler(projects repository.ProjectRepository, dispatcher event.Dispatcher, logger *zap.Logger) *UpdateProjectHandler {
	return &UpdateProjectHandler{projects: projects, dispatcher: dispatcher, logger: logger}
}

func (h *UpdateProjectHandler) Handle(ctx context.Context, cmd UpdateProjectCommand) (*model.Project, error) {
	project, err := h.projects.FindByID(ctx, cmd.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperr.NotFound("project", cmd.ProjectID)
	}

	changes := map[string]string{}

	if cmd.Name != nil {
		project.UpdateName(*cmd.Name)
		changes["name"] = *cmd.Name
	}
	if cmd.Description != nil {
		project.UpdateDescription(*cmd.Description)
		changes["description"] = *cmd.Description
	}
	if cmd.Status != nil {
		project.UpdateStatus(*cmd.Status)
		changes["status"] = *cmd.Status
	}
	if cmd.StartDate != nil || cmd.EndDate != nil {
		project.SetDates(cmd.StartDate, cmd.EndDate)
		changes["dates"] = "updated"
	}

	if err := validateProjectDates(project.StartDate, project.EndDate); err != nil {
		return nil, err
	}

	if err := h.projects.Save(ctx, project); err != nil {
		return nil, err
	}

	emit(ctx, h.dispatcher, h.logger, event.NewProjectUpdated(project.ID, project.Name, cmd.UpdatedBy, changes))
	return project, nil
}

type CompleteProjectHandler struct {
	projects   repository.ProjectRepository
	tasks      repository.TaskRepository
	dispatcher event.Dispatcher
	logger     *zap.Logger
}

func NewCompleteProjectHandler(projects repository.ProjectRepository, tasks repository.TaskRepository, dispatcher event.Dispatcher, logger *zap.Logger) *CompleteProjectHandler {
	return &CompleteProjectHandler{projects: projects, tasks: tasks, dispatcher: dispatcher, logger: logger}
}

func (h *CompleteProjectHandler) Handle(ctx context.Context, cmd CompleteProjectCommand) (*model.Project, error) {
	project, err := h.projects.FindByID(ctx, cmd.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperr.NotFound("project", cmd.ProjectID)
	}

	tasks, err := h.tasks.FindByProjectID(ctx, cmd.ProjectID)
	if err != nil {
		return nil, err
	}

	project.UpdateStatus(model.ProjectStatusCompleted)
	if err := h.projects.Save(ctx, project); err != nil {
		return nil, err
	}

	emit(ctx, h.dispatcher, h.logger, event.NewProjectCompleted(project.ID, project.Name, cmd.CompletedBy, len(tasks)))
	return project, nil
}

// validateProjectDates rejects an end date earlier than the start date.
func validateProjectDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperr.Validation(map[string][]string{
			"end_date": {"end date must be on or after the start date"},
		})
	}
	return nil
}

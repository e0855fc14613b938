package service

import (
	"context"

	"go.uber.org/zap"

	"projecthub/internal/apperr"
	"projecthub/internal/command"
	"projecthub/internal/permission"
	"projecthub/internal/repository"
)

type ProjectService struct {
	projects repository.ProjectRepository
	perms    *permission.Evaluator
	create   *command.CreateProjectHandler
	update   *command.UpdateProjectHandler
	complete *command.CompleteProjectHandler
	logger   *zap.Logger
}

func NewProjectService(
	projects repository.ProjectRepository,
	perms *permission.Evaluator,
	create *command.CreateProjectHandler,
	update *command.UpdateProjectHandler,
	complete *command.CompleteProjectHandler,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		perms:    perms,
		create:   create,
		update:   update,
		complete: complete,
		logger:   logger,
	}
}

func (s *ProjectService) Create(ctx context.Context, actorID string, cmd command.CreateProjectCommand) (*ProjectDTO, error) {
	if !s.perms.CanCreateProject(ctx, actorID) {
		return nil, apperr.Unauthorized("not allowed to create projects")
	}

	project, err := s.create.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Project created",
		zap.String("project_id", project.ID),
		zap.String("owner_id", project.OwnerID),
	)
	dto := NewProjectDTO(project)
	return &dto, nil
}

func (s *ProjectService) Update(ctx context.Context, actorID string, cmd command.UpdateProjectCommand) (*ProjectDTO, error) {
	if !s.perms.CanUpdateProject(ctx, actorID, cmd.ProjectID) {
		return nil, apperr.Unauthorized("not allowed to update this project")
	}

	cmd.UpdatedBy = actorID
	project, err := s.update.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	dto := NewProjectDTO(project)
	return &dto, nil
}

func (s *ProjectService) Complete(ctx context.Context, actorID, projectID string) (*ProjectDTO, error) {
	if !s.perms.CanUpdateProject(ctx, actorID, projectID) {
		return nil, apperr.Unauthorized("not allowed to update this project")
	}

	project, err := s.complete.Handle(ctx, command.CompleteProjectCommand{
		ProjectID:   projectID,
		CompletedBy: actorID,
	})
	if err != nil {
		return nil, err
	}
	dto := NewProjectDTO(project)
	return &dto, nil
}

func (s *ProjectService) Get(ctx context.Context, actorID, projectID string) (*ProjectDTO, error) {
	if !s.perms.CanViewProject(ctx, actorID, projectID) {
		return nil, apperr.Unauthorized("not allowed to view this project")
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperr.NotFound("project", projectID)
	}
	dto := NewProjectDTO(project)
	return &dto, nil
}

func (s *ProjectService) Delete(ctx context.Context, actorID, projectID string) error {
	if !s.perms.CanDeleteProject(ctx, actorID, projectID) {
		return apperr.Unauthorized("not allowed to delete this project")
	}

	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return apperr.NotFound("project", projectID)
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		return err
	}
	s.logger.Info("Project deleted", zap.String("project_id", projectID))
	return nil
}

func (s *ProjectService) List(ctx context.Context) ([]ProjectDTO, error) {
	projects, err := s.projects.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return projectDTOs(projects), nil
}

func (s *ProjectService) ListByOwner(ctx context.Context, ownerID string) ([]ProjectDTO, error) {
	projects, err := s.projects.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return projectDTOs(projects), nil
}

func (s *ProjectService) ListByStatus(ctx context.Context, status string) ([]ProjectDTO, error) {
	projects, err := s.projects.FindByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	return projectDTOs(projects), nil
}

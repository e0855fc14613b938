package service

import (
	"context"

	"projecthub/internal/apperr"
	"projecthub/internal/command"
	"projecthub/internal/permission"
	"projecthub/internal/repository"
)

type MilestoneService struct {
	milestones repository.MilestoneRepository
	perms      *permission.Evaluator
	create     *command.CreateMilestoneHandler
	update     *command.UpdateMilestoneHandler
}

func NewMilestoneService(
	milestones repository.MilestoneRepository,
	perms *permission.Evaluator,
	create *command.CreateMilestoneHandler,
	update *command.UpdateMilestoneHandler,
) *MilestoneService {
	return &MilestoneService{milestones: milestones, perms: perms, create: create, update: update}
}

func (s *MilestoneService) Create(ctx context.Context, actorID string, cmd command.CreateMilestoneCommand) (*MilestoneDTO, error) {
	if !s.perms.CanUpdateProject(ctx, actorID, cmd.ProjectID) {
		return nil, apperr.Unauthorized("not allowed to manage milestones in this project")
	}

	milestone, err := s.create.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	dto := NewMilestoneDTO(milestone)
	return &dto, nil
}

func (s *MilestoneService) Update(ctx context.Context, actorID string, cmd command.UpdateMilestoneCommand) (*MilestoneDTO, error) {
	existing, err := s.milestones.FindByID(ctx, cmd.MilestoneID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("milestone", cmd.MilestoneID)
	}
	if !s.perms.CanUpdateProject(ctx, actorID, existing.ProjectID) {
		return nil, apperr.Unauthorized("not allowed to manage milestones in this project")
	}

	milestone, err := s.update.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	dto := NewMilestoneDTO(milestone)
	return &dto, nil
}

func (s *MilestoneService) Get(ctx context.Context, milestoneID string) (*MilestoneDTO, error) {
	milestone, err := s.milestones.FindByID(ctx, milestoneID)
	if err != nil {
		return nil, err
	}
	if milestone == nil {
		return nil, apperr.NotFound("milestone", milestoneID)
	}
	dto := NewMilestoneDTO(milestone)
	return &dto, nil
}

func (s *MilestoneService) ListByProject(ctx context.Context, projectID string) ([]MilestoneDTO, error) {
	milestones, err := s.milestones.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return milestoneDTOs(milestones), nil
}

func (s *MilestoneService) ListCompleted(ctx context.Context, projectID string) ([]MilestoneDTO, error) {
	milestones, err := s.milestones.FindCompletedMilestones(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return milestoneDTOs(milestones), nil
}

// ListUpcoming returns incomplete milestones ordered by due date ascending.
func (s *MilestoneService) ListUpcoming(ctx context.Context, projectID string) ([]MilestoneDTO, error) {
	milestones, err := s.milestones.FindUpcomingMilestones(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return milestoneDTOs(milestones), nil
}

func (s *MilestoneService) Delete(ctx context.Context, actorID, milestoneID string) error {
	milestone, err := s.milestones.FindByID(ctx, milestoneID)
	if err != nil {
		return err
	}
	if milestone == nil {
		return apperr.NotFound("milestone", milestoneID)
	}
	if !s.perms.CanUpdateProject(ctx, actorID, milestone.ProjectID) {
		return apperr.Unauthorized("not allowed to manage milestones in this project")
	}
	return s.milestones.Delete(ctx, milestoneID)
}

package command

import (
	"context"

	"github.com/google/uuid"

	"projecthub/internal/apperr"
	"projecthub/internal/model"
	"projecthub/internal/repository"
)

type CreateMilestoneHandler struct {
	milestones repository.MilestoneRepository
	projects   repository.ProjectRepository
}

func NewCreateMilestoneHandler(milestones repository.MilestoneRepository, projects repository.ProjectRepository) *CreateMilestoneHandler {
	return &CreateMilestoneHandler{milestones: milestones, projects: projects}
}

func (h *CreateMilestoneHandler) Handle(ctx context.Context, cmd CreateMilestoneCommand) (*model.Milestone, error) {
	exists, err := h.projects.ExistsByID(ctx, cmd.ProjectID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("project", cmd.ProjectID)
	}

	milestone := model.NewMilestone(uuid.NewString(), cmd.ProjectID, cmd.Name, cmd.Description, cmd.DueDate)
	if cmd.IsCompleted {
		milestone.MarkAsCompleted()
	}

	if err := h.milestones.Save(ctx, milestone); err != nil {
		return nil, err
	}
	return milestone, nil
}

type UpdateMilestoneHandler struct {
	milestones repository.MilestoneRepository
}

func NewUpdateMilestoneHandler(milestones repository.MilestoneRepository) *UpdateMilestoneHandler {
	return &UpdateMilestoneHandler{milestones: milestones}
}

func (h *UpdateMilestoneHandler) Handle(ctx context.Context, cmd UpdateMilestoneCommand) (*model.Milestone, error) {
	milestone, err := h.milestones.FindByID(ctx, cmd.MilestoneID)
	if err != nil {
		return nil, err
	}
	if milestone == nil {
		return nil, apperr.NotFound("milestone", cmd.MilestoneID)
	}

	if cmd.Name != nil {
		milestone.UpdateName(*cmd.Name)
	}
	if cmd.Description != nil {
		milestone.UpdateDescription(*cmd.Description)
	}
	if cmd.DueDate != nil {
		milestone.UpdateDueDate(*cmd.DueDate)
	}
	if cmd.IsCompleted != nil {
		if *cmd.IsCompleted {
			milestone.MarkAsCompleted()
		} else {
			milestone.MarkAsIncomplete()
		}
	}

	if err := h.milestones.Save(ctx, milestone); err != nil {
		return nil, err
	}
	return milestone, nil
}

package command

import (
	"context"

	"github.com/google/uuid"

	"projecthub/internal/apperr"
	"projecthub/internal/model"
	"projecthub/internal/repository"
)

type CreateTeamHandler struct {
	teams repository.TeamRepository
}

func NewCreateTeamHandler(teams repository.TeamRepository) *CreateTeamHandler {
	return &CreateTeamHandler{teams: teams}
}

func (h *CreateTeamHandler) Handle(ctx context.Context, cmd CreateTeamCommand) (*model.Team, error) {
	existing, err := h.teams.FindByName(ctx, cmd.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.AlreadyExists("team", "name", cmd.Name)
	}

	team := model.NewTeam(uuid.NewString(), cmd.Name, cmd.Description, nil)
	if err := h.teams.Save(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

type UpdateTeamHandler struct {
	teams repository.TeamRepository
}

func NewUpdateTeamHandler(teams repository.TeamRepository) *UpdateTeamHandler {
	return &UpdateTeamHandler{teams: teams}
}

func (h *UpdateTeamHandler) Handle(ctx context.Context, cmd UpdateTeamCommand) (*model.Team, error) {
	team, err := h.teams.FindByID(ctx, cmd.TeamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, apperr.NotFound("team", cmd.TeamID)
	}

	if cmd.Name != nil && *cmd.Name != team.Name {
		existing, err := h.teams.FindByName(ctx, *cmd.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != team.ID {
			return nil, apperr.AlreadyExists("team", "name", *cmd.Name)
		}
		team.UpdateName(*cmd.Name)
	}
	if cmd.Description != nil {
		team.UpdateDescription(*cmd.Description)
	}

	if err := h.teams.Save(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

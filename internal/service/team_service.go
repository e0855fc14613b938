package service

import (
	"context"

	"projecthub/internal/apperr"
	"projecthub/internal/command"
	"projecthub/internal/repository"
)

type TeamService struct {
	teams  repository.TeamRepository
	users  repository.UserRepository
	create *command.CreateTeamHandler
	update *command.UpdateTeamHandler
}

func NewTeamService(
	teams repository.TeamRepository,
	users repository.UserRepository,
	create *command.CreateTeamHandler,
	update *command.UpdateTeamHandler,
) *TeamService {
	return &TeamService{teams: teams, users: users, create: create, update: update}
}

func (s *TeamService) Create(ctx context.Context, cmd command.CreateTeamCommand) (*TeamDTO, error) {
	team, err := s.create.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	dto := NewTeamDTO(team)
	return &dto, nil
}

func (s *TeamService) Update(ctx context.Context, cmd command.UpdateTeamCommand) (*TeamDTO, error) {
	team, err := s.update.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	dto := NewTeamDTO(team)
	return &dto, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (*TeamDTO, error) {
	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, apperr.NotFound("team", teamID)
	}
	dto := NewTeamDTO(team)
	return &dto, nil
}

func (s *TeamService) List(ctx context.Context) ([]TeamDTO, error) {
	teams, err := s.teams.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return teamDTOs(teams), nil
}

func (s *TeamService) ListByMember(ctx context.Context, userID string) ([]TeamDTO, error) {
	teams, err := s.teams.FindByMemberID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return teamDTOs(teams), nil
}

func (s *TeamService) AddMember(ctx context.Context, teamID, userID string) (*TeamDTO, error) {
	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, apperr.NotFound("team", teamID)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user", userID)
	}

	team.AddMember(userID)
	if err := s.teams.Save(ctx, team); err != nil {
		return nil, err
	}
	dto := NewTeamDTO(team)
	return &dto, nil
}

func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID string) (*TeamDTO, error) {
	team, err := s.teams.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, apperr.NotFound("team", teamID)
	}

	team.RemoveMember(userID)
	if err := s.teams.Save(ctx, team); err != nil {
		return nil, err
	}
	dto := NewTeamDTO(team)
	return &dto, nil
}

func (s *TeamService) Delete(ctx context.Context, teamID string) error {
	exists, err := s.teams.ExistsByID(ctx, teamID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("team", teamID)
	}
	return s.teams.Delete(ctx, teamID)
}

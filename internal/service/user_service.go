package service

import (
	"context"

	"projecthub/internal/apperr"
	"projecthub/internal/command"
	"projecthub/internal/model"
	"projecthub/internal/permission"
	"projecthub/internal/repository"
)

type UserService struct {
	users  repository.UserRepository
	perms  *permission.Evaluator
	create *command.CreateUserHandler
}

func NewUserService(
	users repository.UserRepository,
	perms *permission.Evaluator,
	create *command.CreateUserHandler,
) *UserService {
	return &UserService{users: users, perms: perms, create: create}
}

func (s *UserService) Create(ctx context.Context, cmd command.CreateUserCommand) (*UserDTO, error) {
	user, err := s.create.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	dto := NewUserDTO(user)
	return &dto, nil
}

func (s *UserService) Get(ctx context.Context, userID string) (*UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user", userID)
	}
	dto := NewUserDTO(user)
	return &dto, nil
}

func (s *UserService) List(ctx context.Context) ([]UserDTO, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return userDTOs(users), nil
}

func (s *UserService) ListByRole(ctx context.Context, role string) ([]UserDTO, error) {
	users, err := s.users.FindByRole(ctx, role)
	if err != nil {
		return nil, err
	}
	return userDTOs(users), nil
}

func (s *UserService) ListActive(ctx context.Context) ([]UserDTO, error) {
	users, err := s.users.FindActiveUsers(ctx)
	if err != nil {
		return nil, err
	}
	return userDTOs(users), nil
}

// ChangeRole moves a user to a new role. The actor must outrank the target.
func (s *UserService) ChangeRole(ctx context.Context, actorID, userID, role string) (*UserDTO, error) {
	if !model.IsValidRole(role) {
		return nil, apperr.Validation(map[string][]string{"role": {"unknown role"}})
	}
	if !s.perms.HasHigherRole(ctx, actorID, userID) {
		return nil, apperr.Unauthorized("not allowed to change this user's role")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user", userID)
	}

	user.ChangeRole(role)
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	dto := NewUserDTO(user)
	return &dto, nil
}

func (s *UserService) Deactivate(ctx context.Context, actorID, userID string) (*UserDTO, error) {
	if !s.perms.HasHigherRole(ctx, actorID, userID) {
		return nil, apperr.Unauthorized("not allowed to deactivate this user")
	}
	return s.setActive(ctx, userID, false)
}

func (s *UserService) Activate(ctx context.Context, actorID, userID string) (*UserDTO, error) {
	if !s.perms.HasHigherRole(ctx, actorID, userID) {
		return nil, apperr.Unauthorized("not allowed to activate this user")
	}
	return s.setActive(ctx, userID, true)
}

func (s *UserService) setActive(ctx context.Context, userID string, active bool) (*UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user", userID)
	}

	if active {
		user.Activate()
	} else {
		user.Deactivate()
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	dto := NewUserDTO(user)
	return &dto, nil
}

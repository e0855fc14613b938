package command

import (
	"context"

	"github.com/google/uuid"

	"projecthub/internal/apperr"
	"projecthub/internal/auth"
	"projecthub/internal/model"
	"projecthub/internal/repository"
)

type RegisterUserHandler struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
}

func NewRegisterUserHandler(users repository.UserRepository, hasher auth.PasswordHasher) *RegisterUserHandler {
	return &RegisterUserHandler{users: users, hasher: hasher}
}

func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*model.User, error) {
	taken, err := h.users.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.AlreadyExists("user", "email", cmd.Email)
	}

	digest, err := h.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, err
	}

	role := cmd.Role
	if role == "" {
		role = model.RoleTeamMember
	}

	user := model.NewUser(uuid.NewString(), cmd.Name, cmd.Email, role, digest)
	if err := h.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUserHandler provisions an account without credentials. The user
// cannot log in until a password is set through registration or reset.
type CreateUserHandler struct {
	users repository.UserRepository
}

func NewCreateUserHandler(users repository.UserRepository) *CreateUserHandler {
	return &CreateUserHandler{users: users}
}

func (h *CreateUserHandler) Handle(ctx context.Context, cmd CreateUserCommand) (*model.User, error) {
	taken, err := h.users.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.AlreadyExists("user", "email", cmd.Email)
	}

	user := model.NewUser(uuid.NewString(), cmd.Name, cmd.Email, cmd.Role, "")
	if err := h.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// LoginResult carries the authenticated user and their fresh token.
type LoginResult struct {
	User  *model.User
	Token string
}

type LoginUserHandler struct {
	users  repository.UserRepository
	hasher auth.PasswordHasher
	tokens auth.TokenIssuer
}

func NewLoginUserHandler(users repository.UserRepository, hasher auth.PasswordHasher, tokens auth.TokenIssuer) *LoginUserHandler {
	return &LoginUserHandler{users: users, hasher: hasher, tokens: tokens}
}

func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*LoginResult, error) {
	user, err := h.users.FindByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !h.hasher.Verify(cmd.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("account is deactivated")
	}

	device := cmd.DeviceName
	if device == "" {
		device = "api-token"
	}

	token, err := h.tokens.IssueToken(ctx, user.ID, device)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token}, nil
}

package service

import (
	"context"

	"go.uber.org/zap"

	"projecthub/internal/auth"
	"projecthub/internal/command"
)

// AuthResult is what a successful login or registration returns.
type AuthResult struct {
	User  UserDTO `json:"user"`
	Token string  `json:"token"`
}

type AuthService struct {
	register *command.RegisterUserHandler
	login    *command.LoginUserHandler
	issuer   *auth.JWTIssuer
	sessions auth.SessionStore
	logger   *zap.Logger
}

func NewAuthService(
	register *command.RegisterUserHandler,
	login *command.LoginUserHandler,
	issuer *auth.JWTIssuer,
	sessions auth.SessionStore,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		register: register,
		login:    login,
		issuer:   issuer,
		sessions: sessions,
		logger:   logger,
	}
}

func (s *AuthService) Register(ctx context.Context, cmd command.RegisterUserCommand) (*UserDTO, error) {
	user, err := s.register.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	s.logger.Info("User registered", zap.String("user_id", user.ID))
	dto := NewUserDTO(user)
	return &dto, nil
}

func (s *AuthService) Login(ctx context.Context, cmd command.LoginUserCommand) (*AuthResult, error) {
	result, err := s.login.Handle(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: NewUserDTO(result.User), Token: result.Token}, nil
}

// Logout revokes the session behind the presented token. An invalid token is
// reported as-is; revoking an already-revoked session is a no-op.
func (s *AuthService) Logout(ctx context.Context, tokenStr string) error {
	claims, err := s.issuer.ParseToken(tokenStr)
	if err != nil {
		return err
	}
	if s.sessions == nil || claims.TokenID == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, claims.UserID, claims.TokenID); err != nil {
		return err
	}
	s.logger.Info("Session revoked",
		zap.String("user_id", claims.UserID),
		zap.String("device", claims.Device),
	)
	return nil
}

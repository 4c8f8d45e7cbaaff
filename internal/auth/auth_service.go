package auth

import (
	"context"
	"fmt"

	"supportchat/internal/chat/repository"
	"supportchat/internal/common"
	"supportchat/internal/config"
	"supportchat/internal/dbmysql"
)

// AuthService backs the REST login/register endpoints. The rest of the
// identity subsystem (role management, profiles) lives outside the chat
// core; only the flows chat clients need are here.
type AuthService interface {
	Login(ctx context.Context, identifier, password string) (*dbmysql.User, string, error)
	Register(ctx context.Context, username, email, password string) (*dbmysql.User, string, error)
}

type authService struct {
	secret []byte
	users  repository.UserRepository
}

func NewAuthService(cfg *config.Config, users repository.UserRepository) AuthService {
	return &authService{secret: []byte(cfg.JWT.Secret), users: users}
}

func (s *authService) Login(ctx context.Context, identifier, password string) (*dbmysql.User, string, error) {
	user, err := s.users.ByIdentifier(ctx, identifier)
	if err != nil {
		return nil, "", fmt.Errorf("%w: invalid identifier or password", common.ErrAuth)
	}
	if err := common.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, "", fmt.Errorf("%w: invalid identifier or password", common.ErrAuth)
	}

	token, err := common.GenerateToken(s.secret, user.UserID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*dbmysql.User, string, error) {
	if err := common.ValidateUsername(username); err != nil {
		return nil, "", err
	}
	if err := common.ValidateEmail(email); err != nil {
		return nil, "", err
	}
	if err := common.ValidatePassword(password); err != nil {
		return nil, "", err
	}

	hash, err := common.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &dbmysql.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := common.GenerateToken(s.secret, user.UserID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

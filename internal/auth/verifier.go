package auth

import (
	"context"
	"fmt"

	"supportchat/internal/chat/repository"
	"supportchat/internal/common"
	"supportchat/internal/config"
)

//go:generate mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks

// Verifier resolves an opaque bearer credential to an identity and role.
// Failure means deny: callers never fall back to a default role.
type Verifier interface {
	Resolve(ctx context.Context, credential string) (*common.Identity, error)
}

type verifier struct {
	secret []byte
	users  repository.UserRepository
}

func NewVerifier(cfg *config.Config, users repository.UserRepository) Verifier {
	return &verifier{secret: []byte(cfg.JWT.Secret), users: users}
}

// Resolve validates the token, loads the user it names, and classifies
// the role once. The role rides on the returned identity; call sites
// never re-derive it from stored role strings.
func (v *verifier) Resolve(ctx context.Context, credential string) (*common.Identity, error) {
	if credential == "" {
		return nil, fmt.Errorf("%w: no token provided", common.ErrAuth)
	}

	claims, err := common.ValidToken(v.secret, credential)
	if err != nil {
		return nil, err
	}

	user, err := v.users.ByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user not found", common.ErrAuth)
	}

	return &common.Identity{
		ID:       user.UserID,
		Username: user.Username,
		Email:    user.Email,
		Role:     common.RoleFromRecord(user.RoleType, user.RoleName),
	}, nil
}

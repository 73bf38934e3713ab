package out

import (
	"context"

	"medtrack/internal/modules/auth/domain"
)

type LoginResult struct {
	Token string
	Email string
	Roles string
}

type RegisterResult struct {
	Message string
	UserID  int
}

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Register(ctx context.Context, name, email, password string) (RegisterResult, error)
	CurrentUser(ctx context.Context, token string) (domain.User, error)
}

type TokenStore interface {
	Save(ctx context.Context, token string) error
	// Load returns apperrors.ErrNoToken when nothing is persisted.
	Load(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

package out

import (
	"context"

	"medtrack/internal/modules/admin/domain"
)

type AdminAPI interface {
	ListUsers(ctx context.Context, token string, filter domain.Filter) ([]domain.Account, error)
	Roles(ctx context.Context, token string) ([]string, error)
	UpdateRoles(ctx context.Context, token string, userID int, roles []string) error
	DeleteUser(ctx context.Context, token string, userID int) error
}

type TokenSource interface {
	Token() (string, error)
}

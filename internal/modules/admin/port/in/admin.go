package in

import (
	"context"

	"medtrack/internal/modules/admin/dto"
)

type Usecase interface {
	ListUsers(ctx context.Context, input dto.ListInput) ([]dto.AccountOutput, error)
	Roles(ctx context.Context) ([]string, error)
	// SetRoles replaces a user's role set against the known roles.
	SetRoles(ctx context.Context, userID int, roles []string) error
	DeleteUser(ctx context.Context, userID int) error
}

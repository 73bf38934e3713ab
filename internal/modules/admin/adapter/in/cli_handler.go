package in

import (
	"context"

	"medtrack/internal/modules/admin/dto"
	admin "medtrack/internal/modules/admin/port/in"
)

type CLIHandler struct {
	usecase admin.Usecase
}

func NewCLIHandler(usecase admin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListUsers(ctx context.Context, input dto.ListInput) ([]dto.AccountOutput, error) {
	return h.usecase.ListUsers(ctx, input)
}

func (h CLIHandler) Roles(ctx context.Context) ([]string, error) {
	return h.usecase.Roles(ctx)
}

func (h CLIHandler) SetRoles(ctx context.Context, userID int, roles []string) error {
	return h.usecase.SetRoles(ctx, userID, roles)
}

func (h CLIHandler) DeleteUser(ctx context.Context, userID int) error {
	return h.usecase.DeleteUser(ctx, userID)
}

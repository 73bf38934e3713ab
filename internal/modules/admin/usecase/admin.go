package usecase

import (
	"context"
	"fmt"
	"strings"

	"medtrack/internal/modules/admin/domain"
	"medtrack/internal/modules/admin/dto"
	admin "medtrack/internal/modules/admin/port/in"
	admout "medtrack/internal/modules/admin/port/out"
	apperrors "medtrack/internal/platform/errors"
)

type Interactor struct {
	api    admout.AdminAPI
	tokens admout.TokenSource
}

func NewInteractor(api admout.AdminAPI, tokens admout.TokenSource) admin.Usecase {
	return &Interactor{api: api, tokens: tokens}
}

func (i *Interactor) ListUsers(ctx context.Context, input dto.ListInput) ([]dto.AccountOutput, error) {
	token, err := i.tokens.Token()
	if err != nil {
		return nil, err
	}
	accounts, err := i.api.ListUsers(ctx, token, domain.Filter{Role: input.Role, Only: input.Only})
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccountOutput, len(accounts))
	for idx, a := range accounts {
		out[idx] = dto.AccountOutput{
			UserID:    a.UserID,
			Name:      a.Name,
			Email:     a.Email,
			Role:      a.Role,
			CreatedAt: a.CreatedAt,
		}
	}
	return out, nil
}

func (i *Interactor) Roles(ctx context.Context) ([]string, error) {
	token, err := i.tokens.Token()
	if err != nil {
		return nil, err
	}
	return i.api.Roles(ctx, token)
}

// SetRoles validates the requested set against the backend's role list
// before writing, so a typo fails locally instead of half-applying.
func (i *Interactor) SetRoles(ctx context.Context, userID int, roles []string) error {
	if userID <= 0 {
		return fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	if len(roles) == 0 {
		return fmt.Errorf("%w: at least one role is required", apperrors.ErrInvalidInput)
	}
	token, err := i.tokens.Token()
	if err != nil {
		return err
	}
	known, err := i.api.Roles(ctx, token)
	if err != nil {
		return err
	}
	normalized := make([]string, len(roles))
	for idx, role := range roles {
		role = strings.ToUpper(strings.TrimSpace(role))
		if !contains(known, role) {
			return fmt.Errorf("%w: unknown role %q", apperrors.ErrInvalidInput, role)
		}
		normalized[idx] = role
	}
	return i.api.UpdateRoles(ctx, token, userID, normalized)
}

func (i *Interactor) DeleteUser(ctx context.Context, userID int) error {
	if userID <= 0 {
		return fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	token, err := i.tokens.Token()
	if err != nil {
		return err
	}
	return i.api.DeleteUser(ctx, token, userID)
}

func contains(set []string, want string) bool {
	for _, s := range set {
		if s == want {
			return true
		}
	}
	return false
}

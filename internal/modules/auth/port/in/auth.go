package in

import (
	"context"

	"medtrack/internal/modules/auth/dto"
)

type Usecase interface {
	// Init restores a persisted session. Failures are absorbed into the
	// returned state; Init never returns an error.
	Init(ctx context.Context) dto.SessionOutput
	// Login authenticates and fetches the current user. Errors are returned
	// to the caller so the UI can show inline feedback.
	Login(ctx context.Context, input dto.LoginInput) (dto.SessionOutput, error)
	Logout() dto.SessionOutput
	Register(ctx context.Context, input dto.RegisterInput) (dto.RegisterOutput, error)
	Current() dto.SessionOutput
	// Token returns the bearer credential of the authenticated session.
	Token() (string, error)
}

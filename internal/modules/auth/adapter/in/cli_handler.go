package in

import (
	"context"

	"medtrack/internal/modules/auth/dto"
	authin "medtrack/internal/modules/auth/port/in"
)

type CLIHandler struct {
	usecase authin.Usecase
}

func NewCLIHandler(usecase authin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Init(ctx context.Context) dto.SessionOutput {
	return h.usecase.Init(ctx)
}

func (h CLIHandler) Login(ctx context.Context, email, password string) (dto.SessionOutput, error) {
	return h.usecase.Login(ctx, dto.LoginInput{Email: email, Password: password})
}

func (h CLIHandler) Logout() dto.SessionOutput {
	return h.usecase.Logout()
}

func (h CLIHandler) Register(ctx context.Context, name, email, password string) (dto.RegisterOutput, error) {
	return h.usecase.Register(ctx, dto.RegisterInput{Name: name, Email: email, Password: password})
}

func (h CLIHandler) Current() dto.SessionOutput {
	return h.usecase.Current()
}

func (h CLIHandler) Token() (string, error) {
	return h.usecase.Token()
}

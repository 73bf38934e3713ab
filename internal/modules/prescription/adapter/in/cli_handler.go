package in

import (
	"context"

	"medtrack/internal/modules/prescription/dto"
	rxin "medtrack/internal/modules/prescription/port/in"
)

type CLIHandler struct {
	usecase rxin.Usecase
}

func NewCLIHandler(usecase rxin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, input dto.SaveInput) error {
	return h.usecase.Create(ctx, input)
}

func (h CLIHandler) ListMine(ctx context.Context) ([]dto.PrescriptionOutput, error) {
	return h.usecase.ListMine(ctx)
}

func (h CLIHandler) Update(ctx context.Context, id int, input dto.SaveInput) error {
	return h.usecase.Update(ctx, id, input)
}

func (h CLIHandler) Delete(ctx context.Context, id int) error {
	return h.usecase.Delete(ctx, id)
}

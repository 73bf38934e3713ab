package in

import (
	"context"

	"medtrack/internal/modules/medicine/dto"
	medin "medtrack/internal/modules/medicine/port/in"
)

type CLIHandler struct {
	usecase medin.Usecase
}

func NewCLIHandler(usecase medin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.MedicineOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Paged(ctx context.Context, page, size int, query string) (dto.PageOutput, error) {
	return h.usecase.Paged(ctx, page, size, query)
}

func (h CLIHandler) Get(ctx context.Context, id int) (dto.MedicineOutput, error) {
	return h.usecase.Get(ctx, id)
}

func (h CLIHandler) Delete(ctx context.Context, id int) error {
	return h.usecase.Delete(ctx, id)
}

func (h CLIHandler) ImportFile(ctx context.Context, path string) (dto.ImportOutput, error) {
	return h.usecase.ImportFile(ctx, path)
}

func (h CLIHandler) Sync(ctx context.Context) (dto.SyncOutput, error) {
	return h.usecase.Sync(ctx)
}

func (h CLIHandler) LocalSearch(ctx context.Context, query string, limit int) ([]dto.MedicineOutput, error) {
	return h.usecase.LocalSearch(ctx, query, limit)
}

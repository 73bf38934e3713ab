package in

import (
	"context"

	"medtrack/internal/modules/medicine/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.MedicineOutput, error)
	Paged(ctx context.Context, page, size int, query string) (dto.PageOutput, error)
	Get(ctx context.Context, id int) (dto.MedicineOutput, error)
	Delete(ctx context.Context, id int) error
	// ImportFile validates and uploads a medicine database dump.
	ImportFile(ctx context.Context, path string) (dto.ImportOutput, error)
	// Sync refreshes the offline cache from the backend.
	Sync(ctx context.Context) (dto.SyncOutput, error)
	// LocalSearch queries the offline cache only.
	LocalSearch(ctx context.Context, query string, limit int) ([]dto.MedicineOutput, error)
}

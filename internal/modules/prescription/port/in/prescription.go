package in

import (
	"context"

	"medtrack/internal/modules/prescription/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.SaveInput) error
	ListMine(ctx context.Context) ([]dto.PrescriptionOutput, error)
	Update(ctx context.Context, id int, input dto.SaveInput) error
	Delete(ctx context.Context, id int) error
}

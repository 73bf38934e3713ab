package service

import (
	"context"
	"fmt"

	"medtrack/internal/modules/prescription/domain"
	rxout "medtrack/internal/modules/prescription/port/out"
	apperrors "medtrack/internal/platform/errors"
)

// PrescriptionService validates drafts and converts between the compact
// editing form and the canonical wire schedule.
type PrescriptionService struct {
	api rxout.PrescriptionAPI
}

func NewPrescriptionService(api rxout.PrescriptionAPI) *PrescriptionService {
	return &PrescriptionService{api: api}
}

func (s *PrescriptionService) Create(ctx context.Context, token string, draft domain.Draft) error {
	if err := draft.Validate(); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err.Error())
	}
	return s.api.Create(ctx, token, toRequest(draft))
}

func (s *PrescriptionService) Update(ctx context.Context, token string, id int, draft domain.Draft) error {
	if id <= 0 {
		return fmt.Errorf("%w: prescription id is required", apperrors.ErrInvalidInput)
	}
	if err := draft.Validate(); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err.Error())
	}
	return s.api.Update(ctx, token, id, toRequest(draft))
}

func (s *PrescriptionService) ListMine(ctx context.Context, token string) ([]domain.Prescription, error) {
	return s.api.ListMine(ctx, token)
}

func (s *PrescriptionService) Delete(ctx context.Context, token string, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: prescription id is required", apperrors.ErrInvalidInput)
	}
	return s.api.Delete(ctx, token, id)
}

func toRequest(draft domain.Draft) rxout.SaveRequest {
	return rxout.SaveRequest{
		MedicineID: draft.MedicineID,
		Dosage:     draft.Dosage,
		StartDate:  draft.StartDate,
		EndDate:    draft.EndDate,
		TimeZone:   draft.TimeZone,
		Schedule:   domain.ExpandSchedule(draft.Rows),
	}
}

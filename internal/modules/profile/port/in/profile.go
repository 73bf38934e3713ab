package in

import (
	"context"

	"medtrack/internal/modules/profile/dto"
)

type Usecase interface {
	Get(ctx context.Context) (dto.ProfileOutput, error)
	// SavePatient upserts the patient section, keeping the existing
	// section id and active flag when present.
	SavePatient(ctx context.Context, input dto.PatientProfileInput) (dto.ProfileOutput, error)
	SaveDoctor(ctx context.Context, input dto.DoctorProfileInput) (dto.ProfileOutput, error)
}

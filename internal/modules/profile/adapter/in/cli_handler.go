package in

import (
	"context"

	"medtrack/internal/modules/profile/dto"
	profin "medtrack/internal/modules/profile/port/in"
)

type CLIHandler struct {
	usecase profin.Usecase
}

func NewCLIHandler(usecase profin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Get(ctx context.Context) (dto.ProfileOutput, error) {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) SavePatient(ctx context.Context, input dto.PatientProfileInput) (dto.ProfileOutput, error) {
	return h.usecase.SavePatient(ctx, input)
}

func (h CLIHandler) SaveDoctor(ctx context.Context, input dto.DoctorProfileInput) (dto.ProfileOutput, error) {
	return h.usecase.SaveDoctor(ctx, input)
}

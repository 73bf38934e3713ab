package out

import (
	"context"

	"medtrack/internal/modules/profile/domain"
)

type ProfileAPI interface {
	Get(ctx context.Context, token string) (domain.Profile, error)
	UpdatePatient(ctx context.Context, token string, profile domain.PatientProfile) error
	UpdateDoctor(ctx context.Context, token string, profile domain.DoctorProfile) error
}

type TokenSource interface {
	Token() (string, error)
}

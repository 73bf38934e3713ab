package out

import (
	"context"

	"medtrack/internal/modules/prescription/domain"
)

// SaveRequest is the backend-facing prescription payload; its schedule is
// always canonical, never compact.
type SaveRequest struct {
	MedicineID int
	Dosage     domain.Dosage
	StartDate  string
	EndDate    string
	TimeZone   string
	Schedule   []domain.Entry
}

type PrescriptionAPI interface {
	Create(ctx context.Context, token string, req SaveRequest) error
	ListMine(ctx context.Context, token string) ([]domain.Prescription, error)
	Update(ctx context.Context, token string, id int, req SaveRequest) error
	Delete(ctx context.Context, token string, id int) error
}

// TokenSource provides the bearer credential of the active session.
type TokenSource interface {
	Token() (string, error)
}

package out

import (
	"context"
	"time"

	"medtrack/internal/modules/medicine/domain"
)

type ImportResult struct {
	Message  string
	Imported int
}

type MedicineAPI interface {
	List(ctx context.Context, token string) ([]domain.Medicine, error)
	Paged(ctx context.Context, token string, page, size int, query string) (domain.Page, error)
	Get(ctx context.Context, token string, id int) (domain.Medicine, error)
	Delete(ctx context.Context, token string, id int) error
	// Import posts a raw, pre-validated JSON dump.
	Import(ctx context.Context, token string, payload []byte) (ImportResult, error)
}

// Cache is the offline medicine projection.
type Cache interface {
	ReplaceAll(ctx context.Context, medicines []domain.Medicine) error
	Search(ctx context.Context, query string, limit int) ([]domain.Medicine, error)
	Count(ctx context.Context) (int, error)
	// LastSync reports when ReplaceAll last ran; zero when never.
	LastSync(ctx context.Context) (time.Time, error)
}

type TokenSource interface {
	Token() (string, error)
}

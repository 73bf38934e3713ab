package usecase

import (
	"context"
	"time"

	"medtrack/internal/modules/medicine/domain"
	"medtrack/internal/modules/medicine/dto"
	medin "medtrack/internal/modules/medicine/port/in"
	medout "medtrack/internal/modules/medicine/port/out"
	"medtrack/internal/modules/medicine/service"
)

type Interactor struct {
	svc    *service.MedicineService
	tokens medout.TokenSource
}

func NewInteractor(svc *service.MedicineService, tokens medout.TokenSource) medin.Usecase {
	return &Interactor{svc: svc, tokens: tokens}
}

func (i *Interactor) List(ctx context.Context) ([]dto.MedicineOutput, error) {
	token, err := i.tokens.Token()
	if err != nil {
		return nil, err
	}
	medicines, err := i.svc.List(ctx, token)
	if err != nil {
		return nil, err
	}
	return toOutputs(medicines), nil
}

func (i *Interactor) Paged(ctx context.Context, page, size int, query string) (dto.PageOutput, error) {
	token, err := i.tokens.Token()
	if err != nil {
		return dto.PageOutput{}, err
	}
	result, err := i.svc.Paged(ctx, token, page, size, query)
	if err != nil {
		return dto.PageOutput{}, err
	}
	return dto.PageOutput{
		Content:       toOutputs(result.Content),
		Page:          result.Page,
		Size:          result.Size,
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
	}, nil
}

func (i *Interactor) Get(ctx context.Context, id int) (dto.MedicineOutput, error) {
	token, err := i.tokens.Token()
	if err != nil {
		return dto.MedicineOutput{}, err
	}
	medicine, err := i.svc.Get(ctx, token, id)
	if err != nil {
		return dto.MedicineOutput{}, err
	}
	return toOutput(medicine), nil
}

func (i *Interactor) Delete(ctx context.Context, id int) error {
	token, err := i.tokens.Token()
	if err != nil {
		return err
	}
	return i.svc.Delete(ctx, token, id)
}

func (i *Interactor) ImportFile(ctx context.Context, path string) (dto.ImportOutput, error) {
	token, err := i.tokens.Token()
	if err != nil {
		return dto.ImportOutput{}, err
	}
	result, err := i.svc.ImportFile(ctx, token, path)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	return dto.ImportOutput{Message: result.Message, Imported: result.Imported}, nil
}

func (i *Interactor) Sync(ctx context.Context) (dto.SyncOutput, error) {
	token, err := i.tokens.Token()
	if err != nil {
		return dto.SyncOutput{}, err
	}
	cached, at, err := i.svc.Sync(ctx, token)
	if err != nil {
		return dto.SyncOutput{}, err
	}
	out := dto.SyncOutput{Cached: cached}
	if !at.IsZero() {
		out.SyncedAt = at.Format(time.RFC3339)
	}
	return out, nil
}

func (i *Interactor) LocalSearch(ctx context.Context, query string, limit int) ([]dto.MedicineOutput, error) {
	// The offline cache needs no session.
	medicines, err := i.svc.LocalSearch(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return toOutputs(medicines), nil
}

func toOutput(m domain.Medicine) dto.MedicineOutput {
	return dto.MedicineOutput{
		ID:           m.ID,
		Name:         m.Name,
		GenericName:  m.GenericName,
		Manufacturer: m.Manufacturer,
		Active:       m.Active,
		OpenFDA:      m.OpenFDA,
	}
}

func toOutputs(medicines []domain.Medicine) []dto.MedicineOutput {
	out := make([]dto.MedicineOutput, len(medicines))
	for i, m := range medicines {
		out[i] = toOutput(m)
	}
	return out
}

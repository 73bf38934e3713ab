package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"medtrack/internal/modules/medicine/domain"
	medout "medtrack/internal/modules/medicine/port/out"
	apperrors "medtrack/internal/platform/errors"
)

type MedicineService struct {
	api   medout.MedicineAPI
	cache medout.Cache
}

func NewMedicineService(api medout.MedicineAPI, cache medout.Cache) *MedicineService {
	return &MedicineService{api: api, cache: cache}
}

func (s *MedicineService) List(ctx context.Context, token string) ([]domain.Medicine, error) {
	return s.api.List(ctx, token)
}

func (s *MedicineService) Paged(ctx context.Context, token string, page, size int, query string) (domain.Page, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 20
	}
	return s.api.Paged(ctx, token, page, size, query)
}

func (s *MedicineService) Get(ctx context.Context, token string, id int) (domain.Medicine, error) {
	if id <= 0 {
		return domain.Medicine{}, fmt.Errorf("%w: medicine id is required", apperrors.ErrInvalidInput)
	}
	return s.api.Get(ctx, token, id)
}

func (s *MedicineService) Delete(ctx context.Context, token string, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: medicine id is required", apperrors.ErrInvalidInput)
	}
	return s.api.Delete(ctx, token, id)
}

// Sync refreshes the offline cache from the backend and returns the number
// of cached medicines and the refresh timestamp.
func (s *MedicineService) Sync(ctx context.Context, token string) (int, time.Time, error) {
	medicines, err := s.api.List(ctx, token)
	if err != nil {
		return 0, time.Time{}, err
	}
	if err := s.cache.ReplaceAll(ctx, medicines); err != nil {
		return 0, time.Time{}, err
	}
	at, err := s.cache.LastSync(ctx)
	if err != nil {
		return 0, time.Time{}, err
	}
	return len(medicines), at, nil
}

func (s *MedicineService) LocalSearch(ctx context.Context, query string, limit int) ([]domain.Medicine, error) {
	return s.cache.Search(ctx, query, limit)
}

// importEnvelope mirrors the openFDA dump shape the backend ingests.
type importEnvelope struct {
	Results []json.RawMessage `json:"results"`
}

// ImportFile validates a medicine database dump and uploads it. Limits match
// what the backend enforces so bad files fail fast, before the upload.
func (s *MedicineService) ImportFile(ctx context.Context, token, path string) (medout.ImportResult, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".json") {
		return medout.ImportResult{}, fmt.Errorf("%w: file must be a .json file", apperrors.ErrInvalidInput)
	}
	info, err := os.Stat(path)
	if err != nil {
		return medout.ImportResult{}, fmt.Errorf("stat import file: %w", err)
	}
	if info.Size() < domain.ImportMinBytes {
		return medout.ImportResult{}, fmt.Errorf("%w: file is too small to be a database dump", apperrors.ErrInvalidInput)
	}
	if info.Size() > domain.ImportMaxBytes {
		return medout.ImportResult{}, fmt.Errorf("%w: file exceeds the 150MB limit", apperrors.ErrInvalidInput)
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return medout.ImportResult{}, fmt.Errorf("read import file: %w", err)
	}
	var envelope importEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return medout.ImportResult{}, fmt.Errorf("%w: file is not valid JSON", apperrors.ErrInvalidInput)
	}
	if envelope.Results == nil {
		return medout.ImportResult{}, fmt.Errorf("%w: missing results array", apperrors.ErrInvalidInput)
	}
	if len(envelope.Results) == 0 {
		return medout.ImportResult{}, fmt.Errorf("%w: file contains no drug records", apperrors.ErrInvalidInput)
	}
	if len(envelope.Results) > domain.ImportMaxRecords {
		return medout.ImportResult{}, fmt.Errorf("%w: file exceeds %d records", apperrors.ErrInvalidInput, domain.ImportMaxRecords)
	}
	return s.api.Import(ctx, token, payload)
}

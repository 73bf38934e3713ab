package usecase_test

import (
	"context"
	"errors"
	"testing"

	"medtrack/internal/modules/prescription/domain"
	"medtrack/internal/modules/prescription/dto"
	rxout "medtrack/internal/modules/prescription/port/out"
	"medtrack/internal/modules/prescription/service"
	"medtrack/internal/modules/prescription/usecase"
	apperrors "medtrack/internal/platform/errors"
)

type fakeRxAPI struct {
	created   []rxout.SaveRequest
	updated   map[int]rxout.SaveRequest
	deleted   []int
	listed    []domain.Prescription
	lastToken string
}

func (f *fakeRxAPI) Create(_ context.Context, token string, req rxout.SaveRequest) error {
	f.lastToken = token
	f.created = append(f.created, req)
	return nil
}

func (f *fakeRxAPI) ListMine(_ context.Context, token string) ([]domain.Prescription, error) {
	f.lastToken = token
	return f.listed, nil
}

func (f *fakeRxAPI) Update(_ context.Context, token string, id int, req rxout.SaveRequest) error {
	f.lastToken = token
	if f.updated == nil {
		f.updated = map[int]rxout.SaveRequest{}
	}
	f.updated[id] = req
	return nil
}

func (f *fakeRxAPI) Delete(_ context.Context, token string, id int) error {
	f.lastToken = token
	f.deleted = append(f.deleted, id)
	return nil
}

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token() (string, error) { return s.token, s.err }

func validInput() dto.SaveInput {
	return dto.SaveInput{
		MedicineID:   12,
		DosageAmount: 2,
		DosageUnit:   "TABLET",
		StartDate:    "2026-09-01",
		TimeZone:     "Europe/London",
		Rows: []dto.RowInput{
			{Day: "MONDAY", Time: "08:00", Daily: true},
			{Day: "FRIDAY", Time: "21:00"},
		},
	}
}

func TestCreateExpandsDailyRowsBeforeSubmission(t *testing.T) {
	t.Parallel()
	api := &fakeRxAPI{}
	uc := usecase.NewInteractor(service.NewPrescriptionService(api), staticTokens{token: "tok-1"})

	if err := uc.Create(context.Background(), validInput()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(api.created) != 1 {
		t.Fatalf("expected one create call, got %d", len(api.created))
	}
	schedule := api.created[0].Schedule
	if len(schedule) != 8 {
		t.Fatalf("daily row expands to 7 plus one single, got %d entries", len(schedule))
	}
	for i, day := range domain.Weekdays {
		want := domain.Entry{DayOfWeek: day, TimeOfDay: "08:00"}
		if schedule[i] != want {
			t.Fatalf("entry %d: expected %+v, got %+v", i, want, schedule[i])
		}
	}
	if schedule[7] != (domain.Entry{DayOfWeek: domain.Friday, TimeOfDay: "21:00"}) {
		t.Fatalf("single row must follow the daily run: %+v", schedule[7])
	}
	if api.lastToken != "tok-1" {
		t.Fatalf("bearer token not forwarded, got %q", api.lastToken)
	}
}

func TestCreateRejectsInvalidDraftWithoutCallingAPI(t *testing.T) {
	t.Parallel()
	api := &fakeRxAPI{}
	uc := usecase.NewInteractor(service.NewPrescriptionService(api), staticTokens{token: "tok-1"})

	input := validInput()
	input.Rows[1].Time = "25:61"
	err := uc.Create(context.Background(), input)
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input error, got %v", err)
	}
	if len(api.created) != 0 {
		t.Fatalf("invalid draft must not reach the backend")
	}
}

func TestOperationsRequireSession(t *testing.T) {
	t.Parallel()
	api := &fakeRxAPI{}
	uc := usecase.NewInteractor(service.NewPrescriptionService(api), staticTokens{err: apperrors.ErrNotLoggedIn})

	if err := uc.Create(context.Background(), validInput()); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Fatalf("create without session: %v", err)
	}
	if _, err := uc.ListMine(context.Background()); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Fatalf("list without session: %v", err)
	}
	if err := uc.Delete(context.Background(), 4); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Fatalf("delete without session: %v", err)
	}
}

func TestListCollapsesCanonicalSchedules(t *testing.T) {
	t.Parallel()
	fullWeek := make([]domain.Entry, 0, 8)
	for _, day := range domain.Weekdays {
		fullWeek = append(fullWeek, domain.Entry{DayOfWeek: day, TimeOfDay: "08:00"})
	}
	fullWeek = append(fullWeek, domain.Entry{DayOfWeek: domain.Saturday, TimeOfDay: "22:00"})

	api := &fakeRxAPI{listed: []domain.Prescription{{
		ID:           3,
		MedicineID:   12,
		MedicineName: "Amoxicillin",
		Dosage:       domain.Dosage{Amount: 1, Unit: "CAPSULE"},
		StartDate:    "2026-09-01",
		TimeZone:     "Europe/London",
		Schedule:     fullWeek,
	}}}
	uc := usecase.NewInteractor(service.NewPrescriptionService(api), staticTokens{token: "tok-1"})

	out, err := uc.ListMine(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one prescription, got %d", len(out))
	}
	p := out[0]
	if !p.Ongoing {
		t.Fatalf("no end date must report ongoing")
	}
	if len(p.Rows) != 2 {
		t.Fatalf("expected daily row plus one single, got %+v", p.Rows)
	}
	if !p.Rows[0].Daily || p.Rows[0].Time != "08:00" {
		t.Fatalf("first row should be daily 08:00: %+v", p.Rows[0])
	}
	if p.Rows[1].Daily || p.Rows[1].Day != "SATURDAY" || p.Rows[1].Time != "22:00" {
		t.Fatalf("second row should be saturday 22:00: %+v", p.Rows[1])
	}
	if len(p.Entries) != 8 {
		t.Fatalf("canonical entries must be preserved, got %d", len(p.Entries))
	}
}

func TestListReportsDuplicateSlotsInsteadOfDroppingThem(t *testing.T) {
	t.Parallel()
	api := &fakeRxAPI{listed: []domain.Prescription{{
		ID:         4,
		MedicineID: 9,
		Schedule: []domain.Entry{
			{DayOfWeek: domain.Monday, TimeOfDay: "08:00"},
			{DayOfWeek: domain.Monday, TimeOfDay: "08:00"},
		},
	}}}
	uc := usecase.NewInteractor(service.NewPrescriptionService(api), staticTokens{token: "tok-1"})

	out, err := uc.ListMine(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out[0].RowsErr == "" {
		t.Fatalf("duplicate slots must be reported")
	}
	if len(out[0].Rows) != 0 {
		t.Fatalf("rows must be empty when collapse fails: %+v", out[0].Rows)
	}
	if len(out[0].Entries) != 2 {
		t.Fatalf("canonical entries still exposed, got %d", len(out[0].Entries))
	}
}

func TestUpdateValidatesID(t *testing.T) {
	t.Parallel()
	api := &fakeRxAPI{}
	uc := usecase.NewInteractor(service.NewPrescriptionService(api), staticTokens{token: "tok-1"})

	if err := uc.Update(context.Background(), 0, validInput()); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for id 0, got %v", err)
	}
	if err := uc.Update(context.Background(), 7, validInput()); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, ok := api.updated[7]; !ok {
		t.Fatalf("update did not reach the backend")
	}
}

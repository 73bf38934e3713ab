package usecase_test

import (
	"context"
	"errors"
	"testing"

	"medtrack/internal/modules/profile/domain"
	"medtrack/internal/modules/profile/dto"
	"medtrack/internal/modules/profile/usecase"
	apperrors "medtrack/internal/platform/errors"
)

type fakeProfileAPI struct {
	profile        domain.Profile
	patientUpdates []domain.PatientProfile
	doctorUpdates  []domain.DoctorProfile
	lastToken      string
}

func (f *fakeProfileAPI) Get(_ context.Context, token string) (domain.Profile, error) {
	f.lastToken = token
	return f.profile, nil
}

func (f *fakeProfileAPI) UpdatePatient(_ context.Context, token string, p domain.PatientProfile) error {
	f.lastToken = token
	f.patientUpdates = append(f.patientUpdates, p)
	f.profile.Patient = &p
	return nil
}

func (f *fakeProfileAPI) UpdateDoctor(_ context.Context, token string, d domain.DoctorProfile) error {
	f.lastToken = token
	f.doctorUpdates = append(f.doctorUpdates, d)
	f.profile.Doctor = &d
	return nil
}

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token() (string, error) { return s.token, s.err }

func TestGetRequiresSession(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(&fakeProfileAPI{}, staticTokens{err: apperrors.ErrNotLoggedIn})

	if _, err := uc.Get(context.Background()); !errors.Is(err, apperrors.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestSavePatientKeepsSectionIdentity(t *testing.T) {
	t.Parallel()
	api := &fakeProfileAPI{profile: domain.Profile{
		UserID: 7,
		Email:  "pat@example.com",
		Roles:  []string{"PATIENT"},
		Patient: &domain.PatientProfile{
			ID:        42,
			Name:      "Old Name",
			BloodType: "A+",
			Active:    true,
		},
	}}
	uc := usecase.NewInteractor(api, staticTokens{token: "tok-1"})

	out, err := uc.SavePatient(context.Background(), dto.PatientProfileInput{
		Name:      "New Name",
		Phone:     "555-0100",
		Allergies: "penicillin",
	})
	if err != nil {
		t.Fatalf("save patient: %v", err)
	}
	if len(api.patientUpdates) != 1 {
		t.Fatalf("expected one update, got %d", len(api.patientUpdates))
	}
	sent := api.patientUpdates[0]
	if sent.ID != 42 || !sent.Active {
		t.Fatalf("section identity lost: %+v", sent)
	}
	if sent.Name != "New Name" || sent.Phone != "555-0100" {
		t.Fatalf("input not applied: %+v", sent)
	}
	if sent.BloodType != "" {
		t.Fatalf("cleared fields must be sent cleared, got %q", sent.BloodType)
	}
	if out.Patient == nil || out.Patient.Name != "New Name" {
		t.Fatalf("expected refreshed profile, got %+v", out.Patient)
	}
}

func TestSavePatientRejectsEmptyName(t *testing.T) {
	t.Parallel()
	api := &fakeProfileAPI{}
	uc := usecase.NewInteractor(api, staticTokens{token: "tok-1"})

	if _, err := uc.SavePatient(context.Background(), dto.PatientProfileInput{Name: "  "}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(api.patientUpdates) != 0 {
		t.Fatal("invalid input must not reach the API")
	}
}

func TestSaveDoctorCreatesSectionWhenAbsent(t *testing.T) {
	t.Parallel()
	api := &fakeProfileAPI{profile: domain.Profile{
		UserID: 3,
		Email:  "doc@example.com",
		Roles:  []string{"DOCTOR"},
	}}
	uc := usecase.NewInteractor(api, staticTokens{token: "tok-1"})

	out, err := uc.SaveDoctor(context.Background(), dto.DoctorProfileInput{
		FirstName:      "Ada",
		LastName:       "Nguyen",
		Specialization: "Cardiology",
	})
	if err != nil {
		t.Fatalf("save doctor: %v", err)
	}
	if len(api.doctorUpdates) != 1 {
		t.Fatalf("expected one update, got %d", len(api.doctorUpdates))
	}
	sent := api.doctorUpdates[0]
	if sent.ID != 0 || !sent.Active {
		t.Fatalf("fresh section should be id 0 and active: %+v", sent)
	}
	if sent.Specialization != "Cardiology" {
		t.Fatalf("input not applied: %+v", sent)
	}
	if out.Doctor == nil || out.Doctor.FirstName != "Ada" {
		t.Fatalf("expected refreshed profile, got %+v", out.Doctor)
	}
}

package out

import (
	"context"
	"net/http"

	"medtrack/internal/modules/profile/domain"
	profout "medtrack/internal/modules/profile/port/out"
	"medtrack/internal/platform/rest"
)

type HTTPProfileAPI struct {
	client *rest.Client
}

func NewHTTPProfileAPI(client *rest.Client) profout.ProfileAPI {
	return &HTTPProfileAPI{client: client}
}

type patientProfileWire struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Gender         string `json:"gender,omitempty"`
	DateOfBirth    string `json:"dateOfBirth,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Address        string `json:"address,omitempty"`
	BloodType      string `json:"bloodType,omitempty"`
	Allergies      string `json:"allergies,omitempty"`
	MedicalHistory string `json:"medicalHistory,omitempty"`
	Active         bool   `json:"active"`
}

type doctorProfileWire struct {
	ID             int    `json:"id"`
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	LicenseNumber  string `json:"licenseNumber,omitempty"`
	Phone          string `json:"phone,omitempty"`
	ClinicAddress  string `json:"clinicAddress,omitempty"`
	Active         bool   `json:"active"`
}

type profileWire struct {
	UserID         int                 `json:"userId"`
	Email          string              `json:"email"`
	Name           string              `json:"name"`
	Roles          []string            `json:"roles"`
	PatientProfile *patientProfileWire `json:"patientProfile,omitempty"`
	DoctorProfile  *doctorProfileWire  `json:"doctorProfile,omitempty"`
}

func (a *HTTPProfileAPI) Get(ctx context.Context, token string) (domain.Profile, error) {
	var wire profileWire
	err := a.client.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "/auth/profile",
		Token:  token,
	}, &wire)
	if err != nil {
		return domain.Profile{}, err
	}
	profile := domain.Profile{
		UserID: wire.UserID,
		Email:  wire.Email,
		Name:   wire.Name,
		Roles:  wire.Roles,
	}
	if wire.PatientProfile != nil {
		p := patientFromWire(*wire.PatientProfile)
		profile.Patient = &p
	}
	if wire.DoctorProfile != nil {
		d := doctorFromWire(*wire.DoctorProfile)
		profile.Doctor = &d
	}
	return profile, nil
}

func (a *HTTPProfileAPI) UpdatePatient(ctx context.Context, token string, profile domain.PatientProfile) error {
	return a.client.Do(ctx, rest.Request{
		Method: http.MethodPut,
		Path:   "/auth/profile/patient",
		Token:  token,
		Body:   patientToWire(profile),
	}, nil)
}

func (a *HTTPProfileAPI) UpdateDoctor(ctx context.Context, token string, profile domain.DoctorProfile) error {
	return a.client.Do(ctx, rest.Request{
		Method: http.MethodPut,
		Path:   "/auth/profile/doctor",
		Token:  token,
		Body:   doctorToWire(profile),
	}, nil)
}

func patientFromWire(w patientProfileWire) domain.PatientProfile {
	return domain.PatientProfile{
		ID:             w.ID,
		Name:           w.Name,
		Gender:         w.Gender,
		DateOfBirth:    w.DateOfBirth,
		Phone:          w.Phone,
		Address:        w.Address,
		BloodType:      w.BloodType,
		Allergies:      w.Allergies,
		MedicalHistory: w.MedicalHistory,
		Active:         w.Active,
	}
}

func patientToWire(p domain.PatientProfile) patientProfileWire {
	return patientProfileWire{
		ID:             p.ID,
		Name:           p.Name,
		Gender:         p.Gender,
		DateOfBirth:    p.DateOfBirth,
		Phone:          p.Phone,
		Address:        p.Address,
		BloodType:      p.BloodType,
		Allergies:      p.Allergies,
		MedicalHistory: p.MedicalHistory,
		Active:         p.Active,
	}
}

func doctorFromWire(w doctorProfileWire) domain.DoctorProfile {
	return domain.DoctorProfile{
		ID:             w.ID,
		FirstName:      w.FirstName,
		LastName:       w.LastName,
		Specialization: w.Specialization,
		LicenseNumber:  w.LicenseNumber,
		Phone:          w.Phone,
		ClinicAddress:  w.ClinicAddress,
		Active:         w.Active,
	}
}

func doctorToWire(d domain.DoctorProfile) doctorProfileWire {
	return doctorProfileWire{
		ID:             d.ID,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Specialization: d.Specialization,
		LicenseNumber:  d.LicenseNumber,
		Phone:          d.Phone,
		ClinicAddress:  d.ClinicAddress,
		Active:         d.Active,
	}
}

package usecase

import (
	"context"
	"fmt"
	"strings"

	"medtrack/internal/modules/profile/domain"
	"medtrack/internal/modules/profile/dto"
	profin "medtrack/internal/modules/profile/port/in"
	profout "medtrack/internal/modules/profile/port/out"
	apperrors "medtrack/internal/platform/errors"
)

type Interactor struct {
	api    profout.ProfileAPI
	tokens profout.TokenSource
}

func NewInteractor(api profout.ProfileAPI, tokens profout.TokenSource) profin.Usecase {
	return &Interactor{api: api, tokens: tokens}
}

func (i *Interactor) Get(ctx context.Context) (dto.ProfileOutput, error) {
	token, err := i.tokens.Token()
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	profile, err := i.api.Get(ctx, token)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(profile), nil
}

// SavePatient merges the input onto the existing patient section so the
// section id and active flag survive the round trip, then re-reads the
// profile.
func (i *Interactor) SavePatient(ctx context.Context, input dto.PatientProfileInput) (dto.ProfileOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return dto.ProfileOutput{}, fmt.Errorf("%w: name is required", apperrors.ErrInvalidInput)
	}
	token, err := i.tokens.Token()
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	current, err := i.api.Get(ctx, token)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	section := domain.PatientProfile{Active: true}
	if current.Patient != nil {
		section = *current.Patient
	}
	section.Name = input.Name
	section.Gender = input.Gender
	section.DateOfBirth = input.DateOfBirth
	section.Phone = input.Phone
	section.Address = input.Address
	section.BloodType = input.BloodType
	section.Allergies = input.Allergies
	section.MedicalHistory = input.MedicalHistory
	if err := i.api.UpdatePatient(ctx, token, section); err != nil {
		return dto.ProfileOutput{}, err
	}
	updated, err := i.api.Get(ctx, token)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(updated), nil
}

func (i *Interactor) SaveDoctor(ctx context.Context, input dto.DoctorProfileInput) (dto.ProfileOutput, error) {
	token, err := i.tokens.Token()
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	current, err := i.api.Get(ctx, token)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	section := domain.DoctorProfile{Active: true}
	if current.Doctor != nil {
		section = *current.Doctor
	}
	section.FirstName = input.FirstName
	section.LastName = input.LastName
	section.Specialization = input.Specialization
	section.LicenseNumber = input.LicenseNumber
	section.Phone = input.Phone
	section.ClinicAddress = input.ClinicAddress
	if err := i.api.UpdateDoctor(ctx, token, section); err != nil {
		return dto.ProfileOutput{}, err
	}
	updated, err := i.api.Get(ctx, token)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toOutput(updated), nil
}

func toOutput(p domain.Profile) dto.ProfileOutput {
	out := dto.ProfileOutput{
		UserID: p.UserID,
		Email:  p.Email,
		Name:   p.Name,
		Roles:  p.Roles,
	}
	if p.Patient != nil {
		out.Patient = &dto.PatientProfileOutput{
			ID:             p.Patient.ID,
			Name:           p.Patient.Name,
			Gender:         p.Patient.Gender,
			DateOfBirth:    p.Patient.DateOfBirth,
			Phone:          p.Patient.Phone,
			Address:        p.Patient.Address,
			BloodType:      p.Patient.BloodType,
			Allergies:      p.Patient.Allergies,
			MedicalHistory: p.Patient.MedicalHistory,
			Active:         p.Patient.Active,
		}
	}
	if p.Doctor != nil {
		out.Doctor = &dto.DoctorProfileOutput{
			ID:             p.Doctor.ID,
			FirstName:      p.Doctor.FirstName,
			LastName:       p.Doctor.LastName,
			Specialization: p.Doctor.Specialization,
			LicenseNumber:  p.Doctor.LicenseNumber,
			Phone:          p.Doctor.Phone,
			ClinicAddress:  p.Doctor.ClinicAddress,
			Active:         p.Doctor.Active,
		}
	}
	return out
}

package dto

type PatientProfileInput struct {
	Name           string
	Gender         string
	DateOfBirth    string
	Phone          string
	Address        string
	BloodType      string
	Allergies      string
	MedicalHistory string
}

type DoctorProfileInput struct {
	FirstName      string
	LastName       string
	Specialization string
	LicenseNumber  string
	Phone          string
	ClinicAddress  string
}

type PatientProfileOutput struct {
	ID             int
	Name           string
	Gender         string
	DateOfBirth    string
	Phone          string
	Address        string
	BloodType      string
	Allergies      string
	MedicalHistory string
	Active         bool
}

type DoctorProfileOutput struct {
	ID             int
	FirstName      string
	LastName       string
	Specialization string
	LicenseNumber  string
	Phone          string
	ClinicAddress  string
	Active         bool
}

type ProfileOutput struct {
	UserID  int
	Email   string
	Name    string
	Roles   []string
	Patient *PatientProfileOutput
	Doctor  *DoctorProfileOutput
}

package domain

// PatientProfile holds the patient-facing section of an account profile.
// Optional fields are empty strings when the backend omits them.
type PatientProfile struct {
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

type DoctorProfile struct {
	ID             int
	FirstName      string
	LastName       string
	Specialization string
	LicenseNumber  string
	Phone          string
	ClinicAddress  string
	Active         bool
}

// Profile is the combined account view. Either section may be absent
// depending on the account's roles.
type Profile struct {
	UserID  int
	Email   string
	Name    string
	Roles   []string
	Patient *PatientProfile
	Doctor  *DoctorProfile
}

package dto

type RowInput struct {
	Day   string
	Time  string
	Daily bool
}

type SaveInput struct {
	MedicineID   int
	DosageAmount float64
	DosageUnit   string
	StartDate    string
	// EndDate empty marks the prescription as ongoing.
	EndDate  string
	TimeZone string
	Rows     []RowInput
}

type EntryOutput struct {
	Day  string
	Time string
}

type PrescriptionOutput struct {
	ID           int
	MedicineID   int
	MedicineName string
	DosageAmount float64
	DosageUnit   string
	StartDate    string
	EndDate      string
	TimeZone     string
	Ongoing      bool
	// Entries is the canonical schedule as stored by the backend.
	Entries []EntryOutput
	// Rows is the compact editing form; empty when RowsErr is set.
	Rows []RowInput
	// RowsErr reports why the canonical schedule could not be collapsed
	// (duplicate slots in backend data).
	RowsErr string
}

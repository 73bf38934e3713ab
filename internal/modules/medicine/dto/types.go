package dto

type MedicineOutput struct {
	ID           int
	Name         string
	GenericName  string
	Manufacturer string
	Active       bool
	OpenFDA      map[string][]string
}

type PageOutput struct {
	Content       []MedicineOutput
	Page          int
	Size          int
	TotalElements int
	TotalPages    int
}

type ImportOutput struct {
	Message  string
	Imported int
}

type SyncOutput struct {
	Cached int
	// SyncedAt is the refresh timestamp in RFC 3339, empty when unknown.
	SyncedAt string
}

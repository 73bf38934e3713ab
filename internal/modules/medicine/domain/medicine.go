package domain

import (
	"fmt"
	"strings"
)

type Medicine struct {
	ID           int
	Name         string
	GenericName  string
	Manufacturer string
	Active       bool
	// OpenFDA carries the FDA label data arrays keyed by field name.
	OpenFDA map[string][]string
}

func (m Medicine) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("medicine name is required")
	}
	return nil
}

// Page is one slice of a paged medicine listing.
type Page struct {
	Content       []Medicine
	Page          int
	Size          int
	TotalElements int
	TotalPages    int
}

// Import limits enforced before a database dump is sent to the backend.
const (
	ImportMinBytes   = 10
	ImportMaxBytes   = 150 << 20
	ImportMaxRecords = 50000
)

package domain

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

type Dosage struct {
	Amount float64
	Unit   string
}

type Prescription struct {
	ID           int
	MedicineID   int
	MedicineName string
	Dosage       Dosage
	StartDate    string
	// EndDate empty means the prescription is ongoing and never expires.
	EndDate  string
	TimeZone string
	Schedule []Entry
}

func (p Prescription) Ongoing() bool {
	return p.EndDate == ""
}

// Draft is a prescription as edited, before expansion to the canonical
// schedule.
type Draft struct {
	MedicineID int
	Dosage     Dosage
	StartDate  string
	EndDate    string
	TimeZone   string
	Rows       []CompactRow
}

func (d Draft) Validate() error {
	if d.MedicineID <= 0 {
		return fmt.Errorf("medicine id is required")
	}
	if d.Dosage.Amount <= 0 {
		return fmt.Errorf("dosage amount must be positive")
	}
	if strings.TrimSpace(d.Dosage.Unit) == "" {
		return fmt.Errorf("dosage unit is required")
	}
	start, err := time.Parse(dateLayout, d.StartDate)
	if err != nil {
		return fmt.Errorf("start date must be YYYY-MM-DD: %w", err)
	}
	if d.EndDate != "" {
		end, err := time.Parse(dateLayout, d.EndDate)
		if err != nil {
			return fmt.Errorf("end date must be YYYY-MM-DD: %w", err)
		}
		if end.Before(start) {
			return fmt.Errorf("end date must not precede start date")
		}
	}
	if strings.TrimSpace(d.TimeZone) == "" {
		return fmt.Errorf("time zone is required")
	}
	if len(d.Rows) == 0 {
		return fmt.Errorf("at least one schedule row is required")
	}
	for i, row := range d.Rows {
		if !ValidTimeOfDay(row.TimeOfDay) {
			return fmt.Errorf("row %d: time %q must be HH:MM", i+1, row.TimeOfDay)
		}
		if !row.Daily && !row.DayOfWeek.Valid() {
			return fmt.Errorf("row %d: unknown day %q", i+1, string(row.DayOfWeek))
		}
	}
	return nil
}

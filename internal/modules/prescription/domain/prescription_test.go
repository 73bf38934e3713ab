package domain_test

import (
	"strings"
	"testing"

	"medtrack/internal/modules/prescription/domain"
)

func validDraft() domain.Draft {
	return domain.Draft{
		MedicineID: 12,
		Dosage:     domain.Dosage{Amount: 1, Unit: "TABLET"},
		StartDate:  "2026-09-01",
		TimeZone:   "Europe/London",
		Rows: []domain.CompactRow{
			{DayOfWeek: domain.Monday, TimeOfDay: "08:00"},
		},
	}
}

func TestDraftValidate(t *testing.T) {
	t.Parallel()
	if err := validDraft().Validate(); err != nil {
		t.Fatalf("draft should be valid: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*domain.Draft)
		wantMsg string
	}{
		{"missing medicine", func(d *domain.Draft) { d.MedicineID = 0 }, "medicine id"},
		{"zero dosage", func(d *domain.Draft) { d.Dosage.Amount = 0 }, "dosage amount"},
		{"missing unit", func(d *domain.Draft) { d.Dosage.Unit = " " }, "dosage unit"},
		{"bad start date", func(d *domain.Draft) { d.StartDate = "01/09/2026" }, "start date"},
		{"bad end date", func(d *domain.Draft) { d.EndDate = "soon" }, "end date"},
		{"end before start", func(d *domain.Draft) { d.EndDate = "2026-08-01" }, "precede"},
		{"missing zone", func(d *domain.Draft) { d.TimeZone = "" }, "time zone"},
		{"no rows", func(d *domain.Draft) { d.Rows = nil }, "schedule row"},
		{"bad time", func(d *domain.Draft) { d.Rows[0].TimeOfDay = "25:00" }, "HH:MM"},
		{"bad day", func(d *domain.Draft) { d.Rows[0].DayOfWeek = "SOMEDAY" }, "unknown day"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d := validDraft()
			tc.mutate(&d)
			err := d.Validate()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("expected message containing %q, got %q", tc.wantMsg, err.Error())
			}
		})
	}
}

func TestDailyRowSkipsDayValidation(t *testing.T) {
	t.Parallel()
	d := validDraft()
	d.Rows[0] = domain.CompactRow{DayOfWeek: "IGNORED", TimeOfDay: "08:00", Daily: true}
	if err := d.Validate(); err != nil {
		t.Fatalf("daily row must ignore its day: %v", err)
	}
}

func TestOngoing(t *testing.T) {
	t.Parallel()
	p := domain.Prescription{EndDate: ""}
	if !p.Ongoing() {
		t.Fatalf("no end date means ongoing")
	}
	p.EndDate = "2026-12-31"
	if p.Ongoing() {
		t.Fatalf("end date set means not ongoing")
	}
}

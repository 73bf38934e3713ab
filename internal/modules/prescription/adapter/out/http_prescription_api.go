package out

import (
	"context"
	"fmt"
	"net/http"

	"medtrack/internal/modules/prescription/domain"
	rxout "medtrack/internal/modules/prescription/port/out"
	"medtrack/internal/platform/rest"
)

type HTTPPrescriptionAPI struct {
	client *rest.Client
}

func NewHTTPPrescriptionAPI(client *rest.Client) rxout.PrescriptionAPI {
	return &HTTPPrescriptionAPI{client: client}
}

type scheduleEntryWire struct {
	DayOfWeek string `json:"dayOfWeek"`
	TimeOfDay string `json:"timeOfDay"`
}

type dosageWire struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type saveRequestWire struct {
	MedicineID int                 `json:"medicineId"`
	Dosage     dosageWire          `json:"dosage"`
	StartDate  string              `json:"startDate"`
	EndDate    string              `json:"endDate,omitempty"`
	TimeZone   string              `json:"timeZone"`
	Schedule   []scheduleEntryWire `json:"schedule"`
}

type prescriptionWire struct {
	ID           int                 `json:"id"`
	MedicineID   int                 `json:"medicineId"`
	MedicineName string              `json:"medicineName"`
	DosageAmount float64             `json:"dosageAmount"`
	DosageUnit   string              `json:"dosageUnit"`
	StartDate    string              `json:"startDate"`
	EndDate      string              `json:"endDate,omitempty"`
	TimeZone     string              `json:"timeZone"`
	Schedule     []scheduleEntryWire `json:"schedule"`
}

func (a *HTTPPrescriptionAPI) Create(ctx context.Context, token string, req rxout.SaveRequest) error {
	return a.client.Do(ctx, rest.Request{
		Method: http.MethodPost,
		Path:   "/prescriptions",
		Token:  token,
		Body:   toWire(req),
	}, nil)
}

func (a *HTTPPrescriptionAPI) ListMine(ctx context.Context, token string) ([]domain.Prescription, error) {
	var wires []prescriptionWire
	err := a.client.Do(ctx, rest.Request{
		Method: http.MethodGet,
		Path:   "/prescriptions/me",
		Token:  token,
	}, &wires)
	if err != nil {
		return nil, err
	}
	prescriptions := make([]domain.Prescription, len(wires))
	for i, w := range wires {
		prescriptions[i] = domain.Prescription{
			ID:           w.ID,
			MedicineID:   w.MedicineID,
			MedicineName: w.MedicineName,
			Dosage:       domain.Dosage{Amount: w.DosageAmount, Unit: w.DosageUnit},
			StartDate:    w.StartDate,
			EndDate:      w.EndDate,
			TimeZone:     w.TimeZone,
			Schedule:     fromWireSchedule(w.Schedule),
		}
	}
	return prescriptions, nil
}

func (a *HTTPPrescriptionAPI) Update(ctx context.Context, token string, id int, req rxout.SaveRequest) error {
	return a.client.Do(ctx, rest.Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/prescriptions/%d", id),
		Token:  token,
		Body:   toWire(req),
	}, nil)
}

func (a *HTTPPrescriptionAPI) Delete(ctx context.Context, token string, id int) error {
	return a.client.Do(ctx, rest.Request{
		Method: http.MethodDelete,
		Path:   fmt.Sprintf("/prescriptions/%d", id),
		Token:  token,
	}, nil)
}

func toWire(req rxout.SaveRequest) saveRequestWire {
	schedule := make([]scheduleEntryWire, len(req.Schedule))
	for i, e := range req.Schedule {
		schedule[i] = scheduleEntryWire{DayOfWeek: string(e.DayOfWeek), TimeOfDay: e.TimeOfDay}
	}
	return saveRequestWire{
		MedicineID: req.MedicineID,
		Dosage:     dosageWire{Amount: req.Dosage.Amount, Unit: req.Dosage.Unit},
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		TimeZone:   req.TimeZone,
		Schedule:   schedule,
	}
}

func fromWireSchedule(wires []scheduleEntryWire) []domain.Entry {
	entries := make([]domain.Entry, len(wires))
	for i, w := range wires {
		entries[i] = domain.Entry{DayOfWeek: domain.Weekday(w.DayOfWeek), TimeOfDay: w.TimeOfDay}
	}
	return entries
}
